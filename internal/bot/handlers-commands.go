package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"printk/internal/calculators"
	"printk/internal/params"
	"printk/internal/report"
	"printk/internal/session"
)

func (b *Bot) handleStart(ctx context.Context, chatID int64, _ []string) {
	msg := tgbotapi.NewMessage(chatID, helpText)
	msg.ReplyMarkup = b.createInkKeyboard()
	b.sendMessage(msg)
}

func (b *Bot) handleCalc(ctx context.Context, chatID int64, args []string) {
	job, err := parseJob(args)
	if err != nil {
		b.sendInputError(chatID, err, "Uso: /calc L W Q [CMYK] [W]")
		return
	}

	b.session.SetJob(job)
	b.recalculate(chatID)
}

func (b *Bot) handleDimensions(ctx context.Context, chatID int64, args []string) {
	length, width, quantity, err := parseDimensions(args)
	if err != nil || len(args) != 3 {
		b.sendInputError(chatID, err, "Uso: /misure L W Q")
		return
	}

	b.session.SetDimensions(length, width, quantity)
	b.afterChange(chatID)
}

func (b *Bot) handleCMYK(ctx context.Context, chatID int64, args []string) {
	level, err := parseLevel(args)
	if err != nil {
		b.sendInputError(chatID, err, "Uso: /cmyk N (0-6)")
		return
	}

	b.session.SetCMYKLevel(level)
	b.afterChange(chatID)
}

func (b *Bot) handleWhite(ctx context.Context, chatID int64, args []string) {
	level, err := parseLevel(args)
	if err != nil {
		b.sendInputError(chatID, err, "Uso: /bianco N (0-6)")
		return
	}

	b.session.SetWhiteLevel(level)
	b.afterChange(chatID)
}

func (b *Bot) handleMargin(ctx context.Context, chatID int64, args []string) {
	if len(args) != 1 {
		b.sendError(chatID, "Uso: /margine N")
		return
	}

	b.session.SetMargin(calculators.ParseMargin(args[0]))
	b.afterChange(chatID)
}

func (b *Bot) handleRecalc(ctx context.Context, chatID int64, _ []string) {
	b.recalculate(chatID)
}

func (b *Bot) handleReport(ctx context.Context, chatID int64, _ []string) {
	res, ok := b.reportResult(chatID)
	if !ok {
		return
	}

	b.sendText(chatID, "📊 "+reportTitle+"\n\n"+report.Text(report.Build(res)))
}

func (b *Bot) handleExport(ctx context.Context, chatID int64, _ []string) {
	res, ok := b.reportResult(chatID)
	if !ok {
		return
	}

	data, err := report.ExportXLSX(reportTitle, report.Build(res))
	if err != nil {
		b.logger.Error("Failed to build report workbook", zap.Error(err))
		b.sendError(chatID, "Errore durante la creazione del file Excel.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "report_calcolo.xlsx",
		Bytes: data,
	})
	doc.Caption = "📊 " + reportTitle
	b.sendMessage(doc)
}

func (b *Bot) handleParams(ctx context.Context, chatID int64, _ []string) {
	b.sendText(chatID, formatParams(b.session.Params()))
}

func (b *Bot) handleSetParams(ctx context.Context, chatID int64, args []string) {
	edits, err := parseAssignments(args)
	if err != nil {
		b.sendError(chatID, "Uso: /imposta chiave=valore [chiave=valore ...]")
		return
	}

	if err := b.session.UpdateParams(edits); err != nil {
		var verr *params.ValidationError
		if errors.As(err, &verr) {
			b.sendError(chatID, fmt.Sprintf("Valori non validi (%s). Controlla i campi numerici.", verr.Key))
			return
		}
		b.logger.Error("Failed to save parameters", zap.Error(err))
		b.sendError(chatID, "Salvataggio non riuscito.")
		return
	}

	b.sendText(chatID, "💾 Modifiche salvate con successo.")
	b.afterChange(chatID)
}

func (b *Bot) handleStatus(ctx context.Context, chatID int64, _ []string) {
	var sb strings.Builder
	sb.WriteString(formatJob(b.session.Job(), b.session.Margin()))

	if res, ok, state := b.session.Last(); ok {
		sb.WriteString("\n\n")
		sb.WriteString(formatSummary(res, state))
	} else {
		sb.WriteString("\n\nNessun calcolo eseguito.")
	}
	b.sendText(chatID, sb.String())
}

func (b *Bot) handleCallbackData(ctx context.Context, chatID int64, data string) {
	switch {
	case strings.HasPrefix(data, CallbackCMYK):
		b.handleCMYK(ctx, chatID, []string{strings.TrimPrefix(data, CallbackCMYK)})
	case strings.HasPrefix(data, CallbackWhite):
		b.handleWhite(ctx, chatID, []string{strings.TrimPrefix(data, CallbackWhite)})
	case data == CallbackRecalc:
		b.handleRecalc(ctx, chatID, nil)
	case data == CallbackReport:
		b.handleReport(ctx, chatID, nil)
	default:
		b.logger.Warn("Unknown callback data", zap.String("data", data))
	}
}

func (b *Bot) recalculate(chatID int64) {
	res, err := b.session.Recalculate()
	if err != nil {
		if errors.Is(err, calculators.ErrInvalidDimensions) {
			b.sendError(chatID, "Inserisci valori validi per lunghezza, larghezza e quantità (maggiore di 0).")
			return
		}
		b.logger.Error("Recalculation failed", zap.Error(err))
		b.sendError(chatID, "Errore durante il calcolo.")
		return
	}

	b.sendText(chatID, formatSummary(res, b.session.State()))
}

// reportResult returns the result the detailed views may show, telling the
// operator why when there is none.
func (b *Bot) reportResult(chatID int64) (session.Result, bool) {
	res, err := b.session.Report()
	switch {
	case errors.Is(err, session.ErrNoResult):
		b.sendText(chatID, "ℹ️ Calcola prima un risultato per vedere il report.")
		return session.Result{}, false
	case errors.Is(err, session.ErrStale):
		b.sendText(chatID, "⚠️ I valori sono cambiati. Usa /calcola e poi riapri il report.")
		return session.Result{}, false
	case err != nil:
		b.logger.Error("Failed to get report", zap.Error(err))
		b.sendError(chatID, "Errore durante la creazione del report.")
		return session.Result{}, false
	}
	return res, true
}

// afterChange confirms an input change and warns once that the shown result
// is outdated.
func (b *Bot) afterChange(chatID int64) {
	if b.session.TakeStaleAlert() {
		b.sendText(chatID, staleWarning)
		return
	}
	b.sendText(chatID, "✏️ Valori aggiornati.\n\n"+formatJob(b.session.Job(), b.session.Margin()))
}

func (b *Bot) sendInputError(chatID int64, err error, usage string) {
	switch {
	case err == nil, errors.Is(err, errUsage):
		b.sendError(chatID, usage)
	case errors.Is(err, calculators.ErrInvalidDimensions):
		b.sendError(chatID, "Inserisci valori validi per lunghezza, larghezza e quantità (maggiore di 0).")
	case errors.Is(err, calculators.ErrInvalidLevel):
		b.sendError(chatID, "Il numero di passaggi deve essere tra 0 e "+strconv.Itoa(calculators.MaxLevel)+".")
	default:
		b.sendError(chatID, "Valore non valido: "+err.Error())
	}
}
