package bot

import (
	"fmt"
	"strings"

	"printk/internal/calculators"
	"printk/internal/format"
	"printk/internal/params"
	"printk/internal/report"
	"printk/internal/session"
)

const helpText = `🖨 Calcolo costi di stampa

/calc L W Q [CMYK] [W] - misure (mm), quantità, passaggi CMYK e strati bianco, poi calcola
/misure L W Q - imposta lunghezza, larghezza (mm) e quantità
/cmyk N - passaggi CMYK (0-6)
/bianco N - strati di bianco (0-6)
/margine N - margine di vendita in %
/calcola - ricalcola con i valori attuali
/report - report dettagliato
/export - report in formato Excel
/parametri - parametri di costo e consumo
/imposta chiave=valore ... - modifica e salva i parametri
/stato - valori correnti e ultimo risultato`

const staleWarning = "⚠️ Hai cambiato dei valori dopo il calcolo.\nUsa /calcola per aggiornare i risultati."

func formatJob(job calculators.Job, margin float64) string {
	return fmt.Sprintf(
		"📏 Misure: %s × %s mm\n"+
			"🔢 Quantità: %d\n"+
			"🎨 CMYK: %d×  ⬜ Bianco: %dW\n"+
			"💹 Margine: %s%%",
		format.Plain(job.LengthMM), format.Plain(job.WidthMM),
		job.Quantity,
		job.CMYKLevel, job.WhiteLevel,
		format.Plain(margin),
	)
}

func formatSummary(res session.Result, state session.ResultState) string {
	var sb strings.Builder
	if state.IsClean() {
		sb.WriteString("✅ Calcolo aggiornato\n\n")
	} else {
		sb.WriteString("⚠️ Da ricalcolare\n\n")
	}
	sb.WriteString(report.Text(report.Summary(res)))
	return sb.String()
}

func formatParams(set params.Set) string {
	var sb strings.Builder
	sb.WriteString("⚙️ Impostazioni\n\n")
	for _, key := range params.Keys() {
		fmt.Fprintf(&sb, "%s = %s\n    %s\n", key, format.Plain(set.Get(key)), params.Labels[key])
	}
	sb.WriteString("\nModifica con /imposta chiave=valore")
	return sb.String()
}
