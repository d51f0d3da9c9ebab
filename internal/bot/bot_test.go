package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"printk/internal/params"
	"printk/internal/session"
)

const operatorID int64 = 100

type fakeSender struct {
	texts     []string
	documents []tgbotapi.DocumentConfig
	requests  int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		f.texts = append(f.texts, m.Text)
	case tgbotapi.DocumentConfig:
		f.documents = append(f.documents, m)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last() string {
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

type memStore struct {
	saved params.Set
	err   error
}

func (m *memStore) Save(set params.Set) error {
	if m.err != nil {
		return m.err
	}
	m.saved = set.Clone()
	return nil
}

func newTestBot(t *testing.T) (*Bot, *fakeSender, *memStore) {
	t.Helper()
	sender := &fakeSender{}
	store := &memStore{}
	sess := session.New(store, params.Defaults(), 35, zap.NewNop())
	return New(sender, sess, operatorID, zap.NewNop()), sender, store
}

func command(chatID int64, text string) tgbotapi.Update {
	cmdLen := len(text)
	if i := strings.Index(text, " "); i >= 0 {
		cmdLen = i
	}
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: chatID},
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: cmdLen},
			},
		},
	}
}

func callback(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb",
			Data:    data,
			Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		},
	}
}

func TestCalcCommand(t *testing.T) {
	b, sender, _ := newTestBot(t)

	b.HandleUpdate(context.Background(), command(operatorID, "/calc 250 120 50 1 0"))

	got := sender.last()
	if !strings.Contains(got, "✅ Calcolo aggiornato") {
		t.Errorf("Expected fresh result, got:\n%s", got)
	}
	if !strings.Contains(got, "Costo per pezzo: € 0,64") {
		t.Errorf("Expected cost per piece € 0,64, got:\n%s", got)
	}
	if !strings.Contains(got, "Totale commessa: € 31,9") {
		t.Errorf("Expected total job cost, got:\n%s", got)
	}
}

func TestCalcCommand_DecimalComma(t *testing.T) {
	b, sender, _ := newTestBot(t)

	b.HandleUpdate(context.Background(), command(operatorID, "/calc 1000,0 1000 1"))

	if !strings.Contains(sender.last(), "Costo per pezzo: € 28,58") {
		t.Errorf("Unexpected result:\n%s", sender.last())
	}
}

func TestCalcCommand_InvalidInput(t *testing.T) {
	tests := map[string]string{
		"/calc 0 120 50":      "maggiore di 0",
		"/calc 250 -5 50":     "maggiore di 0",
		"/calc 250 120 0":     "maggiore di 0",
		"/calc 250 120":       "Uso: /calc",
		"/calc 250 120 50 7":  "tra 0 e 6",
		"/calc abc 120 50":    "Valore non valido",
		"/calc 250 120 2,5 1": "Valore non valido",
	}

	for text, want := range tests {
		t.Run(text, func(t *testing.T) {
			b, sender, _ := newTestBot(t)
			b.HandleUpdate(context.Background(), command(operatorID, text))

			if !strings.Contains(sender.last(), want) {
				t.Errorf("Expected %q in reply, got %q", want, sender.last())
			}
			if _, ok, _ := b.session.Last(); ok {
				t.Error("No result expected after invalid input")
			}
		})
	}
}

func TestReportRefusedWhileStale(t *testing.T) {
	b, sender, _ := newTestBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, command(operatorID, "/report"))
	if !strings.Contains(sender.last(), "Calcola prima") {
		t.Errorf("Expected no-result notice, got %q", sender.last())
	}

	b.HandleUpdate(ctx, command(operatorID, "/calc 250 120 50 1 2"))
	b.HandleUpdate(ctx, command(operatorID, "/report"))
	if !strings.Contains(sender.last(), "Moltiplicatore costi vari: 3×") {
		t.Errorf("Expected detailed report, got:\n%s", sender.last())
	}

	b.HandleUpdate(ctx, command(operatorID, "/bianco 1"))
	if sender.last() != staleWarning {
		t.Errorf("Expected stale warning, got %q", sender.last())
	}

	b.HandleUpdate(ctx, command(operatorID, "/report"))
	if !strings.Contains(sender.last(), "I valori sono cambiati") {
		t.Errorf("Expected stale refusal, got %q", sender.last())
	}

	b.HandleUpdate(ctx, command(operatorID, "/export"))
	if len(sender.documents) != 0 {
		t.Error("Export must be refused while stale")
	}

	b.HandleUpdate(ctx, command(operatorID, "/calcola"))
	b.HandleUpdate(ctx, command(operatorID, "/export"))
	if len(sender.documents) != 1 {
		t.Fatalf("Expected one exported document, got %d", len(sender.documents))
	}
}

func TestStaleWarningSentOnce(t *testing.T) {
	b, sender, _ := newTestBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, command(operatorID, "/calc 250 120 50"))
	b.HandleUpdate(ctx, command(operatorID, "/cmyk 2"))
	b.HandleUpdate(ctx, command(operatorID, "/margine 40"))

	warnings := 0
	for _, text := range sender.texts {
		if text == staleWarning {
			warnings++
		}
	}
	if warnings != 1 {
		t.Errorf("Expected 1 stale warning, got %d", warnings)
	}

	b.HandleUpdate(ctx, command(operatorID, "/stato"))
	if !strings.Contains(sender.last(), "Da ricalcolare") {
		t.Errorf("Expected stale marker in status, got:\n%s", sender.last())
	}
}

func TestSetParams(t *testing.T) {
	b, sender, store := newTestBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, command(operatorID, "/imposta costo_orario_prestampa=50 costo_C_litro=180,5"))

	if store.saved == nil {
		t.Fatal("Expected parameters to be saved")
	}
	if store.saved[params.KeyPrepressHourly] != 50 || store.saved[params.KeyCyanPerLiter] != 180.5 {
		t.Errorf("Saved wrong values: %v", store.saved)
	}

	b.HandleUpdate(ctx, command(operatorID, "/parametri"))
	if !strings.Contains(sender.last(), "costo_C_litro = 180,5") {
		t.Errorf("Expected updated value in parameter list, got:\n%s", sender.last())
	}
}

func TestSetParams_RejectedAllOrNothing(t *testing.T) {
	b, sender, store := newTestBot(t)

	b.HandleUpdate(context.Background(), command(operatorID, "/imposta costo_C_litro=200 costo_W_litro=abc"))

	if store.saved != nil {
		t.Error("Nothing should be saved when an edit is invalid")
	}
	if !strings.Contains(sender.last(), "costo_W_litro") {
		t.Errorf("Expected offending key in reply, got %q", sender.last())
	}
	if b.session.Params()[params.KeyCyanPerLiter] != 175 {
		t.Error("Parameters changed after rejected edit")
	}
}

func TestSetParams_SaveFailure(t *testing.T) {
	b, sender, store := newTestBot(t)
	store.err = errors.New("read-only file system")

	b.HandleUpdate(context.Background(), command(operatorID, "/imposta costo_C_litro=200"))

	if !strings.Contains(sender.last(), "Salvataggio non riuscito") {
		t.Errorf("Expected save failure reply, got %q", sender.last())
	}
}

func TestForeignChatRejected(t *testing.T) {
	b, sender, _ := newTestBot(t)

	b.HandleUpdate(context.Background(), command(operatorID+1, "/calc 250 120 50"))

	if !strings.Contains(sender.last(), "non autorizzato") {
		t.Errorf("Expected rejection, got %q", sender.last())
	}
	if _, ok, _ := b.session.Last(); ok {
		t.Error("Foreign chat must not drive the session")
	}
}

func TestOperatorLockedToFirstChat(t *testing.T) {
	sender := &fakeSender{}
	sess := session.New(&memStore{}, params.Defaults(), 35, zap.NewNop())
	b := New(sender, sess, 0, zap.NewNop())

	b.HandleUpdate(context.Background(), command(7, "/help"))
	b.HandleUpdate(context.Background(), command(8, "/help"))

	if !strings.Contains(sender.last(), "non autorizzato") {
		t.Errorf("Second chat should be rejected, got %q", sender.last())
	}
}

func TestCallbacks(t *testing.T) {
	b, sender, _ := newTestBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, command(operatorID, "/misure 250 120 50"))
	b.HandleUpdate(ctx, callback(operatorID, CallbackCMYK+"1"))
	b.HandleUpdate(ctx, callback(operatorID, CallbackWhite+"2"))
	b.HandleUpdate(ctx, callback(operatorID, CallbackRecalc))

	if sender.requests != 3 {
		t.Errorf("Expected 3 callback answers, got %d", sender.requests)
	}

	job := b.session.Job()
	if job.CMYKLevel != 1 || job.WhiteLevel != 2 {
		t.Errorf("Expected levels 1/2, got %d/%d", job.CMYKLevel, job.WhiteLevel)
	}
	if !strings.Contains(sender.last(), "✅ Calcolo aggiornato") {
		t.Errorf("Expected fresh result, got:\n%s", sender.last())
	}
}

func TestUnknownCommandAndPlainText(t *testing.T) {
	b, sender, _ := newTestBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, command(operatorID, "/boh"))
	if !strings.Contains(sender.last(), "Comando sconosciuto") {
		t.Errorf("Unexpected reply %q", sender.last())
	}

	b.HandleUpdate(ctx, tgbotapi.Update{Message: &tgbotapi.Message{Text: "ciao", Chat: &tgbotapi.Chat{ID: operatorID}}})
	if !strings.Contains(sender.last(), "/help") {
		t.Errorf("Unexpected reply %q", sender.last())
	}
}
