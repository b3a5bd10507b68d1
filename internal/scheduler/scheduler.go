// Package scheduler dispatches scheduled WhatsApp messages. Messages live in
// the mensagens table until their send time; a worker checks for due rows on
// a recurring tick, so pending messages survive process restarts.
package scheduler

import (
	"context"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pettzin/ProjetoAstracode/internal/logbook"
	"github.com/pettzin/ProjetoAstracode/internal/model"
)

// Repo reads and transitions scheduled message rows.
type Repo struct {
	DB *sqlx.DB
}

// Due returns all pending messages whose send time has passed.
func (r *Repo) Due(now time.Time) ([]model.ScheduledMessage, error) {
	messages := []model.ScheduledMessage{}
	err := r.DB.Select(&messages, `
		SELECT * FROM mensagens
		WHERE status = ? AND envia_em <= ?
		ORDER BY envia_em
	`, model.MessagePending, now)
	return messages, err
}

// Claim transitions a message from pending to sent. It returns false when the
// row was already taken, which guards against double dispatch.
func (r *Repo) Claim(id int64) (bool, error) {
	result, err := r.DB.Exec(`
		UPDATE mensagens SET status = ? WHERE id = ? AND status = ?
	`, model.MessageSent, id, model.MessagePending)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

// MarkFailed records that a message could not be dispatched.
func (r *Repo) MarkFailed(id int64) error {
	_, err := r.DB.Exec(`
		UPDATE mensagens SET status = ? WHERE id = ?
	`, model.MessageFailed, id)
	return err
}

// Worker polls for due messages and dispatches them.
type Worker struct {
	Repo *Repo
	Log  *logbook.Logbook

	// Tick is the poll interval. Zero means one second.
	Tick time.Duration
}

// Run polls until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	tick := w.Tick
	if tick <= 0 {
		tick = time.Second
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.dispatchDue(time.Now())
		}
	}
}

// dispatchDue claims and dispatches every message that became due.
func (w *Worker) dispatchDue(now time.Time) {
	due, err := w.Repo.Due(now)
	if err != nil {
		log.Println("scheduler: could not load due messages:", err)
		return
	}
	for _, message := range due {
		claimed, err := w.Repo.Claim(message.Id)
		if err != nil {
			log.Println("scheduler: could not claim message:", err)
			continue
		}
		if !claimed {
			continue
		}
		w.dispatch(message)
	}
}

// dispatch emits the WhatsApp deep link for a claimed message. Opening the
// link is up to the user; the service only announces that the moment arrived.
func (w *Worker) dispatch(message model.ScheduledMessage) {
	link := WhatsAppLink(message.Telefone, message.Texto)
	log.Printf("scheduler: message %d due for contact %d: %s", message.Id, message.ContatoId, link)
	if w.Log != nil {
		_ = w.Log.Record("sendMessage", "system", map[string]any{
			"id":         message.Id,
			"contato_id": message.ContatoId,
			"link":       link,
		})
	}
}

// WhatsAppLink builds a wa.me deep link for a phone number and message text.
// The number is reduced to digits; local 10 and 11 digit numbers get the
// Brazilian country code prepended.
func WhatsAppLink(phone, text string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	number := digits.String()
	if len(number) == 10 || len(number) == 11 {
		number = "55" + number
	}
	link := "https://wa.me/" + number
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}
