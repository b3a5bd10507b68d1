package service

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pettzin/ProjetoAstracode/internal/model"
)

// messageRequest is the body accepted when scheduling a message. The phone
// number is taken from the referenced contact, not from the request.
type messageRequest struct {
	ContatoId int64     `json:"contato_id"`
	Texto     string    `json:"texto"`
	EnviaEm   time.Time `json:"envia_em"`
}

// createMensagem schedules a WhatsApp reminder for a contact. The message is
// persisted as a pending row; the scheduler worker dispatches it once the
// send time has passed, so scheduled messages survive restarts.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/mensagens --request "POST" --include --header "Content-Type: application/json" --data '{"contato_id": 56, "texto": "Feliz aniversário!", "envia_em": "2026-09-01T09:00:00-03:00"}'
func createMensagem(c *gin.Context) {
	var req messageRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	text := req.Texto
	if isBlank(&text) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "texto must not be blank"})
		return
	}
	if !req.EnviaEm.After(time.Now()) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "envia_em must be in the future"})
		return
	}

	var contacts []model.Contact
	if err := selectWhereId.Select(&contacts, req.ContatoId); err != nil {
		log.Panicln(err)
	}
	if len(contacts) == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
		return
	}
	if isBlank(contacts[0].Telefone) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "contact has no phone number"})
		return
	}

	now := time.Now()
	message := model.ScheduledMessage{
		ContatoId: req.ContatoId,
		Telefone:  *contacts[0].Telefone,
		Texto:     req.Texto,
		EnviaEm:   req.EnviaEm,
		Status:    model.MessagePending,
		CriadaEm:  &now,
	}
	result, err := insertMensagem.Exec(&message)
	if err != nil {
		log.Panicln(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		log.Panicln(err)
	}
	message.Id = id
	logAction("scheduleMessage", gin.H{"id": id, "contato_id": req.ContatoId})
	c.IndentedJSON(http.StatusCreated, message)
}

// findMensagens responds with all scheduled messages, due soonest first.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/api/mensagens"
func findMensagens(c *gin.Context) {
	messages := []model.ScheduledMessage{}
	if err := db.Select(&messages, "SELECT * FROM mensagens ORDER BY envia_em"); err != nil {
		log.Panicln(err)
	}
	c.IndentedJSON(http.StatusOK, messages)
}
