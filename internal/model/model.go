package model

import "time"

// GrupoTodos is the catch-all category. Contacts created without an explicit
// group carry this value, and deleting a group reassigns its members here.
// The groups endpoint never reports it as a group of its own.
const GrupoTodos = "todos"

// Contact is the database row and wire representation of a person record.
// All fields with the exception of the Id field are optional. Pointer fields
// allow partial updates where only the submitted values are written.
type Contact struct {
	Id          int64      `json:"id"                     db:"id"`
	Nome        *string    `json:"nome,omitempty"         db:"nome"`
	Sobrenome   *string    `json:"sobrenome,omitempty"    db:"sobrenome"`
	Email       *string    `json:"email,omitempty"        db:"email"`
	Telefone    *string    `json:"telefone,omitempty"     db:"telefone"`
	Grupo       *string    `json:"grupo,omitempty"        db:"grupo"`
	Imagem      *string    `json:"imagem,omitempty"       db:"imagem"`
	DataCriacao *time.Time `json:"data_criacao,omitempty" db:"data_criacao"`
}

// Scheduled message states.
const (
	MessagePending = "pendente"
	MessageSent    = "enviada"
	MessageFailed  = "falhou"
)

// ScheduledMessage is a WhatsApp reminder persisted until its due time.
// Rows survive restarts; a worker picks up due pending rows on a tick.
type ScheduledMessage struct {
	Id        int64      `json:"id"                  db:"id"`
	ContatoId int64      `json:"contato_id"          db:"contato_id"`
	Telefone  string     `json:"telefone"            db:"telefone"`
	Texto     string     `json:"texto"               db:"texto"`
	EnviaEm   time.Time  `json:"envia_em"            db:"envia_em"`
	Status    string     `json:"status"              db:"status"`
	CriadaEm  *time.Time `json:"criada_em,omitempty" db:"criada_em"`
}
