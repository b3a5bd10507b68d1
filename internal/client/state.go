package client

import (
	"time"

	"github.com/pettzin/ProjetoAstracode/internal/model"
)

// DefaultAvatar is substituted when a contact has no stored image.
const DefaultAvatar = "img/iconContact.png"

// Sort orders accepted by the view pipeline.
const (
	SortName     = "name"
	SortNameDesc = "name-desc"
	SortRecent   = "recent"
)

// View modes accepted by the view pipeline.
const (
	ViewGrid = "grid"
	ViewList = "list"
)

// Contact is the client-side representation of a person record. Unlike the
// wire format, every field is a plain value with its default already applied.
type Contact struct {
	ID       int64
	Name     string
	Surname  string
	Email    string
	Phone    string
	Avatar   string
	Category string
	Date     time.Time
}

// Group is a derived label, never a stored entity. Its identity is the raw
// category string, case-sensitive.
type Group struct {
	ID   string
	Name string
}

// Filter holds the current view settings.
type Filter struct {
	Category   string
	SearchTerm string
	Sort       string
	View       string
}

// State is the single source of truth for the application: the last
// successfully fetched contact snapshot, the groups derived from it, and the
// active filter. It is only ever replaced wholesale by Refresh, never patched.
type State struct {
	Contacts []Contact
	Groups   []Group
	Filter   Filter
}

// NewState returns an empty state with default filter settings.
func NewState() *State {
	return &State{
		Groups: []Group{{ID: model.GrupoTodos, Name: model.GrupoTodos}},
		Filter: Filter{
			Category: model.GrupoTodos,
			Sort:     SortName,
			View:     ViewGrid,
		},
	}
}

// fromWire maps a wire contact into the client representation, applying the
// defaults the server may have left out: avatar, sentinel group, and creation
// time.
func fromWire(w model.Contact) Contact {
	contact := Contact{
		ID:       w.Id,
		Name:     deref(w.Nome),
		Surname:  deref(w.Sobrenome),
		Email:    deref(w.Email),
		Phone:    deref(w.Telefone),
		Avatar:   deref(w.Imagem),
		Category: deref(w.Grupo),
		Date:     time.Now(),
	}
	if contact.Avatar == "" {
		contact.Avatar = DefaultAvatar
	}
	if contact.Category == "" {
		contact.Category = model.GrupoTodos
	}
	if w.DataCriacao != nil {
		contact.Date = *w.DataCriacao
	}
	return contact
}

// createBody builds the insert payload. Optional blank fields are omitted so
// the server stores NULL rather than empty strings.
func createBody(c Contact) model.Contact {
	body := model.Contact{
		Nome:     strptr(c.Name),
		Telefone: strptr(c.Phone),
	}
	if c.Surname != "" {
		body.Sobrenome = strptr(c.Surname)
	}
	if c.Email != "" {
		body.Email = strptr(c.Email)
	}
	if c.Avatar != "" && c.Avatar != DefaultAvatar {
		body.Imagem = strptr(c.Avatar)
	}
	category := c.Category
	if category == "" {
		category = model.GrupoTodos
	}
	body.Grupo = strptr(category)
	return body
}

// updateBody builds the update payload. The full field set is sent, so a
// cleared surname or email overwrites the stored value.
func updateBody(c Contact) model.Contact {
	avatar := c.Avatar
	if avatar == DefaultAvatar {
		avatar = ""
	}
	category := c.Category
	if category == "" {
		category = model.GrupoTodos
	}
	return model.Contact{
		Nome:      strptr(c.Name),
		Sobrenome: strptr(c.Surname),
		Email:     strptr(c.Email),
		Telefone:  strptr(c.Phone),
		Grupo:     strptr(category),
		Imagem:    strptr(avatar),
	}
}

// DeriveGroups computes the group list from a contact snapshot: the sentinel
// group first, then every other category in first-seen order.
func DeriveGroups(contacts []Contact) []Group {
	groups := []Group{{ID: model.GrupoTodos, Name: model.GrupoTodos}}
	seen := map[string]bool{model.GrupoTodos: true}
	for _, contact := range contacts {
		if contact.Category == "" || seen[contact.Category] {
			continue
		}
		seen[contact.Category] = true
		groups = append(groups, Group{ID: contact.Category, Name: contact.Category})
	}
	return groups
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strptr(s string) *string {
	return &s
}
