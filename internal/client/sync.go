package client

import (
	"context"

	"github.com/pettzin/ProjetoAstracode/internal/model"
)

// Refresh replaces the state's contact snapshot wholesale with the server's
// current list and re-derives the group list. On any failure the previous
// snapshot is kept untouched: stale-but-available beats empty.
func (c *Client) Refresh(ctx context.Context, st *State) error {
	wire, err := c.listContacts(ctx)
	if err != nil {
		return err
	}
	contacts := make([]Contact, 0, len(wire))
	for _, w := range wire {
		contacts = append(contacts, fromWire(w))
	}
	st.Contacts = contacts
	st.Groups = DeriveGroups(contacts)
	return nil
}

// CreateContact validates the input, inserts it on the server, and refreshes
// the snapshot. The validation is advisory: the server remains the authority
// and may still reject the request.
func (c *Client) CreateContact(ctx context.Context, st *State, in Contact) error {
	if err := ValidateContact(in); err != nil {
		return err
	}
	if err := c.insertContact(ctx, createBody(in)); err != nil {
		return err
	}
	return c.Refresh(ctx, st)
}

// UpdateContact validates the input, replaces the contact's fields on the
// server, and refreshes the snapshot.
func (c *Client) UpdateContact(ctx context.Context, st *State, in Contact) error {
	if err := ValidateContact(in); err != nil {
		return err
	}
	if err := c.putContact(ctx, in.ID, updateBody(in)); err != nil {
		return err
	}
	return c.Refresh(ctx, st)
}

// DeleteContact removes the contact on the server and refreshes the snapshot.
// Asking the user for confirmation is the caller's concern; once called, the
// delete is issued.
func (c *Client) DeleteContact(ctx context.Context, st *State, id int64) error {
	if err := c.removeContact(ctx, id); err != nil {
		return err
	}
	return c.Refresh(ctx, st)
}

// AssignCategory moves a single contact to another group via a partial
// update, then refreshes the snapshot.
func (c *Client) AssignCategory(ctx context.Context, st *State, id int64, category string) error {
	if category == "" {
		category = model.GrupoTodos
	}
	if err := c.putContact(ctx, id, model.Contact{Grupo: strptr(category)}); err != nil {
		return err
	}
	return c.Refresh(ctx, st)
}
