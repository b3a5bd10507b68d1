package client

import (
	"context"
	"errors"
	"testing"

	"github.com/pettzin/ProjetoAstracode/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, store *fakeStore) *Client {
	t.Helper()
	srv := store.server()
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestRefreshMapsWireFields(t *testing.T) {
	store := newFakeStore()
	store.seed("Ana", "11999998888", "trabalho")
	store.seed("Bruno", "21988887777", model.GrupoTodos)
	cl := newTestClient(t, store)
	st := NewState()

	err := cl.Refresh(context.Background(), st)

	require.NoError(t, err)
	require.Len(t, st.Contacts, 2)
	assert.Equal(t, "Ana", st.Contacts[0].Name)
	assert.Equal(t, "11999998888", st.Contacts[0].Phone)
	assert.Equal(t, "trabalho", st.Contacts[0].Category)
	assert.Equal(t, DefaultAvatar, st.Contacts[0].Avatar)
	assert.Equal(t, model.GrupoTodos, st.Contacts[1].Category)
	assert.Equal(t, []Group{
		{ID: model.GrupoTodos, Name: model.GrupoTodos},
		{ID: "trabalho", Name: "trabalho"},
	}, st.Groups)
}

func TestCreateContactRoundTrip(t *testing.T) {
	store := newFakeStore()
	cl := newTestClient(t, store)
	st := NewState()

	err := cl.CreateContact(context.Background(), st, Contact{
		Name:  "Ana",
		Phone: "(11) 99999-8888",
	})

	require.NoError(t, err)
	require.Len(t, st.Contacts, 1)
	assert.Equal(t, "Ana", st.Contacts[0].Name)
	assert.Equal(t, "(11) 99999-8888", st.Contacts[0].Phone)
	assert.Equal(t, model.GrupoTodos, st.Contacts[0].Category)
}

func TestCreateContactInvalidPhoneNoNetwork(t *testing.T) {
	store := newFakeStore()
	cl := newTestClient(t, store)
	st := NewState()

	err := cl.CreateContact(context.Background(), st, Contact{
		Name:  "Ana",
		Phone: "123",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, 0, store.requestCount())
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	store := newFakeStore()
	store.seed("Ana", "11999998888", "trabalho")
	cl := newTestClient(t, store)
	st := NewState()
	require.NoError(t, cl.Refresh(context.Background(), st))
	before := append([]Contact{}, st.Contacts...)

	store.failAll = true
	err := cl.Refresh(context.Background(), st)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.Equal(t, before, st.Contacts)
}

func TestUpdateUnknownContactNotFound(t *testing.T) {
	store := newFakeStore()
	cl := newTestClient(t, store)
	st := NewState()

	err := cl.UpdateContact(context.Background(), st, Contact{
		ID:    99,
		Name:  "Ana",
		Phone: "11999998888",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteContactRefreshes(t *testing.T) {
	store := newFakeStore()
	id := store.seed("Ana", "11999998888", model.GrupoTodos)
	store.seed("Bruno", "21988887777", model.GrupoTodos)
	cl := newTestClient(t, store)
	st := NewState()
	require.NoError(t, cl.Refresh(context.Background(), st))

	err := cl.DeleteContact(context.Background(), st, id)

	require.NoError(t, err)
	require.Len(t, st.Contacts, 1)
	assert.Equal(t, "Bruno", st.Contacts[0].Name)
}

func TestAssignCategoryBlankFallsBackToSentinel(t *testing.T) {
	store := newFakeStore()
	id := store.seed("Ana", "11999998888", "trabalho")
	cl := newTestClient(t, store)
	st := NewState()

	err := cl.AssignCategory(context.Background(), st, id, "")

	require.NoError(t, err)
	assert.Equal(t, model.GrupoTodos, store.category(id))
}
