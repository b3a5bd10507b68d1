package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/pettzin/ProjetoAstracode/internal/model"
)

// fakeStore is an in-memory stand-in for the contacts service, implementing
// the subset of the REST surface the synchronization layer talks to.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	contacts map[int64]model.Contact
	order    []int64

	// requests counts every request served, so tests can assert that an
	// operation made no network call at all.
	requests int

	// failAll makes every request answer with status 500.
	failAll bool

	// failIDs makes updates of these contacts answer with status 500.
	failIDs map[int64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:   1,
		contacts: map[int64]model.Contact{},
		failIDs:  map[int64]bool{},
	}
}

// seed inserts a contact directly, bypassing the HTTP surface.
func (s *fakeStore) seed(nome, telefone, grupo string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	created := time.Date(2026, time.January, 1, 0, 0, 0, int(id), time.UTC)
	s.contacts[id] = model.Contact{
		Id:          id,
		Nome:        &nome,
		Telefone:    &telefone,
		Grupo:       &grupo,
		DataCriacao: &created,
	}
	s.order = append(s.order, id)
	return id
}

func (s *fakeStore) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *fakeStore) category(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contact, ok := s.contacts[id]; ok && contact.Grupo != nil {
		return *contact.Grupo
	}
	return ""
}

func (s *fakeStore) server() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/contatos", s.list)
	mux.HandleFunc("POST /api/insert", s.insert)
	mux.HandleFunc("PUT /api/update/{id}", s.update)
	mux.HandleFunc("DELETE /api/delete/{id}", s.remove)
	mux.HandleFunc("GET /api/grupos", s.groups)
	mux.HandleFunc("GET /api/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})
	counted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		failing := s.failAll
		s.mu.Unlock()
		if failing {
			writeError(w, http.StatusInternalServerError, "store unavailable")
			return
		}
		mux.ServeHTTP(w, r)
	})
	return httptest.NewServer(counted)
}

func (s *fakeStore) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts := []model.Contact{}
	for _, id := range s.order {
		contacts = append(contacts, s.contacts[id])
	}
	json.NewEncoder(w).Encode(contacts)
}

func (s *fakeStore) insert(w http.ResponseWriter, r *http.Request) {
	var contact model.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if contact.Nome == nil || *contact.Nome == "" || contact.Telefone == nil || *contact.Telefone == "" {
		writeError(w, http.StatusBadRequest, "the fields nome and telefone are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	contact.Id = id
	if contact.Grupo == nil {
		sentinel := model.GrupoTodos
		contact.Grupo = &sentinel
	}
	now := time.Now()
	contact.DataCriacao = &now
	s.contacts[id] = contact
	s.order = append(s.order, id)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(contact)
}

func (s *fakeStore) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "invalid id parameter")
		return
	}
	var submitted model.Contact
	if err := json.NewDecoder(r.Body).Decode(&submitted); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIDs[id] {
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	contact, ok := s.contacts[id]
	if !ok {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}
	if submitted.Nome != nil {
		contact.Nome = submitted.Nome
	}
	if submitted.Sobrenome != nil {
		contact.Sobrenome = submitted.Sobrenome
	}
	if submitted.Email != nil {
		contact.Email = submitted.Email
	}
	if submitted.Telefone != nil {
		contact.Telefone = submitted.Telefone
	}
	if submitted.Grupo != nil {
		contact.Grupo = submitted.Grupo
	}
	if submitted.Imagem != nil {
		contact.Imagem = submitted.Imagem
	}
	s.contacts[id] = contact
	json.NewEncoder(w).Encode(contact)
}

func (s *fakeStore) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "invalid id parameter")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[id]; !ok {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}
	delete(s.contacts, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	json.NewEncoder(w).Encode(map[string]string{"message": "contact deleted"})
}

func (s *fakeStore) groups(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	groups := []string{}
	for _, id := range s.order {
		contact := s.contacts[id]
		if contact.Grupo == nil || *contact.Grupo == model.GrupoTodos || seen[*contact.Grupo] {
			continue
		}
		seen[*contact.Grupo] = true
		groups = append(groups, *contact.Grupo)
	}
	json.NewEncoder(w).Encode(groups)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
