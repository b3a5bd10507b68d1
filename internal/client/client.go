// Package client implements the synchronization layer between the contacts
// service and a local in-memory snapshot. It holds the application state,
// validates input before any network call, and re-fetches the full contact
// list after every mutation instead of patching individual records.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pettzin/ProjetoAstracode/internal/model"
)

// Client talks to the contacts service REST API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for the service at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Ping checks that the service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/api/ping", nil, nil)
}

// ListGroups returns the distinct group labels known to the server.
func (c *Client) ListGroups(ctx context.Context) ([]string, error) {
	var groups []string
	if err := c.do(ctx, "listGroups", http.MethodGet, "/api/grupos", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// listContacts fetches the full contact table in wire representation.
func (c *Client) listContacts(ctx context.Context) ([]model.Contact, error) {
	var contacts []model.Contact
	if err := c.do(ctx, "refresh", http.MethodGet, "/api/contatos", nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (c *Client) insertContact(ctx context.Context, contact model.Contact) error {
	return c.do(ctx, "createContact", http.MethodPost, "/api/insert", contact, nil)
}

func (c *Client) putContact(ctx context.Context, id int64, fields model.Contact) error {
	return c.do(ctx, "updateContact", http.MethodPut, fmt.Sprintf("/api/update/%d", id), fields, nil)
}

func (c *Client) removeContact(ctx context.Context, id int64) error {
	return c.do(ctx, "deleteContact", http.MethodDelete, fmt.Sprintf("/api/delete/%d", id), nil, nil)
}

// do executes one HTTP request and maps the outcome onto the error taxonomy.
// A non-nil out receives the decoded 2xx response body.
func (c *Client) do(ctx context.Context, op, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &OpError{Op: op, Sentinel: ErrTransport, Message: "could not encode request", Cause: err}
		}
		reader = bytes.NewReader(encoded)
	}
	request, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return &OpError{Op: op, Sentinel: ErrTransport, Message: "could not create request", Cause: err}
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.HTTP.Do(request)
	if err != nil {
		return &OpError{Op: op, Sentinel: ErrTransport, Message: "server unreachable", Cause: err}
	}
	defer response.Body.Close()
	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return &OpError{Op: op, Sentinel: ErrTransport, Message: "could not read response", Cause: err}
	}

	switch {
	case response.StatusCode >= 200 && response.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(responseBody, out); err != nil {
			return &OpError{Op: op, Sentinel: ErrTransport, Message: "could not decode response", Cause: err}
		}
		return nil
	case response.StatusCode == http.StatusNotFound:
		return &OpError{Op: op, Sentinel: ErrNotFound, Message: serverMessage(responseBody)}
	case response.StatusCode == http.StatusConflict:
		return &OpError{Op: op, Sentinel: ErrConflict, Message: serverMessage(responseBody)}
	default:
		message := serverMessage(responseBody)
		if message == "" {
			message = fmt.Sprintf("unexpected status %d", response.StatusCode)
		}
		return &OpError{Op: op, Sentinel: ErrTransport, Message: message}
	}
}

// serverMessage extracts the {"message": ...} the service puts into error
// bodies, falling back to the raw text.
func serverMessage(body []byte) string {
	var wrapper struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Message != "" {
		return wrapper.Message
	}
	return strings.TrimSpace(string(body))
}
