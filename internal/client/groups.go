package client

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pettzin/ProjetoAstracode/internal/model"
)

// BatchResult reports the outcome of a group operation that fans out into
// one update call per contact. It names exactly which ids failed instead of
// conflating "some succeeded" with total success.
type BatchResult struct {
	Attempted int
	FailedIDs []int64
	Errors    map[int64]error
}

// AllSucceeded returns true if every update of the batch went through.
func (r BatchResult) AllSucceeded() bool {
	return len(r.FailedIDs) == 0
}

// CreateGroup assigns the given contacts to a new group. The group comes
// into existence simply by being used as a category value. All updates are
// issued concurrently; the state is refreshed afterwards regardless of
// partial failure so the snapshot reflects whatever the server accepted.
func (c *Client) CreateGroup(ctx context.Context, st *State, name string, ids []int64) (BatchResult, error) {
	if strings.TrimSpace(name) == "" {
		return BatchResult{}, &OpError{Op: "createGroup", Sentinel: ErrValidation, Message: "group name is required"}
	}
	if len(ids) == 0 {
		return BatchResult{}, &OpError{Op: "createGroup", Sentinel: ErrValidation, Message: "select at least one contact"}
	}
	result := c.assignMany(ctx, ids, name)
	refreshErr := c.Refresh(ctx, st)
	if !result.AllSucceeded() {
		return result, batchError("createGroup", result)
	}
	return result, refreshErr
}

// UpdateGroupMembers adds contacts to a group and moves removed ones back to
// the sentinel group, all concurrently.
func (c *Client) UpdateGroupMembers(ctx context.Context, st *State, name string, add, remove []int64) (BatchResult, error) {
	if strings.TrimSpace(name) == "" {
		return BatchResult{}, &OpError{Op: "updateGroup", Sentinel: ErrValidation, Message: "group name is required"}
	}
	added := c.assignMany(ctx, add, name)
	removed := c.assignMany(ctx, remove, model.GrupoTodos)
	result := merge(added, removed)
	refreshErr := c.Refresh(ctx, st)
	if !result.AllSucceeded() {
		return result, batchError("updateGroup", result)
	}
	return result, refreshErr
}

// DeleteGroup reassigns every member of the group back to the sentinel
// group. No contact is deleted. A group without members is considered
// successfully deleted without any network call.
func (c *Client) DeleteGroup(ctx context.Context, st *State, name string) (BatchResult, error) {
	var members []int64
	for _, contact := range st.Contacts {
		if contact.Category == name {
			members = append(members, contact.ID)
		}
	}
	if len(members) == 0 {
		return BatchResult{}, nil
	}
	result := c.assignMany(ctx, members, model.GrupoTodos)
	refreshErr := c.Refresh(ctx, st)
	if !result.AllSucceeded() {
		return result, batchError("deleteGroup", result)
	}
	return result, refreshErr
}

// assignMany issues one concurrent category update per id and waits for all
// of them to settle. There is no fan-out limit, no retry, and no rollback: a
// partial failure leaves some contacts reassigned and others not.
func (c *Client) assignMany(ctx context.Context, ids []int64, category string) BatchResult {
	result := BatchResult{Attempted: len(ids), Errors: map[int64]error{}}
	if len(ids) == 0 {
		return result
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			err := c.putContact(ctx, id, model.Contact{Grupo: strptr(category)})
			if err != nil {
				mu.Lock()
				result.FailedIDs = append(result.FailedIDs, id)
				result.Errors[id] = err
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	sort.Slice(result.FailedIDs, func(i, j int) bool { return result.FailedIDs[i] < result.FailedIDs[j] })
	return result
}

func merge(a, b BatchResult) BatchResult {
	merged := BatchResult{
		Attempted: a.Attempted + b.Attempted,
		FailedIDs: append(append([]int64{}, a.FailedIDs...), b.FailedIDs...),
		Errors:    map[int64]error{},
	}
	for id, err := range a.Errors {
		merged.Errors[id] = err
	}
	for id, err := range b.Errors {
		merged.Errors[id] = err
	}
	sort.Slice(merged.FailedIDs, func(i, j int) bool { return merged.FailedIDs[i] < merged.FailedIDs[j] })
	return merged
}

func batchError(op string, result BatchResult) error {
	return &OpError{
		Op:       op,
		Sentinel: ErrPartial,
		Message:  fmt.Sprintf("%d of %d contacts failed", len(result.FailedIDs), result.Attempted),
	}
}
