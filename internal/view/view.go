// Package view derives the visible contact list from the state snapshot and
// filter settings. Everything here is a pure function: no network access, no
// state mutation, so the pipeline is directly unit-testable.
package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pettzin/ProjetoAstracode/internal/client"
	"github.com/pettzin/ProjetoAstracode/internal/model"
)

// Filter returns the contacts matching the filter's category and search
// term. A contact matches when the category is the sentinel group or equal
// to the contact's category, and the search term is empty, a
// case-insensitive substring of the name, or a raw substring of the phone.
func Filter(contacts []client.Contact, f client.Filter) []client.Contact {
	matched := []client.Contact{}
	term := strings.ToLower(f.SearchTerm)
	for _, contact := range contacts {
		matchesCategory := f.Category == "" ||
			f.Category == model.GrupoTodos ||
			contact.Category == f.Category
		matchesSearch := f.SearchTerm == "" ||
			strings.Contains(strings.ToLower(contact.Name), term) ||
			strings.Contains(contact.Phone, f.SearchTerm)
		if matchesCategory && matchesSearch {
			matched = append(matched, contact)
		}
	}
	return matched
}

// Sort returns a sorted copy of the contacts. Ties keep their insertion
// order, so repeated calls with the same input yield identical output.
func Sort(contacts []client.Contact, order string) []client.Contact {
	sorted := append([]client.Contact{}, contacts...)
	switch order {
	case client.SortNameDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) > strings.ToLower(sorted[j].Name)
		})
	case client.SortRecent:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Date.After(sorted[j].Date)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		})
	}
	return sorted
}

// Visible applies the state's filter and sort settings to its snapshot.
func Visible(st *client.State) []client.Contact {
	return Sort(Filter(st.Contacts, st.Filter), st.Filter.Sort)
}

// Render formats the visible contacts according to the state's view mode.
func Render(st *client.State) string {
	contacts := Visible(st)
	if st.Filter.View == client.ViewList {
		return RenderList(contacts)
	}
	return RenderGrid(contacts)
}

// RenderGrid arranges contacts as cards, three per row.
func RenderGrid(contacts []client.Contact) string {
	if len(contacts) == 0 {
		return "no contacts found\n"
	}
	var b strings.Builder
	for i, contact := range contacts {
		b.WriteString(fmt.Sprintf("%-30s", fullName(contact)+" "+contact.Phone))
		if (i+1)%3 == 0 || i == len(contacts)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString("  ")
		}
	}
	return b.String()
}

// RenderList arranges contacts as one row each with name, phone and email.
func RenderList(contacts []client.Contact) string {
	if len(contacts) == 0 {
		return "no contacts found\n"
	}
	var b strings.Builder
	for _, contact := range contacts {
		b.WriteString(fmt.Sprintf("%-28s %-18s %s\n", fullName(contact), contact.Phone, contact.Email))
	}
	return b.String()
}

func fullName(c client.Contact) string {
	if c.Surname == "" {
		return c.Name
	}
	return c.Name + " " + c.Surname
}
