// Command agenda is a terminal front-end for the contacts service. It keeps
// an in-memory snapshot, refreshes it after every mutation, and renders the
// filtered, sorted contact list.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pettzin/ProjetoAstracode/internal/client"
	"github.com/pettzin/ProjetoAstracode/internal/view"
)

// Usage examples on the command line:
// > go run ./cmd/agenda -list -sort recent -view list
// > go run ./cmd/agenda -add -name Ana -phone "(11) 99999-8888" -group amigos
// > go run ./cmd/agenda -delete 56
// > go run ./cmd/agenda -create-group amigos -ids 3,7,12
func main() {
	server := flag.String("server", "http://localhost:8080", "base URL of the contacts service")

	list := flag.Bool("list", false, "show the contact list")
	category := flag.String("category", "todos", "filter by group")
	search := flag.String("search", "", "filter by name or phone substring")
	sortOrder := flag.String("sort", client.SortName, "sort order: name, name-desc or recent")
	viewMode := flag.String("view", client.ViewGrid, "view mode: grid or list")

	add := flag.Bool("add", false, "create a contact")
	update := flag.Int64("update", 0, "update the contact with this id")
	name := flag.String("name", "", "contact name")
	surname := flag.String("surname", "", "contact surname")
	email := flag.String("email", "", "contact email")
	phone := flag.String("phone", "", "contact phone")
	group := flag.String("group", "", "contact group")

	deleteID := flag.Int64("delete", 0, "delete the contact with this id")
	yes := flag.Bool("yes", false, "skip the delete confirmation")

	groups := flag.Bool("groups", false, "list the known groups")
	createGroup := flag.String("create-group", "", "create a group with the contacts given via -ids")
	updateGroup := flag.String("update-group", "", "add -ids to a group and move -remove-ids back to 'todos'")
	ids := flag.String("ids", "", "comma-separated contact ids")
	removeIDs := flag.String("remove-ids", "", "comma-separated contact ids to remove from the group")
	deleteGroup := flag.String("delete-group", "", "delete a group, moving its members back to 'todos'")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.New(*server)
	st := client.NewState()
	st.Filter = client.Filter{
		Category:   *category,
		SearchTerm: *search,
		Sort:       *sortOrder,
		View:       *viewMode,
	}

	if err := c.Refresh(ctx, st); err != nil {
		fail(err)
	}

	switch {
	case *add:
		err := c.CreateContact(ctx, st, client.Contact{
			Name:     *name,
			Surname:  *surname,
			Email:    *email,
			Phone:    *phone,
			Category: *group,
		})
		if err != nil {
			fail(err)
		}
		fmt.Println("contact created")

	case *update != 0:
		contact, ok := findContact(st, *update)
		if !ok {
			fail(fmt.Errorf("no contact with id %d in the current list", *update))
		}
		applyFlags(&contact, *name, *surname, *email, *phone, *group)
		if err := c.UpdateContact(ctx, st, contact); err != nil {
			fail(err)
		}
		fmt.Println("contact updated")

	case *deleteID != 0:
		if !*yes && !confirm(fmt.Sprintf("delete contact %d?", *deleteID)) {
			fmt.Println("aborted")
			return
		}
		if err := c.DeleteContact(ctx, st, *deleteID); err != nil {
			fail(err)
		}
		fmt.Println("contact deleted")

	case *createGroup != "":
		result, err := c.CreateGroup(ctx, st, *createGroup, parseIDs(*ids))
		reportBatch(result, err)

	case *updateGroup != "":
		result, err := c.UpdateGroupMembers(ctx, st, *updateGroup, parseIDs(*ids), parseIDs(*removeIDs))
		reportBatch(result, err)

	case *deleteGroup != "":
		result, err := c.DeleteGroup(ctx, st, *deleteGroup)
		reportBatch(result, err)

	case *groups:
		names, err := c.ListGroups(ctx)
		if err != nil {
			fail(err)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return

	case *list:
		// nothing to mutate, fall through to the rendering below
	}

	fmt.Print(view.Render(st))
}

func findContact(st *client.State, id int64) (client.Contact, bool) {
	for _, contact := range st.Contacts {
		if contact.ID == id {
			return contact, true
		}
	}
	return client.Contact{}, false
}

func applyFlags(contact *client.Contact, name, surname, email, phone, group string) {
	if name != "" {
		contact.Name = name
	}
	if surname != "" {
		contact.Surname = surname
	}
	if email != "" {
		contact.Email = email
	}
	if phone != "" {
		contact.Phone = phone
	}
	if group != "" {
		contact.Category = group
	}
}

func parseIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			fail(fmt.Errorf("invalid id %q", part))
		}
		ids = append(ids, id)
	}
	return ids
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func reportBatch(result client.BatchResult, err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		for _, id := range result.FailedIDs {
			fmt.Fprintf(os.Stderr, "  contact %d: %v\n", id, result.Errors[id])
		}
		os.Exit(1)
	}
	fmt.Printf("updated %d contacts\n", result.Attempted)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
