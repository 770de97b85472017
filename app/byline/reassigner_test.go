package byline

import (
	"context"
	"testing"
)

func TestReassigner_OverwritesByline(t *testing.T) {
	store := newFakeGuestAuthorStore()
	store.bylines[42] = []string{"old-author-a", "old-author-b"}
	reassigner := NewReassigner(store, false)

	authors := []GuestAuthor{{ID: 1, Login: "new-author", DisplayName: "New Author"}}
	if err := reassigner.Run(context.Background(), 42, authors); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	byline := store.bylines[42]
	if len(byline) != 1 || byline[0] != "new-author" {
		t.Errorf("Expected byline [new-author] exactly, got %v", byline)
	}
}

func TestReassigner_PreservesOrder(t *testing.T) {
	store := newFakeGuestAuthorStore()
	reassigner := NewReassigner(store, false)

	authors := []GuestAuthor{
		{ID: 1, Login: "second-billed"},
		{ID: 2, Login: "first-billed"},
	}
	if err := reassigner.Run(context.Background(), 7, authors); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	byline := store.bylines[7]
	if byline[0] != "second-billed" || byline[1] != "first-billed" {
		t.Errorf("Byline order must follow the given author order, got %v", byline)
	}
}

func TestReassigner_EmptyListClearsByline(t *testing.T) {
	store := newFakeGuestAuthorStore()
	store.bylines[9] = []string{"someone"}
	reassigner := NewReassigner(store, false)

	// Invoking with no authors clears the byline; the short-circuit for
	// unmatched posts lives in the converter, not here.
	if err := reassigner.Run(context.Background(), 9, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(store.bylines[9]) != 0 {
		t.Errorf("Expected cleared byline, got %v", store.bylines[9])
	}
}

func TestReassigner_DryRunWritesNothing(t *testing.T) {
	store := newFakeGuestAuthorStore()
	store.bylines[5] = []string{"existing"}
	reassigner := NewReassigner(store, true)

	authors := []GuestAuthor{{ID: 1, Login: "new-author"}}
	if err := reassigner.Run(context.Background(), 5, authors); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(store.bylines[5]) != 1 || store.bylines[5][0] != "existing" {
		t.Errorf("Dry run must not touch the byline, got %v", store.bylines[5])
	}
}
