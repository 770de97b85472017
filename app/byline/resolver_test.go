package byline

import (
	"context"
	"errors"
	"testing"
)

func TestResolver_CreatesMissingAuthors(t *testing.T) {
	store := newFakeGuestAuthorStore()
	resolver := NewResolver(store, false)

	res, err := resolver.Run(context.Background(), []string{"Jane Doe", "John Smith"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(res.Authors) != 2 {
		t.Fatalf("Expected 2 resolved authors, got %d", len(res.Authors))
	}
	if res.Created != 2 || res.Reused != 0 {
		t.Errorf("Expected 2 created / 0 reused, got %d / %d", res.Created, res.Reused)
	}
	if res.Authors[0].Login != "jane-doe" || res.Authors[1].Login != "john-smith" {
		t.Errorf("Unexpected logins: %q, %q", res.Authors[0].Login, res.Authors[1].Login)
	}
	if res.Authors[0].DisplayName != "Jane Doe" {
		t.Errorf("Display name should keep the raw form, got %q", res.Authors[0].DisplayName)
	}
	if store.createCount != 2 {
		t.Errorf("Expected 2 creates in the store, got %d", store.createCount)
	}
}

func TestResolver_ReusesExistingAuthors(t *testing.T) {
	store := newFakeGuestAuthorStore()
	store.byLogin["jane-doe"] = GuestAuthor{ID: 7, Login: "jane-doe", DisplayName: "Jane Doe"}
	resolver := NewResolver(store, false)

	res, err := resolver.Run(context.Background(), []string{"Jane Doe"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if res.Created != 0 || res.Reused != 1 {
		t.Errorf("Expected 0 created / 1 reused, got %d / %d", res.Created, res.Reused)
	}
	if res.Authors[0].ID != 7 {
		t.Errorf("Expected existing author ID 7, got %d", res.Authors[0].ID)
	}
	if store.createCount != 0 {
		t.Errorf("Expected no creates, got %d", store.createCount)
	}
}

func TestResolver_CollidingNamesResolveToOneAuthor(t *testing.T) {
	store := newFakeGuestAuthorStore()
	resolver := NewResolver(store, false)

	// "Jane Doe" and "jane-doe" share a normalized login; exactly one
	// guest author may be created, and both names get its ID.
	res, err := resolver.Run(context.Background(), []string{"Jane Doe", "jane-doe"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if store.createCount != 1 {
		t.Fatalf("Expected exactly 1 create, got %d", store.createCount)
	}
	if res.Authors[0].ID != res.Authors[1].ID {
		t.Errorf("Expected the same ID twice, got %d and %d", res.Authors[0].ID, res.Authors[1].ID)
	}
	if res.Created != 1 || res.Reused != 1 {
		t.Errorf("Expected 1 created / 1 reused, got %d / %d", res.Created, res.Reused)
	}
}

func TestResolver_DistinctNamesCreateDistinctAuthors(t *testing.T) {
	store := newFakeGuestAuthorStore()
	resolver := NewResolver(store, false)

	res, err := resolver.Run(context.Background(), []string{"Jane Doe", "John Smith"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if res.Authors[0].ID == res.Authors[1].ID {
		t.Errorf("Expected distinct IDs, got %d twice", res.Authors[0].ID)
	}
	if store.createCount != 2 {
		t.Errorf("Expected 2 creates, got %d", store.createCount)
	}
}

func TestResolver_Idempotent(t *testing.T) {
	store := newFakeGuestAuthorStore()
	resolver := NewResolver(store, false)

	first, err := resolver.Run(context.Background(), []string{"Jane Doe", "John Smith"})
	if err != nil {
		t.Fatalf("Unexpected error on first run: %v", err)
	}
	second, err := resolver.Run(context.Background(), []string{"Jane Doe", "John Smith"})
	if err != nil {
		t.Fatalf("Unexpected error on second run: %v", err)
	}

	if store.createCount != 2 {
		t.Errorf("Second run must not create more authors, total creates: %d", store.createCount)
	}
	for i := range first.Authors {
		if first.Authors[i].ID != second.Authors[i].ID {
			t.Errorf("Author %d: IDs differ across runs: %d vs %d",
				i, first.Authors[i].ID, second.Authors[i].ID)
		}
	}
	if second.Created != 0 || second.Reused != 2 {
		t.Errorf("Second run: expected 0 created / 2 reused, got %d / %d",
			second.Created, second.Reused)
	}
}

func TestResolver_OrderPreserved(t *testing.T) {
	store := newFakeGuestAuthorStore()
	resolver := NewResolver(store, false)

	res, err := resolver.Run(context.Background(), []string{"C C", "A A", "B B"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []string{"c-c", "a-a", "b-b"}
	for i, login := range expected {
		if res.Authors[i].Login != login {
			t.Errorf("Author %d: expected login %q, got %q", i, login, res.Authors[i].Login)
		}
	}
}

func TestResolver_StoreErrorPropagates(t *testing.T) {
	store := newFakeGuestAuthorStore()
	store.findErr = errors.New("connection refused")
	resolver := NewResolver(store, false)

	if _, err := resolver.Run(context.Background(), []string{"Jane Doe"}); err == nil {
		t.Error("Expected a store error to propagate")
	}
}

func TestResolver_EmptyLoginFails(t *testing.T) {
	store := newFakeGuestAuthorStore()
	resolver := NewResolver(store, false)

	if _, err := resolver.Run(context.Background(), []string{"---"}); err == nil {
		t.Error("Expected an error for a name that normalizes to an empty login")
	}
	if store.createCount != 0 {
		t.Errorf("No author may be created for an empty login, got %d creates", store.createCount)
	}
}

func TestResolver_DryRunCreatesNothing(t *testing.T) {
	store := newFakeGuestAuthorStore()
	resolver := NewResolver(store, true)

	res, err := resolver.Run(context.Background(), []string{"Jane Doe"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if store.createCount != 0 {
		t.Errorf("Dry run must not create authors, got %d creates", store.createCount)
	}
	if res.Created != 1 {
		t.Errorf("Dry run should still report the would-be create, got %d", res.Created)
	}
}
