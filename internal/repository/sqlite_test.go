package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/arcanus/arcanus/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestRecord(userID string) *domain.CharacterRecord {
	c := domain.DefaultCharacter()
	c.Name = "Thorin"
	c.Race = "Dwarf"
	c.Class = "Fighter"
	now := time.Now().UTC()
	return &domain.CharacterRecord{
		ID:        "char_" + uuid.New().String()[:8],
		UserID:    userID,
		Character: c,
		ChatHistory: []domain.ChatMessage{
			{ID: "msg_1", Role: domain.RoleUser, Content: "I want a dwarf fighter"},
			{ID: "msg_2", Role: domain.RoleAssistant, Content: "A fine choice!"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := newTestRecord("usr_1")
	if err := store.Create(ctx, record); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected record, got nil")
	}
	if got.Character.Name != "Thorin" || got.Character.Race != "Dwarf" {
		t.Errorf("character round-trip mismatch: %+v", got.Character)
	}
	if got.Character.ID != record.ID {
		t.Errorf("character ID not backfilled: %q", got.Character.ID)
	}
	if got.UserID != "usr_1" {
		t.Errorf("user ID = %q, want usr_1", got.UserID)
	}
	if len(got.ChatHistory) != 2 {
		t.Fatalf("chat history length = %d, want 2", len(got.ChatHistory))
	}
	if got.ChatHistory[1].Role != domain.RoleAssistant {
		t.Errorf("chat history order mismatch")
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetByID(context.Background(), "char_nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing character, got %+v", got)
	}
}

func TestListByUserOrdersByUpdatedAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := newTestRecord("usr_1")
	older.Character.Name = "Older"
	older.UpdatedAt = time.Now().UTC().Add(-time.Hour)
	newer := newTestRecord("usr_1")
	newer.Character.Name = "Newer"
	other := newTestRecord("usr_2")

	for _, r := range []*domain.CharacterRecord{older, newer, other} {
		if err := store.Create(ctx, r); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	records, err := store.ListByUser(ctx, "usr_1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("list length = %d, want 2", len(records))
	}
	if records[0].Character.Name != "Newer" || records[1].Character.Name != "Older" {
		t.Errorf("list order wrong: %s, %s", records[0].Character.Name, records[1].Character.Name)
	}
}

func TestUpdateScopedToOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := newTestRecord("usr_1")
	if err := store.Create(ctx, record); err != nil {
		t.Fatalf("create: %v", err)
	}

	record.Character.Level = 2
	record.Character.HitPoints = 12
	ok, err := store.Update(ctx, record)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !ok {
		t.Fatal("owner update should affect a row")
	}

	got, err := store.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Character.Level != 2 || got.Character.HitPoints != 12 {
		t.Errorf("update not persisted: %+v", got.Character)
	}

	// A different user must not be able to write the same record.
	stolen := *record
	stolen.UserID = "usr_2"
	ok, err = store.Update(ctx, &stolen)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if ok {
		t.Error("non-owner update should affect no rows")
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := newTestRecord("usr_1")
	if err := store.Create(ctx, record); err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := store.Delete(ctx, record.ID, "usr_2")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok {
		t.Error("non-owner delete should affect no rows")
	}

	ok, err = store.Delete(ctx, record.ID, "usr_1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !ok {
		t.Error("owner delete should affect a row")
	}

	got, err := store.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("record should be gone after delete")
	}
}

func TestPortraitURLRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := newTestRecord("usr_1")
	record.Character.PortraitURL = "/portraits/char_abc.png?v=123"
	if err := store.Create(ctx, record); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Character.PortraitURL != record.Character.PortraitURL {
		t.Errorf("portrait URL = %q, want %q", got.Character.PortraitURL, record.Character.PortraitURL)
	}
}
