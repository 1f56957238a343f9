package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"bored-tasks-backend/internal/db"
)

func TestNewTaskDefaults(t *testing.T) {
	task, err := newTask(CreateFields{Title: "  Buy milk  "})
	if err != nil {
		t.Fatalf("newTask failed: %v", err)
	}

	if task.Title != "Buy milk" {
		t.Fatalf("title not trimmed: %q", task.Title)
	}
	if task.Category != "personal" {
		t.Fatalf("expected default category, got %q", task.Category)
	}
	if task.Priority != "medium" {
		t.Fatalf("expected default priority, got %q", task.Priority)
	}
	if task.Completed || task.AIGenerated {
		t.Fatalf("unexpected defaults: %+v", task)
	}
	if task.EstimatedTime != 25 {
		t.Fatalf("expected default estimatedTime 25, got %d", task.EstimatedTime)
	}
	if task.CreatedAt.IsZero() {
		t.Fatal("createdAt not assigned")
	}
}

func TestNewTaskUnknownCategoryAccepted(t *testing.T) {
	task, err := newTask(CreateFields{Title: "x", Category: "gardening"})
	if err != nil {
		t.Fatalf("newTask failed: %v", err)
	}
	if task.Category != "gardening" {
		t.Fatalf("unknown category should be stored as-is, got %q", task.Category)
	}
}

func TestNewTaskValidation(t *testing.T) {
	cases := []struct {
		name   string
		fields CreateFields
		field  string
	}{
		{"empty title", CreateFields{Title: ""}, "title"},
		{"blank title", CreateFields{Title: "   "}, "title"},
		{"bad priority", CreateFields{Title: "x", Priority: "urgent"}, "priority"},
	}

	for _, tc := range cases {
		_, err := newTask(tc.fields)

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected *ValidationError, got %v", tc.name, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("%s: expected field %q, got %q", tc.name, tc.field, verr.Field)
		}
	}
}

// ---- integration tests, require MongoDB on localhost:27017 ----

const testMongoURI = "mongodb://localhost:27017/?serverSelectionTimeoutMS=2000"

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	conn := db.New(testMongoURI)
	ctx := context.Background()

	client, err := conn.Client(ctx)
	if err != nil {
		t.Skipf("MongoDB not available at localhost:27017: %v", err)
	}

	dbName := "bored_test"
	if err := client.Database(dbName).Collection(collectionName).Drop(ctx); err != nil {
		t.Fatalf("drop collection: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Database(dbName).Collection(collectionName).Drop(ctx)
		_ = conn.Close(ctx)
	})

	return NewStore(conn, dbName)
}

func TestStoreCreateAndListOrdering(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	older := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	newer := time.Now().UTC().Truncate(time.Millisecond)

	for _, f := range []CreateFields{
		{Title: "older", CreatedAt: &older},
		{Title: "newer", CreatedAt: &newer},
	} {
		if _, err := store.Create(ctx, f); err != nil {
			t.Fatalf("create %q failed: %v", f.Title, err)
		}
	}

	tasks, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "newer" || tasks[1].Title != "older" {
		t.Fatalf("expected newest first, got %q, %q", tasks[0].Title, tasks[1].Title)
	}
	if tasks[0].ID.IsZero() {
		t.Fatal("expected assigned id")
	}
}

func TestStoreCompletionToggleKeepsFields(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, CreateFields{Title: "Buy milk", Category: "work", Priority: "high"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	id := created.ID.Hex()
	now := time.Now().UTC().Truncate(time.Millisecond)

	boolPtr := func(b bool) *bool { return &b }

	updated, err := store.UpdateByID(ctx, id, UpdateFields{
		Completed:   boolPtr(true),
		CompletedAt: NullableTime{Set: true, Value: &now},
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if !updated.Completed || updated.CompletedAt == nil {
		t.Fatalf("task not completed: %+v", updated)
	}

	updated, err = store.UpdateByID(ctx, id, UpdateFields{
		Completed:   boolPtr(false),
		CompletedAt: NullableTime{Set: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("uncomplete failed: %v", err)
	}
	if updated.Completed {
		t.Fatalf("task still completed: %+v", updated)
	}
	if updated.CompletedAt != nil {
		t.Fatalf("completedAt should be cleared: %+v", updated)
	}

	if updated.Title != "Buy milk" || updated.Category != "work" || updated.Priority != "high" {
		t.Fatalf("toggle touched unrelated fields: %+v", updated)
	}
}

func TestStoreUpdateValidation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, CreateFields{Title: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	bad := "urgent"
	_, err = store.UpdateByID(ctx, created.ID.Hex(), UpdateFields{Priority: &bad})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestStoreNotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// Well-formed but absent, and outright malformed.
	for _, id := range []string{"65f000000000000000000099", "not-an-object-id", ""} {
		if _, err := store.UpdateByID(ctx, id, UpdateFields{}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("update %q: expected ErrNotFound, got %v", id, err)
		}
		if _, err := store.DeleteByID(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Fatalf("delete %q: expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestStoreDeleteRemovesTask(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, CreateFields{Title: "temp"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	deleted, err := store.DeleteByID(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("deleted wrong task: %+v", deleted)
	}

	tasks, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty collection, got %d tasks", len(tasks))
	}
}

func TestStoreFindAnyEmptyCollection(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	task, err := store.FindAny(ctx)
	if err != nil {
		t.Fatalf("findAny on empty collection should not fail: %v", err)
	}
	if task != nil {
		t.Fatalf("expected nil task, got %+v", task)
	}
}

func TestStoreCounts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for _, f := range []CreateFields{
		{Title: "a", Completed: true},
		{Title: "b", Completed: true, AIGenerated: true},
		{Title: "c"},
	} {
		if _, err := store.Create(ctx, f); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("counts failed: %v", err)
	}
	if counts.Total != 3 || counts.Completed != 2 || counts.AIGenerated != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	// Sanity-check the raw documents carry the expected shape.
	client, err := db.New(testMongoURI).Client(ctx)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Disconnect(ctx)
	n, err := client.Database("bored_test").Collection(collectionName).
		CountDocuments(ctx, bson.M{"priority": "medium"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected all tasks with default priority, got %d", n)
	}
}
