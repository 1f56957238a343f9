package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bored-tasks-backend/internal/db"
)

const collectionName = "tasks"

// ErrNotFound is returned when no task matches the given id, including ids
// that are not valid ObjectID hex at all.
var ErrNotFound = errors.New("task not found")

// ValidationError reports a schema constraint violation on write. It is
// distinct from ErrNotFound so handlers can map the two separately.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Store persists tasks in a single MongoDB collection. The connection is
// acquired lazily through the shared db.Conn on first operation.
type Store struct {
	conn   *db.Conn
	dbName string
}

func NewStore(conn *db.Conn, dbName string) *Store {
	return &Store{conn: conn, dbName: dbName}
}

func (s *Store) collection(ctx context.Context) (*mongo.Collection, error) {
	client, err := s.conn.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(s.dbName).Collection(collectionName), nil
}

// Connect establishes (or verifies) the lazy connection without touching
// any documents. Used by the health check's connection step.
func (s *Store) Connect(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// ListAll returns every task, newest first.
func (s *Store) ListAll(ctx context.Context) ([]Task, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	tasks := []Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create validates the fields, fills schema defaults, inserts the document
// and returns it with its assigned id.
func (s *Store) Create(ctx context.Context, fields CreateFields) (*Task, error) {
	task, err := newTask(fields)
	if err != nil {
		return nil, err
	}

	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	res, err := coll.InsertOne(ctx, task)
	if err != nil {
		return nil, err
	}
	task.ID = res.InsertedID.(primitive.ObjectID)
	return task, nil
}

func newTask(fields CreateFields) (*Task, error) {
	title := strings.TrimSpace(fields.Title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}

	category := strings.TrimSpace(fields.Category)
	if category == "" {
		category = DefaultCategory
	}

	priority := fields.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		return nil, &ValidationError{Field: "priority", Message: "must be one of low, medium, high"}
	}

	createdAt := time.Now().UTC()
	if fields.CreatedAt != nil {
		createdAt = *fields.CreatedAt
	}

	estimated := DefaultEstimatedTime
	if fields.EstimatedTime != nil {
		estimated = *fields.EstimatedTime
	}

	return &Task{
		Title:         title,
		Description:   strings.TrimSpace(fields.Description),
		Category:      category,
		Priority:      priority,
		Completed:     fields.Completed,
		CreatedAt:     createdAt,
		CompletedAt:   fields.CompletedAt,
		AIGenerated:   fields.AIGenerated,
		EstimatedTime: estimated,
	}, nil
}

// UpdateByID applies the provided fields to the matching task and returns
// the updated document. Fields left nil are untouched; an explicit null
// completedAt is unset.
func (s *Store) UpdateByID(ctx context.Context, id string, fields UpdateFields) (*Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{}
	unset := bson.M{}

	if fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		if title == "" {
			return nil, &ValidationError{Field: "title", Message: "title is required"}
		}
		set["title"] = title
	}
	if fields.Description != nil {
		set["description"] = strings.TrimSpace(*fields.Description)
	}
	if fields.Category != nil {
		category := strings.TrimSpace(*fields.Category)
		if category == "" {
			category = DefaultCategory
		}
		set["category"] = category
	}
	if fields.Priority != nil {
		if !ValidPriority(*fields.Priority) {
			return nil, &ValidationError{Field: "priority", Message: "must be one of low, medium, high"}
		}
		set["priority"] = *fields.Priority
	}
	if fields.Completed != nil {
		set["completed"] = *fields.Completed
	}
	if fields.CompletedAt.Set {
		if fields.CompletedAt.Value == nil {
			unset["completedAt"] = ""
		} else {
			set["completedAt"] = *fields.CompletedAt.Value
		}
	}
	if fields.AIGenerated != nil {
		set["aiGenerated"] = *fields.AIGenerated
	}
	if fields.EstimatedTime != nil {
		set["estimatedTime"] = *fields.EstimatedTime
	}

	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var task Task
	if len(update) == 0 {
		// Nothing to change; return the current document.
		err = coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&task)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&task)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteByID removes the matching task and returns it.
func (s *Store) DeleteByID(ctx context.Context, id string) (*Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	var task Task
	err = coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindAny fetches at most one task. An empty collection is not an error;
// it returns (nil, nil). Used by the health check's read step.
func (s *Store) FindAny(ctx context.Context) (*Task, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	var task Task
	err = coll.FindOne(ctx, bson.M{}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

type Counts struct {
	Total       int64
	Completed   int64
	AIGenerated int64
}

// Counts returns the document counts backing the stats report.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return Counts{}, err
	}

	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return Counts{}, err
	}
	completed, err := coll.CountDocuments(ctx, bson.M{"completed": true})
	if err != nil {
		return Counts{}, err
	}
	aiGenerated, err := coll.CountDocuments(ctx, bson.M{"aiGenerated": true})
	if err != nil {
		return Counts{}, err
	}

	return Counts{Total: total, Completed: completed, AIGenerated: aiGenerated}, nil
}
