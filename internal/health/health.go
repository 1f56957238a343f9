package health

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"bored-tasks-backend/internal/tasks"
)

// Store is the slice of the task store the health probe exercises.
type Store interface {
	Connect(ctx context.Context) error
	FindAny(ctx context.Context) (*tasks.Task, error)
	Create(ctx context.Context, fields tasks.CreateFields) (*tasks.Task, error)
	DeleteByID(ctx context.Context, id string) (*tasks.Task, error)
	Counts(ctx context.Context) (tasks.Counts, error)
}

// Fixed fields of the synthetic probe document. It is deleted again within
// the same check.
var probeFields = tasks.CreateFields{
	Title:       "Health Check Test Task",
	Description: "This task is created during database health check",
	Category:    tasks.DefaultCategory,
	Priority:    tasks.PriorityLow,
}

// Status is the typed result of one health check. A partially failed check
// is a normal Status, not an error: each flag is set only when its own step
// succeeded, and steps after the first failure are never attempted.
type Status struct {
	Connection bool    `json:"connection"`
	Read       bool    `json:"read"`
	Write      bool    `json:"write"`
	Delete     bool    `json:"delete"`
	Error      string  `json:"error,omitempty"`
	Details    Details `json:"details"`
}

// Details holds per-step durations in milliseconds, present only for steps
// that completed successfully.
type Details struct {
	ConnectionTime *int64 `json:"connectionTime,omitempty"`
	ReadTime       *int64 `json:"readTime,omitempty"`
	WriteTime      *int64 `json:"writeTime,omitempty"`
	DeleteTime     *int64 `json:"deleteTime,omitempty"`
}

type Stats struct {
	TotalTasks       int64  `json:"totalTasks"`
	CompletedTasks   int64  `json:"completedTasks"`
	AIGeneratedTasks int64  `json:"aiGeneratedTasks"`
	CompletionRate   string `json:"completionRate"`
	AIGeneratedRate  string `json:"aiGeneratedRate"`
}

type Checker struct {
	Store    Store
	MongoURI string
}

func NewChecker(store Store, mongoURI string) *Checker {
	return &Checker{Store: store, MongoURI: mongoURI}
}

// CheckHealth runs the synthetic connect → read → write → delete cycle,
// timing each step independently and stopping at the first failure.
func (c *Checker) CheckHealth(ctx context.Context) Status {
	status := Status{}

	start := time.Now()
	if err := c.Store.Connect(ctx); err != nil {
		status.Error = err.Error()
		log.Println("❌ Database health check failed:", err)
		return status
	}
	status.Connection = true
	status.Details.ConnectionTime = msSince(start)
	log.Printf("✅ Database connection successful (%dms)", *status.Details.ConnectionTime)

	start = time.Now()
	if _, err := c.Store.FindAny(ctx); err != nil {
		status.Error = err.Error()
		log.Println("❌ Database health check failed:", err)
		return status
	}
	status.Read = true
	status.Details.ReadTime = msSince(start)
	log.Printf("✅ Read operation successful (%dms)", *status.Details.ReadTime)

	start = time.Now()
	probe, err := c.Store.Create(ctx, probeFields)
	if err != nil {
		status.Error = err.Error()
		log.Println("❌ Database health check failed:", err)
		return status
	}
	status.Write = true
	status.Details.WriteTime = msSince(start)
	log.Printf("✅ Write operation successful (%dms)", *status.Details.WriteTime)

	start = time.Now()
	if _, err := c.Store.DeleteByID(ctx, probe.ID.Hex()); err != nil {
		status.Error = err.Error()
		log.Println("❌ Database health check failed:", err)
		return status
	}
	status.Delete = true
	status.Details.DeleteTime = msSince(start)
	log.Printf("✅ Delete operation successful (%dms)", *status.Details.DeleteTime)

	return status
}

// GetStats reports task counts and derived percentage rates. Rates are
// one-decimal strings, "0" for an empty collection.
func (c *Checker) GetStats(ctx context.Context) (*Stats, error) {
	counts, err := c.Store.Counts(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalTasks:       counts.Total,
		CompletedTasks:   counts.Completed,
		AIGeneratedTasks: counts.AIGenerated,
		CompletionRate:   rate(counts.Completed, counts.Total),
		AIGeneratedRate:  rate(counts.AIGenerated, counts.Total),
	}, nil
}

func rate(part, total int64) string {
	if total == 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(part)/float64(total)*100, 'f', 1, 64)
}

// ValidateConnectionString statically checks the configured URI shape
// without connecting: recognized protocol, host information, and a
// database path or parameter segment.
func ValidateConnectionString(uri string) bool {
	var rest string
	switch {
	case strings.HasPrefix(uri, "mongodb://"):
		rest = strings.TrimPrefix(uri, "mongodb://")
	case strings.HasPrefix(uri, "mongodb+srv://"):
		rest = strings.TrimPrefix(uri, "mongodb+srv://")
	default:
		return false
	}

	hasHost := strings.Contains(rest, "@") || strings.Contains(rest, "localhost")
	hasDatabase := strings.Contains(rest, "/") || strings.Contains(rest, "?")

	return hasHost && hasDatabase
}

func msSince(start time.Time) *int64 {
	ms := time.Since(start).Milliseconds()
	return &ms
}
