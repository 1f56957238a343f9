package tasks

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	DefaultCategory      = "personal"
	DefaultEstimatedTime = 25 // minutes
)

type Task struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Category      string             `bson:"category" json:"category"`
	Priority      string             `bson:"priority" json:"priority"`
	Completed     bool               `bson:"completed" json:"completed"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	CompletedAt   *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	AIGenerated   bool               `bson:"aiGenerated" json:"aiGenerated"`
	EstimatedTime int                `bson:"estimatedTime" json:"estimatedTime"`
}

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
