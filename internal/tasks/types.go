package tasks

import (
	"encoding/json"
	"time"
)

// CreateFields is the request body for POST /tasks. Only title is required;
// everything else falls back to the schema defaults.
type CreateFields struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Priority      string     `json:"priority"`
	Completed     bool       `json:"completed"`
	CreatedAt     *time.Time `json:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt"`
	AIGenerated   bool       `json:"aiGenerated"`
	EstimatedTime *int       `json:"estimatedTime"`
}

// UpdateFields is the request body for PUT /tasks/{id}. Every field is
// individually optional; only provided fields are written.
type UpdateFields struct {
	Title         *string      `json:"title"`
	Description   *string      `json:"description"`
	Category      *string      `json:"category"`
	Priority      *string      `json:"priority"`
	Completed     *bool        `json:"completed"`
	CompletedAt   NullableTime `json:"completedAt"`
	AIGenerated   *bool        `json:"aiGenerated"`
	EstimatedTime *int         `json:"estimatedTime"`
}

// NullableTime distinguishes an absent completedAt from an explicit null.
// Absent leaves the stored value alone; null clears it.
type NullableTime struct {
	Set   bool
	Value *time.Time
}

func (n *NullableTime) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	n.Value = &t
	return nil
}

func (n NullableTime) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
