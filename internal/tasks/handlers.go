package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"bored-tasks-backend/internal/ai"
)

// TaskStore is the store surface the HTTP handlers use. *Store implements
// it; tests substitute a fake.
type TaskStore interface {
	ListAll(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, fields CreateFields) (*Task, error)
	UpdateByID(ctx context.Context, id string, fields UpdateFields) (*Task, error)
	DeleteByID(ctx context.Context, id string) (*Task, error)
}

// SuggestionGenerator produces AI-suggested tasks. *ai.Client implements it.
type SuggestionGenerator interface {
	GenerateTasks(ctx context.Context, input ai.SuggestionInput) ([]ai.SuggestedTask, error)
}

type Handler struct {
	Store TaskStore
	AI    SuggestionGenerator

	// StrictValidation maps store validation errors to 400 instead of the
	// legacy 500. Off by default.
	StrictValidation bool
}

func NewHandler(store TaskStore, aiClient SuggestionGenerator, strictValidation bool) *Handler {
	return &Handler{
		Store:            store,
		AI:               aiClient,
		StrictValidation: strictValidation,
	}
}

// List handles GET /tasks.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Store.ListAll(r.Context())
	if err != nil {
		log.Println("❌ Failed to fetch tasks:", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// Create handles POST /tasks.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var fields CreateFields

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fields); err != nil {
		log.Println("❌ Failed to create task: bad request body:", err)
		respondError(w, http.StatusInternalServerError, "Failed to create task")
		return
	}

	task, err := h.Store.Create(r.Context(), fields)
	if err != nil {
		var verr *ValidationError
		if h.StrictValidation && errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Error())
			return
		}
		log.Println("❌ Failed to create task:", err)
		respondError(w, http.StatusInternalServerError, "Failed to create task")
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// Update handles PUT /tasks/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/tasks/")

	var fields UpdateFields

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fields); err != nil {
		log.Println("❌ Failed to update task: bad request body:", err)
		respondError(w, http.StatusInternalServerError, "Failed to update task")
		return
	}

	task, err := h.Store.UpdateByID(r.Context(), id, fields)
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		var verr *ValidationError
		if h.StrictValidation && errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Error())
			return
		}
		log.Println("❌ Failed to update task:", err)
		respondError(w, http.StatusInternalServerError, "Failed to update task")
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/tasks/")

	_, err := h.Store.DeleteByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		log.Println("❌ Failed to delete task:", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// GenerateTasks handles POST /ai/generate-tasks.
func (h *Handler) GenerateTasks(w http.ResponseWriter, r *http.Request) {
	var input ai.SuggestionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Println("❌ AI task generation error: bad request body:", err)
		respondError(w, http.StatusInternalServerError, "Failed to generate tasks")
		return
	}

	suggestions, err := h.AI.GenerateTasks(r.Context(), input)
	if err != nil {
		var aierr *ai.Error
		if errors.As(err, &aierr) {
			switch aierr.Reason {
			case ai.ReasonNotConfigured:
				respondError(w, http.StatusServiceUnavailable, "AI service is not configured")
				return
			case ai.ReasonUpstream:
				// Pass credential and rate-limit failures through as-is.
				switch aierr.Status {
				case http.StatusUnauthorized:
					log.Println("❌ AI task generation error:", err)
					respondError(w, http.StatusUnauthorized, "Invalid API key")
					return
				case http.StatusTooManyRequests:
					log.Println("❌ AI task generation error:", err)
					respondError(w, http.StatusTooManyRequests, "Rate limit exceeded")
					return
				}
			}
		}
		log.Println("❌ AI task generation error:", err)
		respondError(w, http.StatusInternalServerError, "Failed to generate tasks")
		return
	}

	respondJSON(w, http.StatusOK, suggestions)
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("❌ Failed to encode response:", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
