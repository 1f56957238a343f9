package health

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Response is the body of GET /health/database. Stats and ConnectionString
// appear only when requested via query parameters.
type Response struct {
	Status           string                `json:"status"`
	Timestamp        string                `json:"timestamp"`
	Database         Status                `json:"database"`
	ConnectionString *ConnectionStringInfo `json:"connectionString,omitempty"`
	Stats            interface{}           `json:"stats,omitempty"`
	Error            string                `json:"error,omitempty"`
}

type ConnectionStringInfo struct {
	Valid bool   `json:"valid"`
	URI   string `json:"uri"`
}

type Handler struct {
	Checker *Checker
}

func NewHandler(checker *Checker) *Handler {
	return &Handler{Checker: checker}
}

// Database handles GET /health/database?stats=&test=. It responds 200 only
// when all four probe steps succeeded, 503 otherwise, and 500 if the check
// itself blows up.
func (h *Handler) Database(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Println("❌ Database health check panicked:", rec)
			writeResponse(w, http.StatusInternalServerError, Response{
				Status:    "error",
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Error:     "Unknown error",
				Database:  Status{Error: "Unknown error"},
			})
		}
	}()

	includeStats := r.URL.Query().Get("stats") == "true"
	testConnection := r.URL.Query().Get("test") == "true"

	status := h.Checker.CheckHealth(r.Context())

	resp := Response{
		Status:    "success",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  status,
	}

	if testConnection {
		uri := "not configured"
		if h.Checker.MongoURI != "" {
			uri = "***configured***"
		}
		resp.ConnectionString = &ConnectionStringInfo{
			Valid: ValidateConnectionString(h.Checker.MongoURI),
			URI:   uri,
		}
	}

	if includeStats && status.Connection {
		stats, err := h.Checker.GetStats(r.Context())
		if err != nil {
			log.Println("❌ Failed to get database stats:", err)
			resp.Stats = map[string]string{"error": "Failed to get stats"}
		} else {
			resp.Stats = stats
		}
	}

	code := http.StatusServiceUnavailable
	if status.Connection && status.Read && status.Write && status.Delete {
		code = http.StatusOK
	}
	writeResponse(w, code, resp)
}

func writeResponse(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("❌ Failed to encode health response:", err)
	}
}
