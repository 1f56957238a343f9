package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/rs/cors"

	"bored-tasks-backend/internal/ai"
	"bored-tasks-backend/internal/config"
	"bored-tasks-backend/internal/db"
	"bored-tasks-backend/internal/health"
	"bored-tasks-backend/internal/tasks"
)

func main() {
	cfg := config.Load()

	if cfg.MongoURI == "" {
		log.Fatal("❌ MONGODB_URI is not set")
	}

	// The connection itself is established lazily on the first store
	// operation; all requests share the one cached client.
	conn := db.New(cfg.MongoURI)
	store := tasks.NewStore(conn, cfg.MongoDBName)

	aiClient := ai.New(cfg.OpenAIKey, cfg.OpenAIModel)
	if aiClient.Configured() {
		log.Println("✅ AI task generation enabled, model:", cfg.OpenAIModel)
	} else {
		log.Println("⚠️ OPENAI_API_KEY is not set, AI task generation disabled")
	}

	taskHandler := tasks.NewHandler(store, aiClient, cfg.StrictValidationErrors)
	healthHandler := health.NewHandler(health.NewChecker(store, cfg.MongoURI))

	mux := http.NewServeMux()

	// ----- TASKS API -----
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			taskHandler.List(w, r)
		case http.MethodPost:
			taskHandler.Create(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/tasks/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			taskHandler.Update(w, r)
		case http.MethodDelete:
			taskHandler.Delete(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// ----- AI API -----
	mux.HandleFunc("/ai/generate-tasks", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			taskHandler.GenerateTasks(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// ----- HEALTH API -----
	mux.HandleFunc("/health/database", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			healthHandler.Database(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Println("🚀 API server is running on", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
