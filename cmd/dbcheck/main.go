package main

import (
	"context"
	"log"
	"os"

	"bored-tasks-backend/internal/config"
	"bored-tasks-backend/internal/db"
	"bored-tasks-backend/internal/health"
	"bored-tasks-backend/internal/tasks"
)

// dbcheck runs the same connect/read/write/delete probe as the
// /health/database endpoint, from the command line.
func main() {
	cfg := config.Load()

	if cfg.MongoURI == "" {
		log.Fatal("❌ MONGODB_URI is not set")
	}

	log.Println("🔍 Testing connection string...")
	if health.ValidateConnectionString(cfg.MongoURI) {
		log.Println("✅ Connection string looks valid")
	} else {
		log.Println("⚠️ Connection string is missing protocol, host or database segment")
	}

	conn := db.New(cfg.MongoURI)
	store := tasks.NewStore(conn, cfg.MongoDBName)
	checker := health.NewChecker(store, cfg.MongoURI)

	ctx := context.Background()
	defer conn.Close(ctx)

	status := checker.CheckHealth(ctx)
	if !status.Connection || !status.Read || !status.Write || !status.Delete {
		log.Println("❌ Database health check failed:", status.Error)
		os.Exit(1)
	}
	log.Println("🎉 All database operations successful!")

	stats, err := checker.GetStats(ctx)
	if err != nil {
		log.Println("❌ Failed to get database stats:", err)
		os.Exit(1)
	}

	log.Println("📊 Database Statistics:")
	log.Printf("   Total Tasks: %d", stats.TotalTasks)
	log.Printf("   Completed Tasks: %d", stats.CompletedTasks)
	log.Printf("   AI Generated Tasks: %d", stats.AIGeneratedTasks)
	log.Printf("   Completion Rate: %s%%", stats.CompletionRate)
	log.Printf("   AI Generated Rate: %s%%", stats.AIGeneratedRate)
}
