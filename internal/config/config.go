package config

import (
	"os"
	"strconv"
)

type Config struct {
	MongoURI    string
	MongoDBName string

	OpenAIKey   string
	OpenAIModel string

	Port int

	// StrictValidationErrors switches validation failures on create/update
	// from the legacy 500 to a 400. Off by default for compatibility.
	StrictValidationErrors bool
}

func Load() *Config {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080 // fallback
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "bored"
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4"
	}

	strict, err := strconv.ParseBool(os.Getenv("STRICT_VALIDATION_ERRORS"))
	if err != nil {
		strict = false
	}

	return &Config{
		MongoURI:    os.Getenv("MONGODB_URI"),
		MongoDBName: dbName,

		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: model,

		Port: port,

		StrictValidationErrors: strict,
	}
}
