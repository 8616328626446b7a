package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"quizly/internal/explain"
	"quizly/internal/httpapi"
	"quizly/internal/quiz"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	addr := flag.String("addr", envOr("ADDR", ":8080"), "HTTP listen address")
	dbPath := flag.String("db", envOr("QUIZ_DB", "quizly.db"), "path to the question bank database")
	origin := flag.String("origin", os.Getenv("CORS_ORIGIN"), "allowed browser origin for CORS (empty: same-origin)")
	flag.Parse()

	store, err := quiz.NewSQLiteStore(*dbPath)
	if err != nil {
		log.Fatalf("open question bank: %v", err)
	}
	defer store.Close()

	explainer := explain.NewClient(explain.Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:   os.Getenv("OPENAI_MODEL"),
	})

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Repo:          store,
		Explainer:     explainer,
		Sessions:      quiz.NewManager(store, explainer),
		AllowedOrigin: *origin,
		CookieSecret:  []byte(os.Getenv("SESSION_SECRET")),
	})

	server := &http.Server{
		Addr:              *addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("quizly-server listening on %s (db: %s)", *addr, *dbPath)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
