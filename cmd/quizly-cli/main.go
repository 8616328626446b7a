package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"quizly/internal/cli"
	"quizly/internal/explain"
	"quizly/internal/quiz"
)

func main() {
	_ = godotenv.Load()

	dbPath := flag.String("db", envOr("QUIZ_DB", "quizly.db"), "path to the question bank database")
	level := flag.Int("level", 0, "limit the quiz to one difficulty level (0: all levels)")
	size := flag.Int("n", quiz.DefaultTargetSize, "number of questions")
	unlimited := flag.Bool("unlimited", false, "keep serving questions until you quit")
	flag.Parse()

	store, err := quiz.NewSQLiteStore(*dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer store.Close()

	explainer := explain.NewClient(explain.Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:   os.Getenv("OPENAI_MODEL"),
	})

	opts := cli.Options{Mode: quiz.ModeStandard, TargetSize: *size}
	if *unlimited {
		opts.Mode = quiz.ModeUnlimited
	}
	if *level > 0 {
		opts.Level = level
	}

	session := quiz.NewSession(store, explainer)
	if err := cli.Run(context.Background(), os.Stdin, os.Stdout, session, opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
