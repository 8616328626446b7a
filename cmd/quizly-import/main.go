// quizly-import converts a compiled answers text file into the SQLite
// question bank the server reads. The run replaces the bank wholesale, so
// re-importing an updated file is idempotent.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"quizly/internal/qbank"
	"quizly/internal/quiz"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	inPath := flag.String("in", "answers_compiled.txt", "path to the compiled answers text file")
	dbPath := flag.String("db", envOr("QUIZ_DB", "quizly.db"), "path to the question bank database")
	flag.Parse()

	file, err := os.Open(*inPath)
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer file.Close()

	raw, err := qbank.Parse(file)
	if err != nil {
		log.Fatalf("parse %s: %v", *inPath, err)
	}
	if len(raw) == 0 {
		log.Fatalf("no usable questions found in %s", *inPath)
	}

	questions := make([]quiz.Question, 0, len(raw))
	for _, item := range raw {
		questions = append(questions, quiz.Question{
			ID:           item.ID,
			Prompt:       item.Prompt,
			Options:      item.Options,
			CorrectIndex: item.CorrectIndex,
			Level:        qbank.LevelFor(item.ID),
		})
	}

	store, err := quiz.NewSQLiteStore(*dbPath)
	if err != nil {
		log.Fatalf("open question bank: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.ReplaceQuestions(ctx, questions); err != nil {
		log.Fatalf("write question bank: %v", err)
	}

	summary, err := store.LevelSummary(ctx)
	if err != nil {
		log.Fatalf("read back summary: %v", err)
	}

	log.Printf("imported %d questions into %s", len(questions), *dbPath)
	for _, info := range summary {
		log.Printf("  level %d: %d questions", info.Level, info.QuestionCount)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
