package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is the question bank backed by a SQLite file produced by the
// import tool. It implements Repository and is read-only at serving time;
// ReplaceQuestions exists for the importer.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		path = "quizly.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	// position preserves the source-file insertion order, which is the
	// stable order the Repository contract promises.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			position INTEGER PRIMARY KEY,
			source_id TEXT NOT NULL,
			prompt TEXT NOT NULL,
			options_json TEXT NOT NULL,
			correct_index INTEGER NOT NULL,
			level INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_level ON questions(level);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceQuestions overwrites the entire bank in one transaction. Questions
// with a correct index outside their options are rejected so the invariant
// holds for everything the store can ever serve.
func (s *SQLiteStore) ReplaceQuestions(ctx context.Context, questions []Question) error {
	for _, question := range questions {
		if !question.Valid() {
			return fmt.Errorf("question %q: correct index %d out of range for %d options",
				question.ID, question.CorrectIndex, len(question.Options))
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return err
	}

	for idx, question := range questions {
		optionsJSON, err := json.Marshal(question.Options)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO questions (position, source_id, prompt, options_json, correct_index, level)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			idx,
			question.ID,
			question.Prompt,
			string(optionsJSON),
			question.CorrectIndex,
			question.Level,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) AllQuestions(ctx context.Context) ([]Question, error) {
	return s.queryQuestions(
		ctx,
		`SELECT source_id, prompt, options_json, correct_index, level
		 FROM questions
		 ORDER BY position ASC`,
	)
}

func (s *SQLiteStore) QuestionsForLevel(ctx context.Context, level int) ([]Question, error) {
	return s.queryQuestions(
		ctx,
		`SELECT source_id, prompt, options_json, correct_index, level
		 FROM questions
		 WHERE level = ?
		 ORDER BY position ASC`,
		level,
	)
}

func (s *SQLiteStore) LevelSummary(ctx context.Context) ([]LevelInfo, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT level, COUNT(*) FROM questions GROUP BY level ORDER BY level ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := make([]LevelInfo, 0)
	for rows.Next() {
		var info LevelInfo
		if err := rows.Scan(&info.Level, &info.QuestionCount); err != nil {
			return nil, err
		}
		summary = append(summary, info)
	}

	return summary, rows.Err()
}

func (s *SQLiteStore) queryQuestions(ctx context.Context, query string, args ...any) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]Question, 0)
	for rows.Next() {
		var (
			question    Question
			optionsJSON string
		)
		if err := rows.Scan(&question.ID, &question.Prompt, &optionsJSON, &question.CorrectIndex, &question.Level); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(optionsJSON), &question.Options); err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}

	return questions, rows.Err()
}

func (s *SQLiteStore) String() string {
	return fmt.Sprintf("sqlite_store(%T)", s.db)
}
