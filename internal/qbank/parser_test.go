package qbank

import (
	"strings"
	"testing"
)

const sampleFile = `
Question 1: What is the capital of France?
[1] Berlin
[2] Paris → CORRECT
[3] Madrid

Question 2: Which planet is closest to the sun?
[1] Mercury → CORRECT
[2] Venus
[3] Earth
[4] Mars

Question 3: This one was never graded.
[1] Maybe
[2] Perhaps

Question 45: What is 2+2?
[1] 3
[2] 4 → CORRECT
`

func TestParse(t *testing.T) {
	questions, err := Parse(strings.NewReader(sampleFile))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Question 3 has no correct marker and must be dropped.
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}

	first := questions[0]
	if first.ID != "1" || first.Prompt != "What is the capital of France?" {
		t.Fatalf("unexpected first question: %+v", first)
	}
	if len(first.Options) != 3 || first.CorrectIndex != 1 {
		t.Fatalf("unexpected options/correct index: %+v", first)
	}
	if first.Options[1] != "Paris" {
		t.Fatalf("correct marker not stripped: %q", first.Options[1])
	}

	if questions[1].CorrectIndex != 0 {
		t.Fatalf("question 2 correct index = %d, want 0", questions[1].CorrectIndex)
	}

	// The final question has no trailing blank line; it must still flush.
	last := questions[2]
	if last.ID != "45" || last.CorrectIndex != 1 || last.Options[1] != "4" {
		t.Fatalf("final question not flushed correctly: %+v", last)
	}
}

func TestParseIgnoresSurroundingProse(t *testing.T) {
	input := "Compiled answers, spring edition\n\n" +
		"Question 9: Pick one.\n" +
		"some stray commentary line\n" +
		"[1] right → CORRECT\n" +
		"[2] wrong\n"

	questions, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(questions) != 1 || len(questions[0].Options) != 2 {
		t.Fatalf("prose lines leaked into parse: %+v", questions)
	}
}

func TestParseEmptyInput(t *testing.T) {
	questions, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("empty input produced %d questions", len(questions))
	}
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		id   string
		want int
	}{
		{"1", 1},
		{"30", 1},
		{"31", 2},
		{"60", 2},
		{"61", 3},
		{"", 1},
		{"not-a-number", 1},
		{"-4", 1},
	}

	for _, tc := range cases {
		if got := LevelFor(tc.id); got != tc.want {
			t.Fatalf("LevelFor(%q) = %d, want %d", tc.id, got, tc.want)
		}
	}
}
