// Package qbank parses the compiled answers text format into structured
// questions and assigns the level buckets the quiz serves from.
//
// The line grammar:
//
//	Question 12: What is the capital of France?
//	[1] Berlin
//	[2] Paris → CORRECT
//	[3] Madrid
//
// A "Question <id>: <text>" line opens a question; "[n] <text>" lines append
// options in order, and the trailing marker on an option names the correct
// one. Questions that never see the marker are dropped.
package qbank

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const correctMarker = "→ CORRECT"

var (
	questionRe = regexp.MustCompile(`^Question (\d+): (.*)$`)
	optionRe   = regexp.MustCompile(`^\[(\d+)\]\s*(.*)$`)
)

// RawQuestion is one parsed entry before level assignment.
type RawQuestion struct {
	ID           string
	Prompt       string
	Options      []string
	CorrectIndex int
}

// Parse reads the compiled answers format and returns every question that
// has a marked correct answer, in file order. Lines that match neither rule
// are ignored, so surrounding prose in the source file is harmless.
func Parse(r io.Reader) ([]RawQuestion, error) {
	var (
		questions []RawQuestion
		current   *RawQuestion
	)

	flush := func() {
		if current == nil {
			return
		}
		if len(current.Options) > 0 && current.CorrectIndex >= 0 && current.CorrectIndex < len(current.Options) {
			questions = append(questions, *current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if match := questionRe.FindStringSubmatch(line); match != nil {
			flush()
			current = &RawQuestion{
				ID:           match[1],
				Prompt:       strings.TrimSpace(match[2]),
				CorrectIndex: -1,
			}
			continue
		}

		if current == nil {
			continue
		}
		if match := optionRe.FindStringSubmatch(line); match != nil {
			text := strings.TrimSpace(match[2])
			if strings.HasSuffix(text, correctMarker) {
				text = strings.TrimSpace(strings.TrimSuffix(text, correctMarker))
				// The option number is 1-based in the file.
				if number, err := strconv.Atoi(match[1]); err == nil {
					current.CorrectIndex = number - 1
				}
			}
			current.Options = append(current.Options, text)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return questions, nil
}

// LevelFor buckets a question ID into a level of 30 questions each. This is
// a heuristic carried over from the dataset producer: levels are opaque
// grouping labels, not verified difficulty tiers. IDs that do not parse as
// positive integers land in level 1.
func LevelFor(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return 1
	}
	return (n + 29) / 30
}
