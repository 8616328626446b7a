// Package cli runs a quiz session in the terminal against the same session
// engine the web server uses. It exists mostly for poking at a freshly
// imported question bank without starting the server.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"quizly/internal/quiz"
)

const maxAttempts = 3

// Options configures the session the CLI drives.
type Options struct {
	Mode       quiz.Mode
	Level      *int
	TargetSize int
}

// Run starts a session and plays it question by question until it finishes
// or the input ends. Entering "q" ends the session early, which is the only
// way out of unlimited mode.
func Run(ctx context.Context, in io.Reader, out io.Writer, session *quiz.Session, opts Options) error {
	if err := session.Start(ctx, opts.Mode, opts.Level, opts.TargetSize); err != nil {
		return err
	}

	reader := bufio.NewReader(in)

	for {
		snap := session.Snapshot()
		if snap.Finished {
			break
		}
		if snap.Question == nil {
			break
		}

		printQuestion(out, snap)

		chosenIndex, quit := getAnswer(reader, out, len(snap.Question.Options))
		fmt.Fprintln(out)
		if quit {
			session.EndEarly()
			break
		}

		session.SelectOption(chosenIndex)
		snap = session.Snapshot()

		if chosenIndex == snap.Question.CorrectIndex {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Wrong. Correct answer was %s\n", snap.Question.CorrectText())
			if ready := session.ExplanationReady(); ready != nil {
				select {
				case <-ready:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if explanation := session.Snapshot().Explanation; explanation != "" {
				fmt.Fprintf(out, "%s\n", explanation)
			}
		}
		fmt.Fprintln(out)

		session.Advance()
	}

	final := session.Snapshot()
	fmt.Fprintf(out, "\nFinal score: %d/%d (%d%%)\n", final.Score, final.SequenceLength, final.FinalPercent)
	return nil
}

func printQuestion(out io.Writer, snap quiz.Snapshot) {
	fmt.Fprintln(out)
	if snap.Mode == quiz.ModeUnlimited {
		fmt.Fprintf(out, "Q%d: %s\n\n", snap.Position+1, snap.Question.Prompt)
	} else {
		fmt.Fprintf(out, "Q%d/%d: %s\n\n", snap.Position+1, snap.SequenceLength, snap.Question.Prompt)
	}
	for idx, option := range snap.Question.Options {
		fmt.Fprintf(out, "%c. %s\n", 'A'+idx, option)
	}
	fmt.Fprintln(out)
}

func getAnswer(reader *bufio.Reader, out io.Writer, optionCount int) (index int, quit bool) {
	if optionCount < 1 {
		return -1, true
	}

	maxLetter := byte('A' + optionCount - 1)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		userAnswer, err := reader.ReadString('\n')
		if err != nil {
			return -1, true
		}

		userAnswer = strings.ToUpper(strings.TrimSpace(userAnswer))
		if userAnswer == "Q" {
			return -1, true
		}
		if len(userAnswer) == 1 {
			letter := userAnswer[0]
			if letter >= 'A' && letter <= maxLetter {
				return int(letter - 'A'), false
			}
		}

		if attempt < maxAttempts {
			fmt.Fprintf(out, "\nInvalid input. Please enter a letter A-%c, or q to quit.\n", maxLetter)
		}
	}

	return -1, true
}
