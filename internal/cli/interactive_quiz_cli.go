// Package cli runs interactive practice sessions in the terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/at-ishikawa/birdling/internal/assets"
	"github.com/at-ishikawa/birdling/internal/learning"
	"github.com/at-ishikawa/birdling/internal/scheduler"
)

var errEnd = errors.New("end")

// PracticeScheduler is what a practice session needs from the scheduler.
type PracticeScheduler interface {
	SelectBatch(ctx context.Context, learnerID int64, count int) ([]learning.CollectionEntry, error)
	RecordOutcome(ctx context.Context, learnerID, itemID int64, correct bool, opts ...scheduler.OutcomeOption) (scheduler.OutcomeResult, error)
}

// InteractiveQuizCLI contains shared logic for interactive quiz CLIs
type InteractiveQuizCLI struct {
	scheduler    PracticeScheduler
	learnerID    int64
	sessionID    string
	cards        []learning.CollectionEntry
	score        scheduler.Score
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	green        *color.Color
	red          *color.Color
}

// IO replaces the terminal a session reads from and writes to.
type IO struct {
	In  io.Reader
	Out io.Writer
}

func newInteractiveQuizCLI(ctx context.Context, s PracticeScheduler, learnerID int64, batchSize int, terminal *IO) (*InteractiveQuizCLI, error) {
	cards, err := s.SelectBatch(ctx, learnerID, batchSize)
	if err != nil {
		return nil, fmt.Errorf("scheduler.SelectBatch() > %w", err)
	}

	in, out := io.Reader(os.Stdin), io.Writer(os.Stdout)
	if terminal != nil {
		in, out = terminal.In, terminal.Out
	}
	return &InteractiveQuizCLI{
		scheduler:    s,
		learnerID:    learnerID,
		sessionID:    uuid.NewString(),
		cards:        cards,
		stdinReader:  bufio.NewReader(in),
		stdoutWriter: out,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
	}, nil
}

//go:generate mockgen -source=interactive_quiz_cli.go -destination=../mocks/cli/mock_session.go -package=mock_cli

type Session interface {
	Session(ctx context.Context) error
}

// Run calls session until it ends, fails, or the process is interrupted.
func Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for ctx.Err() == nil {
			if err := session.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("session.Session() > %w", err)
		}
	}
	return nil
}

// CardCount returns the number of remaining cards
func (cli *InteractiveQuizCLI) CardCount() int {
	return len(cli.cards)
}

func (cli *InteractiveQuizCLI) Score() scheduler.Score {
	return cli.score
}

func (cli *InteractiveQuizCLI) nextCard() (learning.CollectionEntry, bool) {
	if len(cli.cards) == 0 {
		return learning.CollectionEntry{}, false
	}
	return cli.cards[0], true
}

func (cli *InteractiveQuizCLI) removeCurrentCard() {
	if len(cli.cards) > 0 {
		cli.cards = cli.cards[1:]
	}
}

func (cli *InteractiveQuizCLI) readLine() (string, error) {
	line, err := cli.stdinReader.ReadString('\n')
	if errors.Is(err, io.EOF) {
		if strings.TrimSpace(line) == "" {
			return "", errEnd
		}
	} else if err != nil {
		return "", fmt.Errorf("stdinReader.ReadString() > %w", err)
	}
	return strings.TrimSpace(line), nil
}

// endOr finishes the session when the input is exhausted and returns other errors as is.
func (cli *InteractiveQuizCLI) endOr(err error) error {
	if errors.Is(err, errEnd) {
		return cli.finish()
	}
	return err
}

func isQuit(input string) bool {
	return input == "quit" || input == "exit"
}

// finish prints the score of the session and ends it.
func (cli *InteractiveQuizCLI) finish() error {
	if cli.score.Total == 0 {
		_, _ = fmt.Fprintln(cli.stdoutWriter, "Practice session ended.")
		return errEnd
	}
	_, _ = fmt.Fprintf(cli.stdoutWriter, "Practice session ended: %d of %d correct (%d%%)\n",
		cli.score.Correct, cli.score.Total, cli.score.Percent())
	return errEnd
}

// record stores the answer and prints how the level changed.
func (cli *InteractiveQuizCLI) record(ctx context.Context, card learning.CollectionEntry, correct bool, opts ...scheduler.OutcomeOption) error {
	opts = append(opts, scheduler.WithSessionID(cli.sessionID))
	result, err := cli.scheduler.RecordOutcome(ctx, cli.learnerID, card.Item.ID, correct, opts...)
	if err != nil {
		return fmt.Errorf("scheduler.RecordOutcome(%d) > %w", card.Item.ID, err)
	}

	cli.score.Total++
	if correct {
		cli.score.Correct++
	}
	switch {
	case result.NewLevel > result.PreviousLevel:
		_, _ = cli.green.Fprintf(cli.stdoutWriter, "Level up! %s\n", stars(result.NewLevel))
	case result.NewLevel < result.PreviousLevel:
		_, _ = cli.red.Fprintf(cli.stdoutWriter, "Back to level %d %s\n", result.NewLevel, stars(result.NewLevel))
	default:
		_, _ = fmt.Fprintf(cli.stdoutWriter, "Level %s\n", stars(result.NewLevel))
	}
	_, _ = fmt.Fprintln(cli.stdoutWriter)

	cli.removeCurrentCard()
	return nil
}

func stars(level int) string {
	return assets.Stars(level, learning.MaxLevel)
}
