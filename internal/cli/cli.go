package cli

import (
	"bufio"
	"context"
	"ctchen222/Tic-Tac-Toe-Solo/internal/bot"
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"ctchen222/Tic-Tac-Toe-Solo/internal/match"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/termenv"
)

const prompt = "Your move (row col, r to reset, q to quit): "

// CLI plays games against the computer on a terminal.
type CLI struct {
	In    io.Reader
	Out   *termenv.Output
	Rand  bot.Rand
	Delay time.Duration
}

// Play runs games until the input ends, the player quits or ctx is done.
// A finished game is announced and immediately followed by a new one.
func (c *CLI) Play(ctx context.Context) error {
	in := bufio.NewScanner(c.In)
	ctl := match.New(c.Rand)
	c.announceStart(ctl)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch ctl.State() {
		case match.GameOver:
			fmt.Fprintln(c.Out, Announcement(ctl.Outcome()))
			ctl.Reset()
			c.announceStart(ctl)

		case match.AwaitingComputer:
			if err := c.pause(ctx); err != nil {
				return err
			}
			tr, err := ctl.ComputerMove()
			if err != nil {
				return fmt.Errorf("computer failed to move: %w", err)
			}
			slog.DebugContext(ctx, "computer moved", "move.row", tr.Move.Row, "move.col", tr.Move.Col, "move.opening", tr.Opening, "search.nodes", tr.Nodes)
			fmt.Fprintf(c.Out, "Computer plays %d %d\n", tr.Move.Row+1, tr.Move.Col+1)
			c.render(ctl.Board())

		case match.AwaitingHuman:
			fmt.Fprint(c.Out, prompt)
			if !in.Scan() {
				fmt.Fprintln(c.Out)
				return in.Err()
			}
			line := strings.TrimSpace(in.Text())
			switch strings.ToLower(line) {
			case "q", "quit":
				return nil
			case "r", "reset":
				ctl.Reset()
				c.announceStart(ctl)
				continue
			}

			row, col, err := parseMove(line)
			if err != nil {
				fmt.Fprintln(c.Out, err)
				continue
			}
			if _, err := ctl.SubmitHumanMove(row, col); err != nil {
				fmt.Fprintf(c.Out, "Illegal move: %v\n", err)
				continue
			}
			c.render(ctl.Board())
		}
	}
}

func (c *CLI) announceStart(ctl *match.Controller) {
	fmt.Fprintln(c.Out)
	if ctl.State() == match.AwaitingHuman {
		fmt.Fprintln(c.Out, "New game. You go first.")
	} else {
		fmt.Fprintln(c.Out, "New game. The computer goes first.")
	}
	c.render(ctl.Board())
}

func (c *CLI) pause(ctx context.Context) error {
	if c.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *CLI) render(b game.Board) {
	RenderBoard(c.Out, b)
}

// Announcement is the line printed when a game ends.
func Announcement(o game.Outcome) string {
	switch {
	case o.Result == game.Draw:
		return "It's a Draw!"
	case o.Winner == game.Human:
		return "You win!"
	case o.Winner == game.Computer:
		return "Computer wins!"
	}
	return ""
}

// RenderBoard writes b with 1-based row and column labels. X is drawn in
// red and O in green when the terminal supports colour.
func RenderBoard(out *termenv.Output, b game.Board) {
	fmt.Fprintln(out, "    1   2   3")
	for r := range game.Size {
		cells := make([]string, game.Size)
		for col := range game.Size {
			cells[col] = glyph(out, b.Cell(r, col))
		}
		fmt.Fprintf(out, "%d   %s\n", r+1, strings.Join(cells, " | "))
		if r < game.Size-1 {
			fmt.Fprintln(out, "   ---+---+---")
		}
	}
}

func glyph(out *termenv.Output, m game.PlayerMark) string {
	switch m {
	case game.PlayerX:
		return out.String(string(m)).Foreground(out.Color("1")).Bold().String()
	case game.PlayerO:
		return out.String(string(m)).Foreground(out.Color("2")).Bold().String()
	}
	return " "
}

// parseMove reads a 1-based "row col" pair into board coordinates. Range
// checks are left to the board.
func parseMove(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, errors.New("enter a row and a column, e.g. 2 3")
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row %q", fields[0])
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column %q", fields[1])
	}
	return row - 1, col - 1, nil
}
