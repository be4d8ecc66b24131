package main

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Solo/internal/bot"
	"ctchen222/Tic-Tac-Toe-Solo/internal/cli"
	"ctchen222/Tic-Tac-Toe-Solo/internal/logger"
	"flag"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"
)

var (
	delay    = flag.Duration("delay", 500*time.Millisecond, "pause before the computer replies")
	seed     = flag.Uint64("seed", 0, "seed for the computer's random choices (0 picks one)")
	logLevel = flag.String("log-level", "error", "log level written to stderr")
)

func main() {
	flag.Parse()

	level, err := logger.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("invalid -log-level: %v", err)
	}
	slog.SetDefault(logger.New(os.Stderr, level))

	var rng bot.Rand = bot.NewRand()
	if *seed != 0 {
		rng = rand.New(rand.NewPCG(*seed, *seed))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli.CLI{
		In:    os.Stdin,
		Out:   termenv.NewOutput(os.Stdout),
		Rand:  rng,
		Delay: *delay,
	}
	if err := c.Play(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("game aborted: %v", err)
	}
}
