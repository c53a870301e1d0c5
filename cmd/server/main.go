// Command server exposes the search engine over HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitchess/bitchess/api"
	"github.com/bitchess/bitchess/engine"
	"github.com/rs/zerolog"
)

const gracefulShutdownTimeout = 5 * time.Second

func main() {
	var (
		addr      = flag.String("addr", "localhost:8080", "listen address")
		depth     = flag.Int("depth", engine.DefaultDepth, "default search depth when a request has none")
		ttBits    = flag.Uint("tt-bits", engine.DefaultTTBits, "transposition table size as a power of two, per request")
		maxPlies  = flag.Int("max-plies", 300, "ply limit for requests that play the game out")
		timeLimit = flag.Duration("deepen-budget", engine.DefaultTimeBudget, "wall time after which adaptive deepening stops")
		logLevel  = flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
		dev       = flag.Bool("dev", false, "development mode (console logs, relaxed rate limits)")
	)
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("bad -log-level")
	}
	var logger zerolog.Logger
	if *dev {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	logger = logger.Level(level).With().Timestamp().Str("service", "bitchess").Logger()

	app := api.NewFiberApp(api.Config{
		Logger:       logger,
		DefaultDepth: *depth,
		MaxPlies:     *maxPlies,
		RateLimit:    10,
		DevMode:      *dev,
		EngineOptions: []engine.Option{
			engine.WithTTBits(*ttBits),
			engine.WithTimeBudget(*timeLimit),
		},
	})

	go func() {
		logger.Info().Str("addr", *addr).Int("depth", *depth).Uint("tt_bits", *ttBits).Bool("dev", *dev).Msg("server starting")
		if err := app.Listen(*addr); err != nil {
			logger.Error().Err(err).Msg("listen")
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server exited")
}
