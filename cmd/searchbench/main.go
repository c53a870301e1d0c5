package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"

	"github.com/bitchess/bitchess/board"
	"github.com/bitchess/bitchess/engine"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", engine.DefaultDepth, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	ttBits := flag.Uint("tt-bits", engine.DefaultTTBits, "transposition table size as a power of two")
	fixed := flag.Bool("fixed", true, "stop at the requested depth instead of deepening adaptively")
	verbose := flag.Bool("v", false, "log every depth pass to stderr")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.StampMilli}).
		Level(level).With().Timestamp().Logger()

	opts := []engine.Option{engine.WithLogger(logger), engine.WithTTBits(*ttBits)}
	if *fixed {
		opts = append(opts, engine.WithTimeBudget(0))
	}
	s := engine.NewSearcher(opts...)

	fen := board.StartFEN
	if *fenFlag != "" {
		fen = *fenFlag
	}
	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d\n", fen, *depthFlag, *repeatFlag)

	var total engine.Stats
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		// Fresh position and game for each run
		p, err := board.ParseFEN(fen)
		if err != nil {
			log.Fatalf("bad FEN: %v", err)
		}
		s.Reset()

		res, err := s.BestMove(context.Background(), p, *depthFlag)
		if err != nil {
			log.Fatalf("search: %v", err)
		}
		total.Add(res.Stats)
		logger.Info().Int("iteration", i+1).Str("bestmove", res.String()).Int("score", res.Score).Object("stats", res.Stats).Msg("search done")
		fmt.Printf("iteration %d: bestmove %v  depth=%d nodes=%d time=%v\n", i+1, res, res.Depth, res.Stats.Nodes, res.Stats.Elapsed)
	}
	fmt.Printf("total time: %v  nodes=%d nps=%d cutoffs=%d tt_hits=%d\n",
		time.Since(startAll), total.Nodes, total.NPS(), total.Cutoffs, total.TTHits)

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
