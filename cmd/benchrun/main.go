package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1"

// step is one benchmark command. Its output streams straight to the terminal.
type step struct {
	header string
	args   []string
}

func (s step) run(log zerolog.Logger) int {
	if s.header != "" {
		fmt.Println(s.header)
	}
	cmd := exec.Command("go", s.args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	start := time.Now()
	err := cmd.Run()
	log.Debug().Strs("args", s.args).Dur("took", time.Since(start)).Msg("step finished")
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	log.Error().Err(err).Strs("args", s.args).Msg("could not start")
	return 1
}

func perftStep(header, label, fen string, depth int) step {
	args := []string{"run", "./cmd/perft", "-depth", fmt.Sprint(depth), "-label", label, "-verify"}
	if fen != "" {
		args = append(args, "-fen", fen)
	}
	return step{header: header, args: args}
}

// Usage: go run ./cmd/benchrun
func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if os.Getenv("BENCHRUN_DEBUG") != "" {
		log = log.Level(zerolog.DebugLevel)
	}

	steps := []step{
		{
			header: "Columns: BENCHMARK  N  ns/op  B/op  allocs/op",
			args:   []string{"test", "./board", "./engine", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s"},
		},
		perftStep("\nPerft Performance:\nTEST \t\tDepth \t\tNodes \t\tTime \tNPS", "Initial", "", 3),
		perftStep("", "Initial", "", 4),
		perftStep("", "Initial", "", 5),
		perftStep("", "Kiwipete", kiwipete, 3),
		{header: "\nSearch Performance:", args: []string{"run", "./cmd/searchbench", "-depth", "5", "-repeat", "3"}},
	}
	for _, s := range steps {
		if code := s.run(log); code != 0 {
			os.Exit(code)
		}
	}
}
