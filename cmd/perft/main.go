package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/bitchess/bitchess/board"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "Cross-check counts against dragontoothmg (castling rights are ignored)")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	p, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	// Optional divide output
	if *divide {
		div := board.PerftDivide(p, *depth)
		var oracle map[string]uint64
		if *verify {
			oracle = dragontoothDivide(oracleFEN(p), *depth)
		}

		keys := maps.Keys(div)
		slices.Sort(keys)
		var sum uint64
		mismatches := 0
		for _, k := range keys {
			sum += div[k]
			if oracle != nil && oracle[k] != div[k] {
				fmt.Printf("%s: %d (dragontoothmg %d)\n", k, div[k], oracle[k])
				mismatches++
				continue
			}
			fmt.Printf("%s: %d\n", k, div[k])
		}
		for k := range oracle {
			if _, ok := div[k]; !ok {
				fmt.Printf("%s: missing (dragontoothmg %d)\n", k, oracle[k])
				mismatches++
			}
		}
		fmt.Printf("Total: %d\n", sum)
		if mismatches > 0 {
			os.Exit(1)
		}
		return
	}

	// Optional CPU profiling
	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	// Timing loop
	var totalNodes, nodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		nodes = board.Perft(p, *depth)
		totalNodes += nodes
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *verify {
		want := dragontoothPerft(dragontoothmg.ParseFen(oracleFEN(p)), *depth)
		if want != nodes {
			fmt.Fprintf(os.Stderr, "mismatch: got %d, dragontoothmg %d\n", nodes, want)
			os.Exit(1)
		}
		fmt.Println("verified against dragontoothmg")
	}

	// Optional heap profile after run
	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

// oracleFEN drops castling rights so the reference generator agrees with
// ours, which never castles.
func oracleFEN(p *board.Position) string {
	f := strings.Fields(p.ToFEN())
	f[2] = "-"
	return strings.Join(f, " ")
}

func dragontoothPerft(b dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		undo()
	}
	return nodes
}

func dragontoothDivide(fen string, depth int) map[string]uint64 {
	b := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		undo := b.Apply(m)
		out[strings.ToLower(m.String())] = dragontoothPerft(b, depth-1)
		undo()
	}
	return out
}
