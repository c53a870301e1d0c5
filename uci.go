package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bitchess/bitchess/board"
	"github.com/bitchess/bitchess/engine"
	"github.com/rs/zerolog"
)

func main() {
	logLevel := flag.String("log-level", "warn", "stderr log level (trace, debug, info, warn, error)")
	ttBits := flag.Uint("tt-bits", engine.DefaultTTBits, "transposition table size as a power of two")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	s := newSession(os.Stdout, engine.WithLogger(logger), engine.WithTTBits(*ttBits))
	s.uciLoop(os.Stdin)
}

// session holds the position and searcher shared by consecutive commands.
type session struct {
	out      io.Writer
	position *board.Position
	searcher *engine.Searcher
}

func newSession(out io.Writer, opts ...engine.Option) *session {
	return &session{
		out:      out,
		position: board.NewPosition(),
		searcher: engine.NewSearcher(opts...),
	}
}

func (s *session) info(args ...any) {
	fmt.Fprintln(s.out, append([]any{"info string"}, args...)...)
}

func (s *session) uciLoop(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Fprintln(s.out, "id name bitchess")
			fmt.Fprintln(s.out, "id author bitchess")
			fmt.Fprintln(s.out, "uciok")
		case "isready":
			fmt.Fprintln(s.out, "readyok")
		case "ucinewgame":
			s.position = board.NewPosition()
			s.searcher.Reset()
		case "quit":
			return
		case "position":
			s.setPosition(tokens[1:])
		case "go":
			depth, ok := s.parseDepth(tokens[1:])
			if !ok {
				continue
			}
			res, err := s.searcher.BestMove(context.Background(), s.position, depth)
			if err != nil {
				s.info("search failed:", err)
				continue
			}
			fmt.Fprintf(s.out, "info depth %d score %d nodes %d time %d\n",
				res.Depth, res.Score, res.Stats.Nodes, res.Stats.Elapsed.Milliseconds())
			fmt.Fprintln(s.out, "bestmove", res.String())
		case "play":
			depth, ok := s.parseDepth(tokens[1:])
			if !ok {
				continue
			}
			res, err := s.searcher.Play(context.Background(), s.position, depth, func(ply int, r engine.Result) {
				fmt.Fprintf(s.out, "%d. %s (%d)\n", ply, r, r.Score)
			})
			if err != nil {
				s.info("play failed:", err)
				continue
			}
			fmt.Fprintln(s.out, "result", res.String())
		case "d":
			fmt.Fprint(s.out, s.position.String())
			fmt.Fprintln(s.out, "Fen:", s.position.ToFEN())
			fmt.Fprintln(s.out, "Key:", strconv.FormatUint(s.position.Hash(), 16))
		case "eval":
			fmt.Fprintln(s.out, "material", engine.Evaluate(s.position))
		case "perft":
			if len(tokens) < 2 {
				s.info("Malformed perft command")
				continue
			}
			depth, err := strconv.Atoi(tokens[1])
			if err != nil || depth < 0 {
				s.info("Malformed perft depth", tokens[1])
				continue
			}
			start := time.Now()
			nodes := board.Perft(s.position, depth)
			fmt.Fprintf(s.out, "nodes %d time %d\n", nodes, time.Since(start).Milliseconds())
		default:
			s.info("Unknown command:", line)
		}
	}
}

// parseDepth reads the "depth N" option of go and play. Other go options are
// accepted and ignored; without a depth the default depth is used.
func (s *session) parseDepth(tokens []string) (int, bool) {
	depth := engine.DefaultDepth
	for i := 0; i < len(tokens); i++ {
		tok := strings.ToLower(tokens[i])
		if tok != "depth" {
			if n, err := strconv.Atoi(tok); err == nil && i == 0 {
				depth = n
			}
			continue
		}
		if i+1 >= len(tokens) {
			s.info("Malformed go command option depth")
			return 0, false
		}
		n, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			s.info("Malformed go command option; could not convert depth")
			return 0, false
		}
		depth = n
		i++
	}
	return depth, true
}

// setPosition handles "startpos [moves ...]" and "fen <fen> [moves ...]". On
// any error the previous position is kept.
func (s *session) setPosition(tokens []string) {
	if len(tokens) == 0 {
		s.info("Malformed position command")
		return
	}

	var p *board.Position
	rest := tokens[1:]
	switch strings.ToLower(tokens[0]) {
	case "startpos":
		p = board.NewPosition()
	case "fen":
		end := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		var err error
		p, err = board.ParseFEN(strings.Join(rest[:end], " "))
		if err != nil {
			s.info("Invalid fen position:", err)
			return
		}
		rest = rest[end:]
	default:
		s.info("Invalid position subcommand")
		return
	}

	s.searcher.Reset()
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, moveStr := range rest[1:] {
			m, err := board.ParseMove(p, strings.ToLower(moveStr))
			if err != nil {
				s.info("Move", moveStr, "not found for position", p.ToFEN())
				return
			}
			p.Apply(m)
			s.searcher.History().Push(p.Hash())
		}
	}
	s.position = p
}
