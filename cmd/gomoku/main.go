// Command gomoku is a terminal self-play/human-vs-AI harness over
// internal/match and internal/players, exercising the same core
// cmd/gomokud serves over HTTP through a second, interactive front-end.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/gomoku-ai/core/internal/board"
	"github.com/gomoku-ai/core/internal/match"
	"github.com/gomoku-ai/core/internal/parameters"
	"github.com/gomoku-ai/core/internal/players"
)

var (
	flagSize      = flag.Int("size", 15, "Board size: 15 or 19.")
	flagRadius    = flag.Int("radius", 2, "Chebyshev radius stored on the match state. AI candidate generation uses the radius= key of --config/--config2 instead.")
	flagHotseat   = flag.Bool("hotseat", false, "Hotseat match: human vs human.")
	flagWatch     = flag.Bool("watch", false, "Watch mode: AI vs AI playing.")
	flagFirst     = flag.String("first", "", "Who plays first: \"human\" or \"ai\". Default is random.")
	flagAIConfig  = flag.String("config", players.DefaultAIConfig, "AI configuration against which to play.")
	flagAIConfig2 = flag.String("config2", players.DefaultAIConfig, "Second AI configuration, used only with --watch.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		fmt.Println("\ninterrupted")
		cancel()
	}()
	defer cancel()

	if *flagSize != 15 && *flagSize != 19 {
		klog.Fatalf("invalid --size=%d, must be 15 or 19", *flagSize)
	}
	if *flagHotseat && *flagWatch {
		klog.Fatalf("--hotseat and --watch cannot be used together")
	}

	crossCfg, naughtCfg := seatConfigs()
	st := must.M1(match.New(*flagSize, crossCfg, naughtCfg, *flagRadius))

	naughtAIConfig := *flagAIConfig
	if *flagWatch {
		naughtAIConfig = *flagAIConfig2
	}
	seats := map[board.Cell]players.Player{
		board.Cross:  must.M1(playerFor(crossCfg, *flagAIConfig)),
		board.Naught: must.M1(playerFor(naughtCfg, naughtAIConfig)),
	}

	reader := bufio.NewReader(os.Stdin)
	for st.Outcome == match.InProgress {
		printBoard(st.Board)
		mover := st.PlayerToMove
		seat := seats[mover]

		var row, col int
		if seat.Kind() == match.Human {
			row, col = readHumanMove(reader, mover)
		} else {
			fmt.Printf("%s (AI) is thinking...\n", mover)
			move, stats, err := seat.Decide(ctx, st)
			if err != nil {
				klog.Exitf("search failed: %+v", err)
			}
			row, col = move.Row, move.Col
			fmt.Printf("%s plays (%d,%d) — nodes=%d prunes=%d\n", mover, row, col, stats.Nodes, stats.Prunes)
		}

		if _, err := st.ApplyMove(match.MoveInput{Row: row, Col: col}); err != nil {
			fmt.Printf("illegal move: %v\n", err)
			continue
		}
		fmt.Println()
	}

	printBoard(st.Board)
	fmt.Printf("match over: %s\n", st.Outcome)
}

func seatConfigs() (cross, naught match.PlayerConfig) {
	if *flagHotseat {
		return match.PlayerConfig{Kind: match.Human}, match.PlayerConfig{Kind: match.Human}
	}
	if *flagWatch {
		return aiConfig(*flagAIConfig), aiConfig(*flagAIConfig2)
	}

	humanFirst := false
	switch strings.ToLower(*flagFirst) {
	case "human":
		humanFirst = true
	case "ai":
		humanFirst = false
	case "":
		humanFirst = rand.IntN(2) == 0
	default:
		klog.Fatalf("invalid --first=%q, only \"human\" or \"ai\"", *flagFirst)
	}
	if humanFirst {
		return match.PlayerConfig{Kind: match.Human}, aiConfig(*flagAIConfig)
	}
	return aiConfig(*flagAIConfig), match.PlayerConfig{Kind: match.Human}
}

func aiConfig(config string) match.PlayerConfig {
	params := parameters.Params(parameters.NewFromConfigString(config))
	depth := must.M1(parameters.GetParamOr(params, "max_depth", 3))
	return match.PlayerConfig{Kind: match.AI, SearchDepth: depth}
}

func playerFor(cfg match.PlayerConfig, config string) (players.Player, error) {
	if cfg.Kind == match.Human {
		return players.HumanPlayer{}, nil
	}
	return players.NewAIPlayerFromConfig(config)
}

func readHumanMove(reader *bufio.Reader, mover board.Cell) (row, col int) {
	for {
		fmt.Printf("%s (human) move, as \"row col\": ", mover)
		line, err := reader.ReadString('\n')
		if err != nil {
			klog.Exitf("failed reading move: %v", err)
		}
		if _, err := fmt.Sscanf(strings.TrimSpace(line), "%d %d", &row, &col); err != nil {
			fmt.Println("could not parse, expected two integers separated by a space")
			continue
		}
		return row, col
	}
}

func printBoard(b *board.Board) {
	fmt.Println(b.String())
}
