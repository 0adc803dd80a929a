// Package main provides the interactive initiative tracker binary.
//
// Usage:
//
//	initiative -config configs/dev.yaml goblin:3 ogre
//
// Each argument selects a bestiary entry by index, optionally with a count.
// The configured party, if any, joins the roster after the monsters.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/cory-johannsen/initiative/internal/config"
	"github.com/cory-johannsen/initiative/internal/content"
	"github.com/cory-johannsen/initiative/internal/game/combat"
	"github.com/cory-johannsen/initiative/internal/game/command"
	"github.com/cory-johannsen/initiative/internal/game/dice"
	"github.com/cory-johannsen/initiative/internal/observability"
	"github.com/cory-johannsen/initiative/internal/render"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	monsters := flag.String("monsters", "", "comma-separated bestiary selections, e.g. goblin:3,ogre")
	list := flag.Bool("list", false, "list bestiary indexes and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	lib, err := content.Load(ctx, cfg.Content, logger)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}

	if *list {
		for _, idx := range lib.Bestiary.Indexes() {
			m, _ := lib.Bestiary.Get(idx)
			fmt.Printf("%-24s %-24s CR %s\n", idx, m.Name, m.Challenge())
		}
		return
	}

	selections := flag.Args()
	if *monsters != "" {
		selections = append(strings.Split(*monsters, ","), selections...)
	}
	chosen, err := lib.Select(selections)
	if err != nil {
		logger.Fatal("selecting monsters", zap.Error(err))
	}
	if len(chosen)+len(lib.Party.Players) == 0 {
		logger.Fatal("empty roster: name at least one monster or configure content.party_file")
	}

	src := dice.NewCryptoSource()
	if cfg.Encounter.Seed != 0 {
		src = dice.NewSeededSource(cfg.Encounter.Seed)
		logger.Info("using fixed dice seed", zap.Uint64("seed", cfg.Encounter.Seed))
	}
	roller := dice.NewRoller(src, logger)
	roster := combat.BuildRoster(chosen, lib.Party.Players, roller, combat.RosterOptions{
		RollHitPoints:  cfg.Encounter.RollHitPoints,
		RollInitiative: cfg.Encounter.RollInitiative,
	})

	engine := combat.NewEngine(cfg.Encounter.MaxCombatants, logger)
	enc, err := engine.Start(roster)
	if err != nil {
		logger.Fatal("starting encounter", zap.Error(err))
	}
	defer engine.Shutdown()

	color := cfg.Encounter.Color && term.IsTerminal(int(os.Stdout.Fd()))
	dispatcher := command.NewDispatcher(command.DefaultRegistry(), enc, lib.Conditions, render.New(color), logger)

	logger.Info("tracker ready",
		zap.String("encounter", enc.ID),
		zap.Int("combatants", len(roster)),
		zap.Bool("color", color),
		zap.Duration("startup", time.Since(start)),
	)

	if err := run(ctx, dispatcher, os.Stdin, os.Stdout); err != nil {
		logger.Error("tracker stopped", zap.Error(err))
	}
}

// run feeds input lines to the dispatcher until quit, end of input or ctx is done.
func run(ctx context.Context, d *command.Dispatcher, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	redraw := func() {
		res, err := d.Execute("status")
		if err == nil {
			fmt.Fprint(out, res.Output)
		}
	}

	redraw()
	for {
		fmt.Fprint(out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			res, err := d.Execute(line)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			fmt.Fprint(out, res.Output)
			if res.Quit {
				return nil
			}
			if res.Redraw {
				fmt.Fprintln(out)
				redraw()
			}
		}
	}
}
