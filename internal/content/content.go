// Package content loads the YAML data an encounter is assembled from: the
// bestiary, the condition reference text and the optional party.
package content

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/initiative/internal/config"
	"github.com/cory-johannsen/initiative/internal/game/combat"
	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/monster"
)

// Library is the loaded content set.
type Library struct {
	Bestiary   *monster.Bestiary
	Conditions *condition.Registry
	// Party is empty when no party file is configured.
	Party combat.Party
}

// Load reads every configured content source concurrently.
//
// Precondition: cfg has passed config validation.
// Postcondition: Returns a fully populated Library, or the first error encountered.
func Load(ctx context.Context, cfg config.ContentConfig, logger *zap.Logger) (*Library, error) {
	lib := &Library{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		b, err := monster.LoadBestiary(cfg.BestiaryDir)
		if err != nil {
			return fmt.Errorf("loading bestiary: %w", err)
		}
		lib.Bestiary = b
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		reg, err := condition.LoadDirectory(cfg.ConditionsDir)
		if err != nil {
			return fmt.Errorf("loading conditions: %w", err)
		}
		lib.Conditions = reg
		return nil
	})
	if cfg.PartyFile != "" {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := combat.LoadParty(cfg.PartyFile)
			if err != nil {
				return fmt.Errorf("loading party: %w", err)
			}
			lib.Party = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if missing := lib.Conditions.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, k := range missing {
			names[i] = k.String()
		}
		logger.Warn("conditions without reference text", zap.Strings("kinds", names))
	}
	logger.Info("content loaded",
		zap.Int("monsters", lib.Bestiary.Len()),
		zap.Int("conditions", len(lib.Conditions.All())),
		zap.Int("players", len(lib.Party.Players)),
	)
	return lib, nil
}

// Select resolves monster selections of the form "index" or "index:count"
// against the bestiary, expanding counts in place.
//
// Postcondition: Returns at most config.MaxRosterSize monsters in selection
// order, or an error naming the bad selection.
func (l *Library) Select(selections []string) ([]*monster.Monster, error) {
	var out []*monster.Monster
	for _, sel := range selections {
		index, count := sel, 1
		if i := strings.LastIndexByte(sel, ':'); i >= 0 {
			n, err := strconv.Atoi(sel[i+1:])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("selection %q: count must be a positive integer", sel)
			}
			index, count = sel[:i], n
		}
		m, ok := l.Bestiary.Get(index)
		if !ok {
			return nil, fmt.Errorf("selection %q: no monster with index %q", sel, index)
		}
		if count > config.MaxRosterSize-len(out) {
			return nil, fmt.Errorf("selection %q: more than %d monsters selected", sel, config.MaxRosterSize)
		}
		for j := 0; j < count; j++ {
			out = append(out, m)
		}
	}
	return out, nil
}
