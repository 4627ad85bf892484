package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"chosenoffset.com/ledgewalk/internal/entity"
	"chosenoffset.com/ledgewalk/internal/level"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate and summarize a level",
	Long: `Assemble the configured level without opening a window. Missing layers,
unknown spawn types and bad tuning fail here exactly as they would in the game.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log.Level)

	lvl, err := level.NewAssembler(cfg, nil, logger).Load(cfg.Level.Path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Level %s\n\n", cfg.Level.Path)
	fmt.Fprintf(out, "  size       %.0fx%.0f\n", lvl.Bounds.W, lvl.Bounds.H)
	fmt.Fprintf(out, "  layers     %v\n", lvl.Map.LayerNames())
	fmt.Fprintf(out, "  colliding  %d tiles\n", len(lvl.Layers.PlatformsColliders.CollidingTiles()))

	start := lvl.Zones.Start
	fmt.Fprintf(out, "  start      (%.0f, %.0f)\n", start.X, start.Y)
	if lvl.Zones.HasEnd {
		fmt.Fprintf(out, "  end        (%.0f, %.0f)\n", lvl.Zones.End.X, lvl.Zones.End.Y)
	} else {
		fmt.Fprintln(out, "  end        none")
	}

	counts := make(map[entity.Kind]int)
	for _, e := range lvl.Enemies {
		counts[e.Kind]++
	}
	kinds := make([]entity.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	fmt.Fprintf(out, "  enemies    %d\n", len(lvl.Enemies))
	for _, k := range kinds {
		fmt.Fprintf(out, "    %-9s %d\n", k, counts[k])
	}
	return nil
}
