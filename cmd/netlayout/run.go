package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"netlayout/internal/codec"
	"netlayout/internal/config"
	"netlayout/internal/domain"
	"netlayout/internal/engine"
	"netlayout/internal/repository/sqlite"
	"netlayout/internal/service"
	"netlayout/internal/watcher"
)

func runCmd() *cobra.Command {
	var (
		out      string
		format   string
		preset   string
		maxTicks int
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "run <document>",
		Short: "Lay out a document until it converges and write the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if preset != "" {
				cfg.Layout.Preset = config.ParsePreset(preset)
			}

			doc, err := watcher.ReadDocument(args[0])
			if err != nil {
				return err
			}

			var options []engine.Option
			var repo *sqlite.Repository
			if save {
				repo, err = sqlite.New(cfg.Database.Path)
				if err != nil {
					return err
				}
				defer repo.Close()
				options = append(options, engine.WithPersister(repo))
			}

			eng, err := engine.New(doc, service.EngineOptions(cfg), options...)
			if err != nil {
				return err
			}
			defer eng.Close()

			converged, err := eng.RunUntilConverged(maxTicks)
			if err != nil {
				return err
			}

			c, err := outputCodec(out, format, args[0])
			if err != nil {
				return err
			}
			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := c.Export(eng.Snapshot(), w); err != nil {
				return err
			}

			printSummary(doc, eng.State(), converged, cfg)
			if repo != nil && converged {
				if infos, err := repo.ListSnapshots(context.Background()); err == nil {
					fmt.Fprintf(os.Stderr, "  Stored:     %d snapshot(s) in %s\n", len(infos), cfg.Database.Path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json or yaml (default: from --out or input)")
	cmd.Flags().StringVar(&preset, "preset", "", "Decay preset: fast or settled (default: from config)")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", 10000, "Give up after this many ticks")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the converged layout to the configured database")

	return cmd
}

func outputCodec(out, format, input string) (codec.Codec, error) {
	switch {
	case format != "":
		return codec.ForFormat(format)
	case out != "":
		return codec.ForPath(out)
	default:
		return codec.ForPath(input)
	}
}

func printSummary(doc *domain.Document, frame *domain.Frame, converged bool, cfg *config.Config) {
	w := os.Stderr
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", brand.Sprint("netlayout"), subtle.Sprint(doc.Name))
	fmt.Fprintf(w, "  Elements:   %d\n", len(frame.Nodes))
	fmt.Fprintf(w, "  Links:      %d\n", len(frame.Links))
	fmt.Fprintf(w, "  Preset:     %s\n", cfg.EffectivePreset())
	if converged {
		fmt.Fprintf(w, "  Converged:  %s after %d ticks\n", good.Sprint("yes"), frame.Tick)
	} else {
		fmt.Fprintf(w, "  Converged:  %s (alpha %.4f after %d ticks)\n", warn.Sprint("no"), frame.Alpha, frame.Tick)
	}

	if len(frame.Boundaries) == 0 {
		return
	}
	groups := make([]string, 0, len(frame.Boundaries))
	hulls := make(map[string]int, len(frame.Boundaries))
	for _, b := range frame.Boundaries {
		groups = append(groups, b.Group)
		hulls[b.Group] = len(b.Hull)
	}
	sort.Strings(groups)
	fmt.Fprintln(w, "  Groups:")
	for _, g := range groups {
		fmt.Fprintf(w, "    %-20s %s\n", g, subtle.Sprintf("%d hull points", hulls[g]))
	}
}
