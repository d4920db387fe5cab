package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/dwlr-monitor/internal/dataset"
	"github.com/couchcryptid/dwlr-monitor/internal/domain"
	"github.com/couchcryptid/dwlr-monitor/internal/monitor"
)

type filterFlags struct {
	dataset    string
	waterLevel string
	rainfall   string
	quality    string
	search     string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dataset, "dataset", "", "YAML dataset file (default: embedded dataset)")
	cmd.Flags().StringVar(&f.waterLevel, "water-level", "all", "water level category: all, low, moderate, high")
	cmd.Flags().StringVar(&f.rainfall, "rainfall", "all", "rainfall category: all, low, moderate, high")
	cmd.Flags().StringVar(&f.quality, "quality", "all", "quality category: all, excellent, good, moderate, poor")
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive match on station name or id")
}

// load reads the dataset and applies the filter.
func (f *filterFlags) load() ([]domain.Station, error) {
	filter, err := monitor.ParseFilter(f.waterLevel, f.rainfall, f.quality, f.search)
	if err != nil {
		return nil, err
	}
	stations, err := dataset.Load(f.dataset)
	if err != nil {
		return nil, err
	}
	return monitor.Apply(stations, filter), nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stations",
		Short:         "Inspect and generate DWLR station datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newListCmd(), newStatsCmd(), newValidateCmd(), newGenerateCmd())
	return root
}

func newListCmd() *cobra.Command {
	var (
		flags  filterFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stations matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stations, err := flags.load()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), stations)
			}
			return writeTable(cmd.OutOrStdout(), stations)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print summary statistics for stations matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stations, err := flags.load()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), monitor.Summarize(stations))
		},
	}
	flags.register(cmd)
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a YAML dataset for schema and range errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stations, err := dataset.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d stations in %s\n", len(stations), args[0])
			return nil
		},
	}
}

func newGenerateCmd() *cobra.Command {
	var (
		count int
		seed  uint64
		out   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic station dataset as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			stations := dataset.Generate(count, rand.New(rand.NewPCG(seed, seed)))
			data, err := dataset.Encode(stations)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d stations to %s\n", count, out)
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 25, "number of stations")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, stations []domain.Station) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLEVEL (m)\tCATEGORY\tRAINFALL\tQUALITY\tAQUIFER")
	for _, s := range stations {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\t%s\t%s\n",
			s.ID, s.Name, s.WaterLevel,
			domain.WaterLevelCategory(s.WaterLevel),
			domain.RainfallCategory(s.Rainfall),
			domain.QualityCategory(s.QualityIndex),
			s.AquiferType,
		)
	}
	fmt.Fprintf(tw, "\n%d stations\n", len(stations))
	return tw.Flush()
}
