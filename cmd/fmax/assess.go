package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-fmax"
	"github.com/jamesainslie/go-fmax/internal/config"
	"github.com/jamesainslie/go-fmax/internal/plot"
	"github.com/jamesainslie/go-fmax/internal/report"
	"github.com/jamesainslie/go-fmax/ontology"
)

func assessCmd(c *cli) *cobra.Command {
	var (
		configPath string
		table      bool
		flags      = config.Default()
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Compute Fmax and plot the precision-recall curve",
		Example: `  fmax assess -p team1.bpo.txt -b bm.bpo.txt -g BPO -o team1.bpo.png
  fmax assess --config run.yaml --table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			overrideFromFlags(cmd, cfg, flags)

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return runAssess(cmd, c, cfg, table)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.Predictions, "predictions", "p", "", "Prediction file (protein, term, score)")
	f.StringVarP(&flags.Benchmark, "benchmark", "b", "", "Benchmark file (protein, term)")
	f.StringVarP(&flags.Ontology, "ontology", "g", "", "Ontology: BPO, MFO or CCO")
	f.StringVarP(&flags.Output, "output", "o", "", "Precision-recall plot (.png, .jpg, .tif, .svg, .pdf, .eps)")
	f.StringVar(&flags.OBO, "obo", "", "GO OBO file used to filter terms by namespace")
	f.IntVar(&flags.Thresholds, "thresholds", flags.Thresholds, "Number of thresholds to sweep")
	f.BoolVar(&flags.IncludeZero, "include-zero", false, "Sweep down to threshold 0 inclusive")
	f.IntVar(&flags.Workers, "workers", 0, "Thresholds evaluated concurrently (0 = number of CPUs)")
	f.StringVar(&flags.Averaging, "averaging", flags.Averaging, "Averaging: micro or macro")
	f.BoolVar(&flags.CAFAHeaders, "cafa-headers", false, "Accept AUTHOR/MODEL/KEYWORDS/END records in predictions")
	f.StringVar(&configPath, "config", "", "YAML run configuration; flags override its values")
	f.BoolVar(&table, "table", false, "Print the full precision-recall table")

	return cmd
}

// overrideFromFlags copies explicitly set flags over cfg.
func overrideFromFlags(cmd *cobra.Command, cfg, flags *config.Config) {
	set := cmd.Flags().Changed
	if set("predictions") {
		cfg.Predictions = flags.Predictions
	}
	if set("benchmark") {
		cfg.Benchmark = flags.Benchmark
	}
	if set("ontology") {
		cfg.Ontology = flags.Ontology
	}
	if set("output") {
		cfg.Output = flags.Output
	}
	if set("obo") {
		cfg.OBO = flags.OBO
	}
	if set("thresholds") {
		cfg.Thresholds = flags.Thresholds
	}
	if set("include-zero") {
		cfg.IncludeZero = flags.IncludeZero
	}
	if set("workers") {
		cfg.Workers = flags.Workers
	}
	if set("averaging") {
		cfg.Averaging = flags.Averaging
	}
	if set("cafa-headers") {
		cfg.CAFAHeaders = flags.CAFAHeaders
	}
}

func runAssess(cmd *cobra.Command, c *cli, cfg *config.Config, table bool) error {
	opts := []fmax.Option{
		fmax.WithThresholds(cfg.Thresholds),
		fmax.WithWorkers(cfg.Workers),
		fmax.WithAveraging(cfg.AveragingMode()),
		fmax.WithLogger(c.logger),
	}
	if cfg.IncludeZero {
		opts = append(opts, fmax.WithZeroThreshold())
	}
	if cfg.CAFAHeaders {
		opts = append(opts, fmax.WithCAFAHeaders())
	}
	if cfg.OBO != "" {
		obo, err := ontology.LoadOBO(cfg.OBO)
		if err != nil {
			return err
		}
		c.logger.Debug("ontology loaded", "file", cfg.OBO, "terms", obo.Len())
		opts = append(opts, fmax.WithClassifier(obo))
	}

	res, err := fmax.New(opts...).AssessFiles(cmd.Context(), cfg.Ontology, cfg.Predictions, cfg.Benchmark)
	if err != nil {
		return err
	}

	if err := plot.Render(cfg.Output, res.Namespace.String(), res.Curve, plot.WithBest(res.Best)); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}

	out := cmd.OutOrStdout()
	if table {
		if err := report.WriteTable(out, res); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	return report.WriteSummary(out, res, cfg.Output)
}
