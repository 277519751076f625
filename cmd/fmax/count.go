package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-fmax/swissprot"
)

func countCmd() *cobra.Command {
	var (
		sprotPath string
		taxon     string
		evidence  []string
		proteins  bool
	)

	cmd := &cobra.Command{
		Use:     "count",
		Short:   "Count experimentally supported GO annotations in a Swiss-Prot file",
		Example: "  fmax count --sprot uniprot_sprot.dat --taxon 559292",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(sprotPath)
			if err != nil {
				return fmt.Errorf("open swiss-prot file: %w", err)
			}
			defer func() { _ = f.Close() }()

			out := cmd.OutOrStdout()
			if proteins {
				n, err := swissprot.CountProteins(f, taxon, evidence)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "taxon %s: %d proteins with experimental GO annotations\n", taxon, n)
				return nil
			}

			c, err := swissprot.CountExperimental(f, taxon, evidence)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "taxon %s: BPO %d, CCO %d, MFO %d (total %d)\n", taxon, c.BPO, c.CCO, c.MFO, c.Total())
			return nil
		},
	}

	cmd.Flags().StringVar(&sprotPath, "sprot", "", "UniProtKB/Swiss-Prot flat file")
	cmd.Flags().StringVar(&taxon, "taxon", "", "NCBI taxonomy ID, e.g. 559292 for yeast")
	cmd.Flags().StringSliceVar(&evidence, "evidence", swissprot.DefaultEvidence, "Evidence codes treated as experimental")
	cmd.Flags().BoolVar(&proteins, "proteins", false, "Count proteins instead of annotations")
	_ = cmd.MarkFlagRequired("sprot")
	_ = cmd.MarkFlagRequired("taxon")

	return cmd
}
