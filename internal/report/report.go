// Package report renders assessment results as text.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jamesainslie/go-fmax"
)

// WriteSummary prints the Fmax line and, when set, where the plot went.
func WriteSummary(w io.Writer, res *fmax.Result, plotPath string) error {
	if _, err := fmt.Fprintf(w, "%s Fmax: %.3f (threshold %.2f, precision %.3f, recall %.3f)\n",
		res.Namespace, res.Fmax(), res.Best.Threshold, res.Best.Precision, res.Best.Recall); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "proteins: %d benchmarked, %d predicted, %d covered\n",
		res.BenchmarkProteins, res.PredictedProteins, res.CoveredProteins); err != nil {
		return err
	}
	if plotPath != "" {
		if _, err := fmt.Fprintf(w, "plot: %s\n", plotPath); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable prints one row per threshold. The Fmax row is starred.
func WriteTable(w io.Writer, res *fmax.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := []string{"Threshold", "Precision", "Recall", "F", "Covered", ""}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header)-1)
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t")+"\t")

	for i, pt := range res.Curve.Points {
		mark := ""
		if i == res.Best.Index {
			mark = "*"
		}
		row := []string{
			fmt.Sprintf("%.2f", pt.Threshold),
			fmt.Sprintf("%.4f", pt.Precision),
			fmt.Sprintf("%.4f", pt.Recall),
			fmt.Sprintf("%.4f", pt.F()),
			fmt.Sprintf("%d/%d", pt.Covered, res.Curve.Proteins),
			mark,
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}
