// Package fmax assesses protein-function predictions against a benchmark of
// experimentally verified Gene Ontology annotations.
//
// # Quick Start
//
//	a := fmax.New(fmax.WithThresholds(99))
//	res, err := a.AssessFiles(ctx, "BPO", "team1.bpo.txt", "bm.bpo.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Fmax %.3f at threshold %.2f\n", res.Fmax(), res.Best.Threshold)
//
// # Evaluation
//
// Evaluation is protein-centric. For each threshold t every benchmarked
// protein contributes the terms predicted with score >= t; precision is
// pooled over proteins with at least one such term and recall over all
// benchmarked proteins. Fmax is the largest harmonic mean of precision and
// recall across the sweep, ties going to the higher threshold.
//
// # Input Files
//
// Predictions have three whitespace-separated columns (protein, GO term,
// score in [0,1]); benchmarks have two (protein, GO term). Both are filtered
// to the requested namespace. Malformed lines abort the run with an error
// naming the file and line.
package fmax
