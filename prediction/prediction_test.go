package prediction

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-fmax/internal/input"
	"github.com/jamesainslie/go-fmax/ontology"
)

var bpo = ontology.NewFilter(ontology.BPO, nil)

func TestRead(t *testing.T) {
	src := `P1	GO:1	0.9
P1	GO:3	0.40
P2	GO:2	1
P1	GO:2	0.4
`
	s, err := Read(strings.NewReader(src), "pred", bpo)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 4, s.Count())
	assert.Equal(t, []string{"P1", "P2"}, s.Proteins())
	assert.Equal(t, []Scored{
		{Term: "GO:1", Score: 0.9},
		{Term: "GO:2", Score: 0.4},
		{Term: "GO:3", Score: 0.4},
	}, s.Predictions("P1"))
}

func TestDuplicateKeepsMaxScore(t *testing.T) {
	src := "P1 GO:1 0.2\nP1 GO:1 0.7\nP1 GO:1 0.5\n"
	s, err := Read(strings.NewReader(src), "pred", bpo)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Count())
	assert.True(t, s.TermsAboveThreshold("P1", 0.6).Has("GO:1"))
	assert.False(t, s.TermsAboveThreshold("P1", 0.71).Has("GO:1"))
}

func TestTermsAboveThreshold(t *testing.T) {
	s := FromScores(map[string][]Scored{
		"P1": {{"GO:1", 0.9}, {"GO:3", 0.4}, {"GO:4", 0.5}},
	}, bpo)

	tests := []struct {
		name string
		t    float64
		want []string
	}{
		{name: "above all", t: 0.95, want: []string{}},
		{name: "inclusive boundary", t: 0.5, want: []string{"GO:1", "GO:4"}},
		{name: "between", t: 0.45, want: []string{"GO:1", "GO:4"}},
		{name: "all", t: 0, want: []string{"GO:1", "GO:3", "GO:4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.TermsAboveThreshold("P1", tt.t)
			assert.Equal(t, tt.want, got.Sorted())
			assert.Len(t, s.Above("P1", tt.t), len(tt.want))
		})
	}

	assert.Equal(t, 0, s.TermsAboveThreshold("unknown", 0).Len())
}

func TestReadNamespaceFilter(t *testing.T) {
	cls := ontology.Map{"GO:cc": ontology.CCO, "GO:mf": ontology.MFO}
	src := "P1 GO:cc 0.9\nP1 GO:mf 0.8\nP2 GO:mf 0.3\n"

	s, err := Read(strings.NewReader(src), "pred", ontology.NewFilter(ontology.CCO, cls))
	require.NoError(t, err)

	assert.Equal(t, []string{"P1"}, s.Proteins())
	assert.Equal(t, []string{"GO:cc"}, s.TermsAboveThreshold("P1", 0).Sorted())
	assert.Equal(t, ontology.CCO, s.Namespace())
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
	}{
		{name: "two fields", src: "P1 GO:1\n", wantLine: 1},
		{name: "four fields", src: "P1 GO:1 0.5\nP1 GO:2 0.5 x\n", wantLine: 2},
		{name: "bad score", src: "P1 GO:1 high\n", wantLine: 1},
		{name: "score above one", src: "P1 GO:1 1.5\n", wantLine: 1},
		{name: "negative score", src: "\nP1 GO:1 -0.1\n", wantLine: 2},
		{name: "nan", src: "P1 GO:1 NaN\n", wantLine: 1},
		{name: "cafa header without option", src: "AUTHOR team\nP1 GO:1 0.5\n", wantLine: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.src), "scores.txt", bpo)
			require.ErrorIs(t, err, input.ErrMalformed)

			var inErr *input.Error
			require.ErrorAs(t, err, &inErr)
			assert.Equal(t, "scores.txt", inErr.File)
			assert.Equal(t, tt.wantLine, inErr.Line)
		})
	}
}

func TestReadCAFAHeaders(t *testing.T) {
	src := `AUTHOR	TEAM_X
MODEL	1
KEYWORDS	sequence alignment, homology.
T96060000001	GO:0005737	0.73
T96060000001	GO:0005634	0.21
END
`
	s, err := Read(strings.NewReader(src), "team_1_9606.txt", bpo, WithCAFAHeaders())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pred.txt")
	require.NoError(t, os.WriteFile(path, []byte("P1 GO:1 0.5\n"), 0o644))

	s, err := Load(path, bpo)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count())

	_, err = Load(filepath.Join(t.TempDir(), "missing"), bpo)
	assert.Error(t, err)
}
