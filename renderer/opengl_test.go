//go:build !offscreen

package renderer

import "testing"

func TestStackedSeriesColumn(t *testing.T) {
	s := &stackedSeries{
		series: [][]float32{{0, 0.25, 1}, {0, 0.25, 1}},
	}

	type spec struct {
		x   int
		exp []float32
	}
	specs := []spec{
		{0, []float32{0, 0}},
		{1, []float32{10, 10}},
		{2, []float32{20, 20}},
	}
	for index, sp := range specs {
		got := s.column(sp.x, 40)
		for i := range got {
			if got[i] != sp.exp[i] {
				t.Fatalf("[spec %d] expected column %v; got %v", index, sp.exp, got)
			}
		}
	}

	s.Append(0, 0.5)
	if s.series[0][2] != 0.5 || len(s.series[0]) != 3 {
		t.Fatalf("expected appended value at the end of the series; got %v", s.series[0])
	}
	s.Clear()
	if s.series[1][2] != 0 {
		t.Fatal("expected series to be cleared")
	}
}
