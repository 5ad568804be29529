package core_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

// smallConfig returns a rule set with the origin at (0, 0) for easy pixel math.
func smallConfig(cols, rows, types int) core.Config {
	cfg := core.DefaultConfig()
	cfg.Columns = cols
	cfg.Rows = rows
	cfg.TypeCount = types
	cfg.OriginX = 0
	cfg.OriginY = 0
	return cfg
}

func newGrid(t *testing.T, cfg core.Config, lines ...string) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(cfg, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if len(lines) > 0 {
		loadLayout(t, g, lines...)
	}
	return g
}

func loadLayout(t *testing.T, g *core.Grid, lines ...string) {
	t.Helper()
	rows, err := core.ParseLayout(lines...)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if err := g.LoadRows(rows); err != nil {
		t.Fatalf("LoadRows: %v", err)
	}
}

func sortedCells(cl []core.Cell) []core.Cell {
	out := append([]core.Cell(nil), cl...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Column < out[j].Column
	})
	return out
}

func sameCells(a, b []core.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	a, b = sortedCells(a), sortedCells(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameLayout(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

type recordingSink struct {
	pops  []core.PopEvent
	overs []core.OverEvent
}

func (s *recordingSink) OnClusterPopped(ev core.PopEvent) { s.pops = append(s.pops, ev) }
func (s *recordingSink) OnGameOver(ev core.OverEvent)     { s.overs = append(s.overs, ev) }
