package core_test

import (
	"testing"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
)

func TestFindClusterMatching(t *testing.T) {
	g := newGrid(t, smallConfig(4, 3, 2),
		"AABA",
		"ABBA",
		"....",
	)

	tests := []struct {
		name  string
		start core.Cell
		want  []core.Cell
	}{
		{"left A group", core.C(0, 0), []core.Cell{core.C(0, 0), core.C(0, 1), core.C(1, 0)}},
		{"right A group", core.C(1, 3), []core.Cell{core.C(0, 3), core.C(1, 3)}},
		{"B group", core.C(0, 2), []core.Cell{core.C(0, 2), core.C(1, 1), core.C(1, 2)}},
		{"empty start", core.C(2, 0), nil},
		{"out of bounds", core.C(5, 5), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.FindCluster(tt.start, core.ClusterOptions{MatchType: true, ResetVisited: true})
			if !sameCells(got, tt.want) {
				t.Errorf("FindCluster(%v) = %v, want %v", tt.start, got, tt.want)
			}
		})
	}
}

func TestFindClusterPatch(t *testing.T) {
	patch := []string{"BBBBB", "BAAAB", "BAAAB", "BAAAB", "BBBBB"}
	split := []string{"BBBBB", "BAAAB", "BBBBB", "BAAAB", "BBBBB"}

	tests := []struct {
		name   string
		layout []string
		start  core.Cell
		want   int
	}{
		{"whole patch", patch, core.C(2, 2), 9},
		{"patch from corner", patch, core.C(1, 1), 9},
		{"surrounding ring", patch, core.C(0, 0), 16},
		{"split upper half", split, core.C(1, 1), 3},
		{"split lower half", split, core.C(3, 3), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(t, smallConfig(5, 5, 2), tt.layout...)
			got := g.FindCluster(tt.start, core.ClusterOptions{MatchType: true, ResetVisited: true})
			if len(got) != tt.want {
				t.Errorf("FindCluster(%v) returned %d cells, want %d", tt.start, len(got), tt.want)
			}
		})
	}
}

func TestFindClusterNoDuplicates(t *testing.T) {
	g := newGrid(t, smallConfig(6, 6, 1),
		"AAAAAA",
		"AAAAAA",
		"AAAAAA",
		"AAAAAA",
	)

	got := g.FindCluster(core.C(2, 2), core.ClusterOptions{MatchType: true, ResetVisited: true})
	if len(got) != 24 {
		t.Errorf("FindCluster on solid block returned %d cells, want 24", len(got))
	}
	seen := make(map[core.Cell]bool)
	for _, c := range got {
		if seen[c] {
			t.Errorf("cell %v appears twice", c)
		}
		seen[c] = true
	}
}

func TestFindClusterAnyType(t *testing.T) {
	g := newGrid(t, smallConfig(4, 3, 2),
		"AABA",
		"ABBA",
		"....",
	)

	got := g.FindCluster(core.C(0, 0), core.ClusterOptions{ResetVisited: true})
	if len(got) != 8 {
		t.Errorf("FindCluster(any type) returned %d cells, want 8", len(got))
	}
}

func TestFindClusterSkipMarked(t *testing.T) {
	g := newGrid(t, smallConfig(4, 3, 2),
		"AABA",
		"ABBA",
		"....",
	)
	g.MarkForRemoval(core.Cluster{core.C(0, 1)})

	got := g.FindCluster(core.C(0, 0), core.ClusterOptions{MatchType: true, ResetVisited: true, SkipMarked: true})
	want := []core.Cell{core.C(0, 0), core.C(1, 0)}
	if !sameCells(got, want) {
		t.Errorf("FindCluster(skip marked) = %v, want %v", got, want)
	}

	if got := g.FindCluster(core.C(0, 1), core.ClusterOptions{ResetVisited: true, SkipMarked: true}); len(got) != 0 {
		t.Errorf("FindCluster from marked start = %v, want empty", got)
	}
}

func TestFindFloatingClusters(t *testing.T) {
	g := newGrid(t, smallConfig(4, 4, 3),
		"AAAA",
		"BB..",
		"....",
		"..C.",
	)

	got := g.FindFloatingClusters()
	if len(got) != 1 || !sameCells(got[0], []core.Cell{core.C(3, 2)}) {
		t.Fatalf("FindFloatingClusters() = %v, want [[(3,2)]]", got)
	}

	for c := 0; c < 4; c++ {
		g.ClearCell(core.C(0, c))
	}
	got = g.FindFloatingClusters()
	var all []core.Cell
	for _, cl := range got {
		all = append(all, cl...)
	}
	want := []core.Cell{core.C(1, 0), core.C(1, 1), core.C(3, 2)}
	if len(got) != 2 || !sameCells(all, want) {
		t.Errorf("FindFloatingClusters() without ceiling = %v, want two clusters covering %v", got, want)
	}
}

func TestFindFloatingClustersIgnoresMarked(t *testing.T) {
	g := newGrid(t, smallConfig(4, 3, 2),
		"AAAA",
		"B...",
		"....",
	)

	g.MarkForRemoval(core.Cluster{core.C(0, 0)})
	if got := g.FindFloatingClusters(); len(got) != 0 {
		t.Errorf("FindFloatingClusters() = %v, want none while (0,1) anchors (1,0)", got)
	}

	g.MarkForRemoval(core.Cluster{core.C(0, 1)})
	got := g.FindFloatingClusters()
	if len(got) != 1 || !sameCells(got[0], []core.Cell{core.C(1, 0)}) {
		t.Errorf("FindFloatingClusters() = %v, want [[(1,0)]]", got)
	}
}
