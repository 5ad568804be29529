package core

// ClusterOptions controls a flood fill.
type ClusterOptions struct {
	MatchType    bool // Only follow neighbors of the start cell's type
	ResetVisited bool // Clear visited flags before searching
	SkipMarked   bool // Exclude tiles already marked for removal
}

// FindCluster flood-fills from start and returns the connected cells.
// Every cell appears at most once. Empty slots (and marked tiles when
// SkipMarked is set) are never part of the result, even as the start.
func (g *Grid) FindCluster(start Cell, o ClusterOptions) Cluster {
	if o.ResetVisited {
		g.ResetVisited()
	}
	if !g.InBounds(start) {
		return nil
	}

	target := g.tile(start).Kind
	g.tile(start).Visited = true
	stack := []Cell{start}

	var found Cluster
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		t := g.tile(cur)
		if t.IsEmpty() || (o.SkipMarked && t.MarkedForRemoval) {
			continue
		}
		found = append(found, cur)

		for _, n := range g.Neighbors(cur.Row, cur.Column) {
			nt := g.tile(n)
			if nt.Visited {
				continue
			}
			if o.MatchType && !sameKind(nt.Kind, target) {
				continue
			}
			nt.Visited = true
			stack = append(stack, n)
		}
	}
	return found
}

// FindFloatingClusters returns the connected groups of unmarked tiles that
// have no path to row 0 through other unmarked tiles.
func (g *Grid) FindFloatingClusters() []Cluster {
	g.ResetVisited()

	var floating []Cluster
	for r := range g.cells {
		for c := range g.cells[r] {
			if g.cells[r][c].Visited {
				continue
			}
			cl := g.FindCluster(Cell{Row: r, Column: c}, ClusterOptions{SkipMarked: true})
			if len(cl) == 0 {
				continue
			}
			anchored := false
			for _, cell := range cl {
				if cell.Row == 0 {
					anchored = true
					break
				}
			}
			if !anchored {
				floating = append(floating, cl)
			}
		}
	}
	return floating
}
