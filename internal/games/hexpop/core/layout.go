package core

import (
	"fmt"
	"strings"

	opt "github.com/repeale/fp-go/option"
)

// ParseLayout turns text rows into grid contents. '.' is an empty slot and
// 'A'..'Z' name tile types 0..25.
func ParseLayout(lines ...string) ([][]opt.Option[TileType], error) {
	rows := make([][]opt.Option[TileType], 0, len(lines))
	for i, line := range lines {
		row := make([]opt.Option[TileType], 0, len(line))
		for j, ch := range line {
			switch {
			case ch == '.':
				row = append(row, opt.None[TileType]())
			case ch >= 'A' && ch <= 'Z':
				row = append(row, opt.Some(TileType(ch-'A')))
			default:
				return nil, fmt.Errorf("hexpop: layout row %d col %d: unexpected %q", i, j, ch)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Layout renders the grid contents in the ParseLayout format.
func (g *Grid) Layout() []string {
	out := make([]string, g.Rows)
	var b strings.Builder
	for r := range g.cells {
		b.Reset()
		for _, t := range g.cells[r] {
			if k, ok := t.Type(); ok {
				b.WriteByte(byte('A' + k))
			} else {
				b.WriteByte('.')
			}
		}
		out[r] = b.String()
	}
	return out
}
