package export

import (
	"strings"

	"github.com/matzehuels/laneflow/pkg/model"
)

// TextExporter renders a positioned graph as a plain-text box drawing for
// terminal preview. Canvas units map onto a character grid (ColUnits per
// column, RowUnits per row); group borders are drawn first, node boxes on
// top. Connector paths are listed below the drawing rather than drawn - a
// character grid is too coarse for orthogonal routes.
type TextExporter struct {
	// ColUnits and RowUnits scale canvas units to grid cells.
	// Zero means the defaults (10 and 20).
	ColUnits, RowUnits float64
}

// Format returns FormatText.
func (e *TextExporter) Format() Format { return FormatText }

// Extension returns ".txt".
func (e *TextExporter) Extension() string { return ".txt" }

// Export renders the graph.
func (e *TextExporter) Export(g *model.Graph) ([]byte, error) {
	cu, ru := e.ColUnits, e.RowUnits
	if cu <= 0 {
		cu = 10
	}
	if ru <= 0 {
		ru = 20
	}

	grid := newCharGrid(int(g.Width/cu)+2, int(g.Height/ru)+2)

	for _, grp := range g.Groups() {
		grid.box(grp.Origin.X/cu, grp.Origin.Y/ru, grp.Width/cu, grp.Height/ru, "")
		grid.text(grp.Origin.X/cu+2, grp.Origin.Y/ru+1, grp.Label)
	}
	for _, n := range g.Nodes() {
		o := g.NodeOrigin(n)
		grid.box(o.X/cu, o.Y/ru, n.Width/cu, n.Height/ru, n.Label)
	}

	var sb strings.Builder
	sb.WriteString(grid.String())

	if len(g.Edges()) > 0 {
		sb.WriteString("\nconnections:\n")
		for _, edge := range g.Edges() {
			sb.WriteString("  " + edge.From + " -> " + edge.To)
			if edge.Route != nil {
				sb.WriteString(" [" + string(edge.Route.FromSide) + " -> " + string(edge.Route.ToSide))
				if len(edge.Route.Points) > 0 {
					sb.WriteString(", routed")
				}
				sb.WriteString("]")
			}
			sb.WriteString("\n")
		}
	}

	return []byte(sb.String()), nil
}

// charGrid is a fixed-size rune canvas.
type charGrid struct {
	cells [][]rune
}

func newCharGrid(cols, rows int) *charGrid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	cells := make([][]rune, rows)
	for i := range cells {
		row := make([]rune, cols)
		for j := range row {
			row[j] = ' '
		}
		cells[i] = row
	}
	return &charGrid{cells: cells}
}

// box draws a bordered rectangle in grid coordinates with an optional
// centered label. Degenerate boxes are widened to the 3x3 minimum.
func (cg *charGrid) box(x, y, w, h float64, label string) {
	c0, r0 := int(x+0.5), int(y+0.5)
	c1, r1 := int(x+w+0.5), int(y+h+0.5)
	if c1 < c0+2 {
		c1 = c0 + 2
	}
	if r1 < r0+2 {
		r1 = r0 + 2
	}

	for c := c0; c <= c1; c++ {
		cg.set(r0, c, '-')
		cg.set(r1, c, '-')
	}
	for r := r0; r <= r1; r++ {
		cg.set(r, c0, '|')
		cg.set(r, c1, '|')
	}
	cg.set(r0, c0, '+')
	cg.set(r0, c1, '+')
	cg.set(r1, c0, '+')
	cg.set(r1, c1, '+')

	if label != "" {
		inner := c1 - c0 - 1
		if inner > 0 {
			runes := []rune(label)
			if len(runes) > inner {
				runes = runes[:inner]
			}
			start := c0 + 1 + (inner-len(runes))/2
			mid := (r0 + r1) / 2
			for i, r := range runes {
				cg.set(mid, start+i, r)
			}
		}
	}
}

// text writes a string starting at the given grid position.
func (cg *charGrid) text(x, y float64, s string) {
	c, r := int(x+0.5), int(y+0.5)
	for i, ch := range []rune(s) {
		cg.set(r, c+i, ch)
	}
}

func (cg *charGrid) set(r, c int, ch rune) {
	if r < 0 || r >= len(cg.cells) || c < 0 || c >= len(cg.cells[r]) {
		return
	}
	cg.cells[r][c] = ch
}

// String renders the grid with trailing whitespace trimmed per line.
func (cg *charGrid) String() string {
	var sb strings.Builder
	for _, row := range cg.cells {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}
