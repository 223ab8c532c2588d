package gridworld

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/rlbasics/utils/intutils"
)

const (
	// cellWidth is the width of a single policy cell
	cellWidth = 3

	// terminalCell marks absorbing states in policy grids
	terminalCell = " T "
)

// WriteValues writes state values as a grid, one line per row with
// each value formatted as %6.2f and separated by a single space
func (g *GridWorld) WriteValues(w io.Writer, values mat.Vector) error {
	if values.Len() != g.States() {
		return fmt.Errorf("writeValues: got %d values for %d states",
			values.Len(), g.States())
	}

	for r := 0; r < g.r; r++ {
		cells := make([]string, g.c)
		for c := 0; c < g.c; c++ {
			cells[c] = fmt.Sprintf("%6.2f", values.AtVec(g.State(r, c)))
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, " ")); err != nil {
			return fmt.Errorf("writeValues: %w", err)
		}
	}
	return nil
}

// WritePolicy writes a policy as a grid. Absorbing states are written
// as T. Every other state lists the actions that the policy takes with
// non-zero probability, in U, D, L, R order, centred in a cell three
// characters wide. Cells are separated by a single space.
func (g *GridWorld) WritePolicy(w io.Writer, policy mat.Matrix) error {
	if err := g.checkPolicy(policy); err != nil {
		return fmt.Errorf("writePolicy: %w", err)
	}

	for r := 0; r < g.r; r++ {
		cells := make([]string, g.c)
		for c := 0; c < g.c; c++ {
			cells[c] = g.policyCell(policy, g.State(r, c))
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, " ")); err != nil {
			return fmt.Errorf("writePolicy: %w", err)
		}
	}
	return nil
}

// PrintValues prints state values to w, colouring absorbing states
// green and all other states blue
func (g *GridWorld) PrintValues(w io.Writer, values mat.Vector) error {
	if values.Len() != g.States() {
		return fmt.Errorf("printValues: got %d values for %d states",
			values.Len(), g.States())
	}

	return g.printGrid(w, func(state int) string {
		return fmt.Sprintf("%6.2f ", values.AtVec(state))
	})
}

// PrintPolicy prints a policy to w in the same layout as WritePolicy,
// colouring absorbing states green and all other states blue
func (g *GridWorld) PrintPolicy(w io.Writer, policy mat.Matrix) error {
	if err := g.checkPolicy(policy); err != nil {
		return fmt.Errorf("printPolicy: %w", err)
	}

	return g.printGrid(w, func(state int) string {
		return g.policyCell(policy, state)
	})
}

// printGrid prints the cell of each state, separated by white bars
func (g *GridWorld) printGrid(w io.Writer, cell func(int) string) error {
	for r := 0; r < g.r; r++ {
		var row strings.Builder
		for c := 0; c < g.c; c++ {
			state := g.State(r, c)
			if g.IsTerminal(state) {
				row.WriteString(aurora.Green(cell(state)).String())
			} else {
				row.WriteString(aurora.Blue(cell(state)).String())
			}
			row.WriteString(aurora.White("|").String())
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return fmt.Errorf("printGrid: %w", err)
		}
	}
	return nil
}

func (g *GridWorld) policyCell(policy mat.Matrix, state int) string {
	if g.IsTerminal(state) {
		return terminalCell
	}

	var actions strings.Builder
	for a := 0; a < NumActions; a++ {
		if policy.At(state, a) > 0 {
			actions.WriteString(ActionNames[a])
		}
	}
	return centre(actions.String(), cellWidth)
}

func (g *GridWorld) checkPolicy(policy mat.Matrix) error {
	r, c := policy.Dims()
	if r != g.States() || c != NumActions {
		return fmt.Errorf("policy has shape (%d, %d), want (%d, %d)", r, c,
			g.States(), NumActions)
	}
	return nil
}

// centre pads s with spaces to width characters. When the padding is
// odd, the extra space goes on the right.
func centre(s string, width int) string {
	pad := intutils.Max(0, width-len(s))
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
