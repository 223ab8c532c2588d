package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/palette/moreland"
)

// Layout of heat map images, in pixels
const (
	CellSize   = 100
	margin     = 40
	titleSpace = 40
	barWidth   = 24
	barGap     = 30
	barLabels  = 60
	barStripes = 100
)

// HeatMap draws state values as a grid of coloured cells. Values are
// coloured on a diverging blue-red map, with each cell labelled by its
// value, and a colour bar to the right of the grid.
type HeatMap struct {
	dc *gg.Context
}

// NewHeatMap draws a heat map of values, which are given in row-major
// order for a rows x cols grid
func NewHeatMap(title string, values mat.Vector, rows,
	cols int) (*HeatMap, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("newHeatMap: invalid dimensions (%d, %d)",
			rows, cols)
	}
	if values.Len() != rows*cols {
		return nil, fmt.Errorf("newHeatMap: got %d values for a (%d, %d) "+
			"grid", values.Len(), rows, cols)
	}

	data := mat.Col(nil, 0, values)
	min, max := floats.Min(data), floats.Max(data)
	if min == max {
		max = min + 1
	}
	cmap := moreland.SmoothBlueRed()
	cmap.SetMax(max)
	cmap.SetMin(min)

	gridW, gridH := cols*CellSize, rows*CellSize
	width := margin + gridW + barGap + barWidth + barLabels
	height := titleSpace + gridH + 2*margin
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	// Title
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(title, float64(margin+gridW/2),
		float64(titleSpace)/2+float64(margin)/2, 0.5, 0.5)

	// Cells
	top := float64(titleSpace + margin)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := data[r*cols+c]
			fill, err := cmap.At(v)
			if err != nil {
				return nil, fmt.Errorf("newHeatMap: %w", err)
			}

			x := float64(margin + c*CellSize)
			y := top + float64(r*CellSize)
			dc.DrawRectangle(x, y, CellSize, CellSize)
			dc.SetColor(fill)
			dc.FillPreserve()
			dc.SetColor(color.White)
			dc.SetLineWidth(2)
			dc.Stroke()

			dc.SetColor(color.Black)
			dc.DrawStringAnchored(fmt.Sprintf("%.1f", v), x+CellSize/2,
				y+CellSize/2, 0.5, 0.5)
		}
	}

	// Colour bar, with the maximum at the top
	barX := float64(margin + gridW + barGap)
	stripe := float64(gridH) / barStripes
	for i := 0; i < barStripes; i++ {
		v := max - (max-min)*(float64(i)+0.5)/barStripes
		fill, err := cmap.At(v)
		if err != nil {
			return nil, fmt.Errorf("newHeatMap: %w", err)
		}
		dc.DrawRectangle(barX, top+float64(i)*stripe, barWidth, stripe+1)
		dc.SetColor(fill)
		dc.Fill()
	}
	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(barX, top, barWidth, float64(gridH))
	dc.Stroke()
	labelX := barX + barWidth + 6
	dc.DrawStringAnchored(fmt.Sprintf("%.1f", max), labelX, top, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.1f", (max+min)/2), labelX,
		top+float64(gridH)/2, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.1f", min), labelX,
		top+float64(gridH), 0, 0.5)

	return &HeatMap{dc: dc}, nil
}

// Size returns the width and height of the image in pixels
func (h *HeatMap) Size() (width, height int) {
	return h.dc.Width(), h.dc.Height()
}

// WritePNG encodes the heat map as a PNG to w
func (h *HeatMap) WritePNG(w io.Writer) error {
	if err := h.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("writePNG: %w", err)
	}
	return nil
}

// SavePNG saves the heat map as a PNG at path
func (h *HeatMap) SavePNG(path string) error {
	if err := h.dc.SavePNG(path); err != nil {
		return fmt.Errorf("savePNG: %w", err)
	}
	return nil
}

// ValueHeatMap saves a heat map of the values of a rows x cols
// gridworld as a PNG at path
func ValueHeatMap(path, title string, values mat.Vector, rows,
	cols int) error {
	h, err := NewHeatMap(title, values, rows, cols)
	if err != nil {
		return fmt.Errorf("valueHeatMap: %w", err)
	}
	return h.SavePNG(path)
}
