package domain

import (
	"fmt"
	"math"
	"sort"
)

// Shape selects a board topology.
type Shape string

const (
	ShapePeaks   Shape = "peaks"
	ShapeColumns Shape = "columns"
)

// Board geometry in layout units.
const (
	SpacingX  = 90.0
	SpacingY  = 80.0
	CardW     = 80.0
	CardH     = 120.0
	LayerStep = 0.1

	epsilon = 1e-6
)

// LayoutParams describes the board to arrange. Only the fields for the
// chosen shape are read.
type LayoutParams struct {
	Shape        Shape `json:"shape" yaml:"shape"`
	NumPeaks     int   `json:"num_peaks,omitempty" yaml:"num_peaks"`
	PeakHeight   int   `json:"peak_height,omitempty" yaml:"peak_height"`
	NumColumns   int   `json:"num_columns,omitempty" yaml:"num_columns"`
	ColumnHeight int   `json:"column_height,omitempty" yaml:"column_height"`
}

// Validate rejects parameters that cannot produce a board.
func (p LayoutParams) Validate() error {
	switch p.Shape {
	case ShapePeaks:
		if p.NumPeaks < 1 || p.PeakHeight < 1 {
			return fmt.Errorf("%w: peaks=%d height=%d", ErrInvalidLayoutParams, p.NumPeaks, p.PeakHeight)
		}
	case ShapeColumns:
		if p.NumColumns < 1 || p.ColumnHeight < 1 {
			return fmt.Errorf("%w: columns=%d height=%d", ErrInvalidLayoutParams, p.NumColumns, p.ColumnHeight)
		}
	default:
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidLayoutParams, p.Shape)
	}
	return nil
}

// Arrange builds a board for the given parameters.
func Arrange(p LayoutParams) (*Board, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Shape == ShapePeaks {
		return ArrangePeaks(p.NumPeaks, p.PeakHeight)
	}
	return ArrangeColumns(p.NumColumns, p.ColumnHeight)
}

// ArrangePeaks lays out numPeaks triangles sharing one bottom row of
// (peakHeight-1)*numPeaks+1 slots. Every upper slot sits half a spacing
// right of, one spacing above, and one layer behind the slot it pairs with.
func ArrangePeaks(numPeaks, peakHeight int) (*Board, error) {
	if numPeaks < 1 || peakHeight < 1 {
		return nil, fmt.Errorf("%w: peaks=%d height=%d", ErrInvalidLayoutParams, numPeaks, peakHeight)
	}

	halfW := float64((peakHeight-1)*numPeaks) * 0.5 * SpacingX
	halfH := float64(peakHeight-1) * 0.5 * SpacingY

	bottom := make([]Position, (peakHeight-1)*numPeaks+1)
	for i := range bottom {
		bottom[i] = Position{X: -halfW + float64(i)*SpacingX, Y: -halfH}
	}
	positions := append([]Position{}, bottom...)

	for peak := 0; peak < numPeaks; peak++ {
		column := make([]Position, 0, peakHeight*(peakHeight+1)/2)
		for j := 0; j < peakHeight; j++ {
			column = append(column, bottom[peak*(peakHeight-1)+j])
		}
		for rowSize := peakHeight - 1; rowSize > 0; rowSize-- {
			for i := 0; i < rowSize; i++ {
				below := column[len(column)-rowSize-1]
				pos := Position{X: below.X + SpacingX*0.5, Y: below.Y + SpacingY, Layer: below.Layer + LayerStep}
				column = append(column, pos)
				positions = append(positions, pos)
			}
		}
	}

	return newBoard(ShapePeaks, positions), nil
}

// ArrangeColumns lays out numColumns stacks of columnHeight slots, each
// slot one spacing above and one layer behind the one below it.
func ArrangeColumns(numColumns, columnHeight int) (*Board, error) {
	if numColumns < 1 || columnHeight < 1 {
		return nil, fmt.Errorf("%w: columns=%d height=%d", ErrInvalidLayoutParams, numColumns, columnHeight)
	}

	halfW := float64(numColumns-1) * 0.5 * SpacingX
	halfH := float64(columnHeight-1) * 0.5 * SpacingY

	positions := make([]Position, 0, numColumns*columnHeight)
	for c := 0; c < numColumns; c++ {
		for h := 0; h < columnHeight; h++ {
			positions = append(positions, Position{
				X:     -halfW + float64(c)*SpacingX,
				Y:     -halfH + float64(h)*SpacingY,
				Layer: float64(h) * LayerStep,
			})
		}
	}

	return newBoard(ShapeColumns, positions), nil
}

// newBoard orders positions front to back, bottom to top, left to right,
// assigns slot ids in that order and derives the coverage graph.
func newBoard(shape Shape, positions []Position) *Board {
	sort.SliceStable(positions, func(i, j int) bool {
		a, b := positions[i], positions[j]
		if !nearlyEqual(a.Layer, b.Layer) {
			return a.Layer < b.Layer
		}
		if !nearlyEqual(a.Y, b.Y) {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	slots := make([]*Slot, len(positions))
	for i, pos := range positions {
		slots[i] = &Slot{ID: i, Pos: pos}
	}
	computeCoverage(slots)

	return &Board{Shape: shape, slots: slots, Bounds: computeBounds(slots)}
}

// computeCoverage records, for every slot A, the slots B whose card-sized
// footprint overlaps A's and whose layer is in front of A's.
func computeCoverage(slots []*Slot) {
	for _, a := range slots {
		a.Blocking = nil
		for _, b := range slots {
			if a == b {
				continue
			}
			if b.Pos.Layer < a.Pos.Layer-epsilon && overlaps(a.Pos, b.Pos) {
				a.Blocking = append(a.Blocking, b.ID)
			}
		}
	}
}

// overlaps is an AABB intersection test for two card footprints.
func overlaps(a, b Position) bool {
	return math.Abs(a.X-b.X) < CardW-epsilon && math.Abs(a.Y-b.Y) < CardH-epsilon
}

func computeBounds(slots []*Slot) Bounds {
	if len(slots) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, s := range slots {
		b.MinX = math.Min(b.MinX, s.Pos.X)
		b.MinY = math.Min(b.MinY, s.Pos.Y)
		b.MaxX = math.Max(b.MaxX, s.Pos.X)
		b.MaxY = math.Max(b.MaxY, s.Pos.Y)
	}
	b.MinX -= CardW / 2
	b.MaxX += CardW / 2
	b.MinY -= CardH / 2
	b.MaxY += CardH / 2
	return b
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}
