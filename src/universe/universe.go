package universe

import (
	"fmt"
	"math/rand"

	"toruslife/src/bitset"
)

//default dimensions
const (
	DefWidth  = 64
	DefHeight = 64
)

//Universe is the complete automaton state: grid dimensions plus the
//bit-packed cell grid, row-major, one bit per cell. The grid is a torus:
//neighbor lookups wrap across the edges. A Universe is owned exclusively
//by its caller; none of its methods are safe for concurrent use.
type Universe struct {
	width  uint32
	height uint32
	cells  *bitset.BitSet
	rand   func() float64
	logf   func(format string, args ...interface{})
}

//New creates a 64x64 universe seeded with the fixed default pattern:
//cell i is alive iff i%2 == 0 || i%7 == 0. The pattern is an arbitrary
//policy constant kept for compatibility, not a meaningful algorithm.
func New() *Universe {
	u := &Universe{width: DefWidth, height: DefHeight}
	size := int(u.width * u.height)
	cells := bitset.New(size)
	for i := 0; i < size; i++ {
		cells.SetTo(i, i%2 == 0 || i%7 == 0)
	}
	u.cells = cells
	return u
}

//SetRandSource injects the uniform random source used by Random.
//draw must return values in [0, 1). The default is math/rand.Float64.
func (u *Universe) SetRandSource(draw func() float64) {
	u.rand = draw
}

//SetLogf injects an optional diagnostic sink notified on cell toggles.
func (u *Universe) SetLogf(logf func(format string, args ...interface{})) {
	u.logf = logf
}

//Width returns the number of columns.
func (u *Universe) Width() uint32 {
	return u.width
}

//Height returns the number of rows.
func (u *Universe) Height() uint32 {
	return u.height
}

//SetWidth sets the number of columns and resets every cell to dead.
//Destroying the current state on resize is deliberate, documented
//behavior, not a bug.
func (u *Universe) SetWidth(width uint32) {
	u.width = width
	u.initCells()
}

//SetHeight sets the number of rows and resets every cell to dead.
//Destroying the current state on resize is deliberate, documented
//behavior, not a bug.
func (u *Universe) SetHeight(height uint32) {
	u.height = height
	u.initCells()
}

//initCells replaces the cell storage with an all-dead grid sized to the
//current dimensions.
func (u *Universe) initCells() {
	u.cells = bitset.New(int(u.width * u.height))
}

//Clear resets every cell to dead, dimensions unchanged.
func (u *Universe) Clear() {
	u.initCells()
}

//Random replaces the whole grid with independent Bernoulli(0.5) draws
//from the injected random source: a cell is alive iff draw() < 0.5.
func (u *Universe) Random() {
	draw := u.rand
	if draw == nil {
		draw = rand.Float64
	}
	size := int(u.width * u.height)
	cells := bitset.New(size)
	for i := 0; i < size; i++ {
		cells.SetTo(i, draw() < 0.5)
	}
	u.cells = cells
}

//index returns the row-major linear index of (row, col).
//Bounds are the caller's responsibility.
func (u *Universe) index(row, col uint32) int {
	return int(row*u.width + col)
}

//liveNeighborCount counts the alive cells among the 8 toroidal Moore
//neighbors of (row, col). The deltas are the literal values
//{height-1, 0, 1} and {width-1, 0, 1} with only the (0, 0) value pair
//skipped, so degenerate grids (width or height 1, where the wrap deltas
//collapse to 0) count exactly what the double loop visits.
func (u *Universe) liveNeighborCount(row, col uint32) uint8 {
	var count uint8
	for _, deltaRow := range [3]uint32{u.height - 1, 0, 1} {
		for _, deltaCol := range [3]uint32{u.width - 1, 0, 1} {
			if deltaRow == 0 && deltaCol == 0 {
				continue
			}
			neighborRow := (row + deltaRow) % u.height
			neighborCol := (col + deltaCol) % u.width
			if u.cells.Test(u.index(neighborRow, neighborCol)) {
				count++
			}
		}
	}
	return count
}

//nextState applies the Conway transition table to one cell.
func nextState(alive bool, liveNeighbors uint8) bool {
	switch {
	case alive && liveNeighbors < 2:
		//underpopulation
		return false
	case alive && (liveNeighbors == 2 || liveNeighbors == 3):
		return true
	case alive && liveNeighbors > 3:
		//overpopulation
		return false
	case !alive && liveNeighbors == 3:
		//birth
		return true
	default:
		return alive
	}
}

//Tick advances the universe by one generation. The next generation is
//computed into a fresh buffer from a frozen snapshot of the current one
//and then swapped in; in-place mutation that reads already-updated
//neighbors would be a correctness bug.
func (u *Universe) Tick() {
	next := u.cells.Clone()
	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			idx := u.index(row, col)
			next.SetTo(idx, nextState(u.cells.Test(idx), u.liveNeighborCount(row, col)))
		}
	}
	u.cells = next
}

//ToggleCell flips the state of a single cell and notifies the optional
//diagnostic sink.
func (u *Universe) ToggleCell(row, col uint32) {
	if u.logf != nil {
		u.logf("toggling state of (%d, %d)", row, col)
	}
	u.cells.Toggle(u.index(row, col))
}

//clearCells sets every cell in the half-open rectangle
//[startRow, endRow) x [startCol, endCol) to dead. No wraparound: the
//rectangle must lie inside the grid.
func (u *Universe) clearCells(startRow, startCol, endRow, endCol uint32) {
	for row := startRow; row < endRow; row++ {
		for col := startCol; col < endCol; col++ {
			u.cells.Unset(u.index(row, col))
		}
	}
}

//requireMargin panics unless (row, col) sits at least margin cells away
//from every grid edge. Pattern stamping never wraps, so a stamp too
//close to an edge is a precondition violation, not a request to wrap.
func (u *Universe) requireMargin(row, col, margin uint32) {
	if row < margin || col < margin || row+margin > u.height || col+margin > u.width {
		panic(fmt.Sprintf(
			"universe: pattern at (%d, %d) needs a %d-cell margin inside a %dx%d grid",
			row, col, margin, u.height, u.width))
	}
}

//InsertGlider clears the 4x4 region around (row, col) and stamps the
//canonical glider. Requires a 2-cell margin from every edge.
func (u *Universe) InsertGlider(row, col uint32) {
	u.requireMargin(row, col, 2)
	u.clearCells(row-2, col-2, row+2, col+2)
	u.cells.Set(u.index(row, col-1))
	u.cells.Set(u.index(row-1, col+1))
	u.cells.Set(u.index(row, col+1))
	u.cells.Set(u.index(row+1, col))
	u.cells.Set(u.index(row+1, col+1))
}

//pulsarOffsets are the 12 base cell offsets of one pulsar quadrant,
//reflected into all four row/column sign combinations on insertion.
var pulsarOffsets = [12][2]uint32{
	{6, 2}, {6, 3}, {6, 4},
	{4, 6}, {3, 6}, {2, 6},
	{4, 1}, {3, 1}, {2, 1},
	{1, 2}, {1, 3}, {1, 4},
}

//InsertPulsar clears the 14x14 region around (row, col) and stamps the
//canonical 48-cell pulsar oscillator. Requires a 7-cell margin from
//every edge.
func (u *Universe) InsertPulsar(row, col uint32) {
	u.requireMargin(row, col, 7)
	u.clearCells(row-7, col-7, row+7, col+7)
	for _, off := range pulsarOffsets {
		deltaRow, deltaCol := off[0], off[1]
		u.cells.Set(u.index(row-deltaRow, col-deltaCol))
		u.cells.Set(u.index(row-deltaRow, col+deltaCol))
		u.cells.Set(u.index(row+deltaRow, col-deltaCol))
		u.cells.Set(u.index(row+deltaRow, col+deltaCol))
	}
}

//GetCells returns the packed cell state. The set is the universe's live
//storage: callers must treat it as read-only and must not hold it across
//mutating calls.
func (u *Universe) GetCells() *bitset.BitSet {
	return u.cells
}

//SetCells sets every listed (row, col) coordinate alive. Unlisted cells
//are left untouched; callers wanting an exclusive seed clear the grid
//first.
func (u *Universe) SetCells(cells [][2]uint32) {
	for _, c := range cells {
		u.cells.Set(u.index(c[0], c[1]))
	}
}

//Cells exposes the packed storage words for zero-copy rendering:
//ceil(width*height/32) uint32 words, LSB-first within each word. The
//slice stays valid until the next mutating call.
func (u *Universe) Cells() []uint32 {
	return u.cells.Words()
}
