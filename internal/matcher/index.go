package matcher

import (
	"math"

	"github.com/clickwise/clickwise/internal/domain"
)

// gridCellSize is the spatial-grid cell edge in pixels.
const gridCellSize = 50.0

type bucketKey struct{ x, y int }

// elementIndex is the one-time-per-batch lookup structure. It is built by
// StartBatch and must be invalidated between element sets; a stale index
// produces wrong matches.
type elementIndex struct {
	elements []domain.DOMElement
	byID     map[string]int
	byOxID   map[string]int
	byCoord  map[bucketKey][]int
	grid     map[bucketKey][]int
	byTag    map[string][]int
	tol      float64
}

func buildIndex(elements []domain.DOMElement, tolerance float64) *elementIndex {
	idx := &elementIndex{
		elements: elements,
		byID:     make(map[string]int, len(elements)),
		byOxID:   make(map[string]int, len(elements)),
		byCoord:  make(map[bucketKey][]int),
		grid:     make(map[bucketKey][]int),
		byTag:    make(map[string][]int),
		tol:      tolerance,
	}

	for i := range elements {
		el := &elements[i]
		if el.ID != "" {
			idx.byID[el.ID] = i
		}
		if el.OxID != "" {
			idx.byOxID[el.OxID] = i
		}

		cb := idx.coordBucket(el.Coordinates.X, el.Coordinates.Y)
		idx.byCoord[cb] = append(idx.byCoord[cb], i)

		cx, cy := el.Coordinates.Center()
		gc := gridCell(cx, cy)
		idx.grid[gc] = append(idx.grid[gc], i)

		idx.byTag[el.TagName] = append(idx.byTag[el.TagName], i)
	}
	return idx
}

func (idx *elementIndex) coordBucket(x, y float64) bucketKey {
	return bucketKey{
		x: int(math.Floor(x / idx.tol)),
		y: int(math.Floor(y / idx.tol)),
	}
}

func gridCell(x, y float64) bucketKey {
	return bucketKey{
		x: int(math.Floor(x / gridCellSize)),
		y: int(math.Floor(y / gridCellSize)),
	}
}

// neighborhood returns candidate indices from the grid cell containing
// (x,y) and its eight neighbors.
func (idx *elementIndex) neighborhood(x, y float64) []int {
	center := gridCell(x, y)
	var out []int
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			cell := bucketKey{x: center.x + dx, y: center.y + dy}
			out = append(out, idx.grid[cell]...)
		}
	}
	return out
}

func distance(ax, ay, bx, by float64) float64 {
	dx, dy := ax-bx, ay-by
	return math.Sqrt(dx*dx + dy*dy)
}
