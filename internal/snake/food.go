package snake

import "math/rand"

// NoFood marks the absence of food once the board is full.
var NoFood = Point{X: -1, Y: -1}

// RandomEmptyCell picks a cell uniformly from the gridSize x gridSize cells
// not covered by occupied. It returns false when every cell is taken.
func RandomEmptyCell(gridSize int, occupied []Point, rng *rand.Rand) (Point, bool) {
	if gridSize <= 0 {
		return NoFood, false
	}

	taken := make([]bool, gridSize*gridSize)
	free := len(taken)
	for _, p := range occupied {
		if p.X < 0 || p.X >= gridSize || p.Y < 0 || p.Y >= gridSize {
			continue
		}
		idx := p.Y*gridSize + p.X
		if !taken[idx] {
			taken[idx] = true
			free--
		}
	}

	if free == 0 {
		return NoFood, false
	}

	// Walk to the n-th free cell rather than building a candidate slice.
	n := rng.Intn(free)
	for idx, used := range taken {
		if used {
			continue
		}
		if n == 0 {
			return Point{X: idx % gridSize, Y: idx / gridSize}, true
		}
		n--
	}
	return NoFood, false
}
