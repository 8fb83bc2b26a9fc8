package grid

// GetGridCoords converts a flat buffer index into (x, y) coordinates for a
// grid with the given number of columns.
func GetGridCoords(index int, cols int) (int, int) {
	return index % cols, index / cols
}

// Index converts (x, y) coordinates into a flat buffer index for a grid with
// the given number of columns. Coordinates must already be in range.
func Index(x, y, cols int) int {
	return x + y*cols
}
