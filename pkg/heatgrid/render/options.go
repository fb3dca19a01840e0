package render

const (
	// DefaultCellSize is the edge length of one grid cell in SVG user units.
	DefaultCellSize = 50
	// LegacyCanvasSize is the fixed canvas edge used when LegacyCanvas is set.
	LegacyCanvasSize = 500
)

// Options configures rendering.
type Options struct {
	// CellSize is the edge length of one grid cell. Values below 1 use DefaultCellSize.
	CellSize int
	// LegacyCanvas fixes the canvas at LegacyCanvasSize x LegacyCanvasSize
	// instead of sizing it to the grid. Larger grids are clipped.
	LegacyCanvas bool
}

// DefaultOptions returns default rendering options.
func DefaultOptions() Options {
	return Options{
		CellSize: DefaultCellSize,
	}
}

func (o Options) cellSize() int {
	if o.CellSize < 1 {
		return DefaultCellSize
	}
	return o.CellSize
}
