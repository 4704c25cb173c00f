// SPDX-License-Identifier: EPL-2.0

package track

// RowHeight is the default height of the header row and of each control row.
const RowHeight = 40

// Geometry places a track on screen.
type Geometry struct {
	X, Y         float64
	Width        float64
	HeaderHeight float64 // row height, RowHeight when zero
}

func (g Geometry) rowHeight() float64 {
	if g.HeaderHeight <= 0 {
		return RowHeight
	}
	return g.HeaderHeight
}

// InHeader reports whether (x, y) is on the waveform row, edges included.
func (g Geometry) InHeader(x, y float64) bool {
	return x >= g.X && x <= g.X+g.Width && y >= g.Y && y <= g.Y+g.rowHeight()
}

// Rect is an axis-aligned rectangle in track coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Role decides which parameter rows a track shows.
type Role int

const (
	// Secondary tracks show the waveform and the effect row.
	Secondary Role = iota
	// Primary tracks add a covers row for the number of measures in the
	// selection.
	Primary
)

func (r Role) String() string {
	switch r {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// rows is the number of rows the role occupies.
func (r Role) rows() int {
	if r == Primary {
		return 3
	}
	return 2
}

// State of the selection gesture.
type State int

const (
	Idle State = iota
	Selecting
	Selected
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	case Selected:
		return "selected"
	default:
		return "unknown"
	}
}
