package circuit

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Orientation
// --------------------------------------------------------------------------

// Orientation is the rotation of a placed macro
type Orientation int32

const (
	North Orientation = iota
	West
	South
	East
)

func (o Orientation) String() string {
	switch o {
	case North:
		return "N"
	case West:
		return "W"
	case South:
		return "S"
	case East:
		return "E"
	default:
		return fmt.Sprintf("Orientation(%d)", int32(o))
	}
}

// --------------------------------------------------------------------------
// Macro and Layout
// --------------------------------------------------------------------------

// Macro is one placeable rectangular component.
// Width and Height are supplied by the client, X/Y (lower-left corner) are filled in after solving.
type Macro struct {
	ID          string      `json:"id"`
	Name        string      `json:"name,omitempty"`
	Width       int64       `json:"width"`
	Height      int64       `json:"height"`
	X           int64       `json:"lx"`
	Y           int64       `json:"ly"`
	Orientation Orientation `json:"orientation"`
}

// Place sets the lower-left position of the macro
func (m *Macro) Place(x, y int64) {
	m.X = x
	m.Y = y
}

// Layout is the bounding box of the placement area.
// UX/UY (upper right) are filled in after solving.
type Layout struct {
	LX int64 `json:"lx"`
	LY int64 `json:"ly"`
	UX int64 `json:"ux"`
	UY int64 `json:"uy"`
}

// --------------------------------------------------------------------------
// Description
// --------------------------------------------------------------------------

// Description is a circuit description: macros in arrival order plus the layout bounding box.
// IDs are opaque to the bridge, they may be empty or repeat.
type Description struct {
	Macros []*Macro `json:"macros"`
	Layout Layout   `json:"layout"`
}

// New creates an empty description
func New() *Description {
	return &Description{Macros: make([]*Macro, 0)}
}

// AddMacro appends a macro, keeping the order in which macros were added
func (d *Description) AddMacro(m Macro) {
	d.Macros = append(d.Macros, &m)
}

// Macro returns the first macro with the given ID
func (d *Description) Macro(id string) (*Macro, bool) {
	for _, m := range d.Macros {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// IDs returns the macro IDs in arrival order
func (d *Description) IDs() []string {
	ids := make([]string, len(d.Macros))
	for i, m := range d.Macros {
		ids[i] = m.ID
	}
	return ids
}

// Len returns the number of macros
func (d *Description) Len() int {
	return len(d.Macros)
}

// PlaceAll moves every macro to the same position
func (d *Description) PlaceAll(x, y int64) {
	for _, m := range d.Macros {
		m.Place(x, y)
	}
}

// SetBounds sets the upper-right corner of the layout
func (d *Description) SetBounds(ux, uy int64) {
	d.Layout.UX = ux
	d.Layout.UY = uy
}

// Clone returns a deep copy
func (d *Description) Clone() *Description {
	c := &Description{
		Macros: make([]*Macro, len(d.Macros)),
		Layout: d.Layout,
	}
	for i, m := range d.Macros {
		cp := *m
		c.Macros[i] = &cp
	}
	return c
}

// Validate checks structural consistency: no nil entries and no negative dimensions
func (d *Description) Validate() error {
	for i, m := range d.Macros {
		if m == nil {
			return fmt.Errorf("macro %d is nil", i)
		}
		if m.Width < 0 || m.Height < 0 {
			return fmt.Errorf("macro %d (%q) has negative dimensions %dx%d", i, m.ID, m.Width, m.Height)
		}
	}
	return nil
}
