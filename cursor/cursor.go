// package cursor implements the interactive placement/pan state machine a
// player drives with mouse input: hovering a tile previews the selected
// component, dragging with the wire tool previews a wire snapped to one
// axis, and a middle-mouse drag pans the camera. Grounded on
// original_source/src/cursor/mod.rs's CursorManager/CursorState, translated
// from a Rust enum into a Go tagged struct the way the teacher already
// dispatches on its own enum-like ComponentType via switch.
package cursor

import (
	"github.com/agausmann/flipflop-go/circuit"
	"github.com/agausmann/flipflop-go/direction"
)

// Kind discriminates the active CursorState variant.
type Kind int

const (
	Normal Kind = iota
	Pan
	PlaceWire
)

// State is the cursor's current interaction mode. Only the fields relevant
// to Kind are meaningful; translated from cursor/mod.rs's CursorState enum
// variants into a single tagged struct since Go has no sum types.
type State struct {
	Kind Kind

	// Pan: last observed screen-space position, used to compute the
	// per-frame drag delta.
	PanLastX, PanLastY float32

	// PlaceWire: the fixed anchor tile and the free end, which Update
	// snaps to whichever axis has the larger absolute delta from Start.
	WireStart, WireEnd circuit.Pos
}

// Manager owns the cursor's interaction state and the currently selected
// component type/orientation for placement, mirroring CursorManager minus
// its GPU-owning rect_renderer/outline_renderer fields: this repo's board
// and rect renderers instead pull preview state from Manager each frame,
// the same Sync-on-read pattern engine/renderer/board.Renderer uses against
// circuit.Circuit.
type Manager struct {
	state       State
	placeType   circuit.ComponentType
	placeOrient direction.Direction
}

// New creates a Manager in Normal state with Pin selected, facing North —
// matching CursorManager::new's defaults.
func New() *Manager {
	return &Manager{
		state:       State{Kind: Normal},
		placeType:   circuit.Pin,
		placeOrient: direction.North,
	}
}

// State returns the current interaction state.
func (m *Manager) State() State {
	return m.state
}

// PlaceType returns the currently selected component type for placement.
func (m *Manager) PlaceType() circuit.ComponentType {
	return m.placeType
}

// PlaceOrientation returns the currently selected placement orientation.
func (m *Manager) PlaceOrientation() direction.Direction {
	return m.placeOrient
}

// SetPlaceType changes the selected component type, matching
// CursorManager::set_place_type (the original rebuilds GPU preview handles
// only when the type actually changes; this repo's pull-based renderer has
// no handles to rebuild, so the type is assigned unconditionally).
func (m *Manager) SetPlaceType(t circuit.ComponentType) {
	m.placeType = t
}

// SetPlaceOrientation changes the selected placement orientation, rotating
// live previews on the next Update/render pass.
func (m *Manager) SetPlaceOrientation(d direction.Direction) {
	m.placeOrient = d
}

// StartPan enters Pan state, anchored at the given screen-space position.
func (m *Manager) StartPan(screenX, screenY float32) {
	m.state = State{Kind: Pan, PanLastX: screenX, PanLastY: screenY}
}

// StartPlaceWire enters PlaceWire state anchored at tile, with both
// endpoints initially coincident (matching CursorManager::start_place_wire,
// which inserts a zero-length wire preview at the click position).
func (m *Manager) StartPlaceWire(tile circuit.Pos) {
	m.state = State{Kind: PlaceWire, WireStart: tile, WireEnd: tile}
}

// End returns to Normal state, matching CursorManager::end.
func (m *Manager) End() {
	m.state = State{Kind: Normal}
}

// Update advances the active state for one frame: while panning, reports
// the screen-space delta since the last Update call (the caller feeds this
// into CameraController.PanBy) and re-anchors PanLastX/Y; while placing a
// wire, snaps WireEnd to whichever axis has the larger absolute offset from
// WireStart, matching cursor/mod.rs's `if delta.x.abs() > delta.y.abs()`
// dominant-axis rule.
func (m *Manager) Update(cursorTile circuit.Pos, screenX, screenY float32) (panDX, panDY float32) {
	switch m.state.Kind {
	case Pan:
		panDX = screenX - m.state.PanLastX
		panDY = screenY - m.state.PanLastY
		m.state.PanLastX = screenX
		m.state.PanLastY = screenY
	case PlaceWire:
		dx := cursorTile.X - m.state.WireStart.X
		dy := cursorTile.Y - m.state.WireStart.Y
		if abs(dx) > abs(dy) {
			m.state.WireEnd = circuit.Pos{X: m.state.WireStart.X + dx, Y: m.state.WireStart.Y}
		} else {
			m.state.WireEnd = circuit.Pos{X: m.state.WireStart.X, Y: m.state.WireStart.Y + dy}
		}
	}
	return panDX, panDY
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ValidPlacement reports whether the action the cursor currently previews
// (a wire drag, or single-tile component placement) would succeed if
// committed right now — driving the rect renderer's outline color, matching
// cursor/mod.rs's `valid_place`/`outline_color` computation.
func (m *Manager) ValidPlacement(c *circuit.Circuit, cursorTile circuit.Pos) bool {
	switch m.state.Kind {
	case PlaceWire:
		return c.CanPlaceWire(m.state.WireStart, m.state.WireEnd)
	default:
		return c.CanPlaceComponent(m.placeType, cursorTile, m.placeOrient)
	}
}

// Commit applies the cursor's current action to c. For PlaceWire this places
// the previewed wire and, on success, returns to Normal state; for
// Normal/Pan it places the selected component at cursorTile and leaves the
// state unchanged. Returns false if the placement was illegal (no mutation,
// state unchanged for PlaceWire so the player can keep adjusting the drag).
func (m *Manager) Commit(c *circuit.Circuit, cursorTile circuit.Pos) bool {
	switch m.state.Kind {
	case PlaceWire:
		if !c.PlaceWire(m.state.WireStart, m.state.WireEnd) {
			return false
		}
		m.End()
		return true
	default:
		return c.PlaceComponent(m.placeType, cursorTile, m.placeOrient)
	}
}
