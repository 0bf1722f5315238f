package camera

// CameraController owns the 2D camera's positional state: the world-space
// point centered in the viewport (pan) and the world-to-pixel scale (zoom).
// Camera reads from the controller and builds the view-projection matrix
// each frame via Update(). Held inputs (pan/zoom direction flags) are
// integrated over elapsed time the same way the keyboard-driven orbit
// controller integrates orbit speed per step, but continuously via dt.
type CameraController interface {
	// Pan returns the world-space point currently centered in the viewport.
	//
	// Returns:
	//   - x, y: world-space pan position
	Pan() (x, y float32)

	// SetPan sets the world-space point centered in the viewport directly.
	//
	// Parameters:
	//   - x, y: world-space coordinates
	SetPan(x, y float32)

	// Zoom returns the current world-to-pixel scale factor.
	//
	// Returns:
	//   - float32: current zoom
	Zoom() float32

	// SetZoom sets the zoom factor directly, clamped to [MinZoom, MaxZoom].
	//
	// Parameters:
	//   - zoom: new world-to-pixel scale factor
	SetZoom(zoom float32)

	// MinZoom returns the minimum allowed zoom factor.
	MinZoom() float32

	// MaxZoom returns the maximum allowed zoom factor.
	MaxZoom() float32

	// PanSpeed returns the pan speed in world units per second at zoom 1.0.
	PanSpeed() float32

	// ZoomSpeed returns the exponential zoom rate applied per second while
	// zoom input is held.
	ZoomSpeed() float32

	// SetPanInput sets which directions are currently held for continuous
	// panning. Called from the window's key callbacks; consumed on the next
	// Update call.
	//
	// Parameters:
	//   - up, down, left, right: true while the corresponding pan key is held
	SetPanInput(up, down, left, right bool)

	// SetZoomInput sets whether zoom-in/zoom-out is currently held.
	//
	// Parameters:
	//   - in, out: true while the corresponding zoom key is held
	SetZoomInput(in, out bool)

	// PanBy translates the pan position by a screen-space delta scaled by
	// 1/zoom, matching mouse-drag panning (CursorManager's Pan state).
	//
	// Parameters:
	//   - dx, dy: screen-space delta in pixels
	PanBy(dx, dy float32)

	// Update integrates held pan/zoom input over the elapsed frame time.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the last Update call
	Update(dt float32)
}
