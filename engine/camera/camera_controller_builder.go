package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithInitialPan sets the world-space point initially centered in the viewport.
//
// Parameters:
//   - x, y: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the initial pan
func WithInitialPan(x, y float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.pan[0] = x
		cc.pan[1] = y
	}
}

// WithInitialZoom sets the initial world-to-pixel zoom factor.
//
// Parameters:
//   - zoom: the initial zoom factor
//
// Returns:
//   - CameraControllerOption: functional option to set the initial zoom
func WithInitialZoom(zoom float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoom = zoom
	}
}

// WithZoomBounds sets the minimum and maximum zoom factor.
//
// Parameters:
//   - min: minimum zoom (zoomed furthest out)
//   - max: maximum zoom (zoomed furthest in)
//
// Returns:
//   - CameraControllerOption: functional option to set zoom bounds
func WithZoomBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minZoom = min
		cc.maxZoom = max
	}
}

// WithPanSpeed sets the pan speed in world units per second at zoom 1.0.
//
// Parameters:
//   - speed: world units per second
//
// Returns:
//   - CameraControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithZoomSpeed sets the exponential zoom rate applied per second while
// zoom input is held.
//
// Parameters:
//   - speed: zoom multiplier per second held
//
// Returns:
//   - CameraControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}
