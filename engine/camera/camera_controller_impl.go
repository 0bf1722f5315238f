package camera

import (
	"math"
	"sync"
)

// cameraControllerImpl is the single implementation of CameraController.
// Grounded on the original simulator's Camera struct (pan/zoom with held
// directional flags integrated per-frame by dt), translated from Rust
// bool fields into a Go struct guarded by a mutex, matching the teacher's
// orbit controller's locking convention.
type cameraControllerImpl struct {
	mu *sync.Mutex

	pan  [2]float32
	zoom float32

	panSpeed  float32
	zoomSpeed float32
	minZoom   float32
	maxZoom   float32

	panUp, panDown, panLeft, panRight bool
	zoomIn, zoomOut                   bool
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new 2D camera controller with sensible
// defaults for a tile-based circuit editor.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:   &sync.Mutex{},
		pan:  [2]float32{0, 0},
		zoom: 16.0,

		panSpeed:  500.0,
		zoomSpeed: 4.0,
		minZoom:   8.0,
		maxZoom:   64.0,
	}

	for _, option := range options {
		option(cc)
	}

	return cc
}

func (cc *cameraControllerImpl) Pan() (x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pan[0], cc.pan[1]
}

func (cc *cameraControllerImpl) SetPan(x, y float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pan[0] = x
	cc.pan[1] = y
}

func (cc *cameraControllerImpl) Zoom() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoom
}

func (cc *cameraControllerImpl) SetZoom(zoom float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setZoomLocked(zoom)
}

func (cc *cameraControllerImpl) setZoomLocked(zoom float32) {
	if zoom < cc.minZoom {
		zoom = cc.minZoom
	}
	if zoom > cc.maxZoom {
		zoom = cc.maxZoom
	}
	cc.zoom = zoom
}

func (cc *cameraControllerImpl) MinZoom() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minZoom
}

func (cc *cameraControllerImpl) MaxZoom() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxZoom
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

func (cc *cameraControllerImpl) SetPanInput(up, down, left, right bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.panUp = up
	cc.panDown = down
	cc.panLeft = left
	cc.panRight = right
}

func (cc *cameraControllerImpl) SetZoomInput(in, out bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.zoomIn = in
	cc.zoomOut = out
}

func (cc *cameraControllerImpl) PanBy(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pan[0] -= dx / cc.zoom
	cc.pan[1] -= dy / cc.zoom
}

// Update integrates held pan/zoom input over dt, mirroring the original
// Camera::update: pan moves at panSpeed/zoom world units per second, and
// zoom changes by zoomSpeed^dt per second held (so held input is
// framerate-independent).
func (cc *cameraControllerImpl) Update(dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	var dx, dy float32
	if cc.panUp {
		dy += 1
	}
	if cc.panDown {
		dy -= 1
	}
	if cc.panRight {
		dx += 1
	}
	if cc.panLeft {
		dx -= 1
	}
	scale := dt * cc.panSpeed / cc.zoom
	cc.pan[0] += dx * scale
	cc.pan[1] += dy * scale

	zoomFactor := float32(1.0)
	if cc.zoomIn {
		zoomFactor *= cc.zoomSpeed
	}
	if cc.zoomOut {
		zoomFactor /= cc.zoomSpeed
	}
	cc.setZoomLocked(cc.zoom * float32(math.Pow(float64(zoomFactor), float64(dt))))
}
