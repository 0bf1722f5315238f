package camera

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/agausmann/flipflop-go/common"
	"github.com/agausmann/flipflop-go/engine/renderer/bind_group_provider"
)

// cameraCount is an atomic counter used to generate unique bind group provider names for each camera instance.
var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	viewportWidth  float32
	viewportHeight float32

	viewProjectionMatrix [16]float32

	controller        CameraController
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera defines the interface for the 2D camera system.
// The camera holds the current viewport size and computes the
// view-projection matrix from an attached CameraController each frame
// via Update().
type Camera interface {
	// ViewportSize returns the current surface size in pixels.
	//
	// Returns:
	//   - width, height: the surface size in pixels
	ViewportSize() (width, height float32)

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// BindGroupProvider returns the camera's bind group provider for GPU resources.
	// Returns nil if not set.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider or nil
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Update advances the attached controller by dt, resizes the viewport if
	// needed, and recomputes the view-projection matrix. Should be called
	// once per frame. If no controller is attached, only the viewport size is
	// stored.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the last Update call
	//   - viewportWidth, viewportHeight: current surface size in pixels
	Update(dt, viewportWidth, viewportHeight float32)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// SetBindGroupProvider sets the camera's bind group provider.
	//
	// Parameters:
	//   - provider: the bind group provider to set
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with a 1×1 placeholder viewport size.
// A controller must be attached via SetController or WithController option
// before the view-projection matrix can be computed.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		viewportWidth:        1,
		viewportHeight:       1,
		viewProjectionMatrix: [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	if c.controller != nil {
		c.updateMatrix()
	}
	cameraCount.Add(1)
	return c
}

func (c *cameraImpl) ViewportSize() (width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewportWidth, c.viewportHeight
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update(dt, viewportWidth, viewportHeight float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewportWidth = viewportWidth
	c.viewportHeight = viewportHeight
	if c.controller == nil {
		return
	}
	c.controller.Update(dt)
	c.updateMatrix()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

func (c *cameraImpl) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindGroupProvider = provider
}

// updateMatrix recalculates the view-projection matrix from the attached
// controller's pan/zoom and the current viewport size. This is a no-op
// when the controller is nil. Caller must hold the mutex.
func (c *cameraImpl) updateMatrix() {
	if c.controller == nil {
		return
	}

	panX, panY := c.controller.Pan()
	zoom := c.controller.Zoom()

	common.Ortho2DViewProj(c.viewProjectionMatrix[:],
		c.viewportWidth, c.viewportHeight, zoom, panX, panY,
	)
}
