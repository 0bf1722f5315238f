package camera

import (
	"github.com/agausmann/flipflop-go/engine/renderer/bind_group_provider"
)

type CameraBuilderOption func(*cameraImpl)

// WithViewportSize sets the camera's initial surface size in pixels.
//
// Parameters:
//   - width, height: the surface size in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's viewport size
func WithViewportSize(width, height float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewportWidth = width
		c.viewportHeight = height
		c.updateMatrix()
	}
}

// WithController attaches a controller to the camera.
// After all options are applied, the camera recomputes its matrix from the controller's state.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}

// WithBindGroupProvider attaches a bind group provider to the camera.
// The provider describes the GPU binding requirements for camera uniforms.
//
// Parameters:
//   - provider: the bind group provider to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the bind group provider
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.bindGroupProvider = provider
	}
}
