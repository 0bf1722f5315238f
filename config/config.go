// package config centralizes the compile-time tunables that would otherwise
// be scattered literals across the engine/camera/cursor packages, mirroring
// how engine/camera/camera_controller_impl.go's builder defaults gather its
// speed constants in one place. Persisted/file-based configuration is out of
// scope; everything here is a Go const/var read once at startup.
package config

import "time"

// TickRate is the fixed rate Simulation.Tick() runs at, independent of the
// render frame rate.
const TickRate = 10.0 // ticks per second

// TickInterval is the duration between simulation ticks, derived from TickRate.
const TickInterval = time.Second / time.Duration(TickRate)

// TilePixelSize is the on-screen size, in world units at zoom 1.0, of a
// single circuit tile. cmd/flipflop's screenToTile divides world coordinates
// by this value; the tile vertex shader does not read it and draws every
// sprite as a unit quad at its tile position.
const TilePixelSize = 1.0

// Camera tunables, passed by cmd/flipflop/main.go through builder options,
// overriding the defaults engine/camera/camera_controller_impl.go falls back to.
const (
	CameraPanSpeed  = 8.0  // world tiles per second at zoom 1.0
	CameraZoomSpeed = 1.5  // exponential zoom factor per second held
	CameraMinZoom   = 8.0  // pixels per tile, zoomed furthest out
	CameraMaxZoom   = 96.0 // pixels per tile, zoomed furthest in
	CameraInitZoom  = 32.0
)

// RenderFrameLimitFPS caps the render loop's frame rate; 0 leaves it uncapped.
// A 2D tile sandbox has no benefit from an uncapped loop burning a core.
const RenderFrameLimitFPS = 144.0
