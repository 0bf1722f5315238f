package main

import (
	"testing"

	"github.com/agausmann/flipflop-go/circuit"
	"github.com/agausmann/flipflop-go/config"
	"github.com/agausmann/flipflop-go/engine/camera"
	"github.com/agausmann/flipflop-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeWindow is a no-op window.Window for tests that only need Width/Height,
// since window.NewWindow spawns a real platform window.
type fakeWindow struct {
	width, height int
}

func (w *fakeWindow) SetUpdateCallback(func())                            {}
func (w *fakeWindow) SetResizeCallback(func(width, height int))           {}
func (w *fakeWindow) SetScrollCallback(func(delta float32))               {}
func (w *fakeWindow) SetKeyDownCallback(func(keyCode uint32))             {}
func (w *fakeWindow) SetKeyUpCallback(func(keyCode uint32))               {}
func (w *fakeWindow) SetMiddleMouseDownCallback(func(x, y int32))         {}
func (w *fakeWindow) SetMiddleMouseUpCallback(func(x, y int32))           {}
func (w *fakeWindow) SetLeftMouseDownCallback(func(x, y int32))           {}
func (w *fakeWindow) SetLeftMouseUpCallback(func(x, y int32))             {}
func (w *fakeWindow) SetMouseMoveCallback(func(x, y int32))               {}
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor          { return nil }
func (w *fakeWindow) IsRunning() bool                                     { return true }
func (w *fakeWindow) Close() error                                        { return nil }
func (w *fakeWindow) ProcessMessages()                                    {}
func (w *fakeWindow) Width() int                                          { return w.width }
func (w *fakeWindow) Height() int                                         { return w.height }

var _ window.Window = &fakeWindow{}

func newTestCamera(panX, panY, zoom float32) camera.Camera {
	cc := camera.NewCameraController(
		camera.WithInitialPan(panX, panY),
		camera.WithInitialZoom(zoom),
		camera.WithZoomBounds(1, 1000),
	)
	return camera.NewCamera(camera.WithController(cc))
}

func TestScreenToWorldCenterIsPan(t *testing.T) {
	cam := newTestCamera(10, 20, 32)
	win := &fakeWindow{width: 1280, height: 720}

	worldX, worldY := screenToWorld(cam, win, 640, 360)
	if worldX != 10 || worldY != 20 {
		t.Errorf("screenToWorld(center) = (%v, %v); want (10, 20)", worldX, worldY)
	}
}

func TestScreenToWorldYIsFlipped(t *testing.T) {
	cam := newTestCamera(0, 0, 1)
	win := &fakeWindow{width: 100, height: 100}

	// Above center on screen (smaller Y) should be positive world Y.
	_, worldY := screenToWorld(cam, win, 50, 0)
	if worldY <= 0 {
		t.Errorf("screenToWorld above center: worldY = %v; want > 0", worldY)
	}

	_, worldY = screenToWorld(cam, win, 50, 100)
	if worldY >= 0 {
		t.Errorf("screenToWorld below center: worldY = %v; want < 0", worldY)
	}
}

func TestScreenToTileFloorsTowardsNegativeInfinity(t *testing.T) {
	cam := newTestCamera(0, 0, 1/config.TilePixelSize)
	win := &fakeWindow{width: 0, height: 0}

	// With zero-size viewport, half-width/height is 0, so screen == world
	// scaled by zoom; pick an offset that lands just below a tile boundary.
	pos := screenToTile(cam, win, -0.5, 0.5)
	if pos.X != -1 {
		t.Errorf("screenToTile X = %d; want -1 (floor of -0.5)", pos.X)
	}
}

func TestBuildQuadIsUnitSquare(t *testing.T) {
	vertices, indices := buildQuad()
	if len(vertices) != 4 {
		t.Fatalf("len(vertices) = %d; want 4", len(vertices))
	}
	if len(indices) != 6 {
		t.Fatalf("len(indices) = %d; want 6", len(indices))
	}

	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			t.Errorf("index %d out of range of %d vertices", idx, len(vertices))
		}
	}

	wantCorners := map[[2]float32]bool{
		{0, 0}: true, {1, 0}: true, {1, 1}: true, {0, 1}: true,
	}
	for _, v := range vertices {
		if !wantCorners[v.Position] {
			t.Errorf("unexpected vertex position %v", v.Position)
		}
		if v.UV != v.Position {
			t.Errorf("vertex %v: UV = %v; want it to match Position for a unit quad", v.Position, v.UV)
		}
	}
}

func TestBuildAtlasSizeAndColors(t *testing.T) {
	colors := boardAtlasColors()
	atlas := buildAtlas(colors)

	wantWidth := uint32(atlasColumns * atlasCellPixels)
	wantHeight := uint32(atlasCellPixels)
	if atlas.Width != wantWidth || atlas.Height != wantHeight {
		t.Fatalf("atlas size = %dx%d; want %dx%d", atlas.Width, atlas.Height, wantWidth, wantHeight)
	}
	if len(atlas.Pixels) != int(wantWidth*wantHeight*4) {
		t.Fatalf("len(Pixels) = %d; want %d", len(atlas.Pixels), wantWidth*wantHeight*4)
	}

	// Center pixel of the first cell should be the unshaded first color exactly.
	centerX := atlasCellPixels / 2
	o := (centerX*int(wantWidth) + centerX) * 4
	want := colors[0]
	if atlas.Pixels[o+0] != want[0] || atlas.Pixels[o+1] != want[1] || atlas.Pixels[o+2] != want[2] || atlas.Pixels[o+3] != want[3] {
		t.Errorf("cell 0 center pixel = %v; want %v", atlas.Pixels[o:o+4], want)
	}

	// Past the last used cell, pixels should be fully transparent (zero-valued).
	lastCellX := (len(colors)) * atlasCellPixels
	if lastCellX < int(wantWidth) {
		o := lastCellX * 4
		if atlas.Pixels[o+3] != 0 {
			t.Errorf("unused cell alpha = %d; want 0", atlas.Pixels[o+3])
		}
	}
}

func TestDemoPlacementsAreAccepted(t *testing.T) {
	c := circuit.New()
	runDemo(c)

	if _, _, has := c.ComponentAt(circuit.Pos{X: 0, Y: 0}); !has {
		t.Error("demo circuit missing its Pin at (0,0)")
	}
	if _, _, has := c.ComponentAt(circuit.Pos{X: 2, Y: 0}); !has {
		t.Error("demo circuit missing its Flip at (2,0)")
	}
}
