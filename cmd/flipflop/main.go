// Command flipflop is an interactive tile-based circuit editor and
// discrete-time logic simulator: place pins, flips, and flops on an
// unbounded grid, wire them together, and watch clusters of connected
// faces advance their power state one Simulation.Tick() at a time.
package main

import (
	"flag"
	"log"

	"github.com/agausmann/flipflop-go/circuit"
	"github.com/agausmann/flipflop-go/common"
	"github.com/agausmann/flipflop-go/config"
	"github.com/agausmann/flipflop-go/cursor"
	"github.com/agausmann/flipflop-go/engine"
	"github.com/agausmann/flipflop-go/engine/camera"
	"github.com/agausmann/flipflop-go/engine/renderer"
	"github.com/agausmann/flipflop-go/engine/renderer/bind_group_provider"
	"github.com/agausmann/flipflop-go/engine/renderer/board"
	"github.com/agausmann/flipflop-go/engine/renderer/pipeline"
	"github.com/agausmann/flipflop-go/engine/renderer/rect"
	"github.com/agausmann/flipflop-go/engine/renderer/shader"
	"github.com/agausmann/flipflop-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

const tilePipelineKey = "tile"

func main() {
	demoFlag := flag.Bool("demo", false, "script a small opening circuit instead of starting from an empty grid")
	flag.Parse()

	eng := engine.NewEngine(
		engine.WithWindow(window.NewWindow(
			window.WithTitle("FlipFlop"),
			window.WithWidth(1280),
			window.WithHeight(720),
		)),
		engine.WithTickRate(config.TickRate),
		engine.WithRenderFrameLimit(config.RenderFrameLimitFPS),
	)

	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		eng.Window(),
		renderer.WithPresentMode(renderer.PresentModeUncapped),
		renderer.WithMSAA(renderer.MSAAOff),
	)

	vertexShader := shader.NewShader("tile_vert", shader.ShaderTypeVertex, "cmd/flipflop/assets/shaders/tile.vert.wgsl")
	fragmentShader := shader.NewShader("tile_frag", shader.ShaderTypeFragment, "cmd/flipflop/assets/shaders/tile.frag.wgsl")

	tilePipeline := pipeline.NewPipeline(tilePipelineKey, pipeline.PipelineTypeRender,
		pipeline.WithVertexShader(vertexShader),
		pipeline.WithFragmentShader(fragmentShader),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithBlendEnabled(true),
		pipeline.WithCullMode(wgpu.CullModeNone),
	)
	if err := r.RegisterPipelines(tilePipeline); err != nil {
		log.Fatalf("flipflop: failed to register tile pipeline: %v", err)
	}

	// Shared unit-quad mesh every board/rect instance draws, offset
	// per-instance to its tile position by the vertex shader.
	quadVertices, quadIndices := buildQuad()
	meshProvider := bind_group_provider.NewBindGroupProvider("Tile Quad Mesh")
	if err := r.InitMeshBuffers(meshProvider, common.SliceToBytes(quadVertices), common.SliceToBytes(quadIndices), len(quadIndices)); err != nil {
		log.Fatalf("flipflop: failed to init quad mesh: %v", err)
	}

	cc := camera.NewCameraController(
		camera.WithInitialPan(0, 0),
		camera.WithInitialZoom(config.CameraInitZoom),
		camera.WithZoomBounds(config.CameraMinZoom, config.CameraMaxZoom),
		camera.WithPanSpeed(config.CameraPanSpeed),
		camera.WithZoomSpeed(config.CameraZoomSpeed),
	)
	cam := camera.NewCamera(
		camera.WithViewportSize(float32(eng.Window().Width()), float32(eng.Window().Height())),
		camera.WithController(cc),
		camera.WithBindGroupProvider(bind_group_provider.NewBindGroupProvider("Camera")),
	)
	// The camera struct's own embedded source declares its binding directly
	// at group 0, binding 0 (see engine/camera/assets/camera_uniform.wgsl).
	if err := r.InitBindGroup(cam.BindGroupProvider(), vertexShader.BindGroupLayoutDescriptor(0), nil, nil); err != nil {
		log.Fatalf("flipflop: failed to init camera bind group: %v", err)
	}

	c := circuit.New()
	cm := cursor.New()
	boardRenderer := board.New()
	rectRenderer := rect.New()

	if err := initAtlasMaterial(r, fragmentShader, boardRenderer.BindGroupProvider(), buildAtlas(boardAtlasColors())); err != nil {
		log.Fatalf("flipflop: failed to init board atlas: %v", err)
	}
	if err := initAtlasMaterial(r, fragmentShader, rectRenderer.BindGroupProvider(), buildAtlas(previewAtlasColors())); err != nil {
		log.Fatalf("flipflop: failed to init preview atlas: %v", err)
	}

	if *demoFlag {
		runDemo(c)
		for _, pos := range demoTouchedTiles() {
			boardRenderer.SyncTile(c, pos)
		}
	}

	in := newInputState(cm, cam, eng.Window(), c)
	wireInput(eng.Window(), in)

	eng.SetTickCallback(func(dt float32) {
		c.Tick()
	})

	eng.SetRenderCallback(func(dt float32) {
		width, height := float32(eng.Window().Width()), float32(eng.Window().Height())
		cam.Update(dt, width, height)

		hoverTile := in.hoverTile()
		for _, pos := range in.touchedTiles() {
			boardRenderer.SyncTile(c, pos)
		}
		rectRenderer.Sync(c, cm, hoverTile)

		uniform := camera.GPUCameraUniform{
			ViewProj:     cam.ViewProjectionMatrix(),
			ViewportSize: [2]float32{width, height},
		}
		r.WriteBuffers([]bind_group_provider.BufferWrite{
			{Provider: cam.BindGroupProvider(), Binding: 0, Offset: 0, Data: uniform.Marshal()},
		})

		boardBuffer, err := boardRenderer.Buffer(r.Device(), r.Queue())
		if err != nil {
			log.Printf("flipflop: board buffer upload failed: %v", err)
			return
		}
		rectBuffer, err := rectRenderer.Buffer(r.Device(), r.Queue())
		if err != nil {
			log.Printf("flipflop: rect buffer upload failed: %v", err)
			return
		}

		if err := r.BeginFrame(); err != nil {
			log.Printf("flipflop: begin frame failed: %v", err)
			return
		}

		if boardRenderer.Len() > 0 {
			if err := r.DrawInstances(tilePipelineKey, meshProvider, boardBuffer, uint32(boardRenderer.Len()), []bind_group_provider.BindGroupProvider{cam.BindGroupProvider(), boardRenderer.BindGroupProvider()}); err != nil {
				log.Printf("flipflop: board draw failed: %v", err)
			}
		}
		if rectRenderer.Len() > 0 {
			if err := r.DrawInstances(tilePipelineKey, meshProvider, rectBuffer, uint32(rectRenderer.Len()), []bind_group_provider.BindGroupProvider{cam.BindGroupProvider(), rectRenderer.BindGroupProvider()}); err != nil {
				log.Printf("flipflop: rect draw failed: %v", err)
			}
		}

		r.EndFrame()
		r.Present()
	})

	eng.Window().SetResizeCallback(func(width, height int) {
		r.Resize(width, height)
	})

	log.Println("FlipFlop: WASD/arrows pan, PgUp/PgDn or scroll zoom, 1/2/3 select Pin/Flip/Flop, R rotate, F wire tool, Del clear tile")
	eng.Run()
}

// demoTouchedTiles returns every tile position the demo circuit's script
// in demo.go can possibly have placed something at, so the board renderer
// has a first sync pass before the render loop's own per-frame diffing
// takes over. A fixed bounding box is simplest here; the render loop's
// own touchedTiles() tracking covers everything placed afterward.
func demoTouchedTiles() []circuit.Pos {
	var tiles []circuit.Pos
	for x := -1; x <= 6; x++ {
		tiles = append(tiles, circuit.Pos{X: x, Y: 0})
	}
	return tiles
}

