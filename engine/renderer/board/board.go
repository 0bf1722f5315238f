// package board translates a circuit.Circuit's tile topology into the
// instanced draw data a sprite-atlas pipeline consumes, via an
// instancing.InstanceManager keyed one slot per occupied tile. Grounded on
// engine/renderer/wgpu_renderer_backend.go's buffer-write idiom and on
// original_source/src/rect.rs's wire_color(is_powered) tinting convention.
package board

import (
	"github.com/agausmann/flipflop-go/circuit"
	"github.com/agausmann/flipflop-go/direction"
	"github.com/agausmann/flipflop-go/engine/renderer/bind_group_provider"
	"github.com/agausmann/flipflop-go/instancing"
	"github.com/cogentcore/webgpu/wgpu"
)

// Sprite atlas indices, matching the tile sprite sheet's cell order.
const (
	SpriteWire uint32 = iota
	SpritePin
	SpriteFlip
	SpriteFlop
	SpriteCrossover
)

// Renderer owns the per-tile instance array and the sprite atlas's bind
// group resources (texture + sampler, per the shader package's
// AnnotationArgMaterial/AnnotationArgDiffuseTexture/AnnotationArgDiffuseSampler
// identities).
type Renderer struct {
	instances *instancing.InstanceManager[GPUTileInstance]
	handles   map[circuit.Pos]instancing.Handle

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// New creates an empty board Renderer.
func New() *Renderer {
	return &Renderer{
		instances:         instancing.New[GPUTileInstance]("Board"),
		handles:           make(map[circuit.Pos]instancing.Handle),
		bindGroupProvider: bind_group_provider.NewBindGroupProvider("Board Sprite Atlas"),
	}
}

// BindGroupProvider returns the sprite atlas's bind group provider so the
// owning Renderer can initialize and write its GPU resources.
func (r *Renderer) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return r.bindGroupProvider
}

// SyncTile recomputes pos's instance record from the circuit's current
// state and upserts or removes it. Call once per tile touched by a
// placement/deletion operation, and once more per tile whose power state
// changed after a Simulation.Tick().
func (r *Renderer) SyncTile(c *circuit.Circuit, pos circuit.Pos) {
	visual, ok := tileVisual(c, pos)
	if !ok {
		if h, present := r.handles[pos]; present {
			r.instances.Release(h)
			delete(r.handles, pos)
		}
		return
	}

	instance := GPUTileInstance{
		TileX:       int32(pos.X),
		TileY:       int32(pos.Y),
		SpriteIndex: visual.sprite,
		Rotation:    visual.rotation,
	}
	if visual.powered {
		instance.Powered = 1
	}

	if h, present := r.handles[pos]; present {
		r.instances.Set(h, instance)
		return
	}
	r.handles[pos] = r.instances.Insert(instance)
}

type tileVisualInfo struct {
	sprite   uint32
	rotation uint32
	powered  bool
}

// tileVisual derives the sprite/rotation/powered triple for pos, or ok=false
// if the tile is unoccupied and should have no instance.
func tileVisual(c *circuit.Circuit, pos circuit.Pos) (tileVisualInfo, bool) {
	if ctype, orient, has := c.ComponentAt(pos); has {
		var sprite uint32
		switch ctype {
		case circuit.Pin:
			sprite = SpritePin
		case circuit.Flip:
			sprite = SpriteFlip
		case circuit.Flop:
			sprite = SpriteFlop
		}
		return tileVisualInfo{
			sprite:   sprite,
			rotation: uint32(orient),
			powered:  c.PoweredAt(pos),
		}, true
	}

	if c.HasCrossover(pos) {
		return tileVisualInfo{sprite: SpriteCrossover, powered: c.PoweredAt(pos)}, true
	}

	if _, ok := c.WireConnection(pos, direction.East); ok {
		return tileVisualInfo{sprite: SpriteWire, rotation: 0, powered: c.PoweredAt(pos)}, true
	}
	if _, ok := c.WireConnection(pos, direction.North); ok {
		return tileVisualInfo{sprite: SpriteWire, rotation: 1, powered: c.PoweredAt(pos)}, true
	}

	return tileVisualInfo{}, false
}

// Len returns the number of live tile instances.
func (r *Renderer) Len() int {
	return r.instances.Len()
}

// Buffer returns the GPU instance buffer, (re)uploading if dirty.
func (r *Renderer) Buffer(device *wgpu.Device, queue *wgpu.Queue) (*wgpu.Buffer, error) {
	var elem GPUTileInstance
	return r.instances.Buffer(device, queue, elem.Size(), MarshalTileInstances)
}

// Release releases every GPU resource the renderer holds.
func (r *Renderer) Release() {
	r.instances.ReleaseBuffer()
	r.bindGroupProvider.Release()
}
