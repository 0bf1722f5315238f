// package rect renders the cursor's placement preview and validity outline:
// a small instance stream sharing board's TileInstance GPU layout (the same
// @oxy:instance_data struct, per shader/annotations.go), reusing the
// Powered field as a validity flag for the outline sprite instead of a
// cluster's power state. Grounded on original_source/src/cursor/mod.rs's
// Sprite enum (Pin/Flip/Flop preview variants, each a handful of rect
// primitives) and src/rect.rs's outline-color convention, translated from
// push-style rect.Handle ownership into the pull-based Sync pattern
// engine/renderer/board.Renderer already established against circuit.Circuit.
package rect

import (
	"github.com/agausmann/flipflop-go/circuit"
	"github.com/agausmann/flipflop-go/cursor"
	"github.com/agausmann/flipflop-go/engine/renderer/bind_group_provider"
	"github.com/agausmann/flipflop-go/engine/renderer/board"
	"github.com/agausmann/flipflop-go/instancing"
	"github.com/cogentcore/webgpu/wgpu"
)

// Sprite indices for the preview/outline atlas. Distinct from board's sprite
// atlas; this package's bind group points at its own texture.
const (
	SpritePreviewPin uint32 = iota
	SpritePreviewBody
	SpritePreviewOutput
	SpritePreviewSidePin
	SpritePreviewWire
	SpriteOutline
)

// previewInstanceCap is the fixed number of preview instances a Flip/Flop
// preview can occupy (input + body + output), matching Sprite::Flip/Flop's
// three rect::Handle fields in the original.
const previewInstanceCap = 3

// Renderer owns the preview/outline instance stream and its bind group
// resources (a small monochrome atlas, distinct from board's sprite sheet).
type Renderer struct {
	instances *instancing.InstanceManager[board.GPUTileInstance]
	handles   []instancing.Handle // reused slots for the current placement preview
	wireStart instancing.Handle
	wireEnd   instancing.Handle
	wireBody  instancing.Handle
	outline   instancing.Handle

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// New creates an empty preview/outline Renderer.
func New() *Renderer {
	return &Renderer{
		bindGroupProvider: bind_group_provider.NewBindGroupProvider("Preview & Outline Atlas"),
	}
}

func (r *Renderer) ensure() {
	if r.instances == nil {
		r.instances = instancing.New[board.GPUTileInstance]("Preview")
	}
}

// BindGroupProvider returns the preview atlas's bind group provider.
func (r *Renderer) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return r.bindGroupProvider
}

// Sync recomputes the entire preview/outline instance stream from the
// cursor's current state, matching CursorManager::update's per-frame
// Sprite::update + outline_color recomputation. Call once per render frame.
func (r *Renderer) Sync(c *circuit.Circuit, m *cursor.Manager, hoverTile circuit.Pos) {
	r.ensure()
	r.syncPlacementPreview(m, hoverTile)
	r.syncWirePreview(c, m)
	r.syncOutline(c, m, hoverTile)
}

// syncPlacementPreview shows the selected component's preview sprites at
// hoverTile while in Normal state, and hides them otherwise (PlaceWire/Pan),
// matching Sprite::update's `visible` gate.
func (r *Renderer) syncPlacementPreview(m *cursor.Manager, hoverTile circuit.Pos) {
	visible := m.State().Kind == cursor.Normal

	var sprites []uint32
	switch m.PlaceType() {
	case circuit.Pin:
		sprites = []uint32{SpritePreviewPin}
	case circuit.Flip:
		sprites = []uint32{SpritePreviewPin, SpritePreviewBody, SpritePreviewOutput}
	case circuit.Flop:
		sprites = []uint32{SpritePreviewSidePin, SpritePreviewBody, SpritePreviewOutput}
	}

	for len(r.handles) < previewInstanceCap {
		r.handles = append(r.handles, 0)
	}

	for i := 0; i < previewInstanceCap; i++ {
		if !visible || i >= len(sprites) {
			if r.handles[i] != 0 {
				r.instances.Release(r.handles[i])
				r.handles[i] = 0
			}
			continue
		}
		instance := board.GPUTileInstance{
			TileX:       int32(hoverTile.X),
			TileY:       int32(hoverTile.Y),
			SpriteIndex: sprites[i],
			Rotation:    uint32(m.PlaceOrientation()),
		}
		if r.handles[i] == 0 {
			r.handles[i] = r.instances.Insert(instance)
		} else {
			r.instances.Set(r.handles[i], instance)
		}
	}
}

// syncWirePreview shows a pin-start/pin-end/wire-body triple while dragging
// a wire, matching CursorManager::update's CursorState::PlaceWire arm.
func (r *Renderer) syncWirePreview(c *circuit.Circuit, m *cursor.Manager) {
	st := m.State()
	if st.Kind != cursor.PlaceWire {
		r.releaseIf(&r.wireStart)
		r.releaseIf(&r.wireEnd)
		r.releaseIf(&r.wireBody)
		return
	}

	r.setOrInsert(&r.wireStart, pinPreviewAt(c, st.WireStart))
	r.setOrInsert(&r.wireEnd, pinPreviewAt(c, st.WireEnd))

	rot := uint32(0)
	if st.WireStart.X == st.WireEnd.X {
		rot = 1
	}
	r.setOrInsert(&r.wireBody, board.GPUTileInstance{
		TileX:       int32(st.WireStart.X),
		TileY:       int32(st.WireStart.Y),
		SpriteIndex: SpritePreviewWire,
		Rotation:    rot,
	})
}

// pinPreviewAt returns a pin preview instance at pos unless a component
// already occupies it, matching the original's "hide the endpoint pin
// preview over an existing component" rule.
func pinPreviewAt(c *circuit.Circuit, pos circuit.Pos) (board.GPUTileInstance, bool) {
	if _, _, has := c.ComponentAt(pos); has {
		return board.GPUTileInstance{}, false
	}
	return board.GPUTileInstance{
		TileX:       int32(pos.X),
		TileY:       int32(pos.Y),
		SpriteIndex: SpritePreviewPin,
	}, true
}

func (r *Renderer) setOrInsert(h *instancing.Handle, instance board.GPUTileInstance, ok bool) {
	if !ok {
		r.releaseIf(h)
		return
	}
	if *h == 0 {
		*h = r.instances.Insert(instance)
	} else {
		r.instances.Set(*h, instance)
	}
}

func (r *Renderer) releaseIf(h *instancing.Handle) {
	if *h != 0 {
		r.instances.Release(*h)
		*h = 0
	}
}

// syncOutline places a single outline-sprite instance at the tile the
// current action would affect, with Powered repurposed as the validity
// flag (1 = legal, matching the original's blue outline; 0 = illegal,
// matching its red outline).
func (r *Renderer) syncOutline(c *circuit.Circuit, m *cursor.Manager, hoverTile circuit.Pos) {
	pos := hoverTile
	if st := m.State(); st.Kind == cursor.PlaceWire {
		pos = st.WireEnd
	}

	instance := board.GPUTileInstance{
		TileX:       int32(pos.X),
		TileY:       int32(pos.Y),
		SpriteIndex: SpriteOutline,
	}
	if m.ValidPlacement(c, hoverTile) {
		instance.Powered = 1
	}

	if r.outline == 0 {
		r.outline = r.instances.Insert(instance)
	} else {
		r.instances.Set(r.outline, instance)
	}
}

// Len returns the number of live preview/outline instances.
func (r *Renderer) Len() int {
	if r.instances == nil {
		return 0
	}
	return r.instances.Len()
}

// Buffer returns the GPU instance buffer, (re)uploading if dirty.
func (r *Renderer) Buffer(device *wgpu.Device, queue *wgpu.Queue) (*wgpu.Buffer, error) {
	r.ensure()
	var elem board.GPUTileInstance
	return r.instances.Buffer(device, queue, elem.Size(), board.MarshalTileInstances)
}

// Release releases every GPU resource the renderer holds.
func (r *Renderer) Release() {
	if r.instances != nil {
		r.instances.ReleaseBuffer()
	}
	r.bindGroupProvider.Release()
}
