package board

import (
	_ "embed"
	"encoding/binary"
	"unsafe"
)

// GPUTileInstanceSource is the canonical WGSL definition of the TileInstance
// struct, matching GPUTileInstance's layout exactly. Grounded on
// engine/camera/gpu_types.go's GPUCameraUniformSource embed pattern.
//
//go:embed assets/tile_instance.wgsl
var GPUTileInstanceSource string

// GPUTileInstance is the GPU-aligned per-instance record the board renderer
// uploads for every occupied tile: its grid coordinate, which sprite to
// draw (wire, pin, flip, flop, or crossover variant), a quarter-turn
// rotation, and the cluster's current power state for tinting.
// Size: 20 bytes.
type GPUTileInstance struct {
	TileX       int32  // offset 0
	TileY       int32  // offset 4
	SpriteIndex uint32 // offset 8
	Rotation    uint32 // offset 12: quarter turns, 0-3, counter-clockwise
	Powered     uint32 // offset 16: 0 or 1
}

// Size returns the size of the GPUTileInstance struct in bytes.
func (g *GPUTileInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes a single GPUTileInstance into a byte buffer suitable
// for GPU upload.
func (g *GPUTileInstance) Marshal() []byte {
	buf := make([]byte, g.Size())
	binary.LittleEndian.PutUint32(buf[0:], uint32(g.TileX))
	binary.LittleEndian.PutUint32(buf[4:], uint32(g.TileY))
	binary.LittleEndian.PutUint32(buf[8:], g.SpriteIndex)
	binary.LittleEndian.PutUint32(buf[12:], g.Rotation)
	binary.LittleEndian.PutUint32(buf[16:], g.Powered)
	return buf
}

// MarshalTileInstances packs a slice of instances back-to-back, the shape
// InstanceManager[T].Buffer's marshal callback expects.
func MarshalTileInstances(instances []GPUTileInstance) []byte {
	buf := make([]byte, 0, len(instances)*int(unsafe.Sizeof(GPUTileInstance{})))
	for i := range instances {
		buf = append(buf, instances[i].Marshal()...)
	}
	return buf
}
