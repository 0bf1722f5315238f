package main

// QuadVertex is the shared per-vertex record every tile instance draws:
// a unit square in tile-local space (0,0)-(1,1) plus its atlas UV corner.
// Grounded on the teacher's examples/scene.go buildCube/GPUVertex pattern,
// generalized from a cube's 3D position+color layout down to a flat
// quad's 2D position+uv layout, uploaded via common.SliceToBytes the same
// way buildCube's vertices are.
type QuadVertex struct {
	Position [2]float32
	UV       [2]float32
}

// buildQuad returns the vertex and index data for a single unit square
// spanning tile-local space (0,0) to (1,1), the shared mesh every board
// and rect tile instance draws, scaled only by its TileInstance's
// tile_pos offset in the vertex shader. Winding is irrelevant here since
// the tile pipeline disables backface culling (flat 2D sprites, always
// facing the camera), matching pipeline.WithCullMode's CullModeNone
// default.
func buildQuad() ([]QuadVertex, []uint32) {
	vertices := []QuadVertex{
		{Position: [2]float32{0, 0}, UV: [2]float32{0, 0}},
		{Position: [2]float32{1, 0}, UV: [2]float32{1, 0}},
		{Position: [2]float32{1, 1}, UV: [2]float32{1, 1}},
		{Position: [2]float32{0, 1}, UV: [2]float32{0, 1}},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return vertices, indices
}
