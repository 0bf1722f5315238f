package main

import (
	"fmt"

	"github.com/agausmann/flipflop-go/common"
	"github.com/agausmann/flipflop-go/engine/renderer"
	"github.com/agausmann/flipflop-go/engine/renderer/bind_group_provider"
	"github.com/agausmann/flipflop-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// initAtlasMaterial wires a single-texture sprite atlas onto provider's
// material bind group: locates the fragment shader's @oxy:provider material
// group from its Declarations, uploads atlas as the diffuse texture with a
// nearest-neighbor sampler (pixel-art sprite atlas, no mip filtering), and
// creates the bind group. Grounded on the teacher's
// engine/loader/loader.go initMaterialGPU, trimmed down from glTF's
// multi-role material scan (diffuse/normal/metallic-roughness) to this
// shader's single diffuse_texture/diffuse_sampler pair.
//
// Parameters:
//   - r: the renderer used to create the GPU texture, sampler, and bind group
//   - fragmentShader: the fragment shader whose Declarations name the material group/bindings
//   - provider: the BindGroupProvider to populate (board's or rect's atlas provider)
//   - atlas: the procedurally built atlas pixels to upload
//
// Returns:
//   - error: an error if no material provider is declared, or if GPU resource creation fails
func initAtlasMaterial(r renderer.Renderer, fragmentShader shader.Shader, provider bind_group_provider.BindGroupProvider, atlas common.TextureStagingData) error {
	materialGroupIdx := -1
	textureBinding, samplerBinding := -1, -1

	for _, decl := range fragmentShader.Declarations() {
		if decl.Type != shader.AnnotationTypeProvider || decl.Group == nil || decl.Binding == nil {
			continue
		}
		if decl.Args[0] != shader.AnnotationArgMaterial {
			continue
		}
		materialGroupIdx = *decl.Group
		if len(decl.Args) < 2 {
			continue
		}
		switch decl.Args[1] {
		case shader.AnnotationArgDiffuseTexture:
			textureBinding = *decl.Binding
		case shader.AnnotationArgDiffuseSampler:
			samplerBinding = *decl.Binding
		}
	}

	if materialGroupIdx < 0 {
		return fmt.Errorf("material: no @oxy:provider material group declared in %q", fragmentShader.Key())
	}
	if textureBinding < 0 || samplerBinding < 0 {
		return fmt.Errorf("material: missing diffuse texture/sampler binding role in %q", fragmentShader.Key())
	}

	if err := r.InitTextureView(provider, textureBinding, atlas); err != nil {
		return fmt.Errorf("material: failed to init atlas texture view: %w", err)
	}

	samplerData := common.SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   0,
		MaxAnisotropy: 1,
	}
	if err := r.InitSampler(provider, samplerBinding, samplerData); err != nil {
		return fmt.Errorf("material: failed to init atlas sampler: %w", err)
	}

	descriptor := fragmentShader.BindGroupLayoutDescriptor(materialGroupIdx)
	if err := r.InitBindGroup(provider, descriptor, nil, nil); err != nil {
		return fmt.Errorf("material: failed to init atlas bind group: %w", err)
	}

	return nil
}
