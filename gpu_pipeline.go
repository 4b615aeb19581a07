// gpu_pipeline.go - Vulkan Renderer State Tracking

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine

License: GPLv3 or later
*/

/*
gpu_pipeline.go - Vulkan Renderer State Tracking

VulkanRenderer rasterizes through the embedded SoftwareRenderer and mirrors
every fixed-function state change into a PipelineKey. When a primitive batch
begins, the key selects (or builds) the matching pipeline description, so
the number of distinct pipelines a command stream needs is known even when
no Vulkan device is present.

The Vulkan specific half lives in gpu_vulkan.go (instance probe, enum
mapping) with a headless twin in gpu_vulkan_headless.go.
*/

package main

import "sync"

// PipelineKey identifies one fixed-function pipeline configuration.
type PipelineKey struct {
	DepthTestEnable  bool
	DepthWriteEnable bool
	DepthCompareOp   CompareFunc
	BlendEnable      bool
	SrcBlendFactor   BlendFactor
	DstBlendFactor   BlendFactor
	BlendOp          BlendOp
	AlphaTestEnable  bool
	AlphaCompareOp   CompareFunc
	Textured         bool
}

// VulkanRenderer is a Renderer that builds Vulkan pipeline state on top of
// the software rasterizer.
type VulkanRenderer struct {
	*SoftwareRenderer

	mutex       sync.Mutex
	device      *vkDevice
	initialized bool

	key       PipelineKey
	bound     PipelineKey
	hasBound  bool
	pipelines map[PipelineKey]*vkPipelineState
	binds     int
}

func NewVulkanRenderer() *VulkanRenderer {
	return &VulkanRenderer{
		SoftwareRenderer: NewSoftwareRenderer(),
		pipelines:        make(map[PipelineKey]*vkPipelineState),
		key: PipelineKey{
			DepthCompareOp: CMP_ALWAYS,
			SrcBlendFactor: BLEND_ONE,
			DstBlendFactor: BLEND_ZERO,
			AlphaCompareOp: CMP_ALWAYS,
		},
	}
}

// Init opens a Vulkan instance when one is available. Rendering continues
// on the software path either way.
func (r *VulkanRenderer) Init(width, height int) error {
	if err := r.SoftwareRenderer.Init(width, height); err != nil {
		return err
	}
	dev, err := openVulkan()
	r.mutex.Lock()
	r.device, r.initialized = dev, err == nil
	r.mutex.Unlock()
	return nil
}

func (r *VulkanRenderer) Destroy() {
	r.mutex.Lock()
	if r.device != nil {
		r.device.close()
		r.device = nil
	}
	r.initialized = false
	clear(r.pipelines)
	r.hasBound = false
	r.mutex.Unlock()
	r.SoftwareRenderer.Destroy()
}

// Accelerated reports whether a Vulkan instance was created.
func (r *VulkanRenderer) Accelerated() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.initialized
}

// PipelineStats returns the number of distinct pipelines built and the
// number of pipeline binds issued.
func (r *VulkanRenderer) PipelineStats() (pipelines, binds int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.pipelines), r.binds
}

// CurrentKey returns the state the next batch will be drawn with.
func (r *VulkanRenderer) CurrentKey() PipelineKey {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.key
}

func (r *VulkanRenderer) update(fn func(k *PipelineKey)) {
	r.mutex.Lock()
	fn(&r.key)
	r.mutex.Unlock()
}

func (r *VulkanRenderer) EnableTexture() {
	r.SoftwareRenderer.EnableTexture()
	r.update(func(k *PipelineKey) { k.Textured = true })
}

func (r *VulkanRenderer) DisableTexture() {
	r.SoftwareRenderer.DisableTexture()
	r.update(func(k *PipelineKey) { k.Textured = false })
}

func (r *VulkanRenderer) EnableBlend() {
	r.SoftwareRenderer.EnableBlend()
	r.update(func(k *PipelineKey) { k.BlendEnable = true })
}

func (r *VulkanRenderer) DisableBlend() {
	r.SoftwareRenderer.DisableBlend()
	r.update(func(k *PipelineKey) { k.BlendEnable = false })
}

func (r *VulkanRenderer) SetBlendFunc(src, dst BlendFactor) {
	r.SoftwareRenderer.SetBlendFunc(src, dst)
	r.update(func(k *PipelineKey) { k.SrcBlendFactor, k.DstBlendFactor = src, dst })
}

func (r *VulkanRenderer) SetBlendOp(op BlendOp) {
	r.SoftwareRenderer.SetBlendOp(op)
	r.update(func(k *PipelineKey) { k.BlendOp = op })
}

func (r *VulkanRenderer) EnableAlphaTest() {
	r.SoftwareRenderer.EnableAlphaTest()
	r.update(func(k *PipelineKey) { k.AlphaTestEnable = true })
}

func (r *VulkanRenderer) DisableAlphaTest() {
	r.SoftwareRenderer.DisableAlphaTest()
	r.update(func(k *PipelineKey) { k.AlphaTestEnable = false })
}

// SetAlphaFunc keys only on the compare op; the reference is a push constant.
func (r *VulkanRenderer) SetAlphaFunc(fn CompareFunc, ref float32) {
	r.SoftwareRenderer.SetAlphaFunc(fn, ref)
	r.update(func(k *PipelineKey) { k.AlphaCompareOp = fn })
}

func (r *VulkanRenderer) EnableDepthTest() {
	r.SoftwareRenderer.EnableDepthTest()
	r.update(func(k *PipelineKey) { k.DepthTestEnable, k.DepthWriteEnable = true, true })
}

func (r *VulkanRenderer) DisableDepthTest() {
	r.SoftwareRenderer.DisableDepthTest()
	r.update(func(k *PipelineKey) { k.DepthTestEnable, k.DepthWriteEnable = false, false })
}

func (r *VulkanRenderer) DepthFunc(fn CompareFunc) {
	r.SoftwareRenderer.DepthFunc(fn)
	r.update(func(k *PipelineKey) { k.DepthCompareOp = fn })
}

// PrimBegin binds the pipeline for the current state before the batch.
func (r *VulkanRenderer) PrimBegin(prim PrimType) {
	r.mutex.Lock()
	if !r.hasBound || r.bound != r.key {
		if _, ok := r.pipelines[r.key]; !ok {
			r.pipelines[r.key] = newPipelineState(r.key)
		}
		r.bound, r.hasBound = r.key, true
		r.binds++
	}
	r.mutex.Unlock()
	r.SoftwareRenderer.PrimBegin(prim)
}
