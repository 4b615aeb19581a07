//go:build !headless

// gpu_vulkan.go - Vulkan Pipeline Descriptions

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
gpu_vulkan.go - Vulkan Pipeline Descriptions

Maps renderer state onto Vulkan enums and builds the colour blend and depth
stencil descriptions a graphics pipeline is created from. openVulkan loads
the system loader and creates an instance; any failure leaves the renderer
on its software path.
*/

package main

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

type vkPipelineState struct {
	key   PipelineKey
	blend vk.PipelineColorBlendAttachmentState
	depth vk.PipelineDepthStencilStateCreateInfo
}

type vkDevice struct {
	instance vk.Instance
	gpus     uint32
}

func openVulkan() (*vkDevice, error) {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, fmt.Errorf("vulkan loader: %w", err)
	}
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vulkan init: %w", err)
	}

	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   "IntuitionGPU\x00",
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PEngineName:        "IntuitionGPU\x00",
		EngineVersion:      vk.MakeVersion(1, 0, 0),
		ApiVersion:         vk.MakeVersion(1, 0, 0),
	}
	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &appInfo,
	}

	var instance vk.Instance
	if ret := vk.CreateInstance(&createInfo, nil, &instance); ret != vk.Success {
		return nil, fmt.Errorf("vkCreateInstance failed: %d", ret)
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, fmt.Errorf("vulkan instance: %w", err)
	}

	dev := &vkDevice{instance: instance}
	if ret := vk.EnumeratePhysicalDevices(instance, &dev.gpus, nil); ret != vk.Success || dev.gpus == 0 {
		vk.DestroyInstance(instance, nil)
		return nil, fmt.Errorf("no vulkan physical device")
	}
	return dev, nil
}

func (d *vkDevice) close() {
	vk.DestroyInstance(d.instance, nil)
}

func BlendFactorToVulkan(f BlendFactor) vk.BlendFactor {
	switch f {
	case BLEND_ZERO:
		return vk.BlendFactorZero
	case BLEND_ONE:
		return vk.BlendFactorOne
	case BLEND_SRCCOLOR:
		return vk.BlendFactorSrcColor
	case BLEND_INVSRCCOLOR:
		return vk.BlendFactorOneMinusSrcColor
	case BLEND_SRCALPHA:
		return vk.BlendFactorSrcAlpha
	case BLEND_INVSRCALPHA:
		return vk.BlendFactorOneMinusSrcAlpha
	case BLEND_DSTCOLOR:
		return vk.BlendFactorDstColor
	case BLEND_INVDSTCOLOR:
		return vk.BlendFactorOneMinusDstColor
	}
	return vk.BlendFactorOne
}

func BlendOpToVulkan(op BlendOp) vk.BlendOp {
	switch op {
	case BLENDOP_SUBTRACT:
		return vk.BlendOpSubtract
	case BLENDOP_REVSUBTRACT:
		return vk.BlendOpReverseSubtract
	}
	return vk.BlendOpAdd
}

func CompareFuncToVulkan(fn CompareFunc) vk.CompareOp {
	switch fn {
	case CMP_NEVER:
		return vk.CompareOpNever
	case CMP_LESS:
		return vk.CompareOpLess
	case CMP_EQUAL:
		return vk.CompareOpEqual
	case CMP_LEQUAL:
		return vk.CompareOpLessOrEqual
	case CMP_GREATER:
		return vk.CompareOpGreater
	case CMP_NOTEQUAL:
		return vk.CompareOpNotEqual
	case CMP_GEQUAL:
		return vk.CompareOpGreaterOrEqual
	}
	return vk.CompareOpAlways
}

func vkBool(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}

func newPipelineState(k PipelineKey) *vkPipelineState {
	src, dst, op := BlendFactorToVulkan(k.SrcBlendFactor), BlendFactorToVulkan(k.DstBlendFactor), BlendOpToVulkan(k.BlendOp)
	return &vkPipelineState{
		key: k,
		blend: vk.PipelineColorBlendAttachmentState{
			BlendEnable:         vkBool(k.BlendEnable),
			SrcColorBlendFactor: src,
			DstColorBlendFactor: dst,
			ColorBlendOp:        op,
			SrcAlphaBlendFactor: vk.BlendFactorOne,
			DstAlphaBlendFactor: vk.BlendFactorZero,
			AlphaBlendOp:        vk.BlendOpAdd,
			ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit |
				vk.ColorComponentBBit | vk.ColorComponentABit),
		},
		depth: vk.PipelineDepthStencilStateCreateInfo{
			SType:            vk.StructureTypePipelineDepthStencilStateCreateInfo,
			DepthTestEnable:  vkBool(k.DepthTestEnable),
			DepthWriteEnable: vkBool(k.DepthWriteEnable),
			DepthCompareOp:   CompareFuncToVulkan(k.DepthCompareOp),
		},
	}
}

func init() {
	compiledFeatures = append(compiledFeatures, "renderer:vulkan")
}
