//go:build !headless

// gpu_vulkan_test.go - Vulkan enum mapping tests

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

package main

import (
	"testing"

	vk "github.com/goki/vulkan"
)

func TestVulkan_BlendFactorMapping(t *testing.T) {
	tests := []struct {
		in   BlendFactor
		want vk.BlendFactor
	}{
		{BLEND_ZERO, vk.BlendFactorZero},
		{BLEND_ONE, vk.BlendFactorOne},
		{BLEND_SRCCOLOR, vk.BlendFactorSrcColor},
		{BLEND_INVSRCCOLOR, vk.BlendFactorOneMinusSrcColor},
		{BLEND_SRCALPHA, vk.BlendFactorSrcAlpha},
		{BLEND_INVSRCALPHA, vk.BlendFactorOneMinusSrcAlpha},
		{BLEND_DSTCOLOR, vk.BlendFactorDstColor},
		{BLEND_INVDSTCOLOR, vk.BlendFactorOneMinusDstColor},
	}
	for _, tt := range tests {
		if got := BlendFactorToVulkan(tt.in); got != tt.want {
			t.Errorf("BlendFactorToVulkan(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestVulkan_BlendOpMapping(t *testing.T) {
	if BlendOpToVulkan(BLENDOP_ADD) != vk.BlendOpAdd ||
		BlendOpToVulkan(BLENDOP_SUBTRACT) != vk.BlendOpSubtract ||
		BlendOpToVulkan(BLENDOP_REVSUBTRACT) != vk.BlendOpReverseSubtract {
		t.Fatal("blend op mapping mismatch")
	}
}

func TestVulkan_CompareMapping(t *testing.T) {
	tests := map[CompareFunc]vk.CompareOp{
		CMP_NEVER:    vk.CompareOpNever,
		CMP_LESS:     vk.CompareOpLess,
		CMP_EQUAL:    vk.CompareOpEqual,
		CMP_LEQUAL:   vk.CompareOpLessOrEqual,
		CMP_GREATER:  vk.CompareOpGreater,
		CMP_NOTEQUAL: vk.CompareOpNotEqual,
		CMP_GEQUAL:   vk.CompareOpGreaterOrEqual,
		CMP_ALWAYS:   vk.CompareOpAlways,
	}
	for in, want := range tests {
		if got := CompareFuncToVulkan(in); got != want {
			t.Errorf("CompareFuncToVulkan(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestVulkan_PipelineState(t *testing.T) {
	ps := newPipelineState(PipelineKey{
		BlendEnable:     true,
		SrcBlendFactor:  BLEND_ONE,
		DstBlendFactor:  BLEND_ONE,
		BlendOp:         BLENDOP_REVSUBTRACT,
		DepthTestEnable: true,
		DepthCompareOp:  CMP_GREATER,
	})
	if ps.blend.BlendEnable != vk.True || ps.blend.ColorBlendOp != vk.BlendOpReverseSubtract {
		t.Errorf("blend state = %+v", ps.blend)
	}
	if ps.blend.SrcColorBlendFactor != vk.BlendFactorOne || ps.blend.DstColorBlendFactor != vk.BlendFactorOne {
		t.Errorf("blend factors = %d/%d", ps.blend.SrcColorBlendFactor, ps.blend.DstColorBlendFactor)
	}
	if ps.depth.DepthTestEnable != vk.True || ps.depth.DepthWriteEnable != vk.False ||
		ps.depth.DepthCompareOp != vk.CompareOpGreater {
		t.Errorf("depth state = %+v", ps.depth)
	}
}
