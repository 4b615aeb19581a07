// gpu_config.go - PlayStation GPU Compatibility Configuration

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
gpu_config.go - Compatibility Configuration

GPUConfig collects the compatibility knobs that change how primitives are
translated. All values are fixed for the lifetime of a GPU instance.

Offscreen drawing levels:
  0 - no software mirror
  1 - mirror everything into VRAM (full VRAM mode)
  2 - mirror primitives completely inside the front display
  3 - mirror primitives touching the front display
  4 - as 3, and draw front buffer primitives directly
*/

package main

import "fmt"

// GPUConfig holds interpreter compatibility options.
type GPUConfig struct {
	OffscreenDrawing int    // 0-4, see above
	FullVRAM         bool   // mirror primitives that are also drawn by the backend
	FilterType       int    // 0-6, >4 enables the two pass sprite filter
	UseMultiPass     bool   // two pass textured blending
	UseMask          bool   // emulate the mask bit through the depth buffer
	OpaquePass       bool   // split semi transparent textures into blended and opaque texels
	GLBlend          bool   // modulate with 0x7f7f7f instead of doubling vertex colours
	SmallAlpha       bool   // point sampled opaque pass for small sprites
	TileCheat        bool   // skip mirroring 32 pixel white tiles
	Fixes            uint32 // FIX_* bits
	VRAMHeight       int    // 512 or 1024
	GPUVersion       int    // 1 or 2 (2 widens the draw area fields)
	DisplayWidth     int
	DisplayHeight    int
	FrameSkip        bool // render every other frame
}

// DefaultGPUConfig returns the settings used when nothing is configured.
func DefaultGPUConfig() GPUConfig {
	return GPUConfig{
		OffscreenDrawing: 2,
		FilterType:       0,
		UseMultiPass:     false,
		UseMask:          true,
		OpaquePass:       true,
		GLBlend:          false,
		SmallAlpha:       false,
		VRAMHeight:       PSX_VRAM_HEIGHT_STD,
		GPUVersion:       1,
		DisplayWidth:     320,
		DisplayHeight:    240,
	}
}

// Validate reports the first out of range option.
func (c GPUConfig) Validate() error {
	if c.OffscreenDrawing < 0 || c.OffscreenDrawing > 4 {
		return fmt.Errorf("offscreen drawing level %d out of range 0-4", c.OffscreenDrawing)
	}
	if c.FilterType < 0 || c.FilterType > 6 {
		return fmt.Errorf("filter type %d out of range 0-6", c.FilterType)
	}
	if c.VRAMHeight != PSX_VRAM_HEIGHT_STD && c.VRAMHeight != PSX_VRAM_HEIGHT_2MB {
		return fmt.Errorf("vram height %d must be 512 or 1024", c.VRAMHeight)
	}
	if c.GPUVersion != 1 && c.GPUVersion != 2 {
		return fmt.Errorf("gpu version %d must be 1 or 2", c.GPUVersion)
	}
	if c.DisplayWidth <= 0 || c.DisplayHeight <= 0 {
		return fmt.Errorf("invalid display size: %dx%d", c.DisplayWidth, c.DisplayHeight)
	}
	return nil
}
