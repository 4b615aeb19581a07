// gpu_script_test.go - Lua script runner tests

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
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestScript_FillAndVSync(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	s := NewScriptRunner(g)

	err := s.Run(context.Background(), `
gp1(0x03000000)
gp0(0x02FF0000, 0, 0x00100010)
gp0(0x20FFFFFF, 0x00000000, 0x0000000A, 0x000A0000)
vsync()
assert(vram(5, 5) == 31744, "fill colour")
assert(frames() == 1, "frame count")
`)
	require.NoError(t, err)
	require.Equal(t, uint16(0x7C00), g.Context().vramAt(5, 5))
}

func TestScript_TablePacketAndStatus(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	s := NewScriptRunner(g)

	require.NoError(t, s.Run(context.Background(), `
gp0({0xE1000020})
gp1(0x10000007)
assert(read() == 2, "gpu version")
assert(status() ~= 0)
`))
	require.Equal(t, 1, g.Context().globalTextABR)
}

func TestScript_Log(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	s := NewScriptRunner(g)

	var lines []string
	s.logf = func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}
	require.NoError(t, s.Run(context.Background(), `log("frame", 1, true)`))
	require.Equal(t, []string{"script: frame 1 true"}, lines)
}

func TestScript_Errors(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	s := NewScriptRunner(g)

	require.Error(t, s.Run(context.Background(), `gp1("x")`))
	require.Error(t, s.Run(context.Background(), `gp0({0xE1000000, "x"})`))
	require.Error(t, s.Run(context.Background(), `this is not lua`))
}

func TestScript_Cancel(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	s := NewScriptRunner(g)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.Error(t, s.Run(ctx, `while true do vsync() end`))
}

func TestScript_RunFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/scripts/abr.lua", []byte(`gp0(0xE1000040)`), 0644))

	g, _ := newTestGPU(t, nil)
	s := NewScriptRunner(g)
	require.NoError(t, s.RunFile(context.Background(), fs, "/scripts/abr.lua"))
	require.Equal(t, 2, g.Context().globalTextABR)

	require.Error(t, s.RunFile(context.Background(), fs, "/scripts/missing.lua"))
}
