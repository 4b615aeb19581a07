// gpu_coords_test.go - Coordinate and clipping tests

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

	"github.com/stretchr/testify/require"
)

func TestGPU_SignExtend11(t *testing.T) {
	tests := []struct {
		in, want int16
	}{
		{0, 0},
		{5, 5},
		{100, 100},
		{1023, 1023},
		{1024, -1024},
		{0x7FF, -1},
		{-1, -1},
		{0x0805, 5},
		{0x0FFF, -1},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, signExtend11(tt.in), "signExtend11(%#x)", tt.in)
	}
}

func TestGPU_TriangleLandsAtVertexPlusOffset(t *testing.T) {
	g, r := newTestGPU(t, nil)
	r.reset()

	writeWords(t, g, 0xE5000000|16|8<<11)
	writeWords(t, g, 0x20FFFFFF, xy(5, 5), xy(50, 5), xy(5, 50))

	p := r.last()
	require.Equal(t, PRIM_TRIANGLE, p.Type)
	require.Len(t, p.Verts, 3)
	want := [][2]float32{{21, 13}, {66, 13}, {21, 58}}
	for i, w := range want {
		require.Equal(t, w[0], p.Verts[i].X, "vertex %d x", i)
		require.Equal(t, w[1], p.Verts[i].Y, "vertex %d y", i)
	}
}

func TestGPU_NegativeDrawOffset(t *testing.T) {
	g, r := newTestGPU(t, nil)
	r.reset()

	// x = -4, y = -2 in 11-bit two's complement
	writeWords(t, g, 0xE5000000|0x7FC|0x7FE<<11)
	writeWords(t, g, 0x20FFFFFF, xy(10, 10), xy(40, 10), xy(10, 40))

	p := r.last()
	require.Equal(t, float32(6), p.Verts[0].X)
	require.Equal(t, float32(8), p.Verts[0].Y)
}
