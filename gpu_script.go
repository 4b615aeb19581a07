// gpu_script.go - Lua Scripted GPU Command Streams

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
gpu_script.go - Lua Scripted GPU Command Streams

Test scenes are easier to write as small Lua programs than as binary
traces. The script sees the GPU ports as globals:

  gp0(w, ...)    write GP0 words (numbers or one table of numbers)
  gp1(w)         write a GP1 command
  vsync([n])     signal n vertical blanks (default 1)
  status()       GPUSTAT
  read()         next GPUREAD word
  vram(x, y)     one VRAM pixel
  frames()       buffer swaps so far
  log(...)       print through the host logger

Example:

  gp1(0x03000000)
  gp0(0x02000000, 0, 0x01E00280)
  gp0(0x20FF0000, 0x00000000, 0x00000040, 0x00400000)
  vsync()
*/

package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/afero"
	lua "github.com/yuin/gopher-lua"
)

// ScriptRunner executes Lua command scripts against a GPU.
type ScriptRunner struct {
	gpu    *GPU
	logf   func(format string, args ...any)
	packet []uint32
}

func NewScriptRunner(g *GPU) *ScriptRunner {
	return &ScriptRunner{gpu: g, logf: log.Printf}
}

// RunFile loads and runs a script from fs.
func (s *ScriptRunner) RunFile(ctx context.Context, fs afero.Fs, path string) error {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}
	return s.Run(ctx, string(src))
}

// Run executes script source. Cancelling ctx stops the script.
func (s *ScriptRunner) Run(ctx context.Context, src string) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	for name, fn := range map[string]lua.LGFunction{
		"gp0":    s.luaGP0,
		"gp1":    s.luaGP1,
		"vsync":  s.luaVSync,
		"status": s.luaStatus,
		"read":   s.luaRead,
		"vram":   s.luaVRAM,
		"frames": s.luaFrames,
		"log":    s.luaLog,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}

	if err := L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

func (s *ScriptRunner) luaGP0(L *lua.LState) int {
	words := s.packet[:0]
	if tbl, ok := L.Get(1).(*lua.LTable); ok {
		for i := 1; i <= tbl.Len(); i++ {
			n, ok := tbl.RawGetInt(i).(lua.LNumber)
			if !ok {
				L.RaiseError("gp0: table entry %d is not a number", i)
				return 0
			}
			words = append(words, uint32(n))
		}
	} else {
		for i := 1; i <= L.GetTop(); i++ {
			words = append(words, uint32(L.CheckNumber(i)))
		}
	}
	s.packet = words
	if err := s.gpu.WriteGP0Words(words); err != nil {
		L.RaiseError("gp0: %v", err)
	}
	return 0
}

func (s *ScriptRunner) luaGP1(L *lua.LState) int {
	s.gpu.WriteGP1(uint32(L.CheckNumber(1)))
	return 0
}

func (s *ScriptRunner) luaVSync(L *lua.LState) int {
	n := L.OptInt(1, 1)
	for range n {
		s.gpu.VSync()
	}
	return 0
}

func (s *ScriptRunner) luaStatus(L *lua.LState) int {
	L.Push(lua.LNumber(s.gpu.Status()))
	return 1
}

func (s *ScriptRunner) luaRead(L *lua.LState) int {
	L.Push(lua.LNumber(s.gpu.ReadGPUData()))
	return 1
}

func (s *ScriptRunner) luaVRAM(L *lua.LState) int {
	x, y := L.CheckInt(1), L.CheckInt(2)
	s.gpu.mutex.Lock()
	v := s.gpu.rc.vramAt(x, y)
	s.gpu.mutex.Unlock()
	L.Push(lua.LNumber(v))
	return 1
}

func (s *ScriptRunner) luaFrames(L *lua.LState) int {
	swaps, _ := s.gpu.Frames()
	L.Push(lua.LNumber(swaps))
	return 1
}

func (s *ScriptRunner) luaLog(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	s.logf("script: %s", strings.Join(parts, " "))
	return 0
}
