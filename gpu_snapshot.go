// gpu_snapshot.go - PlayStation GPU State Snapshots

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
gpu_snapshot.go - State Snapshots

A snapshot holds VRAM plus the register state needed to continue a command
stream. Registers are restored by replaying the equivalent E1-E6 commands,
so every derived value (texture window scale, draw offsets, mask depth
function) is rebuilt by the same code that decoded it the first time.

File layout (little endian):
  "PSXG" magic
  uint32 version
  snapshotHeader
  zstd compressed VRAM (uint16 pixels)
*/

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

const (
	gpuSnapshotMagic   = "PSXG"
	gpuSnapshotVersion = 1
)

type snapshotHeader struct {
	Status     uint32
	Info       [INFO_COUNT]uint32
	DisplayX   int32
	DisplayY   int32
	DisplayW   int32
	DisplayH   int32
	Interlaced bool
	RGB24      bool
	Disabled   bool
	VRAMHeight int32
	VRAMWords  uint32
}

// GPUSnapshot is the saved state of a GPU.
type GPUSnapshot struct {
	header snapshotHeader
	VRAM   []uint16
}

// TakeSnapshot captures VRAM and register state.
func (g *GPU) TakeSnapshot() *GPUSnapshot {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	rc := g.rc
	d := &rc.display
	snap := &GPUSnapshot{
		header: snapshotHeader{
			Status:     rc.statusReg,
			Info:       rc.gpuInfo,
			DisplayX:   int32(d.DisplayPosition.X),
			DisplayY:   int32(d.DisplayPosition.Y),
			DisplayW:   int32(d.DisplayMode.X),
			DisplayH:   int32(d.DisplayMode.Y),
			Interlaced: d.Interlaced,
			RGB24:      d.RGB24 != 0,
			Disabled:   d.Disabled,
			VRAMHeight: int32(rc.vramHeight),
			VRAMWords:  uint32(len(rc.vram)),
		},
		VRAM: make([]uint16, len(rc.vram)),
	}
	copy(snap.VRAM, rc.vram)
	return snap
}

// RestoreSnapshot loads a snapshot taken from a GPU with the same VRAM size.
func (g *GPU) RestoreSnapshot(snap *GPUSnapshot) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	rc := g.rc
	h := &snap.header
	if int(h.VRAMHeight) != rc.vramHeight || len(snap.VRAM) != len(rc.vram) {
		return fmt.Errorf("snapshot vram %dx%d does not match %dx%d",
			PSX_VRAM_WIDTH, h.VRAMHeight, PSX_VRAM_WIDTH, rc.vramHeight)
	}

	g.reset()
	copy(rc.vram, snap.VRAM)

	rc.cmdTexturePage(uint32(GP0_TEXTURE_PAGE)<<24 | h.Status&STATUS_DRAW_MODE)
	rc.cmdTextureWindow(uint32(GP0_TEXTURE_WIN)<<24 | h.Info[INFO_TW])
	rc.cmdDrawAreaStart(uint32(GP0_DRAW_AREA_TL)<<24 | h.Info[INFO_DRAWSTART])
	rc.cmdDrawAreaEnd(uint32(GP0_DRAW_AREA_BR)<<24 | h.Info[INFO_DRAWEND])
	rc.cmdDrawOffset(uint32(GP0_DRAW_OFFSET)<<24 | h.Info[INFO_DRAWOFF])
	rc.cmdSTP(uint32(GP0_MASK_BIT)<<24 | (h.Status&STATUS_MASK_BITS)>>11)

	g.setDisplayMode(int(h.DisplayW), int(h.DisplayH), h.Interlaced, h.RGB24)
	rc.display.DisplayPosition = PSXPoint{X: int(h.DisplayX), Y: int(h.DisplayY)}
	rc.display.DisplayEnd = PSXPoint{X: int(h.DisplayX + h.DisplayW), Y: int(h.DisplayY + h.DisplayH)}
	rc.prevDisplay.DisplayPosition = rc.display.DisplayPosition
	rc.prevDisplay.DisplayEnd = rc.display.DisplayEnd
	g.setDisplayEnabled(!h.Disabled)

	rc.texCache.Purge()
	rc.PrepareFullScreenUpload(1)
	rc.UploadScreen(1)
	return nil
}

// Encode writes the snapshot in its file format.
func (s *GPUSnapshot) Encode(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(gpuSnapshotMagic)
	binary.Write(&buf, binary.LittleEndian, uint32(gpuSnapshotVersion))
	if err := binary.Write(&buf, binary.LittleEndian, &s.header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	if err := binary.Write(enc, binary.LittleEndian, s.VRAM); err != nil {
		enc.Close()
		return fmt.Errorf("compressing vram: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing zstd: %w", err)
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// DecodeGPUSnapshot parses a snapshot.
func DecodeGPUSnapshot(r io.Reader) (*GPUSnapshot, error) {
	magic := make([]byte, len(gpuSnapshotMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic) != gpuSnapshotMagic {
		return nil, fmt.Errorf("invalid snapshot magic: %q", string(magic))
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version != gpuSnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version: %d", version)
	}

	s := &GPUSnapshot{}
	if err := binary.Read(r, binary.LittleEndian, &s.header); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if s.header.VRAMWords != uint32(PSX_VRAM_WIDTH*int(s.header.VRAMHeight)) {
		return nil, fmt.Errorf("vram size %d does not match height %d", s.header.VRAMWords, s.header.VRAMHeight)
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening zstd reader: %w", err)
	}
	defer dec.Close()

	s.VRAM = make([]uint16, s.header.VRAMWords)
	if err := binary.Read(dec, binary.LittleEndian, s.VRAM); err != nil {
		return nil, fmt.Errorf("decompressing vram: %w", err)
	}
	return s, nil
}

// SaveSnapshotFile writes a snapshot to path on fs.
func SaveSnapshotFile(fs afero.Fs, path string, s *GPUSnapshot) error {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, buf.Bytes(), 0644)
}

// LoadSnapshotFile reads a snapshot from path on fs.
func LoadSnapshotFile(fs afero.Fs, path string) (*GPUSnapshot, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeGPUSnapshot(f)
}
