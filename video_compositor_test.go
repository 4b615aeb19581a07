// video_compositor_test.go - Tests and benchmarks for video compositor

package main

import (
	"testing"
)

type fakeSource struct {
	frame   []byte
	w, h    int
	layer   int
	enabled bool
	vsyncs  int
}

func (f *fakeSource) GetFrame() []byte          { return f.frame }
func (f *fakeSource) IsEnabled() bool           { return f.enabled }
func (f *fakeSource) GetLayer() int             { return f.layer }
func (f *fakeSource) GetDimensions() (int, int) { return f.w, f.h }
func (f *fakeSource) SignalVSync()              { f.vsyncs++ }

func solidFrame(w, h int, r, g, b, a byte) []byte {
	frame := make([]byte, w*h*4)
	for i := 0; i < len(frame); i += 4 {
		frame[i], frame[i+1], frame[i+2], frame[i+3] = r, g, b, a
	}
	return frame
}

func TestCompositor_LayerOrder(t *testing.T) {
	out := NewHeadlessVideoOutput()
	out.Start()
	c := NewVideoCompositor(out)
	c.SetDimensions(4, 4)

	top := &fakeSource{frame: solidFrame(2, 2, 0, 255, 0, 255), w: 2, h: 2, layer: 5, enabled: true}
	bottom := &fakeSource{frame: solidFrame(4, 4, 255, 0, 0, 255), w: 4, h: 4, layer: 0, enabled: true}
	c.RegisterSource(top)
	c.RegisterSource(bottom)

	if !c.Composite() {
		t.Fatal("expected content")
	}
	frame := out.LastFrame()
	if frame[0] != 0 || frame[1] != 255 {
		t.Fatalf("expected top layer green, got %v", frame[:4])
	}
	if top.vsyncs != 1 || bottom.vsyncs != 1 {
		t.Fatalf("expected one vsync per source, got %d/%d", top.vsyncs, bottom.vsyncs)
	}
}

func TestCompositor_TransparentPixelsShowLowerLayer(t *testing.T) {
	c := NewVideoCompositor(nil)
	c.SetDimensions(2, 1)
	c.RegisterSource(&fakeSource{frame: solidFrame(2, 1, 10, 20, 30, 255), w: 2, h: 1, enabled: true})
	overlay := solidFrame(2, 1, 200, 200, 200, 255)
	overlay[7] = 0
	c.RegisterSource(&fakeSource{frame: overlay, w: 2, h: 1, layer: 1, enabled: true})

	c.Composite()
	frame := c.Frame()
	if frame[0] != 200 || frame[4] != 10 {
		t.Fatalf("unexpected composite %v", frame)
	}
}

func TestCompositor_DisabledSourceSkipped(t *testing.T) {
	c := NewVideoCompositor(nil)
	c.SetDimensions(1, 1)
	c.RegisterSource(&fakeSource{frame: solidFrame(1, 1, 1, 1, 1, 255), w: 1, h: 1})
	if c.Composite() {
		t.Fatal("disabled source should not contribute")
	}
}

// BenchmarkFrameClear_Copy benchmarks the copy-based frame clear
func BenchmarkFrameClear_Copy(b *testing.B) {
	frameSize := 640 * 480 * 4
	frame := make([]byte, frameSize)
	zeroFrame := make([]byte, frameSize)
	for i := range frame {
		frame[i] = 0xFF
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		copy(frame, zeroFrame)
	}
}
