//go:build headless

// video_backend_ebiten_headless.go - Window backend replacement for headless builds

package main

func NewEbitenOutput() (VideoOutput, error) {
	return NewHeadlessVideoOutput(), nil
}

func init() {
	compiledFeatures = append(compiledFeatures, "video:headless")
}
