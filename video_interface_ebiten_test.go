//go:build !headless

package main

import "testing"

func TestEbitenOutput_Capabilities(t *testing.T) {
	eo := &EbitenOutput{}
	if _, ok := any(eo).(KeyboardInput); !ok {
		t.Fatal("expected EbitenOutput to implement KeyboardInput")
	}
	if _, ok := any(eo).(StatusCapable); !ok {
		t.Fatal("expected EbitenOutput to implement StatusCapable")
	}
	if _, ok := any(eo).(ControlCapable); !ok {
		t.Fatal("expected EbitenOutput to implement ControlCapable")
	}
}
