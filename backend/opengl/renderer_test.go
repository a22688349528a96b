package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScissorRect(t *testing.T) {
	tests := []struct {
		name       string
		clip       [4]float32
		x, y, w, h int32
		ok         bool
	}{
		{name: "flips y", clip: [4]float32{10, 20, 110, 70}, x: 10, y: 530, w: 100, h: 50, ok: true},
		{name: "clamps left", clip: [4]float32{-10, 0, 40, 600}, x: 0, y: 0, w: 40, h: 600, ok: true},
		{name: "clamps below", clip: [4]float32{0, 500, 10, 650}, x: 0, y: 0, w: 10, h: 100, ok: true},
		{name: "empty", clip: [4]float32{5, 5, 5, 40}, x: 5, y: 560, w: 0, h: 35},
		{name: "offscreen", clip: [4]float32{-50, 0, -10, 10}, x: 0, y: 590, w: -10, h: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h, ok := scissorRect(tt.clip, 600)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, [4]int32{tt.x, tt.y, tt.w, tt.h}, [4]int32{x, y, w, h})
			}
		})
	}
}
