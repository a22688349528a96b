package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestMonoFont(t *testing.T) {
	f := MonoFont{CharWidth: 7, CharHeight: 13}
	assert.Equal(t, float32(7), f.Advance('W'))
	assert.Equal(t, float32(7), f.Advance('é'))
	assert.Equal(t, float32(13), f.LineHeight())
	_, ok := f.Glyph('a', 0, 0)
	assert.False(t, ok)
}

func TestFaceFontAtlas(t *testing.T) {
	f := NewFaceFont(basicfont.Face7x13)
	assert.Equal(t, float32(7), f.Advance('a'))
	assert.Equal(t, float32(13), f.LineHeight())

	b := f.Atlas().Bounds()
	require.False(t, b.Empty())

	var inked bool
	for _, px := range f.Atlas().Pix {
		if px != 0 {
			inked = true
			break
		}
	}
	assert.True(t, inked, "glyphs are rasterized")

	q, ok := f.Glyph('A', 10, 20)
	require.True(t, ok)
	assert.Equal(t, float32(10), q.X0)
	assert.Equal(t, float32(20), q.Y0)
	assert.Greater(t, q.U1, q.U0)
	assert.Greater(t, q.V1, q.V0)

	_, ok = f.Glyph(' ', 0, 0)
	assert.False(t, ok, "space has no quad")
}

func TestFaceFontAdvanceCache(t *testing.T) {
	f := NewFaceFont(basicfont.Face7x13)
	first := f.Advance('x')
	assert.Equal(t, first, f.Advance('x'))
	assert.Equal(t, 1, f.advances.Len())

	// Runes the face lacks measure like '?'.
	assert.Equal(t, f.Advance('?'), f.Advance('\U0001F600'))

	for r := rune(0x4E00); r < 0x4E00+2*faceAdvanceCacheSize; r++ {
		f.Advance(r)
	}
	assert.Equal(t, faceAdvanceCacheSize, f.advances.Len(), "the cache is bounded")
}

func TestFaceFontTextureID(t *testing.T) {
	f := NewFaceFont(basicfont.Face7x13)
	var atlas FontAtlas = f
	atlas.SetTextureID(3)
	assert.Equal(t, uint32(3), f.TextureID())
}

func TestCalcTextSize(t *testing.T) {
	ctx := NewContext()
	ctx.SetFont(MonoFont{CharWidth: 7, CharHeight: 13})

	assert.Equal(t, Vec2{0, 13}, ctx.CalcTextSize(""))
	assert.Equal(t, Vec2{35, 13}, ctx.CalcTextSize("hello"))
	assert.Equal(t, Vec2{21, 26}, ctx.CalcTextSize("ab\nxyz"))
}
