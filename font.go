package gui

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FontProvider is the interface for font management in the GUI system.
// Applications that juggle several fonts inject one with SetFontProvider;
// otherwise the context uses a single Font set with SetFont.
type FontProvider interface {
	// ActiveFont returns the currently active font for rendering.
	// Returns nil if no font is loaded or active.
	ActiveFont() Font

	// SetActiveFont sets the active font by name.
	// Returns an error if the font is not found.
	SetActiveFont(name string) error
}

// Font is the interface for a single font that can measure and render text.
// Text editing only needs Advance and LineHeight; the draw list also asks for
// glyph quads into the font's atlas texture.
type Font interface {
	// Advance returns the horizontal advance of r in pixels.
	Advance(r rune) float32

	// LineHeight returns the height of one line of text.
	LineHeight() float32

	// Glyph returns the quad for r placed with its cell's top-left at x, y.
	// ok is false for runes without a glyph (spaces, unsupported runes).
	Glyph(r rune, x, y float32) (q FontGlyphQuad, ok bool)

	// TextureID returns the GPU texture holding the atlas (0 if none).
	TextureID() uint32
}

// FontGlyphQuad represents a single character's rendering quad from a font.
type FontGlyphQuad struct {
	// Screen coordinates (top-left and bottom-right)
	X0, Y0 float32
	X1, Y1 float32

	// Texture coordinates (top-left and bottom-right)
	U0, V0 float32
	U1, V1 float32
}

// MonoFont is a fixed-width font without glyphs. It is what tests and
// headless tools use to get predictable metrics.
type MonoFont struct {
	CharWidth  float32
	CharHeight float32
}

func (f MonoFont) Advance(r rune) float32 { return f.CharWidth }
func (f MonoFont) LineHeight() float32    { return f.CharHeight }
func (f MonoFont) TextureID() uint32      { return 0 }

func (f MonoFont) Glyph(r rune, x, y float32) (FontGlyphQuad, bool) {
	return FontGlyphQuad{}, false
}

// atlasRanges lists the runes rasterized into a FaceFont atlas.
var atlasRanges = [][2]rune{
	{32, 126},  // Printable ASCII
	{160, 255}, // Latin-1
}

const atlasColumns = 16

// FaceFont renders any golang.org/x/image font.Face through a single-channel
// glyph atlas. Advances are cached in an LRU since truetype faces compute them
// from the glyph outline.
type FaceFont struct {
	face       font.Face
	lineHeight float32
	cellW      int
	cellH      int

	atlas  *image.Alpha
	glyphs map[rune]image.Rectangle

	advances *lru.Cache

	mu        sync.Mutex
	textureID uint32
}

// faceAdvanceCacheSize bounds the runes whose advance a FaceFont remembers.
const faceAdvanceCacheSize = 1024

// NewFaceFont rasterizes face into an atlas and wraps it as a Font.
func NewFaceFont(face font.Face) *FaceFont {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	cellH := ascent + m.Descent.Ceil()
	lineH := m.Height.Ceil()
	if lineH < cellH {
		lineH = cellH
	}

	cellW := 0
	count := 0
	for _, rg := range atlasRanges {
		for r := rg[0]; r <= rg[1]; r++ {
			if adv, ok := face.GlyphAdvance(r); ok && adv.Ceil() > cellW {
				cellW = adv.Ceil()
			}
			count++
		}
	}
	if cellW == 0 {
		cellW = 1
	}
	rows := (count + atlasColumns - 1) / atlasColumns

	f := &FaceFont{
		face:       face,
		lineHeight: float32(lineH),
		cellW:      cellW,
		cellH:      cellH,
		atlas:      image.NewAlpha(image.Rect(0, 0, atlasColumns*cellW, rows*cellH)),
		glyphs:     make(map[rune]image.Rectangle, count),
	}
	advances, err := lru.New(faceAdvanceCacheSize)
	assertf(err == nil, "NewFaceFont: advance cache: %v", err)
	f.advances = advances

	d := font.Drawer{Dst: f.atlas, Src: image.Opaque, Face: face}
	i := 0
	for _, rg := range atlasRanges {
		for r := rg[0]; r <= rg[1]; r++ {
			col, row := i%atlasColumns, i/atlasColumns
			cell := image.Rect(col*cellW, row*cellH, (col+1)*cellW, (row+1)*cellH)
			d.Dot = fixed.P(cell.Min.X, cell.Min.Y+ascent)
			d.DrawString(string(r))
			f.glyphs[r] = cell
			i++
		}
	}
	return f
}

var (
	defaultFontOnce sync.Once
	defaultFont     *FaceFont
)

// DefaultFont returns the built-in 7x13 bitmap font.
func DefaultFont() *FaceFont {
	defaultFontOnce.Do(func() {
		defaultFont = NewFaceFont(basicfont.Face7x13)
	})
	return defaultFont
}

// LoadTrueTypeFont parses a TTF file and builds a FaceFont at the given pixel
// size.
func LoadTrueTypeFont(path string, size float64) (*FaceFont, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	return ParseTrueTypeFont(data, size)
}

// ParseTrueTypeFont builds a FaceFont from TTF data.
func ParseTrueTypeFont(data []byte, size float64) (*FaceFont, error) {
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse truetype font: %w", err)
	}
	face := truetype.NewFace(tt, &truetype.Options{Size: size, Hinting: font.HintingFull, DPI: 72})
	return NewFaceFont(face), nil
}

// Advance implements Font.
func (f *FaceFont) Advance(r rune) float32 {
	if v, ok := f.advances.Get(r); ok {
		return v.(float32)
	}
	adv, ok := f.face.GlyphAdvance(r)
	if !ok {
		adv, _ = f.face.GlyphAdvance('?')
	}
	w := float32(adv) / 64
	f.advances.Add(r, w)
	return w
}

// LineHeight implements Font.
func (f *FaceFont) LineHeight() float32 { return f.lineHeight }

// Glyph implements Font.
func (f *FaceFont) Glyph(r rune, x, y float32) (FontGlyphQuad, bool) {
	cell, ok := f.glyphs[r]
	if !ok || r == ' ' {
		return FontGlyphQuad{}, false
	}
	b := f.atlas.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	return FontGlyphQuad{
		X0: x, Y0: y,
		X1: x + float32(f.cellW), Y1: y + float32(f.cellH),
		U0: float32(cell.Min.X) / w, V0: float32(cell.Min.Y) / h,
		U1: float32(cell.Max.X) / w, V1: float32(cell.Max.Y) / h,
	}, true
}

// Atlas returns the single-channel glyph atlas for upload by a renderer.
func (f *FaceFont) Atlas() *image.Alpha { return f.atlas }

// SetTextureID records the GPU texture the renderer uploaded the atlas to.
func (f *FaceFont) SetTextureID(id uint32) {
	f.mu.Lock()
	f.textureID = id
	f.mu.Unlock()
}

// TextureID implements Font.
func (f *FaceFont) TextureID() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.textureID
}

// FontAtlas is implemented by fonts that carry an uploadable atlas.
type FontAtlas interface {
	Atlas() *image.Alpha
	SetTextureID(id uint32)
}
