package signboard

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	TextAlignLeft   = iota // Left aligned text. Every line starts at the same X position.
	TextAlignCenter        // Center aligned text. All text lines are centered horizontally on the widest line.
	TextAlignRight         // Right aligned text. Every line ends at the same X position.
)

// TextMeshBuilder turns strings into solid 3D geometry. Glyphs are rasterized with a font face into a coverage mask, and every
// horizontal run of covered pixels is extruded into a box, so the resulting Mesh is made of blocky, pixel-accurate letters.
type TextMeshBuilder struct {
	Size                float32 // The height of one em of text, in world units
	Depth               float32 // How deep the extruded text is, in world units
	HorizontalAlignment int     // Alignment of lines of text relative to each other
	LineHeight          float32 // Multiplier for the distance between lines of text
	Threshold           uint8   // Minimum coverage (0-255) for a rasterized pixel to become geometry

	face       font.Face
	resolution int // Pixels per em used when rasterizing
}

// NewTextMeshBuilder creates a new TextMeshBuilder using the Go Regular font, rasterized at the given resolution (in pixels per em;
// higher values give smoother letters at the cost of more triangles).
func NewTextMeshBuilder(resolution int) (*TextMeshBuilder, error) {

	if resolution <= 0 {
		resolution = 32
	}

	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse text font: %w", err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(resolution),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create text font face: %w", err)
	}

	return &TextMeshBuilder{
		Size:                1,
		Depth:               0.1,
		HorizontalAlignment: TextAlignCenter,
		LineHeight:          1,
		Threshold:           128,
		face:                face,
		resolution:          resolution,
	}, nil

}

// SetFont sets the face used to rasterize text. resolution should be the face's size in pixels per em.
func (tb *TextMeshBuilder) SetFont(face font.Face, resolution int) {
	tb.face = face
	tb.resolution = resolution
}

// Build creates a Mesh of the given text. The text's baseline starts at the origin, with +Y up and the front faces pointing towards +Z;
// the back faces lie at Z = 0. Empty (or all whitespace) text produces a valid Mesh with no triangles.
func (tb *TextMeshBuilder) Build(text string) *Mesh {

	mesh := NewMesh("Text")

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	mask := tb.rasterize(lines)
	if mask == nil {
		return mesh
	}

	pixelSize := tb.Size / float32(tb.resolution)
	ascent := tb.face.Metrics().Ascent.Ceil()

	// Runs of covered pixels with the same horizontal extent in consecutive rows are merged into one taller box.
	type run struct{ x0, x1 int }
	open := map[run]int{}

	emit := func(r run, startRow, endRow int) {
		min := Vector3{float32(r.x0) * pixelSize, float32(ascent-endRow) * pixelSize, 0}
		max := Vector3{float32(r.x1) * pixelSize, float32(ascent-startRow) * pixelSize, tb.Depth}
		size := max.Sub(min)
		mesh.Append(NewBoxMesh(size.X, size.Y, size.Z), min.Add(size.Scale(0.5)))
	}

	bounds := mask.Bounds()

	for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {

		current := map[run]bool{}

		if y < bounds.Max.Y {
			start := -1
			for x := bounds.Min.X; x <= bounds.Max.X; x++ {
				covered := x < bounds.Max.X && mask.AlphaAt(x, y).A >= tb.Threshold
				if covered && start < 0 {
					start = x
				} else if !covered && start >= 0 {
					current[run{start, x}] = true
					start = -1
				}
			}
		}

		// Close the runs that didn't continue onto this row; sorted so the triangle order is stable between builds
		closed := []run{}
		for r := range open {
			if !current[r] {
				closed = append(closed, r)
			}
		}
		sort.Slice(closed, func(i, j int) bool { return closed[i].x0 < closed[j].x0 })
		for _, r := range closed {
			emit(r, open[r], y)
			delete(open, r)
		}

		for r := range current {
			if _, ok := open[r]; !ok {
				open[r] = y
			}
		}

	}

	return mesh

}

// rasterize draws the lines of text into a coverage mask, returning nil if nothing would be drawn.
func (tb *TextMeshBuilder) rasterize(lines []string) *image.Alpha {

	metrics := tb.face.Metrics()
	lineHeight := int(float32(metrics.Height.Ceil()) * tb.LineHeight)
	ascent := metrics.Ascent.Ceil()

	widths := make([]int, len(lines))
	maxWidth := 0
	for i, line := range lines {
		widths[i] = font.MeasureString(tb.face, line).Ceil()
		if widths[i] > maxWidth {
			maxWidth = widths[i]
		}
	}

	if maxWidth == 0 || strings.TrimSpace(strings.Join(lines, "")) == "" {
		return nil
	}

	height := lineHeight*(len(lines)-1) + ascent + metrics.Descent.Ceil()

	// Rows grow downwards in the mask; the first line's baseline sits at y = ascent.
	mask := image.NewAlpha(image.Rect(0, 0, maxWidth, height))

	drawer := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: tb.face,
	}

	for i, line := range lines {

		x := 0
		switch tb.HorizontalAlignment {
		case TextAlignCenter:
			x = (maxWidth - widths[i]) / 2
		case TextAlignRight:
			x = maxWidth - widths[i]
		}

		drawer.Dot = fixed.P(x, ascent+i*lineHeight)
		drawer.DrawString(line)

	}

	return mask

}
