// Package render draws a signboard scene with ebiten: the painter-sorted triangles of the scene, and the highlight outline on top.
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/solarlune/signboard"
	"github.com/solarlune/signboard/interact"
)

// maxBatchVertices keeps each DrawTriangles call within ebiten's uint16 index range.
const maxBatchVertices = 65535 - 3

var whiteImg *ebiten.Image

func init() {
	whiteImg = ebiten.NewImage(3, 3)
	whiteImg.Fill(color.White)
}

type drawMode int

const (
	drawShaded     drawMode = iota // Triangles in their lit colors
	drawSilhouette                 // Selected triangles in white, nothing else
	drawVisibility                 // Selected triangles in white, everything else in black
)

// Renderer draws the Controller's scene. Present takes a snapshot of the scene for the frame (called from Update, as the
// interact.Loop's Presenter), and Draw renders the latest snapshot.
type Renderer struct {
	controller *interact.Controller
	outline    *OutlinePass

	triangles []signboard.DrawTriangle
	selected  []bool
	clear     signboard.Color

	sceneImg      *ebiten.Image
	silhouetteImg *ebiten.Image
	visibilityImg *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16

	resize interact.CallbackHandle
}

// NewRenderer creates a Renderer for the Controller's scene and camera. Render targets follow the Controller's Viewport size.
func NewRenderer(controller *interact.Controller) (*Renderer, error) {

	outline, err := NewOutlinePass()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		controller: controller,
		outline:    outline,
	}

	w, h := controller.Viewport().Size()
	r.allocate(w, h)
	r.resize = controller.Viewport().OnResize(r.allocate)

	return r, nil

}

// Dispose releases the render targets and stops following the viewport size.
func (r *Renderer) Dispose() {
	r.resize.Remove()
	r.deallocate()
}

func (r *Renderer) deallocate() {
	for _, img := range []*ebiten.Image{r.sceneImg, r.silhouetteImg, r.visibilityImg} {
		if img != nil {
			img.Deallocate()
		}
	}
	r.sceneImg, r.silhouetteImg, r.visibilityImg = nil, nil, nil
}

func (r *Renderer) allocate(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	r.deallocate()
	r.sceneImg = ebiten.NewImage(w, h)
	r.silhouetteImg = ebiten.NewImage(w, h)
	r.visibilityImg = ebiten.NewImage(w, h)
}

// Present transforms the scene into a sorted draw list and records which triangles belong to the highlight selection.
func (r *Renderer) Present() {

	scene := r.controller.Scene()
	highlight := r.controller.Highlight()

	r.triangles = r.controller.Camera().DrawList(scene)

	r.selected = r.selected[:0]
	for _, tri := range r.triangles {
		r.selected = append(r.selected, !highlight.IsEmpty() && highlight.Selected(tri.Model))
	}

	r.clear = signboard.NewColor(0, 0, 0, 1)
	if scene.World != nil {
		r.clear = scene.World.ClearColor
	}

}

// Draw renders the last presented frame to the screen.
func (r *Renderer) Draw(screen *ebiten.Image) {

	if r.sceneImg == nil {
		return
	}

	highlight := r.controller.Highlight()

	r.sceneImg.Fill(r.clear.ToNRGBA64())
	r.drawTriangles(r.sceneImg, drawShaded)

	if highlight.IsEmpty() {
		screen.DrawImage(r.sceneImg, nil)
		return
	}

	r.silhouetteImg.Clear()
	r.drawTriangles(r.silhouetteImg, drawSilhouette)

	r.visibilityImg.Fill(color.Black)
	r.drawTriangles(r.visibilityImg, drawVisibility)

	r.outline.Apply(screen, r.sceneImg, r.silhouetteImg, r.visibilityImg, highlight)

}

// drawTriangles draws the presented triangles back-to-front in batches.
func (r *Renderer) drawTriangles(dst *ebiten.Image, mode drawMode) {

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]

	opts := &ebiten.DrawTrianglesOptions{AntiAlias: mode == drawShaded}

	flush := func() {
		if len(r.indices) > 0 {
			dst.DrawTriangles(r.vertices, r.indices, whiteImg.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image), opts)
		}
		r.vertices = r.vertices[:0]
		r.indices = r.indices[:0]
	}

	for i, tri := range r.triangles {

		var c signboard.Color

		switch mode {
		case drawShaded:
			c = tri.Color
		case drawSilhouette:
			if !r.selected[i] {
				continue
			}
			c = signboard.NewColor(1, 1, 1, 1)
		case drawVisibility:
			if r.selected[i] {
				c = signboard.NewColor(1, 1, 1, 1)
			} else {
				c = signboard.NewColor(0, 0, 0, 1)
			}
		}

		if len(r.vertices)+3 > maxBatchVertices {
			flush()
		}

		start := uint16(len(r.vertices))

		for _, p := range tri.Screen {
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   p.X,
				DstY:   p.Y,
				SrcX:   1,
				SrcY:   1,
				ColorR: c.R * c.A,
				ColorG: c.G * c.A,
				ColorB: c.B * c.A,
				ColorA: c.A,
			})
		}

		r.indices = append(r.indices, start, start+1, start+2)

	}

	flush()

}
