package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/solarlune/signboard/interact"
)

// outlineShaderSrc draws two-tone edges around a silhouette. imageSrc0 is the rendered scene, imageSrc1 the silhouette of the
// selected nodes, and imageSrc2 the visibility mask (white where a selected node is the front-most surface).
// Pixels just outside the silhouette are edges; they take VisibleColor if the silhouette pixel they border is visible, and
// HiddenColor if it's occluded by other geometry.
const outlineShaderSrc = `//kage:unit pixels
package main

var Thickness float
var Strength float
var Glow float
var VisibleColor vec4
var HiddenColor vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	base := imageSrc0At(src)
	if imageSrc1At(src).a > 0.5 {
		return base
	}

	visible := 0.0
	hidden := 0.0

	// Thickness is capped at 3 pixels; Kage loops need constant bounds.
	for y := -3; y <= 3; y++ {
		for x := -3; x <= 3; x++ {
			off := vec2(float(x), float(y))
			if length(off) <= Thickness {
				p := src + off
				if imageSrc1At(p).a > 0.5 {
					if imageSrc2At(p).r > 0.5 {
						visible = 1.0
					} else {
						hidden = 1.0
					}
				}
			}
		}
	}

	if visible == 0.0 && hidden == 0.0 {
		return base
	}

	edge := HiddenColor
	if visible > 0.0 {
		edge = VisibleColor
	}

	amount := clamp(Strength*0.1+Glow, 0.0, 1.0)
	return mix(base, edge, amount)
}
`

// OutlinePass composites the highlight outline over a rendered scene.
type OutlinePass struct {
	shader   *ebiten.Shader
	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
}

// NewOutlinePass compiles the outline shader.
func NewOutlinePass() (*OutlinePass, error) {
	s, err := ebiten.NewShader([]byte(outlineShaderSrc))
	if err != nil {
		return nil, fmt.Errorf("compile outline shader: %w", err)
	}
	return &OutlinePass{
		shader:   s,
		uniforms: make(map[string]any, 5),
	}, nil
}

// Apply draws scene into dst with the outline described by the highlight. scene, silhouette, visibility, and dst must all be the same size.
func (o *OutlinePass) Apply(dst, scene, silhouette, visibility *ebiten.Image, highlight *interact.Highlight) {

	vis, hid := highlight.VisibleEdgeColor, highlight.HiddenEdgeColor

	o.uniforms["Thickness"] = highlight.EdgeThickness
	o.uniforms["Strength"] = highlight.EdgeStrength
	o.uniforms["Glow"] = highlight.EdgeGlow
	o.uniforms["VisibleColor"] = []float32{vis.R * vis.A, vis.G * vis.A, vis.B * vis.A, vis.A}
	o.uniforms["HiddenColor"] = []float32{hid.R * hid.A, hid.G * hid.A, hid.B * hid.A, hid.A}

	o.shaderOp.Images[0] = scene
	o.shaderOp.Images[1] = silhouette
	o.shaderOp.Images[2] = visibility
	o.shaderOp.Uniforms = o.uniforms

	bounds := scene.Bounds()
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), o.shader, &o.shaderOp)

}
