package interact

import (
	"github.com/solarlune/signboard"
	"github.com/solarlune/signboard/colors"
)

// Highlight is the state of the outline effect: which nodes are outlined, and the fixed look of the outline.
// An empty selection draws no outline.
type Highlight struct {
	EdgeStrength     float32
	EdgeGlow         float32
	EdgeThickness    float32
	VisibleEdgeColor signboard.Color // Color of outline edges that aren't hidden behind other geometry
	HiddenEdgeColor  signboard.Color // Color of outline edges that are occluded

	selection     []signboard.INode
	width, height int
	revision      uint64
}

// NewHighlight creates a Highlight with the default outline look: strength 10, no glow, 1.5 pixels thick,
// white where visible and black where hidden.
func NewHighlight() *Highlight {
	return &Highlight{
		EdgeStrength:     10,
		EdgeGlow:         0,
		EdgeThickness:    1.5,
		VisibleEdgeColor: colors.White(),
		HiddenEdgeColor:  colors.Black(),
	}
}

// SetSelection replaces the outlined set of nodes. Nil nodes are skipped.
func (h *Highlight) SetSelection(nodes ...signboard.INode) {
	h.selection = h.selection[:0]
	for _, n := range nodes {
		if n != nil {
			h.selection = append(h.selection, n)
		}
	}
	h.revision++
}

// Clear empties the selection.
func (h *Highlight) Clear() {
	if len(h.selection) == 0 {
		return
	}
	h.SetSelection()
}

// Selection returns a copy of the outlined nodes.
func (h *Highlight) Selection() []signboard.INode {
	return append([]signboard.INode(nil), h.selection...)
}

// IsEmpty returns true if nothing is outlined.
func (h *Highlight) IsEmpty() bool {
	return len(h.selection) == 0
}

// Selected returns true if the node, or any of its parents, is in the selection.
func (h *Highlight) Selected(node signboard.INode) bool {
	for n := node; n != nil; n = n.Parent() {
		for _, s := range h.selection {
			if s == n {
				return true
			}
		}
	}
	return false
}

// Revision increases every time the selection is set, so callers can tell whether it changed since they last looked.
func (h *Highlight) Revision() uint64 {
	return h.revision
}

// Resize sets the working resolution the outline is computed at.
func (h *Highlight) Resize(width, height int) {
	h.width, h.height = width, height
}

// Size returns the working resolution of the outline.
func (h *Highlight) Size() (width, height int) {
	return h.width, h.height
}
