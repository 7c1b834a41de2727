package interact

import (
	"log/slog"

	"github.com/solarlune/signboard"
)

// Viewport owns the drawable surface size. Configuring it updates the camera's aspect ratio and notifies
// anything sized after the surface (render targets, the highlight's working resolution).
type Viewport struct {
	camera        *signboard.Camera
	highlight     *Highlight
	logger        *slog.Logger
	width, height int
	handlers      handlerRegistry
}

// NewViewport creates a Viewport for the given camera. The highlight may be nil.
func NewViewport(camera *signboard.Camera, highlight *Highlight, logger *slog.Logger) *Viewport {
	if logger == nil {
		logger = slog.Default()
	}
	w, h := camera.Size()
	return &Viewport{
		camera:    camera,
		highlight: highlight,
		logger:    logger,
		width:     w,
		height:    h,
	}
}

// Configure sets the surface size. Zero or negative dimensions are ignored, leaving the camera's aspect ratio at its last valid value.
// Repeating the current size does nothing.
func (v *Viewport) Configure(width, height int) {

	if width <= 0 || height <= 0 {
		v.logger.Debug("ignoring degenerate viewport size", "width", width, "height", height)
		return
	}

	if width == v.width && height == v.height {
		return
	}

	v.width, v.height = width, height
	v.camera.Resize(width, height)

	if v.highlight != nil {
		v.highlight.Resize(width, height)
	}

	v.handlers.emitResize(width, height)

}

// Size returns the current surface size in pixels.
func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

// OnResize registers a callback run whenever Configure changes the size.
func (v *Viewport) OnResize(fn func(width, height int)) CallbackHandle {
	return v.handlers.addResize(fn)
}

// PixelsToNDC converts surface-local pixel coordinates into normalized device coordinates.
func (v *Viewport) PixelsToNDC(x, y float64) signboard.Vector2 {
	return signboard.Vector2{
		X: float32(x/float64(v.width)*2 - 1),
		Y: float32(-(y/float64(v.height)*2 - 1)),
	}
}
