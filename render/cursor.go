package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/solarlune/signboard/interact"
)

// CursorShape maps a Cursor to ebiten's cursor shape.
func CursorShape(cursor interact.Cursor) ebiten.CursorShapeType {
	if cursor == interact.CursorPointer {
		return ebiten.CursorShapePointer
	}
	return ebiten.CursorShapeDefault
}

// FollowCursor keeps the window's cursor shape in sync with the Controller's affordance.
func FollowCursor(controller *interact.Controller) interact.CallbackHandle {
	ebiten.SetCursorShape(CursorShape(controller.Cursor()))
	return controller.OnCursorChange(func(c interact.Cursor) {
		ebiten.SetCursorShape(CursorShape(c))
	})
}
