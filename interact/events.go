package interact

import "github.com/solarlune/signboard"

// ContentActivated is emitted when the interactive node of the current content is clicked.
type ContentActivated struct {
	Node   signboard.INode // The interactive node that was clicked
	Handle ContentHandle   // The content the node belongs to
}

// Cursor is the pointer affordance the presentation layer should show.
type Cursor int

const (
	CursorDefault Cursor = iota // The regular arrow cursor
	CursorPointer               // A "clickable" cursor, shown while hovering the interactive node
)

func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

type eventType int

const (
	eventActivate eventType = iota
	eventLoaded
	eventCursor
	eventResize
)

// --- Handler registry ---

type activateHandler struct {
	id uint32
	fn func(ContentActivated)
}

type loadedHandler struct {
	id uint32
	fn func(ContentHandle, error)
}

type cursorHandler struct {
	id uint32
	fn func(Cursor)
}

type resizeHandler struct {
	id uint32
	fn func(width, height int)
}

type handlerRegistry struct {
	activate []activateHandler
	loaded   []loadedHandler
	cursor   []cursorHandler
	resize   []resizeHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event eventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case eventActivate:
		h.reg.activate = removeHandler(h.reg.activate, h.id, func(a activateHandler) uint32 { return a.id })
	case eventLoaded:
		h.reg.loaded = removeHandler(h.reg.loaded, h.id, func(l loadedHandler) uint32 { return l.id })
	case eventCursor:
		h.reg.cursor = removeHandler(h.reg.cursor, h.id, func(c cursorHandler) uint32 { return c.id })
	case eventResize:
		h.reg.resize = removeHandler(h.reg.resize, h.id, func(r resizeHandler) uint32 { return r.id })
	}
}

func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	for i := range s {
		if idOf(s[i]) == id {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) addActivate(fn func(ContentActivated)) CallbackHandle {
	r.nextID++
	r.activate = append(r.activate, activateHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: eventActivate}
}

func (r *handlerRegistry) addLoaded(fn func(ContentHandle, error)) CallbackHandle {
	r.nextID++
	r.loaded = append(r.loaded, loadedHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: eventLoaded}
}

func (r *handlerRegistry) addCursor(fn func(Cursor)) CallbackHandle {
	r.nextID++
	r.cursor = append(r.cursor, cursorHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: eventCursor}
}

func (r *handlerRegistry) addResize(fn func(width, height int)) CallbackHandle {
	r.nextID++
	r.resize = append(r.resize, resizeHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: eventResize}
}

// Handlers are copied before dispatch so that a callback can remove itself.

func (r *handlerRegistry) emitActivate(ev ContentActivated) {
	for _, h := range append([]activateHandler(nil), r.activate...) {
		h.fn(ev)
	}
}

func (r *handlerRegistry) emitLoaded(handle ContentHandle, err error) {
	for _, h := range append([]loadedHandler(nil), r.loaded...) {
		h.fn(handle, err)
	}
}

func (r *handlerRegistry) emitCursor(c Cursor) {
	for _, h := range append([]cursorHandler(nil), r.cursor...) {
		h.fn(c)
	}
}

func (r *handlerRegistry) emitResize(width, height int) {
	for _, h := range append([]resizeHandler(nil), r.resize...) {
		h.fn(width, height)
	}
}
