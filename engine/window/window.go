package window

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the native window the scene is presented in. It reports input through
// callbacks that fire from PollEvents, on the goroutine that created the window.
type Window interface {
	// SetResizeCallback registers the callback invoked when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: receives the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback registers the callback invoked on key press and repeat.
	// Escape is handled by the window itself and closes it.
	//
	// Parameters:
	//   - callback: receives the key code (see common key codes)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetCharCallback registers the callback invoked for each typed character.
	//
	// Parameters:
	//   - callback: receives the Unicode character
	SetCharCallback(callback func(r rune))

	// SetDragCallback registers the callback invoked while the left mouse button is
	// held and the cursor moves.
	//
	// Parameters:
	//   - callback: receives the cursor movement in pixels since the last event
	SetDragCallback(callback func(dx, dy float32))

	// SetScrollCallback registers the callback invoked on mouse wheel movement.
	//
	// Parameters:
	//   - callback: receives the vertical scroll amount
	SetScrollCallback(callback func(delta float32))

	// SetTitle changes the title bar text.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// SurfaceDescriptor returns the descriptor the renderer creates its surface from.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform surface descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// PollEvents processes pending window events without blocking, firing callbacks.
	//
	// Returns:
	//   - bool: false once the window has been asked to close
	PollEvents() bool

	// IsRunning reports whether the window is still open.
	IsRunning() bool

	// Close destroys the window.
	//
	// Returns:
	//   - error: error if the window was never created
	Close() error

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

type engineWindow struct {
	title string

	minWidth  int
	minHeight int
	maxWidth  int
	maxHeight int

	width  int
	height int

	internalWindow any

	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)
	onChar    func(r rune)
	onDrag    func(dx, dy float32)
	onScroll  func(delta float32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows the native window. Must be called from the main
// goroutine, which becomes locked to its OS thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the new window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:  "boxdrop",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetCharCallback(callback func(r rune)) {
	w.onChar = callback
}

func (w *engineWindow) SetDragCallback(callback func(dx, dy float32)) {
	w.onDrag = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetTitle(title string) {
	w.title = title
	platformSetTitle(w, title)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) PollEvents() bool {
	return platformProcessMessages(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
