package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrTerminated is returned from Game.Update to end the run loop normally.
var ErrTerminated = errors.New("render: terminated")

// Vec is a position in screen space.
type Vec struct {
	X, Y float32
}

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine so the viewer never touches the backend directly.
type Renderer interface {
	// Vector operations (for drawing shapes)
	FillPolygon(dst Image, points []Vec, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int)
}

// Image represents a renderable surface.
type Image interface {
	Bounds() image.Rectangle
	Fill(clr color.Color)
}

// InputManager handles input from the user (keyboard, mouse).
type InputManager interface {
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
	IsMouseButtonJustPressed(button MouseButton) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the viewer's commands
const (
	KeyF     Key = iota // Flip yaws
	KeyT                // Clear test points
	KeyR                // Clear focal rules
	KeyX                // Clear all
	KeyP                // Save PNG
	KeyS                // Save rules
	KeyL                // Load another rule file
	KeyC                // Save settings
	KeyEqual            // Grow test points
	KeyMinus            // Shrink test points
	KeyEscape
)

// MouseButton represents a mouse button.
type MouseButton int

const MouseButtonLeft MouseButton = 0

// VertexColor converts any color to straight (non-premultiplied) RGBA
// components in [0, 1], the form vertex colors take.
func VertexColor(clr color.Color) (r, g, b, a float32) {
	c := color.NRGBAModel.Convert(clr).(color.NRGBA)
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

// Game is driven by the engine's run loop.
type Game interface {
	// Update is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine manages the run loop and window.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)

	// RunGame blocks until the game ends. Returning ErrTerminated from
	// Update ends it without error.
	RunGame(game Game) error
}
