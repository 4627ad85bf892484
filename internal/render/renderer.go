// Package render abstracts the graphics engine behind small interfaces so the
// game package never imports a backend directly.
package render

import (
	"image"
	"image/color"
)

// Renderer draws primitive shapes and text onto images.
type Renderer interface {
	// Vector operations
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height, strokeWidth float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1, strokeWidth float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int)
	MeasureText(text string) (width, height int)
}

// Image represents a surface the renderer draws onto.
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)
	Fill(clr color.Color)
}

// InputManager handles keyboard and pointer input.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
	IsMouseButtonPressed(button MouseButton) bool
	IsMouseButtonJustPressed(button MouseButton) bool
	IsMouseButtonJustReleased(button MouseButton) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game reads
const (
	KeyA Key = iota
	KeyD
	KeyW
	KeyE // Editor toggle
	KeyR // Restart level
	KeyUp
	KeyLeft
	KeyRight
	KeySpace
	KeyEscape
)

// MouseButton represents a mouse button.
type MouseButton int

// Mouse button constants
const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
)

// Game represents the game interface that the engine will call.
type Game interface {
	// Update updates the game logic. It is called every tick.
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine manages the game loop and window.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)
	SetTPS(tps int)

	// RunGame blocks until the game ends.
	RunGame(game Game) error
}
