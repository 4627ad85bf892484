// Package ebiten is the Ebitengine backend for the render interfaces.
package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/ledgewalk/internal/render"
)

// Debug font cell size
const (
	charWidth  = 6
	charHeight = 16
)

// EbitenRenderer implements the Renderer interface using Ebiten.
type EbitenRenderer struct{}

// NewRenderer creates a new Ebiten-based renderer.
func NewRenderer() render.Renderer {
	return &EbitenRenderer{}
}

// FillRect draws a filled rectangle.
func (r *EbitenRenderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	vector.DrawFilledRect(unwrap(dst), x, y, width, height, clr, false)
}

// StrokeRect draws a rectangle outline.
func (r *EbitenRenderer) StrokeRect(dst render.Image, x, y, width, height, strokeWidth float32, clr color.Color) {
	vector.StrokeRect(unwrap(dst), x, y, width, height, strokeWidth, clr, false)
}

// StrokeLine draws a line segment.
func (r *EbitenRenderer) StrokeLine(dst render.Image, x0, y0, x1, y1, strokeWidth float32, clr color.Color) {
	vector.StrokeLine(unwrap(dst), x0, y0, x1, y1, strokeWidth, clr, true)
}

// FillCircle draws a filled circle.
func (r *EbitenRenderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	vector.DrawFilledCircle(unwrap(dst), x, y, radius, clr, true)
}

// DrawText draws text with the debug font. The debug font is always white.
func (r *EbitenRenderer) DrawText(dst render.Image, str string, x, y int) {
	ebitenutil.DebugPrintAt(unwrap(dst), str, x, y)
}

// MeasureText approximates the size of text in the debug font.
func (r *EbitenRenderer) MeasureText(str string) (width, height int) {
	return len(str) * charWidth, charHeight
}

func unwrap(img render.Image) *ebiten.Image {
	return img.(*EbitenImage).img
}

// EbitenImage wraps an ebiten.Image to implement the render.Image interface.
type EbitenImage struct {
	img *ebiten.Image
}

// Bounds returns the bounds of the image.
func (i *EbitenImage) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Size returns the width and height of the image.
func (i *EbitenImage) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// Fill fills the entire image with the given color.
func (i *EbitenImage) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// IsKeyPressed returns whether the key is held.
func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	return ok && ebiten.IsKeyPressed(k)
}

// IsKeyJustPressed returns whether the key went down this tick.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	return ok && inpututil.IsKeyJustPressed(k)
}

// GetCursorPosition returns the cursor position in screen space.
func (m *EbitenInputManager) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

// IsMouseButtonPressed returns whether the button is held.
func (m *EbitenInputManager) IsMouseButtonPressed(button render.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(mouseButtonToEbiten(button))
}

// IsMouseButtonJustPressed returns whether the button went down this tick.
func (m *EbitenInputManager) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(mouseButtonToEbiten(button))
}

// IsMouseButtonJustReleased returns whether the button went up this tick.
func (m *EbitenInputManager) IsMouseButtonJustReleased(button render.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(mouseButtonToEbiten(button))
}

var keyMap = map[render.Key]ebiten.Key{
	render.KeyA:      ebiten.KeyA,
	render.KeyD:      ebiten.KeyD,
	render.KeyW:      ebiten.KeyW,
	render.KeyE:      ebiten.KeyE,
	render.KeyR:      ebiten.KeyR,
	render.KeyUp:     ebiten.KeyArrowUp,
	render.KeyLeft:   ebiten.KeyArrowLeft,
	render.KeyRight:  ebiten.KeyArrowRight,
	render.KeySpace:  ebiten.KeySpace,
	render.KeyEscape: ebiten.KeyEscape,
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) (ebiten.Key, bool) {
	k, ok := keyMap[key]
	return k, ok
}

// mouseButtonToEbiten converts a render.MouseButton to an ebiten.MouseButton.
func mouseButtonToEbiten(button render.MouseButton) ebiten.MouseButton {
	if button == render.MouseButtonRight {
		return ebiten.MouseButtonRight
	}
	return ebiten.MouseButtonLeft
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct{}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() render.Engine {
	return &EbitenEngine{}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// SetTPS sets the number of Update calls per second.
func (e *EbitenEngine) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

// RunGame runs the game loop with the provided game.
func (e *EbitenEngine) RunGame(game render.Game) error {
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to the ebiten.Game interface.
type gameAdapter struct {
	game render.Game
}

func (a *gameAdapter) Update() error {
	return a.game.Update()
}

func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&EbitenImage{img: screen})
}

func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
