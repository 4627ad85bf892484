package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/ledgewalk/internal/entity"
	"chosenoffset.com/ledgewalk/internal/render"
	"chosenoffset.com/ledgewalk/internal/sensor"
	"chosenoffset.com/ledgewalk/internal/world/tilemap"
)

var (
	backgroundColor  = color.RGBA{24, 26, 38, 255}
	environmentColor = color.RGBA{44, 52, 70, 255}
	platformColor    = color.RGBA{92, 104, 122, 255}
	colliderColor    = color.RGBA{210, 80, 80, 90}
	endZoneColor     = color.RGBA{90, 220, 120, 255}
)

var kindColors = map[entity.Kind]color.RGBA{
	entity.KindPlayer:      {255, 230, 100, 255},
	entity.KindPatrolEnemy: {255, 100, 100, 255},
	entity.KindBirdman:     {160, 120, 255, 255},
}

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(backgroundColor)

	g.drawLayer(screen, g.Level.Layers.Environment, environmentColor, false)
	g.drawLayer(screen, g.Level.Layers.Platforms, platformColor, false)
	g.drawLayer(screen, g.Level.Layers.PlatformsColliders, colliderColor, true)
	g.drawEndZone(screen)
	g.drawEntities(screen)
	g.drawOverlay(screen)

	g.drawUI(screen)
}

// drawLayer fills every non-empty tile in view. With collidingOnly set, only
// tiles flagged as colliding are drawn.
func (g *Game) drawLayer(screen render.Image, layer *tilemap.Layer, clr color.Color, collidingOnly bool) {
	if layer == nil {
		return
	}

	view := g.Level.Bounds
	view.X, view.Y = g.Camera.X, g.Camera.Y
	view.W, view.H = float64(g.ScreenWidth), float64(g.ScreenHeight)

	opts := tilemap.QueryOptions{IsNotEmpty: true, IsColliding: collidingOnly}
	for _, t := range layer.TilesWithinRect(view, opts) {
		r := layer.TileRect(t.X, t.Y)
		g.Renderer.FillRect(screen,
			float32(r.X-g.Camera.X), float32(r.Y-g.Camera.Y),
			float32(r.W), float32(r.H), clr)
	}
}

func (g *Game) drawEndZone(screen render.Image) {
	if !g.Level.Zones.HasEnd {
		return
	}
	end := g.Level.Zones.End
	g.Renderer.FillCircle(screen, float32(end.X-g.Camera.X), float32(end.Y-g.Camera.Y), 6, endZoneColor)
}

func (g *Game) drawEntities(screen render.Image) {
	for _, e := range g.Level.Entities() {
		b := e.Body
		clr, ok := kindColors[e.Kind]
		if !ok {
			clr = color.RGBA{255, 255, 255, 255}
		}
		frame := e.SpriteFrame()
		outline := clr
		outline.A /= 2
		g.Renderer.StrokeRect(screen,
			float32(frame.X-g.Camera.X), float32(frame.Y-g.Camera.Y),
			float32(frame.W), float32(frame.H), 1, outline)

		x, y := float32(b.X-g.Camera.X), float32(b.Y-g.Camera.Y)
		g.Renderer.FillRect(screen, x, y, float32(b.Width), float32(b.Height), clr)

		if e.Sensor != nil {
			g.drawProbe(screen, e)
		}
	}
}

// drawProbe draws the entity's ledge ray, solid when it hits terrain.
func (g *Game) drawProbe(screen render.Image, e *entity.Entity) {
	ray := sensor.ProbeSegment(e.Body, e.Sensor.Options().RayLength)
	if res, ok := e.Sensor.Last(); ok {
		ray = res.Ray
	}

	clr := g.Palette.Ray
	if !e.Sense.HasHit {
		clr.A /= 3
	}
	g.Renderer.StrokeLine(screen,
		float32(ray.A.X-g.Camera.X), float32(ray.A.Y-g.Camera.Y),
		float32(ray.B.X-g.Camera.X), float32(ray.B.Y-g.Camera.Y),
		2, clr)
}

func (g *Game) drawOverlay(screen render.Image) {
	layer := g.Level.Layers.PlatformsColliders
	for _, t := range g.Overlay.Highlighted() {
		r := layer.TileRect(t.X, t.Y)
		g.Renderer.StrokeRect(screen,
			float32(r.X-g.Camera.X), float32(r.Y-g.Camera.Y),
			float32(r.W), float32(r.H), g.Palette.StrokeWidth, g.Palette.Highlight)
	}

	if seg, ok := g.Overlay.Stroke(); ok {
		g.Renderer.StrokeLine(screen,
			float32(seg.A.X-g.Camera.X), float32(seg.A.Y-g.Camera.Y),
			float32(seg.B.X-g.Camera.X), float32(seg.B.Y-g.Camera.Y),
			g.Palette.StrokeWidth, g.Palette.Stroke)
	}
}

func (g *Game) drawUI(screen render.Image) {
	status := "edit off"
	if g.Editing {
		status = "edit on"
	}
	player := g.Level.Player
	hud := fmt.Sprintf("tick %d  %s  strokes %d", g.Level.Ticks(), status, g.Editor.Strokes())
	if player != nil {
		hud += fmt.Sprintf("  %s  ledge %t", player.Animation, player.Sense.HasHit)
	}
	g.Renderer.DrawText(screen, hud, 8, 8)

	// Messages fade via a backing panel; the debug font itself is opaque
	y := 30
	for _, msg := range g.Messages {
		alpha := uint8(160 * (msg.TimeLeft / msg.MaxTime))
		w, h := g.Renderer.MeasureText(msg.Text)
		g.Renderer.FillRect(screen, 4, float32(y-2), float32(w+8), float32(h), color.RGBA{0, 0, 0, alpha})
		g.Renderer.DrawText(screen, msg.Text, 8, y)
		y += h + 4
	}
}
