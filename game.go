package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shadowmaze/common"
	"github.com/milk9111/shadowmaze/ecs"
	"github.com/milk9111/shadowmaze/ecs/component"
	"github.com/milk9111/shadowmaze/logging"
	"github.com/milk9111/shadowmaze/nav"
	"github.com/milk9111/shadowmaze/prefabs"
	"github.com/milk9111/shadowmaze/sim"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

const targetSpeed = 120.0

var (
	colorOpen    = colornames.Darkolivegreen
	colorBlocked = colornames.Darkslategray
	colorLit     = color.RGBA{R: 255, G: 240, B: 150, A: 110}
	colorPickup  = colornames.Gold
	colorTarget  = colornames.Deepskyblue
	colorPath    = color.RGBA{R: 255, G: 255, B: 255, A: 90}
	stateColors  = map[component.BehaviorState]color.Color{
		component.Roaming:  colornames.Lightgrey,
		component.Chasing:  colornames.Crimson,
		component.Tracking: colornames.Orange,
	}
)

type Game struct {
	sim    *sim.Sim
	debug  bool
	paused bool

	watcher *prefabs.Watcher
	log     *logrus.Entry
}

func NewGame(s *sim.Sim, debug, watch bool) *Game {
	g := &Game{sim: s, debug: debug, log: logging.For("viewer")}
	if watch {
		w, err := prefabs.WatchDisk()
		if err != nil {
			g.log.WithError(err).Warn("prefab watcher disabled")
		} else {
			g.watcher = w
		}
	}
	return g
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reloadTuning()
	}
	if g.paused {
		return nil
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	g.steerTarget(dt)
	g.sim.Tick(dt)
	return nil
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	select {
	case name, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		g.log.WithField("file", name).Info("prefab changed")
		g.reloadTuning()
	default:
	}
}

func (g *Game) reloadTuning() {
	if err := g.sim.ReloadTuning(); err != nil {
		g.log.WithError(err).Warn("reload failed")
	}
}

// steerTarget moves the first target from the keyboard. Moves that would put
// its centre on a blocked cell are refused.
func (g *Game) steerTarget(dt time.Duration) {
	w := g.sim.World
	target, ok := g.sim.Target()
	if !ok {
		return
	}
	tf, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if health, ok := ecs.Get(w, target, component.HealthComponent.Kind()); ok && !health.IsAlive() {
		return
	}

	var dir cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y++
	}

	if dir.LengthSq() > 0 {
		tf.Rotation = common.Rotation(dir)
		var body component.Body
		if b, ok := ecs.Get(w, target, component.BodyComponent.Kind()); ok {
			body = *b
		}
		next := tf.Position.Add(dir.Normalize().Mult(targetSpeed * dt.Seconds()))
		if cell := g.sim.Layout.Grid.CellAtVec(body.Center(next)); cell.Traversable {
			tf.Position = next
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if beam, ok := ecs.Get(w, target, component.BeamComponent.Kind()); ok {
			beam.Fire = true
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.sim.World
	grid := g.sim.Layout.Grid

	grid.ForEach(func(c *nav.Cell) {
		fill := colorOpen
		if !c.Traversable {
			fill = colorBlocked
		}
		drawRect(screen, c, fill)
		if c.Lit {
			drawRect(screen, c, colorLit)
		}
	})

	ecs.ForEach(w, component.BeamPickupComponent.Kind(), func(_ ecs.Entity, p *component.BeamPickup) {
		c := grid.Cell(p.Col, p.Row)
		center := c.Center()
		vector.FillRect(screen, float32(center.X-6), float32(center.Y-6), 12, 12, colorPickup, false)
	})

	ecs.ForEach3(w, component.PursuerComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, p *component.Pursuer, tf *component.Transform, body *component.Body) {
		if g.debug {
			drawPath(screen, p.Roam)
		}
		drawBody(screen, tf, body, stateColors[p.State])
	})

	ecs.ForEach2(w, component.TargetTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.TargetTag, tf *component.Transform) {
		var body component.Body
		if b, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
			body = *b
		}
		drawBody(screen, tf, &body, colorTarget)
		if health, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			drawHealth(screen, tf, &body, health)
		}
	})

	st := g.sim.Stats()
	hud := fmt.Sprintf("TPS: %.0f  frame: %d  health: %.0f  beams: %d  roaming/chasing/tracking: %d/%d/%d",
		ebiten.ActualTPS(), st.Frame, st.TargetHealth, st.BeamCharges,
		st.States[component.Roaming], st.States[component.Chasing], st.States[component.Tracking])
	if st.TargetsAlive == 0 {
		hud += "  caught!"
	}
	if g.paused {
		hud += "  [paused]"
	}
	ebitenutil.DebugPrint(screen, hud)
}

func drawRect(screen *ebiten.Image, c *nav.Cell, clr color.Color) {
	r := c.Rect
	vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}

func drawBody(screen *ebiten.Image, tf *component.Transform, body *component.Body, clr color.Color) {
	r := body.Rect(tf.Position)
	vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)

	center := body.Center(tf.Position)
	tip := center.Add(nav.Facing(tf.Rotation).Mult(float64(r.Dy()) / 2))
	vector.StrokeLine(screen, float32(center.X), float32(center.Y), float32(tip.X), float32(tip.Y), 2, colornames.Black, true)
}

func drawHealth(screen *ebiten.Image, tf *component.Transform, body *component.Body, h *component.Health) {
	r := body.Rect(tf.Position)
	width := float32(r.Dx())
	filled := common.Lerp(0, width, h.Current/h.Max)
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y-6), width, 4, 1, colornames.White, false)
	vector.FillRect(screen, float32(r.Min.X), float32(r.Min.Y-6), filled, 4, colornames.Limegreen, false)
}

func drawPath(screen *ebiten.Image, p nav.Path) {
	for i := 1; i < p.Len(); i++ {
		a, b := p.Cells[i-1].Center(), p.Cells[i].Center()
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, colorPath, true)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := g.sim.Layout.Grid.Bounds()
	return b.Dx(), b.Dy()
}
