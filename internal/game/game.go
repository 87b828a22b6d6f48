package game

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
)

// borderWidth is the pixel gap between the window edge and the panels.
const borderWidth = 16

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

// regenerateAttempts bounds how many seeds R tries before giving up.
const regenerateAttempts = 16

// eyeTurnRate is how fast Q/E turn the robot's view, in degrees per second.
const eyeTurnRate = 90.0

// Game is the survey viewer: the board from above on the left, the robot's
// view on the right.
type Game struct {
	width  int
	height int
	mapPx  int // pixels per square on the map
	panel  int // side length of each panel in pixels
	eyeX   int // left edge of the eye panel
	inspX  int // left edge of the inspector

	seed int64
	opts []LandscapeOption
	log  logrus.FieldLogger

	land    *Landscape
	occ     *Occupants
	scanner *Scanner
	viewer  *Viewer
	mapImg  *ebiten.Image
	hudBuf  *ebiten.Image
	inspBuf *ebiten.Image
	white   *ebiten.Image

	antagonists []Point
	selected    int
	rotating    bool
	seek        Seek
	cone        []FOVEntry
	targets     []Target

	showHUD       bool
	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
	inspector     Inspector
	status        string
}

// New generates the landscape for seed and sets up the viewer. Seeds that
// cannot produce a board are skipped in favour of the next one.
func New(seed int64, logger logrus.FieldLogger, opts ...LandscapeOption) (*Game, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	g := &Game{
		seed:     seed,
		opts:     opts,
		log:      logger,
		showHUD:  true,
		rotating: true,
		prevKeys: make(map[ebiten.Key]bool),
	}
	if err := g.regenerate(seed); err != nil {
		return nil, err
	}

	g.panel = 640
	g.mapPx = max(1, g.panel/max(g.land.Width(), g.land.Height()))
	g.eyeX = borderWidth + g.panel + borderWidth
	g.inspX = g.eyeX + g.panel + borderWidth
	g.width = g.inspX + inspBufW*inspScale + borderWidth
	g.height = max(borderWidth+g.panel+borderWidth, borderWidth+inspBufH*inspScale+borderWidth)
	g.viewer.Aspect = 1
	g.mapImg = ebiten.NewImageFromImage(HeightmapImage(g.land, g.mapPx))
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)

	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	g.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	return g, nil
}

// regenerate builds a landscape starting at seed, trying later seeds when
// generation fails.
func (g *Game) regenerate(seed int64) error {
	var lastErr error
	for i := int64(0); i < regenerateAttempts; i++ {
		opts := append([]LandscapeOption{}, g.opts...)
		cfg := NewLandscapeConfig(append(opts, WithSeed(seed+i), WithLogger(g.log))...)
		l, err := GenerateFromConfig(cfg)
		if errors.Is(err, ErrGenerationFailed) {
			g.log.WithField("seed", seed+i).Warn("seed skipped")
			lastErr = err
			continue
		}
		if err != nil {
			return err
		}
		g.install(l)
		return nil
	}
	return fmt.Errorf("no usable seed in %d..%d: %w", seed, seed+regenerateAttempts-1, lastErr)
}

func (g *Game) install(l *Landscape) {
	scanner, err := NewScanner(l, DefaultMeshes())
	if err != nil {
		panic(err)
	}
	g.seed = l.Seed()
	g.land = l
	g.occ = l.InitialOccupants()
	g.scanner = scanner
	g.antagonists = g.occ.Antagonists()
	g.selected = 0
	g.inspector = Inspector{cell: NoPoint}

	if g.viewer == nil {
		g.viewer = NewViewer(1)
	}
	start := l.PlayerStart()
	stack := g.occ.StackAt(start)
	g.viewer.TransferTo(start, float64(l.Altitude(start.X, start.Y)+stack.AltitudeAbove(len(stack)-1)), stack.Top())

	if g.mapPx > 0 {
		g.mapImg = ebiten.NewImageFromImage(HeightmapImage(l, g.mapPx))
	}
	g.status = fmt.Sprintf("seed %d: %d plateaus, peak %d", l.Seed(), l.Plateaus(), l.Peak())
	g.log.WithFields(logrus.Fields{
		"seed":        l.Seed(),
		"plateaus":    l.Plateaus(),
		"peak":        l.Peak(),
		"antagonists": len(g.antagonists),
	}).Info("landscape ready")
}

func (g *Game) selectedPos() (Point, *Figure) {
	if len(g.antagonists) == 0 {
		return NoPoint, nil
	}
	p := g.antagonists[g.selected%len(g.antagonists)]
	return p, g.occ.StackAt(p).Top()
}

func (g *Game) Update() error {
	g.handleInput()

	dt := 1.0 / float64(ebiten.TPS())
	pos, f := g.selectedPos()
	if f == nil {
		return nil
	}
	if g.rotating {
		f.Progress(dt, ActionForward)
	}
	g.refreshTargets(pos, f)
	return nil
}

// refreshTargets recomputes the selected antagonist's cone, targets and attacks.
func (g *Game) refreshTargets(pos Point, f *Figure) {
	stack := g.occ.StackAt(pos)
	eye := f.EyeInWorld(pos, float64(g.land.Altitude(pos.X, pos.Y)+stack.AltitudeAbove(len(stack)-1)))
	cone, err := PositionsInFOV(eye, f.Direction(), f.FOV, g.land.Width(), g.land.Height())
	if err != nil {
		g.status = err.Error()
		return
	}
	g.cone = cone
	targets, err := g.land.AgentTargetsFrom(g.occ, pos, g.seek)
	if err != nil {
		g.status = err.Error()
		return
	}
	g.targets = targets
	f.MountAttacks(targets)
}

// pressed reports a key going down this frame and records its state.
func (g *Game) pressed(current map[ebiten.Key]bool, k ebiten.Key) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !g.prevKeys[k]
}

// handleInput processes keypresses (edge-triggered) and clicks.
func (g *Game) handleInput() {
	current := map[ebiten.Key]bool{}
	dt := 1.0 / float64(ebiten.TPS())

	if g.pressed(current, ebiten.KeyTab) && len(g.antagonists) > 0 {
		g.selected = (g.selected + 1) % len(g.antagonists)
	}
	if g.pressed(current, ebiten.KeySpace) {
		g.rotating = !g.rotating
	}
	if g.pressed(current, ebiten.KeyT) {
		if g.seek == SeekLoneTrees {
			g.seek = SeekObstaclesAndFigures
		} else {
			g.seek = SeekLoneTrees
		}
	}
	if g.pressed(current, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.pressed(current, ebiten.KeyR) {
		if err := g.regenerate(g.seed + 1); err != nil {
			g.status = err.Error()
		}
	}
	if g.pressed(current, ebiten.KeyC) {
		text := g.land.String()
		if g.inspector.text != "" {
			text += "\n" + g.inspector.text
		}
		if err := clipboard.WriteAll(text); err != nil {
			g.status = "clipboard: " + err.Error()
		} else {
			g.status = "board copied to clipboard"
		}
	}

	if _, f := g.selectedPos(); f != nil {
		if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
			f.Progress(dt, ActionBackward)
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
			f.Progress(dt, ActionForward)
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		g.viewer.SetDirection(g.viewer.Phi()+eyeTurnRate*dt, g.viewer.Theta(), 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		g.viewer.SetDirection(g.viewer.Phi()-eyeTurnRate*dt, g.viewer.Theta(), 0)
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !g.prevMouseLeft {
		mx, my := ebiten.CursorPosition()
		g.handleInspectorClick(mx, my)
	}
	g.prevMouseLeft = left
	g.prevKeys = current
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(borderWidth, borderWidth)
	screen.DrawImage(g.mapImg, &op)
	g.drawCone(screen)
	g.drawTargets(screen)
	g.drawMapFigures(screen)

	g.drawEyeView(screen)

	borderCol := color.RGBA{R: 65, G: 90, B: 65, A: 255}
	side := float32(g.panel)
	vector.StrokeRect(screen, borderWidth-1, borderWidth-1, side+2, side+2, 2.0, borderCol, false)
	vector.StrokeRect(screen, float32(g.eyeX)-1, borderWidth-1, side+2, side+2, 2.0, borderCol, false)

	if g.showHUD {
		g.drawHUD(screen)
	} else {
		ebitenutil.DebugPrintAt(screen, g.status, borderWidth+4, borderWidth+g.panel-16)
	}
	g.drawInspector(screen)
}

// ndcToScreen maps normalized device coordinates into the eye panel.
func (g *Game) ndcToScreen(x, y float64) (float32, float32) {
	s := float64(g.panel)
	return float32(float64(g.eyeX) + (x+1)/2*s), float32(borderWidth + (1-y)/2*s)
}

// screenToNDC is the inverse of ndcToScreen.
func (g *Game) screenToNDC(px, py int) (float64, float64, bool) {
	s := float64(g.panel)
	x := (float64(px-g.eyeX))/s*2 - 1
	y := 1 - (float64(py-borderWidth))/s*2
	return x, y, x >= -1 && x <= 1 && y >= -1 && y <= 1
}

// drawEyeView paints the squares in the robot's view from far to near, each
// followed by the figures standing on it.
func (g *Game) drawEyeView(screen *ebiten.Image) {
	sub := screen.SubImage(image.Rect(g.eyeX, borderWidth, g.eyeX+g.panel, borderWidth+g.panel)).(*ebiten.Image)
	sub.Fill(color.RGBA{R: 30, G: 34, B: 48, A: 255})

	dir := g.viewer.Dir
	view, err := PositionsInFOV(g.viewer.Site, mgl64.Vec2{dir.X(), dir.Y()}, g.viewer.HorizontalFOV()+20, g.land.Width(), g.land.Height())
	if err != nil {
		return
	}
	camera := g.viewer.Camera()
	var verts []ebiten.Vertex
	var idx []uint16
	flush := func() {
		if len(idx) > 0 {
			sub.DrawTriangles(verts, idx, g.white, &ebiten.DrawTrianglesOptions{})
		}
		verts, idx = verts[:0], idx[:0]
	}
	tri := func(a, b, c mgl64.Vec4, clr color.RGBA) {
		if len(verts)+3 > 60000 {
			flush()
		}
		base := uint16(len(verts))
		for _, p := range [3]mgl64.Vec4{a, b, c} {
			x, y := g.ndcToScreen(p.X(), p.Y())
			verts = append(verts, ebiten.Vertex{
				DstX: x, DstY: y, SrcX: 1, SrcY: 1,
				ColorR: float32(clr.R) / 255, ColorG: float32(clr.G) / 255,
				ColorB: float32(clr.B) / 255, ColorA: 1,
			})
		}
		idx = append(idx, base, base+1, base+2)
	}

	for i := len(view) - 1; i >= 0; i-- {
		p := view[i].Cell
		sq := g.land.Square(p)
		var q [4]mgl64.Vec4
		visible := true
		for k, v := range sq.Vertices {
			var ok bool
			if q[k], ok = project(camera, mgl64.Vec3(v)); !ok {
				visible = false
			}
		}
		if visible {
			clr := SquareColor(sq, g.land.Peak())
			if g.inspector.cell == p {
				clr = color.RGBA{R: 255, G: 255, B: 120, A: 255}
			}
			tri(q[0], q[1], q[2], clr)
			tri(q[0], q[2], q[3], clr)
		}
		if p == g.land.PlayerStart() {
			continue
		}
		stack := g.occ.StackAt(p)
		ground := float64(g.land.Altitude(p.X, p.Y))
		for j, f := range stack {
			model := camera.
				Mul4(mgl64.Translate3D(float64(p.X), float64(p.Y), ground+float64(stack.AltitudeAbove(j)))).
				Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(f.Phi)))
			m := g.scanner.meshes[f.Kind]
			clr := FigureColor(f.Kind)
			for t := 0; t+2 < len(m.Elements); t += 3 {
				a, oka := project(model, m.Vertices[m.Elements[t]])
				b, okb := project(model, m.Vertices[m.Elements[t+1]])
				c, okc := project(model, m.Vertices[m.Elements[t+2]])
				if oka && okb && okc {
					tri(a, b, c, clr)
				}
			}
		}
	}
	flush()
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize is the unscaled window size the viewer lays itself out for.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}
