package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"track-definition/internal/common"
	"track-definition/internal/config"
	"track-definition/internal/pipeline"
	"track-definition/internal/raster"
	"track-definition/internal/store"
	"track-definition/internal/track"
)

// ============================================================================
// CONFIGURATION - Adjust these values to customize the viewer
// ============================================================================

// Render window dimensions
const (
	WindowWidth  = 1200
	WindowHeight = 800
)

const (
	ViewScaleMargin   = 0.95 // Margin for fitting track in window (0.95 = 5% padding)
	ChordStride       = 3    // Draw every n-th chord
	StraightCurvature = 1e-4 // |k| below this is drawn as straight
)

// Mask colors
var (
	ColorTarmac = color.RGBA{80, 80, 80, 255}
	ColorGravel = color.RGBA{20, 20, 20, 255}
)

// Visualization colors
var (
	ColorInner      = color.RGBA{255, 140, 0, 255}   // Orange
	ColorOuter      = color.RGBA{0, 200, 255, 255}   // Cyan
	ColorChord      = color.RGBA{50, 155, 50, 90}    // Faded Green
	ColorLeftTurn   = color.RGBA{255, 0, 255, 255}   // Magenta
	ColorRightTurn  = color.RGBA{255, 255, 0, 255}   // Yellow
	ColorStraight   = color.RGBA{255, 255, 255, 255} // White
	ColorCursorWP   = color.RGBA{255, 0, 0, 255}     // Red
	ColorHUDBacking = color.RGBA{0, 0, 0, 180}
)

// ============================================================================

type Game struct {
	Name      string
	Geometry  *track.Geometry
	Mesh      *track.TrackMesh
	MaskImage *ebiten.Image // nil for stored tracks
	// Metres per mask pixel, used to place MaskImage under the geometry.
	MetresPerPixel float64

	ShowMask       bool
	ShowContours   bool
	ShowChords     bool
	ShowCentreline bool

	// Rendering Scale: screen = world*ViewScale + offset, world in metres
	ViewScale   float32
	ViewOffsetX float32
	ViewOffsetY float32
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.ShowMask = !g.ShowMask
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.ShowContours = !g.ShowContours
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ShowChords = !g.ShowChords
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.ShowCentreline = !g.ShowCentreline
	}
	return nil
}

func (g *Game) toScreen(p common.Vec2) (float32, float32) {
	return float32(p.X)*g.ViewScale + g.ViewOffsetX, float32(p.Y)*g.ViewScale + g.ViewOffsetY
}

func (g *Game) toWorld(x, y int) common.Vec2 {
	return common.Vec2{
		X: float64((float32(x) - g.ViewOffsetX) / g.ViewScale),
		Y: float64((float32(y) - g.ViewOffsetY) / g.ViewScale),
	}
}

func (g *Game) strokeLoop(screen *ebiten.Image, pts []common.Vec2, width float32, c color.Color) {
	for i := range pts {
		p1x, p1y := g.toScreen(pts[i])
		p2x, p2y := g.toScreen(pts[(i+1)%len(pts)])
		vector.StrokeLine(screen, p1x, p1y, p2x, p2y, width, c, true)
	}
}

func curvatureColor(k float64) color.RGBA {
	switch {
	case math.Abs(k) < StraightCurvature:
		return ColorStraight
	case k > 0:
		return ColorLeftTurn
	default:
		return ColorRightTurn
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.ShowMask && g.MaskImage != nil {
		op := &ebiten.DrawImageOptions{}
		s := g.MetresPerPixel * float64(g.ViewScale)
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(float64(g.ViewOffsetX), float64(g.ViewOffsetY))
		screen.DrawImage(g.MaskImage, op)
	}

	geom := g.Geometry
	if g.ShowContours {
		g.strokeLoop(screen, geom.Outer, 1, ColorOuter)
		g.strokeLoop(screen, geom.Inner, 1, ColorInner)
	}

	if g.ShowChords {
		for i := 0; i < geom.Len(); i += ChordStride {
			p1x, p1y := g.toScreen(geom.Inner[i])
			p2x, p2y := g.toScreen(geom.Opposing[i])
			vector.StrokeLine(screen, p1x, p1y, p2x, p2y, 1, ColorChord, true)
		}
	}

	if g.ShowCentreline {
		n := geom.Len()
		for i := 0; i < n; i++ {
			p1x, p1y := g.toScreen(geom.Centreline[i])
			p2x, p2y := g.toScreen(geom.Centreline[(i+1)%n])
			vector.StrokeLine(screen, p1x, p1y, p2x, p2y, 2, curvatureColor(geom.Curvature[i]), true)
		}
	}

	msg := "TRACK VIEWER\n"
	msg += "----------------\n"
	msg += fmt.Sprintf("Track:  %s\n", g.Name)
	msg += fmt.Sprintf("Samples: %d\n", geom.Len())
	msg += fmt.Sprintf("Length: %.1f m\n", g.Mesh.TotalLen)

	// Cursor readout
	cx, cy := ebiten.CursorPosition()
	pos := g.toWorld(cx, cy)
	if wp, idx := g.Mesh.GetClosestWaypoint(pos); idx >= 0 {
		s, d := g.Mesh.WorldToFrenet(pos)
		msg += "----------------\n"
		msg += fmt.Sprintf("s:      %.1f m\n", s)
		msg += fmt.Sprintf("d:      %.2f m\n", d)
		msg += fmt.Sprintf("Width:  %.2f m\n", wp.Width)
		msg += fmt.Sprintf("Curv:   %.4f\n", wp.Curvature)
		if wp.Curvature != 0 {
			msg += fmt.Sprintf("Radius: %.1f m\n", 1/math.Abs(wp.Curvature))
		}

		wx, wy := g.toScreen(wp.Position)
		vector.FillCircle(screen, wx, wy, 4, ColorCursorWP, true)
	}

	msg += "\nControls:\nM = Mask  B = Boundaries\nC = Chords  L = Centreline"

	vector.FillRect(screen, 0, 0, 190, 250, ColorHUDBacking, true)
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return WindowWidth, WindowHeight
}

// RenderMask converts the segmentation mask into an ebiten image.
func RenderMask(m *raster.Mask) *ebiten.Image {
	img := ebiten.NewImage(m.Width, m.Height)

	pixels := make([]byte, m.Width*m.Height*4)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := ColorGravel
			if m.Get(x, y) == raster.SurfaceTrack {
				c = ColorTarmac
			}
			idx := (y*m.Width + x) * 4
			pixels[idx] = c.R
			pixels[idx+1] = c.G
			pixels[idx+2] = c.B
			pixels[idx+3] = 255
		}
	}

	img.WritePixels(pixels)
	return img
}

// fitView scales and centres the outer boundary in the window.
func fitView(outer track.Contour) (scale, offsetX, offsetY float32) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range outer {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return 1, 0, 0
	}

	winW, winH := float64(WindowWidth), float64(WindowHeight)
	s := math.Min(winW/w, winH/h) * ViewScaleMargin

	offsetX = float32((winW-w*s)/2 - minX*s)
	offsetY = float32((winH-h*s)/2 - minY*s)
	return float32(s), offsetX, offsetY
}

func main() {
	var maskPath string
	var configPath string
	var dbPath string
	var trackID string

	flag.StringVar(&maskPath, "mask", "assets/track.png", "define the track in this mask")
	flag.StringVar(&configPath, "config", "", "path to a JSON config file (defaults used when empty)")
	flag.StringVar(&dbPath, "db", "", "load a stored track from this sqlite db instead of a mask")
	flag.StringVar(&trackID, "track", "", "stored track ID (with -db; newest when empty)")
	flag.Parse()

	game := &Game{
		ShowMask:       true,
		ShowContours:   true,
		ShowChords:     true,
		ShowCentreline: true,
	}

	if dbPath != "" {
		st, err := loadStored(dbPath, trackID)
		if err != nil {
			log.Fatal(err)
		}
		game.Name = st.Name
		game.Geometry = st.Geometry
	} else {
		cfg := config.DefaultTrackConfig()
		if configPath != "" {
			var err error
			if cfg, err = config.LoadTrackConfig(configPath); err != nil {
				log.Fatal(err)
			}
		}
		res, err := pipeline.Run(context.Background(), maskPath, cfg)
		if err != nil {
			log.Fatal(err)
		}
		game.Name = maskPath
		game.Geometry = res.Geometry
		game.MaskImage = RenderMask(res.Mask)
		game.MetresPerPixel = res.MetresPerPixel
	}

	game.Mesh = game.Geometry.Mesh()
	game.ViewScale, game.ViewOffsetX, game.ViewOffsetY = fitView(game.Geometry.Outer)

	ebiten.SetWindowSize(WindowWidth, WindowHeight)
	ebiten.SetWindowTitle("Track Definition")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func loadStored(dbPath, trackID string) (*store.StoredTrack, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	ctx := context.Background()
	if trackID == "" {
		records, err := st.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("no tracks stored in %s", dbPath)
		}
		trackID = records[0].TrackID
	}
	return st.Load(ctx, trackID)
}
