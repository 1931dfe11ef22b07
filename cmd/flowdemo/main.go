// Command flowdemo composites a sample layer tree with the flow library.
//
// By default the tree is painted onto a software canvas and saved as PNG.
// With -scene it is emitted as scene-graph operations instead and a
// summary of the presented batch is printed.
package main

import (
	"flag"
	"image"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/rastercache"
	"github.com/gogpu/flow/scenegraph"
	"github.com/gogpu/flow/surface"
)

func main() {
	var (
		width   = flag.Int("width", 800, "frame width in physical pixels")
		height  = flag.Int("height", 600, "frame height in physical pixels")
		dpr     = flag.Float64("dpr", 1, "device pixel ratio")
		output  = flag.String("output", "flow.png", "output file for the canvas backend")
		scene   = flag.Bool("scene", false, "emit scene operations instead of painting")
		frames  = flag.Int("frames", 4, "number of frames to draw")
		verbose = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	if *verbose {
		flow.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	size := image.Pt(*width, *height)
	if *scene {
		drawScene(size, *dpr, *frames)
		return
	}
	drawCanvas(size, *dpr, *frames, *output)
}

func drawCanvas(size image.Point, dpr float64, frames int, output string) {
	sw, pc := renderCanvas(size, dpr, frames)
	if err := sw.Context().SavePNG(output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	st := pc.RasterCache().Stats()
	log.Printf("Frame saved to %s (%dx%d), %d frames, cache hits %d, rasterized %d\n",
		output, size.X, size.Y, pc.FrameCount().Count(), st.Hits, st.Rasterized)
}

// renderCanvas paints frames of the sample tree and returns the last
// frame's canvas.
func renderCanvas(size image.Point, dpr float64, frames int) (*canvas.Software, *flow.PaintContext) {
	pc := flow.NewPaintContext(flow.WithRasterCacheOptions(rastercache.WithMaxEntries(64)))
	r := flow.NewRasterizer(pc, nil)

	// The tree is built once so layer identities, and with them the raster
	// cache entries, survive across frames.
	start := time.Now()
	tree := flow.NewLayerTree(buildTree(size), size, dpr)
	tree.SetConstructionTime(time.Since(start))

	var sw *canvas.Software
	for i := 0; i < frames; i++ {
		sw = canvas.NewSoftware(size.X, size.Y)
		r.Draw(tree, sw)
	}
	return sw, pc
}

func drawScene(size image.Point, dpr float64, frames int) {
	session := scenegraph.NewSession()
	pool := surface.NewPool(session, surface.WithMaxSurfaces(32))
	pc := flow.NewPaintContext(flow.WithSceneBackend())
	r := flow.NewSceneRasterizer(pc, session, pool, nil)

	tree := flow.NewLayerTree(buildTree(size), size, dpr)
	var ops []scenegraph.Op
	for i := 0; i < frames; i++ {
		ops = r.Draw(tree)
	}

	counts := map[scenegraph.OpKind]int{}
	for _, op := range ops {
		counts[op.Kind]++
	}
	log.Printf("Presented %d ops in the last of %d frames\n", len(ops), frames)
	for k := scenegraph.OpCreate; k <= scenegraph.OpDetachChildren; k++ {
		if counts[k] > 0 {
			log.Printf("  %-20s %d\n", k, counts[k])
		}
	}
	st := pool.Stats()
	log.Printf("Surfaces: %d live, %d produced, %d recycled\n", st.Live, st.Produced, st.Recycled)
}

func buildTree(size image.Point) flow.Layer {
	w, h := float64(size.X), float64(size.Y)
	root := flow.NewContainerLayer()

	bg := canvas.NewRecorder(canvas.Rect{})
	bg.DrawRect(canvas.RectWH(w, h), canvas.NewPaint(gg.RGB(0.15, 0.2, 0.3)))
	root.Add(flow.NewPictureLayer(gg.Point{}, bg.Finish(canvas.RectWH(w, h))))

	// Translucent card with clipped content.
	card := flow.NewPhysicalModelLayer(
		canvas.RRectFromRectRadius(canvas.RectXYWH(40, 40, 300, 200), 16), 8, gg.RGB(0.95, 0.95, 0.95))
	fade := flow.NewOpacityLayer(180, gg.Pt(60, 60))
	clip := flow.NewClipRectLayer(canvas.RectWH(260, 160))
	stripe := canvas.NewRecorder(canvas.Rect{})
	for i := 0; i < 8; i++ {
		c := gg.HSL(float64(i)*45, 0.7, 0.5)
		stripe.DrawRect(canvas.RectXYWH(float64(i)*40, 0, 40, 160), canvas.NewPaint(c))
	}
	clip.Add(flow.NewPictureLayer(gg.Point{}, stripe.Finish(canvas.RectWH(320, 160))))
	fade.Add(clip)
	card.Add(fade)
	root.Add(card)

	// Rotated, cached star.
	spin := flow.NewTransformLayer(gg.Translate(w-200, 160).Multiply(gg.Rotate(math.Pi / 8)))
	star := flow.NewPictureLayer(gg.Point{}, recordStar(60, 30))
	star.IsComplex = true
	spin.Add(star)
	root.Add(spin)

	// Tinted and masked footer.
	tint := flow.NewColorFilterLayer(gg.RGBA2(0.2, 0.6, 1, 0.5), canvas.FilterSrcIn)
	mask := flow.NewShaderMaskLayer(gg.Solid(gg.RGBA2(0, 0, 0, 0.6)), canvas.RectXYWH(40, h-140, w-80, 100), canvas.MaskDstIn)
	footer := canvas.NewRecorder(canvas.Rect{})
	footer.DrawRRect(canvas.RRectFromRectRadius(canvas.RectXYWH(40, h-140, w-80, 100), 12), canvas.NewPaint(gg.RGB(1, 0.8, 0)))
	mask.Add(flow.NewPictureLayer(gg.Point{}, footer.Finish(canvas.RectXYWH(40, h-140, w-80, 100))))
	tint.Add(mask)
	root.Add(tint)

	return root
}

func recordStar(outerR, innerR float64) *canvas.Picture {
	const points = 5
	p := gg.NewPath()
	for i := 0; i < points*2; i++ {
		angle := float64(i) * math.Pi / points
		r := outerR
		if i%2 == 1 {
			r = innerR
		}
		x := r * math.Cos(angle-math.Pi/2)
		y := r * math.Sin(angle-math.Pi/2)
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()

	rec := canvas.NewRecorder(canvas.Rect{})
	rec.DrawPath(p, canvas.NewPaint(gg.RGB(1, 1, 0)))
	return rec.Finish(canvas.RectXYWH(-outerR, -outerR, 2*outerR, 2*outerR))
}
