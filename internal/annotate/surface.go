// Package annotate implements the ink overlay drawn over the slides: a
// device-pixel raster for pen strokes and a single laser marker.
package annotate

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
)

// InkColor is the pen color, rgba(255, 59, 48, 0.92).
var InkColor = color.NRGBA{R: 255, G: 59, B: 48, A: 235}

// DefaultPenWidth is the stroke width in CSS pixels.
const DefaultPenWidth = 4

// maxSide bounds the raster so a bogus resize cannot allocate gigabytes.
const maxSide = 8192

// Point is a position in CSS pixels relative to the viewport.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is one straight piece of a stroke, in CSS pixels.
type Segment struct {
	From  Point   `json:"from"`
	To    Point   `json:"to"`
	Width float64 `json:"width"`
}

// Surface holds the accumulated ink and the laser marker. Strokes are not
// kept individually; only Clear removes ink.
type Surface struct {
	penWidth float64

	cssW, cssH int
	reqDPR     float64
	dpr        float64
	img        *image.RGBA

	pen   bool
	laser bool

	drawing bool
	last    Point

	marker        Point
	markerVisible bool

	pending  []Segment
	reset    bool
	revision int
}

// New returns a 1x1 surface; call Resize once the viewport is known.
func New(penWidth float64) *Surface {
	if penWidth <= 0 {
		penWidth = DefaultPenWidth
	}
	s := &Surface{penWidth: penWidth}
	s.Resize(1, 1, 1)
	return s
}

// Resize reallocates the raster for a cssW x cssH viewport at the given
// device pixel ratio. Existing ink is discarded, as with a canvas resize.
// A resize to the current geometry keeps the ink and reports false.
func (s *Surface) Resize(cssW, cssH int, dpr float64) bool {
	if cssW < 1 {
		cssW = 1
	}
	if cssH < 1 {
		cssH = 1
	}
	if dpr <= 0 || math.IsNaN(dpr) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	if s.img != nil && cssW == s.cssW && cssH == s.cssH && dpr == s.reqDPR {
		return false
	}
	s.reqDPR = dpr
	w := int(math.Floor(float64(cssW) * dpr))
	h := int(math.Floor(float64(cssH) * dpr))
	if w > maxSide || h > maxSide {
		scale := float64(maxSide) / math.Max(float64(w), float64(h))
		dpr *= scale
		w = int(math.Floor(float64(cssW) * dpr))
		h = int(math.Floor(float64(cssH) * dpr))
	}
	s.cssW, s.cssH, s.dpr = cssW, cssH, dpr
	s.img = image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	s.drawing = false
	s.pending = nil
	s.reset = true
	s.revision++
	return true
}

// PixelSize is the raster size in device pixels.
func (s *Surface) PixelSize() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) DevicePixelRatio() float64 { return s.dpr }

// EnablePen switches stroke capture. Turning it off ends any open stroke.
func (s *Surface) EnablePen(on bool) {
	s.pen = on
	if !on {
		s.drawing = false
	}
}

// EnableLaser switches the marker. Turning it off hides it.
func (s *Surface) EnableLaser(on bool) {
	s.laser = on
	if !on {
		s.markerVisible = false
	}
}

// Clear erases all ink.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	s.drawing = false
	s.pending = nil
	s.reset = true
	s.revision++
}

// PointerDown starts a stroke when the pen is on.
func (s *Surface) PointerDown(p Point) bool {
	if !s.pen {
		return false
	}
	s.drawing = true
	s.last = p
	return true
}

// PointerMove extends the open stroke with a straight segment from the last
// point to p.
func (s *Surface) PointerMove(p Point) bool {
	if !s.pen || !s.drawing {
		return false
	}
	seg := Segment{From: s.last, To: p, Width: s.penWidth}
	s.stroke(seg)
	s.pending = append(s.pending, seg)
	s.last = p
	return true
}

// PointerUp ends the stroke.
func (s *Surface) PointerUp() { s.drawing = false }

func (s *Surface) Drawing() bool { return s.drawing }

// Hover moves the laser marker. Touch input does not move it: on touch
// devices a moving finger swipes slides instead.
func (s *Surface) Hover(p Point, touch bool) bool {
	if !s.laser || touch {
		return false
	}
	s.marker = p
	s.markerVisible = true
	return true
}

// Leave hides the marker when the pointer leaves the viewport.
func (s *Surface) Leave() { s.markerVisible = false }

// Marker returns the laser position and whether it is shown.
func (s *Surface) Marker() (Point, bool) { return s.marker, s.markerVisible }

// TakeSegments returns segments drawn since the previous call and whether
// clients must wipe their copy first.
func (s *Surface) TakeSegments() (segs []Segment, reset bool) {
	segs, reset = s.pending, s.reset
	s.pending = nil
	s.reset = false
	return segs, reset
}

// Revision changes whenever the raster is wiped or reallocated.
func (s *Surface) Revision() int { return s.revision }

// At returns the raster color at a device pixel.
func (s *Surface) At(x, y int) color.Color { return s.img.At(x, y) }

// EncodePNG writes the raster.
func (s *Surface) EncodePNG(w io.Writer) error { return png.Encode(w, s.img) }

// stroke rasterizes seg as a round-capped line of seg.Width CSS pixels.
func (s *Surface) stroke(seg Segment) {
	ax, ay := seg.From.X*s.dpr, seg.From.Y*s.dpr
	bx, by := seg.To.X*s.dpr, seg.To.Y*s.dpr
	r := seg.Width * s.dpr / 2

	rect := image.Rect(
		int(math.Floor(math.Min(ax, bx)-r)), int(math.Floor(math.Min(ay, by)-r)),
		int(math.Ceil(math.Max(ax, bx)+r))+1, int(math.Ceil(math.Max(ay, by)+r))+1,
	).Intersect(s.img.Bounds())
	if rect.Empty() {
		return
	}

	mask := image.NewAlpha(rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			d := distToSegment(float64(x)+0.5, float64(y)+0.5, ax, ay, bx, by)
			if d <= r {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	draw.DrawMask(s.img, rect, image.NewUniform(InkColor), image.Point{}, mask, rect.Min, draw.Over)
}

func distToSegment(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}
