package viewer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/philipparndt/gowalk/pkg/geometry"
)

// ShadeFunc picks the fill color of the i-th triangle
type ShadeFunc func(i int, t geometry.Triangle) color.RGBA

var (
	baseColor = color.RGBA{232, 228, 220, 255}
	lightDir  = geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()
)

// DiffuseShade lights triangles from above with a two-sided diffuse term
func DiffuseShade(_ int, t geometry.Triangle) color.RGBA {
	intensity := math.Max(0.35, math.Abs(t.CalculateNormal().Dot(lightDir)))
	return color.RGBA{
		R: uint8(float64(baseColor.R) * intensity),
		G: uint8(float64(baseColor.G) * intensity),
		B: uint8(float64(baseColor.B) * intensity),
		A: 255,
	}
}

type screenVertex struct {
	x, y float64
	invZ float64
}

// Rasterize renders triangles with DiffuseShade
func Rasterize(triangles []geometry.Triangle, cam Camera, width, height int, background color.RGBA) *image.RGBA {
	return RasterizeFunc(triangles, cam, width, height, background, DiffuseShade)
}

// RasterizeFunc renders filled triangles into a new image using a depth
// buffer. Triangles are clipped against the near plane so geometry around
// a first-person camera stays visible.
func RasterizeFunc(triangles []geometry.Triangle, cam Camera, width, height int, background color.RGBA, shade ShadeFunc) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)
	if width <= 0 || height <= 0 {
		return img
	}

	// Inverse depth per pixel; zero means nothing drawn yet
	zbuffer := make([]float64, width*height)
	w, h := float64(width), float64(height)
	frame := cam.frame()

	var view [3]geometry.Vector3
	poly := make([]geometry.Vector3, 0, 4)
	pts := make([]screenVertex, 0, 4)

	for i, tri := range triangles {
		view[0] = frame.apply(tri.V1)
		view[1] = frame.apply(tri.V2)
		view[2] = frame.apply(tri.V3)

		poly = clipNear(view[:], poly[:0])
		if len(poly) < 3 {
			continue
		}

		pts = pts[:0]
		for _, v := range poly {
			x, y := cam.ViewToScreen(v, w, h)
			pts = append(pts, screenVertex{x: x, y: y, invZ: 1 / v.Z})
		}

		col := shade(i, tri)
		for k := 1; k+1 < len(pts); k++ {
			fillTriangle(img, zbuffer, pts[0], pts[k], pts[k+1], col)
		}
	}
	return img
}

// clipNear clips a convex polygon in camera space against the near plane
func clipNear(poly, out []geometry.Vector3) []geometry.Vector3 {
	for i := range poly {
		cur, next := poly[i], poly[(i+1)%len(poly)]
		curIn, nextIn := cur.Z >= NearPlane, next.Z >= NearPlane
		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			t := (NearPlane - cur.Z) / (next.Z - cur.Z)
			out = append(out, cur.Lerp(next, t))
		}
	}
	return out
}

func edgeFunction(a, b screenVertex, px, py float64) float64 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// fillTriangle fills a screen triangle with depth testing on pixel centers
func fillTriangle(img *image.RGBA, zbuffer []float64, a, b, c screenVertex, col color.RGBA) {
	area := edgeFunction(a, b, c.x, c.y)
	if area == 0 || math.IsNaN(area) {
		return
	}

	bounds := img.Bounds()
	width := bounds.Max.X
	minX := max(0, int(math.Floor(min(a.x, b.x, c.x))))
	maxX := min(width-1, int(math.Ceil(max(a.x, b.x, c.x))))
	minY := max(0, int(math.Floor(min(a.y, b.y, c.y))))
	maxY := min(bounds.Max.Y-1, int(math.Ceil(max(a.y, b.y, c.y))))

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edgeFunction(b, c, px, py) / area
			w1 := edgeFunction(c, a, px, py) / area
			w2 := edgeFunction(a, b, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			invZ := w0*a.invZ + w1*b.invZ + w2*c.invZ
			idx := y*width + x
			if invZ <= zbuffer[idx] {
				continue
			}
			zbuffer[idx] = invZ
			img.SetRGBA(x, y, col)
		}
	}
}
