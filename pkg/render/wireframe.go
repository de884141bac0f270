package render

import (
	"github.com/taigrr/mechyard/pkg/math3d"
)

// Guide colors for the wireframe overlay.
var (
	ColorAxisX = RGB(230, 60, 60)
	ColorAxisY = RGB(60, 230, 60)
	ColorAxisZ = RGB(60, 90, 230)
	ColorGrid  = RGB(70, 70, 90)
	ColorLight = RGB(255, 230, 120)
)

// DrawAxes draws the world axes from the origin.
func (r *Rasterizer) DrawAxes(length float64) {
	origin := math3d.Zero3()
	r.drawLine3D(origin, math3d.V3(length, 0, 0), ColorAxisX)
	r.drawLine3D(origin, math3d.V3(0, length, 0), ColorAxisY)
	r.drawLine3D(origin, math3d.V3(0, 0, length), ColorAxisZ)
}

// DrawGrid draws a square grid of the given size on the XZ plane at height y.
func (r *Rasterizer) DrawGrid(size, step, y float64, color Color) {
	if step <= 0 {
		return
	}
	half := size / 2
	for x := -half; x <= half; x += step {
		r.drawLine3D(math3d.V3(x, y, -half), math3d.V3(x, y, half), color)
	}
	for z := -half; z <= half; z += step {
		r.drawLine3D(math3d.V3(-half, y, z), math3d.V3(half, y, z), color)
	}
}

// DrawPoint draws a point as a small 3D cross.
func (r *Rasterizer) DrawPoint(pos math3d.Vec3, size float64, color Color) {
	h := size / 2
	r.drawLine3D(math3d.V3(pos.X-h, pos.Y, pos.Z), math3d.V3(pos.X+h, pos.Y, pos.Z), color)
	r.drawLine3D(math3d.V3(pos.X, pos.Y-h, pos.Z), math3d.V3(pos.X, pos.Y+h, pos.Z), color)
	r.drawLine3D(math3d.V3(pos.X, pos.Y, pos.Z-h), math3d.V3(pos.X, pos.Y, pos.Z+h), color)
}
