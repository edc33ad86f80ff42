package ebitenfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking down -Z.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV      float64
	Position mgl64.Vec3
	Near     float64
	Far      float64
}

// TunnelCamera matches the tunnel scene: 75° at the origin.
func TunnelCamera() Camera {
	return Camera{FOV: 75, Near: 0.1, Far: 1000}
}

// PlaneCamera matches the particle plane scene: 75° at Z = 900.
func PlaneCamera() Camera {
	return Camera{FOV: 75, Position: mgl64.Vec3{0, 0, 900}, Near: 0.1, Far: 5000}
}

func (c Camera) view() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Position.Add(mgl64.Vec3{0, 0, -1}), mgl64.Vec3{0, 1, 0})
}

func (c Camera) projection(w, h int) mgl64.Mat4 {
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / float64(h)
	}
	fov := c.FOV
	if fov <= 0 || fov >= 180 {
		fov = 75
	}
	near, far := c.Near, c.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = near + 1000
	}
	return mgl64.Perspective(mgl64.DegToRad(fov), aspect, near, far)
}

// Project maps a world point to screen pixels for a w×h target. depth is
// the view-space distance in front of the camera; ok is false for points
// behind it.
func (c Camera) Project(p mgl64.Vec3, w, h int) (x, y, depth float64, ok bool) {
	clip := c.projection(w, h).Mul4(c.view()).Mul4x1(p.Vec4(1))
	if clip[3] <= 1e-9 {
		return 0, 0, 0, false
	}
	nx := clip[0] / clip[3]
	ny := clip[1] / clip[3]
	x = (nx + 1) / 2 * float64(w)
	y = (1 - ny) / 2 * float64(h)
	return x, y, clip[3], true
}

// Unproject casts a ray through screen pixel (sx, sy) and returns where it
// crosses the plane Z = planeZ.
func (c Camera) Unproject(sx, sy float64, w, h int, planeZ float64) (mgl64.Vec3, bool) {
	if w <= 0 || h <= 0 {
		return mgl64.Vec3{}, false
	}
	view, proj := c.view(), c.projection(w, h)
	winY := float64(h) - sy
	near, err := mgl64.UnProject(mgl64.Vec3{sx, winY, 0}, view, proj, 0, 0, w, h)
	if err != nil {
		return mgl64.Vec3{}, false
	}
	far, err := mgl64.UnProject(mgl64.Vec3{sx, winY, 1}, view, proj, 0, 0, w, h)
	if err != nil {
		return mgl64.Vec3{}, false
	}
	dir := far.Sub(near)
	if math.Abs(dir[2]) < 1e-12 {
		return mgl64.Vec3{}, false
	}
	t := (planeZ - near[2]) / dir[2]
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return near.Add(dir.Mul(t)), true
}
