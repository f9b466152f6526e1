package mathutil

import "math"

var (
	axisX = Vec3{1, 0, 0}
	axisY = Vec3{0, 1, 0}
)

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// OrbitView returns the camera rotation for an orbit around the origin:
// yaw around Y first, then pitch around X. Angles in degrees.
func OrbitView(yaw, pitch float64) Mat3 {
	q := AxisAngle(axisX, Deg2Rad(pitch)).Mul(AxisAngle(axisY, Deg2Rad(yaw)))
	return q.Mat3()
}
