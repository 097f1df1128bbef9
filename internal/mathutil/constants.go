package mathutil

import "math"

// Preview camera orientation used by the planet renderers: the globe is
// tipped 0.4 rad toward the viewer and rolled -0.2 rad before spinning
// around its own Y axis.
var (
	ViewTiltX = 0.4
	ViewRollZ = -0.2

	// ViewTilt is the fixed part of the model rotation: Rx(0.4) @ Rz(-0.2).
	ViewTilt = Mat3Mul(RotX(ViewTiltX), RotZ(ViewRollZ))
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// ModelRotation returns the planet orientation for a spin of rotation
// radians around the planet axis.
func ModelRotation(rotation float64) Mat3 {
	return Mat3Mul(ViewTilt, RotY(rotation))
}
