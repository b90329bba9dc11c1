package facescan

import (
	"math"

	"github.com/bkerly/Mask-Fit/internal/sizing"
)

// MeasurementFromLandmarks converts normalized landmarks into millimetre
// measurements. width and height are the pixel dimensions of the image the
// landmarks describe; mmPerPixel is the capture calibration at those
// dimensions.
func MeasurementFromLandmarks(lm *Landmarks, width, height int, mmPerPixel float64) sizing.Measurement {
	breadth := pixelDistance(lm.RightCheek, lm.LeftCheek, width, height) * mmPerPixel
	length := pixelDistance(lm.Menton, lm.Sellion, width, height) * mmPerPixel
	faceHeight := pixelDistance(lm.Menton, lm.ForeheadTop, width, height) * mmPerPixel

	return sizing.Measurement{
		BizygomaticBreadth: breadth,
		MentonSellion:      length,
		// On a frontal photo nothing sits further out than the cheekbones,
		// so the cheek span doubles as the overall width.
		FaceWidth:  breadth,
		FaceHeight: faceHeight,
	}
}

// pixelDistance is the Euclidean distance between two normalized points
// projected onto a width x height pixel grid.
func pixelDistance(a, b Point, width, height int) float64 {
	dx := (a.X - b.X) * float64(width)
	dy := (a.Y - b.Y) * float64(height)
	return math.Hypot(dx, dy)
}
