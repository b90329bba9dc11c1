// Package sizing maps facial measurements onto NIOSH face size categories
// and ranks respirator recommendations for the resulting category.
package sizing

// Measurement holds the four facial dimensions in millimetres.
type Measurement struct {
	// BizygomaticBreadth is the cheekbone-to-cheekbone width.
	BizygomaticBreadth float64 `json:"bizygomatic_breadth"`
	// MentonSellion is the chin-to-nasal-root length.
	MentonSellion float64 `json:"menton_sellion"`
	// FaceWidth is the overall face width.
	FaceWidth float64 `json:"face_width"`
	// FaceHeight is the chin-to-forehead height.
	FaceHeight float64 `json:"face_height"`
}

// AspectRatio returns menton-sellion length over bizygomatic breadth.
// Display data only; it never feeds classification.
func (m Measurement) AspectRatio() float64 {
	if m.BizygomaticBreadth == 0 {
		return 0
	}
	return m.MentonSellion / m.BizygomaticBreadth
}

// Plausible reports whether every dimension falls inside the credible
// window for human faces.
func (m Measurement) Plausible() bool {
	for _, v := range [4]float64{m.BizygomaticBreadth, m.MentonSellion, m.FaceWidth, m.FaceHeight} {
		if v < PlausibleMin || v > PlausibleMax {
			return false
		}
	}
	return true
}

// mentonSellionHeightRatio is the typical menton-sellion share of total
// face height.
const mentonSellionHeightRatio = 0.7

// DeriveMeasurement builds a measurement from the two classifying
// dimensions, estimating the frontal width and height when they were not
// taken. On a frontal view nothing sits wider than the cheekbones, and
// the menton-sellion span runs close to 70% of total face height.
func DeriveMeasurement(breadth, length, width, height float64) Measurement {
	if width <= 0 {
		width = breadth
	}
	if height <= 0 {
		height = length / mentonSellionHeightRatio
	}
	return Measurement{
		BizygomaticBreadth: breadth,
		MentonSellion:      length,
		FaceWidth:          width,
		FaceHeight:         height,
	}
}
