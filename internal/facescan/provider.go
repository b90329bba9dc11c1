// Package facescan extracts facial landmarks from photographs and converts
// them into millimetre measurements for size classification. Detection
// backends are pluggable: cloud vision models, a local MediaPipe sidecar,
// or stored landmark fixtures.
package facescan

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoFaceDetected is returned when a provider finds no usable face in
// the image. Callers should treat it as a retake-the-photo condition, not
// a system failure.
var ErrNoFaceDetected = errors.New("no face detected")

// Point is a landmark position in normalized image coordinates: x and y in
// [0, 1] relative to image width and height, origin at the top-left corner.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Landmarks holds the five facial landmarks the measurement geometry needs.
// Cheek sides follow the subject, so on a frontal photo the right cheek
// appears on the image's left half.
type Landmarks struct {
	RightCheek  Point `json:"right_cheek"`  // lateral point of the right zygomatic arch
	LeftCheek   Point `json:"left_cheek"`   // lateral point of the left zygomatic arch
	Menton      Point `json:"menton"`       // lowest point of the chin
	Sellion     Point `json:"sellion"`      // nose bridge between the eyes
	ForeheadTop Point `json:"forehead_top"` // top of the forehead
}

// coordSlack tolerates landmarks slightly outside the frame, which face
// mesh models produce for partially cropped foreheads and chins.
const coordSlack = 0.25

// Validate rejects landmark sets that cannot describe a face: coordinates
// far outside the frame or coincident points that would yield zero-length
// measurements.
func (l *Landmarks) Validate() error {
	points := map[string]Point{
		"right_cheek":  l.RightCheek,
		"left_cheek":   l.LeftCheek,
		"menton":       l.Menton,
		"sellion":      l.Sellion,
		"forehead_top": l.ForeheadTop,
	}
	for name, p := range points {
		if p.X < -coordSlack || p.X > 1+coordSlack || p.Y < -coordSlack || p.Y > 1+coordSlack {
			return fmt.Errorf("landmark %s out of frame: (%.3f, %.3f)", name, p.X, p.Y)
		}
	}

	if l.RightCheek == l.LeftCheek {
		return errors.New("cheek landmarks coincide")
	}
	if l.Menton == l.Sellion {
		return errors.New("menton and sellion landmarks coincide")
	}
	if l.Menton == l.ForeheadTop {
		return errors.New("menton and forehead landmarks coincide")
	}
	return nil
}

// Provider detects facial landmarks in an image.
type Provider interface {
	Name() string
	DetectLandmarks(ctx context.Context, imageData []byte) (*Landmarks, error)
}

// landmarkResult mirrors the JSON document the detection backends return.
type landmarkResult struct {
	FaceDetected bool       `json:"face_detected"`
	Landmarks    *Landmarks `json:"landmarks"`
}
