package facescan

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/bkerly/Mask-Fit/internal/constants"
	"github.com/bkerly/Mask-Fit/internal/sizing"
)

// Scanner runs the photo measurement pipeline: downscale, landmark
// detection, millimetre conversion.
type Scanner struct {
	provider   Provider
	mmPerPixel float64
}

// NewScanner wires a landmark provider to the measurement geometry.
// A non-positive mmPerPixel falls back to the default calibration.
func NewScanner(provider Provider, mmPerPixel float64) *Scanner {
	if mmPerPixel <= 0 {
		mmPerPixel = constants.DefaultMMPerPixel
	}
	return &Scanner{provider: provider, mmPerPixel: mmPerPixel}
}

// ScanResult couples the derived measurement with the landmarks it came from.
type ScanResult struct {
	Measurement sizing.Measurement `json:"measurement"`
	Landmarks   Landmarks          `json:"landmarks"`
	Provider    string             `json:"provider"`
}

// Scan measures a face photograph. The image is downscaled before it is
// sent to the provider to keep uploads small; landmark coordinates are
// normalized, so the measurement is computed against the original pixel
// dimensions the calibration refers to.
func (s *Scanner) Scan(ctx context.Context, imageData []byte) (*ScanResult, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized, err := ResizeImage(imageData, constants.MaxScanImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to resize image: %w", err)
	}

	lm, err := s.provider.DetectLandmarks(ctx, resized)
	if err != nil {
		return nil, err
	}
	if err := lm.Validate(); err != nil {
		return nil, fmt.Errorf("%s returned unusable landmarks: %w", s.provider.Name(), err)
	}

	return &ScanResult{
		Measurement: MeasurementFromLandmarks(lm, cfg.Width, cfg.Height, s.mmPerPixel),
		Landmarks:   *lm,
		Provider:    s.provider.Name(),
	}, nil
}
