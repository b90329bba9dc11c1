package niosh

import (
	"math"
	"testing"
)

var testSurvey = SurveyStats{
	BreadthMean: 139.7,
	BreadthSD:   6.8,
	LengthMean:  119.6,
	LengthSD:    7.6,
}

func TestBreadthPercentile_AtMean(t *testing.T) {
	p := testSurvey.BreadthPercentile(139.7)
	if math.Abs(p-50) > 0.001 {
		t.Errorf("expected percentile 50 at the mean, got %v", p)
	}
}

func TestLengthPercentile_AtMean(t *testing.T) {
	p := testSurvey.LengthPercentile(119.6)
	if math.Abs(p-50) > 0.001 {
		t.Errorf("expected percentile 50 at the mean, got %v", p)
	}
}

func TestBreadthPercentile_OneSD(t *testing.T) {
	// One standard deviation above the mean sits near the 84th percentile.
	p := testSurvey.BreadthPercentile(139.7 + 6.8)
	if math.Abs(p-84.13) > 0.1 {
		t.Errorf("expected ~84.13 one SD above the mean, got %v", p)
	}

	p = testSurvey.BreadthPercentile(139.7 - 6.8)
	if math.Abs(p-15.87) > 0.1 {
		t.Errorf("expected ~15.87 one SD below the mean, got %v", p)
	}
}

func TestPercentile_Monotonic(t *testing.T) {
	prev := -1.0
	for mm := 100.0; mm <= 180.0; mm += 5 {
		p := testSurvey.BreadthPercentile(mm)
		if p <= prev {
			t.Fatalf("percentile not strictly increasing at %v mm: %v <= %v", mm, p, prev)
		}
		if p < 0 || p > 100 {
			t.Fatalf("percentile out of bounds at %v mm: %v", mm, p)
		}
		prev = p
	}
}

func TestPercentile_ZeroSD(t *testing.T) {
	s := SurveyStats{BreadthMean: 140, BreadthSD: 0}
	if p := s.BreadthPercentile(140); p != 0 {
		t.Errorf("expected 0 for zero SD, got %v", p)
	}
}
