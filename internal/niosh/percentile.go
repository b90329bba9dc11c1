package niosh

import "gonum.org/v1/gonum/stat/distuv"

// SurveyStats holds per-dimension mean and standard deviation from the
// anthropometric survey the panel was derived from. Percentiles computed
// from these are display data only and never feed classification.
type SurveyStats struct {
	Source      string  `yaml:"source" json:"source"`
	BreadthMean float64 `yaml:"breadth_mean" json:"breadth_mean"`
	BreadthSD   float64 `yaml:"breadth_sd" json:"breadth_sd"`
	LengthMean  float64 `yaml:"length_mean" json:"length_mean"`
	LengthSD    float64 `yaml:"length_sd" json:"length_sd"`
}

// BreadthPercentile estimates where a bizygomatic breadth falls in the
// survey population, as a percentage in (0, 100).
func (s SurveyStats) BreadthPercentile(mm float64) float64 {
	return normalPercentile(mm, s.BreadthMean, s.BreadthSD)
}

// LengthPercentile estimates where a menton-sellion length falls in the
// survey population, as a percentage in (0, 100).
func (s SurveyStats) LengthPercentile(mm float64) float64 {
	return normalPercentile(mm, s.LengthMean, s.LengthSD)
}

func normalPercentile(v, mean, sd float64) float64 {
	if sd <= 0 {
		return 0
	}
	dist := distuv.Normal{Mu: mean, Sigma: sd}
	return dist.CDF(v) * 100
}
