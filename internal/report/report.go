// Package report renders fitting sessions as Markdown documents the fitter
// can archive or hand to the wearer.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bkerly/Mask-Fit/internal/niosh"
	"github.com/bkerly/Mask-Fit/internal/protocol"
	"github.com/bkerly/Mask-Fit/internal/sizing"
)

// Fitting collects everything one fitting session produced. Profiles is
// required; SealCheck is optional and adds the pre-donning checklist.
type Fitting struct {
	Subject        string
	SessionID      string
	Date           time.Time
	Measurement    sizing.Measurement
	Result         sizing.ClassificationResult
	Recommendation sizing.Recommendation
	Profiles       *niosh.ProfileSet
	SealCheck      *protocol.SealCheck
}

// Render produces the Markdown fitting report.
func Render(f Fitting) string {
	var b strings.Builder

	b.WriteString("# NIOSH Respirator Fitting Report\n\n")

	writeSubject(&b, f)
	writeMeasurements(&b, f)
	writeCategory(&b, f)
	writeRecommendations(&b, f)
	writeNextSteps(&b, f)
	writeDisclaimer(&b)

	return b.String()
}

func writeSubject(b *strings.Builder, f Fitting) {
	subject := f.Subject
	if subject == "" {
		subject = "Not provided"
	}

	b.WriteString("## Subject Information\n\n")
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(b, "| Name | %s |\n", subject)
	fmt.Fprintf(b, "| Session | %s |\n", f.SessionID)
	fmt.Fprintf(b, "| Test Date | %s |\n", f.Date.Format("January 2, 2006"))
	fmt.Fprintf(b, "| Test Time | %s |\n\n", f.Date.Format("3:04 PM"))
}

func writeMeasurements(b *strings.Builder, f Fitting) {
	survey := f.Profiles.Survey()
	m := f.Measurement

	b.WriteString("## Facial Measurements\n\n")
	b.WriteString("| Measurement | Value (mm) | Population Percentile |\n|---|---|---|\n")
	fmt.Fprintf(b, "| Bizygomatic Breadth | %.1f | %s |\n", m.BizygomaticBreadth, percentileLabel(survey.BreadthPercentile(m.BizygomaticBreadth)))
	fmt.Fprintf(b, "| Menton-Sellion Length | %.1f | %s |\n", m.MentonSellion, percentileLabel(survey.LengthPercentile(m.MentonSellion)))
	fmt.Fprintf(b, "| Face Width | %.1f | |\n", m.FaceWidth)
	fmt.Fprintf(b, "| Face Height | %.1f | |\n\n", m.FaceHeight)
}

func writeCategory(b *strings.Builder, f Fitting) {
	b.WriteString("## NIOSH Face Size Category\n\n")
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(b, "| Category | %s |\n", f.Result.Category.Display())

	if profile, ok := f.Profiles.Get(f.Result.Category); ok {
		fmt.Fprintf(b, "| Description | %s |\n", profile.Description)
		fmt.Fprintf(b, "| Population | %s |\n", profile.Percentile)
	}
	fmt.Fprintf(b, "| Match Confidence | %.0f%% |\n", f.Result.Confidence)
	fmt.Fprintf(b, "| Match Type | %s |\n\n", f.Result.Match)

	if f.Result.Reason == sizing.ReasonImplausible {
		b.WriteString("The measurements fall outside the plausible range for human faces. Re-measure the subject before selecting a respirator.\n\n")
	}
}

func writeRecommendations(b *strings.Builder, f Fitting) {
	if f.Result.Category == niosh.CategoryUnclassified {
		return
	}

	b.WriteString("## Recommended Respirators\n\n")
	if len(f.Recommendation.Masks) == 0 {
		b.WriteString("No catalog entries are available for this category.\n\n")
	} else {
		b.WriteString("| # | Brand | Model | Size | Expected Fit |\n|---|---|---|---|---|\n")
		for i, mask := range f.Recommendation.Masks {
			fmt.Fprintf(b, "| %d | %s | %s | %s | %d%% |\n", i+1, mask.Brand, mask.Model, mask.Size, mask.FitScore)
		}
		b.WriteString("\n")
	}

	if len(f.Recommendation.Secondary) > 0 {
		b.WriteString("### Alternative Sizes to Try\n\n")
		b.WriteString("The size match carries low confidence. If the primary picks do not seal, try the nearest neighboring sizes:\n\n")
		for _, s := range f.Recommendation.Secondary {
			fmt.Fprintf(b, "- **%s**: %s %s (%s)\n", s.Category.Display(), s.Mask.Brand, s.Mask.Model, s.Mask.Size)
		}
		b.WriteString("\n")
	}
}

func writeNextSteps(b *strings.Builder, f Fitting) {
	b.WriteString("## Next Steps\n\n")
	b.WriteString("1. Obtain one of the recommended respirators\n")
	b.WriteString("2. Perform a user seal check before each use\n")
	b.WriteString("3. Consider quantitative fit testing if required by your employer\n")
	b.WriteString("4. Follow all manufacturer and OSHA guidelines\n\n")

	if f.SealCheck != nil {
		b.WriteString("### Pre-Donning Checklist\n\n")
		for _, item := range f.SealCheck.PreCheck {
			fmt.Fprintf(b, "- [ ] %s\n", item)
		}
		b.WriteString("\n")
	}
}

func writeDisclaimer(b *strings.Builder) {
	b.WriteString("## Disclaimer\n\n")
	b.WriteString("This report is based on automated facial measurements and should be used as a preliminary guide only. ")
	b.WriteString("Proper fit testing by a qualified professional may be required for workplace use. ")
	b.WriteString("Always follow OSHA regulations (29 CFR 1910.134) and manufacturer guidelines. ")
	b.WriteString("This screening does not replace professional fit testing or certification for use in hazardous environments.\n")
}

// percentileLabel renders a survey percentile for display. Values beyond
// the 1st..99th band collapse to open-ended labels since the normal
// approximation carries no useful precision out there.
func percentileLabel(p float64) string {
	if p < 1 {
		return "<1st"
	}
	if p > 99 {
		return ">99th"
	}
	return ordinal(int(math.Round(p)))
}

func ordinal(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	}
	return fmt.Sprintf("%dth", n)
}
