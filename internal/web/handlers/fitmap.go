package handlers

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/bkerly/Mask-Fit/internal/constants"
	"github.com/bkerly/Mask-Fit/internal/niosh"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// FitMapHandler renders the category fit map chart.
type FitMapHandler struct {
	profiles *niosh.ProfileSet
}

// NewFitMapHandler creates a new fit map handler.
func NewFitMapHandler(profiles *niosh.ProfileSet) *FitMapHandler {
	return &FitMapHandler{profiles: profiles}
}

// categoryColors follow the default echarts palette so colors stay
// consistent between renders.
var categoryColors = map[niosh.Category]string{
	niosh.CategorySmall:      "#5470c6",
	niosh.CategoryMedium:     "#91cc75",
	niosh.CategoryLarge:      "#fac858",
	niosh.CategoryLongNarrow: "#ee6666",
	niosh.CategoryShortWide:  "#73c0de",
}

// Render handles GET /api/v1/fitmap. Optional breadth and length query
// parameters overlay the subject on the category map.
func (h *FitMapHandler) Render(w http.ResponseWriter, r *http.Request) {
	minB, maxB := math.Inf(1), math.Inf(-1)
	minL, maxL := math.Inf(1), math.Inf(-1)
	for _, profile := range h.profiles.Profiles() {
		minB = math.Min(minB, profile.Breadth.Min)
		maxB = math.Max(maxB, profile.Breadth.Max)
		minL = math.Min(minL, profile.Length.Min)
		maxL = math.Max(maxL, profile.Length.Max)
	}
	const pad = 5.0

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "NIOSH Fit Map", Theme: "dark", Width: constants.FitMapWidth, Height: constants.FitMapHeight}),
		charts.WithTitleOpts(opts.Title{Title: "NIOSH Face Size Categories", Subtitle: "Range corners and centres per category"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: minB - pad, Max: maxB + pad, Name: "Bizygomatic breadth (mm)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: minL - pad, Max: maxL + pad, Name: "Menton-sellion length (mm)", NameLocation: "middle", NameGap: 30}),
	)

	for _, profile := range h.profiles.Profiles() {
		scatter.AddSeries(profile.Category.Display(), rangePoints(profile),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: categoryColors[profile.Category]}),
		)
	}

	breadth, berr := strconv.ParseFloat(r.URL.Query().Get("breadth"), 64)
	length, lerr := strconv.ParseFloat(r.URL.Query().Get("length"), 64)
	if berr == nil && lerr == nil {
		scatter.AddSeries("Subject", []opts.ScatterData{{Value: []interface{}{breadth, length}}},
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 18}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ffffff"}),
		)
	}

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render fit map: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// rangePoints returns the corners and centre of a category's ranges.
func rangePoints(p niosh.CategoryProfile) []opts.ScatterData {
	pairs := [][2]float64{
		{p.Breadth.Min, p.Length.Min},
		{p.Breadth.Min, p.Length.Max},
		{p.Breadth.Max, p.Length.Min},
		{p.Breadth.Max, p.Length.Max},
		{p.Breadth.Mid(), p.Length.Mid()},
	}

	data := make([]opts.ScatterData, 0, len(pairs))
	for _, pair := range pairs {
		data = append(data, opts.ScatterData{Value: []interface{}{pair[0], pair[1]}})
	}
	return data
}
