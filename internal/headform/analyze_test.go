package headform

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bkerly/Mask-Fit/internal/niosh"
)

// smallHeadVertices produces a mesh whose measurements land inside the
// small category: breadth 130, menton-sellion 112.
var smallHeadVertices = []Vertex{
	{X: 0, Y: 0, Z: 0},
	{X: 140, Y: 50, Z: 0},
	{X: 5, Y: 25, Z: 80},
	{X: 135, Y: 25, Z: 80},
	{X: 70, Y: 25, Z: 160},
	{X: 70, Y: 25, Z: 160},
}

// largeHeadVertices lands inside the large category: breadth 150,
// menton-sellion 129.5.
var largeHeadVertices = []Vertex{
	{X: 0, Y: 0, Z: 0},
	{X: 150, Y: 60, Z: 0},
	{X: 0, Y: 30, Z: 90},
	{X: 150, Y: 30, Z: 90},
	{X: 75, Y: 30, Z: 185},
	{X: 75, Y: 30, Z: 185},
}

func writeHeadform(t *testing.T, dir string, category niosh.Category, vertices []Vertex) {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("solid head\n")
	for i := 0; i+2 < len(vertices); i += 3 {
		sb.WriteString("  facet normal 0.0 0.0 1.0\n    outer loop\n")
		for j := range 3 {
			v := vertices[i+j]
			fmt.Fprintf(&sb, "      vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		sb.WriteString("    endloop\n  endfacet\n")
	}
	sb.WriteString("endsolid head\n")

	path := filepath.Join(dir, FileName(category))
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("writing headform: %v", err)
	}
}

func loadProfiles(t *testing.T) *niosh.ProfileSet {
	t.Helper()
	profiles, err := niosh.Load()
	if err != nil {
		t.Fatalf("loading profiles: %v", err)
	}
	return profiles
}

func TestAnalyzeDir(t *testing.T) {
	dir := t.TempDir()
	writeHeadform(t, dir, niosh.CategorySmall, smallHeadVertices)
	writeHeadform(t, dir, niosh.CategoryLarge, largeHeadVertices)

	refs, err := AnalyzeDir(dir, loadProfiles(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d", len(refs))
	}
	if refs[0].Category != niosh.CategorySmall || refs[1].Category != niosh.CategoryLarge {
		t.Fatalf("expected priority order small, large; got %v, %v", refs[0].Category, refs[1].Category)
	}

	small := refs[0]
	if small.Measurements.BizygomaticBreadth != 130 {
		t.Errorf("small breadth = %v, want 130", small.Measurements.BizygomaticBreadth)
	}
	if math.Abs(small.Measurements.MentonSellion-112) > 1e-9 {
		t.Errorf("small menton-sellion = %v, want 112", small.Measurements.MentonSellion)
	}
	if !small.BreadthInRange || !small.LengthInRange {
		t.Errorf("small headform should sit inside its profile ranges: %+v", small)
	}

	large := refs[1]
	if large.Measurements.BizygomaticBreadth != 150 {
		t.Errorf("large breadth = %v, want 150", large.Measurements.BizygomaticBreadth)
	}
	if !large.BreadthInRange || !large.LengthInRange {
		t.Errorf("large headform should sit inside its profile ranges: %+v", large)
	}
}

func TestAnalyzeDir_MissingCategories(t *testing.T) {
	dir := t.TempDir()
	writeHeadform(t, dir, niosh.CategoryMedium, smallHeadVertices)

	refs, err := AnalyzeDir(dir, loadProfiles(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := MissingCategories(refs)
	want := []niosh.Category{
		niosh.CategorySmall,
		niosh.CategoryLarge,
		niosh.CategoryLongNarrow,
		niosh.CategoryShortWide,
	}
	if len(missing) != len(want) {
		t.Fatalf("missing = %v, want %v", missing, want)
	}
	for i := range want {
		if missing[i] != want[i] {
			t.Fatalf("missing = %v, want %v", missing, want)
		}
	}
}

func TestAnalyzeDir_OutOfRangeFlags(t *testing.T) {
	// A small-sized head stored under the medium file name must be
	// flagged as outside the medium ranges.
	dir := t.TempDir()
	writeHeadform(t, dir, niosh.CategoryMedium, smallHeadVertices)

	refs, err := AnalyzeDir(dir, loadProfiles(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d", len(refs))
	}
	if refs[0].BreadthInRange {
		t.Error("breadth 130 should fall outside the medium range")
	}
	if refs[0].LengthInRange {
		t.Error("menton-sellion 112 should fall outside the medium range")
	}
}

func TestAnalyzeDir_EmptyDirectory(t *testing.T) {
	_, err := AnalyzeDir(t.TempDir(), loadProfiles(t))
	if err == nil {
		t.Fatal("expected error for directory without headforms")
	}
}

func TestWriteReferenceJSON(t *testing.T) {
	refs := []Reference{{
		Category: niosh.CategorySmall,
		Measurements: Measurements{
			BizygomaticBreadth: 130.17,
			MentonSellion:      112.04,
			FaceWidth:          140.55,
			FaceLength:         160.08,
			FaceDepth:          50.02,
			VertexCount:        6,
		},
	}}

	path := filepath.Join(t.TempDir(), DefaultReferenceFile)
	if err := WriteReferenceJSON(path, refs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var decoded map[string]Measurements
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding output: %v", err)
	}

	small, ok := decoded["small"]
	if !ok {
		t.Fatalf("expected a small entry, got %v", decoded)
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"bizygomatic_breadth", small.BizygomaticBreadth, 130.2},
		{"menton_sellion", small.MentonSellion, 112},
		{"face_width", small.FaceWidth, 140.6},
		{"face_length", small.FaceLength, 160.1},
		{"face_depth", small.FaceDepth, 50},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if small.VertexCount != 6 {
		t.Errorf("vertex_count = %d, want 6", small.VertexCount)
	}
}
