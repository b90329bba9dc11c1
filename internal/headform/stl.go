// Package headform analyzes NIOSH reference headform meshes. The five
// digital headforms ship as ASCII STL files; this package extracts the
// facial reference dimensions the fitting tools compare against.
package headform

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Vertex is one mesh vertex in millimetres. X spans left-right, Y runs
// front-back, Z runs bottom-top.
type Vertex struct {
	X, Y, Z float64
}

// Mesh holds the vertices of one STL solid. Facet topology is irrelevant
// for extent measurements, so only vertices are kept.
type Mesh struct {
	Vertices []Vertex
}

// ParseFile reads an ASCII STL headform from disk.
func ParseFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening headform: %w", err)
	}
	defer f.Close()

	mesh, err := ParseASCII(f)
	if err != nil {
		return nil, fmt.Errorf("parsing headform %s: %w", path, err)
	}
	return mesh, nil
}

// ParseASCII reads an ASCII STL stream, collecting every vertex line.
// Lines that are not "vertex x y z" are ignored, matching how lenient
// mesh tools emit these files.
func ParseASCII(r io.Reader) (*Mesh, error) {
	var mesh Mesh

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "vertex") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			continue
		}

		var coords [3]float64
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad vertex coordinate %q: %w", lineNo, field, err)
			}
			coords[i] = v
		}
		mesh.Vertices = append(mesh.Vertices, Vertex{X: coords[0], Y: coords[1], Z: coords[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading STL: %w", err)
	}

	if len(mesh.Vertices) == 0 {
		return nil, errors.New("no vertices found")
	}
	return &mesh, nil
}

// Measurements are the reference dimensions extracted from one headform.
type Measurements struct {
	BizygomaticBreadth float64 `json:"bizygomatic_breadth"`
	MentonSellion      float64 `json:"menton_sellion"`
	FaceWidth          float64 `json:"face_width"`
	FaceLength         float64 `json:"face_length"`
	FaceDepth          float64 `json:"face_depth"`
	VertexCount        int     `json:"vertex_count"`
}

// mentonSellionRatio approximates the chin-to-nose-bridge span from total
// face length on a full headform.
const mentonSellionRatio = 0.7

// Measure extracts the reference dimensions from the mesh. The
// bizygomatic breadth is the X extent inside the middle-third height band
// where the cheekbones sit; a band with no vertices falls back to the
// full face width.
func (m *Mesh) Measure() Measurements {
	min := m.Vertices[0]
	max := m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}

	faceWidth := max.X - min.X
	faceLength := max.Z - min.Z
	faceDepth := max.Y - min.Y

	midZ := (min.Z + max.Z) / 2
	band := faceLength / 6

	breadth := faceWidth
	cheekMin, cheekMax := math.Inf(1), math.Inf(-1)
	found := false
	for _, v := range m.Vertices {
		if v.Z > midZ-band && v.Z < midZ+band {
			found = true
			cheekMin = math.Min(cheekMin, v.X)
			cheekMax = math.Max(cheekMax, v.X)
		}
	}
	if found {
		breadth = cheekMax - cheekMin
	}

	return Measurements{
		BizygomaticBreadth: breadth,
		MentonSellion:      faceLength * mentonSellionRatio,
		FaceWidth:          faceWidth,
		FaceLength:         faceLength,
		FaceDepth:          faceDepth,
		VertexCount:        len(m.Vertices),
	}
}
