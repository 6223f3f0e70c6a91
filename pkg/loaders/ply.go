package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrInvalidPLY is returned for malformed or unsupported PLY input
var ErrInvalidPLY = errors.New("invalid PLY data")

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element block declared in the header, such as "vertex" or "face"
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the mesh data loaded from a PLY file
type PLYData struct {
	Vertices  []core.Vec3     // Vertex positions (x, y, z)
	Faces     []int           // Triangle indices (3 per triangle), polygons fan-triangulated
	TexCoords []core.Vec2     // Per-vertex texture coordinates, empty if not present
	Colors    []core.Spectrum // Per-vertex colors in [0,1], empty if not present
}

// element returns the named element, if declared
func (h *PLYHeader) element(name string) (PLYElement, bool) {
	for _, e := range h.Elements {
		if e.Name == name {
			return e, true
		}
	}
	return PLYElement{}, false
}

// propertyIndex returns the index of the first property with one of the given names, or -1
func (e PLYElement) propertyIndex(names ...string) int {
	for i, p := range e.Properties {
		for _, name := range names {
			if p.Name == name {
				return i
			}
		}
	}
	return -1
}

// LoadPLY loads a PLY file and returns its vertex and face data
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// LoadPLYMesh loads a PLY file as a mesh. baseColor may be nil.
func LoadPLYMesh(filename string, baseColor material.ColorSource) (*geometry.Mesh, error) {
	data, err := LoadPLY(filename)
	if err != nil {
		return nil, err
	}
	mesh, err := geometry.NewMesh(data.Vertices, data.Faces, data.TexCoords, baseColor)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// ReadPLY parses PLY data in ascii, binary_little_endian, or binary_big_endian format
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &asciiPLYReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryPLYReader{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryPLYReader{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidPLY, header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		var visit func(record [][]float64) error
		switch element.Name {
		case "vertex":
			visit = vertexVisitor(element, data)
		case "face":
			visit = faceVisitor(element, data)
		default:
			visit = func([][]float64) error { return nil }
		}

		if err := readElement(values, element, visit); err != nil {
			return nil, fmt.Errorf("failed to read %s data: %w", element.Name, err)
		}
	}

	return data, nil
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	first, err := readHeaderLine(reader)
	if err != nil || first != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrInvalidPLY)
	}

	for {
		line, err := readHeaderLine(reader)
		if err != nil {
			return nil, fmt.Errorf("%w: header ended without end_header", ErrInvalidPLY)
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: bad format line %q", ErrInvalidPLY, line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: bad element line %q", ErrInvalidPLY, line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrInvalidPLY, parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("%w: property before any element", ErrInvalidPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Properties = append(current.Properties, prop)
		default:
			return nil, fmt.Errorf("%w: unknown header keyword %q", ErrInvalidPLY, parts[0])
		}
	}

	if header.Format == "" {
		return nil, fmt.Errorf("%w: missing format line", ErrInvalidPLY)
	}
	return header, nil
}

func readHeaderLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("%w: invalid property definition", ErrInvalidPLY)
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("%w: invalid list property definition", ErrInvalidPLY)
		}
		prop := PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}
		if getTypeSize(prop.ListType) == 0 || getTypeSize(prop.DataType) == 0 {
			return PLYProperty{}, fmt.Errorf("%w: unsupported list types %s %s", ErrInvalidPLY, prop.ListType, prop.DataType)
		}
		return prop, nil
	}

	prop := PLYProperty{Type: parts[0], Name: parts[1]}
	if getTypeSize(prop.Type) == 0 {
		return PLYProperty{}, fmt.Errorf("%w: unsupported data type %s", ErrInvalidPLY, prop.Type)
	}
	return prop, nil
}

// readElement reads every record of an element. record[i] holds the values of
// property i: one value for scalars, the list entries for list properties.
func readElement(values plyValueReader, element PLYElement, visit func(record [][]float64) error) error {
	record := make([][]float64, len(element.Properties))

	for n := 0; n < element.Count; n++ {
		for i, prop := range element.Properties {
			if !prop.IsList {
				v, err := values.readValue(prop.Type)
				if err != nil {
					return fmt.Errorf("record %d, property %s: %w", n, prop.Name, err)
				}
				record[i] = append(record[i][:0], v)
				continue
			}

			count, err := values.readValue(prop.ListType)
			if err != nil {
				return fmt.Errorf("record %d, list %s: %w", n, prop.Name, err)
			}
			if count < 0 {
				return fmt.Errorf("%w: negative list length at record %d", ErrInvalidPLY, n)
			}
			record[i] = record[i][:0]
			for k := 0; k < int(count); k++ {
				v, err := values.readValue(prop.DataType)
				if err != nil {
					return fmt.Errorf("record %d, list %s: %w", n, prop.Name, err)
				}
				record[i] = append(record[i], v)
			}
		}

		if err := visit(record); err != nil {
			return fmt.Errorf("record %d: %w", n, err)
		}
	}
	return nil
}

// vertexVisitor collects positions, texture coordinates, and colors
func vertexVisitor(element PLYElement, data *PLYData) func([][]float64) error {
	x, y, z := element.propertyIndex("x"), element.propertyIndex("y"), element.propertyIndex("z")
	u := element.propertyIndex("u", "s", "texture_u")
	v := element.propertyIndex("v", "t", "texture_v")
	r := element.propertyIndex("red", "r")
	g := element.propertyIndex("green", "g")
	b := element.propertyIndex("blue", "b")

	hasTexCoords := u >= 0 && v >= 0
	hasColors := r >= 0 && g >= 0 && b >= 0
	colorScale := 1.0
	if hasColors && strings.Contains(element.Properties[r].Type, "char") {
		colorScale = 1.0 / 255.0
	}

	return func(record [][]float64) error {
		if x < 0 || y < 0 || z < 0 {
			return fmt.Errorf("%w: vertex without x, y, z", ErrInvalidPLY)
		}
		data.Vertices = append(data.Vertices, core.NewVec3(record[x][0], record[y][0], record[z][0]))
		if hasTexCoords {
			data.TexCoords = append(data.TexCoords, core.NewVec2(record[u][0], record[v][0]))
		}
		if hasColors {
			data.Colors = append(data.Colors, core.NewSpectrum(record[r][0], record[g][0], record[b][0]).Scale(colorScale))
		}
		return nil
	}
}

// faceVisitor collects triangle indices, fan-triangulating polygons
func faceVisitor(element PLYElement, data *PLYData) func([][]float64) error {
	indices := element.propertyIndex("vertex_indices", "vertex_index")

	return func(record [][]float64) error {
		if indices < 0 || !element.Properties[indices].IsList {
			return fmt.Errorf("%w: face without vertex_indices list", ErrInvalidPLY)
		}
		polygon := record[indices]
		if len(polygon) < 3 {
			return fmt.Errorf("%w: face with %d vertices", ErrInvalidPLY, len(polygon))
		}
		for k := 1; k+1 < len(polygon); k++ {
			data.Faces = append(data.Faces, int(polygon[0]), int(polygon[k]), int(polygon[k+1]))
		}
		return nil
	}
}

// plyValueReader decodes one value of a PLY data type as float64
type plyValueReader interface {
	readValue(dataType string) (float64, error)
}

type binaryPLYReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (br *binaryPLYReader) readValue(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("%w: unsupported data type %s", ErrInvalidPLY, dataType)
	}
	b := br.buf[:size]
	if _, err := io.ReadFull(br.r, b); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(br.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(br.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(br.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(br.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(br.order.Uint32(b))), nil
	default: // double, float64
		return math.Float64frombits(br.order.Uint64(b)), nil
	}
}

type asciiPLYReader struct {
	scanner *bufio.Scanner
}

func (ar *asciiPLYReader) readValue(dataType string) (float64, error) {
	if !ar.scanner.Scan() {
		if err := ar.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	v, err := strconv.ParseFloat(ar.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPLY, err)
	}
	return v, nil
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}
