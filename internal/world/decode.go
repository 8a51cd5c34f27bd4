package world

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a world document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat parses a format name as given on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown world format %q (want json, yaml or toml)", s)
	}
}

// FormatFromPath picks a format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Decode parses a world document. Every field is required and must have
// the right type; the first problem found is returned as a ValidationError.
//
// A JSON document may also arrive as a JSON string holding the encoded
// object, which is unwrapped once.
func Decode(data []byte, format Format) (Document, error) {
	var tree any
	switch format {
	case FormatJSON, "":
		if err := json.Unmarshal(data, &tree); err != nil {
			return Document{}, invalid(CodeParse, "", "%v", err)
		}
		if inner, ok := tree.(string); ok {
			tree = nil
			if err := json.Unmarshal([]byte(inner), &tree); err != nil {
				return Document{}, invalid(CodeParse, "", "embedded document: %v", err)
			}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return Document{}, invalid(CodeParse, "", "%v", err)
		}
	case FormatTOML:
		var m map[string]any
		if _, err := toml.Decode(string(data), &m); err != nil {
			return Document{}, invalid(CodeParse, "", "%v", err)
		}
		tree = m
	default:
		return Document{}, fmt.Errorf("unknown world format %q", format)
	}
	return decodeDocument(tree)
}

// Parse decodes and validates a document into a ready World.
func Parse(data []byte, format Format) (*World, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// LoadFile reads a world document from path; the format follows the extension.
func LoadFile(path string) (*World, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// LoadDocument reads and validates the document at path without keeping
// the built World.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read world %s: %w", path, err)
	}
	doc, err := Decode(data, FormatFromPath(path))
	if err == nil {
		_, err = FromDocument(doc)
	}
	if err != nil {
		return Document{}, fmt.Errorf("load world %s: %w", path, err)
	}
	return doc, nil
}

// Encode writes doc in the given format.
func Encode(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown world format %q", format)
	}
}

// decodeDocument walks the generic tree produced by any of the decoders.
func decodeDocument(tree any) (Document, error) {
	root, err := asObject(tree, "")
	if err != nil {
		return Document{}, err
	}

	var doc Document

	objects, err := listField(root, "objects", "")
	if err != nil {
		return Document{}, err
	}
	for i, v := range objects {
		path := index("objects", i)
		r, err := decodeRect(v, path)
		if err != nil {
			return Document{}, err
		}
		doc.Objects = append(doc.Objects, r)
	}

	polys, err := listField(root, "poly_objects", "")
	if err != nil {
		return Document{}, err
	}
	for i, v := range polys {
		path := index("poly_objects", i)
		obj, err := asObject(v, path)
		if err != nil {
			return Document{}, err
		}
		points, err := listField(obj, "points", path)
		if err != nil {
			return Document{}, err
		}
		poly := PolyDoc{Points: make([]PointDoc, 0, len(points))}
		for j, pv := range points {
			pt, err := decodePoint(pv, index(join(path, "points"), j))
			if err != nil {
				return Document{}, err
			}
			poly.Points = append(poly.Points, pt)
		}
		doc.PolyObjects = append(doc.PolyObjects, poly)
	}

	moving, err := listField(root, "moving_objects", "")
	if err != nil {
		return Document{}, err
	}
	for i, v := range moving {
		m, err := decodeMoving(v, index("moving_objects", i))
		if err != nil {
			return Document{}, err
		}
		doc.MovingObjects = append(doc.MovingObjects, m)
	}

	portals, err := listField(root, "speed_increases", "")
	if err != nil {
		return Document{}, err
	}
	for i, v := range portals {
		path := index("speed_increases", i)
		obj, err := asObject(v, path)
		if err != nil {
			return Document{}, err
		}
		var p PortalDoc
		if err := numbers(obj, path, map[string]*float64{
			"x":            &p.X,
			"y":            &p.Y,
			"speed_change": &p.SpeedChange,
		}); err != nil {
			return Document{}, err
		}
		doc.SpeedIncreases = append(doc.SpeedIncreases, p)
	}

	return doc, nil
}

func decodeRect(v any, path string) (RectDoc, error) {
	obj, err := asObject(v, path)
	if err != nil {
		return RectDoc{}, err
	}
	var r RectDoc
	err = numbers(obj, path, map[string]*float64{
		"x":      &r.X,
		"y":      &r.Y,
		"width":  &r.Width,
		"height": &r.Height,
	})
	return r, err
}

func decodePoint(v any, path string) (PointDoc, error) {
	obj, err := asObject(v, path)
	if err != nil {
		return PointDoc{}, err
	}
	var p PointDoc
	err = numbers(obj, path, map[string]*float64{"x": &p.X, "y": &p.Y})
	return p, err
}

func decodeMoving(v any, path string) (MovingDoc, error) {
	obj, err := asObject(v, path)
	if err != nil {
		return MovingDoc{}, err
	}
	var m MovingDoc
	for _, end := range []struct {
		key string
		dst *PointDoc
	}{{"from", &m.From}, {"to", &m.To}} {
		raw, err := field(obj, end.key, path)
		if err != nil {
			return MovingDoc{}, err
		}
		if *end.dst, err = decodePoint(raw, join(path, end.key)); err != nil {
			return MovingDoc{}, err
		}
	}
	err = numbers(obj, path, map[string]*float64{
		"width":  &m.Width,
		"height": &m.Height,
		"speed":  &m.Speed,
	})
	return m, err
}

// numbers fills every destination from the matching key of obj. Keys are
// visited in sorted order so the reported error is stable.
func numbers(obj map[string]any, path string, dst map[string]*float64) error {
	keys := make([]string, 0, len(dst))
	for k := range dst {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		raw, err := field(obj, k, path)
		if err != nil {
			return err
		}
		n, err := asNumber(raw, join(path, k))
		if err != nil {
			return err
		}
		*dst[k] = n
	}
	return nil
}

func field(obj map[string]any, key, path string) (any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, invalid(CodeMissingField, join(path, key), "required field is missing")
	}
	return v, nil
}

func listField(obj map[string]any, key, path string) ([]any, error) {
	v, err := field(obj, key, path)
	if err != nil {
		return nil, err
	}
	switch l := v.(type) {
	case []any:
		return l, nil
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, nil
	default:
		return nil, invalid(CodeWrongType, join(path, key), "expected array, got %s", typeName(v))
	}
}

func asObject(v any, path string) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	return nil, invalid(CodeWrongType, path, "expected object, got %s", typeName(v))
}

func asNumber(v any, path string) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0, invalid(CodeWrongType, path, "expected number, got %s", typeName(v))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid(CodeNonFinite, path, "expected a finite number, got %v", f)
	}
	return f, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case map[string]any:
		return "object"
	case []any, []map[string]any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
