package world

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hardest-game/internal/core"
)

// Document is the serialized form of a World. The same field names are
// used for JSON, YAML and TOML.
type Document struct {
	Objects        []RectDoc   `json:"objects" yaml:"objects" toml:"objects"`
	PolyObjects    []PolyDoc   `json:"poly_objects" yaml:"poly_objects" toml:"poly_objects"`
	MovingObjects  []MovingDoc `json:"moving_objects" yaml:"moving_objects" toml:"moving_objects"`
	SpeedIncreases []PortalDoc `json:"speed_increases" yaml:"speed_increases" toml:"speed_increases"`
}

// PointDoc is a serialized vertex or endpoint.
type PointDoc struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// RectDoc is a serialized static hitbox.
type RectDoc struct {
	X      float64 `json:"x" yaml:"x" toml:"x"`
	Y      float64 `json:"y" yaml:"y" toml:"y"`
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// PolyDoc is a serialized polygon hitbox.
type PolyDoc struct {
	Points []PointDoc `json:"points" yaml:"points" toml:"points"`
}

// MovingDoc is a serialized moving object. Only the path is stored, not
// the current position.
type MovingDoc struct {
	From   PointDoc `json:"from" yaml:"from" toml:"from"`
	To     PointDoc `json:"to" yaml:"to" toml:"to"`
	Width  float64  `json:"width" yaml:"width" toml:"width"`
	Height float64  `json:"height" yaml:"height" toml:"height"`
	Speed  float64  `json:"speed" yaml:"speed" toml:"speed"`
}

// PortalDoc is a serialized speed portal.
type PortalDoc struct {
	X           float64 `json:"x" yaml:"x" toml:"x"`
	Y           float64 `json:"y" yaml:"y" toml:"y"`
	SpeedChange float64 `json:"speed_change" yaml:"speed_change" toml:"speed_change"`
}

func (p PointDoc) vec() core.Vec2 {
	return core.V(p.X, p.Y)
}

func pointDoc(v core.Vec2) PointDoc {
	return PointDoc{X: v.X, Y: v.Y}
}

// FromDocument builds a World from doc. Any invalid entry fails the whole
// load; nothing is substituted.
func FromDocument(doc Document) (*World, error) {
	w := &World{
		Objects:       make([]Hitbox, 0, len(doc.Objects)),
		PolyObjects:   make([]PolygonHitbox, 0, len(doc.PolyObjects)),
		MovingObjects: make([]*MovingObject, 0, len(doc.MovingObjects)),
		Portals:       make([]SpeedPortal, 0, len(doc.SpeedIncreases)),
	}

	for i, o := range doc.Objects {
		path := fmt.Sprintf("objects[%d]", i)
		if err := checkFinite(path, o.X, o.Y, o.Width, o.Height); err != nil {
			return nil, err
		}
		if err := checkSize(path, o.Width, o.Height); err != nil {
			return nil, err
		}
		w.Objects = append(w.Objects, NewHitbox(o.X, o.Y, o.Width, o.Height))
	}

	for i, o := range doc.PolyObjects {
		if len(o.Points) < 3 {
			return nil, invalid(CodeDegeneratePolygon, fmt.Sprintf("poly_objects[%d].points", i),
				"polygon needs at least 3 points, got %d", len(o.Points))
		}
		pts := make([]core.Vec2, len(o.Points))
		for j, p := range o.Points {
			if err := checkFinite(fmt.Sprintf("poly_objects[%d].points[%d]", i, j), p.X, p.Y); err != nil {
				return nil, err
			}
			pts[j] = p.vec()
		}
		w.PolyObjects = append(w.PolyObjects, PolygonHitbox{Points: pts})
	}

	for i, o := range doc.MovingObjects {
		path := fmt.Sprintf("moving_objects[%d]", i)
		if err := checkFinite(path, o.From.X, o.From.Y, o.To.X, o.To.Y, o.Width, o.Height, o.Speed); err != nil {
			return nil, err
		}
		if err := checkSize(path, o.Width, o.Height); err != nil {
			return nil, err
		}
		if o.Speed <= 0 {
			return nil, invalid(CodeBadSpeed, join(path, "speed"), "speed must be positive, got %g", o.Speed)
		}
		m, err := NewMovingObject(o.From.vec(), o.To.vec(), o.Width, o.Height, o.Speed)
		if err != nil {
			return nil, invalid(CodeDegeneratePath, path, "%v", err)
		}
		w.MovingObjects = append(w.MovingObjects, m)
	}

	for i, o := range doc.SpeedIncreases {
		if err := checkFinite(fmt.Sprintf("speed_increases[%d]", i), o.X, o.Y, o.SpeedChange); err != nil {
			return nil, err
		}
		w.Portals = append(w.Portals, NewSpeedPortal(o.X, o.Y, o.SpeedChange))
	}

	return w, nil
}

func checkFinite(path string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid(CodeNonFinite, path, "expected finite numbers, got %v", v)
		}
	}
	return nil
}

func checkSize(path string, width, height float64) error {
	if width <= 0 || height <= 0 {
		return invalid(CodeBadSize, path, "width and height must be positive, got %gx%g", width, height)
	}
	return nil
}

// ToDocument serializes w. Moving objects are written by path and portals by
// position, so FromDocument(w.ToDocument()) rebuilds w's initial layout.
func (w *World) ToDocument() Document {
	doc := Document{
		Objects:        make([]RectDoc, 0, len(w.Objects)),
		PolyObjects:    make([]PolyDoc, 0, len(w.PolyObjects)),
		MovingObjects:  make([]MovingDoc, 0, len(w.MovingObjects)),
		SpeedIncreases: make([]PortalDoc, 0, len(w.Portals)),
	}

	for _, o := range w.Objects {
		doc.Objects = append(doc.Objects, RectDoc{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height})
	}
	for _, o := range w.PolyObjects {
		pts := make([]PointDoc, len(o.Points))
		for i, p := range o.Points {
			pts[i] = pointDoc(p)
		}
		doc.PolyObjects = append(doc.PolyObjects, PolyDoc{Points: pts})
	}
	for _, m := range w.MovingObjects {
		doc.MovingObjects = append(doc.MovingObjects, MovingDoc{
			From:   pointDoc(m.From),
			To:     pointDoc(m.To),
			Width:  m.Hitbox.Width,
			Height: m.Hitbox.Height,
			Speed:  m.Speed,
		})
	}
	for _, p := range w.Portals {
		doc.SpeedIncreases = append(doc.SpeedIncreases, PortalDoc{
			X:           p.Hitbox.X,
			Y:           p.Hitbox.Y,
			SpeedChange: p.SpeedChange,
		})
	}
	return doc
}
