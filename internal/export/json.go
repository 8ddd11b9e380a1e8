package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/crtsim/internal/engine"
)

// Document is the JSON export of one or more tracks together with the
// geometry and controls that produced them.
type Document struct {
	Geometry GeometryJSON   `json:"geometry"`
	Params   ParamsJSON     `json:"params"`
	Tracks   []engine.Track `json:"tracks"`
}

type GeometryJSON struct {
	TubeLength       float64 `json:"tube_length"`
	TubeHeight       float64 `json:"tube_height"`
	SourceX          float64 `json:"source_x"`
	DeflectionStart  float64 `json:"deflection_start"`
	DeflectionLength float64 `json:"deflection_length"`
	PlateSpacing     float64 `json:"plate_spacing"`
	DetectionX       float64 `json:"detection_x"`
}

type ParamsJSON struct {
	Mode                  engine.Mode `json:"mode"`
	AcceleratingPotential float64     `json:"accelerating_potential"`
	DeflectionPotential   float64     `json:"deflection_potential"`
	LateralOffset         float64     `json:"lateral_offset"`
}

func NewDocument(g engine.Geometry, p engine.Params, tracks []engine.Track) Document {
	return Document{
		Geometry: GeometryJSON{
			TubeLength:       g.TubeLength,
			TubeHeight:       g.TubeHeight,
			SourceX:          g.SourceX,
			DeflectionStart:  g.DeflectionStart,
			DeflectionLength: g.DeflectionLength,
			PlateSpacing:     g.PlateSpacing,
			DetectionX:       g.DetectionX,
		},
		Params: ParamsJSON{
			Mode:                  p.Mode,
			AcceleratingPotential: p.AcceleratingPotential,
			DeflectionPotential:   p.DeflectionPotential,
			LateralOffset:         p.LateralOffset,
		},
		Tracks: tracks,
	}
}

// WriteJSON encodes an indented Document to w.
func WriteJSON(w io.Writer, g engine.Geometry, p engine.Params, tracks []engine.Track) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(g, p, tracks))
}
