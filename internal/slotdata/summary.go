// Package slotdata packages one player's options and generated topology
// into the record the host forwards to the game client.
package slotdata

import (
	"encoding/json"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/options"
	"github.com/KirkDiggler/ow-rando/internal/topology"
)

// Version lets the client detect payloads it cannot parse.
const Version = "0.2.0"

// Summary is the flat client payload.
type Summary struct {
	Goal            options.Goal         `json:"goal"`
	DeathLink       bool                 `json:"death_link"`
	Logsanity       bool                 `json:"logsanity"`
	EotuCoordinates topology.Coordinates `json:"eotu_coordinates"`
	DBLayout        topology.RoomGraph   `json:"db_layout"`
	APWorldVersion  string               `json:"apworld_version"`
}

// Build assembles a summary. It performs no validation.
func Build(opts options.Options, coords topology.Coordinates, layout topology.RoomGraph) Summary {
	return Summary{
		Goal:            opts.Goal,
		DeathLink:       opts.DeathLink,
		Logsanity:       opts.Logsanity,
		EotuCoordinates: coords,
		DBLayout:        layout,
		APWorldVersion:  Version,
	}
}

// ToMap renders the summary as the generic map the host serializes.
func (s Summary) ToMap() (map[string]interface{}, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal slot data")
	}
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal slot data")
	}
	return out, nil
}

// ToStruct converts the summary into a protobuf Struct.
func (s Summary) ToStruct() (*structpb.Struct, error) {
	m, err := s.ToMap()
	if err != nil {
		return nil, err
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build slot data struct")
	}
	return st, nil
}

// FromStruct is the inverse of ToStruct.
func FromStruct(st *structpb.Struct) (Summary, error) {
	if st == nil {
		return Summary{}, errors.InvalidArgument("slot data is required")
	}
	b, err := json.Marshal(st.AsMap())
	if err != nil {
		return Summary{}, errors.Wrap(err, "failed to marshal slot data struct")
	}
	var s Summary
	if err := json.Unmarshal(b, &s); err != nil {
		return Summary{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode slot data")
	}
	return s, nil
}
