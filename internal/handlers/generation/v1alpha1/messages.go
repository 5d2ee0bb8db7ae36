package v1alpha1

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/options"
	"github.com/KirkDiggler/ow-rando/internal/orchestrators/generation"
	"github.com/KirkDiggler/ow-rando/internal/repositories/slot"
)

// maxExactSeed is the largest seed a Struct number carries without loss.
const maxExactSeed = 1 << 53

// GenerateSlotRequest is the GenerateSlot payload. Options left out of the
// request keep their defaults.
type GenerateSlotRequest struct {
	RunID   string          `json:"run_id,omitempty"`
	Seed    int64           `json:"seed"`
	Player  int             `json:"player"`
	Options options.Options `json:"options"`
	Check   bool            `json:"check,omitempty"`
}

// GetSlotRequest is the GetSlot payload.
type GetSlotRequest struct {
	RunID  string `json:"run_id"`
	Player int    `json:"player"`
}

// ListSlotsRequest is the ListSlots payload.
type ListSlotsRequest struct {
	RunID string `json:"run_id"`
}

// GenerateMultiworldRequest is the GenerateMultiworld payload.
type GenerateMultiworldRequest struct {
	RunID   string            `json:"run_id,omitempty"`
	Seed    int64             `json:"seed"`
	Players []options.Options `json:"players"`
}

// decodeRequest copies a Struct into a typed request, rejecting unknown
// fields.
func decodeRequest(st *structpb.Struct, out interface{}) error {
	if st == nil {
		return errors.InvalidArgument("request is required")
	}
	raw, err := json.Marshal(st.AsMap())
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read request")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request")
	}
	return nil
}

func decodeGenerateSlot(st *structpb.Struct) (*GenerateSlotRequest, error) {
	req := &GenerateSlotRequest{Options: options.Default()}
	if err := decodeRequest(st, req); err != nil {
		return nil, err
	}
	if err := validateSeed(req.Seed); err != nil {
		return nil, err
	}
	if req.Player < 1 {
		return nil, errors.InvalidArgument("player must be at least 1")
	}
	return req, nil
}

func decodeGenerateMultiworld(st *structpb.Struct) (*GenerateMultiworldRequest, error) {
	var wire struct {
		RunID   string            `json:"run_id,omitempty"`
		Seed    int64             `json:"seed"`
		Players []json.RawMessage `json:"players"`
	}
	if err := decodeRequest(st, &wire); err != nil {
		return nil, err
	}
	if err := validateSeed(wire.Seed); err != nil {
		return nil, err
	}
	if len(wire.Players) == 0 {
		return nil, errors.InvalidArgument("players is required")
	}

	req := &GenerateMultiworldRequest{
		RunID:   wire.RunID,
		Seed:    wire.Seed,
		Players: make([]options.Options, len(wire.Players)),
	}
	for i, raw := range wire.Players {
		opts := options.Default()
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&opts); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid player options").
				WithMeta(errors.MetaPlayer, i+1)
		}
		req.Players[i] = opts
	}
	return req, nil
}

func validateSeed(seed int64) error {
	if seed > maxExactSeed || seed < -maxExactSeed {
		return errors.InvalidArgumentf("seed must be within +/-%d", int64(maxExactSeed))
	}
	return nil
}

func slotToMap(s *slot.Slot) (map[string]interface{}, error) {
	summary, err := s.Summary.ToMap()
	if err != nil {
		return nil, err
	}

	m := map[string]interface{}{
		"run_id":     s.RunID,
		"player":     s.Player,
		"seed":       s.Seed,
		"slot_data":  summary,
		"created_at": s.CreatedAt.UTC().Format(time.RFC3339),
	}
	if s.Spoiler != "" {
		m["spoiler"] = s.Spoiler
	}
	if !s.ExpiresAt.IsZero() {
		m["expires_at"] = s.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return m, nil
}

func generateSlotToMap(out *generation.GenerateSlotOutput) (map[string]interface{}, error) {
	m, err := slotToMap(out.Slot)
	if err != nil {
		return nil, err
	}

	m["completion_rule"] = out.CompletionRule.String()
	m["item_count"] = len(out.ItemPool)
	if out.Graph != nil {
		m["location_count"] = out.Graph.PlaceableLocations()
	}
	if out.Unreachable != nil {
		m["unreachable"] = entityRefs(out.Unreachable)
	}
	return m, nil
}

func entityRefs(list []core.Entity) []map[string]string {
	refs := make([]map[string]string, 0, len(list))
	for _, e := range list {
		refs = append(refs, map[string]string{"type": e.GetType(), "id": e.GetID()})
	}
	return refs
}

// toStruct builds a Struct from a map of JSON-compatible values. structpb
// only takes a fixed set of Go types, so values go through a JSON round
// trip first.
func toStruct(m map[string]interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	st, err := structpb.NewStruct(generic)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return st, nil
}

// EncodeRequest turns a typed request into the Struct the service expects.
func EncodeRequest(req interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request")
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(err, "failed to encode request")
	}
	return toStruct(m)
}
