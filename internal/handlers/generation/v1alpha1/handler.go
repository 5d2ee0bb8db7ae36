// Package v1alpha1 handles the generation grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/orchestrators/generation"
)

// HandlerConfig holds dependencies for the generation handler
type HandlerConfig struct {
	GenerationService generation.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.GenerationService == nil {
		return errors.InvalidArgument("generation service is required")
	}
	return nil
}

// Handler implements the generation gRPC service
type Handler struct {
	generationService generation.Service
}

var _ GenerationServiceServer = (*Handler)(nil)

// NewHandler creates a new generation handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		generationService: cfg.GenerationService,
	}, nil
}

// GenerateSlot generates and stores one player's slot
func (h *Handler) GenerateSlot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := decodeGenerateSlot(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.generationService.GenerateSlot(ctx, &generation.GenerateSlotInput{
		RunID:   in.RunID,
		Seed:    in.Seed,
		Player:  in.Player,
		Options: in.Options,
		Check:   in.Check,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	m, err := generateSlotToMap(out)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(m)
}

// GetSlot returns a stored slot
func (h *Handler) GetSlot(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in := &GetSlotRequest{}
	if err := decodeRequest(req, in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.RunID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("run_id is required"))
	}
	if in.Player < 1 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("player must be at least 1"))
	}

	out, err := h.generationService.GetSlot(ctx, &generation.GetSlotInput{
		RunID:  in.RunID,
		Player: in.Player,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	m, err := slotToMap(out.Slot)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(m)
}

// ListSlots returns every stored slot of a run
func (h *Handler) ListSlots(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in := &ListSlotsRequest{}
	if err := decodeRequest(req, in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.RunID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("run_id is required"))
	}

	out, err := h.generationService.ListSlots(ctx, &generation.ListSlotsInput{RunID: in.RunID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	slots := make([]interface{}, 0, len(out.Slots))
	for _, s := range out.Slots {
		m, err := slotToMap(s)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		slots = append(slots, m)
	}
	return respond(map[string]interface{}{
		"run_id": in.RunID,
		"slots":  slots,
	})
}

// GenerateMultiworld generates every player of a run. Player failures are
// reported per result and do not fail the call.
func (h *Handler) GenerateMultiworld(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := decodeGenerateMultiworld(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.generationService.GenerateMultiworld(ctx, &generation.GenerateMultiworldInput{
		RunID:   in.RunID,
		Seed:    in.Seed,
		Players: in.Players,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	results := make([]interface{}, 0, len(out.Results))
	for _, r := range out.Results {
		entry := map[string]interface{}{"player": r.Player}
		if r.Err != nil {
			entry["error"] = map[string]interface{}{
				"code":    errors.GetCode(r.Err).String(),
				"message": r.Err.Error(),
			}
			results = append(results, entry)
			continue
		}

		m, err := generateSlotToMap(r.Output)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		entry["slot"] = m
		results = append(results, entry)
	}

	return respond(map[string]interface{}{
		"run_id":  out.RunID,
		"results": results,
		"failed":  len(out.Failed()),
	})
}

func respond(m map[string]interface{}) (*structpb.Struct, error) {
	st, err := toStruct(m)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return st, nil
}
