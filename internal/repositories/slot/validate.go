package slot

import (
	"github.com/KirkDiggler/ow-rando/internal/errors"
)

const (
	errInputNil     = "input is required"
	errSlotNil      = "slot cannot be nil"
	errRunIDEmpty   = "run ID cannot be empty"
	errPlayerRange  = "player must be at least 1"
	errSlotNotFound = "slot not found"
)

func validateSave(input *SaveInput) error {
	if input == nil {
		return errors.InvalidArgument(errInputNil)
	}
	if input.Slot == nil {
		return errors.InvalidArgument(errSlotNil)
	}
	return validateKey(input.Slot.RunID, input.Slot.Player)
}

func validateGet(input *GetInput) error {
	if input == nil {
		return errors.InvalidArgument(errInputNil)
	}
	return validateKey(input.RunID, input.Player)
}

func validateRun(runID string) error {
	if runID == "" {
		return errors.InvalidArgument(errRunIDEmpty)
	}
	return nil
}

func validateKey(runID string, player int) error {
	if err := validateRun(runID); err != nil {
		return err
	}
	if player < 1 {
		return errors.InvalidArgument(errPlayerRange)
	}
	return nil
}

func copySlot(s *Slot) *Slot {
	c := *s
	return &c
}
