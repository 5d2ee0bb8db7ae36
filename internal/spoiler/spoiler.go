// Package spoiler writes the human-readable description of randomized
// topology into the host's spoiler log.
package spoiler

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/topology"
)

const (
	coordinatesHeader = "\nRandomized Eye of the Universe Coordinates" +
		"\n0-5 are the points of the hexagon, starting at the rightmost point and going counterclockwise" +
		"\n\n"

	layoutHeader = "\nRandomized Dark Bramble Layout" +
		"\nRoom names are (H)ub, (E)scapePod, (A)nglerNest, (P)ioneer, E(X)itOnly, (V)essel, (C)luster, (S)mallNest" +
		"\n\n"
)

// Write emits a section for each randomized topology. Vanilla topology
// writes nothing.
func Write(w io.Writer, coords topology.Coordinates, layout topology.RoomGraph) error {
	if !coords.IsVanilla() {
		if err := writeCoordinates(w, coords); err != nil {
			return err
		}
	}
	if !layout.IsVanilla() {
		if err := writeLayout(w, layout); err != nil {
			return err
		}
	}
	return nil
}

// String is Write into a string.
func String(coords topology.Coordinates, layout topology.RoomGraph) (string, error) {
	var sb strings.Builder
	if err := Write(&sb, coords, layout); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeCoordinates(w io.Writer, coords topology.Coordinates) error {
	lines := make([]string, 0, len(coords.Points))
	for _, p := range coords.Points {
		b, err := json.Marshal(p)
		if err != nil {
			return errors.Wrap(err, "failed to encode coordinate")
		}
		lines = append(lines, string(b))
	}
	if _, err := fmt.Fprintf(w, "%s%s\n\n", coordinatesHeader, strings.Join(lines, "\n")); err != nil {
		return errors.Wrap(err, "failed to write coordinates spoiler")
	}
	return nil
}

func writeLayout(w io.Writer, layout topology.RoomGraph) error {
	body := strings.ReplaceAll(layout.Encode(), "|", "\n")
	if _, err := fmt.Fprintf(w, "%s%s\n\n", layoutHeader, body); err != nil {
		return errors.Wrap(err, "failed to write dark bramble spoiler")
	}
	return nil
}
