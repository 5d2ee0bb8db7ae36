package topology

import (
	"encoding/json"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/ow-rando/internal/errors"
)

const (
	// HexagonPoints is the number of points on the coordinate hexagon,
	// numbered counter-clockwise from the rightmost point.
	HexagonPoints = 6

	// CoordinateLength is the number of points in one arrangement.
	CoordinateLength = 3
)

// CanonicalCoordinates is the unmodified arrangement.
var CanonicalCoordinates = [CoordinateLength]int{0, 3, 1}

// Coordinates is an ordered arrangement of distinct hexagon points. The zero
// value is the vanilla sentinel.
type Coordinates struct {
	Randomized bool
	Points     [CoordinateLength]int
}

// VanillaCoordinates returns the unchanged sentinel.
func VanillaCoordinates() Coordinates {
	return Coordinates{Points: CanonicalCoordinates}
}

// IsVanilla reports whether the arrangement is the unchanged sentinel.
func (c Coordinates) IsVanilla() bool {
	return !c.Randomized
}

// MarshalJSON writes "vanilla" or the point array.
func (c Coordinates) MarshalJSON() ([]byte, error) {
	if c.IsVanilla() {
		return json.Marshal(Vanilla)
	}
	return json.Marshal(c.Points)
}

// UnmarshalJSON accepts either form written by MarshalJSON.
func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err == nil {
		if sentinel != Vanilla {
			return errors.InvalidArgumentf("unknown coordinates sentinel %q", sentinel)
		}
		*c = VanillaCoordinates()
		return nil
	}

	var points [CoordinateLength]int
	if err := json.Unmarshal(data, &points); err != nil {
		return errors.Wrap(err, "failed to decode coordinates")
	}
	decoded := Coordinates{Randomized: true, Points: points}
	if err := ValidateCoordinates(decoded); err != nil {
		return err
	}
	*c = decoded
	return nil
}

// GenerateCoordinates draws an arrangement that is not equivalent to the
// canonical one under the hexagon's rotations and reflections.
func GenerateCoordinates(roller dice.Roller, randomize bool) (Coordinates, error) {
	if !randomize {
		return VanillaCoordinates(), nil
	}
	if roller == nil {
		return Coordinates{}, errors.InvalidArgument("roller is required")
	}

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		candidate, err := drawPoints(roller)
		if err != nil {
			return Coordinates{}, err
		}
		if !EquivalentCoordinates(candidate, CanonicalCoordinates) {
			return Coordinates{Randomized: true, Points: candidate}, nil
		}
	}

	return Coordinates{}, errors.GenerationExhausted(CoordinatesGenerator, MaxAttempts)
}

// drawPoints picks CoordinateLength distinct points in order with a partial
// Fisher-Yates shuffle, so every ordered arrangement is equally likely.
func drawPoints(roller dice.Roller) ([CoordinateLength]int, error) {
	var pool [HexagonPoints]int
	for i := range pool {
		pool[i] = i
	}

	var points [CoordinateLength]int
	for i := 0; i < CoordinateLength; i++ {
		r, err := roller.Roll(HexagonPoints - i)
		if err != nil {
			return points, errors.Wrap(err, "failed to draw coordinate point")
		}
		j := i + r - 1
		pool[i], pool[j] = pool[j], pool[i]
		points[i] = pool[i]
	}
	return points, nil
}

// hexagonSymmetries returns the 12 elements of the dihedral group acting on
// the hexagon points: six rotations and six reflections.
func hexagonSymmetries() []func(int) int {
	symmetries := make([]func(int) int, 0, 2*HexagonPoints)
	for k := 0; k < HexagonPoints; k++ {
		shift := k
		symmetries = append(symmetries,
			func(p int) int { return (p + shift) % HexagonPoints },
			func(p int) int { return (shift - p + HexagonPoints) % HexagonPoints },
		)
	}
	return symmetries
}

// EquivalentCoordinates reports whether some rotation or reflection of the
// hexagon maps a onto b point by point.
func EquivalentCoordinates(a, b [CoordinateLength]int) bool {
	for _, g := range hexagonSymmetries() {
		match := true
		for i := range a {
			if g(a[i]) != b[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// ValidateCoordinates checks the invariants of an accepted arrangement.
func ValidateCoordinates(c Coordinates) error {
	if c.IsVanilla() {
		return nil
	}
	if err := validatePoints(c.Points); err != nil {
		return err
	}
	if EquivalentCoordinates(c.Points, CanonicalCoordinates) {
		return errors.InvalidArgumentf("coordinates %v are equivalent to the canonical arrangement", c.Points)
	}
	return nil
}

func validatePoints(points [CoordinateLength]int) error {
	var seen [HexagonPoints]bool
	for _, p := range points {
		if p < 0 || p >= HexagonPoints {
			return errors.InvalidArgumentf("coordinate point %d out of range [0, %d)", p, HexagonPoints)
		}
		if seen[p] {
			return errors.InvalidArgumentf("coordinate point %d repeated", p)
		}
		seen[p] = true
	}
	return nil
}
