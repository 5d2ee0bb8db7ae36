// Package idgen generates generation run identifiers.
package idgen

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/ow-rando/internal/pkg/idgen Generator

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// runNamespace scopes seed-derived run ids.
var runNamespace = uuid.MustParse("6f0b1c5e-2d1a-4f8e-9a57-0e3d0a6b5c21")

// UUIDGenerator generates random UUIDs with an optional prefix.
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	return withPrefix(g.prefix, uuid.New().String())
}

// ForSeed returns a name-based UUID for seed, so regenerating a seed from
// the CLI reproduces its run id.
func ForSeed(prefix string, seed int64) string {
	id := uuid.NewSHA1(runNamespace, []byte(strconv.FormatInt(seed, 10)))
	return withPrefix(prefix, id.String())
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	return withPrefix(g.prefix, strconv.FormatUint(n, 10))
}

func withPrefix(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return fmt.Sprintf("%s_%s", prefix, id)
}
