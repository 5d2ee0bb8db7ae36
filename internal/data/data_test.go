package data_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ow-rando/internal/data"
	"github.com/KirkDiggler/ow-rando/internal/entities"
	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/topology"
)

const (
	testItems = `
base_id: 100
items:
  - name: Translator
    offset: 0
    classification: progression
    count: 1
  - name: Marshmallow
    offset: 1
    classification: filler
    count: 0
groups:
  Tools: [Translator]
`
	testLocations = `
base_id: 500
locations:
  - name: Hornfels
    offset: 0
    region: Village
  - name: Victory
    region: Village
    event: Victory - Song of Five
`
	testConnections = `
start: Village
regions: [Village, Space, H, E, A, P, X, V, C, S]
connections:
  - from: Village
    to: Space
bramble:
  - {room: H, region: H}
  - {room: E, region: E}
  - {room: A, region: A}
  - {room: P, region: P}
  - {room: X, region: X}
  - {room: V, region: V}
  - {room: C, region: C}
  - {room: S, region: S}
escape: Space
`
)

type DataTestSuite struct {
	suite.Suite
}

func TestDataSuite(t *testing.T) {
	suite.Run(t, new(DataTestSuite))
}

func (s *DataTestSuite) sources() data.Sources {
	return data.Sources{
		Items:       []byte(testItems),
		Locations:   []byte(testLocations),
		Connections: []byte(testConnections),
	}
}

func (s *DataTestSuite) TestLoadEmbedded() {
	tables, err := data.Load()
	s.Require().NoError(err)

	again, err := data.Load()
	s.Require().NoError(err)
	s.Same(tables, again)

	translator, ok := tables.Item("Translator")
	s.Require().True(ok)
	s.Equal(int64(2131000), translator.ID)
	s.Equal(entities.ClassificationProgression, translator.Classification)

	filler, ok := tables.Item("Marshmallow")
	s.Require().True(ok)
	s.Equal(entities.ClassificationFiller, filler.Classification)

	s.True(tables.IsEventItem("Victory - Song of Five"))
	s.True(tables.IsEventItem("Victory - Song of Six"))
	s.True(tables.IsKnownItem("Victory - Song of Six"))
	s.False(tables.IsKnownItem("Jetpack"))

	for _, room := range topology.AllRooms() {
		s.Equal(room, tables.Bramble[room].Room)
		s.NotEmpty(tables.Bramble[room].Region)
	}
	s.Equal("Menu", tables.Start)
	s.Equal("Space", tables.Escape)
}

func (s *DataTestSuite) TestEmbeddedIDsAreUnique() {
	tables, err := data.Load()
	s.Require().NoError(err)

	seen := make(map[int64]string)
	for name, id := range tables.LocationNameToID() {
		s.GreaterOrEqual(id, int64(2131000))
		other, dup := seen[id]
		s.False(dup, "%s and %s share %d", name, other, id)
		seen[id] = name
	}
	_, hasEvent := tables.LocationNameToID()["Victory - Song of Five"]
	s.False(hasEvent)
	s.Len(tables.ItemNameToID(), len(tables.Items))
}

func (s *DataTestSuite) TestParse() {
	tables, err := data.Parse(s.sources())
	s.Require().NoError(err)

	s.Equal(map[string]int64{"Translator": 100, "Marshmallow": 101}, tables.ItemNameToID())
	s.Equal(map[string]int64{"Hornfels": 500}, tables.LocationNameToID())

	victory, ok := tables.Location("Victory")
	s.Require().True(ok)
	s.True(victory.IsEvent())
	s.Equal([]string{"Translator"}, tables.ItemGroups["Tools"])
}

func (s *DataTestSuite) TestParseErrors() {
	testCases := []struct {
		name   string
		mutate func(src *data.Sources)
	}{
		{
			name: "duplicate item",
			mutate: func(src *data.Sources) {
				src.Items = []byte(`
base_id: 1
items:
  - {name: Scout, offset: 0, classification: progression, count: 1}
  - {name: Scout, offset: 1, classification: progression, count: 1}
`)
			},
		},
		{
			name: "duplicate item id",
			mutate: func(src *data.Sources) {
				src.Items = []byte(`
base_id: 1
items:
  - {name: Scout, offset: 0, classification: progression, count: 1}
  - {name: Translator, offset: 0, classification: progression, count: 1}
`)
			},
		},
		{
			name: "unknown classification",
			mutate: func(src *data.Sources) {
				src.Items = []byte(`
base_id: 1
items:
  - {name: Scout, offset: 0, classification: legendary, count: 1}
`)
			},
		},
		{
			name: "unknown field",
			mutate: func(src *data.Sources) {
				src.Items = []byte(`
base_id: 1
items:
  - {name: Scout, offset: 0, classification: progression, count: 1, weight: 3}
`)
			},
		},
		{
			name: "group names unknown item",
			mutate: func(src *data.Sources) {
				src.Items = []byte(testItems + "  Extra: [Ghost]\n")
			},
		},
		{
			name: "location without offset",
			mutate: func(src *data.Sources) {
				src.Locations = []byte(`
base_id: 1
locations:
  - {name: Hornfels, region: Village}
`)
			},
		},
		{
			name: "event location with offset",
			mutate: func(src *data.Sources) {
				src.Locations = []byte(`
base_id: 1
locations:
  - {name: Victory, offset: 3, region: Village, event: Win}
`)
			},
		},
		{
			name: "missing bramble room",
			mutate: func(src *data.Sources) {
				src.Connections = []byte(`
start: Village
regions: [Village]
bramble:
  - {room: H, region: H}
escape: Village
`)
			},
		},
		{
			name: "bad bramble code",
			mutate: func(src *data.Sources) {
				src.Connections = []byte(`
start: Village
regions: [Village]
bramble:
  - {room: Q, region: Q}
escape: Village
`)
			},
		},
		{
			name: "empty document",
			mutate: func(src *data.Sources) {
				src.Connections = nil
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			src := s.sources()
			tc.mutate(&src)

			_, err := data.Parse(src)
			s.Require().Error(err)
			s.True(errors.IsConfiguration(err), err.Error())
		})
	}
}
