package topology

import (
	"github.com/KirkDiggler/ow-rando/internal/errors"
)

// Room is one of the fixed Dark Bramble room types.
type Room int

// Room types. The order is also the slot order of the canonical layout.
const (
	Hub Room = iota
	EscapePod
	AnglerNest
	Pioneer
	ExitOnly
	Vessel
	Cluster
	SmallNest

	RoomCount = int(SmallNest) + 1
)

var roomCodes = [RoomCount]byte{'H', 'E', 'A', 'P', 'X', 'V', 'C', 'S'}

var roomNames = [RoomCount]string{
	"Hub", "EscapePod", "AnglerNest", "Pioneer", "ExitOnly", "Vessel", "Cluster", "SmallNest",
}

// AllRooms lists every room in canonical slot order.
func AllRooms() []Room {
	rooms := make([]Room, RoomCount)
	for i := range rooms {
		rooms[i] = Room(i)
	}
	return rooms
}

// Valid reports whether r is a known room.
func (r Room) Valid() bool {
	return r >= 0 && int(r) < RoomCount
}

// Code returns the one-letter spoiler code of the room.
func (r Room) Code() byte {
	if !r.Valid() {
		return '?'
	}
	return roomCodes[r]
}

// String returns the room name.
func (r Room) String() string {
	if !r.Valid() {
		return "Unknown"
	}
	return roomNames[r]
}

// RoomFromCode parses a one-letter room code.
func RoomFromCode(code byte) (Room, error) {
	for i, c := range roomCodes {
		if c == code {
			return Room(i), nil
		}
	}
	return 0, errors.InvalidArgumentf("unknown room code %q", string(code))
}
