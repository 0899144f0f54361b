package core

import "github.com/google/uuid"

type EventRelayDestination int

const (
	EventRelayDestinationHost     EventRelayDestination = iota + 1 // Surface to the host (transport / caller).
	EventRelayDestinationInternal                                  // Internal diagnostics, not surfaced to the host.
)

type EventPacket struct {
	Event       IEvent
	Destination EventRelayDestination
	Uid         string // Unique identifier for tracking the event packet.
	Relayer     string // Identifier of the component that emitted the event.
}

func NewEventPacket(event IEvent, destination EventRelayDestination, relayer string) *EventPacket {
	uid := uuid.New().String() // Generate a unique identifier for the event packet.
	return &EventPacket{
		Event:       event,
		Destination: destination,
		Uid:         uid,
		Relayer:     relayer,
	}
}
