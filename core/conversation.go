package core

import "sync"

// ConversationContext is the mutable state shared by every agent and tool in
// one conversation session. All fields are optional; readers must handle an
// absent value. The zero value is ready to use. A ConversationContext must
// not be copied after first use; pass it by pointer.
type ConversationContext struct {
	mu                 sync.RWMutex
	passengerName      *string
	confirmationNumber *string
	seatNumber         *string
	flightNumber       *string
}

// NewConversationContext returns an empty context.
func NewConversationContext() *ConversationContext { return &ConversationContext{} }

// ContextSnapshot is a point-in-time copy of a ConversationContext. Nil
// fields were unset when the snapshot was taken.
type ContextSnapshot struct {
	PassengerName      *string `json:"passenger_name,omitempty"`
	ConfirmationNumber *string `json:"confirmation_number,omitempty"`
	SeatNumber         *string `json:"seat_number,omitempty"`
	FlightNumber       *string `json:"flight_number,omitempty"`
}

// PassengerName returns the passenger name and whether it is set.
func (c *ConversationContext) PassengerName() (string, bool) { return c.get(&c.passengerName) }

// SetPassengerName sets the passenger name.
func (c *ConversationContext) SetPassengerName(v string) { c.set(&c.passengerName, v) }

// ConfirmationNumber returns the booking confirmation number and whether it is set.
func (c *ConversationContext) ConfirmationNumber() (string, bool) {
	return c.get(&c.confirmationNumber)
}

// SetConfirmationNumber sets the booking confirmation number.
func (c *ConversationContext) SetConfirmationNumber(v string) { c.set(&c.confirmationNumber, v) }

// SeatNumber returns the seat number and whether it is set.
func (c *ConversationContext) SeatNumber() (string, bool) { return c.get(&c.seatNumber) }

// SetSeatNumber sets the seat number.
func (c *ConversationContext) SetSeatNumber(v string) { c.set(&c.seatNumber, v) }

// FlightNumber returns the flight number and whether it is set.
func (c *ConversationContext) FlightNumber() (string, bool) { return c.get(&c.flightNumber) }

// SetFlightNumber sets the flight number.
func (c *ConversationContext) SetFlightNumber(v string) { c.set(&c.flightNumber, v) }

// SetFlightNumberIfAbsent stores gen() as the flight number unless one is
// already present, and returns the flight number in effect afterwards. gen
// is called at most once, under the write lock.
func (c *ConversationContext) SetFlightNumberIfAbsent(gen func() string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.flightNumber == nil {
		v := gen()
		c.flightNumber = &v
	}

	return *c.flightNumber
}

// Snapshot returns a copy of the current field values.
func (c *ConversationContext) Snapshot() ContextSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return ContextSnapshot{
		PassengerName:      clonePtr(c.passengerName),
		ConfirmationNumber: clonePtr(c.confirmationNumber),
		SeatNumber:         clonePtr(c.seatNumber),
		FlightNumber:       clonePtr(c.flightNumber),
	}
}

func (c *ConversationContext) get(field **string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if *field == nil {
		return "", false
	}

	return **field, true
}

func (c *ConversationContext) set(field **string, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*field = &v
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}
