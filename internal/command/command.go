// Package command implements the line-oriented command vocabulary that drives a lot.
//
// Parse turns one line into a Command; an Executor applies it to a lot.Lot and
// returns a Result carrying the transcript message. Rejections by the lot are
// ordinary results, not errors: only the caller decides whether to stop.
package command

// Kind identifies a command of the vocabulary
type Kind int

const (
	KindCreate Kind = iota + 1
	KindPark
	KindLeave
	KindSlotForRegistration
	KindSlotsForAge
	KindRegistrationsForAge
	KindStatus
)

// String returns the metric label of the command kind
func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "create_parking_lot"
	case KindPark:
		return "park"
	case KindLeave:
		return "leave"
	case KindSlotForRegistration:
		return "slot_for_registration"
	case KindSlotsForAge:
		return "slots_for_age"
	case KindRegistrationsForAge:
		return "registrations_for_age"
	case KindStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Command is a parsed command. Only the fields used by Kind are set.
type Command struct {
	Kind         Kind
	Capacity     int
	Registration string
	Age          int
	SlotID       int
}
