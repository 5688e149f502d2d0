package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Keywords of the command vocabulary
const (
	KeywordCreate              = "Create_parking_lot"
	KeywordPark                = "Park"
	KeywordDriverAge           = "driver_age"
	KeywordLeave               = "Leave"
	KeywordSlotForRegistration = "Slot_number_for_car_with_number"
	KeywordSlotsForAge         = "Slot_numbers_for_driver_of_age"
	KeywordRegistrationsForAge = "Vehicle_registration_number_for_driver_of_age"
	KeywordStatus              = "Status"
)

// ParseError reports a line that does not follow the command grammar
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid command %q: %s", e.Line, e.Reason)
}

// Parse converts one input line into a Command.
// It returns nil and no error for blank lines and comments starting with '#'.
func Parse(line string) (*Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}

	fields, err := shellquote.Split(trimmed)
	if err != nil {
		return nil, &ParseError{Line: trimmed, Reason: err.Error()}
	}
	if len(fields) == 0 {
		return nil, nil
	}

	cmd, reason := parseFields(fields)
	if reason != "" {
		return nil, &ParseError{Line: trimmed, Reason: reason}
	}
	return cmd, nil
}

// parseFields maps tokenized fields to a Command, or returns why it cannot
func parseFields(fields []string) (*Command, string) {
	keyword, args := fields[0], fields[1:]

	switch keyword {
	case KeywordCreate:
		if len(args) != 1 {
			return nil, usage(KeywordCreate, "CAPACITY")
		}
		// Non-positive capacities are the allocator's to reject
		capacity, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Sprintf("capacity %q is not an integer", args[0])
		}
		return &Command{Kind: KindCreate, Capacity: capacity}, ""

	case KeywordPark:
		if len(args) != 3 || args[1] != KeywordDriverAge {
			return nil, usage(KeywordPark, "REGISTRATION", KeywordDriverAge, "AGE")
		}
		age, reason := parseAge(args[2])
		if reason != "" {
			return nil, reason
		}
		return &Command{Kind: KindPark, Registration: args[0], Age: age}, ""

	case KeywordLeave:
		if len(args) != 1 {
			return nil, usage(KeywordLeave, "SLOT")
		}
		slotID, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Sprintf("slot %q is not an integer", args[0])
		}
		return &Command{Kind: KindLeave, SlotID: slotID}, ""

	case KeywordSlotForRegistration:
		if len(args) != 1 {
			return nil, usage(KeywordSlotForRegistration, "REGISTRATION")
		}
		return &Command{Kind: KindSlotForRegistration, Registration: args[0]}, ""

	case KeywordSlotsForAge, KeywordRegistrationsForAge:
		if len(args) != 1 {
			return nil, usage(keyword, "AGE")
		}
		age, reason := parseAge(args[0])
		if reason != "" {
			return nil, reason
		}
		kind := KindSlotsForAge
		if keyword == KeywordRegistrationsForAge {
			kind = KindRegistrationsForAge
		}
		return &Command{Kind: kind, Age: age}, ""

	case KeywordStatus:
		if len(args) != 0 {
			return nil, usage(KeywordStatus)
		}
		return &Command{Kind: KindStatus}, ""

	default:
		return nil, fmt.Sprintf("unknown command %q", keyword)
	}
}

// parseAge parses a driver age, which must be a non-negative integer
func parseAge(value string) (int, string) {
	age, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Sprintf("age %q is not an integer", value)
	}
	if age < 0 {
		return 0, fmt.Sprintf("age %d is negative", age)
	}
	return age, ""
}

func usage(keyword string, args ...string) string {
	return "usage: " + strings.Join(append([]string{keyword}, args...), " ")
}
