package command

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kula-app/parking-lot/internal/lot"
)

// Outcome classifies a Result
type Outcome string

const (
	// OutcomeOK means the lot accepted the command
	OutcomeOK Outcome = "ok"

	// OutcomeRejected means the lot rejected the command with one of its error kinds
	OutcomeRejected Outcome = "rejected"

	// OutcomeInvalid means the line could not be parsed
	OutcomeInvalid Outcome = "invalid"
)

// Result is what a command produced. Message is the transcript line(s).
type Result struct {
	Command *Command
	Outcome Outcome
	Message string
	Err     error
	// Fatal results end the session
	Fatal bool
}

// Label returns the metric label of the command that produced the result
func (r Result) Label() string {
	if r.Command == nil {
		return "invalid"
	}
	return r.Command.Kind.String()
}

// Invalid builds the result reported for a line that failed to parse
func Invalid(err error) Result {
	msg := err.Error()
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		msg = fmt.Sprintf("Invalid command %q: %s", parseErr.Line, parseErr.Reason)
	}
	return Result{
		Outcome: OutcomeInvalid,
		Message: msg,
		Err:     err,
	}
}

// Executor applies commands to a lot
type Executor struct {
	lot                   *lot.Lot
	logger                *slog.Logger
	haltOnInvalidCapacity bool
}

// NewExecutor creates an executor for the lot. When haltOnInvalidCapacity is set,
// a rejected lot creation produces a fatal result.
func NewExecutor(l *lot.Lot, logger *slog.Logger, haltOnInvalidCapacity bool) *Executor {
	return &Executor{
		lot:                   l,
		logger:                logger,
		haltOnInvalidCapacity: haltOnInvalidCapacity,
	}
}

// Execute applies the command to the lot and renders the outcome
func (e *Executor) Execute(cmd *Command) Result {
	res := e.execute(cmd)
	res.Command = cmd
	if res.Err != nil {
		res.Outcome = OutcomeRejected
	} else {
		res.Outcome = OutcomeOK
	}

	e.logger.Debug("command executed",
		"command", cmd.Kind.String(),
		"outcome", string(res.Outcome),
		"fatal", res.Fatal,
		"error", res.Err)

	return res
}

func (e *Executor) execute(cmd *Command) Result {
	switch cmd.Kind {
	case KindCreate:
		capacity, err := e.lot.Create(cmd.Capacity)
		if err != nil {
			return Result{
				Message: "Please enter valid capacity",
				Err:     err,
				Fatal:   e.haltOnInvalidCapacity,
			}
		}
		return Result{Message: fmt.Sprintf("Created parking of %d slots", capacity)}

	case KindPark:
		slotID, err := e.lot.Park(lot.NewCar(cmd.Registration, cmd.Age))
		switch {
		case errors.Is(err, lot.ErrDuplicateEntry):
			return Result{
				Message: fmt.Sprintf("Car number with reg %s has already been parked", cmd.Registration),
				Err:     err,
			}
		case errors.Is(err, lot.ErrCapacityOverflow):
			return Result{Message: "Sorry, parking lot is full", Err: err}
		case err != nil:
			return Result{Message: err.Error(), Err: err}
		}
		return Result{Message: fmt.Sprintf("Car with vehicle registration number %q has been parked at slot number %d",
			cmd.Registration, slotID)}

	case KindLeave:
		dep, err := e.lot.Leave(cmd.SlotID)
		if err != nil {
			return Result{
				Message: fmt.Sprintf("Slot number %d is already vacated, no vehicle has been parked at this slot", cmd.SlotID),
				Err:     err,
			}
		}
		return Result{Message: fmt.Sprintf(
			"Slot number %d vacated, the car with vehicle registration number %q left the space, the driver of the car was of age %d",
			dep.SlotID, dep.Vehicle.RegistrationNumber, dep.Vehicle.Driver.Age)}

	case KindSlotForRegistration:
		slotID, err := e.lot.SlotForRegistration(cmd.Registration)
		if err != nil {
			return Result{
				Message: fmt.Sprintf("%s : %s Not found", KeywordSlotForRegistration, cmd.Registration),
				Err:     err,
			}
		}
		return Result{Message: fmt.Sprintf("%s : %s is %d", KeywordSlotForRegistration, cmd.Registration, slotID)}

	case KindSlotsForAge:
		ids, err := e.lot.SlotsForAge(cmd.Age)
		if err != nil {
			return noDriversOfAge(cmd.Age, err)
		}
		list := make([]string, len(ids))
		for i, id := range ids {
			list[i] = strconv.Itoa(id)
		}
		return Result{Message: fmt.Sprintf("%s %d are %s", KeywordSlotsForAge, cmd.Age, strings.Join(list, ", "))}

	case KindRegistrationsForAge:
		regs, err := e.lot.RegistrationsForAge(cmd.Age)
		if err != nil {
			return noDriversOfAge(cmd.Age, err)
		}
		return Result{Message: fmt.Sprintf("%s %d are %s", KeywordRegistrationsForAge, cmd.Age, strings.Join(regs, ", "))}

	case KindStatus:
		return Result{Message: renderStatus(e.lot.Status())}

	default:
		err := fmt.Errorf("unsupported command kind %d", int(cmd.Kind))
		return Result{Message: err.Error(), Err: err}
	}
}

func noDriversOfAge(age int, err error) Result {
	return Result{Message: fmt.Sprintf("No Drivers with age %d", age), Err: err}
}

// renderStatus formats occupied slots as an aligned table
func renderStatus(slots []lot.Slot) string {
	if len(slots) == 0 {
		return "Parking lot is empty"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 4, ' ', 0)
	fmt.Fprintln(w, "Slot No.\tRegistration No.\tDriver Age\tType")
	for _, s := range slots {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n",
			s.ID, s.Occupant.RegistrationNumber, s.Occupant.Driver.Age, s.Occupant.Category)
	}
	_ = w.Flush()

	return strings.TrimRight(b.String(), "\n")
}
