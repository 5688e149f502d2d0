package command

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/kula-app/parking-lot/internal/lot"
)

func newTestExecutor(haltOnInvalidCapacity bool) *Executor {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewExecutor(lot.New(logger), logger, haltOnInvalidCapacity)
}

func mustExecute(t *testing.T, e *Executor, line string) Result {
	t.Helper()
	cmd, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", line, err)
	}
	return e.Execute(cmd)
}

func TestExecutor_Transcript(t *testing.T) {
	e := newTestExecutor(true)

	steps := []struct {
		line    string
		want    string
		outcome Outcome
		wantErr error
	}{
		{
			line:    "Create_parking_lot 6",
			want:    "Created parking of 6 slots",
			outcome: OutcomeOK,
		},
		{
			line:    "Park KA-01-HH-1234 driver_age 21",
			want:    `Car with vehicle registration number "KA-01-HH-1234" has been parked at slot number 1`,
			outcome: OutcomeOK,
		},
		{
			line:    "Park PB-01-HH-1234 driver_age 21",
			want:    `Car with vehicle registration number "PB-01-HH-1234" has been parked at slot number 2`,
			outcome: OutcomeOK,
		},
		{
			line:    "Park PB-01-HH-1234 driver_age 30",
			want:    "Car number with reg PB-01-HH-1234 has already been parked",
			outcome: OutcomeRejected,
			wantErr: lot.ErrDuplicateEntry,
		},
		{
			line:    "Slot_numbers_for_driver_of_age 21",
			want:    "Slot_numbers_for_driver_of_age 21 are 1, 2",
			outcome: OutcomeOK,
		},
		{
			line:    "Park PB-01-TG-2341 driver_age 40",
			want:    `Car with vehicle registration number "PB-01-TG-2341" has been parked at slot number 3`,
			outcome: OutcomeOK,
		},
		{
			line:    "Slot_number_for_car_with_number PB-01-HH-1234",
			want:    "Slot_number_for_car_with_number : PB-01-HH-1234 is 2",
			outcome: OutcomeOK,
		},
		{
			line:    "Leave 2",
			want:    `Slot number 2 vacated, the car with vehicle registration number "PB-01-HH-1234" left the space, the driver of the car was of age 21`,
			outcome: OutcomeOK,
		},
		{
			line:    "Leave 2",
			want:    "Slot number 2 is already vacated, no vehicle has been parked at this slot",
			outcome: OutcomeRejected,
			wantErr: lot.ErrNotExist,
		},
		{
			line:    "Park HR-29-TG-3098 driver_age 39",
			want:    `Car with vehicle registration number "HR-29-TG-3098" has been parked at slot number 2`,
			outcome: OutcomeOK,
		},
		{
			line:    "Vehicle_registration_number_for_driver_of_age 21",
			want:    "Vehicle_registration_number_for_driver_of_age 21 are KA-01-HH-1234",
			outcome: OutcomeOK,
		},
		{
			line:    "Vehicle_registration_number_for_driver_of_age 18",
			want:    "No Drivers with age 18",
			outcome: OutcomeRejected,
			wantErr: lot.ErrNotExist,
		},
		{
			line:    "Slot_numbers_for_driver_of_age 18",
			want:    "No Drivers with age 18",
			outcome: OutcomeRejected,
			wantErr: lot.ErrNotExist,
		},
		{
			line:    "Slot_number_for_car_with_number PB-01-HH-1234",
			want:    "Slot_number_for_car_with_number : PB-01-HH-1234 Not found",
			outcome: OutcomeRejected,
			wantErr: lot.ErrNotExist,
		},
	}

	for _, step := range steps {
		res := mustExecute(t, e, step.line)

		if res.Message != step.want {
			t.Errorf("%s: Message = %q, want %q", step.line, res.Message, step.want)
		}
		if res.Outcome != step.outcome {
			t.Errorf("%s: Outcome = %q, want %q", step.line, res.Outcome, step.outcome)
		}
		if step.wantErr != nil && !errors.Is(res.Err, step.wantErr) {
			t.Errorf("%s: Err = %v, want %v", step.line, res.Err, step.wantErr)
		}
		if step.wantErr == nil && res.Err != nil {
			t.Errorf("%s: unexpected Err = %v", step.line, res.Err)
		}
		if res.Fatal {
			t.Errorf("%s: unexpected fatal result", step.line)
		}
	}
}

func TestExecutor_FullLot(t *testing.T) {
	e := newTestExecutor(true)
	mustExecute(t, e, "Create_parking_lot 1")
	mustExecute(t, e, "Park A driver_age 30")

	res := mustExecute(t, e, "Park B driver_age 30")
	if res.Message != "Sorry, parking lot is full" {
		t.Errorf("Message = %q", res.Message)
	}
	if !errors.Is(res.Err, lot.ErrCapacityOverflow) {
		t.Errorf("Err = %v, want %v", res.Err, lot.ErrCapacityOverflow)
	}
}

func TestExecutor_InvalidCapacity(t *testing.T) {
	tests := []struct {
		name      string
		halt      bool
		wantFatal bool
	}{
		{name: "halting policy", halt: true, wantFatal: true},
		{name: "continuing policy", halt: false, wantFatal: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExecutor(tt.halt)

			res := mustExecute(t, e, "Create_parking_lot -1")
			if res.Message != "Please enter valid capacity" {
				t.Errorf("Message = %q", res.Message)
			}
			if !errors.Is(res.Err, lot.ErrCapacityUnderflow) {
				t.Errorf("Err = %v, want %v", res.Err, lot.ErrCapacityUnderflow)
			}
			if res.Fatal != tt.wantFatal {
				t.Errorf("Fatal = %v, want %v", res.Fatal, tt.wantFatal)
			}
		})
	}
}

func TestExecutor_Status(t *testing.T) {
	e := newTestExecutor(true)

	res := mustExecute(t, e, "Status")
	if res.Message != "Parking lot is empty" {
		t.Errorf("Status on empty lot = %q", res.Message)
	}

	mustExecute(t, e, "Create_parking_lot 3")
	mustExecute(t, e, "Park KA-01-HH-1234 driver_age 21")
	mustExecute(t, e, "Park KA-01-BB-0001 driver_age 45")
	mustExecute(t, e, "Leave 1")
	mustExecute(t, e, "Park KA-01-HH-9999 driver_age 30")

	res = mustExecute(t, e, "Status")
	lines := strings.Split(res.Message, "\n")
	want := [][]string{
		{"Slot", "No.", "Registration", "No.", "Driver", "Age", "Type"},
		{"1", "KA-01-HH-9999", "30", "Car"},
		{"2", "KA-01-BB-0001", "45", "Car"},
	}
	if len(lines) != len(want) {
		t.Fatalf("Status has %d lines, want %d:\n%s", len(lines), len(want), res.Message)
	}
	for i, line := range lines {
		if got := strings.Fields(line); strings.Join(got, " ") != strings.Join(want[i], " ") {
			t.Errorf("line %d = %q, want fields %v", i, line, want[i])
		}
	}
}

func TestInvalid(t *testing.T) {
	_, err := Parse("Teleport now")
	if err == nil {
		t.Fatal("Parse() expected error")
	}

	res := Invalid(err)
	if res.Outcome != OutcomeInvalid {
		t.Errorf("Outcome = %q, want %q", res.Outcome, OutcomeInvalid)
	}
	if res.Message != `Invalid command "Teleport now": unknown command "Teleport"` {
		t.Errorf("Message = %q", res.Message)
	}
	if res.Label() != "invalid" {
		t.Errorf("Label() = %q, want invalid", res.Label())
	}
	if res.Fatal {
		t.Error("invalid lines must not be fatal")
	}
}
