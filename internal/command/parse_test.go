package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		want        *Command
		wantErr     bool
		errContains string
	}{
		{
			name: "create parking lot",
			line: "Create_parking_lot 6",
			want: &Command{Kind: KindCreate, Capacity: 6},
		},
		{
			name: "create with non-positive capacity is left to the lot",
			line: "Create_parking_lot 0",
			want: &Command{Kind: KindCreate, Capacity: 0},
		},
		{
			name: "park",
			line: "Park KA-01-HH-1234 driver_age 21",
			want: &Command{Kind: KindPark, Registration: "KA-01-HH-1234", Age: 21},
		},
		{
			name: "park with quoted registration",
			line: `Park "KA 01 HH 1234" driver_age 21`,
			want: &Command{Kind: KindPark, Registration: "KA 01 HH 1234", Age: 21},
		},
		{
			name: "surrounding whitespace is ignored",
			line: "   Leave 2  \r",
			want: &Command{Kind: KindLeave, SlotID: 2},
		},
		{
			name: "slot for registration",
			line: "Slot_number_for_car_with_number PB-01-HH-1234",
			want: &Command{Kind: KindSlotForRegistration, Registration: "PB-01-HH-1234"},
		},
		{
			name: "slots for age",
			line: "Slot_numbers_for_driver_of_age 21",
			want: &Command{Kind: KindSlotsForAge, Age: 21},
		},
		{
			name: "registrations for age",
			line: "Vehicle_registration_number_for_driver_of_age 18",
			want: &Command{Kind: KindRegistrationsForAge, Age: 18},
		},
		{
			name: "status",
			line: "Status",
			want: &Command{Kind: KindStatus},
		},
		{
			name: "blank line",
			line: "   ",
			want: nil,
		},
		{
			name: "comment",
			line: "# morning arrivals",
			want: nil,
		},
		{
			name:        "unknown keyword",
			line:        "Teleport KA-01 driver_age 21",
			wantErr:     true,
			errContains: `unknown command "Teleport"`,
		},
		{
			name:        "keywords are case sensitive",
			line:        "park KA-01 driver_age 21",
			wantErr:     true,
			errContains: "unknown command",
		},
		{
			name:        "capacity not an integer",
			line:        "Create_parking_lot six",
			wantErr:     true,
			errContains: "not an integer",
		},
		{
			name:        "park without driver_age keyword",
			line:        "Park KA-01 age 21",
			wantErr:     true,
			errContains: "usage: Park REGISTRATION driver_age AGE",
		},
		{
			name:        "park with missing age",
			line:        "Park KA-01 driver_age",
			wantErr:     true,
			errContains: "usage",
		},
		{
			name:        "negative age",
			line:        "Slot_numbers_for_driver_of_age -4",
			wantErr:     true,
			errContains: "negative",
		},
		{
			name:        "leave with extra argument",
			line:        "Leave 1 2",
			wantErr:     true,
			errContains: "usage: Leave SLOT",
		},
		{
			name:        "status with argument",
			line:        "Status all",
			wantErr:     true,
			errContains: "usage: Status",
		},
		{
			name:        "unterminated quote",
			line:        `Park "KA-01 driver_age 21`,
			wantErr:     true,
			errContains: "invalid command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %+v", tt.line, got)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("Parse(%q) error type = %T, want *ParseError", tt.line, err)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Parse(%q) error = %v, want it to contain %q", tt.line, err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.line, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindCreate, "create_parking_lot"},
		{KindPark, "park"},
		{KindLeave, "leave"},
		{KindSlotForRegistration, "slot_for_registration"},
		{KindSlotsForAge, "slots_for_age"},
		{KindRegistrationsForAge, "registrations_for_age"},
		{KindStatus, "status"},
		{Kind(0), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
