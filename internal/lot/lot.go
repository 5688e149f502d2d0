// Package lot implements the slot allocator of a single parking facility.
//
// A Lot owns a fixed set of numbered slots. Parking always takes the closest
// free slot (the lowest vacant id), and two indexes keep lookups cheap: a
// registration number to slot id map and the ordered slot table itself,
// which is scanned for driver-age reports.
//
// A Lot is not safe for concurrent use.
package lot

import (
	"fmt"
	"log/slog"
)

// Category tags the kind of vehicle occupying a slot
type Category int

const (
	// CategoryCar is the only vehicle category the lot accepts today
	CategoryCar Category = iota
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case CategoryCar:
		return "Car"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Driver is the person driving a parked vehicle
type Driver struct {
	Age int
}

// Vehicle is a vehicle occupying a slot
type Vehicle struct {
	RegistrationNumber string
	Driver             Driver
	Category           Category
}

// NewCar creates a car driven by a driver of the given age
func NewCar(registrationNumber string, driverAge int) Vehicle {
	return Vehicle{
		RegistrationNumber: registrationNumber,
		Driver:             Driver{Age: driverAge},
		Category:           CategoryCar,
	}
}

// Slot is a numbered parking space. Occupant is nil when the slot is vacant.
type Slot struct {
	ID       int
	Occupant *Vehicle
}

// Departure describes a vehicle that just left its slot
type Departure struct {
	SlotID  int
	Vehicle Vehicle
}

// Lot is a fixed-capacity pool of parking slots
type Lot struct {
	logger    *slog.Logger
	capacity  int
	occupied  int
	slots     []*Vehicle // indexed by slot id - 1, nil when vacant
	free      *freeSlots
	regToSlot map[string]int
}

// New creates an uncreated lot. Until Create succeeds every park is rejected as
// a capacity overflow and every lookup as not existing.
func New(logger *slog.Logger) *Lot {
	return &Lot{
		logger:    logger,
		free:      newFreeSlots(0),
		regToSlot: make(map[string]int),
	}
}

// Create (re)initializes the lot with the given number of empty slots and returns the capacity.
// Any previous state is discarded only on success.
func (l *Lot) Create(capacity int) (int, error) {
	if capacity <= 0 {
		return 0, fmt.Errorf("create lot with capacity %d: %w", capacity, ErrCapacityUnderflow)
	}

	l.capacity = capacity
	l.occupied = 0
	l.slots = make([]*Vehicle, capacity)
	l.free = newFreeSlots(capacity)
	l.regToSlot = make(map[string]int, capacity)

	l.logger.Debug("lot created", "capacity", capacity)

	return capacity, nil
}

// Park assigns the vehicle to the closest free slot and returns the slot id
func (l *Lot) Park(v Vehicle) (int, error) {
	if slotID, ok := l.regToSlot[v.RegistrationNumber]; ok {
		return 0, fmt.Errorf("park %q (already at slot %d): %w", v.RegistrationNumber, slotID, ErrDuplicateEntry)
	}

	if l.occupied >= l.capacity {
		return 0, fmt.Errorf("park %q: %w", v.RegistrationNumber, ErrCapacityOverflow)
	}

	slotID := l.free.take()
	l.slots[slotID-1] = &v
	l.regToSlot[v.RegistrationNumber] = slotID
	l.occupied++

	l.logger.Debug("vehicle parked",
		"registration_number", v.RegistrationNumber,
		"driver_age", v.Driver.Age,
		"category", v.Category.String(),
		"slot_id", slotID,
		"occupied", l.occupied,
		"capacity", l.capacity)

	return slotID, nil
}

// Leave vacates the slot and returns the vehicle that was parked there
func (l *Lot) Leave(slotID int) (Departure, error) {
	if l.occupied == 0 || slotID < 1 || slotID > l.capacity || l.slots[slotID-1] == nil {
		return Departure{}, fmt.Errorf("leave slot %d: %w", slotID, ErrNotExist)
	}

	v := l.slots[slotID-1]
	delete(l.regToSlot, v.RegistrationNumber)
	l.slots[slotID-1] = nil
	l.free.release(slotID)
	l.occupied--

	l.logger.Debug("vehicle left",
		"registration_number", v.RegistrationNumber,
		"driver_age", v.Driver.Age,
		"slot_id", slotID,
		"occupied", l.occupied,
		"capacity", l.capacity)

	return Departure{SlotID: slotID, Vehicle: *v}, nil
}

// SlotForRegistration returns the slot id holding the registration number
func (l *Lot) SlotForRegistration(registrationNumber string) (int, error) {
	slotID, ok := l.regToSlot[registrationNumber]
	if !ok {
		return 0, fmt.Errorf("lookup %q: %w", registrationNumber, ErrNotExist)
	}
	return slotID, nil
}

// RegistrationsForAge returns the registration numbers of vehicles whose driver has
// the given age, in ascending slot id order
func (l *Lot) RegistrationsForAge(age int) ([]string, error) {
	var regs []string
	l.eachOccupied(func(slotID int, v *Vehicle) {
		if v.Driver.Age == age {
			regs = append(regs, v.RegistrationNumber)
		}
	})
	if len(regs) == 0 {
		return nil, fmt.Errorf("registrations for driver age %d: %w", age, ErrNotExist)
	}
	return regs, nil
}

// SlotsForAge returns the ids of slots whose vehicle's driver has the given age, in ascending order
func (l *Lot) SlotsForAge(age int) ([]int, error) {
	var ids []int
	l.eachOccupied(func(slotID int, v *Vehicle) {
		if v.Driver.Age == age {
			ids = append(ids, slotID)
		}
	})
	if len(ids) == 0 {
		return nil, fmt.Errorf("slots for driver age %d: %w", age, ErrNotExist)
	}
	return ids, nil
}

// Status returns a snapshot of every occupied slot in ascending id order.
// The returned occupants are copies; mutating them does not affect the lot.
func (l *Lot) Status() []Slot {
	status := make([]Slot, 0, l.occupied)
	l.eachOccupied(func(slotID int, v *Vehicle) {
		occupant := *v
		status = append(status, Slot{ID: slotID, Occupant: &occupant})
	})
	return status
}

// eachOccupied calls fn for every occupied slot in ascending id order
func (l *Lot) eachOccupied(fn func(slotID int, v *Vehicle)) {
	for i, v := range l.slots {
		if v != nil {
			fn(i+1, v)
		}
	}
}
