package lot

// Occupancy summarizes how many slots of the lot are in use
type Occupancy struct {
	Capacity int
	Occupied int
	Free     int
}

// Occupancy returns the current slot usage of the lot
func (l *Lot) Occupancy() Occupancy {
	return Occupancy{
		Capacity: l.capacity,
		Occupied: l.occupied,
		Free:     l.free.Len(),
	}
}

// Created reports whether Create has succeeded on this lot
func (l *Lot) Created() bool {
	return l.capacity > 0
}

// IsFull returns true if no slot is vacant
func (o Occupancy) IsFull() bool {
	return o.Occupied >= o.Capacity
}

// Rate returns the share of occupied slots as a percentage (0-100)
func (o Occupancy) Rate() float64 {
	if o.Capacity == 0 {
		return 0
	}
	return float64(o.Occupied) / float64(o.Capacity) * 100
}
