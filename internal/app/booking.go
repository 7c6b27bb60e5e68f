package app

import (
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

const (
	minAdults   = 1
	maxAdults   = 10
	minChildren = 0
	maxChildren = 10
)

type FormState int

const (
	StateEditing FormState = iota
	StateNavigated
)

// BookingForm is the explicit booking-intent state machine: editing until a
// submit passes validation, then terminally navigated. A failed submit
// records per-field errors and stays in editing.
type BookingForm struct {
	CheckIn  time.Time
	CheckOut time.Time
	RoomSlug string // "" means unselected
	Adults   int
	Children int

	Errors map[string]string
	state  FormState
}

// NewBookingForm seeds the default window: check-in tomorrow, check-out two
// days after that.
func NewBookingForm(now time.Time) *BookingForm {
	in := now.AddDate(0, 0, 1)
	return &BookingForm{
		CheckIn:  in,
		CheckOut: in.AddDate(0, 0, 2),
		Adults:   1,
		Children: 0,
		Errors:   map[string]string{},
	}
}

func (f *BookingForm) State() FormState { return f.state }

// SetCheckIn moves the check-in date; check-out is forced to check-in+1 day
// whenever it would no longer be strictly after check-in.
func (f *BookingForm) SetCheckIn(t time.Time) {
	f.CheckIn = t
	f.ensureRange()
	delete(f.Errors, "checkIn")
}

func (f *BookingForm) SetCheckOut(t time.Time) {
	f.CheckOut = t
	f.ensureRange()
	delete(f.Errors, "checkOut")
}

func (f *BookingForm) ensureRange() {
	if f.CheckIn.IsZero() {
		return
	}
	if f.CheckOut.IsZero() || !f.CheckOut.After(f.CheckIn) {
		f.CheckOut = f.CheckIn.AddDate(0, 0, 1)
	}
}

func (f *BookingForm) SelectRoom(slug string) {
	f.RoomSlug = slug
	delete(f.Errors, "roomType")
}

// SetAdults parses and clamps to [1,10]; non-numeric input keeps the prior
// value.
func (f *BookingForm) SetAdults(raw string) {
	if n, err := strconv.Atoi(raw); err == nil {
		f.Adults = clamp(n, minAdults, maxAdults)
	}
}

// SetChildren parses and clamps to [0,10]; non-numeric input keeps the prior
// value.
func (f *BookingForm) SetChildren(raw string) {
	if n, err := strconv.Atoi(raw); err == nil {
		f.Children = clamp(n, minChildren, maxChildren)
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Submit validates the form. On success it resolves the selected room's id,
// transitions to navigated, and returns the booking target URL. On failure
// it records field errors and returns ok=false.
func (f *BookingForm) Submit(resolve func(slug string) (int64, bool)) (string, bool) {
	f.Errors = map[string]string{}

	if f.CheckIn.IsZero() {
		f.Errors["checkIn"] = "Check-in date is required"
	}
	if f.CheckOut.IsZero() {
		f.Errors["checkOut"] = "Check-out date is required"
	}
	if !f.CheckIn.IsZero() && !f.CheckOut.IsZero() && !f.CheckOut.After(f.CheckIn) {
		f.Errors["checkOut"] = "Check-out must be after check-in"
	}
	if f.RoomSlug == "" {
		f.Errors["roomType"] = "Please select a room"
	}
	if f.Adults < minAdults {
		f.Errors["adults"] = "At least one adult is required"
	}
	if len(f.Errors) > 0 {
		return "", false
	}

	roomID, ok := resolve(f.RoomSlug)
	if !ok {
		f.Errors["roomType"] = "Selected room is no longer available"
		return "", false
	}

	f.state = StateNavigated
	// query parameter order is part of the navigation contract
	target := fmt.Sprintf("/booking?checkIn=%s&checkOut=%s&roomId=%d&adults=%d&children=%d",
		f.CheckIn.Format(dateLayout), f.CheckOut.Format(dateLayout),
		roomID, f.Adults, f.Children)
	return target, true
}
