package booking

import "github.com/salaoflow/salon-scheduler/internal/httperr"

var (
	// ErrSlotUnavailable is the write-time conflict outcome: the requested
	// window overlaps an existing appointment or blocked period.
	ErrSlotUnavailable = httperr.ErrBusiness("slot_unavailable")

	// ErrInvalidRange marks a window with end <= start.
	ErrInvalidRange = httperr.ErrBusiness("invalid_range")

	ErrInvalidState = httperr.ErrBusiness("invalid_state")
)
