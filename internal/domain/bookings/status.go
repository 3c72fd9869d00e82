package bookings

import "errors"

var ErrInvalidTransition = errors.New("invalid fund status transition")

// FundStatus is the booking's position in the escrow lifecycle. Transitions
// are monotonic: a booking never moves backward, even under duplicate or
// out-of-order webhook delivery.
type FundStatus string

const (
	// FundDraft is the theoretical initial state; in practice a booking is
	// inserted directly as pending_payment.
	FundDraft          FundStatus = "draft"
	FundPendingPayment FundStatus = "pending_payment"
	FundInEscrow       FundStatus = "in_escrow"
	FundCompleted      FundStatus = "completed"
	FundRefunded       FundStatus = "refunded"
	FundCancelled      FundStatus = "cancelled"
	// FundFailed marks an abandoned payment session, detected by an external
	// sweep rather than by this subsystem.
	FundFailed FundStatus = "failed"
)

var transitions = map[FundStatus][]FundStatus{
	FundDraft:          {FundPendingPayment},
	FundPendingPayment: {FundInEscrow, FundFailed, FundCancelled},
	FundInEscrow:       {FundCompleted, FundRefunded, FundCancelled},
}

func (s FundStatus) Valid() bool {
	switch s {
	case FundDraft, FundPendingPayment, FundInEscrow, FundCompleted, FundRefunded, FundCancelled, FundFailed:
		return true
	}
	return false
}

func (s FundStatus) Terminal() bool {
	switch s {
	case FundCompleted, FundRefunded, FundCancelled, FundFailed:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is a legal step. Funds must be
// confirmed held before fulfilment or refund, so nothing skips in_escrow.
func CanTransition(from, to FundStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
