package listing

import "errors"

var (
	ErrNotListed            = errors.New("listing not found or no longer active")
	ErrAlreadyListed        = errors.New("asset is already listed")
	ErrUnauthorized         = errors.New("caller lacks the required role")
	ErrInvalidPrice         = errors.New("purchase price must be positive and escrow amount must not exceed it")
	ErrInvalidDepositAmount = errors.New("deposit must equal the escrow amount exactly")
)

// FinalizationBlockedError names the first unmet finalize precondition.
// Checks run in a fixed order (active → inspection → approvals → balance) so
// the reason is reproducible for a given state.
type FinalizationBlockedError struct {
	Reason string
}

func (e *FinalizationBlockedError) Error() string {
	return "finalization blocked: " + e.Reason
}

// BlockedReason extracts the reason when err is a FinalizationBlockedError.
func BlockedReason(err error) (string, bool) {
	var fb *FinalizationBlockedError
	if errors.As(err, &fb) {
		return fb.Reason, true
	}
	return "", false
}
