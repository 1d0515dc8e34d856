package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrGiftNotFound indicates that no gift exists for the requested id.
	ErrGiftNotFound = errors.New("registry: gift not found")
	// ErrGiftAlreadyReserved indicates a reservation attempt against a
	// gift that is already in the reserved state.
	ErrGiftAlreadyReserved = errors.New("registry: gift already reserved")
	// ErrMissingGuestName indicates a reservation attempt without a guest name.
	ErrMissingGuestName = errors.New("registry: guest name is required")
)

// StoreError wraps an infrastructure failure with a dotted operation code.
// Domain conditions (ErrGiftNotFound, ErrGiftAlreadyReserved) are surfaced
// as sentinel errors instead and never arrive wrapped in a StoreError.
type StoreError struct {
	code string
	err  error
}

func (e *StoreError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *StoreError) Unwrap() error {
	return e.err
}

func (e *StoreError) Code() string {
	return e.code
}

const (
	opNewStore      = "registry.store.new"
	opListGifts     = "registry.list_gifts"
	opGetGift       = "registry.get_gift"
	opCreateGift    = "registry.create_gift"
	opUpdateGift    = "registry.update_gift"
	opDeleteGift    = "registry.delete_gift"
	opReserveGift   = "registry.reserve_gift"
	opCreateMessage = "registry.create_message"
	opListMessages  = "registry.list_messages"
	opListReservs   = "registry.list_reservations"
	opSeedGifts     = "registry.seed_gifts"
)

func newStoreError(operation, reason string, cause error) error {
	code := fmt.Sprintf("%s.%s", operation, reason)
	return &StoreError{code: code, err: cause}
}
