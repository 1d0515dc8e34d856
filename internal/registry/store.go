package registry

import "context"

// Store is the persistence surface for gifts, reservations, and messages.
// Two implementations exist: SQLStore over a SQLite database for normal
// operation and MemoryStore for tests and ephemeral deployments.
type Store interface {
	// ListGifts returns every gift in store order.
	ListGifts(ctx context.Context) ([]Gift, error)

	// GetGift returns the gift for the id or ErrGiftNotFound.
	GetGift(ctx context.Context, id string) (Gift, error)

	// CreateGift assigns a fresh id and persists the gift. Reserved
	// defaults to false and ReservedBy to null when not supplied.
	CreateGift(ctx context.Context, input GiftInput) (Gift, error)

	// UpdateGift merges the non-nil patch fields into the stored gift and
	// returns the updated record. An absent id yields (nil, nil); callers
	// treat the absent result as not found.
	UpdateGift(ctx context.Context, id string, patch GiftPatch) (*Gift, error)

	// DeleteGift removes the gift and, first, every reservation that
	// references it. Returns ErrGiftNotFound if the gift does not exist.
	DeleteGift(ctx context.Context, id string) error

	// ReserveGift transitions the gift from available to reserved on
	// behalf of guestName and records the reservation, atomically. A gift
	// can be reserved at most once: concurrent attempts against the same
	// gift produce exactly one reservation, the rest fail with
	// ErrGiftAlreadyReserved.
	ReserveGift(ctx context.Context, giftID, guestName string) (Reservation, error)

	// ListReservations returns every reservation in store order.
	ListReservations(ctx context.Context) ([]Reservation, error)

	// CreateMessage assigns an id and server-side timestamp and appends
	// the message.
	CreateMessage(ctx context.Context, input MessageInput) (Message, error)

	// ListMessages returns every message in store order.
	ListMessages(ctx context.Context) ([]Message, error)
}

// buildGift applies creation defaults shared by both store implementations.
func buildGift(id string, input GiftInput) Gift {
	gift := Gift{
		ID:            id,
		Title:         input.Title,
		Description:   input.Description,
		ImageURL:      input.ImageURL,
		PersonalNote:  input.PersonalNote,
		PurchaseLinks: input.PurchaseLinks,
	}
	if input.Reserved != nil {
		gift.Reserved = *input.Reserved
	}
	if input.ReservedBy != nil {
		gift.ReservedBy = input.ReservedBy
	}
	return gift
}

// applyGiftPatch merges non-nil patch fields into the gift.
func applyGiftPatch(gift *Gift, patch GiftPatch) {
	if patch.Title != nil {
		gift.Title = *patch.Title
	}
	if patch.Description != nil {
		gift.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		gift.ImageURL = *patch.ImageURL
	}
	if patch.PersonalNote != nil {
		gift.PersonalNote = *patch.PersonalNote
	}
	if patch.PurchaseLinks != nil {
		gift.PurchaseLinks = *patch.PurchaseLinks
	}
	if patch.Reserved != nil {
		gift.Reserved = *patch.Reserved
	}
	if patch.ReservedBy != nil {
		gift.ReservedBy = patch.ReservedBy
	}
}
