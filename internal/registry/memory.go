package registry

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStoreConfig carries the dependencies of a MemoryStore.
type MemoryStoreConfig struct {
	Clock      func() time.Time
	IDProvider IDProvider
}

// MemoryStore is an in-process Store. State lives for the lifetime of
// the process; a mutex serializes the reservation read-modify-write.
type MemoryStore struct {
	mu           sync.Mutex
	gifts        map[string]Gift
	giftOrder    []string
	reservations []Reservation
	messages     []Message
	clock        func() time.Time
	idProvider   IDProvider
}

// NewMemoryStore validates the configuration and returns an empty MemoryStore.
func NewMemoryStore(cfg MemoryStoreConfig) (*MemoryStore, error) {
	if cfg.IDProvider == nil {
		return nil, newStoreError(opNewStore, "missing_id_provider", errMissingIDProvider)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &MemoryStore{
		gifts:      make(map[string]Gift),
		clock:      clock,
		idProvider: cfg.IDProvider,
	}, nil
}

func (s *MemoryStore) ListGifts(ctx context.Context) ([]Gift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gifts := make([]Gift, 0, len(s.giftOrder))
	for _, id := range s.giftOrder {
		gifts = append(gifts, cloneGift(s.gifts[id]))
	}
	return gifts, nil
}

func (s *MemoryStore) GetGift(ctx context.Context, id string) (Gift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gift, ok := s.gifts[id]
	if !ok {
		return Gift{}, ErrGiftNotFound
	}
	return cloneGift(gift), nil
}

func (s *MemoryStore) CreateGift(ctx context.Context, input GiftInput) (Gift, error) {
	id, err := s.idProvider.NewID()
	if err != nil {
		return Gift{}, newStoreError(opCreateGift, "id_generation_failed", err)
	}

	gift := buildGift(id, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gifts[id] = cloneGift(gift)
	s.giftOrder = append(s.giftOrder, id)
	return gift, nil
}

func (s *MemoryStore) UpdateGift(ctx context.Context, id string, patch GiftPatch) (*Gift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gift, ok := s.gifts[id]
	if !ok {
		return nil, nil
	}

	applyGiftPatch(&gift, patch)
	s.gifts[id] = cloneGift(gift)
	return &gift, nil
}

func (s *MemoryStore) DeleteGift(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.gifts[id]; !ok {
		return ErrGiftNotFound
	}

	remaining := s.reservations[:0]
	for _, reservation := range s.reservations {
		if reservation.GiftID != id {
			remaining = append(remaining, reservation)
		}
	}
	s.reservations = remaining

	delete(s.gifts, id)
	for index, giftID := range s.giftOrder {
		if giftID == id {
			s.giftOrder = append(s.giftOrder[:index], s.giftOrder[index+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) ReserveGift(ctx context.Context, giftID, guestName string) (Reservation, error) {
	if strings.TrimSpace(guestName) == "" {
		return Reservation{}, ErrMissingGuestName
	}

	id, err := s.idProvider.NewID()
	if err != nil {
		return Reservation{}, newStoreError(opReserveGift, "id_generation_failed", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	gift, ok := s.gifts[giftID]
	if !ok {
		return Reservation{}, ErrGiftNotFound
	}
	if gift.Reserved {
		return Reservation{}, ErrGiftAlreadyReserved
	}

	gift.Reserved = true
	gift.ReservedBy = &guestName
	s.gifts[giftID] = gift

	reservation := Reservation{
		ID:        id,
		GiftID:    giftID,
		GuestName: guestName,
		CreatedAt: s.clock().UTC(),
	}
	s.reservations = append(s.reservations, reservation)
	return reservation, nil
}

func (s *MemoryStore) ListReservations(ctx context.Context) ([]Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservations := make([]Reservation, len(s.reservations))
	copy(reservations, s.reservations)
	return reservations, nil
}

func (s *MemoryStore) CreateMessage(ctx context.Context, input MessageInput) (Message, error) {
	id, err := s.idProvider.NewID()
	if err != nil {
		return Message{}, newStoreError(opCreateMessage, "id_generation_failed", err)
	}

	message := Message{
		ID:        id,
		Name:      input.Name,
		Email:     input.Email,
		Message:   input.Message,
		CreatedAt: s.clock().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return message, nil
}

func (s *MemoryStore) ListMessages(ctx context.Context) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := make([]Message, len(s.messages))
	copy(messages, s.messages)
	return messages, nil
}

func cloneGift(gift Gift) Gift {
	cloned := gift
	if gift.PurchaseLinks != nil {
		cloned.PurchaseLinks = append([]string(nil), gift.PurchaseLinks...)
	}
	if gift.ReservedBy != nil {
		reservedBy := *gift.ReservedBy
		cloned.ReservedBy = &reservedBy
	}
	return cloned
}
