package registry

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errMissingDatabase   = errors.New("database handle is required")
	errMissingIDProvider = errors.New("id provider is required")
	noOpLogger           = zap.NewNop()
)

// SQLStoreConfig carries the dependencies of a SQLStore.
type SQLStoreConfig struct {
	Database   *gorm.DB
	Clock      func() time.Time
	IDProvider IDProvider
	Logger     *zap.Logger
}

// SQLStore persists the registry relations through GORM.
type SQLStore struct {
	db         *gorm.DB
	clock      func() time.Time
	idProvider IDProvider
	logger     *zap.Logger
}

// NewSQLStore validates the configuration and returns a SQLStore.
func NewSQLStore(cfg SQLStoreConfig) (*SQLStore, error) {
	if cfg.Database == nil {
		return nil, newStoreError(opNewStore, "missing_database", errMissingDatabase)
	}
	if cfg.IDProvider == nil {
		return nil, newStoreError(opNewStore, "missing_id_provider", errMissingIDProvider)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	return &SQLStore{
		db:         cfg.Database,
		clock:      clock,
		idProvider: cfg.IDProvider,
		logger:     logger,
	}, nil
}

func (s *SQLStore) ListGifts(ctx context.Context) ([]Gift, error) {
	var gifts []Gift
	if err := s.db.WithContext(ctx).Order("id").Find(&gifts).Error; err != nil {
		s.logError(opListGifts, "query_failed", err)
		return nil, newStoreError(opListGifts, "query_failed", err)
	}
	return gifts, nil
}

func (s *SQLStore) GetGift(ctx context.Context, id string) (Gift, error) {
	var gift Gift
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&gift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Gift{}, ErrGiftNotFound
	}
	if err != nil {
		s.logError(opGetGift, "query_failed", err, zap.String("gift_id", id))
		return Gift{}, newStoreError(opGetGift, "query_failed", err)
	}
	return gift, nil
}

func (s *SQLStore) CreateGift(ctx context.Context, input GiftInput) (Gift, error) {
	id, err := s.idProvider.NewID()
	if err != nil {
		s.logError(opCreateGift, "id_generation_failed", err)
		return Gift{}, newStoreError(opCreateGift, "id_generation_failed", err)
	}

	gift := buildGift(id, input)
	if err := s.db.WithContext(ctx).Create(&gift).Error; err != nil {
		s.logError(opCreateGift, "insert_failed", err, zap.String("gift_id", id))
		return Gift{}, newStoreError(opCreateGift, "insert_failed", err)
	}
	return gift, nil
}

func (s *SQLStore) UpdateGift(ctx context.Context, id string, patch GiftPatch) (*Gift, error) {
	var updated *Gift
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gift Gift
		err := tx.Where("id = ?", id).Take(&gift).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return newStoreError(opUpdateGift, "select_failed", err)
		}

		applyGiftPatch(&gift, patch)
		if err := tx.Save(&gift).Error; err != nil {
			return newStoreError(opUpdateGift, "save_failed", err)
		}
		updated = &gift
		return nil
	})
	if txErr != nil {
		s.logError(opUpdateGift, "transaction_failed", txErr, zap.String("gift_id", id))
		return nil, txErr
	}
	return updated, nil
}

func (s *SQLStore) DeleteGift(ctx context.Context, id string) error {
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gift Gift
		err := tx.Where("id = ?", id).Take(&gift).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGiftNotFound
		}
		if err != nil {
			return newStoreError(opDeleteGift, "select_failed", err)
		}

		// Reservations referencing the gift go first.
		if err := tx.Where("gift_id = ?", id).Delete(&Reservation{}).Error; err != nil {
			return newStoreError(opDeleteGift, "reservation_delete_failed", err)
		}
		if err := tx.Where("id = ?", id).Delete(&Gift{}).Error; err != nil {
			return newStoreError(opDeleteGift, "gift_delete_failed", err)
		}
		return nil
	})
	if txErr != nil && !errors.Is(txErr, ErrGiftNotFound) {
		s.logError(opDeleteGift, "transaction_failed", txErr, zap.String("gift_id", id))
	}
	return txErr
}

func (s *SQLStore) ReserveGift(ctx context.Context, giftID, guestName string) (Reservation, error) {
	if strings.TrimSpace(guestName) == "" {
		return Reservation{}, ErrMissingGuestName
	}

	var reservation Reservation
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var gift Gift
		err := tx.Where("id = ?", giftID).Take(&gift).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGiftNotFound
		}
		if err != nil {
			return newStoreError(opReserveGift, "gift_select_failed", err)
		}

		// The conditional update gates the reservation insert: its
		// affected-row count is the only authority on whether this
		// attempt won, so two concurrent attempts cannot both succeed.
		result := tx.Model(&Gift{}).
			Where("id = ? AND reserved = ?", giftID, false).
			Updates(map[string]any{"reserved": true, "reserved_by": guestName})
		if result.Error != nil {
			return newStoreError(opReserveGift, "gift_update_failed", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrGiftAlreadyReserved
		}

		id, err := s.idProvider.NewID()
		if err != nil {
			return newStoreError(opReserveGift, "id_generation_failed", err)
		}
		reservation = Reservation{
			ID:        id,
			GiftID:    giftID,
			GuestName: guestName,
			CreatedAt: s.clock().UTC(),
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return newStoreError(opReserveGift, "reservation_insert_failed", err)
		}
		return nil
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrGiftNotFound) && !errors.Is(txErr, ErrGiftAlreadyReserved) {
			s.logError(opReserveGift, "transaction_failed", txErr, zap.String("gift_id", giftID))
		}
		return Reservation{}, txErr
	}
	return reservation, nil
}

func (s *SQLStore) ListReservations(ctx context.Context) ([]Reservation, error) {
	var reservations []Reservation
	if err := s.db.WithContext(ctx).Order("created_at").Find(&reservations).Error; err != nil {
		s.logError(opListReservs, "query_failed", err)
		return nil, newStoreError(opListReservs, "query_failed", err)
	}
	return reservations, nil
}

func (s *SQLStore) CreateMessage(ctx context.Context, input MessageInput) (Message, error) {
	id, err := s.idProvider.NewID()
	if err != nil {
		s.logError(opCreateMessage, "id_generation_failed", err)
		return Message{}, newStoreError(opCreateMessage, "id_generation_failed", err)
	}

	message := Message{
		ID:        id,
		Name:      input.Name,
		Email:     input.Email,
		Message:   input.Message,
		CreatedAt: s.clock().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		s.logError(opCreateMessage, "insert_failed", err, zap.String("message_id", id))
		return Message{}, newStoreError(opCreateMessage, "insert_failed", err)
	}
	return message, nil
}

func (s *SQLStore) ListMessages(ctx context.Context) ([]Message, error) {
	var messages []Message
	if err := s.db.WithContext(ctx).Order("created_at").Find(&messages).Error; err != nil {
		s.logError(opListMessages, "query_failed", err)
		return nil, newStoreError(opListMessages, "query_failed", err)
	}
	return messages, nil
}

func (s *SQLStore) logError(operation, reason string, err error, fields ...zap.Field) {
	attrs := []zap.Field{
		zap.String("operation", operation),
		zap.String("reason", reason),
	}
	if err != nil {
		attrs = append(attrs, zap.Error(err))
	}
	attrs = append(attrs, fields...)
	s.logger.Error("registry store error", attrs...)
}
