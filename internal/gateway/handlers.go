package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/petalworks/registry/backend/internal/registry"
)

// handlerSet holds the route handlers and their shared dependencies.
type handlerSet struct {
	store    registry.Store
	validate *validator.Validate
}

func newHandlerSet(store registry.Store) *handlerSet {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Report validation failures under the wire field names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &handlerSet{store: store, validate: validate}
}

type giftPayload struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	ImageURL      string   `json:"imageUrl" validate:"required"`
	PersonalNote  string   `json:"personalNote" validate:"required"`
	PurchaseLinks []string `json:"purchaseLinks" validate:"required,min=1,dive,required,url"`
	Reserved      *bool    `json:"reserved"`
	ReservedBy    *string  `json:"reservedBy"`
}

type giftPatchPayload struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	ImageURL      *string   `json:"imageUrl"`
	PersonalNote  *string   `json:"personalNote"`
	PurchaseLinks *[]string `json:"purchaseLinks"`
	Reserved      *bool     `json:"reserved"`
	ReservedBy    *string   `json:"reservedBy"`
}

type reservePayload struct {
	GuestName string `json:"guestName" validate:"required"`
}

type messagePayload struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// statusMessage is the body of operation acknowledgements.
type statusMessage struct {
	Message string `json:"message"`
}

func (h *handlerSet) listGifts(ctx context.Context, req *Request) (*Response, error) {
	gifts, err := h.store.ListGifts(ctx)
	if err != nil {
		return nil, Internal("Failed to fetch gifts").WithCause(err)
	}
	if gifts == nil {
		gifts = []registry.Gift{}
	}
	return &Response{Status: http.StatusOK, Body: gifts}, nil
}

func (h *handlerSet) getGift(ctx context.Context, req *Request) (*Response, error) {
	giftID, err := requireGiftID(req)
	if err != nil {
		return nil, err
	}

	gift, err := h.store.GetGift(ctx, giftID)
	if errors.Is(err, registry.ErrGiftNotFound) {
		return nil, NotFound("Gift not found")
	}
	if err != nil {
		return nil, Internal("Failed to fetch gift").WithCause(err)
	}
	return &Response{Status: http.StatusOK, Body: gift}, nil
}

func (h *handlerSet) createGift(ctx context.Context, req *Request) (*Response, error) {
	var payload giftPayload
	if err := decodeJSON(req, &payload); err != nil {
		return nil, err
	}
	if err := h.checkPayload(payload); err != nil {
		return nil, err
	}

	gift, err := h.store.CreateGift(ctx, registry.GiftInput{
		Title:         payload.Title,
		Description:   payload.Description,
		ImageURL:      payload.ImageURL,
		PersonalNote:  payload.PersonalNote,
		PurchaseLinks: payload.PurchaseLinks,
		Reserved:      payload.Reserved,
		ReservedBy:    payload.ReservedBy,
	})
	if err != nil {
		return nil, Internal("Failed to create gift").WithCause(err)
	}
	return &Response{Status: http.StatusCreated, Body: gift}, nil
}

func (h *handlerSet) editGift(ctx context.Context, req *Request) (*Response, error) {
	giftID, err := requireGiftID(req)
	if err != nil {
		return nil, err
	}

	var payload giftPatchPayload
	if err := decodeJSON(req, &payload); err != nil {
		return nil, err
	}

	updated, err := h.store.UpdateGift(ctx, giftID, registry.GiftPatch{
		Title:         payload.Title,
		Description:   payload.Description,
		ImageURL:      payload.ImageURL,
		PersonalNote:  payload.PersonalNote,
		PurchaseLinks: payload.PurchaseLinks,
		Reserved:      payload.Reserved,
		ReservedBy:    payload.ReservedBy,
	})
	if err != nil {
		return nil, Internal("Failed to update gift").WithCause(err)
	}
	if updated == nil {
		return nil, NotFound("Gift not found")
	}
	return &Response{Status: http.StatusCreated, Body: updated}, nil
}

func (h *handlerSet) deleteGift(ctx context.Context, req *Request) (*Response, error) {
	giftID, err := requireGiftID(req)
	if err != nil {
		return nil, err
	}

	err = h.store.DeleteGift(ctx, giftID)
	if errors.Is(err, registry.ErrGiftNotFound) {
		return nil, NotFound("Gift not found")
	}
	if err != nil {
		return nil, Internal("Failed to delete gift").WithCause(err)
	}
	return &Response{Status: http.StatusOK, Body: statusMessage{Message: "Gift deleted successfully"}}, nil
}

func (h *handlerSet) reserveGift(ctx context.Context, req *Request) (*Response, error) {
	giftID, err := requireGiftID(req)
	if err != nil {
		return nil, err
	}

	var payload reservePayload
	if err := decodeJSON(req, &payload); err != nil {
		return nil, err
	}
	if err := h.checkPayload(payload); err != nil {
		return nil, err
	}

	reservation, err := h.store.ReserveGift(ctx, giftID, payload.GuestName)
	switch {
	case errors.Is(err, registry.ErrGiftNotFound):
		return nil, NotFound("Gift not found")
	case errors.Is(err, registry.ErrGiftAlreadyReserved):
		return nil, Conflict("Gift already reserved")
	case errors.Is(err, registry.ErrMissingGuestName):
		return nil, Invalid("Guest name is required", nil)
	case err != nil:
		return nil, Internal("Failed to reserve gift").WithCause(err)
	}
	return &Response{Status: http.StatusCreated, Body: reservation}, nil
}

func (h *handlerSet) createMessage(ctx context.Context, req *Request) (*Response, error) {
	var payload messagePayload
	if err := decodeJSON(req, &payload); err != nil {
		return nil, err
	}
	if err := h.checkPayload(payload); err != nil {
		return nil, err
	}

	message, err := h.store.CreateMessage(ctx, registry.MessageInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Message: payload.Message,
	})
	if err != nil {
		return nil, Internal("Failed to create message").WithCause(err)
	}
	return &Response{Status: http.StatusCreated, Body: message}, nil
}

func (h *handlerSet) listMessages(ctx context.Context, req *Request) (*Response, error) {
	messages, err := h.store.ListMessages(ctx)
	if err != nil {
		return nil, Internal("Failed to fetch messages").WithCause(err)
	}
	if messages == nil {
		messages = []registry.Message{}
	}
	return &Response{Status: http.StatusOK, Body: messages}, nil
}

func requireGiftID(req *Request) (string, error) {
	giftID := req.Params["id"]
	if giftID == "" {
		return "", Invalid("Gift ID not provided", nil)
	}
	return giftID, nil
}

func decodeJSON(req *Request, dest any) error {
	if len(req.Body) == 0 {
		return Invalid("No data provided", nil)
	}
	if err := json.Unmarshal(req.Body, dest); err != nil {
		return Invalid("Invalid request body", nil).WithCause(err)
	}
	return nil
}

func (h *handlerSet) checkPayload(payload any) error {
	err := h.validate.Struct(payload)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			fields[fieldErr.Field()] = validationFailureText(fieldErr)
		}
	}
	return Invalid("Invalid request data", fields).WithCause(err)
}

func validationFailureText(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return "must not be empty"
	default:
		return "is invalid"
	}
}
