package registry

import "time"

// Gift is a catalog entry a guest may claim. Reserved transitions
// false -> true at most once; ReservedBy is set only alongside that
// transition and there is no path back to unreserved short of deletion.
type Gift struct {
	ID            string   `json:"id" gorm:"column:id;primaryKey;size:190;not null"`
	Title         string   `json:"title" gorm:"column:title;not null"`
	Description   string   `json:"description" gorm:"column:description;type:text;not null"`
	ImageURL      string   `json:"imageUrl" gorm:"column:image_url;not null"`
	PersonalNote  string   `json:"personalNote" gorm:"column:personal_note;type:text;not null"`
	PurchaseLinks []string `json:"purchaseLinks" gorm:"column:purchase_links;type:text;serializer:json;not null"`
	Reserved      bool     `json:"reserved" gorm:"column:reserved;not null;default:false"`
	ReservedBy    *string  `json:"reservedBy" gorm:"column:reserved_by"`
}

// TableName provides the explicit table binding for GORM.
func (Gift) TableName() string {
	return "gifts"
}

// Reservation is the append-only audit record of a successful claim.
// It references its gift by id; deleting the gift cascades here.
type Reservation struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey;size:190;not null"`
	GiftID    string    `json:"giftId" gorm:"column:gift_id;not null;index:idx_reservations_gift"`
	GuestName string    `json:"guestName" gorm:"column:guest_name;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null"`
}

// TableName provides the explicit table binding for GORM.
func (Reservation) TableName() string {
	return "reservations"
}

// Message is a guest-submitted well-wish. Immutable once created.
type Message struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey;size:190;not null"`
	Name      string    `json:"name" gorm:"column:name;not null"`
	Email     string    `json:"email" gorm:"column:email;not null"`
	Message   string    `json:"message" gorm:"column:message;type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null"`
}

// TableName provides the explicit table binding for GORM.
func (Message) TableName() string {
	return "messages"
}

// GiftInput carries the caller-supplied fields for a new gift. Reserved
// and ReservedBy are optional and default to false/null.
type GiftInput struct {
	Title         string
	Description   string
	ImageURL      string
	PersonalNote  string
	PurchaseLinks []string
	Reserved      *bool
	ReservedBy    *string
}

// GiftPatch describes a partial update; nil fields are left untouched.
type GiftPatch struct {
	Title         *string
	Description   *string
	ImageURL      *string
	PersonalNote  *string
	PurchaseLinks *[]string
	Reserved      *bool
	ReservedBy    *string
}

// MessageInput carries the caller-supplied fields for a new message.
type MessageInput struct {
	Name    string
	Email   string
	Message string
}
