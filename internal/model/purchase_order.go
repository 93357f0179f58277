package model

import (
	"time"

	"gorm.io/datatypes"
)

// OrderStatus type for purchase order status
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCanceled  OrderStatus = "canceled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCanceled:
		return true
	}
	return false
}

// PurchaseOrder represents purchase_orders table. Each order belongs to
// exactly one vendor; every create, update or delete of a row here must be
// followed by a metrics recomputation for that vendor.
type PurchaseOrder struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	VendorID uint `json:"vendor" gorm:"index;not null"`

	// PONumber is caller-assigned at creation and immutable thereafter.
	PONumber string `json:"po_number" gorm:"type:varchar(50);uniqueIndex;not null"`

	OrderDate    time.Time `json:"order_date" gorm:"not null"`
	DeliveryDate time.Time `json:"delivery_date" gorm:"not null"`
	IssueDate    time.Time `json:"issue_date" gorm:"not null"`

	// Items is an opaque payload, stored and returned as-is.
	Items    datatypes.JSON `json:"items" gorm:"type:jsonb"`
	Quantity int            `json:"quantity" gorm:"not null"`
	Status   OrderStatus    `json:"status" gorm:"type:varchar(20);default:'pending'"`

	// QualityRating is set once an admin has rated the order.
	QualityRating *float64 `json:"quality_rating,omitempty"`
	// AcknowledgmentDate is set once the vendor has acknowledged the order.
	AcknowledgmentDate *time.Time `json:"acknowledgment_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for PurchaseOrder
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}
