package model

import (
	"time"
)

// Vendor represents the vendor model stored in the database.
// The four *_rate/_avg/_time fields are the cached performance metrics,
// recomputed synchronously on every purchase-order mutation. They are
// server-owned: create/update requests never set them directly.
type Vendor struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"type:varchar(100);index;not null"`
	ContactDetails string `json:"contact_details" gorm:"type:text"`
	Address        string `json:"address" gorm:"type:text"`

	// VendorCode is a short human-facing identifier, 5 lowercase hex
	// characters, generated once at creation when absent. Immutable.
	VendorCode string `json:"vendor_code" gorm:"type:varchar(50);uniqueIndex"`

	OnTimeDeliveryRate  float64 `json:"on_time_delivery_rate" gorm:"default:0"`
	QualityRatingAvg    float64 `json:"quality_rating_avg" gorm:"default:0"`
	AverageResponseTime float64 `json:"average_response_time" gorm:"default:0"`
	FulfillmentRate     float64 `json:"fulfillment_rate" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Deleting a vendor deletes its purchase orders and snapshots.
	PurchaseOrders []PurchaseOrder         `json:"purchase_orders,omitempty" gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
	History        []HistoricalPerformance `json:"-" gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Vendor
func (Vendor) TableName() string {
	return "vendors"
}
