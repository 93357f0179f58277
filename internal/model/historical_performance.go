package model

import "time"

// HistoricalPerformance is an immutable snapshot of a vendor's four cached
// metrics at a point in time. Rows are written only by the explicit snapshot
// endpoint, never by the recomputation path, and are used for trend
// reporting.
type HistoricalPerformance struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	VendorID uint      `json:"vendor" gorm:"index;not null"`
	Date     time.Time `json:"date" gorm:"not null"`

	OnTimeDeliveryRate  float64 `json:"on_time_delivery_rate"`
	QualityRatingAvg    float64 `json:"quality_rating_avg"`
	AverageResponseTime float64 `json:"average_response_time"`
	FulfillmentRate     float64 `json:"fulfillment_rate"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for HistoricalPerformance
func (HistoricalPerformance) TableName() string {
	return "historical_performances"
}
