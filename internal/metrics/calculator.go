// Package metrics computes vendor performance metrics from a snapshot of a
// vendor's purchase orders. All functions are pure: they take the full order
// set and return a single value, so recomputing with an unchanged order set
// always yields the same result.
//
// Two variant families exist. The cached-update variants feed the metric
// fields persisted on the vendor row; the report variants feed the on-demand
// performance endpoint. The two paths disagree on the response-time unit
// (whole days vs hours) and on what counts as a fulfilled order. The
// divergence is observable behavior and the variants are kept separate on
// purpose; do not unify them without a product decision.
package metrics

import (
	"math"
	"time"

	"vendor-service/internal/model"
)

const hoursPerDay = 24

// OnTimeDeliveryRate returns the fraction of completed orders whose
// delivery date falls no later than their acknowledgment date. A completed
// order without an acknowledgment still counts toward the denominator, so
// it is always treated as not on time. Returns 0 when the vendor has no
// completed orders.
func OnTimeDeliveryRate(orders []model.PurchaseOrder) float64 {
	var completed, onTime int
	for _, po := range orders {
		if po.Status != model.OrderCompleted {
			continue
		}
		completed++
		if po.AcknowledgmentDate != nil && !po.DeliveryDate.After(*po.AcknowledgmentDate) {
			onTime++
		}
	}
	if completed == 0 {
		return 0
	}
	return float64(onTime) / float64(completed)
}

// QualityRatingAvg returns the arithmetic mean of quality ratings over
// completed, rated orders. Returns 0 when no completed order has a rating.
func QualityRatingAvg(orders []model.PurchaseOrder) float64 {
	var sum float64
	var rated int
	for _, po := range orders {
		if po.Status != model.OrderCompleted || po.QualityRating == nil {
			continue
		}
		sum += *po.QualityRating
		rated++
	}
	if rated == 0 {
		return 0
	}
	return sum / float64(rated)
}

// AverageResponseTimeDays is the cached-update response time: the mean, over
// every acknowledged order regardless of status, of the elapsed whole days
// between issue and acknowledgment. Partial days are floored per order
// before averaging. Returns 0 when no order has been acknowledged.
func AverageResponseTimeDays(orders []model.PurchaseOrder) float64 {
	var sum float64
	var acked int
	for _, po := range orders {
		if po.AcknowledgmentDate == nil {
			continue
		}
		days := math.Floor(po.AcknowledgmentDate.Sub(po.IssueDate).Hours() / hoursPerDay)
		sum += days
		acked++
	}
	if acked == 0 {
		return 0
	}
	return sum / float64(acked)
}

// ReportAverageResponseTimeHours is the on-demand report response time: the
// mean, over every acknowledged order, of the elapsed time between issue and
// acknowledgment expressed in hours. Returns 0 when no order has been
// acknowledged.
func ReportAverageResponseTimeHours(orders []model.PurchaseOrder) float64 {
	var sumSeconds float64
	var acked int
	for _, po := range orders {
		if po.AcknowledgmentDate == nil {
			continue
		}
		sumSeconds += po.AcknowledgmentDate.Sub(po.IssueDate).Seconds()
		acked++
	}
	if acked == 0 {
		return 0
	}
	return sumSeconds / float64(acked) / time.Hour.Seconds()
}

// FulfillmentRate is the cached-update fulfillment rate: the fraction of all
// orders that are both completed and quality-rated. Returns 0 when the
// vendor has no orders.
func FulfillmentRate(orders []model.PurchaseOrder) float64 {
	if len(orders) == 0 {
		return 0
	}
	var fulfilled int
	for _, po := range orders {
		if po.Status == model.OrderCompleted && po.QualityRating != nil {
			fulfilled++
		}
	}
	return float64(fulfilled) / float64(len(orders))
}

// ReportFulfillmentRate is the on-demand report fulfillment rate: the
// fraction of all orders that are completed, ratings not considered.
// Returns 0 when the vendor has no orders.
func ReportFulfillmentRate(orders []model.PurchaseOrder) float64 {
	if len(orders) == 0 {
		return 0
	}
	var completed int
	for _, po := range orders {
		if po.Status == model.OrderCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(orders))
}

// Performance bundles the four metric values computed from one order set.
type Performance struct {
	OnTimeDeliveryRate  float64 `json:"on_time_delivery_rate"`
	QualityRatingAvg    float64 `json:"quality_rating_avg"`
	AverageResponseTime float64 `json:"average_response_time"`
	FulfillmentRate     float64 `json:"fulfillment_rate"`
}

// Cached computes the four cached-update metrics (response time in whole
// days, fulfillment requiring a quality rating).
func Cached(orders []model.PurchaseOrder) Performance {
	return Performance{
		OnTimeDeliveryRate:  OnTimeDeliveryRate(orders),
		QualityRatingAvg:    QualityRatingAvg(orders),
		AverageResponseTime: AverageResponseTimeDays(orders),
		FulfillmentRate:     FulfillmentRate(orders),
	}
}

// Report computes the four on-demand report metrics (response time in hours,
// fulfillment counting every completed order).
func Report(orders []model.PurchaseOrder) Performance {
	return Performance{
		OnTimeDeliveryRate:  OnTimeDeliveryRate(orders),
		QualityRatingAvg:    QualityRatingAvg(orders),
		AverageResponseTime: ReportAverageResponseTimeHours(orders),
		FulfillmentRate:     ReportFulfillmentRate(orders),
	}
}
