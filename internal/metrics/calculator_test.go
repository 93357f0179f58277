package metrics

import (
	"math"
	"testing"
	"time"

	"vendor-service/internal/model"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ratingPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

// order builds a purchase order issued at baseTime with the given status,
// delivery offset and optional acknowledgment offset (hours from issue).
func order(status model.OrderStatus, deliveryHours float64, ackHours *float64, rating *float64) model.PurchaseOrder {
	po := model.PurchaseOrder{
		Status:       status,
		OrderDate:    baseTime,
		IssueDate:    baseTime,
		DeliveryDate: baseTime.Add(time.Duration(deliveryHours * float64(time.Hour))),
		Quantity:     10,
	}
	if ackHours != nil {
		po.AcknowledgmentDate = timePtr(baseTime.Add(time.Duration(*ackHours * float64(time.Hour))))
	}
	po.QualityRating = rating
	return po
}

func hoursPtr(v float64) *float64 { return &v }

func TestEmptyOrderSetYieldsZeros(t *testing.T) {
	var orders []model.PurchaseOrder

	for name, got := range map[string]float64{
		"OnTimeDeliveryRate":             OnTimeDeliveryRate(orders),
		"QualityRatingAvg":               QualityRatingAvg(orders),
		"AverageResponseTimeDays":        AverageResponseTimeDays(orders),
		"ReportAverageResponseTimeHours": ReportAverageResponseTimeHours(orders),
		"FulfillmentRate":                FulfillmentRate(orders),
		"ReportFulfillmentRate":          ReportFulfillmentRate(orders),
	} {
		if got != 0 {
			t.Errorf("%s on empty order set: got %v, want 0", name, got)
		}
		if math.IsNaN(got) {
			t.Errorf("%s on empty order set returned NaN", name)
		}
	}
}

func TestSingleCompletedOnTimeRatedOrder(t *testing.T) {
	// Completed, acknowledged 48h after issue, delivered on the
	// acknowledgment date, rated 4.5, as the vendor's only order.
	orders := []model.PurchaseOrder{
		order(model.OrderCompleted, 48, hoursPtr(48), ratingPtr(4.5)),
	}

	if got := OnTimeDeliveryRate(orders); got != 1.0 {
		t.Errorf("OnTimeDeliveryRate: got %v, want 1.0", got)
	}
	if got := QualityRatingAvg(orders); got != 4.5 {
		t.Errorf("QualityRatingAvg: got %v, want 4.5", got)
	}
	if got := FulfillmentRate(orders); got != 1.0 {
		t.Errorf("FulfillmentRate: got %v, want 1.0", got)
	}
	if got := AverageResponseTimeDays(orders); got != 2.0 {
		t.Errorf("AverageResponseTimeDays: got %v, want 2.0", got)
	}
	if got := ReportAverageResponseTimeHours(orders); got != 48.0 {
		t.Errorf("ReportAverageResponseTimeHours: got %v, want 48.0", got)
	}
}

func TestUnacknowledgedCompletedOrderCountsAsLate(t *testing.T) {
	// One completed+acknowledged on time, one completed but never
	// acknowledged. The second still lands in the denominator.
	orders := []model.PurchaseOrder{
		order(model.OrderCompleted, 24, hoursPtr(24), nil),
		order(model.OrderCompleted, 24, nil, nil),
	}

	if got := OnTimeDeliveryRate(orders); got != 0.5 {
		t.Errorf("OnTimeDeliveryRate: got %v, want 0.5", got)
	}
}

func TestAcknowledgmentBeforeDeliveryDateNotOnTime(t *testing.T) {
	// The numerator counts orders with delivery_date <= acknowledgment_date.
	// Acknowledged 1h before the delivery date: excluded.
	orders := []model.PurchaseOrder{
		order(model.OrderCompleted, 24, hoursPtr(23), nil),
	}
	if got := OnTimeDeliveryRate(orders); got != 0 {
		t.Errorf("OnTimeDeliveryRate: got %v, want 0", got)
	}

	// Acknowledged exactly on the delivery date: counted.
	orders = []model.PurchaseOrder{
		order(model.OrderCompleted, 24, hoursPtr(24), nil),
	}
	if got := OnTimeDeliveryRate(orders); got != 1.0 {
		t.Errorf("OnTimeDeliveryRate: got %v, want 1.0", got)
	}
}

func TestQualityAvgIgnoresPendingAndUnrated(t *testing.T) {
	orders := []model.PurchaseOrder{
		order(model.OrderCompleted, 24, nil, ratingPtr(4)),
		order(model.OrderCompleted, 24, nil, ratingPtr(2)),
		order(model.OrderCompleted, 24, nil, nil),         // unrated
		order(model.OrderPending, 24, nil, ratingPtr(5)),  // not completed
		order(model.OrderCanceled, 24, nil, ratingPtr(1)), // not completed
	}
	if got := QualityRatingAvg(orders); got != 3 {
		t.Errorf("QualityRatingAvg: got %v, want 3", got)
	}
}

func TestFulfillmentRateVariantsDiverge(t *testing.T) {
	// Completed but unrated: counts for the report variant only
	orders := []model.PurchaseOrder{
		order(model.OrderCompleted, 24, nil, nil),
		order(model.OrderPending, 24, nil, nil),
	}
	if got := FulfillmentRate(orders); got != 0 {
		t.Errorf("FulfillmentRate (cached): got %v, want 0", got)
	}
	if got := ReportFulfillmentRate(orders); got != 0.5 {
		t.Errorf("ReportFulfillmentRate: got %v, want 0.5", got)
	}
}

func TestFulfillmentRateVariantsCoincide(t *testing.T) {
	// One completed+on-time+rated order, one pending+unrated: both variants
	// compute 0.5, via their distinct formulas.
	orders := []model.PurchaseOrder{
		order(model.OrderCompleted, 48, hoursPtr(24), ratingPtr(4)),
		order(model.OrderPending, 48, nil, nil),
	}
	if got := FulfillmentRate(orders); got != 0.5 {
		t.Errorf("FulfillmentRate (cached): got %v, want 0.5", got)
	}
	if got := ReportFulfillmentRate(orders); got != 0.5 {
		t.Errorf("ReportFulfillmentRate: got %v, want 0.5", got)
	}
}

func TestResponseTimeCountsAllStatuses(t *testing.T) {
	// Acknowledged pending and canceled orders count toward response time
	orders := []model.PurchaseOrder{
		order(model.OrderPending, 24, hoursPtr(24), nil),
		order(model.OrderCanceled, 24, hoursPtr(72), nil),
		order(model.OrderCompleted, 24, nil, nil), // never acknowledged, excluded
	}
	if got := AverageResponseTimeDays(orders); got != 2.0 {
		t.Errorf("AverageResponseTimeDays: got %v, want 2.0", got)
	}
	if got := ReportAverageResponseTimeHours(orders); got != 48.0 {
		t.Errorf("ReportAverageResponseTimeHours: got %v, want 48.0", got)
	}
}

func TestResponseTimeDaysFloorsPartialDays(t *testing.T) {
	// 36h floors to 1 day on the cached path, stays 36 on the report path
	orders := []model.PurchaseOrder{
		order(model.OrderCompleted, 48, hoursPtr(36), nil),
	}
	if got := AverageResponseTimeDays(orders); got != 1.0 {
		t.Errorf("AverageResponseTimeDays: got %v, want 1.0", got)
	}
	if got := ReportAverageResponseTimeHours(orders); got != 36.0 {
		t.Errorf("ReportAverageResponseTimeHours: got %v, want 36.0", got)
	}
}

func TestRatesStayWithinBounds(t *testing.T) {
	sets := [][]model.PurchaseOrder{
		nil,
		{order(model.OrderCompleted, 24, hoursPtr(12), ratingPtr(5))},
		{
			order(model.OrderCompleted, 24, hoursPtr(12), ratingPtr(3.5)),
			order(model.OrderPending, 24, nil, nil),
			order(model.OrderCanceled, 24, hoursPtr(100), nil),
			order(model.OrderCompleted, 24, nil, nil),
		},
	}

	for i, orders := range sets {
		for name, got := range map[string]float64{
			"OnTimeDeliveryRate":    OnTimeDeliveryRate(orders),
			"FulfillmentRate":       FulfillmentRate(orders),
			"ReportFulfillmentRate": ReportFulfillmentRate(orders),
		} {
			if got < 0 || got > 1 {
				t.Errorf("set %d: %s = %v, want within [0,1]", i, name, got)
			}
		}
		if avg := QualityRatingAvg(orders); avg < 0 || avg > 5 {
			t.Errorf("set %d: QualityRatingAvg = %v, want within [0,5]", i, avg)
		}
	}
}

func TestRecomputationIsIdempotent(t *testing.T) {
	orders := []model.PurchaseOrder{
		order(model.OrderCompleted, 48, hoursPtr(30), ratingPtr(4.2)),
		order(model.OrderPending, 24, hoursPtr(10), nil),
		order(model.OrderCompleted, 12, nil, nil),
	}

	first := Cached(orders)
	second := Cached(orders)
	if first != second {
		t.Errorf("Cached not idempotent: first %+v, second %+v", first, second)
	}

	firstReport := Report(orders)
	secondReport := Report(orders)
	if firstReport != secondReport {
		t.Errorf("Report not idempotent: first %+v, second %+v", firstReport, secondReport)
	}
}

func TestCachedAndReportBundles(t *testing.T) {
	orders := []model.PurchaseOrder{
		order(model.OrderCompleted, 48, hoursPtr(36), nil), // completed, unrated, on time
		order(model.OrderPending, 24, nil, nil),
	}

	cached := Cached(orders)
	report := Report(orders)

	// Same order set, same on-time rate and quality average on both paths
	if cached.OnTimeDeliveryRate != report.OnTimeDeliveryRate {
		t.Errorf("on-time rate differs across paths: cached %v, report %v",
			cached.OnTimeDeliveryRate, report.OnTimeDeliveryRate)
	}
	if cached.QualityRatingAvg != report.QualityRatingAvg {
		t.Errorf("quality avg differs across paths: cached %v, report %v",
			cached.QualityRatingAvg, report.QualityRatingAvg)
	}

	// The two divergent formulas produce their distinct values
	if cached.AverageResponseTime != 1.0 {
		t.Errorf("cached response time: got %v, want 1.0 days", cached.AverageResponseTime)
	}
	if report.AverageResponseTime != 36.0 {
		t.Errorf("report response time: got %v, want 36.0 hours", report.AverageResponseTime)
	}
	if cached.FulfillmentRate != 0 {
		t.Errorf("cached fulfillment rate: got %v, want 0 (unrated)", cached.FulfillmentRate)
	}
	if report.FulfillmentRate != 0.5 {
		t.Errorf("report fulfillment rate: got %v, want 0.5", report.FulfillmentRate)
	}
}

func TestMetricsIndependentOfEachOther(t *testing.T) {
	// An order with timestamps but no rating still contributes to response
	// time; a rated order without acknowledgment still contributes to the
	// quality average. One missing value never blocks the other metrics.
	orders := []model.PurchaseOrder{
		order(model.OrderCompleted, 24, hoursPtr(24), nil),
		order(model.OrderCompleted, 24, nil, ratingPtr(5)),
	}

	if got := QualityRatingAvg(orders); got != 5 {
		t.Errorf("QualityRatingAvg: got %v, want 5", got)
	}
	if got := AverageResponseTimeDays(orders); got != 1.0 {
		t.Errorf("AverageResponseTimeDays: got %v, want 1.0", got)
	}
	if got := OnTimeDeliveryRate(orders); got != 0.5 {
		t.Errorf("OnTimeDeliveryRate: got %v, want 0.5", got)
	}
}
