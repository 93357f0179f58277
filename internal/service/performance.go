package service

import (
	"errors"
	"time"

	"vendor-service/internal/metrics"
	"vendor-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrVendorNotFound is returned when a vendor lookup by id fails.
var ErrVendorNotFound = errors.New("vendor not found")

// RecomputeVendorMetrics re-reads the vendor's full live order set, runs the
// four cached-update calculations and persists the results on the vendor
// row. Purchase-order write paths call this after their mutation, inside the
// same transaction, so the recompute sees the just-mutated order and the
// caller observes success only once both have committed.
//
// The vendor row is read FOR UPDATE so concurrent mutations against orders
// of the same vendor serialize at the store instead of overwriting each
// other's results with stale metrics.
func RecomputeVendorMetrics(tx *gorm.DB, vendorID uint) error {
	var vendor model.Vendor
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&vendor, vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVendorNotFound
		}
		return err
	}

	var orders []model.PurchaseOrder
	if err := tx.Where("vendor_id = ?", vendorID).Find(&orders).Error; err != nil {
		return err
	}

	perf := metrics.Cached(orders)
	vendor.OnTimeDeliveryRate = perf.OnTimeDeliveryRate
	vendor.QualityRatingAvg = perf.QualityRatingAvg
	vendor.AverageResponseTime = perf.AverageResponseTime
	vendor.FulfillmentRate = perf.FulfillmentRate

	return tx.Save(&vendor).Error
}

// ReportPerformance computes the four on-demand report metrics fresh from
// the vendor's live order set. The vendor's cached fields are not touched;
// reads take no locks.
func ReportPerformance(db *gorm.DB, vendorID uint) (*model.Vendor, metrics.Performance, error) {
	var vendor model.Vendor
	if err := db.First(&vendor, vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, metrics.Performance{}, ErrVendorNotFound
		}
		return nil, metrics.Performance{}, err
	}

	var orders []model.PurchaseOrder
	if err := db.Where("vendor_id = ?", vendorID).Find(&orders).Error; err != nil {
		return nil, metrics.Performance{}, err
	}

	return &vendor, metrics.Report(orders), nil
}

// SnapshotPerformance writes the vendor's current cached metrics as an
// immutable historical record. Snapshots are only ever created through this
// explicit call; the recomputation path never writes history.
func SnapshotPerformance(db *gorm.DB, vendorID uint) (*model.HistoricalPerformance, error) {
	var vendor model.Vendor
	if err := db.First(&vendor, vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}

	snapshot := model.HistoricalPerformance{
		VendorID:            vendor.ID,
		Date:                time.Now().UTC(),
		OnTimeDeliveryRate:  vendor.OnTimeDeliveryRate,
		QualityRatingAvg:    vendor.QualityRatingAvg,
		AverageResponseTime: vendor.AverageResponseTime,
		FulfillmentRate:     vendor.FulfillmentRate,
	}
	if err := db.Create(&snapshot).Error; err != nil {
		return nil, err
	}
	return &snapshot, nil
}
