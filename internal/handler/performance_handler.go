package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"vendor-service/internal/model"
	"vendor-service/internal/service"
	"vendor-service/pkg/database"
	"vendor-service/pkg/logger"
	"vendor-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetVendorPerformance computes the four report-variant metrics fresh from
// the vendor's live order set. The vendor's cached metric fields are not
// read or written here.
func GetVendorPerformance(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("performance")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid vendor ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid vendor ID",
		})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	vendor, perf, err := service.ReportPerformance(database.GetDB(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrVendorNotFound) {
			log.Warn("Vendor not found for performance report", zap.Uint64("vendor_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Vendor not found",
			})
		}
		log.Error("Failed to compute performance report",
			zap.Uint64("vendor_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to compute performance report",
		})
	}

	log.Info("Performance report computed",
		zap.Uint64("vendor_id", id),
		zap.String("vendor_name", vendor.Name),
		zap.Float64("on_time_delivery_rate", perf.OnTimeDeliveryRate),
		zap.Float64("fulfillment_rate", perf.FulfillmentRate))

	return c.JSON(http.StatusOK, echo.Map{
		"vendor": vendor.Name,
		"data":   perf,
	})
}

// SnapshotVendorPerformance records the vendor's current cached metrics as
// an immutable historical snapshot
func SnapshotVendorPerformance(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("snapshot")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid vendor ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid vendor ID",
		})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("insert")(time.Now())

	snapshot, err := service.SnapshotPerformance(database.GetDB(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrVendorNotFound) {
			log.Warn("Vendor not found for snapshot", zap.Uint64("vendor_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Vendor not found",
			})
		}
		log.Error("Failed to snapshot vendor performance",
			zap.Uint64("vendor_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to snapshot vendor performance",
		})
	}

	log.Info("Vendor performance snapshot recorded",
		zap.Uint64("vendor_id", id),
		zap.Time("date", snapshot.Date))
	return c.JSON(http.StatusCreated, snapshot)
}

// ListVendorPerformanceHistory lists a vendor's performance snapshots,
// newest first, for trend reporting
func ListVendorPerformanceHistory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("history")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid vendor ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid vendor ID",
		})
	}

	var vendor model.Vendor
	if err := database.GetDB().First(&vendor, id).Error; err != nil {
		log.Warn("Vendor not found for history", zap.Uint64("vendor_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Vendor not found",
		})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	var history []model.HistoricalPerformance
	result := database.GetDB().
		Where("vendor_id = ?", id).
		Order("date desc").
		Find(&history)
	if result.Error != nil {
		log.Error("Failed to retrieve performance history",
			zap.Uint64("vendor_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve performance history",
		})
	}

	log.Info("Performance history retrieved",
		zap.Uint64("vendor_id", id),
		zap.Int("count", len(history)))
	return c.JSON(http.StatusOK, echo.Map{
		"vendor":  vendor.Name,
		"history": history,
	})
}
