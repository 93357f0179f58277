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

// VendorRequest defines the structure for vendor creation/update requests.
// The cached metric fields are server-owned and not bindable here; a
// supplied vendor_code is honored on create and ignored on update.
type VendorRequest struct {
	Name           string `json:"name" validate:"required"`
	ContactDetails string `json:"contact_details"`
	Address        string `json:"address"`
	VendorCode     string `json:"vendor_code"`
}

// CreateVendor creates a new vendor, assigning a vendor code when the
// request did not supply one
func CreateVendor(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new vendor")
	prometheus.RecordVendorOperation("create")

	var req VendorRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Name == "" {
		log.Warn("Vendor name is required")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name is required",
		})
	}

	vendor := model.Vendor{
		Name:           req.Name,
		ContactDetails: req.ContactDetails,
		Address:        req.Address,
		VendorCode:     req.VendorCode,
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("insert")(time.Now())

	// The unique index decides code collisions: supplied codes conflict,
	// generated codes are retried with a fresh draw
	if err := service.CreateVendor(database.GetDB(), &vendor); err != nil {
		switch {
		case errors.Is(err, service.ErrVendorCodeTaken):
			log.Warn("Vendor with this code already exists", zap.String("vendor_code", vendor.VendorCode))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Vendor with this code already exists",
			})
		case errors.Is(err, service.ErrVendorCodeExhausted):
			log.Error("Vendor code generation exhausted", zap.Error(err))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Could not generate a unique vendor code",
			})
		}
		log.Error("Failed to create vendor",
			zap.String("name", req.Name),
			zap.String("vendor_code", vendor.VendorCode),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create vendor",
		})
	}

	// Update vendor count metric
	go updateVendorCount()

	log.Info("Vendor created successfully",
		zap.Uint("id", vendor.ID),
		zap.String("name", vendor.Name),
		zap.String("vendor_code", vendor.VendorCode))
	return c.JSON(http.StatusCreated, vendor)
}

// GetVendor retrieves a vendor by ID
func GetVendor(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("get")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid vendor ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid vendor ID",
		})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	var vendor model.Vendor
	result := database.GetDB().First(&vendor, id)
	if result.Error != nil {
		log.Warn("Vendor not found", zap.Uint64("vendor_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Vendor not found",
		})
	}

	log.Info("Vendor retrieved successfully",
		zap.Uint64("vendor_id", id),
		zap.String("vendor_name", vendor.Name),
		zap.String("vendor_code", vendor.VendorCode))
	return c.JSON(http.StatusOK, vendor)
}

// ListVendors retrieves all vendors with pagination
func ListVendors(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing vendors")
	prometheus.RecordVendorOperation("list")

	// Parse query parameters for pagination
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20 // Default limit
	}

	offset := (page - 1) * limit

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	var vendors []model.Vendor
	result := database.GetDB().
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&vendors)

	if result.Error != nil {
		log.Error("Failed to retrieve vendors", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve vendors",
		})
	}

	// Count total vendors for pagination info
	var total int64
	database.GetDB().Model(&model.Vendor{}).Count(&total)

	log.Info("Vendors retrieved successfully",
		zap.Int("count", len(vendors)),
		zap.Int64("total", total))

	return c.JSON(http.StatusOK, echo.Map{
		"vendors": vendors,
		"pagination": echo.Map{
			"current_page": page,
			"limit":        limit,
			"total":        total,
			"total_pages":  (int(total) + limit - 1) / limit,
		},
	})
}

// UpdateVendor replaces a vendor's identity fields. The vendor code is
// immutable once set and the cached metrics stay server-owned.
func UpdateVendor(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid vendor ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid vendor ID",
		})
	}

	log.Info("Updating vendor", zap.Uint64("vendor_id", id))

	var req VendorRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.Uint64("vendor_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Name == "" {
		log.Warn("Vendor name is required", zap.Uint64("vendor_id", id))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name is required",
		})
	}

	var vendor model.Vendor
	result := database.GetDB().First(&vendor, id)
	if result.Error != nil {
		log.Warn("Vendor not found for update",
			zap.Uint64("vendor_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Vendor not found",
		})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("update")(time.Now())

	// Update identity fields; vendor_code and cached metrics are untouched
	vendor.Name = req.Name
	vendor.ContactDetails = req.ContactDetails
	vendor.Address = req.Address

	result = database.GetDB().Save(&vendor)
	if result.Error != nil {
		log.Error("Failed to update vendor",
			zap.Uint64("vendor_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update vendor",
		})
	}

	log.Info("Vendor updated successfully",
		zap.Uint64("vendor_id", id),
		zap.String("name", vendor.Name),
		zap.String("vendor_code", vendor.VendorCode))
	return c.JSON(http.StatusOK, vendor)
}

// DeleteVendor deletes a vendor and, through the cascade constraint, all of
// its purchase orders and performance history
func DeleteVendor(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("delete")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid vendor ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid vendor ID",
		})
	}

	log.Info("Deleting vendor", zap.Uint64("vendor_id", id))

	var vendor model.Vendor
	preResult := database.GetDB().First(&vendor, id)
	if preResult.Error != nil {
		log.Warn("Vendor not found for delete",
			zap.Uint64("vendor_id", id),
			zap.Error(preResult.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Vendor not found",
		})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := database.GetDB().Delete(&vendor)
	if result.Error != nil {
		log.Error("Failed to delete vendor",
			zap.Uint64("vendor_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete vendor",
		})
	}

	// Update vendor count metric
	go updateVendorCount()

	log.Info("Vendor deleted successfully",
		zap.Uint64("vendor_id", id),
		zap.String("vendor_code", vendor.VendorCode),
		zap.Int64("rows_affected", result.RowsAffected))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Vendor deleted successfully",
	})
}

// Helper function to update the vendor count gauge
func updateVendorCount() {
	var count int64
	database.GetDB().Model(&model.Vendor{}).Count(&count)
	prometheus.UpdateVendorCount(count)
}
