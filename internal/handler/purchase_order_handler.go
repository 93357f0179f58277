package handler

import (
	"net/http"
	"time"

	"vendor-service/internal/model"
	"vendor-service/internal/service"
	"vendor-service/pkg/database"
	"vendor-service/pkg/logger"
	"vendor-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PurchaseOrderRequest defines the structure for purchase order
// creation/update requests. po_number and vendor are fixed at creation;
// status, quality_rating and acknowledgment_date are the fields callers
// mutate over the order's lifecycle.
type PurchaseOrderRequest struct {
	PONumber           string         `json:"po_number" validate:"required"`
	VendorID           uint           `json:"vendor" validate:"required"`
	OrderDate          time.Time      `json:"order_date" validate:"required"`
	DeliveryDate       time.Time      `json:"delivery_date" validate:"required"`
	IssueDate          time.Time      `json:"issue_date" validate:"required"`
	Items              datatypes.JSON `json:"items"`
	Quantity           int            `json:"quantity"`
	Status             string         `json:"status"`
	QualityRating      *float64       `json:"quality_rating"`
	AcknowledgmentDate *time.Time     `json:"acknowledgment_date"`
}

// validateDates checks the required timestamp fields of a request
func (r *PurchaseOrderRequest) validateDates() string {
	switch {
	case r.OrderDate.IsZero():
		return "order_date is required"
	case r.DeliveryDate.IsZero():
		return "delivery_date is required"
	case r.IssueDate.IsZero():
		return "issue_date is required"
	}
	return ""
}

// CreatePurchaseOrder creates a purchase order and recomputes the owning
// vendor's performance metrics in the same transaction
func CreatePurchaseOrder(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new purchase order")
	prometheus.RecordPurchaseOrderOperation("create")

	var req PurchaseOrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.PONumber == "" {
		log.Warn("Purchase order number is required")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "po_number is required",
		})
	}
	if msg := req.validateDates(); msg != "" {
		log.Warn("Invalid purchase order dates", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": msg,
		})
	}

	status := model.OrderStatus(req.Status)
	if req.Status == "" {
		status = model.OrderPending
	}
	if !status.Valid() {
		log.Warn("Invalid purchase order status", zap.String("status", req.Status))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "status must be one of pending, completed, canceled",
		})
	}

	// The order must reference an existing vendor
	var vendor model.Vendor
	if err := database.GetDB().First(&vendor, req.VendorID).Error; err != nil {
		log.Warn("Vendor not found for purchase order",
			zap.Uint("vendor_id", req.VendorID),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "vendor does not exist",
		})
	}

	// po_number is caller-assigned and unique
	var count int64
	database.GetDB().Model(&model.PurchaseOrder{}).
		Where("po_number = ?", req.PONumber).
		Count(&count)
	if count > 0 {
		log.Warn("Purchase order with this number already exists",
			zap.String("po_number", req.PONumber))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Purchase order with this number already exists",
		})
	}

	po := model.PurchaseOrder{
		PONumber:           req.PONumber,
		VendorID:           req.VendorID,
		OrderDate:          req.OrderDate,
		DeliveryDate:       req.DeliveryDate,
		IssueDate:          req.IssueDate,
		Items:              req.Items,
		Quantity:           req.Quantity,
		Status:             status,
		QualityRating:      req.QualityRating,
		AcknowledgmentDate: req.AcknowledgmentDate,
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("insert")(time.Now())

	// The mutation and the metric recomputation commit together, so the
	// recompute sees the new order and the caller never observes a created
	// order with stale vendor metrics.
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&po).Error; err != nil {
			return err
		}
		defer prometheus.ObserveRecompute(time.Now())
		return service.RecomputeVendorMetrics(tx, po.VendorID)
	})
	if err != nil {
		log.Error("Failed to create purchase order",
			zap.String("po_number", req.PONumber),
			zap.Uint("vendor_id", req.VendorID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create purchase order",
		})
	}

	log.Info("Purchase order created successfully",
		zap.Uint("id", po.ID),
		zap.String("po_number", po.PONumber),
		zap.Uint("vendor_id", po.VendorID),
		zap.String("status", string(po.Status)))
	return c.JSON(http.StatusCreated, po)
}

// GetPurchaseOrder retrieves a purchase order by its po_number
func GetPurchaseOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordPurchaseOrderOperation("get")

	poNumber := c.Param("po_number")

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	var po model.PurchaseOrder
	result := database.GetDB().Where("po_number = ?", poNumber).First(&po)
	if result.Error != nil {
		log.Warn("Purchase order not found",
			zap.String("po_number", poNumber),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Purchase order not found",
		})
	}

	log.Info("Purchase order retrieved successfully",
		zap.String("po_number", po.PONumber),
		zap.Uint("vendor_id", po.VendorID))
	return c.JSON(http.StatusOK, po)
}

// ListPurchaseOrders retrieves purchase orders, optionally filtered by the
// vendor query parameter
func ListPurchaseOrders(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing purchase orders")
	prometheus.RecordPurchaseOrderOperation("list")

	query := database.GetDB().Model(&model.PurchaseOrder{})

	if vendorParam := c.QueryParam("vendor"); vendorParam != "" {
		query = query.Where("vendor_id = ?", vendorParam)
		log.Info("Filtering purchase orders by vendor", zap.String("vendor", vendorParam))
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	var orders []model.PurchaseOrder
	result := query.Order("created_at desc").Find(&orders)
	if result.Error != nil {
		log.Error("Failed to retrieve purchase orders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve purchase orders",
		})
	}

	log.Info("Purchase orders retrieved successfully", zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, orders)
}

// UpdatePurchaseOrder replaces a purchase order's mutable fields by
// po_number and recomputes the vendor's metrics in the same transaction.
// po_number and the owning vendor are immutable.
func UpdatePurchaseOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordPurchaseOrderOperation("update")

	poNumber := c.Param("po_number")
	log.Info("Updating purchase order", zap.String("po_number", poNumber))

	var req PurchaseOrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("po_number", poNumber),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if msg := req.validateDates(); msg != "" {
		log.Warn("Invalid purchase order dates",
			zap.String("po_number", poNumber),
			zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": msg,
		})
	}

	status := model.OrderStatus(req.Status)
	if req.Status == "" {
		status = model.OrderPending
	}
	if !status.Valid() {
		log.Warn("Invalid purchase order status",
			zap.String("po_number", poNumber),
			zap.String("status", req.Status))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "status must be one of pending, completed, canceled",
		})
	}

	var po model.PurchaseOrder
	result := database.GetDB().Where("po_number = ?", poNumber).First(&po)
	if result.Error != nil {
		log.Warn("Purchase order not found for update",
			zap.String("po_number", poNumber),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Purchase order not found",
		})
	}

	// Replace mutable fields; po_number and vendor stay as created
	po.OrderDate = req.OrderDate
	po.DeliveryDate = req.DeliveryDate
	po.IssueDate = req.IssueDate
	po.Items = req.Items
	po.Quantity = req.Quantity
	po.Status = status
	po.QualityRating = req.QualityRating
	po.AcknowledgmentDate = req.AcknowledgmentDate

	// Track DB operations
	defer prometheus.TrackDBOperation("update")(time.Now())

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&po).Error; err != nil {
			return err
		}
		defer prometheus.ObserveRecompute(time.Now())
		return service.RecomputeVendorMetrics(tx, po.VendorID)
	})
	if err != nil {
		log.Error("Failed to update purchase order",
			zap.String("po_number", poNumber),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update purchase order",
		})
	}

	log.Info("Purchase order updated successfully",
		zap.String("po_number", po.PONumber),
		zap.Uint("vendor_id", po.VendorID),
		zap.String("status", string(po.Status)))
	return c.JSON(http.StatusOK, po)
}

// DeletePurchaseOrder deletes a purchase order by po_number and recomputes
// the owning vendor's metrics. The vendor reference is captured before the
// row disappears.
func DeletePurchaseOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordPurchaseOrderOperation("delete")

	poNumber := c.Param("po_number")
	log.Info("Deleting purchase order", zap.String("po_number", poNumber))

	var po model.PurchaseOrder
	preResult := database.GetDB().Where("po_number = ?", poNumber).First(&po)
	if preResult.Error != nil {
		log.Warn("Purchase order not found for delete",
			zap.String("po_number", poNumber),
			zap.Error(preResult.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Purchase order not found",
		})
	}

	vendorID := po.VendorID

	// Track DB operations
	defer prometheus.TrackDBOperation("delete")(time.Now())

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&po).Error; err != nil {
			return err
		}
		defer prometheus.ObserveRecompute(time.Now())
		return service.RecomputeVendorMetrics(tx, vendorID)
	})
	if err != nil {
		log.Error("Failed to delete purchase order",
			zap.String("po_number", poNumber),
			zap.Uint("vendor_id", vendorID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete purchase order",
		})
	}

	log.Info("Purchase order deleted successfully",
		zap.String("po_number", poNumber),
		zap.Uint("vendor_id", vendorID))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Purchase order deleted successfully",
	})
}
