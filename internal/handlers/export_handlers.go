package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/klarsync/order-export/internal/export"
	"github.com/klarsync/order-export/internal/logger"
)

// ExportHandler serves export payload previews and eligibility checks.
// It computes what would be sent to Klar but never sends anything.
type ExportHandler struct {
	orders    export.OrderRepository
	lineItems *export.LineItemsBuilder
}

// NewExportHandler creates a new ExportHandler instance
func NewExportHandler(orders export.OrderRepository, lineItems *export.LineItemsBuilder) *ExportHandler {
	return &ExportHandler{
		orders:    orders,
		lineItems: lineItems,
	}
}

// LineItemsResponse is the payload preview for one order.
type LineItemsResponse struct {
	Object     string            `json:"object"`
	OrderID    string            `json:"orderId"`
	Exportable bool              `json:"exportable"`
	Data       []export.LineItem `json:"data"`
}

// EligibilityResponse reports whether an order may be exported.
type EligibilityResponse struct {
	OrderID       string `json:"orderId"`
	Exportable    bool   `json:"exportable"`
	State         string `json:"state"`
	PaymentMethod string `json:"paymentMethod"`
}

// GetLineItems builds and returns the line-item export payload for an
// order without transmitting it.
func (h *ExportHandler) GetLineItems(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid order ID format", err)
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		handleLookupError(c, err, "Order not found")
		return
	}

	buildID := uuid.New()
	logger.Info("building line item export payload",
		zap.String("build_id", buildID.String()),
		zap.Int64("order_id", orderID),
		zap.Int("item_count", len(order.Items)))

	lineItems := h.lineItems.BuildFromSalesOrder(c.Request.Context(), *order)

	c.JSON(http.StatusOK, LineItemsResponse{
		Object:     "list",
		OrderID:    strconv.FormatInt(order.ID, 10),
		Exportable: export.Exportable(*order),
		Data:       lineItems,
	})
}

// GetEligibility reports the export gate decision for an order.
func (h *ExportHandler) GetEligibility(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid order ID format", err)
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		handleLookupError(c, err, "Order not found")
		return
	}

	c.JSON(http.StatusOK, EligibilityResponse{
		OrderID:       strconv.FormatInt(order.ID, 10),
		Exportable:    export.Exportable(*order),
		State:         order.State,
		PaymentMethod: order.PaymentMethod,
	})
}
