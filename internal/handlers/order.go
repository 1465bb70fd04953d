// internal/handlers/order.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/store-platform/internal/apperror"
	"github.com/javajoker/store-platform/internal/i18n"
	"github.com/javajoker/store-platform/internal/services"
	"github.com/javajoker/store-platform/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	result, err := h.orderService.CreateOrder(c.Request.Context(), &req.OrderData, &req.BillingData)
	if err != nil {
		// The order itself was committed; tell the caller which one.
		if result != nil && apperror.IsCode(err, apperror.CodePersistenceFailure) {
			utils.ErrorResponse(c, http.StatusInternalServerError, string(apperror.CodePersistenceFailure),
				i18n.T(lang, i18n.KeyOrderBillingFailed), result)
			return
		}
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyOrderCreated),
		"order_id":   result.OrderID,
		"billing_id": result.BillingID,
	})
}

// GET /v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, orders, gin.H{"total": len(orders)})
}
