// internal/handlers/store.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/store-platform/internal/i18n"
	"github.com/javajoker/store-platform/internal/services"
	"github.com/javajoker/store-platform/internal/utils"
)

type StoreHandler struct {
	storeService *services.StoreService
}

func NewStoreHandler(storeService *services.StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
	}
}

// Storefront rows key users by the decimal string of their id.
func storeUserID(c *gin.Context) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		return "", false
	}
	return strconv.FormatUint(uint64(userID), 10), true
}

// POST /v1/user-store/products
func (h *StoreHandler) AddProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := storeUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.AddStoreProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	entry, err := h.storeService.AddProduct(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, entry)
}

// DELETE /v1/user-store/products/:product_id
func (h *StoreHandler) RemoveProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := storeUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.storeService.RemoveProduct(c.Request.Context(), userID, c.Param("product_id")); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyStoreProductRemoved)})
}

// GET /v1/user-store/products
func (h *StoreHandler) ListOwnProducts(c *gin.Context) {
	userID, ok := storeUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	h.listProducts(c, userID)
}

// GET /v1/user-store/:user_id/products
func (h *StoreHandler) ListUserProducts(c *gin.Context) {
	h.listProducts(c, c.Param("user_id"))
}

func (h *StoreHandler) listProducts(c *gin.Context, userID string) {
	products, err := h.storeService.ListProducts(c.Request.Context(), userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, products, gin.H{"total": len(products)})
}

// POST /v1/user-store/stores
func (h *StoreHandler) CreateStore(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := storeUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	store, err := h.storeService.CreateStore(c.Request.Context(), userID, c.GetString("username"), &req)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, store)
}
