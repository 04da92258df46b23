package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/Gunvolt24/storefront-cart/internal/domain"
	"github.com/Gunvolt24/storefront-cart/internal/usecase"
	"github.com/Gunvolt24/storefront-cart/pkg/httpx"
	"github.com/gin-gonic/gin"
)

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handler) getCart(c *gin.Context) {
	ctx, cartID := h.session(c)
	summary, err := h.service.Cart(ctx, cartID)
	if err != nil {
		h.internalError(c, "Cart", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) countItems(c *gin.Context) {
	ctx, cartID := h.session(c)
	n, err := h.service.TotalItems(ctx, cartID)
	if err != nil {
		h.internalError(c, "TotalItems", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_items": n})
}

// addItem — тело запроса: строка корзины целиком (снимок товара с витрины).
func (h *Handler) addItem(c *gin.Context) {
	var item domain.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if len(item.ID) > httpx.MaxProductIDLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	ctx, cartID := h.session(c)
	summary, added, err := h.service.AddItem(ctx, cartID, item)
	if err != nil {
		h.internalError(c, "AddItem", err)
		return
	}
	h.writeAddResult(c, summary, added)
}

func (h *Handler) addProduct(c *gin.Context) {
	productID, ok := httpx.ProductIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	ctx, cartID := h.session(c)
	summary, added, err := h.service.AddProduct(ctx, cartID, productID)
	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	case errors.Is(err, usecase.ErrCatalogUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	case err != nil:
		h.internalError(c, "AddProduct", err)
		return
	}
	h.writeAddResult(c, summary, added)
}

func (h *Handler) writeAddResult(c *gin.Context, summary domain.CartSummary, added bool) {
	if !added {
		c.JSON(http.StatusConflict, gin.H{"error": "stock limit reached", "cart": summary})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) updateQuantity(c *gin.Context) {
	productID, ok := httpx.ProductIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	ctx, cartID := h.session(c)
	summary, err := h.service.UpdateQuantity(ctx, cartID, productID, *req.Quantity)
	if err != nil {
		h.internalError(c, "UpdateQuantity", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) removeItem(c *gin.Context) {
	productID, ok := httpx.ProductIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	ctx, cartID := h.session(c)
	summary, err := h.service.RemoveItem(ctx, cartID, productID)
	if err != nil {
		h.internalError(c, "RemoveItem", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) clearCart(c *gin.Context) {
	ctx, cartID := h.session(c)
	if err := h.service.Clear(ctx, cartID); err != nil {
		h.internalError(c, "Clear", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// checkout — сверка с живыми остатками; 409, если купить нечего.
func (h *Handler) checkout(c *gin.Context) {
	ctx, cartID := h.session(c)
	check, err := h.service.VerifyStock(ctx, cartID)
	switch {
	case errors.Is(err, usecase.ErrCatalogUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	case err != nil:
		h.internalError(c, "VerifyStock", err)
		return
	}

	if !check.CanProceed {
		c.JSON(http.StatusConflict, check)
		return
	}
	c.JSON(http.StatusOK, check)
}

func (h *Handler) session(c *gin.Context) (context.Context, string) {
	cartID, _ := httpx.CartID(c)
	return c.Request.Context(), cartID
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	ctx := c.Request.Context()
	if errors.Is(err, context.DeadlineExceeded) {
		h.log.Warnf(ctx, "%s timed out: %v", op, err)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "timeout"})
		return
	}
	h.log.Errorf(ctx, "%s failed err=%v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
