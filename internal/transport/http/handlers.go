package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/pkg/ctxmeta"
	"github.com/Gunvolt24/wb_cart/pkg/httpx"
	"github.com/gin-gonic/gin"
)

const defaultRequestTimeout = 8 * time.Second

// Handler — HTTP-обработчики корзины поверх CartService; каждый запрос ограничен reqTimeout.
type Handler struct {
	service    ports.CartService
	log        ports.Logger
	reqTimeout time.Duration
}

// NewHandler — конструктор. reqTimeout <= 0 — значение по умолчанию.
func NewHandler(service ports.CartService, log ports.Logger, reqTimeout time.Duration) *Handler {
	if reqTimeout <= 0 {
		reqTimeout = defaultRequestTimeout
	}
	return &Handler{service: service, log: log, reqTimeout: reqTimeout}
}

// updateAmountRequest — тело PUT /cart/items/:id.
type updateAmountRequest struct {
	Amount *int `json:"amount" binding:"required"`
}

func (h *Handler) getCart(c *gin.Context) {
	ctx, cancel := h.requestContext(c, "get")
	defer cancel()

	c.JSON(http.StatusOK, h.service.Cart(ctx))
}

func (h *Handler) addProduct(c *gin.Context) {
	ctx, cancel := h.requestContext(c, "add")
	defer cancel()

	id, err := httpx.PositiveIntParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.service.AddProduct(ctx, id); err != nil {
		h.writeError(ctx, c, err)
		return
	}
	c.JSON(http.StatusOK, h.service.Cart(ctx))
}

func (h *Handler) removeProduct(c *gin.Context) {
	ctx, cancel := h.requestContext(c, "remove")
	defer cancel()

	id, err := httpx.PositiveIntParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.service.RemoveProduct(ctx, id); err != nil {
		h.writeError(ctx, c, err)
		return
	}
	c.JSON(http.StatusOK, h.service.Cart(ctx))
}

// updateProductAmount — amount <= 0 допустим: сервис молча его игнорирует.
func (h *Handler) updateProductAmount(c *gin.Context) {
	ctx, cancel := h.requestContext(c, "update")
	defer cancel()

	id, err := httpx.PositiveIntParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var req updateAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.UpdateProductAmount(ctx, id, *req.Amount); err != nil {
		h.writeError(ctx, c, err)
		return
	}
	c.JSON(http.StatusOK, h.service.Cart(ctx))
}

// ------вспомогательные функции------

func (h *Handler) requestContext(c *gin.Context, op string) (context.Context, context.CancelFunc) {
	ctx := ctxmeta.WithOperation(c.Request.Context(), op)
	return context.WithTimeout(ctx, h.reqTimeout)
}

// writeError — код ответа по классу ошибки, текст — уведомление для пользователя.
func (h *Handler) writeError(ctx context.Context, c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Errorf(ctx, "cart operation failed err=%v", err)
	}
	c.JSON(status, gin.H{"error": usecase.UserMessage(err)})
}

// StatusFor — HTTP-статус для ошибки операции корзины.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrStockExceeded):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrPersistFailed):
		return http.StatusInternalServerError
	case errors.Is(err, usecase.ErrAddFailed),
		errors.Is(err, usecase.ErrRemoveFailed),
		errors.Is(err, usecase.ErrUpdateFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
