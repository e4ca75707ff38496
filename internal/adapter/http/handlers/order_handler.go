package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	request "laundry_desk/internal/adapter/http/dto/request"
	response "laundry_desk/internal/adapter/http/dto/response"
	"laundry_desk/internal/usecase"
)

// OrderHandler serves the order workflow.
type OrderHandler struct {
	usecase  usecase.IOrderUseCase
	currency string
}

func NewOrderHandler(uc usecase.IOrderUseCase, currency string) *OrderHandler {
	return &OrderHandler{usecase: uc, currency: currency}
}

// CreateOrder godoc
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      request.CreateOrderRequest  true  "Order"
// @Success      201    {object}  response.OrderResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      422    {object}  pkg.HTTPError
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.usecase.CreateOrder(c.Request.Context(), payload.ToCommand())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromOrder(order, h.currency))
}

// ListActive godoc
// @Summary      List active orders, oldest first
// @Tags         orders
// @Produce      json
// @Param        status  query     string  false  "All, New, Waiting or Ready"
// @Success      200     {array}   response.OrderResponse
// @Router       /orders [get]
func (h *OrderHandler) ListActive(c *gin.Context) {
	orders, err := h.usecase.ListActive(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders, h.currency))
}

// ListArchive godoc
// @Summary      List delivered and deleted orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}  response.OrderResponse
// @Router       /orders/archive [get]
func (h *OrderHandler) ListArchive(c *gin.Context) {
	orders, err := h.usecase.ListArchive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders, h.currency))
}

// GetOrder godoc
// @Summary      Get an order from any partition
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.OrderResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order, h.currency))
}

// AdvanceOrder godoc
// @Summary      Move an order to its next status
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.OrderResponse
// @Failure      409  {object}  pkg.HTTPError
// @Router       /orders/{id}/advance [patch]
func (h *OrderHandler) AdvanceOrder(c *gin.Context) {
	order, err := h.usecase.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order, h.currency))
}

// CancelOrder godoc
// @Summary      Cancel an active order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Order ID"
// @Param        confirm  body      request.CancelOrderRequest  true  "Confirmation"
// @Success      200      {object}  response.OrderResponse
// @Failure      409      {object}  pkg.HTTPError
// @Router       /orders/{id}/cancel [patch]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	var payload request.CancelOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.usecase.Cancel(c.Request.Context(), c.Param("id"), payload.Confirm)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order, h.currency))
}

// PurgeOrder godoc
// @Summary      Permanently delete a delivered or deleted order
// @Tags         orders
// @Param        id   path  string  true  "Order ID"
// @Success      204
// @Failure      409  {object}  pkg.HTTPError
// @Router       /orders/{id} [delete]
func (h *OrderHandler) PurgeOrder(c *gin.Context) {
	if err := h.usecase.PurgeArchived(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
