package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	request "laundry_desk/internal/adapter/http/dto/request"
	response "laundry_desk/internal/adapter/http/dto/response"
	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/usecase"
)

// DeviceTokenHeader carries the push token that identifies the reporting
// device.
const DeviceTokenHeader = "X-Device-Token"

// ExpenseHandler serves the expense ledger and device identities.
type ExpenseHandler struct {
	usecase  usecase.IExpenseUseCase
	currency string
	loc      *time.Location
}

func NewExpenseHandler(uc usecase.IExpenseUseCase, currency string, loc *time.Location) *ExpenseHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ExpenseHandler{usecase: uc, currency: currency, loc: loc}
}

// CreateCost godoc
// @Summary      Record an expense
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        X-Device-Token  header    string                     true  "Device push token"
// @Param        cost            body      request.CreateCostRequest  true  "Expense"
// @Success      201             {object}  response.CostResponse
// @Failure      400             {object}  pkg.HTTPError
// @Router       /costs [post]
func (h *ExpenseHandler) CreateCost(c *gin.Context) {
	var payload request.CreateCostRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	cost, err := h.usecase.Create(c.Request.Context(), payload.ToCommand(c.GetHeader(DeviceTokenHeader)))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromCost(cost, h.currency))
}

// ListCosts godoc
// @Summary      List expenses, newest first
// @Tags         costs
// @Produce      json
// @Param        start  query     string  false  "First day, YYYY-MM-DD"
// @Param        end    query     string  false  "Last day, YYYY-MM-DD"
// @Success      200    {array}   response.CostResponse
// @Router       /costs [get]
func (h *ExpenseHandler) ListCosts(c *gin.Context) {
	from, err := request.ParseDate(c.Query("start"), h.loc)
	if err != nil {
		respondError(c, usecase.ErrInvalidDateRange)
		return
	}
	to, err := request.ParseDate(c.Query("end"), h.loc)
	if err != nil {
		respondError(c, usecase.ErrInvalidDateRange)
		return
	}

	list, err := h.usecase.List(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromCosts(list, h.currency))
}

// UpdateCost godoc
// @Summary      Update an expense
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Cost ID"
// @Param        cost  body      request.UpdateCostRequest  true  "Fields to change"
// @Success      200   {object}  response.CostResponse
// @Failure      404   {object}  pkg.HTTPError
// @Router       /costs/{id} [patch]
func (h *ExpenseHandler) UpdateCost(c *gin.Context) {
	var payload request.UpdateCostRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}

	cost, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToCommand())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromCost(cost, h.currency))
}

// DeleteCost godoc
// @Summary      Delete an expense
// @Tags         costs
// @Param        id   path  string  true  "Cost ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Router       /costs/{id} [delete]
func (h *ExpenseHandler) DeleteCost(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetIdentity godoc
// @Summary      Resolve the staff name behind a device token
// @Tags         identities
// @Produce      json
// @Param        token  path      string  true  "Device push token"
// @Success      200    {object}  response.IdentityResponse
// @Router       /identities/{token} [get]
func (h *ExpenseHandler) GetIdentity(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	name, found, err := h.usecase.ResolveIdentity(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.IdentityResponse{
		Key:   entities.IdentityKeyFromToken(token),
		Name:  name,
		Known: found,
	})
}
