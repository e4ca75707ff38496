package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	request "laundry_desk/internal/adapter/http/dto/request"
	response "laundry_desk/internal/adapter/http/dto/response"
	"laundry_desk/internal/usecase"
)

// AnalyticsHandler serves charts and summaries. Dates are YYYY-MM-DD in the
// business timezone; a missing ref means today.
type AnalyticsHandler struct {
	usecase  usecase.IAnalyticsUseCase
	currency string
	loc      *time.Location
}

func NewAnalyticsHandler(uc usecase.IAnalyticsUseCase, currency string, loc *time.Location) *AnalyticsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsHandler{usecase: uc, currency: currency, loc: loc}
}

// Report godoc
// @Summary      Revenue, expenses and profit per bucket
// @Tags         analytics
// @Produce      json
// @Param        period  query     string  true   "day, week, month, trimester or year"
// @Param        ref     query     string  false  "Reference day, YYYY-MM-DD"
// @Success      200     {object}  response.ReportResponse
// @Failure      400     {object}  pkg.HTTPError
// @Router       /analytics/report [get]
func (h *AnalyticsHandler) Report(c *gin.Context) {
	ref, ok := h.refDate(c, "ref")
	if !ok {
		return
	}
	report, err := h.usecase.Report(c.Request.Context(), c.Query("period"), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReport(report, h.currency))
}

// Today godoc
// @Summary      Closed orders and expenses of one day
// @Tags         analytics
// @Produce      json
// @Param        ref  query     string  false  "Day, YYYY-MM-DD"
// @Success      200  {object}  response.TodayResponse
// @Router       /analytics/today [get]
func (h *AnalyticsHandler) Today(c *gin.Context) {
	ref, ok := h.refDate(c, "ref")
	if !ok {
		return
	}
	summary, err := h.usecase.Today(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromToday(summary, h.currency))
}

// Audit godoc
// @Summary      Everything closed or spent between two days, inclusive
// @Tags         analytics
// @Produce      json
// @Param        start  query     string  true  "First day, YYYY-MM-DD"
// @Param        end    query     string  true  "Last day, YYYY-MM-DD"
// @Success      200    {object}  response.AuditResponse
// @Failure      400    {object}  pkg.HTTPError
// @Router       /analytics/audit [get]
func (h *AnalyticsHandler) Audit(c *gin.Context) {
	start, err := request.ParseDate(c.Query("start"), h.loc)
	if err != nil || start == nil {
		respondError(c, usecase.ErrInvalidDateRange)
		return
	}
	end, err := request.ParseDate(c.Query("end"), h.loc)
	if err != nil || end == nil {
		respondError(c, usecase.ErrInvalidDateRange)
		return
	}

	report, err := h.usecase.Audit(c.Request.Context(), *start, *end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAudit(report, h.currency))
}

// refDate returns the zero time for a missing value, which the use case
// reads as today.
func (h *AnalyticsHandler) refDate(c *gin.Context, key string) (time.Time, bool) {
	ref, err := request.ParseDate(c.Query(key), h.loc)
	if err != nil {
		respondError(c, usecase.ErrInvalidDateRange)
		return time.Time{}, false
	}
	if ref == nil {
		return time.Time{}, true
	}
	return *ref, true
}
