package routes

import (
	"laundry_desk/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders     = "/orders"
	PathServices   = "/services"
	PathCosts      = "/costs"
	PathIdentities = "/identities"
	PathUploads    = "/uploads"
	PathAnalytics  = "/analytics"
	PathStream     = "/stream"
	PathPing       = "/ping"

	routeIDParam   = "/:id"
	identityParam  = "/:token"
	streamCatchAll = "/*collection"
)

func addOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListActive)
		orders.GET("/archive", h.ListArchive)
		orders.GET(routeIDParam, h.GetOrder)
		orders.PATCH(routeIDParam+"/advance", h.AdvanceOrder)
		orders.PATCH(routeIDParam+"/cancel", h.CancelOrder)
		// Only delivered or deleted orders can be purged.
		orders.DELETE(routeIDParam, h.PurgeOrder)
	}
}

func addCatalogRoutes(rg *gin.RouterGroup, h *handlers.CatalogHandler) {
	services := rg.Group(PathServices)
	{
		services.POST("", h.CreateService)
		services.GET("", h.ListServices)
		services.GET(routeIDParam, h.GetService)
		services.PATCH(routeIDParam, h.UpdateService)
		services.DELETE(routeIDParam, h.DeleteService)
	}

	rg.POST(PathUploads, h.UploadImage)
}

func addExpenseRoutes(rg *gin.RouterGroup, h *handlers.ExpenseHandler) {
	costs := rg.Group(PathCosts)
	{
		// The reporting device is read from the X-Device-Token header.
		costs.POST("", h.CreateCost)
		costs.GET("", h.ListCosts)
		costs.PATCH(routeIDParam, h.UpdateCost)
		costs.DELETE(routeIDParam, h.DeleteCost)
	}

	rg.GET(PathIdentities+identityParam, h.GetIdentity)
}

func addAnalyticsRoutes(rg *gin.RouterGroup, h *handlers.AnalyticsHandler) {
	analytics := rg.Group(PathAnalytics)
	{
		analytics.GET("/report", h.Report)
		analytics.GET("/today", h.Today)
		analytics.GET("/audit", h.Audit)
	}
}

// Collection names contain slashes (orders/active), hence the catch-all.
func addStreamRoutes(rg *gin.RouterGroup, h *handlers.StreamHandler) {
	rg.GET(PathStream+streamCatchAll, h.Stream)
}
