package request

import (
	"strings"

	"laundry_desk/internal/usecase"
)

// LineItemRequest selects one catalog service. Quantity applies to per-unit
// services, Length and Width to per-area services.
type LineItemRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Quantity  string `json:"quantity"`
	Length    string `json:"length"`
	Width     string `json:"width"`
	ImageRef  string `json:"image_ref"`
}

// CreateOrderRequest is the order form. Either location_ref or both
// latitude and longitude are expected.
type CreateOrderRequest struct {
	CustomerName  string            `json:"customer_name" binding:"required"`
	CustomerPhone string            `json:"customer_phone" binding:"required,phone10"`
	LocationRef   string            `json:"location_ref"`
	Latitude      *float64          `json:"latitude"`
	Longitude     *float64          `json:"longitude"`
	Items         []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r CreateOrderRequest) ToCommand() usecase.CreateOrderCommand {
	items := make([]usecase.LineItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, usecase.LineItemInput{
			ServiceID: strings.TrimSpace(it.ServiceID),
			Quantity:  strings.TrimSpace(it.Quantity),
			Length:    strings.TrimSpace(it.Length),
			Width:     strings.TrimSpace(it.Width),
			ImageRef:  strings.TrimSpace(it.ImageRef),
		})
	}
	return usecase.CreateOrderCommand{
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		LocationRef:   r.LocationRef,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Items:         items,
	}
}

// CancelOrderRequest must carry confirm=true; the UI asks before sending it.
type CancelOrderRequest struct {
	Confirm bool `json:"confirm"`
}
