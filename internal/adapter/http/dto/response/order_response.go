package response

import (
	"time"

	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/domain/pricing"
)

type LineItemResponse struct {
	ServiceID   string `json:"service_id"`
	ServiceName string `json:"service_name"`
	PricingMode string `json:"pricing_mode"`
	UnitPrice   Money  `json:"unit_price"`
	Quantity    string `json:"quantity,omitempty"`
	Length      string `json:"length,omitempty"`
	Width       string `json:"width,omitempty"`
	ImageRef    string `json:"image_ref,omitempty"`
	// LineTotal is omitted when the stored measurements no longer price.
	LineTotal *Money `json:"line_total,omitempty"`
}

type OrderResponse struct {
	ID            string             `json:"id"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	LocationRef   string             `json:"location_ref"`
	Status        string             `json:"status"`
	Items         []LineItemResponse `json:"items"`
	Total         Money              `json:"total"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	ClosedAt      *time.Time         `json:"closed_at,omitempty"`
}

func FromOrder(o entities.Order, currency string) OrderResponse {
	items := make([]LineItemResponse, 0, len(o.Items))
	for _, li := range o.Items {
		item := LineItemResponse{
			ServiceID:   li.ServiceID,
			ServiceName: li.ServiceName,
			PricingMode: string(li.PricingMode),
			UnitPrice:   NewMoney(li.UnitPrice, currency),
			Quantity:    li.Quantity,
			Length:      li.Length,
			Width:       li.Width,
			ImageRef:    li.ImageRef,
		}
		if total, err := pricing.LineItemTotalSnapshot(li); err == nil {
			m := NewMoney(total, currency)
			item.LineTotal = &m
		}
		items = append(items, item)
	}

	// Active orders are priced live from their snapshots; terminal orders
	// report the frozen total.
	total := o.Total
	if v, err := pricing.OrderValue(o); err == nil {
		total = v
	}

	return OrderResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		LocationRef:   o.LocationRef,
		Status:        string(o.Status),
		Items:         items,
		Total:         NewMoney(total, currency),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		ClosedAt:      o.ClosedAt,
	}
}

func FromOrders(orders []entities.Order, currency string) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o, currency))
	}
	return out
}
