package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the position of an order in its workflow.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "New"
	OrderStatusWaiting   OrderStatus = "Waiting"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusDeleted   OrderStatus = "Deleted"
)

// ParseOrderStatus matches a status name case-insensitively.
func ParseOrderStatus(v string) (OrderStatus, bool) {
	for _, s := range []OrderStatus{OrderStatusNew, OrderStatusWaiting, OrderStatusReady, OrderStatusDelivered, OrderStatusDeleted} {
		if strings.EqualFold(strings.TrimSpace(v), string(s)) {
			return s, true
		}
	}
	return "", false
}

// Partition is one of the three disjoint order collections.
type Partition string

const (
	PartitionActive    Partition = "active"
	PartitionDelivered Partition = "delivered"
	PartitionDeleted   Partition = "deleted"
)

// Partitions lists every partition, active first.
var Partitions = []Partition{PartitionActive, PartitionDelivered, PartitionDeleted}

// PartitionFor returns the only partition an order with the given status may live in.
func PartitionFor(s OrderStatus) Partition {
	switch s {
	case OrderStatusDelivered:
		return PartitionDelivered
	case OrderStatusDeleted:
		return PartitionDeleted
	default:
		return PartitionActive
	}
}

// LineItem is one service selection inside an order.
//
// PricingMode selects the meaningful measurement: Quantity for perUnit,
// Length and Width for perArea. Measurements keep the validated user input
// (decimal strings with at most two fraction digits).
type LineItem struct {
	ServiceID   string          `json:"service_id"`
	ServiceName string          `json:"service_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	PricingMode PricingMode     `json:"pricing_mode"`
	Quantity    string          `json:"quantity,omitempty"`
	Length      string          `json:"length,omitempty"`
	Width       string          `json:"width,omitempty"`
	ImageRef    string          `json:"image_ref,omitempty"`
}

// Service rebuilds the catalog view captured when the line was created.
func (li LineItem) Service() Service {
	return Service{
		ID:          li.ServiceID,
		Name:        li.ServiceName,
		Price:       li.UnitPrice,
		PricingMode: li.PricingMode,
	}
}

// Order is a customer order.
//
// Storage model (DynamoDB):
//   - one table per partition (active, delivered, deleted), PK: id
//
// Total is computed when the order is created and frozen again when it moves
// into a terminal partition.
type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	LocationRef   string          `json:"location_ref"`
	Items         []LineItem      `json:"items"`
	Status        OrderStatus     `json:"status"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	ClosedAt      *time.Time      `json:"closed_at,omitempty"`
}

// Partition returns the partition matching the order status.
func (o Order) Partition() Partition {
	return PartitionFor(o.Status)
}

// NewLocationRef wraps a coordinate pair into the map link stored on orders.
func NewLocationRef(lat, lon float64) (string, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return "", fmt.Errorf("coordinates out of range: %v,%v", lat, lon)
	}
	return "https://www.google.com/maps?q=" +
		strconv.FormatFloat(lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(lon, 'f', -1, 64), nil
}
