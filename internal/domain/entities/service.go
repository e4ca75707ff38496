package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PricingMode tells how a catalog service is billed.
type PricingMode string

const (
	PricingModePerUnit PricingMode = "perUnit"
	PricingModePerArea PricingMode = "perArea"
)

// ParsePricingMode normalises a pricing mode, accepting the legacy names
// written by the first mobile releases ("perPiece", "perSquareMeter").
func ParsePricingMode(v string) (PricingMode, bool) {
	switch strings.TrimSpace(v) {
	case string(PricingModePerUnit), "perPiece":
		return PricingModePerUnit, true
	case string(PricingModePerArea), "perSquareMeter":
		return PricingModePerArea, true
	}
	return "", false
}

// Service is a catalog entry.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Order line items reference a service by id and snapshot its name, price and
// pricing mode when the order is placed, so catalog edits never rewrite
// historical revenue.
type Service struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	PricingMode PricingMode     `json:"pricing_mode"`
	ImageRef    string          `json:"image_ref,omitempty"`
	ImageKey    string          `json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
