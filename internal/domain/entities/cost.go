package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cost is an expense entry.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Date has day granularity and is stored as YYYY-MM-DD.
type Cost struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Date       time.Time       `json:"date"`
	ReportedBy string          `json:"reported_by"`
	CreatedAt  time.Time       `json:"created_at"`
}
