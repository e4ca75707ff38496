package response

import (
	"time"

	"laundry_desk/internal/domain/entities"
)

type CostResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Price      Money     `json:"price"`
	Date       string    `json:"date"`
	ReportedBy string    `json:"reported_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromCost(c entities.Cost, currency string) CostResponse {
	return CostResponse{
		ID:         c.ID,
		Name:       c.Name,
		Price:      NewMoney(c.Price, currency),
		Date:       c.Date.Format("2006-01-02"),
		ReportedBy: c.ReportedBy,
		CreatedAt:  c.CreatedAt,
	}
}

func FromCosts(list []entities.Cost, currency string) []CostResponse {
	out := make([]CostResponse, 0, len(list))
	for _, c := range list {
		out = append(out, FromCost(c, currency))
	}
	return out
}

type IdentityResponse struct {
	Key   string `json:"key"`
	Name  string `json:"name,omitempty"`
	Known bool   `json:"known"`
}
