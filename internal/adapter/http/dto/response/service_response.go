package response

import (
	"time"

	"laundry_desk/internal/domain/entities"
)

type ServiceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       Money     `json:"price"`
	PricingMode string    `json:"pricing_mode"`
	ImageRef    string    `json:"image_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromService(s entities.Service, currency string) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Price:       NewMoney(s.Price, currency),
		PricingMode: string(s.PricingMode),
		ImageRef:    s.ImageRef,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func FromServices(list []entities.Service, currency string) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromService(s, currency))
	}
	return out
}

type UploadResponse struct {
	URL string `json:"url"`
}
