package request

import "laundry_desk/internal/usecase"

// CreateServiceRequest binds from JSON or from a multipart form carrying an
// optional "image" file.
type CreateServiceRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Price       string `json:"price" form:"price" binding:"required,decimal2"`
	PricingMode string `json:"pricing_mode" form:"pricing_mode" binding:"required"`
}

func (r CreateServiceRequest) ToCommand(img *usecase.BlobUpload) usecase.CreateServiceCommand {
	return usecase.CreateServiceCommand{
		Name:        r.Name,
		Price:       r.Price,
		PricingMode: r.PricingMode,
		Image:       img,
	}
}

// UpdateServiceRequest changes only the fields present.
type UpdateServiceRequest struct {
	Name        *string `json:"name" form:"name"`
	Price       *string `json:"price" form:"price" binding:"omitempty,decimal2"`
	PricingMode *string `json:"pricing_mode" form:"pricing_mode"`
}

func (r UpdateServiceRequest) ToCommand(img *usecase.BlobUpload) usecase.UpdateServiceCommand {
	return usecase.UpdateServiceCommand{
		Name:        r.Name,
		Price:       r.Price,
		PricingMode: r.PricingMode,
		Image:       img,
	}
}

// IsEmpty reports a request that would change nothing.
func (r UpdateServiceRequest) IsEmpty() bool {
	return r.Name == nil && r.Price == nil && r.PricingMode == nil
}
