package request

import (
	"strings"
	"time"

	"laundry_desk/internal/usecase"
)

const DateLayout = "2006-01-02"

type CreateCostRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       string `json:"price" binding:"required,decimal2"`
	DisplayName string `json:"display_name"`
}

func (r CreateCostRequest) ToCommand(deviceToken string) usecase.CreateCostCommand {
	return usecase.CreateCostCommand{
		DeviceToken: deviceToken,
		Name:        r.Name,
		Price:       r.Price,
		DisplayName: r.DisplayName,
	}
}

type UpdateCostRequest struct {
	Name  *string `json:"name"`
	Price *string `json:"price" binding:"omitempty,decimal2"`
}

func (r UpdateCostRequest) ToCommand() usecase.UpdateCostCommand {
	return usecase.UpdateCostCommand{Name: r.Name, Price: r.Price}
}

// ParseDate reads an optional YYYY-MM-DD query value in loc. Empty input
// yields nil.
func ParseDate(v string, loc *time.Location) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, v, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
