package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"laundry_desk/internal/adapter/http/handlers/mocks"
	"laundry_desk/internal/adapter/http/middleware"
	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/usecase"
	"laundry_desk/pkg"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func newOrderRouter(t *testing.T) (*gin.Engine, *mocks.MockIOrderUseCase) {
	t.Helper()
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIOrderUseCase(ctrl)
	h := NewOrderHandler(uc, "DA")

	r := gin.New()
	r.POST("/v1/orders", h.CreateOrder)
	r.GET("/v1/orders", h.ListActive)
	r.GET("/v1/orders/archive", h.ListArchive)
	r.GET("/v1/orders/:id", h.GetOrder)
	r.PATCH("/v1/orders/:id/advance", h.AdvanceOrder)
	r.PATCH("/v1/orders/:id/cancel", h.CancelOrder)
	r.DELETE("/v1/orders/:id", h.PurgeOrder)
	return r, uc
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var body pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return body
}

func sampleOrder(status entities.OrderStatus) entities.Order {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return entities.Order{
		ID:            "ord-1",
		CustomerName:  "Amina",
		CustomerPhone: "0555123456",
		LocationRef:   "https://www.google.com/maps?q=36.75,3.06",
		Status:        status,
		Items: []entities.LineItem{
			{ServiceID: "svc-1", ServiceName: "Shirt", UnitPrice: decimal.RequireFromString("150"), PricingMode: entities.PricingModePerUnit, Quantity: "2"},
		},
		Total:     decimal.RequireFromString("300"),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

const validOrderBody = `{"customer_name":"Amina","customer_phone":"0555123456","location_ref":"https://maps/x","items":[{"service_id":"svc-1","quantity":"2"}]}`

func TestOrderHandler_CreateOrder(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		r, _ := newOrderRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/orders", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("phone must have 10 digits", func(t *testing.T) {
		r, _ := newOrderRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/orders", `{"customer_name":"Amina","customer_phone":"12345","items":[{"service_id":"svc-1","quantity":"1"}]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Details["customer_phone"] == "" {
			t.Fatalf("expected customer_phone detail, got %+v", body)
		}
	})

	t.Run("at least one item", func(t *testing.T) {
		r, _ := newOrderRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/orders", `{"customer_name":"Amina","customer_phone":"0555123456","items":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid quantity is unprocessable", func(t *testing.T) {
		r, uc := newOrderRouter(t)
		uc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(entities.Order{}, fmt.Errorf("line item 0: %w", usecase.ErrInvalidQuantity))

		w := doJSON(r, http.MethodPost, "/v1/orders", validOrderBody)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "INVALID_QUANTITY" {
			t.Fatalf("expected INVALID_QUANTITY, got %s", body.Code)
		}
	})

	t.Run("corrupt pricing mode", func(t *testing.T) {
		r, uc := newOrderRouter(t)
		uc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(entities.Order{}, fmt.Errorf("%w: %q", usecase.ErrUnknownPricingMode, "perKilo"))

		w := doJSON(r, http.MethodPost, "/v1/orders", validOrderBody)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "INVALID_PRICING_MODE" {
			t.Fatalf("expected INVALID_PRICING_MODE, got %s", body.Code)
		}
	})

	t.Run("store failure hides the cause", func(t *testing.T) {
		r, uc := newOrderRouter(t)
		uc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(entities.Order{}, fmt.Errorf("%w: %w", usecase.ErrPersistence, errors.New("secret table name")))

		w := doJSON(r, http.MethodPost, "/v1/orders", validOrderBody)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
		if bytes.Contains(w.Body.Bytes(), []byte("secret")) {
			t.Fatalf("cause leaked to client: %s", w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newOrderRouter(t)
		uc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, cmd usecase.CreateOrderCommand) (entities.Order, error) {
			if cmd.CustomerPhone != "0555123456" || len(cmd.Items) != 1 || cmd.Items[0].Quantity != "2" {
				t.Fatalf("unexpected command: %+v", cmd)
			}
			return sampleOrder(entities.OrderStatusNew), nil
		})

		w := doJSON(r, http.MethodPost, "/v1/orders", validOrderBody)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		total := body["total"].(map[string]any)
		if total["amount"] != "300" || total["display"] != "300 DA" {
			t.Fatalf("unexpected total: %+v", total)
		}
	})
}

func TestOrderHandler_ListActive(t *testing.T) {
	t.Run("passes filter", func(t *testing.T) {
		r, uc := newOrderRouter(t)
		uc.EXPECT().ListActive(gomock.Any(), "Waiting").Return([]entities.Order{sampleOrder(entities.OrderStatusWaiting)}, nil)

		w := doJSON(r, http.MethodGet, "/v1/orders?status=Waiting", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 1 || body[0]["status"] != "Waiting" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("invalid filter", func(t *testing.T) {
		r, uc := newOrderRouter(t)
		uc.EXPECT().ListActive(gomock.Any(), "Done").Return(nil, usecase.ErrInvalidStatusFilter)

		w := doJSON(r, http.MethodGet, "/v1/orders?status=Done", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestOrderHandler_ListArchive(t *testing.T) {
	r, uc := newOrderRouter(t)
	uc.EXPECT().ListArchive(gomock.Any()).Return([]entities.Order{sampleOrder(entities.OrderStatusDelivered), sampleOrder(entities.OrderStatusDeleted)}, nil)

	w := doJSON(r, http.MethodGet, "/v1/orders/archive", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestOrderHandler_GetOrder(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		r, uc := newOrderRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Order{}, usecase.ErrOrderNotFound)

		w := doJSON(r, http.MethodGet, "/v1/orders/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("found", func(t *testing.T) {
		r, uc := newOrderRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "ord-1").Return(sampleOrder(entities.OrderStatusReady), nil)

		w := doJSON(r, http.MethodGet, "/v1/orders/ord-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestOrderHandler_AdvanceOrder(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"success", nil, http.StatusOK},
		{"terminal", usecase.ErrOrderTerminal, http.StatusConflict},
		{"concurrent", usecase.ErrConcurrentUpdate, http.StatusConflict},
		{"not found", usecase.ErrOrderNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, uc := newOrderRouter(t)
			order := entities.Order{}
			if tt.err == nil {
				order = sampleOrder(entities.OrderStatusWaiting)
			}
			uc.EXPECT().Advance(gomock.Any(), "ord-1").Return(order, tt.err)

			w := doJSON(r, http.MethodPatch, "/v1/orders/ord-1/advance", "")
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestOrderHandler_CancelOrder(t *testing.T) {
	t.Run("not confirmed", func(t *testing.T) {
		r, uc := newOrderRouter(t)
		uc.EXPECT().Cancel(gomock.Any(), "ord-1", false).Return(entities.Order{}, usecase.ErrCancellationNotConfirmed)

		w := doJSON(r, http.MethodPatch, "/v1/orders/ord-1/cancel", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "CANCELLATION_NOT_CONFIRMED" {
			t.Fatalf("unexpected code %s", body.Code)
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		r, uc := newOrderRouter(t)
		uc.EXPECT().Cancel(gomock.Any(), "ord-1", true).Return(sampleOrder(entities.OrderStatusDeleted), nil)

		w := doJSON(r, http.MethodPatch, "/v1/orders/ord-1/cancel", `{"confirm":true}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestOrderHandler_PurgeOrder(t *testing.T) {
	t.Run("active order", func(t *testing.T) {
		r, uc := newOrderRouter(t)
		uc.EXPECT().PurgeArchived(gomock.Any(), "ord-1").Return(usecase.ErrOrderNotArchived)

		w := doJSON(r, http.MethodDelete, "/v1/orders/ord-1", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("purged", func(t *testing.T) {
		r, uc := newOrderRouter(t)
		uc.EXPECT().PurgeArchived(gomock.Any(), "ord-1").Return(nil)

		w := doJSON(r, http.MethodDelete, "/v1/orders/ord-1", "")
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}

func TestMapError_PartialFailureWins(t *testing.T) {
	err := errors.Join(usecase.ErrPartialFailure, fmt.Errorf("%w: x", usecase.ErrPersistence))
	if got := mapError(err); got.Code != "PARTIAL_FAILURE" || got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping: %+v", got)
	}
	if got := mapError(errors.New("boom")); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected default mapping: %+v", got)
	}
}
