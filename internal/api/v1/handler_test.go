package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	playgroundValidator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/cloudpay/paymentledger/internal/api"
	v1 "github.com/cloudpay/paymentledger/internal/api/v1"
	"github.com/cloudpay/paymentledger/internal/api/validator"
	"github.com/cloudpay/paymentledger/internal/constants"
	apierrors "github.com/cloudpay/paymentledger/internal/errors"
	"github.com/cloudpay/paymentledger/internal/mocks"
	"github.com/cloudpay/paymentledger/internal/model"
	"github.com/cloudpay/paymentledger/internal/service"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(svc service.PaymentService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apierrors.ErrorHandler()})

	xv := validator.NewXValidator(playgroundValidator.New(), nil)
	handler := v1.NewHandler(zap.NewNop(), svc, xv)
	api.SetupRoutes(app, handler)

	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var env envelope
	assert.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func TestHandler_SubmitPayment(t *testing.T) {
	t.Run("stores payment and returns created record", func(t *testing.T) {
		mockService := &mocks.PaymentService{}
		app := newTestApp(mockService)

		created := model.Payment{
			ID:            7,
			ClientName:    "Asha",
			Phone:         "555",
			Amount:        100,
			RMName:        "R1",
			ScreenshotURL: "http://x/1.png",
			Status:        model.PaymentStatusPending,
			CreatedAt:     time.Now(),
		}

		mockService.On("Submit", mock.Anything,
			mock.MatchedBy(func(cmd service.SubmitPaymentCommand) bool {
				return cmd.ClientName == "Asha" &&
					cmd.Phone == "555" &&
					cmd.Amount == 100 &&
					cmd.RMName == "R1" &&
					cmd.ScreenshotURL == "http://x/1.png"
			})).Return(created, nil)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/payments", map[string]any{
			"client_name":    "Asha",
			"phone":          "555",
			"amount":         100,
			"rm_name":        "R1",
			"screenshot_url": "http://x/1.png",
		}))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.Equal(t, "success", env.Status)

		var payment model.Payment
		assert.NoError(t, json.Unmarshal(env.Data, &payment))
		assert.Equal(t, int64(7), payment.ID)
		assert.Equal(t, model.PaymentStatusPending, payment.Status)
		assert.False(t, payment.CreatedAt.IsZero())

		mockService.AssertExpectations(t)
	})

	t.Run("rejects missing client_name before any datastore access", func(t *testing.T) {
		mockService := &mocks.PaymentService{}
		app := newTestApp(mockService)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/payments", map[string]any{
			"phone":  "555",
			"amount": 100,
		}))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		env := decodeEnvelope(t, resp)
		assert.Equal(t, constants.ErrCodeValidationFailed, env.Code)

		mockService.AssertNotCalled(t, "Submit")
	})

	t.Run("rejects missing phone", func(t *testing.T) {
		mockService := &mocks.PaymentService{}
		app := newTestApp(mockService)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/payments", map[string]any{
			"client_name": "Asha",
			"amount":      100,
		}))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		mockService.AssertNotCalled(t, "Submit")
	})

	t.Run("masks datastore failure as generic server error", func(t *testing.T) {
		mockService := &mocks.PaymentService{}
		app := newTestApp(mockService)

		mockService.On("Submit", mock.Anything, mock.AnythingOfType("service.SubmitPaymentCommand")).
			Return(model.Payment{}, service.NewServiceError(constants.ErrCodeOperationFailed,
				errors.New("pq: connection refused")))

		resp, err := app.Test(jsonRequest(http.MethodPost, "/payments", map[string]any{
			"client_name": "Asha",
			"phone":       "555",
			"amount":      100,
		}))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		assert.NotContains(t, string(raw), "connection refused")
	})
}

func TestHandler_ListPayments(t *testing.T) {
	t.Run("returns records newest first", func(t *testing.T) {
		mockService := &mocks.PaymentService{}
		app := newTestApp(mockService)

		t1 := time.Now().Add(-time.Hour)
		t2 := time.Now()

		mockService.On("List", mock.Anything).Return([]model.Payment{
			{ID: 2, ClientName: "Later", Status: model.PaymentStatusPending, CreatedAt: t2},
			{ID: 1, ClientName: "Earlier", Status: model.PaymentStatusPending, CreatedAt: t1},
		}, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/payments", nil))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		env := decodeEnvelope(t, resp)

		var payments []model.Payment
		assert.NoError(t, json.Unmarshal(env.Data, &payments))
		assert.Len(t, payments, 2)
		assert.Equal(t, int64(2), payments[0].ID)
		assert.Equal(t, int64(1), payments[1].ID)
	})

	t.Run("surfaces datastore failure as server error", func(t *testing.T) {
		mockService := &mocks.PaymentService{}
		app := newTestApp(mockService)

		mockService.On("List", mock.Anything).
			Return(nil, service.NewServiceError(constants.ErrCodeOperationFailed, errors.New("down")))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/payments", nil))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestHandler_UpdatePaymentStatus(t *testing.T) {
	t.Run("approves an existing payment", func(t *testing.T) {
		mockService := &mocks.PaymentService{}
		app := newTestApp(mockService)

		mockService.On("UpdateStatus", mock.Anything,
			service.UpdateStatusCommand{ID: 1, Status: "Approved"}).
			Return(model.Payment{ID: 1, ClientName: "Asha", Status: model.PaymentStatusApproved}, nil)

		resp, err := app.Test(jsonRequest(http.MethodPut, "/payments/1", map[string]any{
			"status": "Approved",
		}))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		env := decodeEnvelope(t, resp)

		var payment model.Payment
		assert.NoError(t, json.Unmarshal(env.Data, &payment))
		assert.Equal(t, int64(1), payment.ID)
		assert.Equal(t, model.PaymentStatusApproved, payment.Status)

		mockService.AssertExpectations(t)
	})

	t.Run("returns 404 for an unknown id", func(t *testing.T) {
		mockService := &mocks.PaymentService{}
		app := newTestApp(mockService)

		mockService.On("UpdateStatus", mock.Anything,
			service.UpdateStatusCommand{ID: 9999, Status: "Approved"}).
			Return(model.Payment{}, service.NewServiceError(constants.ErrCodePaymentNotFound,
				errors.New("PAYMENT_NOT_FOUND")))

		resp, err := app.Test(jsonRequest(http.MethodPut, "/payments/9999", map[string]any{
			"status": "Approved",
		}))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("returns 400 for a status outside the enum", func(t *testing.T) {
		mockService := &mocks.PaymentService{}
		app := newTestApp(mockService)

		mockService.On("UpdateStatus", mock.Anything,
			service.UpdateStatusCommand{ID: 1, Status: "Cancelled"}).
			Return(model.Payment{}, service.NewServiceError(constants.ErrCodeInvalidStatus,
				errors.New("INVALID_STATUS")))

		resp, err := app.Test(jsonRequest(http.MethodPut, "/payments/1", map[string]any{
			"status": "Cancelled",
		}))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("returns 400 when the body has no status", func(t *testing.T) {
		mockService := &mocks.PaymentService{}
		app := newTestApp(mockService)

		resp, err := app.Test(jsonRequest(http.MethodPut, "/payments/1", map[string]any{}))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		mockService.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("returns 400 for a non-numeric id", func(t *testing.T) {
		mockService := &mocks.PaymentService{}
		app := newTestApp(mockService)

		resp, err := app.Test(jsonRequest(http.MethodPut, "/payments/abc", map[string]any{
			"status": "Approved",
		}))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		mockService.AssertNotCalled(t, "UpdateStatus")
	})
}

func TestHandler_Health(t *testing.T) {
	t.Run("reports connected database", func(t *testing.T) {
		mockService := &mocks.PaymentService{}
		app := newTestApp(mockService)

		mockService.On("Ping", mock.Anything).Return(nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		var health map[string]string
		assert.NoError(t, json.Unmarshal(raw, &health))
		assert.Equal(t, "OK", health["status"])
		assert.Equal(t, "connected", health["database"])
	})

	t.Run("reports disconnected database with server error", func(t *testing.T) {
		mockService := &mocks.PaymentService{}
		app := newTestApp(mockService)

		mockService.On("Ping", mock.Anything).Return(context.DeadlineExceeded)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		var health map[string]string
		assert.NoError(t, json.Unmarshal(raw, &health))
		assert.Equal(t, "not connected", health["database"])
	})
}
