package v1

import (
	"strconv"
	"time"

	"github.com/cloudpay/paymentledger/internal/api/contract"
	"github.com/cloudpay/paymentledger/internal/api/validator"
	"github.com/cloudpay/paymentledger/internal/constants"
	"github.com/cloudpay/paymentledger/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	logger         *zap.Logger
	paymentService service.PaymentService
	XValidator     validator.IXValidator
}

func NewHandler(logger *zap.Logger, paymentService service.PaymentService, XValidator validator.IXValidator) *Handler {
	return &Handler{
		logger:         logger,
		paymentService: paymentService,
		XValidator:     XValidator,
	}
}

// Health probes the datastore and reports server plus database state. The
// probe is read-only.
func (h *Handler) Health(c *fiber.Ctx) error {
	if err := h.paymentService.Ping(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(contract.HealthResponse{
			Status:   "error",
			Database: "not connected",
		})
	}

	return c.JSON(contract.HealthResponse{
		Status:   "OK",
		Message:  "Cloud Payment Server Running",
		Database: "connected",
	})
}

func (h *Handler) Admin(c *fiber.Ctx) error {
	return c.SendFile("./public/admin.html")
}

func (h *Handler) SubmitPayment(c *fiber.Ctx) error {
	start := time.Now()

	var handlerRequest SubmitPaymentRequest

	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Payment submission failed validation", zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	cmd := service.SubmitPaymentCommand{
		ClientName:    handlerRequest.ClientName,
		Phone:         handlerRequest.Phone,
		Amount:        handlerRequest.Amount,
		RMName:        handlerRequest.RMName,
		ScreenshotURL: handlerRequest.ScreenshotURL,
	}

	payment, err := h.paymentService.Submit(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	h.logger.Info("Payment submitted",
		zap.Int64("payment_id", payment.ID),
		zap.String("client_name", payment.ClientName),
		zap.Duration("duration", time.Since(start)),
	)

	return c.Status(fiber.StatusCreated).JSON(contract.Response{Status: "success", Data: payment})
}

func (h *Handler) ListPayments(c *fiber.Ctx) error {
	payments, err := h.paymentService.List(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(contract.Response{Status: "success", Data: payments})
}

func (h *Handler) UpdatePaymentStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(contract.ErrorResponse{
			Error: "payment id must be an integer",
			Code:  constants.ErrCodeValidationFailed,
		})
	}

	var handlerRequest UpdateStatusRequest

	responseError := h.XValidator.Validator(&handlerRequest, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Status update failed validation",
			zap.Int64("payment_id", id),
			zap.Any("request", handlerRequest))
		responseError.Code = constants.ErrCodeValidationFailed
		return c.JSON(responseError)
	}

	cmd := service.UpdateStatusCommand{
		ID:     id,
		Status: handlerRequest.Status,
	}

	payment, err := h.paymentService.UpdateStatus(c.UserContext(), cmd)
	if err != nil {
		return err
	}

	h.logger.Info("Payment status updated",
		zap.Int64("payment_id", payment.ID),
		zap.String("status", string(payment.Status)),
	)

	return c.JSON(contract.Response{Status: "success", Data: payment})
}
