package errors

import (
	"errors"

	"github.com/cloudpay/paymentledger/internal/constants"
	"github.com/cloudpay/paymentledger/internal/service"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler maps service errors onto HTTP responses. Datastore causes are
// never echoed to the caller; they only reach the operator log.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": constants.ErrMsgInternalError,
			"code":  constants.ErrCodeInternalError,
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	errorCode := err.Code

	status := constants.GetHTTPStatus(errorCode)
	if status == 500 {
		errorCode = constants.ErrCodeInternalError
	}

	return c.Status(status).JSON(fiber.Map{
		"error": constants.GetErrorMessage(errorCode),
		"code":  errorCode,
	})
}
