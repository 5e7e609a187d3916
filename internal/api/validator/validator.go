package validator

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudpay/paymentledger/internal/api/contract"
	"github.com/cloudpay/paymentledger/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	sep = " and "
)

type Error struct {
	Error       bool
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	Validator(data any, message string, c *fiber.Ctx) (responseErr contract.Response)
	Validate(data interface{}) []Error
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(validator *validator.Validate, metrics *metrics.Metrics) IXValidator {
	return &XValidator{
		validator: validator,
		metrics:   metrics,
	}
}

// Validator parses the request body into data and validates it. A failed
// validation writes a 400 status and returns a non-empty response; callers
// short-circuit before touching the datastore.
func (x XValidator) Validator(data any, message string, c *fiber.Ctx) (responseErr contract.Response) {
	start := time.Now()

	c.BodyParser(data)
	if errs := x.Validate(data); len(errs) > 0 && errs[0].Error {
		errMsgs := make([]string, 0)
		for _, err := range errs {
			errMsgs = append(errMsgs, fmt.Sprintf(
				message,
				err.FailedField,
			))

			if x.metrics != nil {
				x.metrics.RecordValidationError(err.FailedField, err.Tag)
			}
		}
		errMess := strings.Join(errMsgs, sep)
		c.Status(http.StatusBadRequest)

		if x.metrics != nil {
			x.metrics.RecordValidationDuration("validation_error", time.Since(start))
		}

		return contract.Response{
			Code:    "1",
			Message: errMess,
		}
	}

	if x.metrics != nil {
		x.metrics.RecordValidationDuration("validation_success", time.Since(start))
	}

	return responseErr
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs != nil {
		for _, err := range errs.(validator.ValidationErrors) {
			var elem Error
			elem.FailedField = err.Field()
			elem.Tag = err.Tag()
			elem.Value = err.Value()
			elem.Error = true
			validationErrors = append(validationErrors, elem)
		}
	}
	return validationErrors
}
