package constants

const MessageErrorFormat = "The '%s' field is required"

const (
	ErrCodePaymentNotFound    = "PAYMENT_NOT_FOUND"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	ErrCodeOperationFailed    = "OPERATION_FAILED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

const (
	ErrMsgPaymentNotFound    = "payment not found"
	ErrMsgInvalidStatus      = "status must be one of Pending, Approved, Rejected"
	ErrMsgInvalidRequestBody = "failed to parse request body"
	ErrMsgOperationFailed    = "operation failed"
	ErrMsgInternalError      = "Internal server error"
)

var errorMessages = map[string]string{
	ErrCodePaymentNotFound:    ErrMsgPaymentNotFound,
	ErrCodeInvalidStatus:      ErrMsgInvalidStatus,
	ErrCodeInvalidRequestBody: ErrMsgInvalidRequestBody,
	ErrCodeOperationFailed:    ErrMsgOperationFailed,
	ErrCodeInternalError:      ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidStatus, ErrCodeInvalidRequestBody:
		return 400
	case ErrCodePaymentNotFound:
		return 404
	default:
		return 500
	}
}
