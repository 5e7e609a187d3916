package v1

type SubmitPaymentRequest struct {
	ClientName    string  `json:"client_name" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Amount        float64 `json:"amount" validate:"required"`
	RMName        string  `json:"rm_name"`
	ScreenshotURL string  `json:"screenshot_url"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
