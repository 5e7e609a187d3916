package service

type SubmitPaymentCommand struct {
	ClientName    string
	Phone         string
	Amount        float64
	RMName        string
	ScreenshotURL string
}

type UpdateStatusCommand struct {
	ID     int64
	Status string
}
