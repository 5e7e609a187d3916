package api

import (
	v1 "github.com/cloudpay/paymentledger/internal/api/v1"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/", handler.Health)
	app.Get("/admin", handler.Admin)
	app.Post("/payments", handler.SubmitPayment)
	app.Get("/payments", handler.ListPayments)
	app.Put("/payments/:id", handler.UpdatePaymentStatus)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Static("/", "./public")
}
