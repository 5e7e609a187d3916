package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudpay/paymentledger/internal/constants"
	"github.com/cloudpay/paymentledger/internal/metrics"
	"github.com/cloudpay/paymentledger/internal/model"
	"github.com/cloudpay/paymentledger/internal/repository"
	"go.uber.org/zap"
)

var ErrInvalidStatus = errors.New("INVALID_STATUS")

type PaymentService interface {
	Submit(ctx context.Context, cmd SubmitPaymentCommand) (model.Payment, error)
	List(ctx context.Context) ([]model.Payment, error)
	UpdateStatus(ctx context.Context, cmd UpdateStatusCommand) (model.Payment, error)
	Ping(ctx context.Context) error
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	log         *zap.Logger
	metrics     *metrics.Metrics
}

func NewPaymentService(paymentRepo repository.PaymentRepository, log *zap.Logger, metrics *metrics.Metrics) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, log: log, metrics: metrics}
}

func (s *paymentService) Submit(ctx context.Context, cmd SubmitPaymentCommand) (model.Payment, error) {
	start := time.Now()

	payment := model.Payment{
		ClientName:    cmd.ClientName,
		Phone:         cmd.Phone,
		Amount:        cmd.Amount,
		RMName:        cmd.RMName,
		ScreenshotURL: cmd.ScreenshotURL,
		Status:        model.PaymentStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := s.paymentRepo.Create(ctx, &payment); err != nil {
		s.log.Error("Failed to create payment",
			zap.String("client_name", cmd.ClientName),
			zap.Float64("amount", cmd.Amount),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		s.metrics.RecordDBQuery("insert", "payments", "error", time.Since(start))
		return model.Payment{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.metrics.RecordDBQuery("insert", "payments", "success", time.Since(start))
	s.metrics.RecordPaymentCreated()

	s.log.Info("Payment created successfully",
		zap.Int64("payment_id", payment.ID),
		zap.String("client_name", payment.ClientName),
		zap.Float64("amount", payment.Amount),
		zap.Duration("duration", time.Since(start)),
	)

	return payment, nil
}

func (s *paymentService) List(ctx context.Context) ([]model.Payment, error) {
	start := time.Now()

	payments, err := s.paymentRepo.List(ctx)
	duration := time.Since(start)

	if err != nil {
		s.log.Error("Failed to list payments",
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		s.metrics.RecordDBQuery("select", "payments", "error", duration)
		s.metrics.RecordListRetrieval("error")
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.metrics.RecordDBQuery("select", "payments", "success", duration)
	s.metrics.RecordListRetrieval("success")

	s.log.Debug("Payments listed successfully",
		zap.Int("count", len(payments)),
		zap.Duration("duration", duration),
	)

	return payments, nil
}

func (s *paymentService) UpdateStatus(ctx context.Context, cmd UpdateStatusCommand) (model.Payment, error) {
	status := model.PaymentStatus(cmd.Status)
	if !model.ValidStatus(status) {
		return model.Payment{}, NewServiceError(constants.ErrCodeInvalidStatus,
			fmt.Errorf("%w: %q", ErrInvalidStatus, cmd.Status))
	}

	start := time.Now()

	if err := s.paymentRepo.UpdateStatus(ctx, cmd.ID, status); err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return model.Payment{}, NewServiceError(constants.ErrCodePaymentNotFound, err)
		}
		if errors.Is(err, repository.ErrInvalidStatus) {
			return model.Payment{}, NewServiceError(constants.ErrCodeInvalidStatus, err)
		}

		s.log.Error("Failed to update payment status",
			zap.Int64("payment_id", cmd.ID),
			zap.String("status", cmd.Status),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		s.metrics.RecordDBQuery("update", "payments", "error", time.Since(start))
		return model.Payment{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.metrics.RecordDBQuery("update", "payments", "success", time.Since(start))
	s.metrics.RecordStatusUpdate(string(status))

	payment, err := s.paymentRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return model.Payment{}, NewServiceError(constants.ErrCodePaymentNotFound, err)
		}
		return model.Payment{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.log.Info("Payment status updated",
		zap.Int64("payment_id", payment.ID),
		zap.String("status", string(payment.Status)),
	)

	return *payment, nil
}

func (s *paymentService) Ping(ctx context.Context) error {
	start := time.Now()

	err := s.paymentRepo.Ping(ctx)
	if err != nil {
		s.log.Error("Database probe failed", zap.Error(err))
		s.metrics.RecordDBQuery("ping", "payments", "error", time.Since(start))
		s.metrics.RecordDBConnectionError()
		return err
	}

	s.metrics.RecordDBQuery("ping", "payments", "success", time.Since(start))
	return nil
}
