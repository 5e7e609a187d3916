package mocks

import (
	"context"

	"github.com/cloudpay/paymentledger/internal/model"
	"github.com/cloudpay/paymentledger/internal/service"
	"github.com/stretchr/testify/mock"
)

type PaymentService struct {
	mock.Mock
}

func (m *PaymentService) Submit(ctx context.Context, cmd service.SubmitPaymentCommand) (model.Payment, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.Payment), args.Error(1)
}

func (m *PaymentService) List(ctx context.Context) ([]model.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *PaymentService) UpdateStatus(ctx context.Context, cmd service.UpdateStatusCommand) (model.Payment, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(model.Payment), args.Error(1)
}

func (m *PaymentService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
