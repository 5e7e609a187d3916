package mocks

import (
	"context"

	"github.com/cloudpay/paymentledger/internal/model"
	"github.com/stretchr/testify/mock"
)

type PaymentRepository struct {
	mock.Mock
}

func (m *PaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *PaymentRepository) List(ctx context.Context) ([]model.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *PaymentRepository) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *PaymentRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
