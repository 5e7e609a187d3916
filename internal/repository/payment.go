package repository

import (
	"context"
	"errors"

	"github.com/cloudpay/paymentledger/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("PAYMENT_NOT_FOUND")
var ErrInvalidStatus = errors.New("INVALID_STATUS")

// Postgres error code for a check-constraint violation. The payments table
// carries a CHECK on the status column so an illegal value is rejected even
// if it slips past the application-level guard.
const pgCheckViolation = "23514"

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	List(ctx context.Context) ([]model.Payment, error)
	GetByID(ctx context.Context, id int64) (*model.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status model.PaymentStatus) error
	Ping(ctx context.Context) error
}

type Payment struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &Payment{db: db}
}

// Migrate ensures the payments table exists. Create-if-absent only: existing
// rows are never touched, so it is safe to run on every process start.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Payment{})
}

func (p *Payment) Create(ctx context.Context, payment *model.Payment) error {
	err := p.db.WithContext(ctx).Create(payment).Error
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation {
		return ErrInvalidStatus
	}

	return err
}

func (p *Payment) List(ctx context.Context) ([]model.Payment, error) {
	var payments []model.Payment

	err := p.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (p *Payment) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	var payment model.Payment

	err := p.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error
	if err == nil {
		return &payment, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}

	return nil, err
}

func (p *Payment) UpdateStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	result := p.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgCheckViolation {
			return ErrInvalidStatus
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

func (p *Payment) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
