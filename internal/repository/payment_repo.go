package repository

import (
	"context"

	"flexio/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.PaymentOrder) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByProviderRef(ctx context.Context, ref string) (*models.PaymentOrder, error) {
	var p models.PaymentOrder
	err := r.db.WithContext(ctx).Where("provider_ref = ?", ref).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*models.PaymentOrder, error) {
	var p models.PaymentOrder
	err := r.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *models.PaymentOrder) error {
	return r.db.WithContext(ctx).Save(p).Error
}
