package repository

import (
	"context"

	"isletmeapp/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeeScheduleRepository interface {
	Get(ctx context.Context) (*model.FeeSchedule, error)
	// GetTx reads the schedule inside a ledger transaction so the fee a
	// practice record is priced at is the one in force at commit time.
	GetTx(tx *gorm.DB) (*model.FeeSchedule, error)
	Update(ctx context.Context, standard, student decimal.Decimal) error
}

type feeRepo struct{ db *gorm.DB }

func NewFeeScheduleRepository(db *gorm.DB) FeeScheduleRepository { return &feeRepo{db: db} }

func (r *feeRepo) Get(ctx context.Context) (*model.FeeSchedule, error) {
	return r.get(r.db.WithContext(ctx))
}

func (r *feeRepo) GetTx(tx *gorm.DB) (*model.FeeSchedule, error) {
	return r.get(tx)
}

func (r *feeRepo) get(db *gorm.DB) (*model.FeeSchedule, error) {
	var f model.FeeSchedule
	err := db.First(&f, "id = ?", model.FeeScheduleID).Error
	return &f, err
}

func (r *feeRepo) Update(ctx context.Context, standard, student decimal.Decimal) error {
	f := model.FeeSchedule{ID: model.FeeScheduleID, StandardFee: standard, StudentFee: student}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"standard_fee", "student_fee", "updated_at"}),
	}).Create(&f).Error
}
