package activityrepo

import (
	"context"

	"dispatch/internal/core/domain/model/activity"
	"dispatch/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormActivityRepository implements ActivityRepository using GORM.
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GORM activity repository.
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Add appends an activity record to the parcel history log.
func (r *GormActivityRepository) Add(ctx context.Context, record *activity.Activity) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllByParcel retrieves a parcel's history, oldest first.
func (r *GormActivityRepository) GetAllByParcel(ctx context.Context, parcelID kernel.UUID) ([]*activity.Activity, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ActivityDTO
	if err := r.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID.Bytes()).
		Order("recorded_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*activity.Activity, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
