package parcelrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing parcel to the database.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel by ID.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingCode retrieves a parcel by its tracking code.
func (r *GormParcelRepository) GetByTrackingCode(ctx context.Context, trackingCode string) (*parcel.Parcel, error) {
	if trackingCode == "" {
		return nil, errs.NewValueIsRequiredError("trackingCode")
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_code = ?", trackingCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingCode", trackingCode)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllLiveByAgent retrieves the parcels assigned to an agent whose status
// is live (assigned, picked_up or in_transit). Location broadcasts fan out
// to the owners of exactly these parcels; pending and terminal parcels
// never produce events.
//
// Example:
//
//	liveParcels, err := repo.GetAllLiveByAgent(ctx, agentID)
//	if err != nil {
//		return fmt.Errorf("failed to get live parcels: %w", err)
//	}
//	for _, p := range liveParcels {
//		fmt.Printf("Broadcasting to owner of %s\n", p.TrackingCode())
//	}
func (r *GormParcelRepository) GetAllLiveByAgent(ctx context.Context, agentID kernel.UUID) ([]*parcel.Parcel, error) {
	if err := agentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).
		Table("parcels").
		Select("parcels.*").
		Joins("JOIN assignments ON assignments.parcel_id = parcels.id").
		Where("assignments.agent_id = ?", agentID.Bytes()).
		Where("parcels.status IN ?", []int{
			int(parcel.StatusAssigned),
			int(parcel.StatusPickedUp),
			int(parcel.StatusInTransit),
		}).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}
