package locationrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAgentLocationRepository implements AgentLocationRepository using GORM.
type GormAgentLocationRepository struct {
	db *gorm.DB
}

// NewGormAgentLocationRepository creates a new GORM agent location repository.
func NewGormAgentLocationRepository(db *gorm.DB) *GormAgentLocationRepository {
	return &GormAgentLocationRepository{db: db}
}

// Upsert writes the agent's latest position, creating or overwriting the
// agent's single row, and returns the stored row.
//
// When availability is nil the two sides of the upsert default differently:
// a freshly inserted row gets available (the agent just came online), while
// an existing row is moved to on_delivery (an agent that keeps reporting is
// presumed out delivering). Passing a non-nil availability pins both sides
// to that value.
func (r *GormAgentLocationRepository) Upsert(
	ctx context.Context,
	agentID kernel.UUID,
	point kernel.GeoPoint,
	availability *agent.Availability,
) (*agent.Location, error) {
	if err := agentID.Validate(); err != nil {
		return nil, err
	}
	if err := point.Validate(); err != nil {
		return nil, err
	}

	insertAvailability := agent.Available
	updateAvailability := agent.OnDelivery
	if availability != nil {
		if err := availability.Validate(); err != nil {
			return nil, err
		}
		insertAvailability = *availability
		updateAvailability = *availability
	}

	now := time.Now().UTC()
	dto := AgentLocationDTO{
		AgentID:      agentID.Bytes(),
		Latitude:     point.Latitude(),
		Longitude:    point.Longitude(),
		Availability: insertAvailability.String(),
		UpdatedAt:    now,
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "agent_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"latitude":     point.Latitude(),
			"longitude":    point.Longitude(),
			"availability": updateAvailability.String(),
			"updated_at":   now,
		}),
	}).Create(&dto).Error; err != nil {
		return nil, err
	}

	return r.GetByAgent(ctx, agentID)
}

// GetByAgent retrieves an agent's latest position.
func (r *GormAgentLocationRepository) GetByAgent(ctx context.Context, agentID kernel.UUID) (*agent.Location, error) {
	if err := agentID.Validate(); err != nil {
		return nil, err
	}

	var dto AgentLocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "agent_id = ?", agentID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agentLocation", agentID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// SetAvailability overwrites only the published availability, leaving the
// position and its timestamp untouched.
func (r *GormAgentLocationRepository) SetAvailability(
	ctx context.Context,
	agentID kernel.UUID,
	availability agent.Availability,
) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if err := availability.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&AgentLocationDTO{}).
		Where("agent_id = ?", agentID.Bytes()).
		Update("availability", availability.String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agentLocation", agentID.String())
	}

	return nil
}

// ResetStaleOnDelivery moves every agent still published as on_delivery whose
// row predates the cutoff back to available. Returns the number of rows
// changed.
func (r *GormAgentLocationRepository) ResetStaleOnDelivery(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&AgentLocationDTO{}).
		Where("availability = ? AND updated_at < ?", agent.OnDelivery.String(), cutoff).
		Update("availability", agent.Available.String())
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
