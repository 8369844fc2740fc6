package locationrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/locationrepo"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AgentLocationRepositoryIntegrationTestSuite provides integration tests for
// AgentLocationRepository using PostgreSQL containers to verify the upsert
// semantics that the state machine and presence handling rely on.
type AgentLocationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *locationrepo.GormAgentLocationRepository
}

func (suite *AgentLocationRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&locationrepo.AgentLocationDTO{}))
}

func (suite *AgentLocationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE agent_locations").Error)
	suite.repository = locationrepo.NewGormAgentLocationRepository(suite.db)
}

func (suite *AgentLocationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AgentLocationRepositoryIntegrationTestSuite) TestUpsert_FirstReport_DefaultsToAvailable() {
	ctx := context.Background()
	agentID := kernel.NewUUID()
	point := suite.mustGeoPoint(52.52, 13.405)

	stored, err := suite.repository.Upsert(ctx, agentID, point, nil)
	suite.Require().NoError(err)

	suite.Equal(agentID, stored.AgentID())
	suite.Equal(agent.Available, stored.Availability())
	suite.InDelta(52.52, stored.Point().Latitude(), 1e-9)
	suite.InDelta(13.405, stored.Point().Longitude(), 1e-9)
}

func (suite *AgentLocationRepositoryIntegrationTestSuite) TestUpsert_SecondReport_MovesToOnDelivery() {
	ctx := context.Background()
	agentID := kernel.NewUUID()

	_, err := suite.repository.Upsert(ctx, agentID, suite.mustGeoPoint(52.52, 13.405), nil)
	suite.Require().NoError(err)

	stored, err := suite.repository.Upsert(ctx, agentID, suite.mustGeoPoint(52.53, 13.41), nil)
	suite.Require().NoError(err)

	suite.Equal(agent.OnDelivery, stored.Availability(), "A repeating reporter is out delivering")
	suite.InDelta(52.53, stored.Point().Latitude(), 1e-9)
	suite.InDelta(13.41, stored.Point().Longitude(), 1e-9)

	suite.assertRowCount(1)
}

func (suite *AgentLocationRepositoryIntegrationTestSuite) TestUpsert_ExplicitAvailability_PinsBothSides() {
	ctx := context.Background()
	agentID := kernel.NewUUID()
	pinned := agent.Available

	stored, err := suite.repository.Upsert(ctx, agentID, suite.mustGeoPoint(48.8566, 2.3522), &pinned)
	suite.Require().NoError(err)
	suite.Equal(agent.Available, stored.Availability())

	stored, err = suite.repository.Upsert(ctx, agentID, suite.mustGeoPoint(48.86, 2.36), &pinned)
	suite.Require().NoError(err)
	suite.Equal(agent.Available, stored.Availability(), "Explicit availability overrides the on_delivery default")
}

func (suite *AgentLocationRepositoryIntegrationTestSuite) TestGetByAgent_UnknownAgent_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.GetByAgent(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AgentLocationRepositoryIntegrationTestSuite) TestSetAvailability_ExistingRow_UpdatesOnlyAvailability() {
	ctx := context.Background()
	agentID := kernel.NewUUID()

	stored, err := suite.repository.Upsert(ctx, agentID, suite.mustGeoPoint(52.52, 13.405), nil)
	suite.Require().NoError(err)
	reportedAt := stored.UpdatedAt()

	err = suite.repository.SetAvailability(ctx, agentID, agent.OnDelivery)
	suite.Require().NoError(err)

	updated, err := suite.repository.GetByAgent(ctx, agentID)
	suite.Require().NoError(err)
	suite.Equal(agent.OnDelivery, updated.Availability())
	suite.InDelta(52.52, updated.Point().Latitude(), 1e-9)
	suite.WithinDuration(reportedAt, updated.UpdatedAt(), time.Second, "Position timestamp is untouched")
}

func (suite *AgentLocationRepositoryIntegrationTestSuite) TestSetAvailability_UnknownAgent_ReturnsNotFound() {
	ctx := context.Background()

	err := suite.repository.SetAvailability(ctx, kernel.NewUUID(), agent.Available)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AgentLocationRepositoryIntegrationTestSuite) TestResetStaleOnDelivery_ResetsOnlyStaleRows() {
	ctx := context.Background()

	staleAgent := kernel.NewUUID()
	freshAgent := kernel.NewUUID()
	availableAgent := kernel.NewUUID()

	onDelivery := agent.OnDelivery
	_, err := suite.repository.Upsert(ctx, staleAgent, suite.mustGeoPoint(52.52, 13.405), &onDelivery)
	suite.Require().NoError(err)
	_, err = suite.repository.Upsert(ctx, freshAgent, suite.mustGeoPoint(48.8566, 2.3522), &onDelivery)
	suite.Require().NoError(err)
	_, err = suite.repository.Upsert(ctx, availableAgent, suite.mustGeoPoint(51.5074, -0.1278), nil)
	suite.Require().NoError(err)

	// Age the stale agent's row directly.
	staleTime := time.Now().UTC().Add(-2 * time.Hour)
	err = suite.db.Model(&locationrepo.AgentLocationDTO{}).
		Where("agent_id = ?", staleAgent.Bytes()).
		Update("updated_at", staleTime).Error
	suite.Require().NoError(err)

	reset, err := suite.repository.ResetStaleOnDelivery(ctx, time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Equal(int64(1), reset)

	staleRow, err := suite.repository.GetByAgent(ctx, staleAgent)
	suite.Require().NoError(err)
	suite.Equal(agent.Available, staleRow.Availability())

	freshRow, err := suite.repository.GetByAgent(ctx, freshAgent)
	suite.Require().NoError(err)
	suite.Equal(agent.OnDelivery, freshRow.Availability(), "Recent on_delivery rows are left alone")

	availableRow, err := suite.repository.GetByAgent(ctx, availableAgent)
	suite.Require().NoError(err)
	suite.Equal(agent.Available, availableRow.Availability())
}

func (suite *AgentLocationRepositoryIntegrationTestSuite) TestResetStaleOnDelivery_NothingStale_ReturnsZero() {
	ctx := context.Background()

	onDelivery := agent.OnDelivery
	_, err := suite.repository.Upsert(ctx, kernel.NewUUID(), suite.mustGeoPoint(52.52, 13.405), &onDelivery)
	suite.Require().NoError(err)

	reset, err := suite.repository.ResetStaleOnDelivery(ctx, time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Zero(reset)
}

func (suite *AgentLocationRepositoryIntegrationTestSuite) mustGeoPoint(lat, lon float64) kernel.GeoPoint {
	point, err := kernel.NewGeoPoint(lat, lon)
	suite.Require().NoError(err)
	return point
}

func (suite *AgentLocationRepositoryIntegrationTestSuite) assertRowCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&locationrepo.AgentLocationDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestAgentLocationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AgentLocationRepositoryIntegrationTestSuite))
}
