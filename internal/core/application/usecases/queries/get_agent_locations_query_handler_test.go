package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/agentrepo"
	"dispatch/internal/adapters/out/postgres/locationrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAgentLocationsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAgentLocationsQueryHandler
}

func (suite *GetAgentLocationsQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&agentrepo.AgentDTO{}, &locationrepo.AgentLocationDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetAgentLocationsQueryHandler(db)
}

func (suite *GetAgentLocationsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAgentLocationsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE agents, agent_locations").Error
	suite.Require().NoError(err)
}

func (suite *GetAgentLocationsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetAgentLocationsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAgentLocationsQueryHandlerTestSuite) TestHandle_WithLocations_ReturnsAllOrderedByName() {
	alice := suite.createAgent("Alice", "bike")
	bob := suite.createAgent("Bob", "car")
	charlie := suite.createAgent("Charlie", "scooter")

	suite.reportLocation(alice, 52.52, 13.405, agent.Available)
	suite.reportLocation(bob, 48.8566, 2.3522, agent.OnDelivery)
	suite.reportLocation(charlie, 51.5074, -0.1278, agent.Available)

	query := queries.NewGetAgentLocationsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	suite.Equal("Alice", result[0].Name)
	suite.Equal(alice, result[0].AgentID)
	suite.Equal("bike", result[0].VehicleType)
	suite.InDelta(52.52, result[0].Point.Latitude(), 1e-9)
	suite.InDelta(13.405, result[0].Point.Longitude(), 1e-9)
	suite.Equal(agent.Available.String(), result[0].Availability)

	suite.Equal("Bob", result[1].Name)
	suite.Equal(bob, result[1].AgentID)
	suite.Equal(agent.OnDelivery.String(), result[1].Availability)

	suite.Equal("Charlie", result[2].Name)
	suite.Equal(charlie, result[2].AgentID)
	suite.InDelta(-0.1278, result[2].Point.Longitude(), 1e-9)
}

func (suite *GetAgentLocationsQueryHandlerTestSuite) TestHandle_AgentWithoutLocation_IsAbsent() {
	reporting := suite.createAgent("Reporting Agent", "bike")
	suite.createAgent("Silent Agent", "car")

	suite.reportLocation(reporting, 52.52, 13.405, agent.Available)

	query := queries.NewGetAgentLocationsQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(reporting, result[0].AgentID)
}

func (suite *GetAgentLocationsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetAgentLocationsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetAgentLocationsQuery constructor")
}

func (suite *GetAgentLocationsQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	for range 50 {
		id := suite.createAgent("Agent", "bike")
		suite.reportLocation(id, 52.52, 13.405, agent.Available)
	}

	query := queries.NewGetAgentLocationsQuery()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func (suite *GetAgentLocationsQueryHandlerTestSuite) createAgent(name, vehicleType string) kernel.UUID {
	newAgent, err := agent.NewAgent(kernel.NewUUID(), name, "+15550100", vehicleType)
	suite.Require().NoError(err)

	repo := agentrepo.NewGormAgentRepository(suite.db, &noopAggregateTracker{})
	err = repo.Add(context.Background(), newAgent)
	suite.Require().NoError(err)

	return newAgent.ID()
}

func (suite *GetAgentLocationsQueryHandlerTestSuite) reportLocation(
	agentID kernel.UUID,
	latitude, longitude float64,
	availability agent.Availability,
) {
	point, err := kernel.NewGeoPoint(latitude, longitude)
	suite.Require().NoError(err)

	repo := locationrepo.NewGormAgentLocationRepository(suite.db)
	_, err = repo.Upsert(context.Background(), agentID, point, &availability)
	suite.Require().NoError(err)
}

func TestGetAgentLocationsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAgentLocationsQueryHandlerTestSuite))
}

// noopAggregateTracker satisfies the repository tracker dependency.
// Query tests have no use for aggregate tracking.
type noopAggregateTracker struct{}

func (t *noopAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}
