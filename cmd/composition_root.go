package cmd

import (
	"log/slog"
	"time"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/identityclient"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/core/realtime"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	verifier   ports.IdentityVerifier
	hub        *realtime.Hub
	presence   *realtime.PresenceRegistry
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		verifier:   identityclient.NewClient(config.AuthServiceURL),
		hub:        realtime.NewHub(logger),
		presence:   realtime.NewPresenceRegistry(),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateAssignParcelCommandHandler() commands.AssignParcelCommandHandler {
	var f commands.AssignUoWFactory = FuncAssignUoWFactory(func() commands.AssignUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateParcelStatusCommandHandler() commands.UpdateParcelStatusCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateParcelStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	var f commands.LocationUoWFactory = FuncLocationUoWFactory(func() commands.LocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportLocationCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateTrackParcelCommandHandler() commands.TrackParcelCommandHandler {
	var f commands.TrackUoWFactory = FuncTrackUoWFactory(func() commands.TrackUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTrackParcelCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateSweepStaleAvailabilityCommandHandler() commands.SweepStaleAvailabilityCommandHandler {
	var f commands.SweepUoWFactory = FuncSweepUoWFactory(func() commands.SweepUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepStaleAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAgentLocationsQueryHandler() queries.GetAgentLocationsQueryHandler {
	return queries.NewGetAgentLocationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.verifier,
		c.CreateAssignParcelCommandHandler(),
		c.CreateUpdateParcelStatusCommandHandler(),
		c.CreateGetAgentLocationsQueryHandler(),
	)
}

func (c *CompositionRoot) CreateWebSocketGateway() *ws.Gateway {
	reportHandler := c.CreateReportLocationCommandHandler()
	trackHandler := c.CreateTrackParcelCommandHandler()

	return ws.NewGateway(
		c.verifier,
		c.presence,
		c.hub,
		reportHandler,
		trackHandler,
		&c.uowFactory,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager(staleAfter time.Duration) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSweepStaleAvailabilityCommandHandler(), staleAfter, c.logger)
}

type FuncAssignUoWFactory func() commands.AssignUoW

func (f FuncAssignUoWFactory) Create() commands.AssignUoW {
	return f()
}

type FuncStatusUoWFactory func() commands.StatusUoW

func (f FuncStatusUoWFactory) Create() commands.StatusUoW {
	return f()
}

type FuncLocationUoWFactory func() commands.LocationUoW

func (f FuncLocationUoWFactory) Create() commands.LocationUoW {
	return f()
}

type FuncTrackUoWFactory func() commands.TrackUoW

func (f FuncTrackUoWFactory) Create() commands.TrackUoW {
	return f()
}

type FuncSweepUoWFactory func() commands.SweepUoW

func (f FuncSweepUoWFactory) Create() commands.SweepUoW {
	return f()
}
