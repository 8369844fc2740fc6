package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/core/realtime"
	"dispatch/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	handshakeWait  = 10 * time.Second
	cleanupTimeout = 5 * time.Second
)

// LocationReporter handles agent position reports.
type LocationReporter interface {
	Handle(ctx context.Context, command commands.ReportLocationCommand) error
}

// ParcelTracker handles customer tracking subscriptions.
type ParcelTracker interface {
	Handle(ctx context.Context, command commands.TrackParcelCommand) error
}

// Gateway owns the realtime sessions. Each upgraded connection is verified
// against the identity collaborator using the first client frame, then served
// by role: agents report positions, customers track parcels. Frames on one
// connection are processed in arrival order.
type Gateway struct {
	verifier         ports.IdentityVerifier
	presence         *realtime.PresenceRegistry
	hub              *realtime.Hub
	locationReporter LocationReporter
	parcelTracker    ParcelTracker
	uowFactory       ports.UnitOfWorkFactory
	logger           *slog.Logger
	upgrader         websocket.Upgrader
}

// NewGateway creates the WebSocket gateway.
func NewGateway(
	verifier ports.IdentityVerifier,
	presence *realtime.PresenceRegistry,
	hub *realtime.Hub,
	locationReporter LocationReporter,
	parcelTracker ParcelTracker,
	uowFactory ports.UnitOfWorkFactory,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		verifier:         verifier,
		presence:         presence,
		hub:              hub,
		locationReporter: locationReporter,
		parcelTracker:    parcelTracker,
		uowFactory:       uowFactory,
		logger:           logger.With("component", "ws"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
}

// Handle upgrades GET /ws and serves the connection until it drops.
func (g *Gateway) Handle(c echo.Context) error {
	socket, err := g.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	conn := NewConnection(socket)
	go conn.Run()
	defer conn.Close()
	defer g.hub.LeaveAll(conn.ID())

	g.serve(c.Request().Context(), conn, socket)
	return nil
}

// serve performs the handshake and runs the role-specific session loop.
// A failed handshake tears the connection down with no partial session.
func (g *Gateway) serve(ctx context.Context, conn *Connection, socket *websocket.Conn) {
	_ = socket.SetReadDeadline(time.Now().Add(handshakeWait))

	var first Envelope
	if err := socket.ReadJSON(&first); err != nil {
		return
	}

	_ = socket.SetReadDeadline(time.Time{})

	switch first.Event {
	case EventInAgentConnect:
		g.serveAgent(ctx, conn, socket, first)
	case EventInTrackParcel:
		g.serveCustomer(ctx, conn, socket, first)
	default:
		g.logger.Debug("rejecting connection with unexpected first frame", "event", first.Event)
	}
}

func (g *Gateway) serveAgent(ctx context.Context, conn *Connection, socket *websocket.Conn, first Envelope) {
	var payload ConnectPayload
	if err := unmarshalData(first.Data, &payload); err != nil {
		return
	}

	identity, err := g.verifier.Verify(ctx, payload.Token)
	if err != nil || identity.Role != kernel.RoleAgent {
		g.logger.Info("agent handshake rejected", "conn", conn.ID(), "error", err)
		return
	}

	agentID := identity.ID
	g.presence.Connect(agentID.String(), conn.ID())
	defer g.confirmDisconnect(conn.ID())

	go g.stampLastActive(agentID)

	if err = conn.Send(realtime.Event{Name: realtime.EventAgentConnected, Data: realtime.AckPayload{Success: true}}); err != nil {
		return
	}

	for {
		var envelope Envelope
		if err = socket.ReadJSON(&envelope); err != nil {
			return
		}

		switch envelope.Event {
		case EventInLocationUpdate:
			g.handleLocationUpdate(ctx, conn, agentID, envelope)
		default:
			g.logger.Debug("ignoring unexpected agent frame", "event", envelope.Event, "agent", agentID)
		}
	}
}

func (g *Gateway) handleLocationUpdate(ctx context.Context, conn *Connection, agentID kernel.UUID, envelope Envelope) {
	var payload LocationUpdatePayload
	if err := unmarshalData(envelope.Data, &payload); err != nil {
		g.sendError(conn, realtime.EventLocationError, "malformed location update")
		return
	}

	cmd, err := buildReportCommand(agentID, payload)
	if err != nil {
		g.sendError(conn, realtime.EventLocationError, err.Error())
		return
	}

	if err = g.locationReporter.Handle(ctx, cmd); err != nil {
		g.logger.Warn("location report failed", "agent", agentID, "error", err)
		g.sendError(conn, realtime.EventLocationError, err.Error())
		return
	}

	_ = conn.Send(realtime.Event{Name: realtime.EventLocationUpdated, Data: realtime.AckPayload{Success: true}})
}

func buildReportCommand(agentID kernel.UUID, payload LocationUpdatePayload) (commands.ReportLocationCommand, error) {
	if payload.Status == "" {
		return commands.NewReportLocationCommand(agentID, payload.Latitude, payload.Longitude)
	}

	availability, err := agent.AvailabilityFromString(payload.Status)
	if err != nil {
		return commands.ReportLocationCommand{}, err
	}

	return commands.NewReportLocationCommandWithAvailability(
		agentID, payload.Latitude, payload.Longitude, availability)
}

func (g *Gateway) serveCustomer(ctx context.Context, conn *Connection, socket *websocket.Conn, first Envelope) {
	var payload TrackParcelPayload
	if err := unmarshalData(first.Data, &payload); err != nil {
		return
	}

	identity, err := g.verifier.Verify(ctx, payload.Token)
	if err != nil || identity.Role != kernel.RoleCustomer {
		g.logger.Info("customer handshake rejected", "conn", conn.ID(), "error", err)
		return
	}

	g.handleTrackParcel(ctx, conn, identity.ID, payload.ParcelID)

	for {
		var envelope Envelope
		if err = socket.ReadJSON(&envelope); err != nil {
			return
		}

		if envelope.Event != EventInTrackParcel {
			g.logger.Debug("ignoring unexpected customer frame", "event", envelope.Event, "customer", identity.ID)
			continue
		}

		var next TrackParcelPayload
		if err = unmarshalData(envelope.Data, &next); err != nil {
			g.sendError(conn, realtime.EventTrackingError, "malformed track request")
			continue
		}

		g.handleTrackParcel(ctx, conn, identity.ID, next.ParcelID)
	}
}

func (g *Gateway) handleTrackParcel(ctx context.Context, conn *Connection, customerID kernel.UUID, rawParcelID string) {
	parcelID, err := kernel.UUIDFromString(rawParcelID)
	if err != nil {
		g.sendError(conn, realtime.EventTrackingError, "invalid parcel id")
		return
	}

	cmd, err := commands.NewTrackParcelCommand(customerID, parcelID, conn)
	if err != nil {
		g.sendError(conn, realtime.EventTrackingError, err.Error())
		return
	}

	if err = g.parcelTracker.Handle(ctx, cmd); err != nil {
		g.logger.Info("track request failed", "customer", customerID, "parcel", parcelID, "error", err)
		g.sendError(conn, realtime.EventTrackingError, err.Error())
	}
}

// confirmDisconnect resets the agent's published state after its connection
// drops. Skipped when a newer connection for the same agent already took over;
// the newer session owns the published state then.
func (g *Gateway) confirmDisconnect(connID string) {
	rawAgentID, ok := g.presence.Disconnect(connID)
	if !ok {
		return
	}

	agentID, err := kernel.UUIDFromString(rawAgentID)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	uow := g.uowFactory.Create()

	if err = uow.AgentLocationRepository().SetAvailability(ctx, agentID, agent.Available); err != nil &&
		!errors.Is(err, errs.ErrObjectNotFound) {
		g.logger.Warn("failed to reset availability on disconnect", "agent", agentID, "error", err)
	}

	if err = uow.AgentRepository().UpdateLastActive(ctx, agentID, time.Now().UTC()); err != nil {
		g.logger.Warn("failed to stamp last active on disconnect", "agent", agentID, "error", err)
	}
}

// stampLastActive records the connect time. Best effort; the session does not
// wait for it.
func (g *Gateway) stampLastActive(agentID kernel.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	uow := g.uowFactory.Create()
	if err := uow.AgentRepository().UpdateLastActive(ctx, agentID, time.Now().UTC()); err != nil {
		g.logger.Warn("failed to stamp last active on connect", "agent", agentID, "error", err)
	}
}

func (g *Gateway) sendError(conn *Connection, eventName, message string) {
	_ = conn.Send(realtime.Event{Name: eventName, Data: realtime.ErrorPayload{Message: message}})
}

func unmarshalData(data []byte, v any) error {
	if len(data) == 0 {
		return errors.New("missing payload")
	}
	return json.Unmarshal(data, v)
}
