// Package http is the REST surface of the dispatch backend: a health probe,
// the admin assignment route and the dispatch board. Everything except the
// health probe requires a bearer credential resolved through the identity
// collaborator.
package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	verifier ports.IdentityVerifier

	// Command handlers
	assignParcelHandler       commands.AssignParcelCommandHandler
	updateParcelStatusHandler commands.UpdateParcelStatusCommandHandler

	// Query handlers
	getAgentLocationsHandler queries.GetAgentLocationsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	verifier ports.IdentityVerifier,
	assignParcelHandler commands.AssignParcelCommandHandler,
	updateParcelStatusHandler commands.UpdateParcelStatusCommandHandler,
	getAgentLocationsHandler queries.GetAgentLocationsQueryHandler,
) *Server {
	return &Server{
		verifier:                  verifier,
		assignParcelHandler:       assignParcelHandler,
		updateParcelStatusHandler: updateParcelStatusHandler,
		getAgentLocationsHandler:  getAgentLocationsHandler,
	}
}

// RegisterRoutes mounts the REST routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/v1/parcels/:parcelId/assign", s.AssignParcel)
	e.POST("/api/v1/parcels/:parcelId/status", s.UpdateParcelStatus)
	e.GET("/api/v1/agents/locations", s.GetAgentLocations)
}

// Error is the JSON error body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AssignRequest is the body of POST /api/v1/parcels/{parcelId}/assign.
type AssignRequest struct {
	AgentID string `json:"agentId"`
}

// AssignResponse echoes the completed assignment with the agent's display fields.
type AssignResponse struct {
	ParcelID         string `json:"parcelId"`
	AgentID          string `json:"agentId"`
	AgentName        string `json:"agentName"`
	AgentPhone       string `json:"agentPhone"`
	AgentVehicleType string `json:"agentVehicleType"`
	Status           string `json:"status"`
}

// StatusUpdateRequest is the body of POST /api/v1/parcels/{parcelId}/status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// AgentLocationResponse is one row of the dispatch board.
type AgentLocationResponse struct {
	AgentID      string    `json:"agentId"`
	Name         string    `json:"name"`
	VehicleType  string    `json:"vehicleType"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Availability string    `json:"availability"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// AssignParcel handles POST /api/v1/parcels/{parcelId}/assign - binds a parcel
// to an agent. Admin only.
func (s *Server) AssignParcel(ctx echo.Context) error {
	identity, err := s.authenticate(ctx)
	if err != nil {
		return s.renderError(ctx, err)
	}

	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return s.renderError(ctx, errs.NewValueIsInvalidErrorWithCause("parcelId", err))
	}

	var request AssignRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	agentID, err := kernel.UUIDFromString(request.AgentID)
	if err != nil {
		return s.renderError(ctx, errs.NewValueIsInvalidErrorWithCause("agentId", err))
	}

	cmd, err := commands.NewAssignParcelCommand(parcelID, agentID, identity.ID, identity.Role)
	if err != nil {
		return s.renderError(ctx, err)
	}

	result, err := s.assignParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AssignResponse{
		ParcelID:         result.ParcelID.String(),
		AgentID:          result.AgentID.String(),
		AgentName:        result.AgentName,
		AgentPhone:       result.AgentPhone,
		AgentVehicleType: result.AgentVehicleType,
		Status:           result.Status,
	})
}

// UpdateParcelStatus handles POST /api/v1/parcels/{parcelId}/status - moves a
// parcel along its lifecycle. The transition table decides what the caller's
// role may do.
func (s *Server) UpdateParcelStatus(ctx echo.Context) error {
	identity, err := s.authenticate(ctx)
	if err != nil {
		return s.renderError(ctx, err)
	}

	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return s.renderError(ctx, errs.NewValueIsInvalidErrorWithCause("parcelId", err))
	}

	var request StatusUpdateRequest
	if err = ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	requested, err := parcel.StatusFromString(request.Status)
	if err != nil {
		return s.renderError(ctx, err)
	}

	cmd, err := commands.NewUpdateParcelStatusCommand(parcelID, identity.ID, identity.Role, requested)
	if err != nil {
		return s.renderError(ctx, err)
	}

	if err = s.updateParcelStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAgentLocations handles GET /api/v1/agents/locations - the dispatch board.
// Admin only.
func (s *Server) GetAgentLocations(ctx echo.Context) error {
	identity, err := s.authenticate(ctx)
	if err != nil {
		return s.renderError(ctx, err)
	}
	if identity.Role != kernel.RoleAdmin {
		return s.renderError(ctx, errs.NewPermissionDeniedError("only admins may view the dispatch board"))
	}

	query := queries.NewGetAgentLocationsQuery()

	locations, err := s.getAgentLocationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve agent locations",
		})
	}

	response := make([]AgentLocationResponse, len(locations))
	for i, location := range locations {
		response[i] = AgentLocationResponse{
			AgentID:      location.AgentID.String(),
			Name:         location.Name,
			VehicleType:  location.VehicleType,
			Latitude:     location.Point.Latitude(),
			Longitude:    location.Point.Longitude(),
			Availability: location.Availability,
			UpdatedAt:    location.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// authenticate resolves the bearer credential on the request.
func (s *Server) authenticate(ctx echo.Context) (ports.Identity, error) {
	header := ctx.Request().Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return ports.Identity{}, errs.NewPermissionDeniedError("missing bearer credential")
	}

	return s.verifier.Verify(ctx.Request().Context(), token)
}

// renderError maps the application error taxonomy onto HTTP statuses.
func (s *Server) renderError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrPermissionDenied):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
