package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const dayLayout = "2006-01-02"

type DeliveryDayRunner interface {
	Handle(ctx context.Context, cmd commands.RunDeliveryDayCommand) (*services.DayReport, error)
}

type RunSummaryReader interface {
	Handle(ctx context.Context, query queries.GetRunSummaryQuery) (*queries.GetRunSummaryQueryResponse, error)
}

type RunParcelsReader interface {
	Handle(ctx context.Context, query queries.GetRunParcelsQuery) (*queries.GetRunParcelsQueryResponse, error)
}

// Server implements ServerInterface on top of the delivery-day use cases.
type Server struct {
	runDeliveryDayHandler DeliveryDayRunner

	getRunSummaryHandler RunSummaryReader
	getRunParcelsHandler RunParcelsReader

	now func() time.Time
}

func NewServer(
	runDeliveryDayHandler DeliveryDayRunner,
	getRunSummaryHandler RunSummaryReader,
	getRunParcelsHandler RunParcelsReader,
) *Server {
	return &Server{
		runDeliveryDayHandler: runDeliveryDayHandler,
		getRunSummaryHandler:  getRunSummaryHandler,
		getRunParcelsHandler:  getRunParcelsHandler,
		now:                   time.Now,
	}
}

// NewRouter validates the API description, registers it for the Swagger UI
// and returns an echo instance with every route mounted.
func NewRouter(ctx context.Context, server *Server) (*echo.Echo, error) {
	doc, err := LoadAPIDescription(ctx)
	if err != nil {
		return nil, err
	}
	if err = registerSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	RegisterHandlers(e, server)
	return e, nil
}

// RunDeliveryDay handles POST /api/v1/runs - simulates a day and returns its report.
func (s *Server) RunDeliveryDay(ctx echo.Context) error {
	var req RunRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	day := s.now()
	if req.Day != nil {
		parsed, err := time.Parse(dayLayout, *req.Day)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid day, want YYYY-MM-DD",
			})
		}
		day = parsed
	}

	cmd, err := commands.NewRunDeliveryDayCommand(day)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid run request: " + err.Error(),
		})
	}

	report, err := s.runDeliveryDayHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		ctx.Logger().Errorf("run delivery day: %v", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to run delivery day",
		})
	}

	return ctx.JSON(http.StatusCreated, dayReportFrom(report))
}

// GetRun handles GET /api/v1/runs/{id} - retrieves the totals of a stored run.
func (s *Server) GetRun(ctx echo.Context, id uuid.UUID) error {
	runID, err := kernel.UUIDFrom(id)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid run id",
		})
	}
	query, err := queries.NewGetRunSummaryQuery(runID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid run id",
		})
	}

	summary, err := s.getRunSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.queryError(ctx, err, "Failed to retrieve run")
	}

	return ctx.JSON(http.StatusOK, runSummaryFrom(summary))
}

// GetRunParcels handles GET /api/v1/runs/{id}/parcels - lists the parcels of a stored run.
func (s *Server) GetRunParcels(ctx echo.Context, id uuid.UUID, params GetRunParcelsParams) error {
	status, err := statusFilter(params)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status filter",
		})
	}
	runID, err := kernel.UUIDFrom(id)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid run id",
		})
	}
	query, err := queries.NewGetRunParcelsQuery(runID, status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid run id",
		})
	}

	return s.listParcels(ctx, query)
}

// GetLatestRunParcels handles GET /api/v1/runs/latest/parcels - lists the parcels of the latest run.
func (s *Server) GetLatestRunParcels(ctx echo.Context, params GetRunParcelsParams) error {
	status, err := statusFilter(params)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status filter",
		})
	}

	return s.listParcels(ctx, queries.NewGetLatestRunParcelsQuery(status))
}

func (s *Server) listParcels(ctx echo.Context, query queries.GetRunParcelsQuery) error {
	parcels, err := s.getRunParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.queryError(ctx, err, "Failed to retrieve parcels")
	}
	return ctx.JSON(http.StatusOK, runParcelsFrom(parcels))
}

func (s *Server) queryError(ctx echo.Context, err error, message string) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}
	ctx.Logger().Errorf("%s: %v", message, err)
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// statusFilter maps the optional status parameter; parcel.Unknown means no filter.
func statusFilter(params GetRunParcelsParams) (parcel.Status, error) {
	if params.Status == nil || *params.Status == "" {
		return parcel.Unknown, nil
	}
	return parcel.ParseStatus(*params.Status)
}

var _ ServerInterface = (*Server)(nil)
