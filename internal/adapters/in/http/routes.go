package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// GetRunParcelsParams holds the query parameters of the parcel listings.
type GetRunParcelsParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// (POST /api/v1/runs)
	RunDeliveryDay(ctx echo.Context) error
	// (GET /api/v1/runs/{id})
	GetRun(ctx echo.Context, id uuid.UUID) error
	// (GET /api/v1/runs/{id}/parcels)
	GetRunParcels(ctx echo.Context, id uuid.UUID, params GetRunParcelsParams) error
	// (GET /api/v1/runs/latest/parcels)
	GetLatestRunParcels(ctx echo.Context, params GetRunParcelsParams) error
}

// ServerInterfaceWrapper binds path and query parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) RunDeliveryDay(ctx echo.Context) error {
	return w.Handler.RunDeliveryDay(ctx)
}

func (w *ServerInterfaceWrapper) GetRun(ctx echo.Context) error {
	id, err := bindRunID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetRun(ctx, id)
}

func (w *ServerInterfaceWrapper) GetRunParcels(ctx echo.Context) error {
	id, err := bindRunID(ctx)
	if err != nil {
		return err
	}
	params, err := bindParcelParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetRunParcels(ctx, id, params)
}

func (w *ServerInterfaceWrapper) GetLatestRunParcels(ctx echo.Context) error {
	params, err := bindParcelParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetLatestRunParcels(ctx, params)
}

func bindRunID(ctx echo.Context) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

func bindParcelParams(ctx echo.Context) (GetRunParcelsParams, error) {
	var params GetRunParcelsParams
	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	return params, nil
}

// RegisterHandlers mounts the API under /api/v1 together with the health
// probe, the raw description and the Swagger UI.
func RegisterHandlers(e *echo.Echo, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", openAPISpec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	api.POST("/runs", w.RunDeliveryDay)
	api.GET("/runs/latest/parcels", w.GetLatestRunParcels)
	api.GET("/runs/:id", w.GetRun)
	api.GET("/runs/:id/parcels", w.GetRunParcels)
}
