package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/runrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type RunQueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *runrepo.GormRunRepository
	summary   queries.GetRunSummaryQueryHandler
	parcels   queries.GetRunParcelsQueryHandler
}

func (suite *RunQueriesTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(runrepo.Models()...))

	suite.repo = runrepo.NewGormRunRepository(db)
	suite.summary = queries.NewGetRunSummaryQueryHandler(db)
	suite.parcels = queries.NewGetRunParcelsQueryHandler(db)
}

func (suite *RunQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RunQueriesTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE runs, run_vehicles, run_parcels, run_aborts").Error)
}

func (suite *RunQueriesTestSuite) TestSummary_CountsParcels() {
	ctx := context.Background()
	report := suite.storeReport(time.Now().UTC())

	query, err := queries.NewGetRunSummaryQuery(report.RunID)
	suite.Require().NoError(err)
	summary, err := suite.summary.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(summary.RunID.IsEqual(report.RunID))
	suite.Equal(3, summary.Parcels)
	suite.Equal(2, summary.Delivered)
	suite.Equal(1, summary.Late)
	suite.Equal([]int{3}, summary.Unassigned)
	suite.Equal(1, summary.Aborts)
	suite.InDelta(12.0, summary.TotalMileage, 1e-9)
	suite.Require().Len(summary.Vehicles, 2)
	suite.Equal(1, summary.Vehicles[0].ID)
	suite.Equal("HUB", summary.Vehicles[0].Location)
	suite.True(summary.Vehicles[0].AtHub)
}

func (suite *RunQueriesTestSuite) TestSummary_UnknownRun() {
	query, err := queries.NewGetRunSummaryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.summary.Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RunQueriesTestSuite) TestParcels_LatestRun() {
	ctx := context.Background()
	suite.storeReport(time.Now().UTC().Add(-time.Hour))
	latest := suite.storeReport(time.Now().UTC())

	resp, err := suite.parcels.Handle(ctx, queries.NewGetLatestRunParcelsQuery(parcel.Unknown))
	suite.Require().NoError(err)

	suite.True(resp.RunID.IsEqual(latest.RunID))
	suite.Require().Len(resp.Parcels, 3)
	first := resp.Parcels[0]
	suite.Equal(1, first.ID)
	suite.Equal("X", first.Address)
	suite.Equal("09:00", first.Deadline)
	suite.Equal([]int{2}, first.GroupWith)
	suite.Equal(parcel.Delivered, first.Status)
	suite.Require().NotNil(first.DeliveredAt)
	suite.True(first.OnTime)
	suite.Nil(resp.Parcels[2].DeliveredAt)
	suite.Empty(resp.Parcels[2].GroupWith)
}

func (suite *RunQueriesTestSuite) TestParcels_StatusFilter() {
	report := suite.storeReport(time.Now().UTC())

	query, err := queries.NewGetRunParcelsQuery(report.RunID, parcel.AtHub)
	suite.Require().NoError(err)
	resp, err := suite.parcels.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Require().Len(resp.Parcels, 1)
	suite.Equal(3, resp.Parcels[0].ID)
}

func (suite *RunQueriesTestSuite) TestParcels_NoRuns() {
	_, err := suite.parcels.Handle(context.Background(), queries.NewGetLatestRunParcelsQuery(parcel.Unknown))
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	query, err := queries.NewGetRunParcelsQuery(kernel.NewUUID(), parcel.Unknown)
	suite.Require().NoError(err)
	_, err = suite.parcels.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RunQueriesTestSuite) storeReport(startedAt time.Time) *services.DayReport {
	departure := time.Date(2026, time.March, 19, 8, 0, 0, 0, time.UTC)
	nine, err := kernel.ParseDeadline("9:00 AM")
	suite.Require().NoError(err)
	early, late := departure.Add(10*time.Minute), departure.Add(90*time.Minute)

	report := &services.DayReport{
		RunID:     kernel.NewUUID(),
		StartedAt: startedAt,
		Departure: departure,
		Parcels: []services.ParcelOutcome{
			{ID: 1, Address: kernel.MustAddress("X"), Weight: 1, Deadline: nine, GroupWith: []int{2}, Status: parcel.Delivered, VehicleID: 1, DeliveredAt: &early, OnTime: true},
			{ID: 2, Address: kernel.MustAddress("Y"), Weight: 1, Deadline: nine, GroupWith: []int{1}, Status: parcel.Delivered, VehicleID: 1, DeliveredAt: &late},
			{ID: 3, Address: kernel.MustAddress("Z"), Weight: 1, Deadline: kernel.EOD(), Status: parcel.AtHub},
		},
		Vehicles: []services.VehicleSummary{
			{ID: 1, Trips: 1, Mileage: 12, ReturnedAt: departure.Add(2 * time.Hour), Location: kernel.MustAddress("HUB"), AtHub: true},
			{ID: 2, Location: kernel.MustAddress("HUB"), ReturnedAt: departure, AtHub: true},
		},
		TotalMileage: 12,
		Unassigned:   []int{3},
		Aborts: []services.AbortNotice{
			{VehicleID: 2, Trip: 1, LastLocation: kernel.MustAddress("HUB"), Reason: "test"},
		},
	}
	suite.Require().NoError(suite.repo.Add(context.Background(), report))
	return report
}

func TestRunQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(RunQueriesTestSuite))
}
