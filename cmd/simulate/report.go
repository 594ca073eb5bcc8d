package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

func printReport(w io.Writer, report *services.DayReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Run %s, departure %s\n\n", report.RunID, kernel.FormatClock(report.Departure))

	fmt.Fprintln(tw, "VEHICLE\tTRIP\tDEPARTED\tRETURNED\tMILES\tSTOPS")
	for _, r := range report.Routes {
		stops := make([]string, 0, len(r.Stops))
		for _, s := range r.Stops {
			stops = append(stops, fmt.Sprintf("%d@%s", s.ParcelID, kernel.FormatClock(s.DeliveredAt)))
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%.1f\t%s\n",
			r.VehicleID, r.Trip,
			kernel.FormatClock(r.DepartedAt), kernel.FormatClock(r.ReturnedAt),
			r.TripMileage, strings.Join(stops, " "),
		)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "PARCEL\tADDRESS\tDEADLINE\tSTATUS\tVEHICLE\tDELIVERED\tON TIME")
	for _, p := range report.Parcels {
		delivered := "-"
		if p.DeliveredAt != nil {
			delivered = kernel.FormatClock(*p.DeliveredAt)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%t\n",
			p.ID, p.Address, p.Deadline, p.Status, p.VehicleID, delivered, p.OnTime)
	}

	fmt.Fprintln(tw)
	for _, v := range report.Vehicles {
		fmt.Fprintf(tw, "Vehicle %d\t%.1f miles\t%d trip(s)\tat %s\n", v.ID, v.Mileage, v.Trips, v.Location)
	}
	fmt.Fprintf(tw, "Total mileage\t%.1f\n", report.TotalMileage)
	if len(report.Unassigned) > 0 {
		fmt.Fprintf(tw, "Left at hub\t%v\n", report.Unassigned)
	}
	for _, a := range report.Aborts {
		fmt.Fprintf(tw, "Aborted\tvehicle %d trip %d\t%s\n", a.VehicleID, a.Trip, a.Reason)
	}

	return tw.Flush()
}

func printTrace(w io.Writer, events []services.Event) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "\nCLOCK\tEVENT\tVEHICLE\tPARCELS\tFROM\tTO\tMILES")
	for _, e := range events {
		clock := "-"
		if !e.Clock.IsZero() {
			clock = kernel.FormatClock(e.Clock)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%v\t%s\t%s\t%.1f\n",
			clock, e.Kind, e.VehicleID, e.ParcelIDs, e.From, e.To, e.Distance)
	}

	return tw.Flush()
}
