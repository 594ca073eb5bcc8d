package csvload

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
)

const (
	colID = iota
	colAddress
	colCity
	colState
	colZip
	colDeadline
	colWeight
	colNote

	minColumns = colWeight + 1
)

var (
	deliveredWith = regexp.MustCompile(`(?i)must be delivered with\s+(.*)`)
	digits        = regexp.MustCompile(`\d+`)
)

// ReadParcels parses a package file. Any malformed data row fails the whole
// read with the line number attached.
func ReadParcels(r io.Reader) ([]*parcel.Parcel, error) {
	reader := newReader(r)

	var parcels []*parcel.Parcel
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("package file line %d: %w", line, err)
		}

		id, err := strconv.Atoi(strings.TrimSpace(row[colID]))
		if err != nil {
			continue
		}
		if len(row) < minColumns {
			return nil, fmt.Errorf("package file line %d: %d columns, want at least %d", line, len(row), minColumns)
		}

		p, err := parseRow(id, row)
		if err != nil {
			return nil, fmt.Errorf("package file line %d: %w", line, err)
		}
		parcels = append(parcels, p)
	}
	return parcels, nil
}

func parseRow(id int, row []string) (*parcel.Parcel, error) {
	address, addrErr := cleanAddress(row[colAddress])
	deadline, deadlineErr := kernel.ParseDeadline(strings.TrimSpace(row[colDeadline]))
	weight, weightErr := strconv.ParseFloat(strings.TrimSpace(row[colWeight]), 64)
	if weightErr != nil {
		weightErr = fmt.Errorf("weight: %w", weightErr)
	}
	if err := errors.Join(addrErr, deadlineErr, weightErr); err != nil {
		return nil, err
	}

	note := ""
	if len(row) > colNote {
		note = strings.TrimSpace(row[colNote])
	}

	return parcel.NewParcel(id, address, deadline, weight, GroupFromNote(note), parcel.Details{
		City:  strings.TrimSpace(row[colCity]),
		State: strings.TrimSpace(row[colState]),
		Zip:   strings.TrimSpace(row[colZip]),
		Note:  note,
	})
}

// GroupFromNote extracts parcel ids from a "Must be delivered with ..." note.
// Any other note yields nil.
func GroupFromNote(note string) []int {
	m := deliveredWith.FindStringSubmatch(note)
	if m == nil {
		return nil
	}

	var ids []int
	for _, s := range digits.FindAllString(m[1], -1) {
		id, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
