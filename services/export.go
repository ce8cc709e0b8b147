package services

import (
	"encoding/csv"
	"io"
	"strings"

	"walkinplus-backend/models"
)

// ExportFilename is the attachment name for report downloads.
const ExportFilename = "walkins.csv"

var exportHeader = []string{
	"Customer Name",
	"Customer DOB",
	"Purpose",
	"Walk-in Date",
	"In Time",
	"Out Time",
	"Contact Number",
	"Companion",
	"Relation",
	"Notes",
}

// WriteWalkinsCSV streams the filtered visit set as CSV. Callers pass the
// visits already in export order. Nil clock-outs render empty; newlines in
// notes are collapsed to spaces.
func WriteWalkinsCSV(w io.Writer, visits []models.Visit) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, v := range visits {
		clockOut := ""
		if v.ClockOut != nil {
			clockOut = *v.ClockOut
		}
		row := []string{
			v.CustomerName,
			v.CustomerDOB,
			v.Purpose,
			v.WalkinDate,
			v.ClockIn,
			clockOut,
			v.ContactNumber,
			v.Companion,
			v.CompanionRelation,
			strings.ReplaceAll(v.Notes, "\n", " "),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
