// =============================================================================
// EDI DELFOR Converter - XLSX Export Module
// =============================================================================
//
// This module renders an interpreted interchange into an XLSX workbook for
// the planning teams:
//
//   Sheet "Info"     : document header and trading-partner attributes
//   Sheet "Schedule" : one row per delivery-schedule entry, display order,
//                      with a computed ISO calendar-week column
//   Sheet "Parts"    : the deduplicated part-number index
//
// The export consumes only the canonical "DD.MM.YYYY" strings produced by
// the interpreter; week numbers come from schedule.WeekNumber, and entries
// whose date cannot be parsed get an empty week cell rather than an error.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/schedule"
	"github.com/ginjaninja78/EDI-DELFOR-conversion/internal/types"
)

// Sheet names of the generated workbook.
const (
	sheetInfo     = "Info"
	sheetSchedule = "Schedule"
	sheetParts    = "Parts"
)

// =============================================================================
// WORKBOOK GENERATION
// =============================================================================

// Write renders the result into an XLSX workbook at outputPath.
//
// PARAMETERS:
//   - result:     The interpreted interchange.
//   - outputPath: The destination file path.
//
// RETURNS:
//   - An error if the workbook cannot be assembled or saved.
func Write(result types.Result, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeInfoSheet(f, result); err != nil {
		return fmt.Errorf("failed to write info sheet: %w", err)
	}
	if err := writeScheduleSheet(f, result.Entries); err != nil {
		return fmt.Errorf("failed to write schedule sheet: %w", err)
	}
	if err := writePartsSheet(f, result.Entries); err != nil {
		return fmt.Errorf("failed to write parts sheet: %w", err)
	}

	// The default sheet created by excelize is renamed to Info above, so no
	// cleanup pass is needed.
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// writeInfoSheet fills the header/partner attribute sheet.
func writeInfoSheet(f *excelize.File, result types.Result) error {
	if err := f.SetSheetName(f.GetSheetName(0), sheetInfo); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Attribute", "Value"},
		{"Sender", result.Header.Sender},
		{"Recipient", result.Header.Recipient()},
		{"Date/Time", result.Header.Timestamp},
		{"Message reference", result.Header.MessageRef},
		{"Message number", result.Header.MessageNumber},
		{"Document date", result.Header.DocumentDate},
		{"Buyer", result.Partners.Buyer},
		{"Seller", result.Partners.Seller},
		{"Ship-to", result.Partners.ShipTo},
	}

	return writeRows(f, sheetInfo, rows)
}

// writeScheduleSheet fills the schedule sheet in display order, one entry
// per row, with the computed calendar week in the last column.
func writeScheduleSheet(f *excelize.File, entries []types.DeliveryScheduleEntry) error {
	if _, err := f.NewSheet(sheetSchedule); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Part", "Description", "Date", "Due date", "Quantity", "Unit",
			"Kind", "SCC", "Release", "Order", "Week"},
	}

	for _, e := range schedule.SortEntries(entries) {
		var week interface{}
		if w, ok := schedule.WeekNumber(e.Date); ok {
			week = w
		} else {
			week = ""
		}
		rows = append(rows, []interface{}{
			e.PartNumber, e.Description, e.Date, e.DueDate, e.Quantity,
			e.Unit, e.Kind.String(), e.SCC, e.Release, e.OrderRef, week,
		})
	}

	return writeRows(f, sheetSchedule, rows)
}

// writePartsSheet fills the part-number index sheet.
func writePartsSheet(f *excelize.File, entries []types.DeliveryScheduleEntry) error {
	if _, err := f.NewSheet(sheetParts); err != nil {
		return err
	}

	rows := [][]interface{}{{"Part", "Description"}}
	for _, part := range schedule.PartIndex(entries) {
		rows = append(rows, []interface{}{part.PartNumber, part.Description})
	}

	return writeRows(f, sheetParts, rows)
}

// writeRows writes rows starting at A1 of the given sheet.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
