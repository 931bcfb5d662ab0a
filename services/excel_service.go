package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fadhlanhapp/giftbuddy-backend/auth"
	"github.com/fadhlanhapp/giftbuddy-backend/models"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

// ExcelService handles Excel export functionality
type ExcelService struct {
	events *EventService
	sheets []workbookSheet
}

// workbookSheet builds one named sheet of the export
type workbookSheet struct {
	name  string
	build func(f *excelize.File, detail *models.EventDetail) error
}

func newExcelService(events *EventService) *ExcelService {
	s := &ExcelService{events: events}
	s.sheets = []workbookSheet{
		{name: "summary", build: s.createSummarySheet},
		{name: "contributions", build: s.createContributionsSheet},
		{name: "gifts", build: s.createGiftsSheet},
	}
	return s
}

// ExportEvent builds a workbook for one event; organiser or admin only.
// Amounts are written in major units.
func (s *ExcelService) ExportEvent(ctx context.Context, p auth.Principal, eventID string) (*excelize.File, string, error) {
	event, err := loadEvent(ctx, s.events.store, eventID)
	if err != nil {
		return nil, "", err
	}
	if err := requireManage(p, event); err != nil {
		return nil, "", err
	}
	detail, err := s.events.detail(ctx, event)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	if err := s.buildWorkbook(f, detail); err != nil {
		if closeErr := f.Close(); closeErr != nil {
			s.events.log.Warn("close workbook", "err", closeErr, "event_id", eventID)
		}
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.xlsx", utils.CleanFileName(event.Title), event.Date)
	return f, filename, nil
}

func (s *ExcelService) buildWorkbook(f *excelize.File, detail *models.EventDetail) error {
	for _, sheet := range s.sheets {
		if err := sheet.build(f, detail); err != nil {
			return utils.NewInternalError(fmt.Sprintf("failed to create %s sheet: %v", sheet.name, err))
		}
	}

	// Delete the default sheet and open on the summary
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return utils.NewInternalError(fmt.Sprintf("failed to drop default sheet: %v", err))
	}
	if index, err := f.GetSheetIndex("Summary"); err == nil {
		f.SetActiveSheet(index)
	}
	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
}

// writeRows writes a header row and data rows starting at A1
func writeRows(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "F", 22)
}

// createSummarySheet creates Sheet 1: Summary
func (s *ExcelService) createSummarySheet(f *excelize.File, detail *models.EventDetail) error {
	e := detail.Event
	sum := detail.Summary
	rows := [][]any{
		{"Title", e.Title},
		{"Date", e.Date},
		{"Status", string(e.Status)},
		{"Birthday Person", detail.BirthdayPersonName},
		{"UPI ID", utils.Deref(e.UPIID)},
		{"Phone", utils.Deref(e.Phone)},
		{"Gifts", len(detail.Gifts)},
		{"Contributors", sum.ContributionsCount},
		{"Paid", sum.PaidCount},
		{"Total Amount", utils.ToMajor(sum.TotalAmount)},
		{"Collected", utils.ToMajor(sum.TotalCollected)},
		{"Pending", utils.ToMajor(sum.TotalPending)},
		{"Collection %", sum.CollectionPercentage},
	}
	return writeRows(f, "Summary", []string{"Field", "Value"}, rows)
}

// createContributionsSheet creates Sheet 2: one row per participant
func (s *ExcelService) createContributionsSheet(f *excelize.File, detail *models.EventDetail) error {
	rows := make([][]any, 0, len(detail.Contributions))
	for _, c := range detail.Contributions {
		paidAt := ""
		if c.PaymentTime != nil {
			paidAt = c.PaymentTime.Format("2006-01-02 15:04")
		}
		paid := "No"
		if c.Paid {
			paid = "Yes"
		}
		rows = append(rows, []any{c.UserName, utils.ToMajor(c.SplitAmount), paid, paidAt})
	}
	return writeRows(f, "Contributions", []string{"Name", "Amount", "Paid", "Payment Time"}, rows)
}

// createGiftsSheet creates Sheet 3: gifts with the per-person share of each
func (s *ExcelService) createGiftsSheet(f *excelize.File, detail *models.EventDetail) error {
	links := make(map[string]string, len(detail.Gifts))
	for _, g := range detail.Gifts {
		links[g.ID] = g.Link
	}
	rows := make([][]any, 0, len(detail.GiftBreakdown))
	for _, share := range detail.GiftBreakdown {
		rows = append(rows, []any{share.GiftName, links[share.GiftID], utils.ToMajor(share.TotalAmount), utils.ToMajor(share.PerParticipant)})
	}
	return writeRows(f, "Gifts", []string{"Gift", "Link", "Amount", "Per Person"}, rows)
}
