package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"leavedesk/internal/errors"
	"leavedesk/internal/model"
	"leavedesk/internal/repository"
)

const (
	reportSheet  = "Leave Report"
	summarySheet = "Summary"
)

var reportColumns = []string{"Leave Date", "Employee Name", "Leave Type", "Leave Purpose", "Leave Time"}

// ReportService exports the currently filtered leave rows as a spreadsheet.
type ReportService interface {
	Export(ctx context.Context, filter repository.LeaveFilter) (data []byte, filename string, err error)
}

type reportService struct {
	leaveRepo repository.LeaveRepository
	logger    zerolog.Logger
}

// NewReportService creates a new report service.
func NewReportService(leaveRepo repository.LeaveRepository, logger zerolog.Logger) ReportService {
	return &reportService{leaveRepo: leaveRepo, logger: logger}
}

// Export builds an XLSX workbook from all rows matching filter, sorted
// ascending by leave date. Both date bounds are required; the filename
// embeds them. A second sheet totals leave days per employee, a half day
// counting as 0.5.
func (s *reportService) Export(ctx context.Context, filter repository.LeaveFilter) ([]byte, string, error) {
	if filter.From == "" || filter.To == "" {
		return nil, "", errors.ErrDateRangeRequired
	}

	filter.PerPage = 0 // export is never paginated
	rows, _, err := s.leaveRepo.ListFiltered(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("fetch rows for export")
		return nil, "", err
	}

	// The report must stay date-ordered even if the query ordering changes;
	// ISO date strings sort lexicographically.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].LeaveDate < rows[j].LeaveDate
	})

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("close workbook")
		}
	}()

	f.SetSheetName("Sheet1", reportSheet)
	for i, col := range reportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(reportSheet, cell, col); err != nil {
			return nil, "", fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.LeaveDate,
			row.EmployeeName(),
			row.LeaveType,
			row.LeavePurpose,
			row.LeaveTime,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(reportSheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if err := s.writeSummary(f, rows); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("serialize workbook: %w", err)
	}

	filename := fmt.Sprintf("leave-report_%s_%s.xlsx", filter.From, filter.To)
	return buf.Bytes(), filename, nil
}

// writeSummary totals leave days per employee with decimal arithmetic so
// half days never accumulate float drift.
func (s *reportService) writeSummary(f *excelize.File, rows []model.Leave) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	half := decimal.NewFromFloat(0.5)
	full := decimal.NewFromInt(1)

	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		name := row.EmployeeName()
		if name == "" {
			continue
		}
		switch row.LeaveTime {
		case model.LeaveTimeFullDay:
			totals[name] = totals[name].Add(full)
		case model.LeaveTimeHalfDay:
			totals[name] = totals[name].Add(half)
		}
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := f.SetCellValue(summarySheet, "A1", "Employee Name"); err != nil {
		return err
	}
	if err := f.SetCellValue(summarySheet, "B1", "Leave Days"); err != nil {
		return err
	}
	for i, name := range names {
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+2), name); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+2), totals[name].InexactFloat64()); err != nil {
			return err
		}
	}
	return nil
}
