package render

import (
	"context"
	"fmt"
	"io"

	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Workbook is a sink writing one worksheet per schedule.
type Workbook struct {
	f     *excelize.File
	count int
}

func NewWorkbook() *Workbook {
	return &Workbook{f: excelize.NewFile()}
}

func SheetName(n int) string {
	return fmt.Sprintf("Schedule %d", n)
}

func (wb *Workbook) Consume(_ context.Context, schedule *domain.Schedule, options *domain.ScheduleOptions) error {
	wb.count++
	sheet := SheetName(wb.count)

	// the first schedule takes over the sheet every new file starts with
	if wb.count == 1 {
		if err := wb.f.SetSheetName(defaultSheet, sheet); err != nil {
			return err
		}
	} else if _, err := wb.f.NewSheet(sheet); err != nil {
		return err
	}

	if err := wb.f.SetCellValue(sheet, "A1", periodHeader); err != nil {
		return err
	}
	for i, day := range domain.Weekdays {
		cell, _ := excelize.CoordinatesToCellName(i+2, 1)
		if err := wb.f.SetCellValue(sheet, cell, day.String()); err != nil {
			return err
		}
	}

	for i, number := range options.Periods {
		row := i + 2
		if err := wb.f.SetCellValue(sheet, fmt.Sprintf("A%d", row), number); err != nil {
			return err
		}
		if number < 0 || number > 255 {
			continue
		}

		for j, day := range domain.Weekdays {
			class, ok := schedule.ClassAt(domain.Period{Day: day, Number: uint8(number)})
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(j+2, row)
			if err := wb.f.SetCellValue(sheet, cell, class); err != nil {
				return err
			}
		}
	}

	return wb.f.SetColWidth(sheet, "B", "F", 16)
}

func (wb *Workbook) Count() int {
	return wb.count
}

func (wb *Workbook) finish() error {
	if wb.count == 0 {
		return wb.f.SetCellValue(defaultSheet, "A1", "No conflict-free schedule found")
	}
	return nil
}

func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	if err := wb.finish(); err != nil {
		return 0, err
	}
	return wb.f.WriteTo(w)
}

func (wb *Workbook) SaveAs(path string) error {
	if err := wb.finish(); err != nil {
		return err
	}
	return wb.f.SaveAs(path)
}

func (wb *Workbook) Close() error {
	return wb.f.Close()
}
