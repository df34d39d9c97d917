// Package render turns complete schedules into human readable output.
package render

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/olekukonko/tablewriter"
)

const periodHeader = "Period"

// WriteTable writes schedule as a fixed-width grid: one row per declared period in
// declared order, one column per weekday, blank cells for free slots.
func WriteTable(w io.Writer, schedule *domain.Schedule, options *domain.ScheduleOptions) error {
	var b strings.Builder

	table := tablewriter.NewWriter(&b)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(true)
	table.SetColumnSeparator("|")
	table.SetCenterSeparator("+")
	table.SetRowSeparator("-")

	header := make([]string, 0, len(domain.Weekdays)+1)
	header = append(header, periodHeader)
	for _, day := range domain.Weekdays {
		header = append(header, day.String())
	}
	table.SetHeader(header)

	for _, number := range options.Periods {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(number))
		for _, day := range domain.Weekdays {
			class := ""
			// numbers outside 0..255 can never be occupied
			if number >= 0 && number <= 255 {
				class, _ = schedule.ClassAt(domain.Period{Day: day, Number: uint8(number)})
			}
			row = append(row, class)
		}
		table.Append(row)
	}

	table.Render()

	// padding of the last column is noise in a terminal or a mail body
	lines := strings.SplitAfter(b.String(), "\n")
	for i, line := range lines {
		if strings.HasSuffix(line, "\n") {
			lines[i] = strings.TrimRight(line, " \n") + "\n"
		}
	}

	_, err := io.WriteString(w, strings.Join(lines, ""))
	return err
}

// Table is a sink printing each schedule it receives, numbered in arrival order.
type Table struct {
	w     io.Writer
	count int
}

func NewTable(w io.Writer) *Table {
	return &Table{w: w}
}

func (t *Table) Consume(_ context.Context, schedule *domain.Schedule, options *domain.ScheduleOptions) error {
	t.count++

	if t.count > 1 {
		if _, err := io.WriteString(t.w, "\n"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(t.w, "Schedule %d\n", t.count); err != nil {
		return err
	}
	return WriteTable(t.w, schedule, options)
}

// Count is the number of schedules written so far.
func (t *Table) Count() int {
	return t.count
}

// Tables renders schedules the way a Table sink would.
func Tables(schedules []*domain.Schedule, options *domain.ScheduleOptions) (string, error) {
	var b strings.Builder
	t := NewTable(&b)
	for _, s := range schedules {
		if err := t.Consume(context.Background(), s, options); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}
