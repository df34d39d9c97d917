package render_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/marcusball/class-scheduler/internal/render"
)

func sample() (*domain.Schedule, *domain.ScheduleOptions) {
	s := domain.NewSchedule()
	s.Insert(domain.Period{Day: domain.Monday, Number: 1}, "Calculus")
	s.Insert(domain.Period{Day: domain.Wednesday, Number: 1}, "Calculus")
	s.Insert(domain.Period{Day: domain.Thursday, Number: 2}, "Art")

	return s, &domain.ScheduleOptions{Periods: []int{1, 2, 3}}
}

// cells splits a rendered table line on its column separators.
func cells(line string) []string {
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func TestWriteTable(t *testing.T) {
	s, options := sample()

	var buf bytes.Buffer
	require.NoError(t, render.WriteTable(&buf, s, options))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, []string{"Period", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, cells(lines[0]))
	assert.Regexp(t, `^[-+ ]+$`, lines[1])
	assert.Equal(t, []string{"1", "Calculus", "", "Calculus", "", ""}, cells(lines[2]))
	assert.Equal(t, []string{"2", "", "", "", "Art", ""}, cells(lines[3]))
	assert.Equal(t, []string{"3", "", "", "", "", ""}, cells(lines[4]))

	// fixed width: separators line up on every row
	columns := func(line string) []int {
		var at []int
		for i, r := range line {
			if r == '|' {
				at = append(at, i)
			}
		}
		return at
	}
	for _, line := range lines[2:] {
		assert.Equal(t, columns(lines[0]), columns(line), line)
	}

	for _, line := range lines {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}

func TestWriteTable_DeclaredOrderOnly(t *testing.T) {
	s, _ := sample()

	var buf bytes.Buffer
	require.NoError(t, render.WriteTable(&buf, s, &domain.ScheduleOptions{Periods: []int{2}}))

	assert.NotContains(t, buf.String(), "Calculus")
	assert.Contains(t, buf.String(), "Art")
}

func TestTableSink_Numbering(t *testing.T) {
	s, options := sample()

	var buf bytes.Buffer
	table := render.NewTable(&buf)
	require.NoError(t, table.Consume(context.Background(), s, options))
	require.NoError(t, table.Consume(context.Background(), s, options))

	assert.Equal(t, 2, table.Count())
	assert.Contains(t, buf.String(), "Schedule 1\n")
	assert.Contains(t, buf.String(), "\nSchedule 2\n")

	text, err := render.Tables([]*domain.Schedule{s, s}, options)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), text)
}

func TestWorkbook(t *testing.T) {
	s, options := sample()

	wb := render.NewWorkbook()
	defer wb.Close()
	require.NoError(t, wb.Consume(context.Background(), s, options))
	require.NoError(t, wb.Consume(context.Background(), domain.NewSchedule(), options))

	var buf bytes.Buffer
	_, err := wb.WriteTo(&buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Schedule 1", "Schedule 2"}, f.GetSheetList())

	v, err := f.GetCellValue("Schedule 1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Calculus", v)

	v, err = f.GetCellValue("Schedule 1", "E3")
	require.NoError(t, err)
	assert.Equal(t, "Art", v)

	v, err = f.GetCellValue("Schedule 1", "A4")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	v, err = f.GetCellValue("Schedule 2", "B2")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestWorkbook_Empty(t *testing.T) {
	wb := render.NewWorkbook()
	defer wb.Close()

	var buf bytes.Buffer
	_, err := wb.WriteTo(&buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "No conflict-free schedule found", v)
}
