package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/marcusball/class-scheduler/internal/catalog"
	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/marcusball/class-scheduler/internal/repository"
	"github.com/marcusball/class-scheduler/internal/slot"
	"github.com/marcusball/class-scheduler/internal/utils"
)

var (
	requiredHeaders = []string{"class", "slots"}

	ErrMissingHeader = errors.New("seed: missing column")
)

// ReadSectionsCSV builds a catalog from a registrar export with one section per row.
// The "slots" column holds the section's notations separated by ";". Sections keep
// their row order, and a class is declared where its first row appears. The display
// periods run from 1 to the highest period any section uses.
func ReadSectionsCSV(r io.Reader) (*domain.ScheduleOptions, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("seed: read header: %w", err)
	}

	column := make(map[string]int, len(headers))
	for i, header := range headers {
		column[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, header := range requiredHeaders {
		if _, ok := column[header]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingHeader, header)
		}
	}

	options := &domain.ScheduleOptions{}
	index := make(map[string]int)
	highest := 0

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("seed: line %d: %w", line, err)
		}

		name := strings.TrimSpace(row[column["class"]])
		if name == "" {
			slog.Warn("skipping a row without a class", "line", line)
			continue
		}

		section := domain.Section{}
		for _, notation := range strings.Split(row[column["slots"]], ";") {
			if notation = strings.TrimSpace(notation); notation != "" {
				section = append(section, notation)
			}
		}

		periods, err := slot.ExpandSection(section)
		if err != nil {
			return nil, fmt.Errorf("seed: line %d: %w", line, err)
		}
		for _, p := range periods {
			highest = max(highest, int(p.Number))
		}

		i, ok := index[name]
		if !ok {
			i = len(options.Classes)
			index[name] = i
			options.Classes = append(options.Classes, domain.Class{Name: name})
		}
		options.Classes[i].Sections = append(options.Classes[i].Sections, section)
	}

	for n := 1; n <= highest; n++ {
		options.Periods = append(options.Periods, n)
	}

	return options, nil
}

// SeedSectionsCSV imports the sections file at path as a catalog called name.
func SeedSectionsCSV(r *repository.Repository, path string, name string) {
	file, err := os.Open(path)
	if err != nil {
		slog.Error("cannot open the sections file", "path", path, "error", err)
		return
	}
	defer file.Close()

	options, err := ReadSectionsCSV(file)
	if err != nil {
		slog.Error("cannot read the sections file", "path", path, "error", err)
		return
	}

	if err := catalog.Check(options); err != nil {
		slog.Error("the sections file is not a valid catalog", "path", path, "error", err)
		return
	}

	c := &domain.Catalog{
		Name:        name,
		Description: "imported from " + path,
		Options:     *options,
	}
	if err := r.CreateCatalog(c); err != nil {
		slog.Error("cannot insert the catalog", "error", err)
		return
	}

	slog.Info("catalog imported", "id", c.ID, "classes", len(options.Classes))
}

// SeedSampleCatalog inserts the catalog that ships as Classes.toml.
func SeedSampleCatalog(r *repository.Repository) {
	options := utils.SampleCatalog()

	c := &domain.Catalog{
		Name:        "Sample term",
		Description: "four classes with two or three sections each",
		Options:     *options,
	}
	if err := r.CreateCatalog(c); err != nil {
		slog.Error("cannot insert the sample catalog", "error", err)
		return
	}

	names := make([]string, 0, len(options.Classes))
	for _, class := range options.Classes {
		names = append(names, class.Name)
	}
	slices.Sort(names)
	slog.Info("sample catalog inserted", "id", c.ID, "classes", strings.Join(names, ","))
}
