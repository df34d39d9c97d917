package seed_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/marcusball/class-scheduler/internal/seed"
	"github.com/marcusball/class-scheduler/internal/utils"
)

func TestReadSectionsCSV(t *testing.T) {
	input := `Class,Section,Slots
Lab, 1, M1-2; W1
Lecture, 1, TR3
Lab, 2, F4
`

	options, err := seed.ReadSectionsCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4}, options.Periods)
	require.Len(t, options.Classes, 2)
	assert.Equal(t, "Lab", options.Classes[0].Name)
	assert.Equal(t, []domain.Section{{"M1-2", "W1"}, {"F4"}}, options.Classes[0].Sections)
	assert.Equal(t, "Lecture", options.Classes[1].Name)
	assert.Equal(t, []domain.Section{{"TR3"}}, options.Classes[1].Sections)
}

func TestReadSectionsCSV_MissingColumn(t *testing.T) {
	_, err := seed.ReadSectionsCSV(strings.NewReader("class,section\nLab,1\n"))
	assert.ErrorIs(t, err, seed.ErrMissingHeader)
}

func TestReadSectionsCSV_ShippedFileMatchesSample(t *testing.T) {
	file, err := os.Open("data/sections.csv")
	require.NoError(t, err)
	defer file.Close()

	options, err := seed.ReadSectionsCSV(file)
	require.NoError(t, err)
	assert.Equal(t, utils.SampleCatalog().Classes, options.Classes)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, options.Periods)
}
