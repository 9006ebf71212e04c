package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcontreras/macrofilter/internal/filter"
	"github.com/fcontreras/macrofilter/internal/model"
)

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }

func sampleRows() []model.MacroRow {
	return []model.MacroRow{
		{
			RecipeID:     uuid.New(),
			Name:         "Berry Bowl",
			URL:          "https://example.com/berry-bowl",
			Calories:     432.4,
			PctCarbs:     51.26,
			PctFat:       28.84,
			PctProtein:   19.9,
			CategoryName: strp("Breakfast"),
			Rating:       f64p(4.267),
		},
		{
			RecipeID:   uuid.New(),
			Name:       "Mystery Soup, \"hot\"",
			URL:        "https://example.com/soup",
			Calories:   650.5,
			PctCarbs:   50,
			PctFat:     30,
			PctProtein: 20,
		},
	}
}

func TestPresentRounding(t *testing.T) {
	rows := sampleRows()
	display := Present(rows)
	require.Len(t, display, 2)

	assert.Equal(t, "Berry Bowl", display[0].Name)
	assert.Equal(t, 432, display[0].Calories)
	assert.Equal(t, 51.3, display[0].PctCarbs)
	assert.Equal(t, 28.8, display[0].PctFat)
	assert.Equal(t, 19.9, display[0].PctProtein)
	assert.Equal(t, "Breakfast", display[0].Category)
	require.NotNil(t, display[0].Rating)
	assert.Equal(t, 4.27, *display[0].Rating)

	// Nullable fields come through as empty.
	assert.Equal(t, 651, display[1].Calories)
	assert.Empty(t, display[1].Category)
	assert.Nil(t, display[1].Rating)
}

func TestPresentDoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	original := rows[0]
	_ = Present(rows)
	assert.Equal(t, original, rows[0])
}

func TestWriteCSVRoundTrip(t *testing.T) {
	display := Present(sampleRows())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, display))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(display)+1)

	assert.Equal(t, DisplayColumns, records[0])
	assert.Equal(t, []string{
		"Berry Bowl", "432", "51.3", "28.8", "19.9", "Breakfast", "4.27",
		"https://example.com/berry-bowl",
	}, records[1])

	// Quoted comma and quotes survive the round trip.
	assert.Equal(t, "Mystery Soup, \"hot\"", records[2][0])
	assert.Equal(t, "", records[2][6])
}

func TestWriteCSVEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, DisplayColumns, records[0])
}

func TestExportFilename(t *testing.T) {
	f := filter.Default()
	assert.Equal(t, "recipe_results_100-700cal.csv", ExportFilename(f))

	f.CalMin, f.CalMax = 350, 1200
	assert.Equal(t, "recipe_results_350-1200cal.csv", ExportFilename(f))
}
