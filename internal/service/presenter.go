package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fcontreras/macrofilter/internal/filter"
	"github.com/fcontreras/macrofilter/internal/model"
)

// DisplayColumns are the user-facing column labels, in export order.
var DisplayColumns = []string{
	"Recipe Name", "Calories", "Carbs %", "Fat %", "Protein %", "Category", "Rating", "URL",
}

// DisplayRow is one display-ready result row: renamed columns, calories
// rounded to an integer, percentages to one decimal, rating to two.
type DisplayRow struct {
	Name       string   `json:"name"`
	Calories   int      `json:"calories"`
	PctCarbs   float64  `json:"pct_carbs"`
	PctFat     float64  `json:"pct_fat"`
	PctProtein float64  `json:"pct_protein"`
	Category   string   `json:"category"`
	Rating     *float64 `json:"rating"`
	URL        string   `json:"url"`
}

// Present projects raw result rows into display rows. The input is not
// mutated.
func Present(rows []model.MacroRow) []DisplayRow {
	out := make([]DisplayRow, 0, len(rows))
	for _, r := range rows {
		d := DisplayRow{
			Name:       r.Name,
			Calories:   int(math.Round(r.Calories)),
			PctCarbs:   round1(r.PctCarbs),
			PctFat:     round1(r.PctFat),
			PctProtein: round1(r.PctProtein),
			URL:        r.URL,
		}
		if r.CategoryName != nil {
			d.Category = *r.CategoryName
		}
		if r.Rating != nil {
			rounded := round2(*r.Rating)
			d.Rating = &rounded
		}
		out = append(out, d)
	}
	return out
}

// WriteCSV serializes display rows as UTF-8 CSV with a header row.
func WriteCSV(w io.Writer, rows []DisplayRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(DisplayColumns); err != nil {
		return err
	}
	for _, r := range rows {
		rating := ""
		if r.Rating != nil {
			rating = strconv.FormatFloat(*r.Rating, 'f', 2, 64)
		}
		record := []string{
			r.Name,
			strconv.Itoa(r.Calories),
			strconv.FormatFloat(r.PctCarbs, 'f', 1, 64),
			strconv.FormatFloat(r.PctFat, 'f', 1, 64),
			strconv.FormatFloat(r.PctProtein, 'f', 1, 64),
			r.Category,
			rating,
			r.URL,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename builds the download filename for a result set.
func ExportFilename(f filter.State) string {
	return fmt.Sprintf("recipe_results_%s-%scal.csv",
		strconv.FormatFloat(f.CalMin, 'f', -1, 64),
		strconv.FormatFloat(f.CalMax, 'f', -1, 64))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
