// Package filter holds the user-adjustable search parameters for one
// interaction cycle. A State is created per request and discarded after the
// result set is produced.
package filter

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CategoryAll is the sentinel category meaning "no category filter".
const CategoryAll = "All Categories"

// Control ranges and defaults, mirroring the dashboard sliders.
const (
	CalFloor   = 100
	CalCeil    = 1200
	MarginCeil = 20

	DefaultCalMin        = 100
	DefaultCalMax        = 700
	DefaultCarbTarget    = 50
	DefaultFatTarget     = 30
	DefaultProteinTarget = 20
	DefaultMargin        = 5
)

// State is the complete set of filter parameters for one search.
// Target±margin windows may extend past [0,100]; they are used as-is.
type State struct {
	CalMin             float64 `json:"cal_min"`
	CalMax             float64 `json:"cal_max"`
	CarbTarget         float64 `json:"carb_target"`
	FatTarget          float64 `json:"fat_target"`
	ProteinTarget      float64 `json:"protein_target"`
	Margin             float64 `json:"margin"`
	Category           string  `json:"category,omitempty"`
	ExcludeAllergenIDs []int64 `json:"exclude_allergen_ids,omitempty"`
	DietLabelIDs       []int64 `json:"diet_label_ids,omitempty"`
}

// Default returns a State with the dashboard's default control values.
func Default() State {
	return State{
		CalMin:        DefaultCalMin,
		CalMax:        DefaultCalMax,
		CarbTarget:    DefaultCarbTarget,
		FatTarget:     DefaultFatTarget,
		ProteinTarget: DefaultProteinTarget,
		Margin:        DefaultMargin,
	}
}

// HasCategory reports whether a specific category filter is active.
func (s State) HasCategory() bool {
	return s.Category != "" && s.Category != CategoryAll
}

// Validate checks field ranges and bound ordering.
func (s State) Validate() error {
	if err := validation.ValidateStruct(&s,
		validation.Field(&s.CalMin, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&s.CalMax, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&s.CarbTarget, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&s.FatTarget, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&s.ProteinTarget, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&s.Margin, validation.Min(0.0), validation.Max(float64(MarginCeil))),
	); err != nil {
		return err
	}
	if s.CalMin > s.CalMax {
		return errors.New("cal_min: must not exceed cal_max")
	}
	return nil
}
