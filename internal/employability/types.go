package employability

import (
	"math"

	"skpg/internal/dataset"
	apperrors "skpg/internal/errors"
)

// Rate is a scalar percentage with the counts it was computed from. A
// denominator of zero (or less, for GE's subtracted denominator) yields a
// zero percentage rather than an error.
type Rate struct {
	Percent     float64 `json:"percent"`
	Numerator   int     `json:"numerator"`
	Denominator int     `json:"denominator"`
}

// TargetRate is a response rate measured against a target percentage.
type TargetRate struct {
	Rate
	Target   float64 `json:"target"`
	Achieved bool    `json:"achieved"`
}

// Bucket is one labelled row of a breakdown table.
type Bucket struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CodeBucket is a Bucket that keeps the underlying survey code visible.
type CodeBucket struct {
	Code    string  `json:"code"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// StatusTable is a distribution together with its displayed total.
type StatusTable struct {
	Rows  []Bucket `json:"rows"`
	Total int      `json:"total"`
}

// FacultyRate pairs the two employability rates of one faculty.
type FacultyRate struct {
	Faculty string  `json:"faculty"`
	GE      float64 `json:"ge"`
	GM      float64 `json:"gm"`
}

// FacultyResponse is one faculty's survey response rate.
type FacultyResponse struct {
	Faculty string `json:"faculty"`
	Rate
}

// FacultySkill is the skill split of one faculty's employed graduates.
type FacultySkill struct {
	Faculty     string  `json:"faculty"`
	Skilled     float64 `json:"skilled"`
	SemiSkilled float64 `json:"semi_skilled"`
	LowSkilled  float64 `json:"low_skilled"`
}

// FacultyFieldMatch is the works-in-field split of one faculty.
type FacultyFieldMatch struct {
	Faculty   string  `json:"faculty"`
	Yes       float64 `json:"yes"`
	No        float64 `json:"no"`
	NotStated float64 `json:"not_stated"`
}

// FacultyGECategory places one faculty's GE next to its cohort size
// category.
type FacultyGECategory struct {
	Faculty   string  `json:"faculty"`
	Graduates int     `json:"graduates"`
	Category  string  `json:"category"`
	GE        float64 `json:"ge"`
}

// Extremum names the faculty holding the best or worst value of a metric.
// Defined is false when no faculty had the metric's denominator populated.
type Extremum struct {
	Faculty string  `json:"faculty"`
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// AboveOverall counts the faculties strictly above the overall value of a
// rate, with that overall value attached.
type AboveOverall struct {
	Count   int     `json:"count"`
	Overall float64 `json:"overall"`
}

// AnnualRow is one survey year of the overview trend.
type AnnualRow struct {
	Year         string  `json:"year"`
	GE           float64 `json:"ge"`
	GM           float64 `json:"gm"`
	ResponseRate float64 `json:"response_rate"`
}

// GMPivot is the marketability breakdown by study level (rows) and survey
// year (columns). A nil cell means the combination never occurs.
type GMPivot struct {
	Years  []string     `json:"years"`
	Levels []string     `json:"levels"`
	Cells  [][]*float64 `json:"cells"`
}

// round1 rounds to one decimal place. Every percentage is computed at full
// precision and rounded exactly once, here.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// percent returns the rounded percentage n of d, or 0 when d is not
// positive.
func percent(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return round1(float64(n) / float64(d) * 100)
}

func newRate(n, d int) Rate {
	return Rate{Percent: percent(n, d), Numerator: n, Denominator: d}
}

// requireColumns reports the columns a view lacks as a schema error, so
// that callers surface "insufficient data" instead of silently computing
// zeroes over absent columns.
func requireColumns(view dataset.View, cols ...dataset.Column) error {
	var missing []string
	for _, c := range cols {
		if !view.HasColumn(c) {
			missing = append(missing, string(c))
		}
	}
	if missing == nil {
		return nil
	}
	return apperrors.NewSchemaError("insufficient data for metric", missing)
}

func countEqual(view dataset.View, col dataset.Column, value string) int {
	n := 0
	for i := 0; i < view.Len(); i++ {
		if view.Value(i, col) == value {
			n++
		}
	}
	return n
}

func countWhere(view dataset.View, col dataset.Column, match func(string) bool) int {
	n := 0
	for i := 0; i < view.Len(); i++ {
		if match(view.Value(i, col)) {
			n++
		}
	}
	return n
}
