package employability

import (
	"strconv"
	"strings"

	"skpg/internal/dataset"
	"skpg/internal/filter"
)

// salaryBandLabels is the fixed presentation order of the four bracket
// bands derived from the salary-group code.
var salaryBandLabels = []string{
	"RM2,000 dan kebawah",
	"RM2,001 - RM3,000",
	"RM3,001 - RM4,000",
	"RM4,001 dan keatas",
}

// rawSalaryBandLabels is the fixed order of the free-text salary bands.
// Unparseable and missing answers collect in the last band.
var rawSalaryBandLabels = []string{
	"RM2,000 dan kebawah",
	"RM2,001 - RM3,000",
	"RM3,001 - RM5,000",
	"RM5,001 - RM10,000",
	"RM10,000 dan keatas",
	"Tiada Maklumat",
}

// salaryBandIndex places a salary-group code in its band. Edges are
// right-inclusive at 4, 7 and 8; the missing sentinel and non-numeric
// codes are excluded before binning.
func salaryBandIndex(code string) (int, bool) {
	if code == dataset.MissingCode {
		return 0, false
	}
	n, err := strconv.Atoi(code)
	if err != nil || n < 0 {
		return 0, false
	}
	switch {
	case n <= 4:
		return 0, true
	case n <= 7:
		return 1, true
	case n <= 8:
		return 2, true
	default:
		return 3, true
	}
}

// SalaryBands distributes salary-group answers into the four fixed RM
// bands. All four bands are always present, zero-filled when empty.
func SalaryBands(view dataset.View) ([]Bucket, error) {
	if err := requireColumns(view, dataset.ColSalaryGroup); err != nil {
		return nil, err
	}

	var counts [4]int
	total := 0
	for i := 0; i < view.Len(); i++ {
		idx, ok := salaryBandIndex(view.Value(i, dataset.ColSalaryGroup))
		if !ok {
			continue
		}
		counts[idx]++
		total++
	}

	out := make([]Bucket, len(salaryBandLabels))
	for i, label := range salaryBandLabels {
		out[i] = Bucket{Label: label, Count: counts[i], Percent: percent(counts[i], total)}
	}
	return out, nil
}

// SalaryBandsByLevel restricts SalaryBands to one study-level label.
func SalaryBandsByLevel(view dataset.View, level string) ([]Bucket, error) {
	if err := requireColumns(view, dataset.ColStudyLevel.Label()); err != nil {
		return nil, err
	}
	return SalaryBands(filter.Apply(view, filter.Selection{Levels: []string{level}}))
}

// parseSalary extracts a ringgit amount from a free-text salary answer.
// The missing sentinel and anything that does not reduce to a number
// report ok false.
func parseSalary(raw string) (float64, bool) {
	if raw == dataset.MissingCode {
		return 0, false
	}

	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, "rm", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// rawSalaryBandIndex places a cleaned salary in its band, right-inclusive
// at 2000, 3000, 5000 and 10000.
func rawSalaryBandIndex(salary float64) int {
	switch {
	case salary <= 2000:
		return 0
	case salary <= 3000:
		return 1
	case salary <= 5000:
		return 2
	case salary <= 10000:
		return 3
	default:
		return 4
	}
}

// SalaryBandsFromRaw distributes free-text salary answers into the five RM
// bands plus a no-information band. Percentages are shares of all rows in
// the view, so the missing band is visible in the result.
func SalaryBandsFromRaw(view dataset.View) ([]Bucket, error) {
	if err := requireColumns(view, dataset.ColSalaryRaw); err != nil {
		return nil, err
	}

	counts := make([]int, len(rawSalaryBandLabels))
	missing := len(rawSalaryBandLabels) - 1
	for i := 0; i < view.Len(); i++ {
		salary, ok := parseSalary(view.Value(i, dataset.ColSalaryRaw))
		if !ok {
			counts[missing]++
			continue
		}
		counts[rawSalaryBandIndex(salary)]++
	}

	out := make([]Bucket, len(rawSalaryBandLabels))
	for i, label := range rawSalaryBandLabels {
		out[i] = Bucket{Label: label, Count: counts[i], Percent: percent(counts[i], view.Len())}
	}
	return out, nil
}
