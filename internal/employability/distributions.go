package employability

import (
	"sort"

	"skpg/internal/codes"
	"skpg/internal/dataset"
)

// labelCounts tallies the known labels of col over rows passing rowOK,
// skipping excluded labels. Percentages are shares of the tallied total.
func labelCounts(view dataset.View, col dataset.Column, rowOK func(int) bool, exclude ...string) ([]Bucket, int) {
	skip := make(map[string]struct{}, len(exclude)+1)
	skip[dataset.MissingLabel] = struct{}{}
	for _, label := range exclude {
		skip[label] = struct{}{}
	}

	counts := make(map[string]int)
	total := 0
	for i := 0; i < view.Len(); i++ {
		if rowOK != nil && !rowOK(i) {
			continue
		}
		label := view.Value(i, col)
		if _, excluded := skip[label]; excluded {
			continue
		}
		counts[label]++
		total++
	}

	rows := make([]Bucket, 0, len(counts))
	for label, count := range counts {
		rows = append(rows, Bucket{Label: label, Count: count, Percent: percent(count, total)})
	}
	return rows, total
}

func sortByLabel(rows []Bucket) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
}

// sortByCount orders by descending count, label ascending on ties.
func sortByCount(rows []Bucket) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
}

// participated keeps rows of graduates who completed the survey.
func participated(view dataset.View) func(int) bool {
	return func(i int) bool {
		return view.Value(i, dataset.ColParticipation) == "1"
	}
}

// WorkStatusDistribution breaks respondents down by unified work status,
// alphabetically, with the table total attached.
func WorkStatusDistribution(view dataset.View) (StatusTable, error) {
	if err := requireColumns(view, dataset.ColWorkStatus.Label()); err != nil {
		return StatusTable{}, err
	}
	rows, total := labelCounts(view, dataset.ColWorkStatus.Label(), nil, codes.LabelNoInformation)
	sortByLabel(rows)
	return StatusTable{Rows: rows, Total: total}, nil
}

// WorkStatusCodeDistribution breaks respondents down by the five answer
// codes of the work status question, in code order.
func WorkStatusCodeDistribution(view dataset.View) ([]CodeBucket, error) {
	if err := requireColumns(view, dataset.ColWorkStatus); err != nil {
		return nil, err
	}

	statusCodes := []string{"1", "2", "3", "4", "5"}
	counts := make([]int, len(statusCodes))
	total := 0
	for idx, code := range statusCodes {
		counts[idx] = countEqual(view, dataset.ColWorkStatus, code)
		total += counts[idx]
	}

	out := make([]CodeBucket, 0, len(statusCodes))
	for idx, code := range statusCodes {
		out = append(out, CodeBucket{
			Code:    code,
			Label:   codes.WorkStatus.Label(code),
			Count:   counts[idx],
			Percent: percent(counts[idx], total),
		})
	}
	return out, nil
}

// StudyLevelDistribution breaks graduates down by level of study, largest
// group first.
func StudyLevelDistribution(view dataset.View) ([]Bucket, error) {
	if err := requireColumns(view, dataset.ColStudyLevel.Label()); err != nil {
		return nil, err
	}
	rows, _ := labelCounts(view, dataset.ColStudyLevel.Label(), nil)
	sortByCount(rows)
	return rows, nil
}

// SectorDistribution breaks surveyed graduates down by employment sector.
func SectorDistribution(view dataset.View) ([]Bucket, error) {
	if err := requireColumns(view, dataset.ColParticipation, dataset.ColSector.Label()); err != nil {
		return nil, err
	}
	rows, _ := labelCounts(view, dataset.ColSector.Label(), participated(view), codes.LabelNotApplicable)
	sortByCount(rows)
	return rows, nil
}

// OccupationDistribution breaks surveyed graduates down by occupation group.
func OccupationDistribution(view dataset.View) ([]Bucket, error) {
	if err := requireColumns(view, dataset.ColParticipation, dataset.ColOccupation.Label()); err != nil {
		return nil, err
	}
	rows, _ := labelCounts(view, dataset.ColOccupation.Label(), participated(view), codes.LabelNotApplicable)
	sortByCount(rows)
	return rows, nil
}

// EmploymentTypeDistribution breaks surveyed graduates down by the kind of
// employment they hold.
func EmploymentTypeDistribution(view dataset.View) ([]Bucket, error) {
	if err := requireColumns(view, dataset.ColParticipation, dataset.ColEmploymentType.Label()); err != nil {
		return nil, err
	}
	rows, _ := labelCounts(view, dataset.ColEmploymentType.Label(), participated(view), codes.LabelNotApplicable)
	sortByCount(rows)
	return rows, nil
}

// WorksInFieldDistribution breaks answered works-in-field responses down,
// largest group first.
func WorksInFieldDistribution(view dataset.View) ([]Bucket, error) {
	if err := requireColumns(view, dataset.ColWorksInField.Label()); err != nil {
		return nil, err
	}
	rows, _ := labelCounts(view, dataset.ColWorksInField.Label(), nil, codes.LabelNotApplicable)
	sortByCount(rows)
	return rows, nil
}

// ReasonsNotWorking tallies why unemployed graduates are not working, most
// common reason first, truncated to topN entries when topN is positive.
func ReasonsNotWorking(view dataset.View, topN int) ([]Bucket, error) {
	if err := requireColumns(view, dataset.ColWorkStatus, dataset.ColNonWorkReason.Label()); err != nil {
		return nil, err
	}
	notWorking := func(i int) bool {
		return view.Value(i, dataset.ColWorkStatus) == "5"
	}
	rows, _ := labelCounts(view, dataset.ColNonWorkReason.Label(), notWorking)
	sortByCount(rows)
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	return rows, nil
}

// ProgramCount counts the distinct study programmes in the view.
func ProgramCount(view dataset.View) (int, error) {
	if err := requireColumns(view, dataset.ColProgram); err != nil {
		return 0, err
	}
	return len(view.Distinct(dataset.ColProgram)), nil
}

// GraduateCount counts the graduates in the view.
func GraduateCount(view dataset.View) int {
	return view.Len()
}
