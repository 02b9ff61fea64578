package employability

import (
	"strconv"

	"skpg/internal/codes"
	"skpg/internal/dataset"
)

// GE calculates graduate employability: employed graduates over the labor
// force. Graduates who are not working for a reason other than active job
// seeking (code 5) or an unsuitable offer (code 34) are outside the labor
// force and shrink the denominator.
func GE(view dataset.View) (Rate, error) {
	if err := requireColumns(view,
		dataset.ColWorkStatus,
		dataset.ColWorkStatus.Label(),
		dataset.ColNonWorkReason,
	); err != nil {
		return Rate{}, err
	}

	employed := countEqual(view, dataset.ColWorkStatus.Label(), codes.LabelEmployed)
	notEmployed := countEqual(view, dataset.ColWorkStatus.Label(), codes.LabelNotEmployed)
	outside := countOutsideLaborForce(view)

	return newRate(employed, employed+notEmployed-outside), nil
}

func countOutsideLaborForce(view dataset.View) int {
	n := 0
	for i := 0; i < view.Len(); i++ {
		if view.Value(i, dataset.ColWorkStatus) != "5" {
			continue
		}
		reason := view.Value(i, dataset.ColNonWorkReason)
		if reason == "5" || reason == "34" {
			continue
		}
		n++
	}
	return n
}

// GM calculates graduate marketability: among respondents whose work status
// is known, the share doing anything other than still waiting for work.
func GM(view dataset.View) (Rate, error) {
	if err := requireColumns(view, dataset.ColWorkStatus.Label()); err != nil {
		return Rate{}, err
	}

	respondents := 0
	notEmployed := 0
	for i := 0; i < view.Len(); i++ {
		label := view.Value(i, dataset.ColWorkStatus.Label())
		if label == dataset.MissingLabel || label == codes.LabelNoInformation {
			continue
		}
		respondents++
		if label == codes.LabelNotEmployed {
			notEmployed++
		}
	}

	return newRate(respondents-notEmployed, respondents), nil
}

// GEByInstrument2024 calculates the employment share from the 2024
// instrument's condensed status question, the figure the faculty page
// reports as "Kadar GE".
func GEByInstrument2024(view dataset.View) (Rate, error) {
	if err := requireColumns(view, dataset.ColWorkStatusGE.Label()); err != nil {
		return Rate{}, err
	}

	employed := 0
	base := 0
	for i := 0; i < view.Len(); i++ {
		label := view.Value(i, dataset.ColWorkStatusGE.Label())
		if label == dataset.MissingLabel || label == codes.LabelNotApplicable {
			continue
		}
		base++
		if label == codes.LabelEmployed {
			employed++
		}
	}

	return newRate(employed, base), nil
}

// ResponseRate calculates survey participation among the graduates the
// survey applied to. Code 1 is full participation; the missing sentinel
// leaves the denominator.
func ResponseRate(view dataset.View) (Rate, error) {
	if err := requireColumns(view, dataset.ColParticipation); err != nil {
		return Rate{}, err
	}

	joined := countEqual(view, dataset.ColParticipation, "1")
	base := countWhere(view, dataset.ColParticipation, func(code string) bool {
		return code != dataset.MissingCode
	})

	return newRate(joined, base), nil
}

// ResponseTarget measures the response rate against a target percentage.
func ResponseTarget(view dataset.View, target float64) (TargetRate, error) {
	rate, err := ResponseRate(view)
	if err != nil {
		return TargetRate{}, err
	}
	return TargetRate{
		Rate:     rate,
		Target:   target,
		Achieved: rate.Percent >= target,
	}, nil
}

// PremiumSalaryRate calculates the share of salary-bracket answers in the
// premium brackets, codes 11 and above (RM4,001 upwards).
func PremiumSalaryRate(view dataset.View) (Rate, error) {
	if err := requireColumns(view, dataset.ColSalaryGroup); err != nil {
		return Rate{}, err
	}

	premium := 0
	base := 0
	for i := 0; i < view.Len(); i++ {
		code := view.Value(i, dataset.ColSalaryGroup)
		if code == dataset.MissingCode {
			continue
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			continue
		}
		base++
		if n >= 11 {
			premium++
		}
	}

	return newRate(premium, base), nil
}

// PremiumSalaryFromRaw calculates the share of parseable free-text salary
// answers of RM4,000 and above.
func PremiumSalaryFromRaw(view dataset.View) (Rate, error) {
	if err := requireColumns(view, dataset.ColSalaryRaw); err != nil {
		return Rate{}, err
	}

	premium := 0
	base := 0
	for i := 0; i < view.Len(); i++ {
		salary, ok := parseSalary(view.Value(i, dataset.ColSalaryRaw))
		if !ok {
			continue
		}
		base++
		if salary >= 4000 {
			premium++
		}
	}

	return newRate(premium, base), nil
}
