package employability

import (
	"sort"

	"skpg/internal/dataset"
)

// AnnualOverview computes the three headline rates for every survey year in
// the view, oldest first.
func AnnualOverview(view dataset.View) ([]AnnualRow, error) {
	if err := requireColumns(view,
		dataset.ColYear,
		dataset.ColWorkStatus,
		dataset.ColWorkStatus.Label(),
		dataset.ColNonWorkReason,
		dataset.ColParticipation,
	); err != nil {
		return nil, err
	}

	years := view.Distinct(dataset.ColYear)
	sort.Strings(years)

	out := make([]AnnualRow, 0, len(years))
	for _, year := range years {
		sub := view.Filter(func(i int) bool {
			return view.Value(i, dataset.ColYear) == year
		})
		ge, err := GE(sub)
		if err != nil {
			return nil, err
		}
		gm, err := GM(sub)
		if err != nil {
			return nil, err
		}
		response, err := ResponseRate(sub)
		if err != nil {
			return nil, err
		}
		out = append(out, AnnualRow{
			Year:         year,
			GE:           ge.Percent,
			GM:           gm.Percent,
			ResponseRate: response.Percent,
		})
	}
	return out, nil
}

// GMByYearAndLevel pivots marketability by study level and survey year.
// Levels are sorted alphabetically, years oldest first. A cell stays nil
// when the combination has no respondents with a known work status.
func GMByYearAndLevel(view dataset.View) (GMPivot, error) {
	levelCol := dataset.ColStudyLevel.Label()
	if err := requireColumns(view, dataset.ColYear, levelCol, dataset.ColWorkStatus.Label()); err != nil {
		return GMPivot{}, err
	}

	years := view.Distinct(dataset.ColYear)
	sort.Strings(years)

	levels := view.Distinct(levelCol)
	sort.Strings(levels)

	cells := make([][]*float64, len(levels))
	for li, level := range levels {
		cells[li] = make([]*float64, len(years))
		for yi, year := range years {
			sub := view.Filter(func(i int) bool {
				return view.Value(i, dataset.ColYear) == year &&
					view.Value(i, levelCol) == level
			})
			gm, err := GM(sub)
			if err != nil {
				return GMPivot{}, err
			}
			if gm.Denominator > 0 {
				v := gm.Percent
				cells[li][yi] = &v
			}
		}
	}

	return GMPivot{Years: years, Levels: levels, Cells: cells}, nil
}
