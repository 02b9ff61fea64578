package employability

import (
	"sort"

	"skpg/internal/codes"
	"skpg/internal/dataset"
)

// facultyView narrows a view to one canonical faculty code.
func facultyView(view dataset.View, code string) dataset.View {
	return view.Filter(func(i int) bool {
		return view.Value(i, dataset.ColFaculty.Label()) == code
	})
}

// FacultyRates computes GE and GM for every canonical faculty, in canonical
// order. Faculties without matching rows appear with zero rates.
func FacultyRates(view dataset.View) ([]FacultyRate, error) {
	if err := requireColumns(view,
		dataset.ColFaculty.Label(),
		dataset.ColWorkStatus,
		dataset.ColWorkStatus.Label(),
		dataset.ColNonWorkReason,
	); err != nil {
		return nil, err
	}

	out := make([]FacultyRate, 0, len(codes.CanonicalFaculties))
	for _, code := range codes.CanonicalFaculties {
		sub := facultyView(view, code)
		ge, err := GE(sub)
		if err != nil {
			return nil, err
		}
		gm, err := GM(sub)
		if err != nil {
			return nil, err
		}
		out = append(out, FacultyRate{Faculty: code, GE: ge.Percent, GM: gm.Percent})
	}
	return out, nil
}

// FacultyResponseRates computes the survey response rate for every
// canonical faculty, in canonical order.
func FacultyResponseRates(view dataset.View) ([]FacultyResponse, error) {
	if err := requireColumns(view, dataset.ColFaculty.Label(), dataset.ColParticipation); err != nil {
		return nil, err
	}

	out := make([]FacultyResponse, 0, len(codes.CanonicalFaculties))
	for _, code := range codes.CanonicalFaculties {
		rate, err := ResponseRate(facultyView(view, code))
		if err != nil {
			return nil, err
		}
		out = append(out, FacultyResponse{Faculty: code, Rate: rate})
	}
	return out, nil
}

// FacultySkillBands computes the skill split of every canonical faculty.
func FacultySkillBands(view dataset.View) ([]FacultySkill, error) {
	if err := requireColumns(view, dataset.ColFaculty.Label(), dataset.ColOccupation); err != nil {
		return nil, err
	}

	out := make([]FacultySkill, 0, len(codes.CanonicalFaculties))
	for _, code := range codes.CanonicalFaculties {
		bands, err := SkillBands(facultyView(view, code))
		if err != nil {
			return nil, err
		}
		out = append(out, FacultySkill{
			Faculty:     code,
			Skilled:     bands[0].Percent,
			SemiSkilled: bands[1].Percent,
			LowSkilled:  bands[2].Percent,
		})
	}
	return out, nil
}

// FacultyWorksInField computes, per faculty, the share of employed
// graduates working inside their field of study. Faculties with no
// qualifying answers are skipped entirely rather than zero-filled.
func FacultyWorksInField(view dataset.View) ([]FacultyFieldMatch, error) {
	label := dataset.ColWorksInField.Label()
	if err := requireColumns(view, dataset.ColFaculty.Label(), label); err != nil {
		return nil, err
	}

	valid := view.Filter(func(i int) bool {
		v := view.Value(i, label)
		return v != dataset.MissingLabel && v != codes.LabelNotApplicable
	})

	var out []FacultyFieldMatch
	for _, code := range codes.CanonicalFaculties {
		sub := facultyView(valid, code)
		total := sub.Len()
		if total == 0 {
			continue
		}
		out = append(out, FacultyFieldMatch{
			Faculty:   code,
			Yes:       percent(countEqual(sub, label, "Ya"), total),
			No:        percent(countEqual(sub, label, "Tidak"), total),
			NotStated: percent(countEqual(sub, label, "Tidak Dinyatakan"), total),
		})
	}
	return out, nil
}

// geSizeCategory buckets a faculty by cohort size.
func geSizeCategory(graduates int) string {
	switch {
	case graduates < 200:
		return "Kategori 1 (<200)"
	case graduates <= 700:
		return "Kategori 2 (201-700)"
	default:
		return "Kategori 3 (>701)"
	}
}

// FacultyGECategories computes GE per faculty next to the faculty's cohort
// size category, ordered by category then faculty code.
func FacultyGECategories(view dataset.View) ([]FacultyGECategory, error) {
	if err := requireColumns(view,
		dataset.ColFaculty.Label(),
		dataset.ColWorkStatus,
		dataset.ColWorkStatus.Label(),
		dataset.ColNonWorkReason,
	); err != nil {
		return nil, err
	}

	out := make([]FacultyGECategory, 0, len(codes.CanonicalFaculties))
	for _, code := range codes.CanonicalFaculties {
		sub := facultyView(view, code)
		ge, err := GE(sub)
		if err != nil {
			return nil, err
		}
		out = append(out, FacultyGECategory{
			Faculty:   code,
			Graduates: sub.Len(),
			Category:  geSizeCategory(sub.Len()),
			GE:        ge.Percent,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Faculty < out[j].Faculty
	})
	return out, nil
}

// facultyExtremum scans canonical faculties for the best value under
// better. Faculties whose metric has an empty denominator are not
// candidates; ties keep the earliest faculty in canonical order.
func facultyExtremum(view dataset.View, metric func(dataset.View) (Rate, error), better func(candidate, best float64) bool) (Extremum, error) {
	var ext Extremum
	for _, code := range codes.CanonicalFaculties {
		rate, err := metric(facultyView(view, code))
		if err != nil {
			return Extremum{}, err
		}
		if rate.Denominator <= 0 {
			continue
		}
		if !ext.Defined || better(rate.Percent, ext.Value) {
			ext = Extremum{Faculty: code, Value: rate.Percent, Defined: true}
		}
	}
	return ext, nil
}

// HighestFacultyGM names the faculty with the best marketability rate.
func HighestFacultyGM(view dataset.View) (Extremum, error) {
	if err := requireColumns(view, dataset.ColFaculty.Label(), dataset.ColWorkStatus.Label()); err != nil {
		return Extremum{}, err
	}
	return facultyExtremum(view, GM, func(candidate, best float64) bool {
		return candidate > best
	})
}

// HighestFacultyGE names the faculty with the best employability rate.
func HighestFacultyGE(view dataset.View) (Extremum, error) {
	if err := requireColumns(view,
		dataset.ColFaculty.Label(),
		dataset.ColWorkStatus,
		dataset.ColWorkStatus.Label(),
		dataset.ColNonWorkReason,
	); err != nil {
		return Extremum{}, err
	}
	return facultyExtremum(view, GE, func(candidate, best float64) bool {
		return candidate > best
	})
}

// HighestFacultyResponseRate names the faculty with the best response rate.
func HighestFacultyResponseRate(view dataset.View) (Extremum, error) {
	if err := requireColumns(view, dataset.ColFaculty.Label(), dataset.ColParticipation); err != nil {
		return Extremum{}, err
	}
	return facultyExtremum(view, ResponseRate, func(candidate, best float64) bool {
		return candidate > best
	})
}

// LowestFacultyResponseRate names the faculty with the worst response rate
// among faculties that have one.
func LowestFacultyResponseRate(view dataset.View) (Extremum, error) {
	if err := requireColumns(view, dataset.ColFaculty.Label(), dataset.ColParticipation); err != nil {
		return Extremum{}, err
	}
	return facultyExtremum(view, ResponseRate, func(candidate, best float64) bool {
		return candidate < best
	})
}

// FacultiesAboveOverallGM counts faculties whose GM strictly exceeds the
// overall GM of the same view.
func FacultiesAboveOverallGM(view dataset.View) (AboveOverall, error) {
	if err := requireColumns(view, dataset.ColFaculty.Label(), dataset.ColWorkStatus.Label()); err != nil {
		return AboveOverall{}, err
	}
	overall, err := GM(view)
	if err != nil {
		return AboveOverall{}, err
	}
	return countAboveOverall(view, GM, overall.Percent)
}

// FacultiesAboveOverallGE counts faculties whose GE strictly exceeds the
// overall GE of the same view.
func FacultiesAboveOverallGE(view dataset.View) (AboveOverall, error) {
	if err := requireColumns(view,
		dataset.ColFaculty.Label(),
		dataset.ColWorkStatus,
		dataset.ColWorkStatus.Label(),
		dataset.ColNonWorkReason,
	); err != nil {
		return AboveOverall{}, err
	}
	overall, err := GE(view)
	if err != nil {
		return AboveOverall{}, err
	}
	return countAboveOverall(view, GE, overall.Percent)
}

func countAboveOverall(view dataset.View, metric func(dataset.View) (Rate, error), overall float64) (AboveOverall, error) {
	count := 0
	for _, code := range codes.CanonicalFaculties {
		rate, err := metric(facultyView(view, code))
		if err != nil {
			return AboveOverall{}, err
		}
		if rate.Denominator <= 0 {
			continue
		}
		if rate.Percent > overall {
			count++
		}
	}
	return AboveOverall{Count: count, Overall: overall}, nil
}
