// Package filter narrows the survey table along the report dimensions and
// produces the cascading option lists the faculty page drives its dropdowns
// with.
package filter

import (
	"sort"

	"skpg/internal/dataset"
)

// Selection narrows the survey table. An empty dimension matches every row;
// several values within one dimension are alternatives.
type Selection struct {
	Years       []string `json:"years,omitempty"`
	Faculties   []string `json:"faculties,omitempty"`
	Levels      []string `json:"levels,omitempty"`
	Programs    []string `json:"programs,omitempty"`
	Citizenship []string `json:"citizenship,omitempty"`
}

// IsEmpty reports whether the selection matches everything.
func (s Selection) IsEmpty() bool {
	return len(s.Years) == 0 &&
		len(s.Faculties) == 0 &&
		len(s.Levels) == 0 &&
		len(s.Programs) == 0 &&
		len(s.Citizenship) == 0
}

// dimension binds a selection slice to the column its values live in.
// Faculty, level and citizenship match on label columns; year and program
// values are stored raw.
type dimension struct {
	column dataset.Column
	values []string
}

func (s Selection) dimensions() []dimension {
	return []dimension{
		{dataset.ColYear, s.Years},
		{dataset.ColFaculty.Label(), s.Faculties},
		{dataset.ColStudyLevel.Label(), s.Levels},
		{dataset.ColProgram, s.Programs},
		{dataset.ColCitizenship.Label(), s.Citizenship},
	}
}

// Apply returns the sub-view of rows matching every populated dimension.
func Apply(view dataset.View, sel Selection) dataset.View {
	if sel.IsEmpty() {
		return view
	}

	dims := sel.dimensions()
	sets := make([]map[string]struct{}, len(dims))
	for i, dim := range dims {
		if len(dim.values) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(dim.values))
		for _, v := range dim.values {
			set[v] = struct{}{}
		}
		sets[i] = set
	}

	return view.Filter(func(row int) bool {
		for i, dim := range dims {
			if sets[i] == nil {
				continue
			}
			if _, ok := sets[i][view.Value(row, dim.column)]; !ok {
				return false
			}
		}
		return true
	})
}

// Options lists the selectable values of each dimension.
type Options struct {
	Years       []string `json:"years"`
	Faculties   []string `json:"faculties"`
	Levels      []string `json:"levels"`
	Programs    []string `json:"programs"`
	Citizenship []string `json:"citizenship"`
}

// citizenshipOptions is fixed: the dimension does not cascade.
var citizenshipOptions = []string{"Warganegara", "Bukan Warganegara"}

// BuildOptions derives option lists with strict left-to-right narrowing:
// years are unconstrained, faculties come from year-narrowed rows, levels
// from faculty-narrowed rows, programs from level-narrowed rows. Years are
// listed newest first, everything else ascending.
func BuildOptions(view dataset.View, sel Selection) Options {
	opts := Options{
		Years:       distinctSorted(view, dataset.ColYear, true),
		Citizenship: append([]string(nil), citizenshipOptions...),
	}

	yearView := Apply(view, Selection{Years: sel.Years})
	opts.Faculties = distinctSorted(yearView, dataset.ColFaculty.Label(), false)

	facultyView := Apply(view, Selection{Years: sel.Years, Faculties: sel.Faculties})
	opts.Levels = distinctSorted(facultyView, dataset.ColStudyLevel.Label(), false)

	levelView := Apply(view, Selection{Years: sel.Years, Faculties: sel.Faculties, Levels: sel.Levels})
	opts.Programs = distinctSorted(levelView, dataset.ColProgram, false)

	return opts
}

func distinctSorted(view dataset.View, col dataset.Column, descending bool) []string {
	values := view.Distinct(col)
	if descending {
		sort.Sort(sort.Reverse(sort.StringSlice(values)))
	} else {
		sort.Strings(values)
	}
	if values == nil {
		values = []string{}
	}
	return values
}
