package dataset

// Column identifies a physical column in the survey workbooks. Derived label
// columns share the raw column's name with a "_label" suffix.
type Column string

// Physical columns of the DATASET sheet.
const (
	ColYear           Column = "SKPG_Tahun"
	ColCitizenship    Column = "e_warganegara"
	ColEmployment     Column = "e_40"
	ColWorkStatusGE   Column = "e_status_GE2024"
	ColWorkStatus     Column = "e_status"
	ColParticipation  Column = "e_statusPenyertaan"
	ColNonWorkReason  Column = "e_54"
	ColStudyLevel     Column = "e_peringkat"
	ColFaculty        Column = "e_fakulti"
	ColProgram        Column = "e_program"
	ColEmploymentType Column = "e_43"
	ColSector         Column = "e_45"
	ColOccupation     Column = "e_41_a"
	ColWorksInField   Column = "e_50_b"
	ColSalaryGroup    Column = "e_44_kumpulan"
	ColSalaryRaw      Column = "e_44_2"
)

// Label returns the derived label column for a raw column.
func (c Column) Label() Column {
	return c + "_label"
}

const (
	// MissingCode marks an empty cell or a column absent from a source year.
	// The survey instrument itself uses -2 for "not applicable".
	MissingCode = "-2"

	// MissingLabel is the label of a code with no lookup entry.
	MissingLabel = ""
)

// KnownColumns lists every physical column the metric engine understands.
var KnownColumns = []Column{
	ColYear,
	ColCitizenship,
	ColEmployment,
	ColWorkStatusGE,
	ColWorkStatus,
	ColParticipation,
	ColNonWorkReason,
	ColStudyLevel,
	ColFaculty,
	ColProgram,
	ColEmploymentType,
	ColSector,
	ColOccupation,
	ColWorksInField,
	ColSalaryGroup,
	ColSalaryRaw,
}

// Table is an immutable column-major store of canonical cell strings.
// Every cell has passed CanonicalCell exactly once at construction; raw
// columns are never rewritten afterwards, only derived columns are added.
type Table struct {
	columns map[Column][]string
	order   []Column
	rows    int
}

// NewTable builds a table from a header row and data records. Cell values are
// canonicalized; header names are kept verbatim. Records shorter than the
// header are padded with the missing sentinel, duplicate header names keep
// the first occurrence.
func NewTable(header []string, records [][]string) *Table {
	t := &Table{
		columns: make(map[Column][]string, len(header)),
		rows:    len(records),
	}

	for idx, name := range header {
		col := Column(name)
		if name == "" {
			continue
		}
		if _, exists := t.columns[col]; exists {
			continue
		}

		values := make([]string, len(records))
		for i, record := range records {
			if idx < len(record) {
				values[i] = CanonicalCell(record[idx])
			} else {
				values[i] = MissingCode
			}
		}
		t.columns[col] = values
		t.order = append(t.order, col)
	}

	return t
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t == nil || t.rows == 0
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// Columns returns the column names in their original order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.order))
	copy(out, t.order)
	return out
}

// HasColumn reports whether the column is present.
func (t *Table) HasColumn(c Column) bool {
	if t == nil {
		return false
	}
	_, ok := t.columns[c]
	return ok
}

// ColumnValues returns the backing values of a column, or nil when absent.
// Callers must not modify the returned slice.
func (t *Table) ColumnValues(c Column) []string {
	if t == nil {
		return nil
	}
	return t.columns[c]
}

// Value returns the cell at (row, col). Absent columns and out of range rows
// yield the missing sentinel.
func (t *Table) Value(row int, c Column) string {
	if t == nil || row < 0 || row >= t.rows {
		return MissingCode
	}
	values, ok := t.columns[c]
	if !ok {
		return MissingCode
	}
	return values[row]
}

// AddColumn attaches a derived column. An existing column of the same name is
// replaced, which keeps label derivation idempotent.
func (t *Table) AddColumn(c Column, values []string) error {
	if len(values) != t.rows {
		return &lengthError{column: c, want: t.rows, got: len(values)}
	}
	if _, exists := t.columns[c]; !exists {
		t.order = append(t.order, c)
	}
	t.columns[c] = values
	return nil
}

// MissingColumns returns the subset of required columns the table lacks.
func (t *Table) MissingColumns(required ...Column) []Column {
	var missing []Column
	for _, c := range required {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// All returns a view over every row.
func (t *Table) All() View {
	return View{table: t}
}

// Concat merges tables by column union: the output carries every column seen
// in any input, in first-appearance order, with cells of absent columns set
// to the missing sentinel.
func Concat(tables ...*Table) *Table {
	out := &Table{columns: make(map[Column][]string)}

	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.order {
			if _, seen := out.columns[c]; !seen {
				out.columns[c] = nil
				out.order = append(out.order, c)
			}
		}
		out.rows += t.rows
	}

	for _, c := range out.order {
		values := make([]string, 0, out.rows)
		for _, t := range tables {
			if t == nil {
				continue
			}
			if src, ok := t.columns[c]; ok {
				values = append(values, src...)
			} else {
				for i := 0; i < t.rows; i++ {
					values = append(values, MissingCode)
				}
			}
		}
		out.columns[c] = values
	}

	return out
}

type lengthError struct {
	column Column
	want   int
	got    int
}

func (e *lengthError) Error() string {
	return "dataset: column " + string(e.column) + " has mismatched length"
}

// View is a logical subset of table rows. The zero value is an empty view.
type View struct {
	table *Table
	index []int // nil means all rows
}

// Len returns the number of rows in the view.
func (v View) Len() int {
	if v.table == nil {
		return 0
	}
	if v.index == nil {
		return v.table.rows
	}
	return len(v.index)
}

// Value returns the cell at view-relative row i.
func (v View) Value(i int, c Column) string {
	if v.table == nil {
		return MissingCode
	}
	if v.index != nil {
		if i < 0 || i >= len(v.index) {
			return MissingCode
		}
		i = v.index[i]
	}
	return v.table.Value(i, c)
}

// HasColumn reports whether the underlying table carries the column.
func (v View) HasColumn(c Column) bool {
	return v.table.HasColumn(c)
}

// Filter returns the sub-view of rows for which pred is true. The predicate
// receives view-relative indices.
func (v View) Filter(pred func(i int) bool) View {
	if v.table == nil {
		return View{}
	}

	var index []int
	for i := 0; i < v.Len(); i++ {
		if pred(i) {
			if v.index != nil {
				index = append(index, v.index[i])
			} else {
				index = append(index, i)
			}
		}
	}
	if index == nil {
		index = []int{}
	}
	return View{table: v.table, index: index}
}

// Distinct returns the distinct non-missing values of a column in first
// appearance order.
func (v View) Distinct(c Column) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := 0; i < v.Len(); i++ {
		val := v.Value(i, c)
		if val == MissingCode || val == MissingLabel {
			continue
		}
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	return out
}
