package codes

import "skpg/internal/dataset"

// Normalizer derives the label column of every raw code column it knows.
// Raw columns are never touched; reapplying recomputes identical labels.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Apply attaches "<column>_label" columns for each known raw column present
// in the table. Codes without a lookup entry get the empty missing label,
// which downstream metrics treat as unknown.
func (n *Normalizer) Apply(t *dataset.Table) {
	for _, col := range dataset.KnownColumns {
		table, ok := lookups[col]
		if !ok || !t.HasColumn(col) {
			continue
		}

		raw := t.ColumnValues(col)
		labels := make([]string, len(raw))
		for i, code := range raw {
			labels[i] = table.Label(code)
		}
		// Lengths always match, AddColumn cannot fail here.
		_ = t.AddColumn(col.Label(), labels)
	}

	n.applyFaculty(t)
}

// applyFaculty maps delivered faculty names to short codes. The label column
// of e_fakulti holds codes rather than prose so that filters and per-faculty
// tables compare against the canonical list directly.
func (n *Normalizer) applyFaculty(t *dataset.Table) {
	if !t.HasColumn(dataset.ColFaculty) {
		return
	}

	raw := t.ColumnValues(dataset.ColFaculty)
	codesCol := make([]string, len(raw))
	for i, name := range raw {
		codesCol[i] = facultyAliases[name]
	}
	_ = t.AddColumn(dataset.ColFaculty.Label(), codesCol)
}
