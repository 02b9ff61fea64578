package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trims whitespace", input: "  5 ", want: "5"},
		{name: "empty becomes missing", input: "", want: MissingCode},
		{name: "whitespace only becomes missing", input: "   ", want: MissingCode},
		{name: "integral float drops fraction", input: "1.0", want: "1"},
		{name: "negative integral float", input: "-2.00", want: "-2"},
		{name: "explicit plus sign", input: "+7", want: "7"},
		{name: "non integral keeps trimmed form", input: " 3.5 ", want: "3.5"},
		{name: "leading dot fraction", input: ".5", want: ".5"},
		{name: "huge integer kept verbatim", input: "999999999999999999999", want: "999999999999999999999"},
		{name: "exponent treated as text", input: "1e5", want: "1E5"},
		{name: "nan literal treated as text", input: "nan", want: "Nan"},
		{name: "double dash treated as text", input: "--2", want: "--2"},
		{name: "faculty name title cased", input: "fakulti sains komputer dan teknologi maklumat", want: "Fakulti Sains Komputer Dan Teknologi Maklumat"},
		{name: "parenthesised suffix", input: "int antarabangsa polisi awam dan pengurusan (inpuma)", want: "Int Antarabangsa Polisi Awam Dan Pengurusan (Inpuma)"},
		{name: "ampersand boundary", input: "pusat sukan & sains eksesais", want: "Pusat Sukan & Sains Eksesais"},
		{name: "all caps collapses to title case", input: "FSKTM", want: "Fsktm"},
		{name: "salary free text", input: "rm3,500", want: "Rm3,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalCell(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, CanonicalCell(got), "canonicalization must be idempotent")
		})
	}
}

func TestLooksNumeric(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"5", true},
		{"-2", true},
		{"+7.5", true},
		{".5", true},
		{"1.2.3", false},
		{"1e5", false},
		{"rm2000", false},
		{"-", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, looksNumeric(tt.input))
		})
	}
}
