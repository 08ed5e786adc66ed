package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDelimited(t *testing.T) {
	got := ParseDelimited("No.,form,HP\n1,1,45\n2,1,60")
	assert.Equal(t, []Row{
		{"No.": "1", "form": "1", "HP": "45"},
		{"No.": "2", "form": "1", "HP": "60"},
	}, got)
}

func TestParseDelimitedEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Row
	}{
		{"header only", "a,b", []Row{}},
		{"empty", "", []Row{}},
		{"trailing newline", "a,b\n1,2\n", []Row{{"a": "1", "b": "2"}, {"a": ""}}},
		{"short row", "a,b,c\n1", []Row{{"a": "1"}}},
		{"long row", "a,b\n1,2,3", []Row{{"a": "1", "b": "2"}}},
		// No quoting: the embedded comma shifts the following columns.
		{"quoted comma misaligns", "name,hp\n\"Mr. Mime, Galar\",50", []Row{{"name": "\"Mr. Mime", "hp": " Galar\""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDelimited(tt.in))
		})
	}
}
