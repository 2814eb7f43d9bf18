package keys

import (
	"testing"

	"wikifeed/internal/models"
)

func TestArticle(t *testing.T) {
	cases := []struct {
		name     string
		input    models.ArchivedArticle
		expected string
	}{
		{
			name:     "spaces become hyphens, title lowercased",
			input:    models.ArchivedArticle{Date: "2024-01-15", Lang: "en", Title: "International Space Station"},
			expected: "featured/2024-01-15/en/international-space-station.json",
		},
		{
			name:     "single word",
			input:    models.ArchivedArticle{Date: "2024-01-15", Lang: "de", Title: "Erde"},
			expected: "featured/2024-01-15/de/erde.json",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Article(tc.input); got != tc.expected {
				t.Fatalf("Article(%+v) = %q; want %q", tc.input, got, tc.expected)
			}
		})
	}
}
