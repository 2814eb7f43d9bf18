package keys

import (
	"fmt"
	"strings"

	"wikifeed/internal/models"
)

// slug replaces spaces with hyphens and lowercases the string so titles
// produce stable, URL-safe object keys.
func slug(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

// Article returns the canonical object-store key for an archived article.
func Article(a models.ArchivedArticle) string {
	return fmt.Sprintf("featured/%s/%s/%s.json", a.Date, a.Lang, slug(a.Title))
}
