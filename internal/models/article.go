package models

// ArchivedArticle is the unit the archiver stores: one featured or
// most-read article captured for one date and language edition.
type ArchivedArticle struct {
	Date         string `json:"date"` // YYYY-MM-DD
	Lang         string `json:"lang"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Extract      string `json:"extract,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Views        int64  `json:"views,omitempty"`
}
