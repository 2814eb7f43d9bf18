package wikimedia

// String-backed value sets used by the response schemas. The schema layer
// validates raw values against these before a typed constant is ever built,
// so a cast from a validated string is always safe in binder code.

// Language is a Wikimedia project language edition.
type Language string

const (
	LanguageEN Language = "en"
	LanguageDE Language = "de"
	LanguageFR Language = "fr"
	LanguageES Language = "es"
	LanguageIT Language = "it"
	LanguagePT Language = "pt"
	LanguageRU Language = "ru"
	LanguageJA Language = "ja"
	LanguageZH Language = "zh"
	LanguageAR Language = "ar"
)

// Project is a Wikimedia project family.
type Project string

const (
	ProjectWikipedia  Project = "wikipedia"
	ProjectWiktionary Project = "wiktionary"
	ProjectWikibooks  Project = "wikibooks"
	ProjectWikiquote  Project = "wikiquote"
	ProjectWikisource Project = "wikisource"
	ProjectWikinews   Project = "wikinews"
	ProjectCommons    Project = "commons"
)

// EventType selects a section of the "on this day" feed.
type EventType string

const (
	EventTypeAll      EventType = "all"
	EventTypeSelected EventType = "selected"
	EventTypeBirths   EventType = "births"
	EventTypeDeaths   EventType = "deaths"
	EventTypeHolidays EventType = "holidays"
	EventTypeEvents   EventType = "events"
)

// onThisDaySections lists the feed response keys carrying event arrays, in
// the order the API documents them.
var onThisDaySections = []EventType{
	EventTypeSelected,
	EventTypeBirths,
	EventTypeDeaths,
	EventTypeHolidays,
	EventTypeEvents,
}

// ArticleType classifies a page summary.
type ArticleType string

const (
	ArticleTypeStandard       ArticleType = "standard"
	ArticleTypeDisambiguation ArticleType = "disambiguation"
	ArticleTypeMainPage       ArticleType = "mainpage"
	ArticleTypeNoExtract      ArticleType = "no-extract"
)

var articleTypeValues = []string{
	string(ArticleTypeStandard),
	string(ArticleTypeDisambiguation),
	string(ArticleTypeMainPage),
	string(ArticleTypeNoExtract),
}

// MediaType is the media classification of a file payload.
type MediaType string

const (
	MediaTypeBitmap     MediaType = "BITMAP"
	MediaTypeDrawing    MediaType = "DRAWING"
	MediaTypeAudio      MediaType = "AUDIO"
	MediaTypeVideo      MediaType = "VIDEO"
	MediaTypeMultimedia MediaType = "MULTIMEDIA"
	MediaTypeOffice     MediaType = "OFFICE"
	MediaTypeText       MediaType = "TEXT"
	MediaTypeUnknown    MediaType = "UNKNOWN"
)

var mediaTypeValues = []string{
	string(MediaTypeBitmap),
	string(MediaTypeDrawing),
	string(MediaTypeAudio),
	string(MediaTypeVideo),
	string(MediaTypeMultimedia),
	string(MediaTypeOffice),
	string(MediaTypeText),
	string(MediaTypeUnknown),
}

// LanguageDirection is the writing direction of a language edition.
type LanguageDirection string

const (
	DirectionLTR LanguageDirection = "ltr"
	DirectionRTL LanguageDirection = "rtl"
)

var directionValues = []string{string(DirectionLTR), string(DirectionRTL)}

// PlatformType keys the per-platform URL sets in page summaries.
type PlatformType string

const (
	PlatformDesktop PlatformType = "desktop"
	PlatformMobile  PlatformType = "mobile"
)
