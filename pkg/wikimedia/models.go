package wikimedia

import (
	"fmt"
	"time"

	"wikifeed/pkg/schema"
)

// Response schemas, declared once at package init. Schema.Check runs over
// every top-level schema below so a defective declaration aborts startup
// instead of failing on the first live response.

var thumbnailSchema = schema.New("Thumbnail",
	schema.Field{Name: "mimetype", Type: schema.String},
	schema.Field{Name: "size", Type: schema.Optional(schema.Int)},
	schema.Field{Name: "width", Type: schema.Optional(schema.Int)},
	schema.Field{Name: "height", Type: schema.Optional(schema.Int)},
	schema.Field{Name: "duration", Type: schema.Optional(schema.Int)},
	schema.Field{Name: "url", Type: schema.String, Transform: schema.Prefix("https:")},
)

var searchResultSchema = schema.New("SearchResult",
	schema.Field{Name: "id", Type: schema.Int},
	schema.Field{Name: "key", Type: schema.String},
	schema.Field{Name: "title", Type: schema.String},
	schema.Field{Name: "excerpt", Type: schema.String},
	schema.Field{Name: "matched_title", Type: schema.Optional(schema.String)},
	schema.Field{Name: "description", Type: schema.Optional(schema.String)},
	schema.Field{Name: "thumbnail", Type: schema.Optional(schema.Model(thumbnailSchema))},
)

var summaryImageSchema = schema.New("SummaryImage",
	schema.Field{Name: "source", Type: schema.String},
	schema.Field{Name: "width", Type: schema.Optional(schema.Int)},
	schema.Field{Name: "height", Type: schema.Optional(schema.Int)},
)

var pageSummarySchema = schema.New("PageSummary",
	schema.Field{Name: "type", Type: schema.Enum(articleTypeValues...)},
	schema.Field{Name: "title", Type: schema.String},
	schema.Field{Name: "displaytitle", Type: schema.Optional(schema.String)},
	schema.Field{Name: "pageid", Type: schema.Int},
	schema.Field{Name: "lang", Type: schema.String},
	schema.Field{Name: "dir", Type: schema.Enum(directionValues...)},
	schema.Field{Name: "timestamp", Type: schema.Optional(schema.DateTime)},
	schema.Field{Name: "description", Type: schema.Optional(schema.String)},
	schema.Field{Name: "extract", Type: schema.Optional(schema.String)},
	schema.Field{Name: "thumbnail", Type: schema.Optional(schema.Model(summaryImageSchema))},
	schema.Field{Name: "originalimage", Type: schema.Optional(schema.Model(summaryImageSchema))},
	schema.Field{Name: "content_urls", Type: schema.Optional(schema.Custom(parseContentURLs))},
)

// mostReadArticleSchema extends the summary schema with ranking data; the
// base field list carries over unchanged.
var mostReadArticleSchema = pageSummarySchema.Extend("MostReadArticle",
	schema.Field{Name: "views", Type: schema.Optional(schema.Int)},
	schema.Field{Name: "rank", Type: schema.Optional(schema.Int)},
)

var mostReadSchema = schema.New("MostRead",
	schema.Field{Name: "date", Type: schema.Date},
	schema.Field{Name: "articles", Type: schema.Seq(schema.Model(mostReadArticleSchema))},
)

var newsStorySchema = schema.New("NewsStory",
	schema.Field{Name: "story", Type: schema.String},
	schema.Field{Name: "links", Type: schema.Seq(schema.Model(pageSummarySchema))},
)

var onThisDayEventSchema = schema.New("OnThisDayEvent",
	schema.Field{Name: "text", Type: schema.String},
	schema.Field{Name: "year", Type: schema.Optional(schema.Int)},
	schema.Field{Name: "pages", Type: schema.Seq(schema.Model(pageSummarySchema))},
)

var imageDescriptionSchema = schema.New("ImageDescription",
	schema.Field{Name: "text", Type: schema.String},
	schema.Field{Name: "lang", Type: schema.String},
)

var featuredImageSchema = schema.New("FeaturedImage",
	schema.Field{Name: "title", Type: schema.String},
	schema.Field{Name: "thumbnail", Type: schema.Model(summaryImageSchema)},
	schema.Field{Name: "image", Type: schema.Optional(schema.Model(summaryImageSchema))},
	schema.Field{Name: "file_page", Type: schema.Optional(schema.String)},
	schema.Field{Name: "description", Type: schema.Optional(schema.Model(imageDescriptionSchema))},
)

var featuredContentSchema = schema.New("FeaturedContent",
	schema.Field{Name: "tfa", Type: schema.Optional(schema.Model(pageSummarySchema))},
	schema.Field{Name: "mostread", Type: schema.Optional(schema.Model(mostReadSchema))},
	schema.Field{Name: "image", Type: schema.Optional(schema.Model(featuredImageSchema))},
	schema.Field{Name: "news", Type: schema.Optional(schema.Seq(schema.Model(newsStorySchema)))},
	schema.Field{Name: "onthisday", Type: schema.Optional(schema.Seq(schema.Model(onThisDayEventSchema)))},
)

var fileUserSchema = schema.New("FileUser",
	schema.Field{Name: "id", Type: schema.Optional(schema.Int)},
	schema.Field{Name: "name", Type: schema.String},
)

var fileRevisionSchema = schema.New("FileRevision",
	schema.Field{Name: "timestamp", Type: schema.DateTime},
	schema.Field{Name: "user", Type: schema.Model(fileUserSchema)},
)

var filePayloadSchema = schema.New("FilePayload",
	schema.Field{Name: "mediatype", Type: schema.Enum(mediaTypeValues...)},
	schema.Field{Name: "size", Type: schema.Optional(schema.Int)},
	schema.Field{Name: "width", Type: schema.Optional(schema.Int)},
	schema.Field{Name: "height", Type: schema.Optional(schema.Int)},
	schema.Field{Name: "duration", Type: schema.Optional(schema.Float)},
	schema.Field{Name: "url", Type: schema.String, Transform: schema.Prefix("https:")},
)

var fileInfoSchema = schema.New("FileInfo",
	schema.Field{Name: "title", Type: schema.String},
	schema.Field{Name: "file_description_url", Type: schema.String, Transform: schema.Prefix("https:")},
	schema.Field{Name: "latest", Type: schema.Optional(schema.Model(fileRevisionSchema))},
	schema.Field{Name: "preferred", Type: schema.Optional(schema.Model(filePayloadSchema))},
	schema.Field{Name: "original", Type: schema.Optional(schema.Model(filePayloadSchema))},
	schema.Field{Name: "thumbnail", Type: schema.Optional(schema.Model(filePayloadSchema))},
)

var pageDescriptionSchema = schema.New("PageDescription",
	schema.Field{Name: "description", Type: schema.Optional(schema.String)},
)

func init() {
	for _, s := range []*schema.Schema{
		searchResultSchema,
		featuredContentSchema,
		onThisDayEventSchema,
		fileInfoSchema,
		pageDescriptionSchema,
	} {
		schema.MustCheck(s)
	}
}

// Thumbnail is the media preview attached to a search result.
type Thumbnail struct {
	MimeType string
	Size     *int64
	Width    *int64
	Height   *int64
	Duration *int64
	URL      string
}

func thumbnailFrom(o schema.Object) *Thumbnail {
	if o == nil {
		return nil
	}
	return &Thumbnail{
		MimeType: o.String("mimetype"),
		Size:     o.OptInt("size"),
		Width:    o.OptInt("width"),
		Height:   o.OptInt("height"),
		Duration: o.OptInt("duration"),
		URL:      o.String("url"),
	}
}

// SearchResult is one page hit from the Core search endpoints.
type SearchResult struct {
	ID           int64
	Key          string
	Title        string
	Excerpt      string
	MatchedTitle *string
	Description  *string
	Thumbnail    *Thumbnail
}

func searchResultFrom(o schema.Object) SearchResult {
	return SearchResult{
		ID:           o.Int("id"),
		Key:          o.String("key"),
		Title:        o.String("title"),
		Excerpt:      o.String("excerpt"),
		MatchedTitle: o.OptString("matched_title"),
		Description:  o.OptString("description"),
		Thumbnail:    thumbnailFrom(o.Child("thumbnail")),
	}
}

// SummaryImage is the image payload used by feed page summaries.
type SummaryImage struct {
	Source string
	Width  *int64
	Height *int64
}

func summaryImageFrom(o schema.Object) *SummaryImage {
	if o == nil {
		return nil
	}
	return &SummaryImage{
		Source: o.String("source"),
		Width:  o.OptInt("width"),
		Height: o.OptInt("height"),
	}
}

// PageURLs is one platform's set of page links.
type PageURLs struct {
	Page      string
	Revisions string
	Edit      string
	Talk      string
}

// parseContentURLs converts the content_urls member, an object keyed by
// platform name rather than a fixed field list, hence the custom converter.
func parseContentURLs(raw any) (any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected object keyed by platform, got %T", raw)
	}
	out := make(map[PlatformType]PageURLs, len(m))
	for platform, v := range m {
		urls, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("platform %q: expected object, got %T", platform, v)
		}
		out[PlatformType(platform)] = PageURLs{
			Page:      stringMember(urls, "page"),
			Revisions: stringMember(urls, "revisions"),
			Edit:      stringMember(urls, "edit"),
			Talk:      stringMember(urls, "talk"),
		}
	}
	return out, nil
}

func stringMember(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// PageSummary is the article summary shape shared by the feed endpoints.
type PageSummary struct {
	Type          ArticleType
	Title         string
	DisplayTitle  *string
	PageID        int64
	Lang          string
	Dir           LanguageDirection
	Timestamp     *time.Time
	Description   *string
	Extract       *string
	Thumbnail     *SummaryImage
	OriginalImage *SummaryImage
	ContentURLs   map[PlatformType]PageURLs
}

func pageSummaryFrom(o schema.Object) PageSummary {
	urls, _ := o.Get("content_urls").(map[PlatformType]PageURLs)
	return PageSummary{
		Type:          ArticleType(o.String("type")),
		Title:         o.String("title"),
		DisplayTitle:  o.OptString("displaytitle"),
		PageID:        o.Int("pageid"),
		Lang:          o.String("lang"),
		Dir:           LanguageDirection(o.String("dir")),
		Timestamp:     o.OptTime("timestamp"),
		Description:   o.OptString("description"),
		Extract:       o.OptString("extract"),
		Thumbnail:     summaryImageFrom(o.Child("thumbnail")),
		OriginalImage: summaryImageFrom(o.Child("originalimage")),
		ContentURLs:   urls,
	}
}

// MostReadArticle is a page summary ranked by view count.
type MostReadArticle struct {
	PageSummary
	Views *int64
	Rank  *int64
}

// MostRead is the most-viewed articles for one day.
type MostRead struct {
	Date     time.Time
	Articles []MostReadArticle
}

func mostReadFrom(o schema.Object) *MostRead {
	if o == nil {
		return nil
	}
	children := o.Children("articles")
	articles := make([]MostReadArticle, 0, len(children))
	for _, child := range children {
		articles = append(articles, MostReadArticle{
			PageSummary: pageSummaryFrom(child),
			Views:       child.OptInt("views"),
			Rank:        child.OptInt("rank"),
		})
	}
	return &MostRead{Date: o.Time("date"), Articles: articles}
}

// NewsStory is one entry of the in-the-news feed section.
type NewsStory struct {
	Story string
	Links []PageSummary
}

func newsStoryFrom(o schema.Object) NewsStory {
	children := o.Children("links")
	links := make([]PageSummary, 0, len(children))
	for _, child := range children {
		links = append(links, pageSummaryFrom(child))
	}
	return NewsStory{Story: o.String("story"), Links: links}
}

// OnThisDayEvent is one historical event with its related pages.
type OnThisDayEvent struct {
	Text  string
	Year  *int64
	Pages []PageSummary
}

func onThisDayEventFrom(o schema.Object) OnThisDayEvent {
	children := o.Children("pages")
	pages := make([]PageSummary, 0, len(children))
	for _, child := range children {
		pages = append(pages, pageSummaryFrom(child))
	}
	return OnThisDayEvent{Text: o.String("text"), Year: o.OptInt("year"), Pages: pages}
}

// ImageDescription is the caption of the featured image.
type ImageDescription struct {
	Text string
	Lang string
}

// FeaturedImage is the picture of the day.
type FeaturedImage struct {
	Title       string
	Thumbnail   SummaryImage
	Image       *SummaryImage
	FilePage    *string
	Description *ImageDescription
}

func featuredImageFrom(o schema.Object) *FeaturedImage {
	if o == nil {
		return nil
	}
	img := &FeaturedImage{
		Title:    o.String("title"),
		Image:    summaryImageFrom(o.Child("image")),
		FilePage: o.OptString("file_page"),
	}
	if thumb := summaryImageFrom(o.Child("thumbnail")); thumb != nil {
		img.Thumbnail = *thumb
	}
	if desc := o.Child("description"); desc != nil {
		img.Description = &ImageDescription{Text: desc.String("text"), Lang: desc.String("lang")}
	}
	return img
}

// FeaturedContent is the daily featured feed: article of the day, picture of
// the day, most-read list, news and historical events. Every section is
// optional; the API omits sections that have no content for the date.
type FeaturedContent struct {
	TFA       *PageSummary
	MostRead  *MostRead
	Image     *FeaturedImage
	News      []NewsStory
	OnThisDay []OnThisDayEvent
}

func featuredContentFrom(o schema.Object) *FeaturedContent {
	fc := &FeaturedContent{
		MostRead: mostReadFrom(o.Child("mostread")),
		Image:    featuredImageFrom(o.Child("image")),
	}
	if tfa := o.Child("tfa"); tfa != nil {
		summary := pageSummaryFrom(tfa)
		fc.TFA = &summary
	}
	for _, child := range o.Children("news") {
		fc.News = append(fc.News, newsStoryFrom(child))
	}
	for _, child := range o.Children("onthisday") {
		fc.OnThisDay = append(fc.OnThisDay, onThisDayEventFrom(child))
	}
	return fc
}

// FileUser identifies the uploader of a file revision.
type FileUser struct {
	ID   *int64
	Name string
}

// FileRevision is the latest revision of a file page.
type FileRevision struct {
	Timestamp time.Time
	User      FileUser
}

// FilePayload is one rendition of a file (preferred, original or thumbnail).
type FilePayload struct {
	MediaType MediaType
	Size      *int64
	Width     *int64
	Height    *int64
	Duration  *float64
	URL       string
}

func filePayloadFrom(o schema.Object) *FilePayload {
	if o == nil {
		return nil
	}
	p := &FilePayload{
		MediaType: MediaType(o.String("mediatype")),
		Size:      o.OptInt("size"),
		Width:     o.OptInt("width"),
		Height:    o.OptInt("height"),
		URL:       o.String("url"),
	}
	if v, ok := o.Get("duration").(float64); ok {
		p.Duration = &v
	}
	return p
}

// FileInfo describes a file hosted on a Wikimedia project.
type FileInfo struct {
	Title              string
	FileDescriptionURL string
	Latest             *FileRevision
	Preferred          *FilePayload
	Original           *FilePayload
	Thumbnail          *FilePayload
}

func fileInfoFrom(o schema.Object) *FileInfo {
	info := &FileInfo{
		Title:              o.String("title"),
		FileDescriptionURL: o.String("file_description_url"),
		Preferred:          filePayloadFrom(o.Child("preferred")),
		Original:           filePayloadFrom(o.Child("original")),
		Thumbnail:          filePayloadFrom(o.Child("thumbnail")),
	}
	if latest := o.Child("latest"); latest != nil {
		rev := FileRevision{Timestamp: latest.Time("timestamp")}
		if user := latest.Child("user"); user != nil {
			rev.User = FileUser{ID: user.OptInt("id"), Name: user.String("name")}
		}
		info.Latest = &rev
	}
	return info
}
