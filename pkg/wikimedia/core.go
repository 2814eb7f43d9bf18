package wikimedia

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"wikifeed/pkg/schema"
)

// CoreService exposes the Core REST API endpoints: search and page data.
type CoreService struct {
	client *Client
}

func NewCoreService(client *Client) *CoreService {
	return &CoreService{client: client}
}

func (s *CoreService) corePath(suffix string) string {
	return fmt.Sprintf("/core/v1/wikipedia/%s/%s", s.client.lang, suffix)
}

// SearchContent searches page content for the query and returns up to limit
// results.
func (s *CoreService) SearchContent(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	return s.search(ctx, "search/page", query, limit)
}

// SearchTitles searches page titles for the query, for autocomplete-style
// lookups.
func (s *CoreService) SearchTitles(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	return s.search(ctx, "search/title", query, limit)
}

func (s *CoreService) search(ctx context.Context, endpoint, query string, limit int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	body, err := s.client.getJSON(ctx, s.corePath(endpoint), params)
	if err != nil {
		return nil, err
	}

	objects, err := schema.DeserializeList(searchResultSchema, body["pages"])
	if err != nil {
		return nil, err
	}
	results := make([]SearchResult, 0, len(objects))
	for _, o := range objects {
		results = append(results, searchResultFrom(o))
	}
	return results, nil
}

// Description returns the short description of a page, empty when the page
// has none.
func (s *CoreService) Description(ctx context.Context, title string) (string, error) {
	body, err := s.client.getJSON(ctx, s.corePath("page/"+url.PathEscape(title)+"/description"), nil)
	if err != nil {
		return "", err
	}
	obj, err := schema.Deserialize(pageDescriptionSchema, body)
	if err != nil {
		return "", err
	}
	if d := obj.OptString("description"); d != nil {
		return *d, nil
	}
	return "", nil
}

// File returns metadata for a file page, including its available renditions.
func (s *CoreService) File(ctx context.Context, title string) (*FileInfo, error) {
	body, err := s.client.getJSON(ctx, "/core/v1/commons/file/"+url.PathEscape(title), nil)
	if err != nil {
		return nil, err
	}
	obj, err := schema.Deserialize(fileInfoSchema, body)
	if err != nil {
		return nil, err
	}
	return fileInfoFrom(obj), nil
}
