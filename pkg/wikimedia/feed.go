package wikimedia

import (
	"context"
	"fmt"
	"time"

	"wikifeed/pkg/schema"
)

// FeedService exposes the Feed REST API endpoints: daily featured content
// and the "on this day" event lists.
type FeedService struct {
	client *Client
}

func NewFeedService(client *Client) *FeedService {
	return &FeedService{client: client}
}

// Featured returns the featured content for the given date: article of the
// day, picture of the day, most-read articles, news and historical events.
func (s *FeedService) Featured(ctx context.Context, date time.Time) (*FeaturedContent, error) {
	path := fmt.Sprintf("/feed/v1/wikipedia/%s/featured/%s", s.client.lang, date.Format("2006/01/02"))
	body, err := s.client.getJSON(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	obj, err := schema.Deserialize(featuredContentSchema, body)
	if err != nil {
		return nil, err
	}
	return featuredContentFrom(obj), nil
}

// OnThisDay returns historical events for the given calendar day. The event
// type selects one feed section; EventTypeAll concatenates every section in
// the order the API documents them.
func (s *FeedService) OnThisDay(ctx context.Context, typ EventType, month, day int) ([]OnThisDayEvent, error) {
	path := fmt.Sprintf("/feed/v1/wikipedia/%s/onthisday/%s/%02d/%02d", s.client.lang, typ, month, day)
	body, err := s.client.getJSON(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	sections := []EventType{typ}
	if typ == EventTypeAll {
		sections = onThisDaySections
	}

	var events []OnThisDayEvent
	for _, section := range sections {
		raw, ok := body[string(section)]
		if !ok {
			continue
		}
		objects, err := schema.DeserializeList(onThisDayEventSchema, raw)
		if err != nil {
			return nil, err
		}
		for _, o := range objects {
			events = append(events, onThisDayEventFrom(o))
		}
	}
	return events, nil
}
