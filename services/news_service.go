package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"carbon-footprint-system/utils"

	"github.com/patrickmn/go-cache"
)

const (
	newsCacheKey = "sustainability-feed"
	newsCacheTTL = 10 * time.Minute
	guardianURL  = "https://content.guardianapis.com/search"
)

// NewsItem is one normalized article from the Guardian environment section.
type NewsItem struct {
	ID          string `json:"id"`
	Title       string `json:"webTitle"`
	URL         string `json:"webUrl"`
	Section     string `json:"sectionName"`
	PublishedAt string `json:"publishedAt"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	TrailText   string `json:"trailText,omitempty"`
	Byline      string `json:"byline,omitempty"`
}

// NewsService fetches sustainability news through an injected TTL cache, so a
// burst of dashboard loads costs one upstream request per TTL window.
type NewsService struct {
	APIKey  string
	BaseURL string
	Cache   *cache.Cache
	Client  *http.Client
}

func NewNewsService(apiKey string) *NewsService {
	return &NewsService{
		APIKey:  apiKey,
		BaseURL: guardianURL,
		Cache:   cache.New(newsCacheTTL, 2*newsCacheTTL),
		Client:  utils.HTTPClient,
	}
}

// Fetch returns the current feed and whether it came from cache.
func (s *NewsService) Fetch() ([]NewsItem, bool, error) {
	if s.APIKey == "" {
		return nil, false, fmt.Errorf("GUARDIAN_API_KEY is not configured")
	}

	if cached, ok := s.Cache.Get(newsCacheKey); ok {
		return cached.([]NewsItem), true, nil
	}

	params := url.Values{
		"section":     {"environment"},
		"q":           {"climate|sustainability|pollution|energy|wildlife|recycling|emissions"},
		"show-fields": {"thumbnail,trailText,byline"},
		"order-by":    {"newest"},
		"page-size":   {"18"},
		"api-key":     {s.APIKey},
	}

	resp, err := s.Client.Get(s.BaseURL + "?" + params.Encode())
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("guardian API returned %d", resp.StatusCode)
	}

	var payload struct {
		Response struct {
			Results []struct {
				ID                 string `json:"id"`
				WebTitle           string `json:"webTitle"`
				WebURL             string `json:"webUrl"`
				SectionName        string `json:"sectionName"`
				WebPublicationDate string `json:"webPublicationDate"`
				Fields             struct {
					Thumbnail string `json:"thumbnail"`
					TrailText string `json:"trailText"`
					Byline    string `json:"byline"`
				} `json:"fields"`
			} `json:"results"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, err
	}

	items := make([]NewsItem, 0, len(payload.Response.Results))
	for _, r := range payload.Response.Results {
		items = append(items, NewsItem{
			ID:          r.ID,
			Title:       r.WebTitle,
			URL:         r.WebURL,
			Section:     r.SectionName,
			PublishedAt: r.WebPublicationDate,
			Thumbnail:   r.Fields.Thumbnail,
			TrailText:   r.Fields.TrailText,
			Byline:      r.Fields.Byline,
		})
	}

	s.Cache.Set(newsCacheKey, items, cache.DefaultExpiration)
	return items, false, nil
}

// Invalidate drops the cached feed so the next Fetch hits the upstream API.
func (s *NewsService) Invalidate() {
	s.Cache.Delete(newsCacheKey)
}
