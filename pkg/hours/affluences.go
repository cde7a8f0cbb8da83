package hours

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AffluencesClient fetches opening hours from the Affluences location API.
type AffluencesClient struct {
	BaseURL string
	Client  *http.Client
}

var _ Source = &AffluencesClient{}

func NewAffluencesClient(baseURL string, timeout time.Duration) *AffluencesClient {
	return &AffluencesClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *AffluencesClient) Name() string { return SourceAffluences }

// --- Response shapes (internal to this package) ---
//
// The provider has shipped at least two schema generations. Each recognized
// shape gets its own defensive parser returning a normalized Schedule; an
// unrecognized body yields a ParseFailure so the chain can fall through.

type affluencesWeeklyResponse struct {
	OpeningHours []affluencesDayEntry `json:"openingHours"`
}

type affluencesDayEntry struct {
	DayOfWeek int    `json:"dayOfWeek"` // 1..7 = Monday..Sunday
	Hours     string `json:"hours"`
}

type affluencesDatedResponse struct {
	Dates []affluencesDateEntry `json:"dates"`
}

type affluencesDateEntry struct {
	Date    string `json:"date"` // "2006-01-02"
	Opening string `json:"opening"`
	Closing string `json:"closing"`
	Closed  bool   `json:"closed"`
}

func (c *AffluencesClient) Fetch(ctx context.Context, f *Facility) (*Schedule, error) {
	if f.AffluencesId == "" {
		return nil, fmt.Errorf("facility %s has no affluences endpoint", f.Id)
	}

	url := fmt.Sprintf("%s/location/%s/opening-hours", c.BaseURL, f.AffluencesId)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("affluences request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("affluences error: status %d", resp.StatusCode)
	}

	return parseAffluencesBody(body, f)
}

// parseAffluencesBody tries each recognized shape in order.
func parseAffluencesBody(body []byte, f *Facility) (*Schedule, error) {
	if sched, ok := parseWeeklyShape(body, f); ok {
		return sched, nil
	}
	if sched, ok := parseDatedShape(body, f); ok {
		return sched, nil
	}
	return nil, &ParseFailure{Provider: SourceAffluences, Reason: "no recognized schedule field"}
}

func parseWeeklyShape(body []byte, f *Facility) (*Schedule, bool) {
	var res affluencesWeeklyResponse
	if err := json.Unmarshal(body, &res); err != nil || len(res.OpeningHours) == 0 {
		return nil, false
	}

	var days []DayHours
	for _, entry := range res.OpeningHours {
		idx := entry.DayOfWeek - 1
		if idx < 0 || idx >= len(DaysFr) || entry.Hours == "" {
			continue
		}
		days = append(days, DayHours{Day: DaysFr[idx], Hours: entry.Hours})
	}
	if len(days) == 0 {
		return nil, false
	}

	return &Schedule{
		FacilityId:   f.Id,
		FacilityName: f.DisplayName,
		Source:       SourceAffluences,
		Days:         days,
		URL:          f.PageURL,
		FetchedAt:    time.Now(),
	}, true
}

func parseDatedShape(body []byte, f *Facility) (*Schedule, bool) {
	var res affluencesDatedResponse
	if err := json.Unmarshal(body, &res); err != nil || len(res.Dates) == 0 {
		return nil, false
	}

	var days []DayHours
	for _, entry := range res.Dates {
		date, err := time.Parse("2006-01-02", entry.Date)
		if err != nil {
			continue
		}
		day := DaysFr[(int(date.Weekday())+6)%7]
		if entry.Closed {
			days = append(days, DayHours{Day: day, Hours: "fermé"})
			continue
		}
		if entry.Opening == "" || entry.Closing == "" {
			continue
		}
		days = append(days, DayHours{Day: day, Hours: fmt.Sprintf("%s - %s", entry.Opening, entry.Closing)})
	}
	if len(days) == 0 {
		return nil, false
	}

	return &Schedule{
		FacilityId:   f.Id,
		FacilityName: f.DisplayName,
		Source:       SourceAffluences,
		Days:         days,
		URL:          f.PageURL,
		FetchedAt:    time.Now(),
	}, true
}
