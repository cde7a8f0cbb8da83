package hours

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Schedule keywords the scraper anchors on, lowercase.
var scrapeKeywords = []string{"horaires", "heures d'ouverture", "ouverture", "fermé"}

var hoursPattern = regexp.MustCompile(`(?i)(horaires|heures d'ouverture)\s*:?\s*([^\n.]*)`)

// PageScraper extracts opening hours from a facility's public web page.
// It applies a prioritized sequence of heuristics; the first one producing
// non-empty text wins.
type PageScraper struct {
	Client    *http.Client
	UserAgent string
}

var _ Source = &PageScraper{}

func NewPageScraper(timeout time.Duration) *PageScraper {
	return &PageScraper{
		Client: &http.Client{
			Timeout: timeout,
		},
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	}
}

func (s *PageScraper) Name() string { return SourceWeb }

func (s *PageScraper) Fetch(ctx context.Context, f *Facility) (*Schedule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.PageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("page fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page fetch error: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	text := ExtractHours(doc, f)
	if text == "" {
		return nil, fmt.Errorf("no schedule text found on %s", f.PageURL)
	}

	return &Schedule{
		FacilityId:   f.Id,
		FacilityName: f.DisplayName,
		Source:       SourceWeb,
		Text:         text,
		URL:          f.PageURL,
		FetchedAt:    time.Now(),
	}, nil
}

// ExtractHours runs the heuristic cascade over a parsed page. Exported so
// fixtures can exercise the priorities without HTTP.
func ExtractHours(doc *goquery.Document, f *Facility) string {
	// 1. Dedicated markup container
	if text := fromDedicatedContainer(doc); text != "" {
		return text
	}
	// 2. Table rows mentioning the facility or schedule keywords
	if text := fromScheduleTable(doc, f); text != "" {
		return text
	}
	// 3. Headings containing schedule keywords
	if text := fromScheduleHeading(doc); text != "" {
		return text
	}
	// 4. Generic keyword-anchored search over the page text
	if m := hoursPattern.FindStringSubmatch(doc.Text()); len(m) == 3 {
		return collapseWhitespace(m[2])
	}
	return ""
}

func fromDedicatedContainer(doc *goquery.Document) string {
	var text string
	doc.Find("div, section").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		haystack := strings.ToLower(class + " " + id)
		for _, kw := range []string{"horaire", "opening-hours"} {
			if strings.Contains(haystack, kw) {
				text = collapseWhitespace(sel.Text())
				return false
			}
		}
		return true
	})
	return text
}

func fromScheduleTable(doc *goquery.Document, f *Facility) string {
	var text string
	name := strings.ToLower(f.DisplayName)
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		content := strings.ToLower(table.Text())
		relevant := strings.Contains(content, name)
		if !relevant {
			for _, kw := range scrapeKeywords {
				if strings.Contains(content, kw) {
					relevant = true
					break
				}
			}
		}
		if !relevant {
			return true
		}
		var rows []string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			if row := collapseWhitespace(tr.Text()); row != "" {
				rows = append(rows, row)
			}
		})
		text = strings.Join(rows, "; ")
		return text == ""
	})
	return text
}

func fromScheduleHeading(doc *goquery.Document) string {
	var text string
	doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		heading := strings.ToLower(h.Text())
		for _, kw := range scrapeKeywords {
			if strings.Contains(heading, kw) {
				// Take the text that follows the heading.
				if next := collapseWhitespace(h.NextAll().Text()); next != "" {
					text = next
					return false
				}
			}
		}
		return true
	})
	return text
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
