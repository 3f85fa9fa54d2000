package search

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/okian/careerdesk/internal/domain/model"
)

// primarySelectors match the job-title links of common careers platforms.
var primarySelectors = strings.Join([]string{
	"a.jobTitle-link",
	"a.job-title-link",
	".job-title a",
	"a.job-link",
	`a[data-automation-id="jobTitle"]`,
}, ", ")

var jobPath = regexp.MustCompile(`(?i)/jobs?/`)

var spaces = regexp.MustCompile(`\s+`)

// Extract pulls up to limit listings from doc in document order. The
// fallback pass over job-path anchors only runs when the primary selectors
// yield nothing; the second return value reports whether it was used.
func Extract(doc *goquery.Document, base *url.URL, limit int) ([]model.RoleListing, bool) {
	if limit <= 0 || limit > DefaultMaxResults {
		limit = DefaultMaxResults
	}

	out := collect(doc.Find(primarySelectors), base, limit, nil)
	if len(out) > 0 {
		return out, false
	}

	out = collect(doc.Find("a[href]"), base, limit, func(href string) bool {
		return jobPath.MatchString(href)
	})
	return out, true
}

func collect(sel *goquery.Selection, base *url.URL, limit int, keep func(href string) bool) []model.RoleListing {
	out := make([]model.RoleListing, 0, limit)
	seen := make(map[string]struct{})

	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return true
		}
		if keep != nil && !keep(href) {
			return true
		}
		title := strings.TrimSpace(spaces.ReplaceAllString(s.Text(), " "))
		if title == "" {
			return true
		}
		target := resolve(base, href)
		if target == "" {
			return true
		}
		if _, dup := seen[target]; dup {
			return true
		}
		seen[target] = struct{}{}
		out = append(out, model.RoleListing{
			Title:      title,
			URL:        target,
			Provenance: model.ProvenanceScraped,
		})
		return len(out) < limit
	})
	return out
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
