package search_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/okian/careerdesk/internal/adapters/search"
	"github.com/okian/careerdesk/internal/domain/model"
)

func parse(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func TestExtract(t *testing.T) {
	base, err := url.Parse("https://jobs.example.org/search?keyword=cloud")
	require.NoError(t, err)

	tests := []struct {
		name         string
		body         string
		wantTitles   []string
		wantURLs     []string
		wantFallback bool
	}{
		{
			name: "primary selectors in document order",
			body: `<ul>
				<li><a class="jobTitle-link" href="/job/Pune-Cloud-Engineer/101">Cloud   Engineer</a></li>
				<li><div class="job-title"><a href="https://other.example.org/jobs/202">Cloud Architect</a></div></li>
				<li><a data-automation-id="jobTitle" href="/job/303">DevOps Analyst</a></li>
				<li><a href="/jobs/999">Ignored fallback link</a></li>
			</ul>`,
			wantTitles: []string{"Cloud Engineer", "Cloud Architect", "DevOps Analyst"},
			wantURLs: []string{
				"https://jobs.example.org/job/Pune-Cloud-Engineer/101",
				"https://other.example.org/jobs/202",
				"https://jobs.example.org/job/303",
			},
		},
		{
			name: "fallback when no primary match",
			body: `<div>
				<a href="/about">About us</a>
				<a href="/JOBS/7">Tax Analyst</a>
				<a href="/job/8">  </a>
				<a href="jobs/9">Relative without leading slash</a>
				<a href="/job/10">Audit Associate</a>
			</div>`,
			wantTitles:   []string{"Tax Analyst", "Audit Associate"},
			wantURLs:     []string{"https://jobs.example.org/JOBS/7", "https://jobs.example.org/job/10"},
			wantFallback: true,
		},
		{
			name: "duplicates removed by resolved URL",
			body: `<a class="job-link" href="/job/1">Analyst</a>
				<a class="job-link" href="https://jobs.example.org/job/1">Analyst again</a>
				<a class="job-link" href="/job/2">Associate</a>`,
			wantTitles: []string{"Analyst", "Associate"},
			wantURLs:   []string{"https://jobs.example.org/job/1", "https://jobs.example.org/job/2"},
		},
		{
			name:         "nothing matches",
			body:         `<p>No results</p><a href="/help">Help</a>`,
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fallback := search.Extract(parse(t, tt.body), base, search.DefaultMaxResults)
			assert.Equal(t, tt.wantFallback, fallback)
			require.Len(t, got, len(tt.wantTitles))
			for i, l := range got {
				assert.Equal(t, tt.wantTitles[i], l.Title)
				assert.Equal(t, tt.wantURLs[i], l.URL)
				assert.Equal(t, model.ProvenanceScraped, l.Provenance)
			}
		})
	}
}

func TestExtract_CapsResults(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, `<a class="job-title-link" href="/job/%d">Role %d</a>`, i, i)
	}
	base, _ := url.Parse("https://jobs.example.org/")

	got, fallback := search.Extract(parse(t, b.String()), base, 5)
	assert.False(t, fallback)
	require.Len(t, got, 5)
	assert.Equal(t, "Role 0", got[0].Title)
	assert.Equal(t, "Role 4", got[4].Title)

	got, _ = search.Extract(parse(t, b.String()), base, 20)
	assert.Len(t, got, search.DefaultMaxResults, "limit above the cap is clamped")
}

func TestClient_MaxResultsNeverExceedsCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, `<a class="job-link" href="/job/%d">Role %d</a>`, i, i)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(b.String()))
	}))
	defer srv.Close()

	for _, n := range []int{6, 20} {
		c := search.NewClient(search.WithBaseURL(srv.URL+"/search"), search.WithMaxResults(n))
		res := c.Search(context.Background(), search.Query{Keyword: "role"})
		require.NoError(t, res.Err)
		assert.Len(t, res.Listings, search.DefaultMaxResults)
	}

	c := search.NewClient(search.WithBaseURL(srv.URL+"/search"), search.WithMaxResults(2))
	res := c.Search(context.Background(), search.Query{Keyword: "role"})
	assert.Len(t, res.Listings, 2)
}

func TestQuery_Phrase(t *testing.T) {
	assert.Equal(t, "cloud", search.Query{Keyword: " cloud ", Practice: "Tax"}.Phrase())
	assert.Equal(t, "Tax", search.Query{Practice: "Tax"}.Phrase())
	assert.Equal(t, search.FallbackPhrase, search.Query{Location: "Pune"}.Phrase())
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t,
		"https://jobs.example.org/search?keyword=data+%26+AI&location=New+Delhi",
		search.BuildURL("https://jobs.example.org/search", "data & AI", "New Delhi"))
	assert.Equal(t,
		"https://jobs.example.org/search?keyword=cloud",
		search.BuildURL("https://jobs.example.org/search", "cloud", " "))
	assert.Equal(t,
		"https://jobs.example.org/search?keyword=tax&lang=en",
		search.BuildURL("https://jobs.example.org/search?lang=en", "tax", ""))
}

func TestClient_Search(t *testing.T) {
	t.Run("parses listings from the page", func(t *testing.T) {
		var gotQuery url.Values
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			gotUA = r.UserAgent()
			_, _ = w.Write([]byte(`<a class="jobTitle-link" href="/job/1">Cloud Engineer</a>`))
		}))
		defer srv.Close()

		c := search.NewClient(search.WithBaseURL(srv.URL+"/search"), search.WithUserAgent("probe/1"))
		res := c.Search(context.Background(), search.Query{Keyword: "cloud", Location: "Pune"})

		require.NoError(t, res.Err)
		require.Len(t, res.Listings, 1)
		assert.Equal(t, "Cloud Engineer", res.Listings[0].Title)
		assert.Equal(t, srv.URL+"/job/1", res.Listings[0].URL)
		assert.Equal(t, "cloud", gotQuery.Get("keyword"))
		assert.Equal(t, "Pune", gotQuery.Get("location"))
		assert.Equal(t, "probe/1", gotUA)
		assert.Equal(t, srv.URL+"/search?keyword=cloud&location=Pune", res.URL)
	})

	t.Run("timeout degrades to empty result with URL", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		c := search.NewClient(search.WithBaseURL(srv.URL), search.WithTimeout(50*time.Millisecond))
		res := c.Search(context.Background(), search.Query{Keyword: "cloud"})

		assert.Empty(t, res.Listings)
		assert.NotNil(t, res.Listings)
		assert.Equal(t, srv.URL+"?keyword=cloud", res.URL)
		require.Error(t, res.Err)
		assert.True(t, errors.Is(res.Err, context.DeadlineExceeded))
	})

	t.Run("non-200 degrades to empty result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		res := search.NewClient(search.WithBaseURL(srv.URL)).Search(context.Background(), search.Query{})
		assert.Empty(t, res.Listings)
		assert.ErrorIs(t, res.Err, search.ErrBadStatus)
		assert.Contains(t, res.URL, "keyword=campus+analyst")
	})

	t.Run("unreachable host degrades to empty result", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()

		res := search.NewClient(search.WithBaseURL(addr)).Search(context.Background(), search.Query{Keyword: "tax"})
		assert.Empty(t, res.Listings)
		assert.ErrorIs(t, res.Err, search.ErrFetch)
	})

	t.Run("exhausted limiter degrades to throttled", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		lim := rate.NewLimiter(rate.Every(time.Hour), 1)
		require.True(t, lim.Allow())
		c := search.NewClient(search.WithBaseURL(srv.URL), search.WithLimiter(lim), search.WithTimeout(20*time.Millisecond))

		res := c.Search(context.Background(), search.Query{Keyword: "tax"})
		assert.Empty(t, res.Listings)
		assert.ErrorIs(t, res.Err, search.ErrThrottled)
	})
}
