package discovery_test

import (
	"testing"

	"github.com/okian/careerdesk/internal/adapters/search"
	"github.com/okian/careerdesk/internal/domain/discovery"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecommend(t *testing.T) {
	Convey("Given a recommender linking to the listings search", t, func() {
		build := func(phrase, location string) string {
			return search.BuildURL("https://jobs.example.org/search", phrase, location)
		}
		r := discovery.NewRecommender(build)

		Convey("When the interest matches one category", func() {
			got := r.Recommend("I like cloud", "Pune")

			Convey("Then its paths and a search link should be returned", func() {
				So(got.Paths, ShouldResemble, []string{"Cloud Engineer", "DevOps Engineer"})
				So(got.SearchURL, ShouldEqual, "https://jobs.example.org/search?keyword=I+like+cloud&location=Pune")
			})
		})

		Convey("When the interest matches several categories", func() {
			got := r.Recommend("AI and CYBERSECURITY in tax", "")

			Convey("Then paths should accumulate in category order", func() {
				So(got.Paths, ShouldResemble, []string{
					"Data Analyst (AI & Data)", "Machine Learning Engineer",
					"Cyber Security Analyst",
					"Tax Analyst",
				})
			})
		})

		Convey("When the interest matches nothing", func() {
			got := r.Recommend("gardening", "")

			Convey("Then no paths but still a search link should be returned", func() {
				So(got.Paths, ShouldBeEmpty)
				So(got.SearchURL, ShouldEqual, "https://jobs.example.org/search?keyword=gardening")
			})
		})

		Convey("When short keywords appear inside other words", func() {
			Convey("Then they should not match", func() {
				So(r.Recommend("email", "").Paths, ShouldBeEmpty)
				So(r.Recommend("shrimp", "").Paths, ShouldBeEmpty)
			})
		})
	})
}
