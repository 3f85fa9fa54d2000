package params_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/okian/careerdesk/internal/domain/params"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseYear(t *testing.T) {
	Convey("Given raw graduation year values", t, func() {
		Convey("When the value starts with four digits", func() {
			Convey("Then the leading digits should be returned", func() {
				for _, raw := range []any{"2025", "2025-06-01T12:00:00+05:30", 2025, 2025.0, int64(2025), json.Number("2025"), " 2025 ", "20251"} {
					year := params.ParseYear(raw)
					So(year, ShouldNotBeNil)
					So(*year, ShouldEqual, 2025)
				}
			})
		})

		Convey("When the value is missing or malformed", func() {
			Convey("Then nil should be returned without panicking", func() {
				for _, raw := range []any{nil, "", "0", 0, "soon", "25", "class of 2025", -2025, true, map[string]any{"year": 2025}, []any{"2025"}, math.NaN()} {
					So(func() { params.ParseYear(raw) }, ShouldNotPanic)
					So(params.ParseYear(raw), ShouldBeNil)
				}
			})
		})
	})
}

func TestParseExperience(t *testing.T) {
	Convey("Given raw experience values", t, func() {
		cases := []struct {
			raw   any
			years float64
			ok    bool
		}{
			{nil, 0, true},
			{"", 0, true},
			{1, 1, true},
			{1.5, 1.5, true},
			{"2", 2, true},
			{"2.5 years", 2.5, true},
			{" .5", 0.5, true},
			{"-3", 0, true},
			{json.Number("4"), 4, true},
			{"abc", 0, false},
			{"years: 3", 0, false},
			{math.NaN(), 0, false},
			{math.Inf(1), 0, false},
			{true, 0, false},
			{[]any{1}, 0, false},
		}

		Convey("Then each should normalize to the documented value", func() {
			for _, c := range cases {
				years, ok := params.ParseExperience(c.raw)
				So(ok, ShouldEqual, c.ok)
				So(years, ShouldAlmostEqual, c.years)
			}
		})
	})
}

func TestText(t *testing.T) {
	Convey("Given loose scalar values", t, func() {
		So(params.Text(nil), ShouldEqual, "")
		So(params.Text("  Pune "), ShouldEqual, "Pune")
		So(params.Text(2025.0), ShouldEqual, "2025")
		So(params.Text(1.25), ShouldEqual, "1.25")
		So(params.Text(7), ShouldEqual, "7")
		So(params.Text(json.Number("12")), ShouldEqual, "12")
		So(params.Text(map[string]any{}), ShouldEqual, "")
		So(params.Text(math.Inf(-1)), ShouldEqual, "")
	})
}

func TestOrDefault(t *testing.T) {
	Convey("Given display defaults", t, func() {
		So(params.OrDefault("", params.DefaultPractice), ShouldEqual, "Consulting")
		So(params.OrDefault("   ", params.DefaultLocation), ShouldEqual, "Bengaluru")
		So(params.OrDefault(" Tax ", params.DefaultPractice), ShouldEqual, "Tax")
	})
}
