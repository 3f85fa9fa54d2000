// Package catalog builds the static mock role listings.
package catalog

import (
	"github.com/okian/careerdesk/internal/domain/model"
	"github.com/okian/careerdesk/internal/domain/params"
)

// applyBase prefixes every mock requisition's apply URL.
const applyBase = "https://careers.example.com/apply/"

// template is one fixed mock posting. Requisition IDs do not vary with
// practice or location.
type template struct {
	suffix string
	reqID  string
}

var templates = []template{
	{suffix: " Analyst (Campus)", reqID: "R-CA-1001"},
	{suffix: " Business Analyst", reqID: "R-BA-2033"},
	{suffix: " Associate", reqID: "R-AS-3177"},
}

// MockRoles returns exactly three synthetic listings for practice and
// location, applying the display defaults to blank values.
func MockRoles(practice, location string) []model.RoleListing {
	p := params.OrDefault(practice, params.DefaultPractice)
	loc := params.OrDefault(location, params.DefaultLocation)

	out := make([]model.RoleListing, 0, len(templates))
	for _, t := range templates {
		out = append(out, model.RoleListing{
			Title:         p + t.suffix,
			Location:      loc,
			RequisitionID: t.reqID,
			URL:           applyBase + t.reqID,
			Provenance:    model.ProvenanceSynthetic,
		})
	}
	return out
}
