// Package practice is a read-only knowledge base of business practices.
package practice

import (
	"strings"

	"github.com/okian/careerdesk/internal/domain/model"
)

// Overview is returned when no category matches.
const Overview = "Our practices span Consulting, Risk Advisory, Audit & Assurance, Tax, Technology and Financial Advisory. " +
	"Tell me which one interests you and I can share more."

// category is matched by lowercase substring, in declaration order.
type category struct {
	keyword string
	name    string
	summary string
}

var categories = []category{
	{
		keyword: "consulting",
		name:    "Consulting",
		summary: "Consulting helps clients solve strategy, operations, technology and human-capital problems end to end.",
	},
	{
		keyword: "risk",
		name:    "Risk Advisory",
		summary: "Risk Advisory helps organisations manage regulatory, cyber, operational and financial risk.",
	},
	{
		keyword: "audit",
		name:    "Audit & Assurance",
		summary: "Audit & Assurance provides independent audits and assurance over financial statements and controls.",
	},
	{
		keyword: "tax",
		name:    "Tax",
		summary: "Tax advises on direct and indirect tax, transfer pricing and global mobility.",
	},
	{
		keyword: "technology",
		name:    "Technology",
		summary: "Technology builds cloud, data, AI and enterprise-application solutions for clients.",
	},
	{
		keyword: "financial",
		name:    "Financial Advisory",
		summary: "Financial Advisory covers M&A, restructuring, valuation and forensic services.",
	},
}

// links are keyed by the exact practice name.
var links = map[string][]string{
	"Consulting":         {"https://careers.example.com/practices/consulting"},
	"Risk Advisory":      {"https://careers.example.com/practices/risk-advisory"},
	"Audit & Assurance":  {"https://careers.example.com/practices/audit-assurance"},
	"Tax":                {"https://careers.example.com/practices/tax"},
	"Technology":         {"https://careers.example.com/practices/technology"},
	"Financial Advisory": {"https://careers.example.com/practices/financial-advisory"},
}

// Lookup returns the summary for name. The category is found by
// case-insensitive substring match (first wins); links only by the exact
// trimmed name. Unknown names get Overview and no links.
func Lookup(name string) model.PracticeSummary {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)

	out := model.PracticeSummary{Summary: Overview}
	if lower != "" {
		for _, c := range categories {
			if strings.Contains(lower, c.keyword) {
				out.Category = c.name
				out.Summary = c.summary
				break
			}
		}
	}
	if l, ok := links[trimmed]; ok {
		out.Links = append([]string(nil), l...)
	}
	return out
}
