// Package discovery suggests role paths for a free-text interest.
package discovery

import (
	"regexp"
	"strings"
)

// category contributes its paths when pattern matches the interest.
type category struct {
	pattern *regexp.Regexp
	paths   []string
}

// categories are tested independently and in order; every match appends.
var categories = []category{
	{
		pattern: regexp.MustCompile(`(?i)\b(data|analytics|ai|artificial intelligence|machine learning|ml|genai)\b`),
		paths:   []string{"Data Analyst (AI & Data)", "Machine Learning Engineer"},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(cloud|devops|aws|azure|gcp|kubernetes|sre)\b`),
		paths:   []string{"Cloud Engineer", "DevOps Engineer"},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(cyber|security|infosec|soc)`),
		paths:   []string{"Cyber Security Analyst"},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(erp|sap|oracle|workday|salesforce)\b`),
		paths:   []string{"SAP / ERP Consultant", "Enterprise Applications Analyst"},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(software|developer|coding|programming|full.?stack|backend|frontend|java|python|golang)\b`),
		paths:   []string{"Software Engineer", "Full Stack Developer"},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(audit|assurance|accounting)`),
		paths:   []string{"Audit & Assurance Associate"},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(risk|compliance|regulatory|forensic)`),
		paths:   []string{"Risk Advisory Analyst"},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(tax|gst|transfer pricing)`),
		paths:   []string{"Tax Analyst"},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b(strategy|consulting|management|hr|human capital|people|change)\b`),
		paths:   []string{"Strategy Consultant", "Human Capital Analyst"},
	},
}

// URLBuilder builds a listings search URL for a phrase and optional location.
type URLBuilder func(phrase, location string) string

// Suggestion is the result of Recommend. Paths may be empty; SearchURL is
// always set.
type Suggestion struct {
	Paths     []string
	SearchURL string
}

// Recommender matches interests against the fixed categories.
type Recommender struct {
	buildURL URLBuilder
}

// NewRecommender creates a Recommender that links to searches built by b.
func NewRecommender(b URLBuilder) *Recommender {
	return &Recommender{buildURL: b}
}

// Recommend returns the paths of every matching category in category order,
// plus a search link for the raw interest.
func (r *Recommender) Recommend(interest, location string) Suggestion {
	trimmed := strings.TrimSpace(interest)
	paths := make([]string, 0, 4)
	if trimmed != "" {
		for _, c := range categories {
			if c.pattern.MatchString(trimmed) {
				paths = append(paths, c.paths...)
			}
		}
	}
	return Suggestion{
		Paths:     paths,
		SearchURL: r.buildURL(trimmed, location),
	}
}
