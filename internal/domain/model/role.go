// Package model contains domain models passed between layers.
package model

// Provenance tells where a RoleListing came from.
type Provenance string

const (
	// ProvenanceSynthetic listings come from the static demo catalog.
	ProvenanceSynthetic Provenance = "synthetic"
	// ProvenanceScraped listings were extracted from the external listings page.
	ProvenanceScraped Provenance = "scraped"
)

// RoleListing is one open role shown to the user.
type RoleListing struct {
	Title         string     // display title
	Location      string     // city; empty for scraped listings
	RequisitionID string     // set for synthetic listings only
	URL           string     // apply URL (synthetic) or absolute listing URL (scraped)
	Provenance    Provenance // synthetic or scraped
}

// PracticeSummary describes a business-service line.
type PracticeSummary struct {
	Category string   // matched keyword category, "" for the generic overview
	Summary  string   // descriptive text
	Links    []string // reference URLs; may be empty
}
