// Package intent declares the closed set of intents the webhook fulfils and
// the parameters each one accepts.
package intent

// Kind identifies a supported intent. The zero value is Unknown.
type Kind int

// Supported intents. Keep names in sync with displayNames.
const (
	Unknown Kind = iota
	FindRoles
	EligibilityCheck
	ScheduleBook
	SchedulePick
	Reschedule
	CancelInterview
	ApplicationStatus
	ContactHR
	SearchRoles
	PracticeInfo
	DiscoverRoles
)

// UnknownName is used when a request carries no intent at all.
const UnknownName = "UNKNOWN"

// displayNames are the exact intent display names configured in the agent.
var displayNames = map[Kind]string{
	FindRoles:         "Find Roles",
	EligibilityCheck:  "Eligibility Check",
	ScheduleBook:      "Schedule Interview (Book)",
	SchedulePick:      "Schedule Interview (Pick Slot)",
	Reschedule:        "Reschedule Interview",
	CancelInterview:   "Cancel Interview",
	ApplicationStatus: "Application Status",
	ContactHR:         "Contact HR / Handoff",
	SearchRoles:       "Search Roles",
	PracticeInfo:      "Practice Info",
	DiscoverRoles:     "Discover Roles",
}

var byName = func() map[string]Kind {
	m := make(map[string]Kind, len(displayNames))
	for k, n := range displayNames {
		m[n] = k
	}
	return m
}()

// Parse maps a display name to its Kind. Matching is exact: no trimming, no
// case folding, no partial matches.
func Parse(name string) (Kind, bool) {
	k, ok := byName[name]
	return k, ok
}

// String returns the display name, or UnknownName.
func (k Kind) String() string {
	if n, ok := displayNames[k]; ok {
		return n
	}
	return UnknownName
}

// All returns every supported Kind in declaration order.
func All() []Kind {
	out := make([]Kind, 0, len(displayNames))
	for k := FindRoles; k <= DiscoverRoles; k++ {
		out = append(out, k)
	}
	return out
}
