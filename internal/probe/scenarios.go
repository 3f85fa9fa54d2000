package probe

// helpPrefix is the start of the reply to any unsupported intent.
const helpPrefix = "not sure how to help"

// DefaultScenarios covers every supported intent plus one unknown intent.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{
			Name:       "find-roles",
			Intent:     "Find Roles",
			Parameters: map[string]any{"practice": "Technology", "location": "Pune"},
			Expect:     []string{"Here are Technology roles in Pune (demo):", "R-CA-1001"},
		},
		{
			Name:       "eligibility",
			Intent:     "Eligibility Check",
			Parameters: map[string]any{"degree": "MBA", "grad_year": "2001", "experience_years": 0},
			Expect:     []string{"Result: Borderline."},
		},
		{
			Name:   "schedule-book",
			Intent: "Schedule Interview (Book)",
			Expect: []string{"Available slots (demo):", "Reply with your preferred date & time."},
		},
		{
			Name:       "schedule-pick",
			Intent:     "Schedule Interview (Pick Slot)",
			Parameters: map[string]any{"timeslot": "2025-09-05T15:00:00+05:30"},
			Expect:     []string{"Booked 2025-09-05T15:00:00+05:30 (demo)."},
		},
		{
			Name:   "reschedule",
			Intent: "Reschedule Interview",
			Expect: []string{"Rescheduled to your new time (demo)."},
		},
		{
			Name:   "cancel",
			Intent: "Cancel Interview",
			Expect: []string{"Your mock interview has been cancelled (demo)."},
		},
		{
			Name:       "application-status",
			Intent:     "Application Status",
			Parameters: map[string]any{"application_id": "DL-4821-IN"},
			Expect:     []string{"Status for DL-4821-IN:"},
		},
		{
			Name:   "contact-hr",
			Intent: "Contact HR / Handoff",
			Expect: []string{"I've created a demo ticket: HR-"},
		},
		{
			Name:       "search-roles",
			Intent:     "Search Roles",
			Parameters: map[string]any{"keyword": "analyst", "location": "Mumbai"},
			Expect:     []string{"openings", "keyword=analyst"},
		},
		{
			Name:       "practice-info",
			Intent:     "Practice Info",
			Parameters: map[string]any{"practice": "Tax"},
			Expect:     []string{"Tax advises", "Learn more:"},
		},
		{
			Name:       "discover-roles",
			Intent:     "Discover Roles",
			Parameters: map[string]any{"interest": "cloud and devops"},
			Expect:     []string{"Cloud Engineer", "Browse openings:"},
		},
		{
			Name:   "unknown",
			Intent: "Small Talk",
			Expect: []string{helpPrefix},
		},
	}
}
