package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/careerdesk/internal/adapters/search"
	"github.com/okian/careerdesk/internal/domain/catalog"
	"github.com/okian/careerdesk/internal/domain/eligibility"
	"github.com/okian/careerdesk/internal/domain/intent"
	"github.com/okian/careerdesk/internal/domain/params"
	"github.com/okian/careerdesk/internal/domain/practice"
	"github.com/okian/careerdesk/internal/domain/simulate"
)

const (
	disclaimer      = "Demo assistant."
	cancelText      = "Your mock interview has been cancelled (demo). You'll receive a confirmation email.\n" + disclaimer
	defaultAppID    = "DL-0000-IN"
	defaultPickTime = "the selected time"
	defaultNewTime  = "your new time"
)

func (d *Dispatcher) findRoles(ctx context.Context, raw map[string]any) string {
	p := decode[intent.FindRolesParams](ctx, d, intent.FindRoles, raw)
	roles := catalog.MockRoles(p.Practice, p.Location)

	lines := make([]string, 0, len(roles)+2)
	lines = append(lines, fmt.Sprintf("Here are %s roles in %s (demo):",
		params.OrDefault(p.Practice, params.DefaultPractice),
		params.OrDefault(p.Location, params.DefaultLocation)))
	for _, r := range roles {
		lines = append(lines, fmt.Sprintf("• %s — %s\n  %s", r.Title, r.RequisitionID, r.URL))
	}
	lines = append(lines, "\n"+disclaimer+" Not an official careers system.")
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) eligibilityCheck(ctx context.Context, raw map[string]any) string {
	p := decode[intent.EligibilityParams](ctx, d, intent.EligibilityCheck, raw)
	verdict := d.scorer.Evaluate(strings.TrimSpace(p.Degree), p.GradYear, p.ExperienceYears)

	next := "You can still explore openings or consider upskilling resources."
	if verdict == eligibility.LikelyEligible {
		next = "Would you like me to list matching roles in your city?"
	}
	return fmt.Sprintf("Result: %s.\n%s\n(%s)", verdict, next, disclaimer)
}

func (d *Dispatcher) scheduleBook() string {
	lines := []string{"Available slots (demo):"}
	for _, s := range d.slots.Next() {
		lines = append(lines, "• "+s)
	}
	lines = append(lines, "Reply with your preferred date & time.")
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) schedulePick(ctx context.Context, raw map[string]any) string {
	p := decode[intent.TimeslotParams](ctx, d, intent.SchedulePick, raw)
	ts := params.OrDefault(p.Timeslot, defaultPickTime)
	return fmt.Sprintf("Booked %s (demo). A confirmation email will be sent.\n%s", ts, disclaimer)
}

func (d *Dispatcher) reschedule(ctx context.Context, raw map[string]any) string {
	p := decode[intent.TimeslotParams](ctx, d, intent.Reschedule, raw)
	ts := params.OrDefault(p.Timeslot, defaultNewTime)
	return fmt.Sprintf("Rescheduled to %s (demo). We'll send a new confirmation.\n%s", ts, disclaimer)
}

func (d *Dispatcher) applicationStatus(ctx context.Context, raw map[string]any) string {
	p := decode[intent.ApplicationStatusParams](ctx, d, intent.ApplicationStatus, raw)
	id := params.OrDefault(p.ApplicationID, defaultAppID)
	return fmt.Sprintf("Status for %s: %s (demo).\n%s", id, simulate.Status(d.random), disclaimer)
}

func (d *Dispatcher) contactHR() string {
	return fmt.Sprintf("I've created a demo ticket: %s. A team member will reach out.\n%s", simulate.Ticket(d.random), disclaimer)
}

func (d *Dispatcher) searchRoles(ctx context.Context, raw map[string]any) string {
	p := decode[intent.SearchRolesParams](ctx, d, intent.SearchRoles, raw)
	q := search.Query{Keyword: p.Keyword, Practice: p.Practice, Location: p.Location}
	res := d.searcher.Search(ctx, q)

	if len(res.Listings) == 0 {
		return fmt.Sprintf("I couldn't load live openings for %q right now. You can browse them manually here:\n%s\n%s",
			q.Phrase(), res.URL, disclaimer)
	}

	where := ""
	if loc := strings.TrimSpace(p.Location); loc != "" {
		where = " in " + loc
	}
	lines := make([]string, 0, len(res.Listings)+3)
	lines = append(lines, fmt.Sprintf("Here are current %s openings%s:", q.Phrase(), where))
	for _, l := range res.Listings {
		lines = append(lines, fmt.Sprintf("• %s\n  %s", l.Title, l.URL))
	}
	lines = append(lines, "See all results: "+res.URL, disclaimer)
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) practiceInfo(ctx context.Context, raw map[string]any) string {
	p := decode[intent.PracticeInfoParams](ctx, d, intent.PracticeInfo, raw)
	info := practice.Lookup(p.Practice)

	lines := []string{info.Summary}
	if len(info.Links) > 0 {
		lines = append(lines, "Learn more:")
		for _, l := range info.Links {
			lines = append(lines, "• "+l)
		}
	}
	lines = append(lines, disclaimer)
	return strings.Join(lines, "\n")
}

func (d *Dispatcher) discoverRoles(ctx context.Context, raw map[string]any) string {
	p := decode[intent.DiscoverParams](ctx, d, intent.DiscoverRoles, raw)
	s := d.recommender.Recommend(params.OrDefault(p.Interest, search.FallbackPhrase), p.Location)

	if len(s.Paths) == 0 {
		return fmt.Sprintf("I couldn't match that interest to a specific path yet. Browse all openings here:\n%s\n%s",
			s.SearchURL, disclaimer)
	}
	lines := []string{"Based on your interest, you could explore:"}
	for _, path := range s.Paths {
		lines = append(lines, "• "+path)
	}
	lines = append(lines, "Browse openings: "+s.SearchURL, disclaimer)
	return strings.Join(lines, "\n")
}
