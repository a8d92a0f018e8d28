package mcp

import (
	"time"

	"github.com/unowned-ai/kith/pkg/network"
)

// Views are the JSON shapes returned to the model. Ids are kept so a
// follow-up call can be unambiguous; names are resolved for readability.

type personSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Nickname string   `json:"nickname,omitempty"`
	Labels   []string `json:"labels,omitempty"`
	IsSelf   bool     `json:"is_self,omitempty"`
	Archived bool     `json:"archived,omitempty"`
}

type personDetail struct {
	personSummary
	HowWeMet        string        `json:"how_we_met,omitempty"`
	Birthday        string        `json:"birthday,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Location        string        `json:"location,omitempty"`
	Contacts        []contactView `json:"contacts,omitempty"`
	ReminderDays    int           `json:"reminder_days,omitempty"`
	Circles         []string      `json:"circles,omitempty"`
	LastInteraction string        `json:"last_interaction,omitempty"`
	SinceLast       string        `json:"since_last,omitempty"`
}

type contactView struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

type interactionView struct {
	ID            string   `json:"id"`
	Person        string   `json:"person,omitempty"`
	Date          string   `json:"date"`
	Medium        string   `json:"medium"`
	MyLocation    string   `json:"my_location"`
	TheirLocation string   `json:"their_location,omitempty"`
	Topics        []string `json:"topics"`
	Note          string   `json:"note,omitempty"`
}

type circleView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members"`
	Archived    bool     `json:"archived,omitempty"`
}

type relationshipView struct {
	Person       string   `json:"person"`
	Labels       []string `json:"labels"`
	ReminderDays int      `json:"reminder_days,omitempty"`
	Interactions int      `json:"interactions"`
}

type reminderView struct {
	Person       string `json:"person"`
	ReminderDays int    `json:"reminder_days"`
	LastContact  string `json:"last_contact,omitempty"`
	Status       string `json:"status"`
}

type staleView struct {
	Person      string `json:"person"`
	LastContact string `json:"last_contact"`
	DaysSince   *int   `json:"days_since,omitempty"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// sinceText renders a gap such as "3 weeks ago".
func sinceText(days int) string {
	text := network.FormatDaysSince(days)
	if days <= 1 {
		return text
	}
	return text + " ago"
}

func labelNames(labels []network.RelationshipLabel) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return names
}

func summarize(n *network.Network, p network.Person) personSummary {
	s := personSummary{
		ID:       p.ID.String(),
		Name:     p.Name,
		Nickname: p.Nickname,
		IsSelf:   p.IsSelf,
		Archived: p.Archived,
	}
	if labels := network.LabelsFor(n, p.ID); len(labels) > 0 {
		s.Labels = labelNames(labels)
	}
	return s
}

func summarizeAll(n *network.Network, people []network.Person) []personSummary {
	out := make([]personSummary, 0, len(people))
	for _, p := range people {
		out = append(out, summarize(n, p))
	}
	return out
}

func detail(n *network.Network, p network.Person, asOf time.Time) personDetail {
	d := personDetail{
		personSummary: summarize(n, p),
		HowWeMet:      p.HowWeMet,
		Birthday:      formatDate(p.Birthday),
		Notes:         p.Notes,
		Location:      p.Location,
	}
	for _, c := range p.Contacts {
		d.Contacts = append(d.Contacts, viewContact(n, c))
	}
	if r, ok := network.GetRelationship(n, p.ID); ok {
		d.ReminderDays = r.ReminderDays
	}
	for _, c := range network.CirclesFor(n, p.ID) {
		d.Circles = append(d.Circles, c.Name)
	}
	if last, ok := network.LastInteraction(n, p.ID); ok {
		d.LastInteraction = formatDate(last.Date)
		d.SinceLast = sinceText(network.DaysBetween(last.Date, asOf))
	}
	return d
}

func viewContact(n *network.Network, c network.ContactEntry) contactView {
	return contactView{
		ID:    c.ID.String(),
		Type:  network.ContactTypeName(n, c),
		Value: c.Display(),
		Label: c.Label,
	}
}

func viewInteraction(person string, in network.Interaction) interactionView {
	return interactionView{
		ID:            in.ID.String(),
		Person:        person,
		Date:          formatDate(in.Date),
		Medium:        in.Medium.DisplayName(),
		MyLocation:    in.MyLocation,
		TheirLocation: in.TheirLocation,
		Topics:        in.Topics,
		Note:          in.Note,
	}
}

func viewCircle(n *network.Network, c network.Circle) circleView {
	v := circleView{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Members:     []string{},
		Archived:    c.Archived,
	}
	for _, p := range network.CircleMembers(n, c.ID) {
		v.Members = append(v.Members, p.Name)
	}
	return v
}

func viewRelationship(n *network.Network, r network.Relationship) relationshipView {
	name := r.PersonID.String()
	if p, ok := network.GetPerson(n, r.PersonID); ok {
		name = p.Name
	}
	return relationshipView{
		Person:       name,
		Labels:       labelNames(network.LabelsFor(n, r.PersonID)),
		ReminderDays: r.ReminderDays,
		Interactions: len(r.History),
	}
}
