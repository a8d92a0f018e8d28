package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/kith/pkg/network"
)

// splitList turns "a, b,,c" into [a b c].
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// stringField maps a flag onto an update field: unset keeps the value, an
// empty string clears it.
func stringField(cmd *cobra.Command, name string) network.Field[string] {
	if !cmd.Flags().Changed(name) {
		return network.KeepField[string]()
	}
	v, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(v) == "" {
		return network.ClearField[string]()
	}
	return network.SetField(v)
}

func dateField(cmd *cobra.Command, name string) (network.Field[time.Time], error) {
	if !cmd.Flags().Changed(name) {
		return network.KeepField[time.Time](), nil
	}
	v, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(v) == "" {
		return network.ClearField[time.Time](), nil
	}
	t, err := parseDate(v)
	if err != nil {
		return network.Field[time.Time]{}, err
	}
	return network.SetField(t), nil
}

// reminderFlag reads --reminder. Zero or an unset flag means no reminder.
func reminderFlag(cmd *cobra.Command, name string) *int {
	days, _ := cmd.Flags().GetInt(name)
	if days == 0 {
		return nil
	}
	return &days
}

func resolvePeople(n *network.Network, queries []string) ([]network.PersonID, error) {
	ids := make([]network.PersonID, 0, len(queries))
	for _, q := range queries {
		p, err := network.ResolvePerson(n, q, network.ScopeAll)
		if err != nil {
			return nil, err
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func resolveLabels(n *network.Network, queries []string) ([]network.LabelID, error) {
	ids := make([]network.LabelID, 0, len(queries))
	for _, q := range queries {
		l, err := network.ResolveLabel(n, q, network.ScopeActive)
		if err != nil {
			return nil, err
		}
		ids = append(ids, l.ID)
	}
	return ids, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func labelNames(labels []network.RelationshipLabel) string {
	if len(labels) == 0 {
		return "none"
	}
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.Name
	}
	return strings.Join(names, ", ")
}

func printPeople(people []network.Person) {
	if len(people) == 0 {
		fmt.Println("No people found.")
		return
	}
	fmt.Println("ID | Name | Nickname | Location | Archived")
	fmt.Println("------------------------------------------------------------")
	for _, p := range people {
		name := p.Name
		if p.IsSelf {
			name += " (me)"
		}
		fmt.Printf("%s | %s | %s | %s | %t\n", p.ID, name, orDash(p.Nickname), orDash(p.Location), p.Archived)
	}
}

func printPerson(n *network.Network, p network.Person, asOf time.Time) {
	fmt.Println("Person Details:")
	fmt.Printf("ID:          %s\n", p.ID)
	fmt.Printf("Name:        %s\n", p.Name)
	fmt.Printf("Nickname:    %s\n", orDash(p.Nickname))
	fmt.Printf("Birthday:    %s\n", formatDate(p.Birthday))
	fmt.Printf("Location:    %s\n", orDash(p.Location))
	fmt.Printf("How we met:  %s\n", orDash(p.HowWeMet))
	fmt.Printf("Archived:    %t\n", p.Archived)
	fmt.Printf("Labels:      %s\n", labelNames(network.LabelsFor(n, p.ID)))

	var circles []string
	for _, c := range network.CirclesFor(n, p.ID) {
		circles = append(circles, c.Name)
	}
	fmt.Printf("Circles:     %s\n", orDash(strings.Join(circles, ", ")))

	if days, ok := network.DaysSinceInteraction(n, p.ID, asOf); ok {
		fmt.Printf("Last seen:   %s\n", sinceText(days))
	}
	if rs, ok := network.ReminderStatusFor(n, p.ID, asOf); ok {
		fmt.Printf("Reminder:    every %d days (%s)\n", rs.ReminderDays, rs.Status)
	}

	if len(p.Contacts) > 0 {
		fmt.Println("\nContacts:")
		for _, c := range p.Contacts {
			label := ""
			if c.Label != "" {
				label = " (" + c.Label + ")"
			}
			fmt.Printf("  %s | %s%s: %s\n", c.ID, network.ContactTypeName(n, c), label, c.Display())
		}
	}
	if p.Notes != "" {
		fmt.Println("\nNotes:")
		fmt.Println("------------------------------------------------------------")
		fmt.Println(p.Notes)
		fmt.Println("------------------------------------------------------------")
	}
}

func printInteraction(in network.Interaction) {
	where := in.MyLocation
	if in.TheirLocation != "" && in.TheirLocation != in.MyLocation {
		where += " / " + in.TheirLocation
	}
	fmt.Printf("%s | %s | %s | %s\n", formatDate(in.Date), in.Medium.DisplayName(), where, strings.Join(in.Topics, ", "))
	if in.Note != "" {
		fmt.Printf("    %s\n", in.Note)
	}
}

// sinceText renders a day count as "today", "yesterday" or "3 days ago".
func sinceText(days int) string {
	text := network.FormatDaysSince(days)
	if days > 1 {
		text += " ago"
	}
	return text
}
