package network

import "time"

// Stats summarizes a network. Active and archived counts leave out the
// owner's own Person; TotalPeople includes it.
type Stats struct {
	TotalPeople        int  `json:"total_people"`
	ActivePeople       int  `json:"active_people"`
	ArchivedPeople     int  `json:"archived_people"`
	TotalRelationships int  `json:"total_relationships"`
	TotalInteractions  int  `json:"total_interactions"`
	TotalCircles       int  `json:"total_circles"`
	ActiveCircles      int  `json:"active_circles"`
	ArchivedCircles    int  `json:"archived_circles"`
	RemindersOverdue   int  `json:"reminders_overdue"`
	CustomContactTypes int  `json:"custom_contact_types"`
	NeverContacted     int  `json:"never_contacted"`
	NoReminderSet      int  `json:"no_reminder_set"`
	LongestGap         *Gap `json:"longest_gap,omitempty"`
}

// Gap is the longest silence among active people.
type Gap struct {
	PersonID PersonID `json:"person_id"`
	Name     string   `json:"name"`
	Days     int      `json:"days"`
}

func ComputeStats(n *Network, asOf time.Time) Stats {
	s := Stats{
		TotalPeople:        len(n.People),
		TotalCircles:       len(n.Circles),
		CustomContactTypes: len(n.ContactTypes),
		RemindersOverdue:   len(PeopleNeedingReminder(n, asOf)),
	}

	for personID, r := range n.Relationships {
		if personID == n.SelfID {
			continue
		}
		s.TotalRelationships++
		s.TotalInteractions += len(r.History)
	}

	for _, c := range n.Circles {
		if c.Archived {
			s.ArchivedCircles++
		} else {
			s.ActiveCircles++
		}
	}

	for _, p := range ActivePeople(n) {
		if p.IsSelf {
			continue
		}
		s.ActivePeople++
		if r, ok := n.Relationships[p.ID]; !ok || !r.HasReminder() {
			s.NoReminderSet++
		}
		days, contacted := DaysSinceInteraction(n, p.ID, asOf)
		if !contacted {
			s.NeverContacted++
			continue
		}
		if days > 0 && (s.LongestGap == nil || days > s.LongestGap.Days) {
			s.LongestGap = &Gap{PersonID: p.ID, Name: p.Name, Days: days}
		}
	}

	for _, p := range n.People {
		if p.Archived && !p.IsSelf {
			s.ArchivedPeople++
		}
	}
	return s
}
