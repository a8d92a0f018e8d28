package network

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// OverdueStatus is derived on every call from the cadence and the date of
// the last interaction. It is never stored.
type OverdueStatus struct {
	Never bool `json:"never_contacted"`
	Days  int  `json:"days_overdue"`
}

// NeverContacted is the status of a relationship with no history.
func NeverContacted() OverdueStatus {
	return OverdueStatus{Never: true}
}

// DaysOverdue is days since the last interaction minus the cadence. It is
// zero or negative while the reminder is not yet due.
func DaysOverdue(days int) OverdueStatus {
	return OverdueStatus{Days: days}
}

// Due reports whether the owner should reach out.
func (s OverdueStatus) Due() bool {
	return s.Never || s.Days > 0
}

func (s OverdueStatus) String() string {
	if s.Never {
		return "never contacted"
	}
	if s.Days == 1 {
		return "1 day overdue"
	}
	return fmt.Sprintf("%d days overdue", s.Days)
}

func (s OverdueStatus) compare(o OverdueStatus) int {
	switch {
	case s.Never && o.Never:
		return 0
	case s.Never:
		return -1
	case o.Never:
		return 1
	}
	return cmp.Compare(o.Days, s.Days)
}

// ReminderStatus is one person's reminder state as of a date.
type ReminderStatus struct {
	Person       Person        `json:"person"`
	ReminderDays int           `json:"reminder_days"`
	DaysSince    int           `json:"days_since"`
	Contacted    bool          `json:"contacted"`
	Status       OverdueStatus `json:"status"`
}

// ReminderStatusFor evaluates someone's reminder. It reports false when
// the person is unknown, has no relationship, or has no cadence set.
func ReminderStatusFor(n *Network, personID PersonID, asOf time.Time) (ReminderStatus, bool) {
	p, ok := n.People[personID]
	if !ok {
		return ReminderStatus{}, false
	}
	r, ok := n.Relationships[personID]
	if !ok || !r.HasReminder() {
		return ReminderStatus{}, false
	}

	rs := ReminderStatus{Person: p, ReminderDays: r.ReminderDays}
	rs.DaysSince, rs.Contacted = DaysSinceInteraction(n, personID, asOf)
	if rs.Contacted {
		rs.Status = DaysOverdue(rs.DaysSince - r.ReminderDays)
	} else {
		rs.Status = NeverContacted()
	}
	return rs, true
}

// AllReminders lists every active person with a cadence set, most urgent
// first.
func AllReminders(n *Network, asOf time.Time) []ReminderStatus {
	return reminders(n, asOf, func(ReminderStatus) bool { return true })
}

// PeopleNeedingReminder is AllReminders restricted to those due: never
// contacted or strictly overdue.
func PeopleNeedingReminder(n *Network, asOf time.Time) []ReminderStatus {
	return reminders(n, asOf, func(rs ReminderStatus) bool { return rs.Status.Due() })
}

func reminders(n *Network, asOf time.Time, keep func(ReminderStatus) bool) []ReminderStatus {
	var out []ReminderStatus
	for personID := range n.Relationships {
		rs, ok := ReminderStatusFor(n, personID, asOf)
		if !ok || rs.Person.Archived || !keep(rs) {
			continue
		}
		out = append(out, rs)
	}
	slices.SortFunc(out, func(a, b ReminderStatus) int {
		return cmp.Or(a.Status.compare(b.Status), byName(a.Person.Name, b.Person.Name), a.Person.ID.Compare(b.Person.ID))
	})
	return out
}
