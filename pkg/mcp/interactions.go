package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/session"
)

func (t *tools) registerInteractionTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("log_interaction",
		mcp.WithDescription("Records that you met or talked with one or more people."),
		mcp.WithString("people", mcp.Required(), mcp.Description("Comma-separated names of everyone involved.")),
		mcp.WithString("medium", mcp.DefaultString("InPerson"), mcp.Enum("InPerson", "Text", "PhoneCall", "VideoCall", "SocialMedia"), mcp.Description("How the interaction happened.")),
		mcp.WithString("location", mcp.Required(), mcp.Description("Where you were.")),
		mcp.WithString("their_location", mcp.Description("Where they were, for remote interactions only.")),
		mcp.WithString("topics", mcp.Required(), mcp.Description("Comma-separated topics discussed or activities done.")),
		mcp.WithString("note", mcp.Description("Optional extra context.")),
		mcp.WithString("date", mcp.Description("YYYY-MM-DD. Defaults to today.")),
	), t.logInteraction)

	s.AddTool(mcp.NewTool("interaction_history",
		mcp.WithDescription("Lists interactions with a person, most recent first."),
		mcp.WithString("person", mcp.Required(), mcp.Description("Person to show history for.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of interactions to return.")),
	), t.interactionHistory)

	s.AddTool(mcp.NewTool("interactions_in_range",
		mcp.WithDescription("Lists every interaction between two dates, inclusive, most recent first."),
		mcp.WithString("from", mcp.Required(), mcp.Description("First day as YYYY-MM-DD.")),
		mcp.WithString("to", mcp.Description("Last day as YYYY-MM-DD. Defaults to today.")),
	), t.interactionsInRange)

	s.AddTool(mcp.NewTool("reminders",
		mcp.WithDescription("Shows contact reminders, most overdue first."),
		mcp.WithBoolean("due_only", mcp.Description("Only people who are overdue or never contacted. Defaults to true.")),
	), t.reminders)

	s.AddTool(mcp.NewTool("stale_contacts",
		mcp.WithDescription("Lists people you have a relationship with but have not contacted in a number of days."),
		mcp.WithNumber("days", mcp.Required(), mcp.Description("Minimum days since last contact.")),
	), t.staleContacts)

	s.AddTool(mcp.NewTool("network_stats",
		mcp.WithDescription("Summarizes the network: people, relationships, interactions, circles and reminders."),
	), t.networkStats)
}

func (t *tools) logInteraction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	if len(a.list("people")) == 0 {
		return mcp.NewToolResultError("'people' parameter is required."), nil
	}
	mediumName, _ := a.str("medium")
	medium := network.InPerson
	if mediumName != "" {
		var err error
		if medium, err = network.ParseMedium(mediumName); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	date, err := a.date("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if date.IsZero() {
		date = t.today()
	}
	location, _ := a.str("location")
	theirLocation, _ := a.str("their_location")
	note, _ := a.str("note")
	topics := a.list("topics")

	views, err := session.Do(ctx, t.sess, "log_interaction", func(n *network.Network) (*network.Network, []interactionView, error) {
		ids, err := a.people(n, "people")
		if err != nil {
			return nil, nil, err
		}
		next := n
		var out []interactionView
		for _, id := range ids {
			var in network.Interaction
			if medium == network.InPerson {
				next, in, err = network.LogInPerson(next, id, network.InPersonLog{
					Location: location, Topics: topics, Note: note, Date: date,
				})
			} else {
				next, in, err = network.LogRemote(next, id, network.RemoteLog{
					Medium: medium, MyLocation: location, TheirLocation: theirLocation,
					Topics: topics, Note: note, Date: date,
				})
			}
			if err != nil {
				return nil, nil, err
			}
			p, _ := network.GetPerson(next, id)
			out = append(out, viewInteraction(p.Name, in))
		}
		return next, out, nil
	})
	if err != nil {
		return errorResult("log interaction", err)
	}
	return jsonResult(views)
}

func (t *tools) interactionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	limit, _, err := a.number("limit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n := t.sess.Network()
	p, err := a.person(n, "person")
	if err != nil {
		return errorResult("find person", err)
	}
	history := network.InteractionsWith(n, p.ID)
	if limit > 0 && limit < len(history) {
		history = history[:limit]
	}
	out := make([]interactionView, 0, len(history))
	for _, in := range history {
		out = append(out, viewInteraction("", in))
	}
	return jsonResult(out)
}

func (t *tools) interactionsInRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	if _, err := a.required("from"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := a.date("from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := a.date("to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if to.IsZero() {
		to = t.today()
	}
	if to.Before(from) {
		return mcp.NewToolResultError(fmt.Sprintf("'to' (%s) is before 'from' (%s)", formatDate(to), formatDate(from))), nil
	}

	found := network.InteractionsInRange(t.sess.Network(), from, to)
	out := make([]interactionView, 0, len(found))
	for _, pi := range found {
		out = append(out, viewInteraction(pi.Person.Name, pi.Interaction))
	}
	return jsonResult(out)
}

func (t *tools) reminders(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := t.sess.Network()
	asOf := t.today()
	var statuses []network.ReminderStatus
	if argsOf(request).boolOr("due_only", true) {
		statuses = network.PeopleNeedingReminder(n, asOf)
	} else {
		statuses = network.AllReminders(n, asOf)
	}

	out := make([]reminderView, 0, len(statuses))
	for _, rs := range statuses {
		v := reminderView{
			Person:       rs.Person.Name,
			ReminderDays: rs.ReminderDays,
			Status:       rs.Status.String(),
		}
		if rs.Contacted {
			v.LastContact = sinceText(rs.DaysSince)
		}
		if !rs.Status.Due() {
			v.Status = "on track"
		}
		out = append(out, v)
	}
	return jsonResult(out)
}

func (t *tools) staleContacts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days, ok, err := argsOf(request).number("days")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !ok || days < 0 {
		return mcp.NewToolResultError("'days' parameter is required and must not be negative."), nil
	}

	stale := network.NotContactedIn(t.sess.Network(), days, t.today())
	out := make([]staleView, 0, len(stale))
	for _, sc := range stale {
		v := staleView{Person: sc.Person.Name, LastContact: "never"}
		if sc.Contacted {
			since := sc.DaysSince
			v.DaysSince = &since
			v.LastContact = sinceText(since)
		}
		out = append(out, v)
	}
	return jsonResult(out)
}

func (t *tools) networkStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(network.ComputeStats(t.sess.Network(), t.today()))
}
