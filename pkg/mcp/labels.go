package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/session"
)

func (t *tools) registerLabelTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("list_labels",
		mcp.WithDescription("Lists relationship labels such as friend or coworker, with how many people carry each."),
		mcp.WithString("scope", mcp.Enum("active", "archived", "all"), mcp.DefaultString("active"), mcp.Description("Which labels to include.")),
	), t.listLabels)

	s.AddTool(mcp.NewTool("create_label",
		mcp.WithDescription("Creates a relationship label. Names are unique regardless of case."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Label name.")),
	), t.createLabel)

	s.AddTool(mcp.NewTool("rename_label",
		mcp.WithDescription("Renames a relationship label."),
		mcp.WithString("label", mcp.Required(), mcp.Description("Current label name.")),
		mcp.WithString("new_name", mcp.Required(), mcp.Description("New label name.")),
	), t.renameLabel)

	s.AddTool(mcp.NewTool("archive_label",
		mcp.WithDescription("Archives or restores a relationship label."),
		mcp.WithString("label", mcp.Required(), mcp.Description("Label name.")),
		mcp.WithBoolean("archived", mcp.Description("false restores the label. Defaults to true.")),
	), t.archiveLabel)

	s.AddTool(mcp.NewTool("set_relationship",
		mcp.WithDescription("Creates or replaces your relationship with a person: its labels and contact reminder."),
		mcp.WithString("person", mcp.Required(), mcp.Description("Person the relationship is with.")),
		mcp.WithString("labels", mcp.Description("Comma-separated label names. Omit or leave empty for none.")),
		mcp.WithNumber("reminder_days", mcp.Description("Remind after this many days without contact. Omit or 0 for no reminder.")),
	), t.setRelationship)

	s.AddTool(mcp.NewTool("change_labels",
		mcp.WithDescription("Adds and removes labels on an existing relationship."),
		mcp.WithString("person", mcp.Required(), mcp.Description("Person the relationship is with.")),
		mcp.WithString("add", mcp.Description("Comma-separated label names to add.")),
		mcp.WithString("remove", mcp.Description("Comma-separated label names to remove.")),
	), t.changeLabels)

	s.AddTool(mcp.NewTool("set_reminder",
		mcp.WithDescription("Changes the contact reminder on an existing relationship."),
		mcp.WithString("person", mcp.Required(), mcp.Description("Person the relationship is with.")),
		mcp.WithNumber("days", mcp.Description("Reminder cadence in days. Omit or 0 to clear.")),
	), t.setReminder)

	s.AddTool(mcp.NewTool("people_with_label",
		mcp.WithDescription("Lists active people whose relationship carries a label."),
		mcp.WithString("label", mcp.Required(), mcp.Description("Label name.")),
	), t.peopleWithLabel)
}

func (t *tools) listLabels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope, err := argsOf(request).scope()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n := t.sess.Network()
	labels := scoped(scope, network.ActiveLabels(n), network.ArchivedLabels(n))
	out := make([]map[string]any, 0, len(labels))
	for _, l := range labels {
		out = append(out, map[string]any{
			"id":       l.ID.String(),
			"name":     l.Name,
			"archived": l.Archived,
			"people":   len(network.PeopleWithLabel(n, l.ID)),
		})
	}
	return jsonResult(out)
}

func (t *tools) createLabel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := argsOf(request).required("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	label, err := session.Do(ctx, t.sess, "create_label", func(n *network.Network) (*network.Network, network.RelationshipLabel, error) {
		return network.CreateLabel(n, name)
	})
	if err != nil {
		return errorResult("create label", err)
	}
	return jsonResult(label)
}

func (t *tools) renameLabel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	newName, err := a.required("new_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	label, err := session.Do(ctx, t.sess, "rename_label", func(n *network.Network) (*network.Network, network.RelationshipLabel, error) {
		l, err := a.label(n, "label", network.ScopeAll)
		if err != nil {
			return nil, network.RelationshipLabel{}, err
		}
		return network.UpdateLabel(n, l.ID, newName)
	})
	if err != nil {
		return errorResult("rename label", err)
	}
	return jsonResult(label)
}

func (t *tools) archiveLabel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	archived := a.boolOr("archived", true)
	var name string
	err := t.sess.Apply(ctx, "archive_label", func(n *network.Network) (*network.Network, error) {
		l, err := a.label(n, "label", network.ScopeAll)
		if err != nil {
			return nil, err
		}
		name = l.Name
		if archived {
			return network.ArchiveLabel(n, l.ID)
		}
		return network.UnarchiveLabel(n, l.ID)
	})
	if err != nil {
		return errorResult("archive label", err)
	}
	if archived {
		return mcp.NewToolResultText(fmt.Sprintf("Label '%s' archived.", name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Label '%s' restored.", name)), nil
}

// reminderArg reads an optional cadence where 0 or absent means none.
func reminderArg(a args, key string) (*int, error) {
	days, ok, err := a.number(key)
	if err != nil || !ok || days == 0 {
		return nil, err
	}
	return &days, nil
}

func (t *tools) setRelationship(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	reminder, err := reminderArg(a, "reminder_days")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view, err := session.Do(ctx, t.sess, "set_relationship", func(n *network.Network) (*network.Network, relationshipView, error) {
		p, err := a.person(n, "person")
		if err != nil {
			return nil, relationshipView{}, err
		}
		labels, err := a.labels(n, "labels")
		if err != nil {
			return nil, relationshipView{}, err
		}
		next, r, err := network.SetRelationship(n, p.ID, labels, reminder)
		if err != nil {
			return nil, relationshipView{}, err
		}
		return next, viewRelationship(next, r), nil
	})
	if err != nil {
		return errorResult("set relationship", err)
	}
	return jsonResult(view)
}

func (t *tools) changeLabels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	if len(a.list("add")) == 0 && len(a.list("remove")) == 0 {
		return mcp.NewToolResultError("No label changes provided (use add or remove)."), nil
	}
	view, err := session.Do(ctx, t.sess, "change_labels", func(n *network.Network) (*network.Network, relationshipView, error) {
		p, err := a.person(n, "person")
		if err != nil {
			return nil, relationshipView{}, err
		}
		add, err := a.labels(n, "add")
		if err != nil {
			return nil, relationshipView{}, err
		}
		remove, err := a.labels(n, "remove")
		if err != nil {
			return nil, relationshipView{}, err
		}
		next, r, err := network.AddLabels(n, p.ID, add)
		if err != nil {
			return nil, relationshipView{}, err
		}
		next, r, err = network.RemoveLabels(next, p.ID, remove)
		if err != nil {
			return nil, relationshipView{}, err
		}
		return next, viewRelationship(next, r), nil
	})
	if err != nil {
		return errorResult("change labels", relationshipHint(err))
	}
	return jsonResult(view)
}

func (t *tools) setReminder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	days, err := reminderArg(a, "days")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view, err := session.Do(ctx, t.sess, "set_reminder", func(n *network.Network) (*network.Network, relationshipView, error) {
		p, err := a.person(n, "person")
		if err != nil {
			return nil, relationshipView{}, err
		}
		next, r, err := network.SetReminder(n, p.ID, days)
		if err != nil {
			return nil, relationshipView{}, err
		}
		return next, viewRelationship(next, r), nil
	})
	if err != nil {
		return errorResult("set reminder", relationshipHint(err))
	}
	return jsonResult(view)
}

func (t *tools) peopleWithLabel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := t.sess.Network()
	l, err := argsOf(request).label(n, "label", network.ScopeAll)
	if err != nil {
		return errorResult("find label", err)
	}
	return jsonResult(summarizeAll(n, network.PeopleWithLabel(n, l.ID)))
}

// relationshipHint points callers at set_relationship when the person has
// no relationship to change yet.
func relationshipHint(err error) error {
	if network.IsMissingRelationship(err) {
		return fmt.Errorf("%w; use set_relationship to create it first", err)
	}
	return err
}
