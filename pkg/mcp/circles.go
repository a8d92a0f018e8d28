package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/session"
)

func (t *tools) registerCircleTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("list_circles",
		mcp.WithDescription("Lists circles (named groups of people) with their members."),
		mcp.WithString("scope", mcp.Enum("active", "archived", "all"), mcp.DefaultString("active"), mcp.Description("Which circles to include.")),
	), t.listCircles)

	s.AddTool(mcp.NewTool("create_circle",
		mcp.WithDescription("Creates a circle."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Circle name.")),
		mcp.WithString("description", mcp.Description("Optional description.")),
		mcp.WithString("members", mcp.Description("Optional comma-separated names of people to include.")),
	), t.createCircle)

	s.AddTool(mcp.NewTool("update_circle",
		mcp.WithDescription("Renames a circle, changes its description, or adds and removes members."),
		mcp.WithString("circle", mcp.Required(), mcp.Description("Circle name.")),
		mcp.WithString("new_name", mcp.Description("New circle name.")),
		mcp.WithString("description", mcp.Description("New description. Empty clears it.")),
		mcp.WithString("add", mcp.Description("Comma-separated names of people to add.")),
		mcp.WithString("remove", mcp.Description("Comma-separated names of people to remove.")),
	), t.updateCircle)

	s.AddTool(mcp.NewTool("archive_circle",
		mcp.WithDescription("Archives or restores a circle."),
		mcp.WithString("circle", mcp.Required(), mcp.Description("Circle name.")),
		mcp.WithBoolean("archived", mcp.Description("false restores the circle. Defaults to true.")),
	), t.archiveCircle)

	s.AddTool(mcp.NewTool("delete_circle",
		mcp.WithDescription("Deletes a circle. Its members are not affected."),
		mcp.WithString("circle", mcp.Required(), mcp.Description("Circle name.")),
	), t.deleteCircle)
}

func (t *tools) listCircles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope, err := argsOf(request).scope()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n := t.sess.Network()
	circles := scoped(scope, network.ActiveCircles(n), network.ArchivedCircles(n))
	out := make([]circleView, 0, len(circles))
	for _, c := range circles {
		out = append(out, viewCircle(n, c))
	}
	return jsonResult(out)
}

func (t *tools) createCircle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	name, err := a.required("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	description, _ := a.str("description")

	view, err := session.Do(ctx, t.sess, "create_circle", func(n *network.Network) (*network.Network, circleView, error) {
		members, err := a.people(n, "members")
		if err != nil {
			return nil, circleView{}, err
		}
		next, c, err := network.CreateCircle(n, name, description, members)
		if err != nil {
			return nil, circleView{}, err
		}
		return next, viewCircle(next, c), nil
	})
	if err != nil {
		return errorResult("create circle", err)
	}
	return jsonResult(view)
}

func (t *tools) updateCircle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	u := network.CircleUpdate{Name: a.field("new_name"), Description: a.field("description")}
	if u.Name.Op == network.Keep && u.Description.Op == network.Keep && len(a.list("add")) == 0 && len(a.list("remove")) == 0 {
		return mcp.NewToolResultError("No update fields provided (use new_name, description, add or remove)."), nil
	}

	view, err := session.Do(ctx, t.sess, "update_circle", func(n *network.Network) (*network.Network, circleView, error) {
		c, err := a.circle(n, "circle", network.ScopeAll)
		if err != nil {
			return nil, circleView{}, err
		}
		add, err := a.people(n, "add")
		if err != nil {
			return nil, circleView{}, err
		}
		remove, err := a.people(n, "remove")
		if err != nil {
			return nil, circleView{}, err
		}

		next, c, err := network.UpdateCircle(n, c.ID, u)
		if err != nil {
			return nil, circleView{}, err
		}
		if len(add) > 0 {
			if next, c, err = network.AddCircleMembers(next, c.ID, add); err != nil {
				return nil, circleView{}, err
			}
		}
		if len(remove) > 0 {
			if next, c, err = network.RemoveCircleMembers(next, c.ID, remove); err != nil {
				return nil, circleView{}, err
			}
		}
		return next, viewCircle(next, c), nil
	})
	if err != nil {
		return errorResult("update circle", err)
	}
	return jsonResult(view)
}

func (t *tools) archiveCircle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	archived := a.boolOr("archived", true)
	var name string
	err := t.sess.Apply(ctx, "archive_circle", func(n *network.Network) (*network.Network, error) {
		c, err := a.circle(n, "circle", network.ScopeAll)
		if err != nil {
			return nil, err
		}
		name = c.Name
		if archived {
			return network.ArchiveCircle(n, c.ID)
		}
		return network.UnarchiveCircle(n, c.ID)
	})
	if err != nil {
		return errorResult("archive circle", err)
	}
	if archived {
		return mcp.NewToolResultText(fmt.Sprintf("Circle '%s' archived.", name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Circle '%s' restored.", name)), nil
}

func (t *tools) deleteCircle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	var name string
	err := t.sess.Apply(ctx, "delete_circle", func(n *network.Network) (*network.Network, error) {
		c, err := a.circle(n, "circle", network.ScopeAll)
		if err != nil {
			return nil, err
		}
		name = c.Name
		return network.DeleteCircle(n, c.ID)
	})
	if err != nil {
		return errorResult("delete circle", err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Circle '%s' deleted successfully.", name)), nil
}
