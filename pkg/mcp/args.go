package mcp

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/unowned-ai/kith/pkg/network"
)

// args wraps the raw tool arguments. JSON numbers arrive as float64.
type args map[string]any

func argsOf(request mcp.CallToolRequest) args {
	return args(request.Params.Arguments)
}

func (a args) str(key string) (string, bool) {
	v, ok := a[key].(string)
	return v, ok
}

// required returns a non-blank string argument.
func (a args) required(key string) (string, error) {
	v, ok := a.str(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("'%s' parameter is required and must be a non-empty string", key)
	}
	return v, nil
}

// field maps an optional string argument to an update instruction: absent
// keeps the value, an empty string clears it.
func (a args) field(key string) network.Field[string] {
	v, ok := a.str(key)
	switch {
	case !ok:
		return network.KeepField[string]()
	case strings.TrimSpace(v) == "":
		return network.ClearField[string]()
	default:
		return network.SetField(v)
	}
}

func (a args) number(key string) (int, bool, error) {
	raw, ok := a[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false, fmt.Errorf("'%s' must be a whole number", key)
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false, fmt.Errorf("'%s' must be a whole number", key)
		}
		return int(n), true, nil
	default:
		return 0, false, fmt.Errorf("'%s' must be a number", key)
	}
}

func (a args) boolOr(key string, fallback bool) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return fallback
}

// list accepts a comma-separated string or an array of strings.
func (a args) list(key string) []string {
	var raw []string
	switch v := a[key].(type) {
	case string:
		raw = strings.Split(v, ",")
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case []string:
		raw = v
	}
	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (a args) scope() (network.Scope, error) {
	v, _ := a.str("scope")
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "active":
		return network.ScopeActive, nil
	case "archived":
		return network.ScopeArchived, nil
	case "all":
		return network.ScopeAll, nil
	}
	return 0, fmt.Errorf("'scope' must be one of active, archived, all; got %q", v)
}

// scoped picks the listing matching scope.
func scoped[T any](scope network.Scope, active, archived []T) []T {
	switch scope {
	case network.ScopeArchived:
		return archived
	case network.ScopeAll:
		return append(slices.Clip(active), archived...)
	default:
		return active
	}
}

// date parses an optional YYYY-MM-DD argument. Absent means the zero time.
func (a args) date(key string) (time.Time, error) {
	v, _ := a.str(key)
	if strings.TrimSpace(v) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("'%s' must be a YYYY-MM-DD date", key)
	}
	return t, nil
}

// person resolves the named argument against n, archived people included.
func (a args) person(n *network.Network, key string) (network.Person, error) {
	query, err := a.required(key)
	if err != nil {
		return network.Person{}, err
	}
	return network.ResolvePerson(n, query, network.ScopeAll)
}

func (a args) people(n *network.Network, key string) ([]network.PersonID, error) {
	var ids []network.PersonID
	for _, query := range a.list(key) {
		p, err := network.ResolvePerson(n, query, network.ScopeAll)
		if err != nil {
			return nil, err
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (a args) labels(n *network.Network, key string) ([]network.LabelID, error) {
	var ids []network.LabelID
	for _, query := range a.list(key) {
		l, err := network.ResolveLabel(n, query, network.ScopeActive)
		if err != nil {
			return nil, err
		}
		ids = append(ids, l.ID)
	}
	return ids, nil
}

func (a args) label(n *network.Network, key string, scope network.Scope) (network.RelationshipLabel, error) {
	query, err := a.required(key)
	if err != nil {
		return network.RelationshipLabel{}, err
	}
	return network.ResolveLabel(n, query, scope)
}

func (a args) circle(n *network.Network, key string, scope network.Scope) (network.Circle, error) {
	query, err := a.required(key)
	if err != nil {
		return network.Circle{}, err
	}
	return network.ResolveCircle(n, query, scope)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func errorResult(action string, err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %v", action, err)), nil
}
