package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/session"
)

// tools holds what every handler needs. now is replaceable in tests.
type tools struct {
	sess   *session.Session
	logger *zap.Logger
	now    func() time.Time
}

func newTools(sess *session.Session, logger *zap.Logger) *tools {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &tools{sess: sess, logger: logger.Named("mcp.tools"), now: network.Today}
}

func (t *tools) today() time.Time {
	return network.DateOf(t.now())
}

// RegisterTools adds every kith tool to s.
func RegisterTools(s *server.MCPServer, sess *session.Session, logger *zap.Logger) {
	t := newTools(sess, logger)
	t.registerPeopleTools(s)
	t.registerLabelTools(s)
	t.registerCircleTools(s)
	t.registerInteractionTools(s)
}

func (t *tools) registerPeopleTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the kith MCP server is alive."),
	), t.ping)

	s.AddTool(mcp.NewTool("list_people",
		mcp.WithDescription("Lists people in the network, optionally filtered by a name or nickname fragment."),
		mcp.WithString("query", mcp.Description("Optional case-insensitive name or nickname fragment.")),
		mcp.WithString("scope", mcp.Enum("active", "archived", "all"), mcp.DefaultString("active"), mcp.Description("Which people to include.")),
	), t.listPeople)

	s.AddTool(mcp.NewTool("get_person",
		mcp.WithDescription("Shows everything known about one person: details, contacts, labels, circles and last contact."),
		mcp.WithString("person", mcp.Required(), mcp.Description("Name, nickname or a unique fragment of either.")),
	), t.getPerson)

	s.AddTool(mcp.NewTool("add_person",
		mcp.WithDescription("Adds a person to the network."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Full name.")),
		mcp.WithString("nickname", mcp.Description("Optional nickname.")),
		mcp.WithString("how_we_met", mcp.Description("Optional note on how you met.")),
		mcp.WithString("birthday", mcp.Description("Optional birthday as YYYY-MM-DD.")),
		mcp.WithString("notes", mcp.Description("Optional free-form notes.")),
		mcp.WithString("location", mcp.Description("Optional usual location.")),
	), t.addPerson)

	s.AddTool(mcp.NewTool("update_person",
		mcp.WithDescription("Updates a person's details. Omitted fields are kept; an empty string clears an optional field."),
		mcp.WithString("person", mcp.Required(), mcp.Description("Person to update.")),
		mcp.WithString("name", mcp.Description("New full name.")),
		mcp.WithString("nickname", mcp.Description("New nickname.")),
		mcp.WithString("how_we_met", mcp.Description("New how-we-met note.")),
		mcp.WithString("birthday", mcp.Description("New birthday as YYYY-MM-DD.")),
		mcp.WithString("notes", mcp.Description("New notes.")),
		mcp.WithString("location", mcp.Description("New usual location.")),
	), t.updatePerson)

	s.AddTool(mcp.NewTool("archive_person",
		mcp.WithDescription("Archives or restores a person. Archived people drop out of reminders and listings."),
		mcp.WithString("person", mcp.Required(), mcp.Description("Person to archive or restore.")),
		mcp.WithBoolean("archived", mcp.Description("false restores the person. Defaults to true.")),
	), t.archivePerson)

	s.AddTool(mcp.NewTool("add_contact",
		mcp.WithDescription("Adds a phone number, email, postal address or custom contact to a person."),
		mcp.WithString("person", mcp.Required(), mcp.Description("Person to add the contact to.")),
		mcp.WithString("kind", mcp.Required(), mcp.Enum("phone", "email", "address", "custom"), mcp.Description("Kind of contact.")),
		mcp.WithString("value", mcp.Description("The number, address or handle. Not used for kind=address.")),
		mcp.WithString("custom_type", mcp.Description("Custom contact type name for kind=custom, e.g. Discord. Created if missing.")),
		mcp.WithString("street", mcp.Description("Street for kind=address.")),
		mcp.WithString("city", mcp.Description("City for kind=address.")),
		mcp.WithString("state", mcp.Description("State for kind=address.")),
		mcp.WithString("zip", mcp.Description("Postal code for kind=address.")),
		mcp.WithString("country", mcp.Description("Country for kind=address.")),
		mcp.WithString("label", mcp.Description("Optional label such as work or home.")),
	), t.addContact)

	s.AddTool(mcp.NewTool("remove_contact",
		mcp.WithDescription("Removes one contact entry from a person."),
		mcp.WithString("person", mcp.Required(), mcp.Description("Person owning the contact.")),
		mcp.WithString("contact_id", mcp.Required(), mcp.Description("Id of the contact entry, as shown by get_person.")),
	), t.removeContact)

	s.AddTool(mcp.NewTool("list_contact_types",
		mcp.WithDescription("Lists the custom contact types in use."),
	), t.listContactTypes)
}

func (t *tools) ping(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_kith"), nil
}

func (t *tools) listPeople(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	scope, err := a.scope()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n := t.sess.Network()
	if query, _ := a.str("query"); query != "" {
		return jsonResult(summarizeAll(n, network.SearchPeople(n, query, scope)))
	}
	return jsonResult(summarizeAll(n, scoped(scope, network.ActivePeople(n), network.ArchivedPeople(n))))
}

func (t *tools) getPerson(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := t.sess.Network()
	p, err := argsOf(request).person(n, "person")
	if err != nil {
		return errorResult("find person", err)
	}
	return jsonResult(detail(n, p, t.today()))
}

func (t *tools) addPerson(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	name, err := a.required("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	birthday, err := a.date("birthday")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	np := network.NewPerson{Name: name, Birthday: birthday}
	np.Nickname, _ = a.str("nickname")
	np.HowWeMet, _ = a.str("how_we_met")
	np.Notes, _ = a.str("notes")
	np.Location, _ = a.str("location")

	p, err := session.Do(ctx, t.sess, "add_person", func(n *network.Network) (*network.Network, network.Person, error) {
		return network.AddPerson(n, np)
	})
	if err != nil {
		return errorResult("add person", err)
	}
	t.logger.Info("person added", zap.Stringer("person_id", p.ID))
	return jsonResult(detail(t.sess.Network(), p, t.today()))
}

func (t *tools) updatePerson(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	u := network.PersonUpdate{
		Name:     a.field("name"),
		Nickname: a.field("nickname"),
		HowWeMet: a.field("how_we_met"),
		Notes:    a.field("notes"),
		Location: a.field("location"),
	}
	if v, ok := a.str("birthday"); ok {
		if v == "" {
			u.Birthday = network.ClearField[time.Time]()
		} else {
			birthday, err := a.date("birthday")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			u.Birthday = network.SetField(birthday)
		}
	}

	p, err := session.Do(ctx, t.sess, "update_person", func(n *network.Network) (*network.Network, network.Person, error) {
		target, err := a.person(n, "person")
		if err != nil {
			return nil, network.Person{}, err
		}
		return network.UpdatePerson(n, target.ID, u)
	})
	if err != nil {
		return errorResult("update person", err)
	}
	return jsonResult(detail(t.sess.Network(), p, t.today()))
}

func (t *tools) archivePerson(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	archived := a.boolOr("archived", true)

	var name string
	err := t.sess.Apply(ctx, "archive_person", func(n *network.Network) (*network.Network, error) {
		p, err := a.person(n, "person")
		if err != nil {
			return nil, err
		}
		name = p.Name
		if archived {
			return network.ArchivePerson(n, p.ID)
		}
		return network.UnarchivePerson(n, p.ID)
	})
	if err != nil {
		return errorResult("archive person", err)
	}
	if archived {
		return mcp.NewToolResultText(fmt.Sprintf("%s archived.", name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s restored.", name)), nil
}

func (t *tools) addContact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	kind, err := a.required("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, _ := a.str("value")
	label, _ := a.str("label")

	entry, err := session.Do(ctx, t.sess, "add_contact", func(n *network.Network) (*network.Network, network.ContactEntry, error) {
		p, err := a.person(n, "person")
		if err != nil {
			return nil, network.ContactEntry{}, err
		}
		switch kind {
		case "phone":
			return network.AddPhone(n, p.ID, value, label)
		case "email":
			return network.AddEmail(n, p.ID, value, label)
		case "address":
			var addr network.Address
			addr.Street, _ = a.str("street")
			addr.City, _ = a.str("city")
			addr.State, _ = a.str("state")
			addr.Zip, _ = a.str("zip")
			addr.Country, _ = a.str("country")
			return network.AddAddress(n, p.ID, addr, label)
		case "custom":
			typeName, err := a.required("custom_type")
			if err != nil {
				return nil, network.ContactEntry{}, err
			}
			withType, typeID, err := ensureContactType(n, typeName)
			if err != nil {
				return nil, network.ContactEntry{}, err
			}
			return network.AddCustomContact(withType, p.ID, typeID, value, label)
		}
		return nil, network.ContactEntry{}, fmt.Errorf("unknown contact kind %q", kind)
	})
	if err != nil {
		return errorResult("add contact", err)
	}
	return jsonResult(viewContact(t.sess.Network(), entry))
}

// ensureContactType finds a custom type by name or creates it.
func ensureContactType(n *network.Network, name string) (*network.Network, network.ContactTypeID, error) {
	if ct, ok := network.FindContactType(n, name); ok {
		return n, ct.ID, nil
	}
	next, created, err := network.CreateContactType(n, name)
	if err != nil {
		return nil, network.ContactTypeID{}, err
	}
	return next, created.ID, nil
}

func (t *tools) removeContact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	raw, err := a.required("contact_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entryID, err := network.ParseID[network.ContactEntry](raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("'contact_id' is not a valid id: %v", err)), nil
	}

	err = t.sess.Apply(ctx, "remove_contact", func(n *network.Network) (*network.Network, error) {
		p, err := a.person(n, "person")
		if err != nil {
			return nil, err
		}
		return network.RemoveContact(n, p.ID, entryID)
	})
	if err != nil {
		return errorResult("remove contact", err)
	}
	return mcp.NewToolResultText("Contact removed."), nil
}

func (t *tools) listContactTypes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := t.sess.Network()
	types := network.ContactTypes(n)
	out := make([]map[string]any, 0, len(types))
	for _, ct := range types {
		out = append(out, map[string]any{
			"id":     ct.ID.String(),
			"name":   ct.Name,
			"people": len(network.PeopleWithContactType(n, ct.ID)),
		})
	}
	return jsonResult(out)
}
