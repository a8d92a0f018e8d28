package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/unowned-ai/kith/pkg/network"
)

// Load reads the stored network. It returns ErrNoNetwork when the
// database has been initialized but nothing was saved yet.
func Load(ctx context.Context, db *sql.DB) (*network.Network, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin load: %w", err)
	}
	defer tx.Rollback()

	return load(ctx, tx)
}

func load(ctx context.Context, tx *sql.Tx) (*network.Network, error) {
	n := &network.Network{
		People:        map[network.PersonID]network.Person{},
		Relationships: map[network.PersonID]network.Relationship{},
		Circles:       map[network.CircleID]network.Circle{},
		Labels:        map[network.LabelID]network.RelationshipLabel{},
		ContactTypes:  map[network.ContactTypeID]network.CustomContactType{},
	}

	var ownerID, selfID uuid.UUID
	err := tx.QueryRowContext(ctx, getNetworkStatement).Scan(&ownerID, &selfID, &n.Owner.Name, &n.Owner.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoNetwork
		}
		return nil, fmt.Errorf("failed to read network: %w", err)
	}
	n.Owner.ID = network.IDFromUUID[network.User](ownerID)
	n.SelfID = network.IDFromUUID[network.Person](selfID)

	l := loader{ctx: ctx, tx: tx, n: n}
	steps := []struct {
		what string
		fn   func() error
	}{
		{"people", l.people},
		{"contact types", l.contactTypes},
		{"contact entries", l.contactEntries},
		{"labels", l.labels},
		{"relationships", l.relationships},
		{"label assignments", l.assignments},
		{"interactions", l.interactions},
		{"circles", l.circles},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", step.what, err)
		}
	}

	return n, nil
}

type loader struct {
	ctx context.Context
	tx  *sql.Tx
	n   *network.Network
}

// each runs query and calls scan once per row.
func (l *loader) each(query string, scan func(*sql.Rows) error) error {
	rows, err := l.tx.QueryContext(l.ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (l *loader) people() error {
	return l.each(listPeopleStatement, func(rows *sql.Rows) error {
		var (
			id       uuid.UUID
			p        network.Person
			birthday sql.NullString
		)
		if err := rows.Scan(&id, &p.Name, &p.Nickname, &p.HowWeMet, &birthday, &p.Notes, &p.Location, &p.IsSelf, &p.Archived); err != nil {
			return err
		}
		p.ID = network.IDFromUUID[network.Person](id)
		if birthday.Valid {
			d, err := parseDate(birthday.String)
			if err != nil {
				return err
			}
			p.Birthday = d
		}
		l.n.People[p.ID] = p
		return nil
	})
}

func (l *loader) contactTypes() error {
	return l.each(listContactTypesStatement, func(rows *sql.Rows) error {
		var id uuid.UUID
		var ct network.CustomContactType
		if err := rows.Scan(&id, &ct.Name); err != nil {
			return err
		}
		ct.ID = network.IDFromUUID[network.CustomContactType](id)
		l.n.ContactTypes[ct.ID] = ct
		return nil
	})
}

func (l *loader) contactEntries() error {
	return l.each(listContactEntriesStatement, func(rows *sql.Rows) error {
		var (
			id, personID                      uuid.UUID
			kind                              string
			customType                        uuid.NullUUID
			street, city, state, zip, country sql.NullString
			c                                 network.ContactEntry
		)
		if err := rows.Scan(&id, &personID, &kind, &customType, &c.Value, &street, &city, &state, &zip, &country, &c.Label); err != nil {
			return err
		}
		if err := c.Kind.UnmarshalText([]byte(kind)); err != nil {
			return err
		}
		c.ID = network.IDFromUUID[network.ContactEntry](id)
		if customType.Valid {
			c.CustomType = network.IDFromUUID[network.CustomContactType](customType.UUID)
		}
		if c.Kind == network.KindAddress {
			c.Address = &network.Address{
				Street:  street.String,
				City:    city.String,
				State:   state.String,
				Zip:     zip.String,
				Country: country.String,
			}
		}

		pid := network.IDFromUUID[network.Person](personID)
		p, ok := l.n.People[pid]
		if !ok {
			return fmt.Errorf("contact entry %s belongs to unknown person %s", c.ID, pid)
		}
		p.Contacts = append(p.Contacts, c)
		l.n.People[pid] = p
		return nil
	})
}

func (l *loader) labels() error {
	return l.each(listLabelsStatement, func(rows *sql.Rows) error {
		var id uuid.UUID
		var lbl network.RelationshipLabel
		if err := rows.Scan(&id, &lbl.Name, &lbl.Archived); err != nil {
			return err
		}
		lbl.ID = network.IDFromUUID[network.RelationshipLabel](id)
		l.n.Labels[lbl.ID] = lbl
		return nil
	})
}

func (l *loader) relationships() error {
	return l.each(listRelationshipsStatement, func(rows *sql.Rows) error {
		var personID uuid.UUID
		var reminder sql.NullInt64
		if err := rows.Scan(&personID, &reminder); err != nil {
			return err
		}
		r := network.Relationship{PersonID: network.IDFromUUID[network.Person](personID)}
		if reminder.Valid {
			r.ReminderDays = int(reminder.Int64)
		}
		l.n.Relationships[r.PersonID] = r
		return nil
	})
}

func (l *loader) assignments() error {
	return l.each(listAssignmentsStatement, func(rows *sql.Rows) error {
		var personID, labelID uuid.UUID
		if err := rows.Scan(&personID, &labelID); err != nil {
			return err
		}
		pid := network.IDFromUUID[network.Person](personID)
		r := l.n.Relationships[pid]
		r.LabelIDs = append(r.LabelIDs, network.IDFromUUID[network.RelationshipLabel](labelID))
		l.n.Relationships[pid] = r
		return nil
	})
}

func (l *loader) interactions() error {
	topics := map[uuid.UUID][]string{}
	err := l.each(listTopicsStatement, func(rows *sql.Rows) error {
		var id uuid.UUID
		var topic string
		if err := rows.Scan(&id, &topic); err != nil {
			return err
		}
		topics[id] = append(topics[id], topic)
		return nil
	})
	if err != nil {
		return err
	}

	return l.each(listInteractionsStatement, func(rows *sql.Rows) error {
		var (
			id, personID uuid.UUID
			date, medium string
			in           network.Interaction
		)
		if err := rows.Scan(&id, &personID, &date, &medium, &in.MyLocation, &in.TheirLocation, &in.Note); err != nil {
			return err
		}
		d, err := parseDate(date)
		if err != nil {
			return err
		}
		if err := in.Medium.UnmarshalText([]byte(medium)); err != nil {
			return err
		}
		in.ID = network.IDFromUUID[network.Interaction](id)
		in.Date = d
		in.Topics = topics[id]

		pid := network.IDFromUUID[network.Person](personID)
		r := l.n.Relationships[pid]
		r.History = append(r.History, in)
		l.n.Relationships[pid] = r
		return nil
	})
}

func (l *loader) circles() error {
	err := l.each(listCirclesStatement, func(rows *sql.Rows) error {
		var id uuid.UUID
		var c network.Circle
		if err := rows.Scan(&id, &c.Name, &c.Description, &c.Archived); err != nil {
			return err
		}
		c.ID = network.IDFromUUID[network.Circle](id)
		l.n.Circles[c.ID] = c
		return nil
	})
	if err != nil {
		return err
	}

	return l.each(listMembersStatement, func(rows *sql.Rows) error {
		var circleID, personID uuid.UUID
		if err := rows.Scan(&circleID, &personID); err != nil {
			return err
		}
		cid := network.IDFromUUID[network.Circle](circleID)
		c := l.n.Circles[cid]
		c.MemberIDs = append(c.MemberIDs, network.IDFromUUID[network.Person](personID))
		l.n.Circles[cid] = c
		return nil
	})
}
