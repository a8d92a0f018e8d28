// Package store persists a whole network snapshot to SQLite. Save replaces
// everything in one transaction and Update wraps a load, a change and a
// save in a single one; list order is kept in position columns so
// that Load returns exactly what was saved.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/unowned-ai/kith/pkg/network"
)

var (
	ErrNoNetwork = errors.New("no network stored")
)

const dateLayout = "2006-01-02"

const (
	clearStatements = `
	DELETE FROM interaction_topics;
	DELETE FROM interactions;
	DELETE FROM relationship_label_assignments;
	DELETE FROM relationships;
	DELETE FROM contact_entries;
	DELETE FROM circle_members;
	DELETE FROM circles;
	DELETE FROM network;
	DELETE FROM people;
	DELETE FROM relationship_labels;
	DELETE FROM custom_contact_types;
	DELETE FROM users;
	`

	insertUserStatement = `
	INSERT INTO users (id, name, email) VALUES (?, ?, ?)
	`

	insertPersonStatement = `
	INSERT INTO people (id, name, nickname, how_we_met, birthday, notes, location, is_self, archived)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertNetworkStatement = `
	INSERT INTO network (id, owner_id, self_id) VALUES (1, ?, ?)
	`

	insertContactTypeStatement = `
	INSERT INTO custom_contact_types (id, name) VALUES (?, ?)
	`

	insertContactEntryStatement = `
	INSERT INTO contact_entries (id, person_id, position, kind, custom_type_id, value, street, city, state, zip, country, label)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertLabelStatement = `
	INSERT INTO relationship_labels (id, name, archived) VALUES (?, ?, ?)
	`

	insertRelationshipStatement = `
	INSERT INTO relationships (person_id, reminder_days) VALUES (?, ?)
	`

	insertAssignmentStatement = `
	INSERT INTO relationship_label_assignments (person_id, label_id, position) VALUES (?, ?, ?)
	`

	insertInteractionStatement = `
	INSERT INTO interactions (id, person_id, position, date, medium, my_location, their_location, note)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertTopicStatement = `
	INSERT INTO interaction_topics (interaction_id, position, topic) VALUES (?, ?, ?)
	`

	insertCircleStatement = `
	INSERT INTO circles (id, name, description, archived) VALUES (?, ?, ?, ?)
	`

	insertMemberStatement = `
	INSERT INTO circle_members (circle_id, person_id, position) VALUES (?, ?, ?)
	`

	getNetworkStatement = `
	SELECT n.owner_id, n.self_id, u.name, u.email
	FROM network n JOIN users u ON u.id = n.owner_id
	WHERE n.id = 1
	`

	listPeopleStatement = `
	SELECT id, name, nickname, how_we_met, birthday, notes, location, is_self, archived
	FROM people
	`

	listContactTypesStatement = `
	SELECT id, name FROM custom_contact_types
	`

	listContactEntriesStatement = `
	SELECT id, person_id, kind, custom_type_id, value, street, city, state, zip, country, label
	FROM contact_entries
	ORDER BY person_id, position
	`

	listLabelsStatement = `
	SELECT id, name, archived FROM relationship_labels
	`

	listRelationshipsStatement = `
	SELECT person_id, reminder_days FROM relationships
	`

	listAssignmentsStatement = `
	SELECT person_id, label_id FROM relationship_label_assignments
	ORDER BY person_id, position
	`

	listInteractionsStatement = `
	SELECT id, person_id, date, medium, my_location, their_location, note
	FROM interactions
	ORDER BY person_id, position
	`

	listTopicsStatement = `
	SELECT interaction_id, topic FROM interaction_topics
	ORDER BY interaction_id, position
	`

	listCirclesStatement = `
	SELECT id, name, description, archived FROM circles
	`

	listMembersStatement = `
	SELECT circle_id, person_id FROM circle_members
	ORDER BY circle_id, position
	`
)

// Save replaces whatever network the database holds with n.
func Save(ctx context.Context, db *sql.DB, n *network.Network) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	if err := save(ctx, tx, n); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit network: %w", err)
	}
	return nil
}

// Update loads the stored network, passes it to fn and saves the result,
// all in one transaction. Writes committed by another connection before
// the transaction began are seen by fn; none can land between the load
// and the save. Nothing is written when fn fails.
func Update(ctx context.Context, db *sql.DB, fn func(*network.Network) (*network.Network, error)) (*network.Network, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback()

	current, err := load(ctx, tx)
	if err != nil {
		return nil, err
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := save(ctx, tx, next); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit network: %w", err)
	}
	return next, nil
}

func save(ctx context.Context, tx *sql.Tx, n *network.Network) error {
	if _, err := tx.ExecContext(ctx, clearStatements); err != nil {
		return fmt.Errorf("failed to clear previous snapshot: %w", err)
	}

	w := writer{ctx: ctx, tx: tx}
	w.exec(insertUserStatement, n.Owner.ID.UUID(), n.Owner.Name, n.Owner.Email)

	for _, p := range n.People {
		w.exec(insertPersonStatement, p.ID.UUID(), p.Name, p.Nickname, p.HowWeMet, nullDate(p.Birthday), p.Notes, p.Location, p.IsSelf, p.Archived)
	}
	w.exec(insertNetworkStatement, n.Owner.ID.UUID(), n.SelfID.UUID())

	for _, ct := range n.ContactTypes {
		w.exec(insertContactTypeStatement, ct.ID.UUID(), ct.Name)
	}
	for _, p := range n.People {
		for i, c := range p.Contacts {
			w.saveContact(p.ID, i, c)
		}
	}

	for _, l := range n.Labels {
		w.exec(insertLabelStatement, l.ID.UUID(), l.Name, l.Archived)
	}
	for _, r := range n.Relationships {
		w.saveRelationship(r)
	}

	for _, c := range n.Circles {
		w.exec(insertCircleStatement, c.ID.UUID(), c.Name, c.Description, c.Archived)
		for i, member := range c.MemberIDs {
			w.exec(insertMemberStatement, c.ID.UUID(), member.UUID(), i)
		}
	}

	if w.err != nil {
		return fmt.Errorf("failed to save network: %w", w.err)
	}
	return nil
}

// writer runs inserts until the first failure and remembers it.
type writer struct {
	ctx context.Context
	tx  *sql.Tx
	err error
}

func (w *writer) exec(query string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = w.tx.ExecContext(w.ctx, query, args...)
}

func (w *writer) saveContact(personID network.PersonID, position int, c network.ContactEntry) {
	kind, err := c.Kind.MarshalText()
	if err != nil {
		w.fail(err)
		return
	}

	var customType uuid.NullUUID
	if c.Kind == network.KindCustom {
		customType = uuid.NullUUID{UUID: c.CustomType.UUID(), Valid: true}
	}

	var street, city, state, zip, country sql.NullString
	if c.Address != nil {
		street = sql.NullString{String: c.Address.Street, Valid: true}
		city = sql.NullString{String: c.Address.City, Valid: true}
		state = sql.NullString{String: c.Address.State, Valid: true}
		zip = sql.NullString{String: c.Address.Zip, Valid: true}
		country = sql.NullString{String: c.Address.Country, Valid: true}
	}

	w.exec(insertContactEntryStatement, c.ID.UUID(), personID.UUID(), position, string(kind), customType, c.Value,
		street, city, state, zip, country, c.Label)
}

func (w *writer) saveRelationship(r network.Relationship) {
	var reminder sql.NullInt64
	if r.HasReminder() {
		reminder = sql.NullInt64{Int64: int64(r.ReminderDays), Valid: true}
	}
	w.exec(insertRelationshipStatement, r.PersonID.UUID(), reminder)

	for i, id := range r.LabelIDs {
		w.exec(insertAssignmentStatement, r.PersonID.UUID(), id.UUID(), i)
	}

	for i, in := range r.History {
		medium, err := in.Medium.MarshalText()
		if err != nil {
			w.fail(err)
			return
		}
		w.exec(insertInteractionStatement, in.ID.UUID(), r.PersonID.UUID(), i, in.Date.Format(dateLayout), string(medium),
			in.MyLocation, in.TheirLocation, in.Note)
		for j, topic := range in.Topics {
			w.exec(insertTopicStatement, in.ID.UUID(), j, topic)
		}
	}
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dateLayout), Valid: true}
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return network.DateOf(t), nil
}
