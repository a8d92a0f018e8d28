// Package migrate imports a network exported by the previous app. The
// legacy snapshot is replayed through the regular network operations so
// every imported value passes the same validation as one entered by hand.
package migrate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/unowned-ai/kith/pkg/network"
)

var (
	ErrMissingOwner = errors.New("legacy snapshot has no ownerId")
	ErrMissingSelf  = errors.New("legacy snapshot has no self person")
)

// Stats counts what an import created. Skipped describes legacy records
// that failed validation and were left out.
type Stats struct {
	People             int      `json:"people"`
	Relationships      int      `json:"relationships"`
	Interactions       int      `json:"interactions"`
	Circles            int      `json:"circles"`
	Labels             int      `json:"labels"`
	CustomContactTypes int      `json:"custom_contact_types"`
	Skipped            []string `json:"skipped,omitempty"`
}

// ImportFile reads a legacy snapshot from path.
func ImportFile(path string, logger *zap.Logger) (*network.Network, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open legacy snapshot: %w", err)
	}
	defer f.Close()
	return Import(f, logger)
}

// Import rebuilds a network from a legacy snapshot. Legacy ids are mapped
// to fresh ones.
func Import(r io.Reader, logger *zap.Logger) (*network.Network, Stats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var legacy legacyNetwork
	if err := json.NewDecoder(r).Decode(&legacy); err != nil {
		return nil, Stats{}, fmt.Errorf("failed to decode legacy snapshot: %w", err)
	}
	if strings.TrimSpace(legacy.OwnerID) == "" {
		return nil, Stats{}, ErrMissingOwner
	}

	im := &importer{
		logger: logger.Named("migrate"),
		people: make(map[string]network.PersonID),
		labels: make(map[string]network.LabelID),
		types:  make(map[string]network.ContactTypeID),
	}
	if err := im.run(legacy); err != nil {
		return nil, Stats{}, err
	}

	im.logger.Info("imported legacy network",
		zap.Int("people", im.stats.People),
		zap.Int("relationships", im.stats.Relationships),
		zap.Int("interactions", im.stats.Interactions),
		zap.Int("circles", im.stats.Circles),
		zap.Int("skipped", len(im.stats.Skipped)),
	)
	return im.n, im.stats, nil
}

type importer struct {
	n      *network.Network
	logger *zap.Logger
	stats  Stats

	people map[string]network.PersonID
	labels map[string]network.LabelID
	types  map[string]network.ContactTypeID
}

func (im *importer) run(legacy legacyNetwork) error {
	self, err := findSelf(legacy)
	if err != nil {
		return err
	}
	im.n, err = network.NewNetwork(self.Name, "")
	if err != nil {
		return fmt.Errorf("self person %s: %w", self.ID, err)
	}
	im.people[self.ID] = im.n.SelfID

	for _, t := range legacy.CustomContactTypes {
		if err := im.contactType(t); err != nil {
			im.skip("contact type %s: %v", t.ID, err)
		}
	}
	for _, l := range legacy.RelationshipLabels {
		if err := im.label(l); err != nil {
			im.skip("label %s: %v", l.ID, err)
		}
	}

	var archived []network.PersonID
	for _, p := range legacy.People {
		isSelf := p.ID == self.ID
		id, err := im.person(p, isSelf)
		if err != nil {
			if isSelf {
				return fmt.Errorf("self person %s: %w", p.ID, err)
			}
			// Unmapped people drop out of every later relationship and circle.
			im.skip("person %s: %v", p.ID, err)
			continue
		}
		if p.Archived && !isSelf {
			archived = append(archived, id)
		}
	}

	for _, rel := range legacy.Relationships {
		if err := im.relationship(rel, self.ID); err != nil {
			im.skip("relationship with %s: %v", rel.PersonID, err)
		}
	}

	for _, c := range legacy.Circles {
		if err := im.circle(c); err != nil {
			im.skip("circle %s: %v", c.ID, err)
		}
	}

	// Archived people are archived once everything referencing them exists.
	for _, id := range archived {
		if im.n, err = network.ArchivePerson(im.n, id); err != nil {
			return err
		}
	}
	return nil
}

func findSelf(legacy legacyNetwork) (legacyPerson, error) {
	for _, p := range legacy.People {
		if legacy.SelfID != "" && p.ID == legacy.SelfID {
			return p, nil
		}
	}
	for _, p := range legacy.People {
		if p.IsSelf {
			return p, nil
		}
	}
	return legacyPerson{}, ErrMissingSelf
}

func (im *importer) skip(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	im.logger.Warn("skipping legacy record", zap.String("reason", msg))
	im.stats.Skipped = append(im.stats.Skipped, msg)
}

func (im *importer) contactType(t legacyContactType) error {
	if existing := findContactType(im.n, t.Name); existing != nil {
		im.types[t.ID] = existing.ID
		im.stats.CustomContactTypes++
		return nil
	}
	next, created, err := network.CreateContactType(im.n, t.Name)
	if err != nil {
		return err
	}
	im.n = next
	im.types[t.ID] = created.ID
	im.stats.CustomContactTypes++
	return nil
}

func findContactType(n *network.Network, name string) *network.CustomContactType {
	for _, t := range network.ContactTypes(n) {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return &t
		}
	}
	return nil
}

// label reuses a seeded label with the same name, so the legacy "me" and
// default labels do not collide with the new network's own.
func (im *importer) label(l legacyLabel) error {
	var id network.LabelID
	if existing, err := network.ResolveLabel(im.n, l.Name, network.ScopeAll); err == nil && strings.EqualFold(existing.Name, strings.TrimSpace(l.Name)) {
		id = existing.ID
	} else {
		next, created, err := network.CreateLabel(im.n, l.Name)
		if err != nil {
			return err
		}
		im.n = next
		id = created.ID
	}
	im.labels[l.ID] = id
	im.stats.Labels++

	if l.Archived && !strings.EqualFold(l.Name, network.MeLabel) {
		next, err := network.ArchiveLabel(im.n, id)
		if err != nil {
			return err
		}
		im.n = next
	}
	return nil
}

func (im *importer) person(p legacyPerson, isSelf bool) (network.PersonID, error) {
	birthday, err := parseOptionalDate(p.Birthday)
	if err != nil {
		im.skip("birthday of %s: %v", p.ID, err)
		birthday = time.Time{}
	}
	location := p.Location
	if strings.TrimSpace(location) == "" {
		location = p.DefaultLocation
	}

	var id network.PersonID
	if isSelf {
		id = im.n.SelfID
		next, _, err := network.UpdatePerson(im.n, id, network.PersonUpdate{
			Nickname: network.SetField(p.Nickname),
			HowWeMet: network.SetField(p.HowWeMet),
			Birthday: network.SetField(birthday),
			Notes:    network.SetField(p.Notes),
			Location: network.SetField(location),
		})
		if err != nil {
			return id, err
		}
		im.n = next
	} else {
		next, created, err := network.AddPerson(im.n, network.NewPerson{
			Name:     p.Name,
			Nickname: p.Nickname,
			HowWeMet: p.HowWeMet,
			Birthday: birthday,
			Notes:    p.Notes,
			Location: location,
		})
		if err != nil {
			return id, err
		}
		im.n = next
		id = created.ID
		im.people[p.ID] = id
	}
	im.stats.People++

	for _, c := range p.ContactInfo {
		if err := im.contact(id, c); err != nil {
			im.skip("contact %s of %s: %v", c.ID, p.Name, err)
		}
	}
	return id, nil
}

func (im *importer) contact(personID network.PersonID, c legacyContact) error {
	var (
		next *network.Network
		err  error
	)
	switch c.ContactType.Type {
	case "Phone":
		next, _, err = network.AddPhone(im.n, personID, c.Value.Value, c.Label)
	case "Email":
		next, _, err = network.AddEmail(im.n, personID, c.Value.Value, c.Label)
	case "PhysicalAddress":
		next, _, err = network.AddAddress(im.n, personID, network.Address{
			Street:  c.Value.Street,
			City:    c.Value.City,
			State:   c.Value.State,
			Zip:     c.Value.Zip,
			Country: c.Value.Country,
		}, c.Label)
	case "Custom":
		typeID, ok := im.types[c.ContactType.TypeID]
		if !ok {
			return fmt.Errorf("unknown contact type %q", c.ContactType.TypeID)
		}
		next, _, err = network.AddCustomContact(im.n, personID, typeID, c.Value.Value, c.Label)
	default:
		return fmt.Errorf("unknown contact kind %q", c.ContactType.Type)
	}
	if err != nil {
		return err
	}
	im.n = next
	return nil
}

func (im *importer) relationship(rel legacyRelationship, selfID string) error {
	if rel.PersonID == selfID {
		return nil
	}
	personID, ok := im.people[rel.PersonID]
	if !ok {
		im.skip("relationship with unknown person %s", rel.PersonID)
		return nil
	}

	labelIDs := make([]network.LabelID, 0, len(rel.Labels))
	for _, legacyID := range rel.Labels {
		if id, ok := im.labels[legacyID]; ok {
			labelIDs = append(labelIDs, id)
		}
	}
	var reminder *int
	if rel.ReminderDays != nil && *rel.ReminderDays > 0 {
		reminder = rel.ReminderDays
	}

	next, _, err := network.SetRelationship(im.n, personID, labelIDs, reminder)
	if err != nil {
		return err
	}
	im.n = next
	im.stats.Relationships++

	// History is replayed oldest first; logging prepends, which leaves the
	// newest interaction at the front again.
	history := slices.Clone(rel.InteractionHistory)
	slices.Reverse(history)
	slices.SortStableFunc(history, func(a, b legacyInteraction) int {
		return strings.Compare(a.Date, b.Date)
	})
	for _, in := range history {
		if err := im.interaction(personID, in); err != nil {
			im.skip("interaction %s: %v", in.ID, err)
			continue
		}
		im.stats.Interactions++
	}
	return nil
}

func (im *importer) interaction(personID network.PersonID, in legacyInteraction) error {
	date, err := parseOptionalDate(in.Date)
	if err != nil {
		return err
	}
	medium := network.InPerson
	if strings.TrimSpace(in.Medium) != "" {
		parsed, err := network.ParseMedium(in.Medium)
		if err != nil {
			im.logger.Warn("unknown legacy medium, logging in person",
				zap.String("interaction", in.ID), zap.String("medium", in.Medium))
		} else {
			medium = parsed
		}
	}

	var next *network.Network
	if medium == network.InPerson {
		next, _, err = network.LogInPerson(im.n, personID, network.InPersonLog{
			Location: in.MyLocation,
			Topics:   in.Topics,
			Note:     in.Note,
			Date:     date,
		})
	} else {
		next, _, err = network.LogRemote(im.n, personID, network.RemoteLog{
			Medium:        medium,
			MyLocation:    in.MyLocation,
			TheirLocation: in.TheirLocation,
			Topics:        in.Topics,
			Note:          in.Note,
			Date:          date,
		})
	}
	if err != nil {
		return err
	}
	im.n = next
	return nil
}

func (im *importer) circle(c legacyCircle) error {
	members := make([]network.PersonID, 0, len(c.MemberIDs))
	for _, legacyID := range c.MemberIDs {
		if id, ok := im.people[legacyID]; ok {
			members = append(members, id)
		}
	}
	next, created, err := network.CreateCircle(im.n, c.Name, c.Description, members)
	if err != nil {
		return err
	}
	im.n = next
	if c.Archived {
		if im.n, err = network.ArchiveCircle(im.n, created.ID); err != nil {
			return err
		}
	}
	im.stats.Circles++
	return nil
}

func parseOptionalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
