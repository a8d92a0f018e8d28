package llm

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/unowned-ai/kith/pkg/network"
)

// LogRequest is one interaction ready to be recorded for one person.
type LogRequest struct {
	Person        network.Person
	Medium        network.Medium
	MyLocation    string
	TheirLocation string
	Topics        []string
	Note          string
	Date          time.Time
}

// Resolution is the outcome of matching parsed names against the network.
// Unknown names match nobody; the caller may offer to add them.
type Resolution struct {
	Requests  []LogRequest
	Unknown   []string
	Ambiguous []*network.AmbiguousError
	// MediumFallback is set when the model's medium was not recognized and
	// InPerson was used instead.
	MediumFallback bool
}

// Complete reports whether every parsed name resolved to someone.
func (r Resolution) Complete() bool {
	return len(r.Unknown) == 0 && len(r.Ambiguous) == 0
}

// Resolve matches each parsed name to an active person other than the
// owner and fills in medium and date. A missing date means today.
func (p Parsed) Resolve(n *network.Network, today time.Time) (Resolution, error) {
	var res Resolution

	medium, err := network.ParseMedium(p.Medium)
	if err != nil {
		medium = network.InPerson
		res.MediumFallback = true
	}

	date := network.DateOf(today)
	if d := strings.TrimSpace(p.Date); d != "" {
		parsed, err := time.Parse(time.DateOnly, d)
		if err != nil {
			return Resolution{}, fmt.Errorf("date %q is not YYYY-MM-DD: %w", d, err)
		}
		date = network.DateOf(parsed)
	}

	seen := make(map[network.PersonID]bool)
	for _, name := range p.PersonNames {
		person, err := network.ResolvePerson(n, name, network.ScopeActive)
		var ambiguous *network.AmbiguousError
		switch {
		case errors.As(err, &ambiguous):
			res.Ambiguous = append(res.Ambiguous, ambiguous)
			continue
		case errors.Is(err, network.ErrNotFound), err == nil && person.IsSelf:
			res.Unknown = append(res.Unknown, name)
			continue
		case err != nil:
			return Resolution{}, err
		}
		if seen[person.ID] {
			continue
		}
		seen[person.ID] = true

		req := LogRequest{
			Person:     person,
			Medium:     medium,
			MyLocation: p.Location,
			Topics:     p.Topics,
			Note:       p.Note,
			Date:       date,
		}
		if medium == network.InPerson {
			req.TheirLocation = p.Location
		} else {
			req.TheirLocation = p.TheirLocation
		}
		res.Requests = append(res.Requests, req)
	}
	return res, nil
}

// Apply records every request against n. Either all of them are recorded
// or n is returned untouched with the first error.
func Apply(n *network.Network, reqs []LogRequest) (*network.Network, []network.Interaction, error) {
	next := n
	logged := make([]network.Interaction, 0, len(reqs))
	for _, r := range reqs {
		var (
			in  network.Interaction
			err error
		)
		if r.Medium == network.InPerson {
			next, in, err = network.LogInPerson(next, r.Person.ID, network.InPersonLog{
				Location: r.MyLocation,
				Topics:   r.Topics,
				Note:     r.Note,
				Date:     r.Date,
			})
		} else {
			next, in, err = network.LogRemote(next, r.Person.ID, network.RemoteLog{
				Medium:        r.Medium,
				MyLocation:    r.MyLocation,
				TheirLocation: r.TheirLocation,
				Topics:        r.Topics,
				Note:          r.Note,
				Date:          r.Date,
			})
		}
		if err != nil {
			return n, nil, fmt.Errorf("logging interaction with %s: %w", r.Person.Name, err)
		}
		logged = append(logged, in)
	}
	return next, logged, nil
}
