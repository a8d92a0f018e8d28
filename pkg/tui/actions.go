package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/session"
)

// networkMsg carries a fresh snapshot to display.
type networkMsg struct {
	net *network.Network
}

// personChangedMsg follows a successful edit made from the UI.
type personChangedMsg struct {
	net    *network.Network
	person network.Person
}

// Show the snapshot currently held by the session
func loadNetwork(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		return networkMsg{net: sess.Network()}
	}
}

// Re-read the database, picking up changes made by another process
func reloadNetwork(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		if err := sess.Reload(context.Background()); err != nil {
			return err
		}
		return networkMsg{net: sess.Network()}
	}
}

func addPerson(sess *session.Session, np network.NewPerson) tea.Cmd {
	return func() tea.Msg {
		p, err := session.Do(context.Background(), sess, "add person", func(n *network.Network) (*network.Network, network.Person, error) {
			return network.AddPerson(n, np)
		})
		if err != nil {
			return formErrorMsg{err: err}
		}
		return personChangedMsg{net: sess.Network(), person: p}
	}
}

func setArchived(sess *session.Session, id network.PersonID, archived bool) tea.Cmd {
	return func() tea.Msg {
		err := sess.Apply(context.Background(), "archive person", func(n *network.Network) (*network.Network, error) {
			if archived {
				return network.ArchivePerson(n, id)
			}
			return network.UnarchivePerson(n, id)
		})
		if err != nil {
			return err
		}
		p, _ := network.GetPerson(sess.Network(), id)
		return personChangedMsg{net: sess.Network(), person: p}
	}
}

// formErrorMsg is a validation failure shown inside the form rather than
// replacing the whole screen.
type formErrorMsg struct {
	err error
}
