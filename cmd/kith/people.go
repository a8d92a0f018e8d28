package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/session"
)

var (
	includeArchivedFlag bool
	archivedOnlyFlag    bool
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Manage people in your network",
	Long:  `Add, list, show, update, search, archive and restore people.`,
}

var listPeopleCmd = &cobra.Command{
	Use:   "list",
	Short: "List people",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		n := sess.Network()
		switch {
		case archivedOnlyFlag:
			printPeople(network.ArchivedPeople(n))
		case includeArchivedFlag:
			printPeople(append(network.ActivePeople(n), network.ArchivedPeople(n)...))
		default:
			printPeople(network.ActivePeople(n))
		}
		return nil
	},
}

var addPersonCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add someone to your network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nickname, _ := cmd.Flags().GetString("nickname")
		howWeMet, _ := cmd.Flags().GetString("how-we-met")
		notes, _ := cmd.Flags().GetString("notes")
		location, _ := cmd.Flags().GetString("location")
		birthdayStr, _ := cmd.Flags().GetString("birthday")
		labelsStr, _ := cmd.Flags().GetString("labels")

		birthday, err := parseDate(birthdayStr)
		if err != nil {
			return err
		}

		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		labelIDs, err := resolveLabels(sess.Network(), splitList(labelsStr))
		if err != nil {
			return err
		}
		reminder := reminderFlag(cmd, "reminder")

		p, err := session.Do(cmd.Context(), sess, "add person", func(n *network.Network) (*network.Network, network.Person, error) {
			next, p, err := network.AddPerson(n, network.NewPerson{
				Name:     args[0],
				Nickname: nickname,
				HowWeMet: howWeMet,
				Birthday: birthday,
				Notes:    notes,
				Location: location,
			})
			if err != nil {
				return nil, network.Person{}, err
			}
			if len(labelIDs) > 0 || reminder != nil {
				if next, _, err = network.SetRelationship(next, p.ID, labelIDs, reminder); err != nil {
					return nil, network.Person{}, err
				}
			}
			return next, p, nil
		})
		if err != nil {
			return fmt.Errorf("failed to add person: %w", err)
		}
		printPerson(sess.Network(), p, network.Today())
		return nil
	},
}

var showPersonCmd = &cobra.Command{
	Use:   "show <name or id>",
	Short: "Show someone's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		n := sess.Network()
		p, err := findPerson(n, args[0])
		if err != nil {
			return err
		}
		printPerson(n, p, network.Today())
		return nil
	},
}

var updatePersonCmd = &cobra.Command{
	Use:   "update <name or id>",
	Short: "Update someone's details",
	Long: `Update only the fields given as flags. Passing an empty value clears an
optional field, e.g. --nickname "".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		birthday, err := dateField(cmd, "birthday")
		if err != nil {
			return err
		}
		u := network.PersonUpdate{
			Name:     network.KeepField[string](),
			Nickname: stringField(cmd, "nickname"),
			HowWeMet: stringField(cmd, "how-we-met"),
			Birthday: birthday,
			Notes:    stringField(cmd, "notes"),
			Location: stringField(cmd, "location"),
		}
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			u.Name = network.SetField(name)
		}

		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		target, err := findPerson(sess.Network(), args[0])
		if err != nil {
			return err
		}
		p, err := session.Do(cmd.Context(), sess, "update person", func(n *network.Network) (*network.Network, network.Person, error) {
			return network.UpdatePerson(n, target.ID, u)
		})
		if err != nil {
			return fmt.Errorf("failed to update person: %w", err)
		}
		printPerson(sess.Network(), p, network.Today())
		return nil
	},
}

func archiveCommand(archive bool) *cobra.Command {
	use, short, done := "archive <name or id>", "Archive someone, hiding them from lists", "Archived"
	if !archive {
		use, short, done = "unarchive <name or id>", "Restore an archived person", "Restored"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, dbConn, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer dbConn.Close()

			p, err := findPerson(sess.Network(), args[0])
			if err != nil {
				return err
			}
			err = sess.Apply(cmd.Context(), "archive person", func(n *network.Network) (*network.Network, error) {
				if archive {
					return network.ArchivePerson(n, p.ID)
				}
				return network.UnarchivePerson(n, p.ID)
			})
			if errors.Is(err, network.ErrCannotArchiveSelf) {
				return errors.New("you cannot archive yourself")
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s %s.\n", done, p.Name)
			return nil
		},
	}
}

var searchPeopleCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find people by name or nickname",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		scope := network.ScopeActive
		if includeArchivedFlag {
			scope = network.ScopeAll
		}
		printPeople(network.SearchPeople(sess.Network(), args[0], scope))
		return nil
	},
}

// findPerson accepts an id or a name query over everyone, archived
// included.
func findPerson(n *network.Network, query string) (network.Person, error) {
	if id, err := network.ParseID[network.Person](query); err == nil {
		if p, ok := network.GetPerson(n, id); ok {
			return p, nil
		}
	}
	return network.ResolvePerson(n, query, network.ScopeAll)
}

func addPersonFlags(cmd *cobra.Command) {
	cmd.Flags().String("nickname", "", "Nickname")
	cmd.Flags().String("how-we-met", "", "How you met")
	cmd.Flags().String("birthday", "", "Birthday (YYYY-MM-DD)")
	cmd.Flags().String("notes", "", "Free-form notes")
	cmd.Flags().String("location", "", "Where they live")
}

func initPeopleCmd() {
	listPeopleCmd.Flags().BoolVar(&includeArchivedFlag, "include-archived", false, "Include archived people")
	listPeopleCmd.Flags().BoolVar(&archivedOnlyFlag, "archived", false, "Only list archived people")
	searchPeopleCmd.Flags().BoolVar(&includeArchivedFlag, "include-archived", false, "Include archived people")

	addPersonFlags(addPersonCmd)
	addPersonCmd.Flags().String("labels", "", "Comma-separated relationship labels, e.g. friend,coworker")
	addPersonCmd.Flags().Int("reminder", 0, "Remind me to get in touch every N days")

	addPersonFlags(updatePersonCmd)
	updatePersonCmd.Flags().String("name", "", "New name")

	peopleCmd.AddCommand(
		listPeopleCmd,
		addPersonCmd,
		showPersonCmd,
		updatePersonCmd,
		archiveCommand(true),
		archiveCommand(false),
		searchPeopleCmd,
	)
}
