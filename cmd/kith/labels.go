package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/session"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "Manage relationship labels",
	Long:  `Labels describe what someone is to you: friend, family, coworker and so on.`,
}

var listLabelsCmd = &cobra.Command{
	Use:   "list",
	Short: "List relationship labels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		n := sess.Network()
		labels := network.ActiveLabels(n)
		if includeArchivedFlag {
			labels = append(labels, network.ArchivedLabels(n)...)
		}
		if len(labels) == 0 {
			fmt.Println("No labels found.")
			return nil
		}
		fmt.Println("ID | Name | People | Archived")
		fmt.Println("------------------------------------------------------------")
		for _, l := range labels {
			fmt.Printf("%s | %s | %d | %t\n", l.ID, l.Name, len(network.PeopleWithLabel(n, l.ID)), l.Archived)
		}
		return nil
	},
}

var createLabelCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a relationship label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		l, err := session.Do(cmd.Context(), sess, "create label", func(n *network.Network) (*network.Network, network.RelationshipLabel, error) {
			return network.CreateLabel(n, args[0])
		})
		if err != nil {
			return fmt.Errorf("failed to create label: %w", err)
		}
		fmt.Printf("Created label %s (id %s)\n", l.Name, l.ID)
		return nil
	},
}

var renameLabelCmd = &cobra.Command{
	Use:   "rename <label> <new name>",
	Short: "Rename a relationship label",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		old, err := network.ResolveLabel(sess.Network(), args[0], network.ScopeAll)
		if err != nil {
			return err
		}
		l, err := session.Do(cmd.Context(), sess, "rename label", func(n *network.Network) (*network.Network, network.RelationshipLabel, error) {
			return network.UpdateLabel(n, old.ID, args[1])
		})
		if err != nil {
			return fmt.Errorf("failed to rename label: %w", err)
		}
		fmt.Printf("Renamed %s to %s.\n", old.Name, l.Name)
		return nil
	},
}

func archiveLabelCommand(archive bool) *cobra.Command {
	use, short, done := "archive <label>", "Archive a label; people keep it", "Archived"
	if !archive {
		use, short, done = "unarchive <label>", "Restore an archived label", "Restored"
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

			l, err := network.ResolveLabel(sess.Network(), args[0], network.ScopeAll)
			if err != nil {
				return err
			}
			if err := sess.Apply(cmd.Context(), "archive label", func(n *network.Network) (*network.Network, error) {
				if archive {
					return network.ArchiveLabel(n, l.ID)
				}
				return network.UnarchiveLabel(n, l.ID)
			}); err != nil {
				return err
			}
			fmt.Printf("%s label %s.\n", done, l.Name)
			return nil
		},
	}
}

var labelPeopleCmd = &cobra.Command{
	Use:   "people <label>",
	Short: "List people carrying a label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		printPeople(network.PeopleWithLabelName(sess.Network(), args[0]))
		return nil
	},
}

var relationshipCmd = &cobra.Command{
	Use:     "relationship",
	Aliases: []string{"rel"},
	Short:   "Manage your relationship with someone",
}

var setRelationshipCmd = &cobra.Command{
	Use:   "set <person>",
	Short: "Set labels and reminder cadence, replacing what was there",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		labelsStr, _ := cmd.Flags().GetString("labels")
		return changeRelationship(cmd, args[0], "set relationship", func(n *network.Network, id network.PersonID) (*network.Network, network.Relationship, error) {
			labelIDs, err := resolveLabels(n, splitList(labelsStr))
			if err != nil {
				return nil, network.Relationship{}, err
			}
			return network.SetRelationship(n, id, labelIDs, reminderFlag(cmd, "reminder"))
		})
	},
}

var addLabelsCmd = &cobra.Command{
	Use:   "add-labels <person> <label>[,<label>...]",
	Short: "Add labels to an existing relationship",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeRelationship(cmd, args[0], "add labels", func(n *network.Network, id network.PersonID) (*network.Network, network.Relationship, error) {
			labelIDs, err := resolveLabels(n, splitList(args[1]))
			if err != nil {
				return nil, network.Relationship{}, err
			}
			return network.AddLabels(n, id, labelIDs)
		})
	},
}

var removeLabelsCmd = &cobra.Command{
	Use:   "remove-labels <person> <label>[,<label>...]",
	Short: "Remove labels from an existing relationship",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeRelationship(cmd, args[0], "remove labels", func(n *network.Network, id network.PersonID) (*network.Network, network.Relationship, error) {
			var labelIDs []network.LabelID
			for _, q := range splitList(args[1]) {
				l, err := network.ResolveLabel(n, q, network.ScopeAll)
				if err != nil {
					return nil, network.Relationship{}, err
				}
				labelIDs = append(labelIDs, l.ID)
			}
			return network.RemoveLabels(n, id, labelIDs)
		})
	},
}

var reminderCmd = &cobra.Command{
	Use:   "reminder <person> <days>",
	Short: "Set how often to get in touch; 0 turns the reminder off",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid number of days %q", args[1])
		}
		var reminder *int
		if days != 0 {
			reminder = &days
		}
		return changeRelationship(cmd, args[0], "set reminder", func(n *network.Network, id network.PersonID) (*network.Network, network.Relationship, error) {
			return network.SetReminder(n, id, reminder)
		})
	},
}

func changeRelationship(cmd *cobra.Command, query, name string, op func(*network.Network, network.PersonID) (*network.Network, network.Relationship, error)) error {
	sess, dbConn, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer dbConn.Close()

	p, err := findPerson(sess.Network(), query)
	if err != nil {
		return err
	}
	r, err := session.Do(cmd.Context(), sess, name, func(n *network.Network) (*network.Network, network.Relationship, error) {
		return op(n, p.ID)
	})
	if err != nil {
		return relationshipError(name, query, err)
	}

	reminder := "off"
	if r.HasReminder() {
		reminder = fmt.Sprintf("every %d days", r.ReminderDays)
	}
	fmt.Printf("%s: labels %s, reminder %s\n", p.Name, labelNames(network.LabelsFor(sess.Network(), p.ID)), reminder)
	return nil
}

func relationshipError(name, query string, err error) error {
	if network.IsMissingRelationship(err) {
		return fmt.Errorf("failed to %s: %w; create it with: kith relationship set %q", name, err, query)
	}
	return fmt.Errorf("failed to %s: %w", name, err)
}

func initLabelsCmd() {
	listLabelsCmd.Flags().BoolVar(&includeArchivedFlag, "include-archived", false, "Include archived labels")

	labelsCmd.AddCommand(
		listLabelsCmd,
		createLabelCmd,
		renameLabelCmd,
		archiveLabelCommand(true),
		archiveLabelCommand(false),
		labelPeopleCmd,
	)
}

func initRelationshipCmd() {
	setRelationshipCmd.Flags().String("labels", "", "Comma-separated labels")
	setRelationshipCmd.Flags().Int("reminder", 0, "Remind me every N days (0 for none)")

	relationshipCmd.AddCommand(setRelationshipCmd, addLabelsCmd, removeLabelsCmd, reminderCmd)
}
