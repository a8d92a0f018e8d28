package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/session"
)

var circlesCmd = &cobra.Command{
	Use:   "circles",
	Short: "Manage circles, named groups of people",
}

var listCirclesCmd = &cobra.Command{
	Use:   "list",
	Short: "List circles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		n := sess.Network()
		circles := network.ActiveCircles(n)
		if includeArchivedFlag {
			circles = append(circles, network.ArchivedCircles(n)...)
		}
		if len(circles) == 0 {
			fmt.Println("No circles found.")
			return nil
		}
		fmt.Println("ID | Name | Members | Archived | Description")
		fmt.Println("------------------------------------------------------------")
		for _, c := range circles {
			fmt.Printf("%s | %s | %d | %t | %s\n", c.ID, c.Name, len(network.CircleMembers(n, c.ID)), c.Archived, orDash(c.Description))
		}
		return nil
	},
}

var showCircleCmd = &cobra.Command{
	Use:   "show <circle>",
	Short: "Show a circle and its members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		n := sess.Network()
		c, err := network.ResolveCircle(n, args[0], network.ScopeAll)
		if err != nil {
			return err
		}
		printCircle(n, c)
		return nil
	},
}

var createCircleCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a circle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		membersStr, _ := cmd.Flags().GetString("members")

		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		members, err := resolvePeople(sess.Network(), splitList(membersStr))
		if err != nil {
			return err
		}
		c, err := session.Do(cmd.Context(), sess, "create circle", func(n *network.Network) (*network.Network, network.Circle, error) {
			return network.CreateCircle(n, args[0], description, members)
		})
		if err != nil {
			return fmt.Errorf("failed to create circle: %w", err)
		}
		printCircle(sess.Network(), c)
		return nil
	},
}

var updateCircleCmd = &cobra.Command{
	Use:   "update <circle>",
	Short: "Rename a circle or change its description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := network.CircleUpdate{
			Name:        network.KeepField[string](),
			Description: stringField(cmd, "description"),
		}
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			u.Name = network.SetField(name)
		}
		if u.Name.Op == network.Keep && u.Description.Op == network.Keep {
			return errors.New("nothing to update: pass --name or --description")
		}
		return changeCircle(cmd, args[0], "update circle", func(n *network.Network, id network.CircleID) (*network.Network, network.Circle, error) {
			return network.UpdateCircle(n, id, u)
		})
	},
}

var addMembersCmd = &cobra.Command{
	Use:   "add <circle> <person>...",
	Short: "Add people to a circle",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeCircle(cmd, args[0], "add circle members", func(n *network.Network, id network.CircleID) (*network.Network, network.Circle, error) {
			people, err := resolvePeople(n, args[1:])
			if err != nil {
				return nil, network.Circle{}, err
			}
			return network.AddCircleMembers(n, id, people)
		})
	},
}

var removeMembersCmd = &cobra.Command{
	Use:   "remove <circle> <person>...",
	Short: "Remove people from a circle",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeCircle(cmd, args[0], "remove circle members", func(n *network.Network, id network.CircleID) (*network.Network, network.Circle, error) {
			people, err := resolvePeople(n, args[1:])
			if err != nil {
				return nil, network.Circle{}, err
			}
			return network.RemoveCircleMembers(n, id, people)
		})
	},
}

var setMembersCmd = &cobra.Command{
	Use:   "set-members <circle> [person...]",
	Short: "Replace a circle's members",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeCircle(cmd, args[0], "set circle members", func(n *network.Network, id network.CircleID) (*network.Network, network.Circle, error) {
			people, err := resolvePeople(n, args[1:])
			if err != nil {
				return nil, network.Circle{}, err
			}
			return network.SetCircleMembers(n, id, people)
		})
	},
}

func archiveCircleCommand(archive bool) *cobra.Command {
	use, short := "archive <circle>", "Archive a circle, keeping its members"
	if !archive {
		use, short = "unarchive <circle>", "Restore an archived circle"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeCircle(cmd, args[0], "archive circle", func(n *network.Network, id network.CircleID) (*network.Network, network.Circle, error) {
				var next *network.Network
				var err error
				if archive {
					next, err = network.ArchiveCircle(n, id)
				} else {
					next, err = network.UnarchiveCircle(n, id)
				}
				if err != nil {
					return nil, network.Circle{}, err
				}
				return next, next.Circles[id], nil
			})
		},
	}
}

var deleteCircleCmd = &cobra.Command{
	Use:   "delete <circle>",
	Short: "Delete a circle permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		c, err := network.ResolveCircle(sess.Network(), args[0], network.ScopeAll)
		if err != nil {
			return err
		}
		if err := sess.Apply(cmd.Context(), "delete circle", func(n *network.Network) (*network.Network, error) {
			return network.DeleteCircle(n, c.ID)
		}); err != nil {
			return fmt.Errorf("failed to delete circle: %w", err)
		}
		fmt.Printf("Circle '%s' deleted successfully.\n", c.Name)
		return nil
	},
}

func changeCircle(cmd *cobra.Command, query, name string, op func(*network.Network, network.CircleID) (*network.Network, network.Circle, error)) error {
	sess, dbConn, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer dbConn.Close()

	target, err := network.ResolveCircle(sess.Network(), query, network.ScopeAll)
	if err != nil {
		return err
	}
	c, err := session.Do(cmd.Context(), sess, name, func(n *network.Network) (*network.Network, network.Circle, error) {
		return op(n, target.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to %s: %w", name, err)
	}
	printCircle(sess.Network(), c)
	return nil
}

func printCircle(n *network.Network, c network.Circle) {
	fmt.Println("Circle Details:")
	fmt.Printf("ID:          %s\n", c.ID)
	fmt.Printf("Name:        %s\n", c.Name)
	fmt.Printf("Description: %s\n", orDash(c.Description))
	fmt.Printf("Archived:    %t\n", c.Archived)
	members := network.CircleMembers(n, c.ID)
	fmt.Printf("Members:     %d\n", len(members))
	for _, p := range members {
		fmt.Printf("  - %s\n", p.Name)
	}
}

func initCirclesCmd() {
	listCirclesCmd.Flags().BoolVar(&includeArchivedFlag, "include-archived", false, "Include archived circles")

	createCircleCmd.Flags().String("description", "", "What the circle is about")
	createCircleCmd.Flags().String("members", "", "Comma-separated people to add")

	updateCircleCmd.Flags().String("name", "", "New name")
	updateCircleCmd.Flags().String("description", "", "New description (empty clears it)")

	circlesCmd.AddCommand(
		listCirclesCmd,
		showCircleCmd,
		createCircleCmd,
		updateCircleCmd,
		addMembersCmd,
		removeMembersCmd,
		setMembersCmd,
		archiveCircleCommand(true),
		archiveCircleCommand(false),
		deleteCircleCmd,
	)
}
