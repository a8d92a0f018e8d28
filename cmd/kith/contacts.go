package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/session"
)

var contactLabelFlag string

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Manage how to reach people",
	Long:  `Add and remove phone numbers, emails, addresses and custom contact entries.`,
}

// contactAdder builds an "add-<kind>" command. add runs inside the session
// against the resolved person.
func contactAdder(use, short string, args int, add func(n *network.Network, id network.PersonID, cmd *cobra.Command, args []string) (*network.Network, network.ContactEntry, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(args),
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
			entry, err := session.Do(cmd.Context(), sess, "add contact", func(n *network.Network) (*network.Network, network.ContactEntry, error) {
				return add(n, p.ID, cmd, args[1:])
			})
			if err != nil {
				return fmt.Errorf("failed to add contact: %w", err)
			}
			fmt.Printf("Added %s for %s: %s (id %s)\n", network.ContactTypeName(sess.Network(), entry), p.Name, entry.Display(), entry.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&contactLabelFlag, "label", "", "Label such as work or home")
	return cmd
}

var addPhoneCmd = contactAdder("add-phone <person> <number>", "Add a phone number", 2,
	func(n *network.Network, id network.PersonID, cmd *cobra.Command, args []string) (*network.Network, network.ContactEntry, error) {
		return network.AddPhone(n, id, args[0], contactLabelFlag)
	})

var addEmailCmd = contactAdder("add-email <person> <email>", "Add an email address", 2,
	func(n *network.Network, id network.PersonID, cmd *cobra.Command, args []string) (*network.Network, network.ContactEntry, error) {
		return network.AddEmail(n, id, args[0], contactLabelFlag)
	})

var addAddressCmd = contactAdder("add-address <person>", "Add a postal address", 1,
	func(n *network.Network, id network.PersonID, cmd *cobra.Command, args []string) (*network.Network, network.ContactEntry, error) {
		var addr network.Address
		addr.Street, _ = cmd.Flags().GetString("street")
		addr.City, _ = cmd.Flags().GetString("city")
		addr.State, _ = cmd.Flags().GetString("state")
		addr.Zip, _ = cmd.Flags().GetString("zip")
		addr.Country, _ = cmd.Flags().GetString("country")
		return network.AddAddress(n, id, addr, contactLabelFlag)
	})

var addCustomCmd = contactAdder("add-custom <person> <type> <value>", "Add a custom contact such as a Discord handle", 3,
	func(n *network.Network, id network.PersonID, cmd *cobra.Command, args []string) (*network.Network, network.ContactEntry, error) {
		ct, ok := network.FindContactType(n, args[0])
		if !ok {
			var err error
			if n, ct, err = network.CreateContactType(n, args[0]); err != nil {
				return nil, network.ContactEntry{}, err
			}
		}
		return network.AddCustomContact(n, id, ct.ID, args[1], contactLabelFlag)
	})

var removeContactCmd = &cobra.Command{
	Use:   "remove <person> <contact-id>",
	Short: "Remove a contact entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := network.ParseID[network.ContactEntry](args[1])
		if err != nil {
			return fmt.Errorf("invalid contact ID: %w", err)
		}
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		p, err := findPerson(sess.Network(), args[0])
		if err != nil {
			return err
		}
		if err := sess.Apply(cmd.Context(), "remove contact", func(n *network.Network) (*network.Network, error) {
			return network.RemoveContact(n, p.ID, entryID)
		}); err != nil {
			return fmt.Errorf("failed to remove contact: %w", err)
		}
		fmt.Printf("Removed contact %s from %s.\n", entryID, p.Name)
		return nil
	},
}

var labelContactCmd = &cobra.Command{
	Use:   "label <person> <contact-id> <label>",
	Short: "Change a contact entry's label; an empty label clears it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := network.ParseID[network.ContactEntry](args[1])
		if err != nil {
			return fmt.Errorf("invalid contact ID: %w", err)
		}
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		p, err := findPerson(sess.Network(), args[0])
		if err != nil {
			return err
		}
		if err := sess.Apply(cmd.Context(), "label contact", func(n *network.Network) (*network.Network, error) {
			return network.UpdateContactLabel(n, p.ID, entryID, args[2])
		}); err != nil {
			return fmt.Errorf("failed to update contact label: %w", err)
		}
		fmt.Println("Contact label updated.")
		return nil
	},
}

var listContactTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List custom contact types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		n := sess.Network()
		types := network.ContactTypes(n)
		if len(types) == 0 {
			fmt.Println("No custom contact types defined.")
			return nil
		}
		fmt.Println("ID | Name | People")
		fmt.Println("------------------------------------------------------------")
		for _, ct := range types {
			fmt.Printf("%s | %s | %d\n", ct.ID, ct.Name, len(network.PeopleWithContactType(n, ct.ID)))
		}
		return nil
	},
}

var createContactTypeCmd = &cobra.Command{
	Use:   "create-type <name>",
	Short: "Define a custom contact type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ct, err := session.Do(cmd.Context(), sess, "create contact type", func(n *network.Network) (*network.Network, network.CustomContactType, error) {
			return network.CreateContactType(n, args[0])
		})
		if err != nil {
			return fmt.Errorf("failed to create contact type: %w", err)
		}
		fmt.Printf("Created contact type %s (id %s)\n", ct.Name, ct.ID)
		return nil
	},
}

var renameContactTypeCmd = &cobra.Command{
	Use:   "rename-type <old name> <new name>",
	Short: "Rename a custom contact type",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		ct, ok := network.FindContactType(sess.Network(), args[0])
		if !ok {
			return fmt.Errorf("contact type %q not found", args[0])
		}
		if err := sess.Apply(cmd.Context(), "rename contact type", func(n *network.Network) (*network.Network, error) {
			return network.RenameContactType(n, ct.ID, args[1])
		}); err != nil {
			return fmt.Errorf("failed to rename contact type: %w", err)
		}
		fmt.Printf("Renamed %s to %s.\n", ct.Name, args[1])
		return nil
	},
}

func initContactsCmd() {
	addAddressCmd.Flags().String("street", "", "Street")
	addAddressCmd.Flags().String("city", "", "City")
	addAddressCmd.Flags().String("state", "", "State or region")
	addAddressCmd.Flags().String("zip", "", "Postal code")
	addAddressCmd.Flags().String("country", "", "Country")

	contactsCmd.AddCommand(
		addPhoneCmd,
		addEmailCmd,
		addAddressCmd,
		addCustomCmd,
		removeContactCmd,
		labelContactCmd,
		listContactTypesCmd,
		createContactTypeCmd,
		renameContactTypeCmd,
	)
}
