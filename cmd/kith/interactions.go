package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/session"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record an interaction with someone",
}

type interactionFlags struct {
	location string
	topics   string
	note     string
	date     string
}

func (f *interactionFlags) register(cmd *cobra.Command, locationHelp string) {
	cmd.Flags().StringVar(&f.location, "location", "", locationHelp+" (defaults to default_location from the config)")
	cmd.Flags().StringVar(&f.topics, "topics", "", "Comma-separated topics (required)")
	cmd.Flags().StringVar(&f.note, "note", "", "Free-form note")
	cmd.Flags().StringVar(&f.date, "date", "", "Date (YYYY-MM-DD, default today)")
	cmd.MarkFlagRequired("topics")
}

func (f *interactionFlags) myLocation() (string, error) {
	loc := f.location
	if strings.TrimSpace(loc) == "" {
		loc = cfg.DefaultLocation
	}
	if loc == "" {
		return "", errors.New("--location is required (or set default_location in the config)")
	}
	return loc, nil
}

var inPersonFlags interactionFlags

var logInPersonCmd = &cobra.Command{
	Use:   "in-person <person>...",
	Short: "Record meeting someone in person",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDate(inPersonFlags.date)
		if err != nil {
			return err
		}
		location, err := inPersonFlags.myLocation()
		if err != nil {
			return err
		}
		l := network.InPersonLog{
			Location: location,
			Topics:   splitList(inPersonFlags.topics),
			Note:     inPersonFlags.note,
			Date:     date,
		}
		return logWith(cmd, args, func(n *network.Network, id network.PersonID) (*network.Network, network.Interaction, error) {
			return network.LogInPerson(n, id, l)
		})
	},
}

var (
	remoteFlags       interactionFlags
	remoteMediumFlag  string
	theirLocationFlag string
)

var logRemoteCmd = &cobra.Command{
	Use:   "remote <person>...",
	Short: "Record a call, video call, text or social media exchange",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		medium, err := network.ParseMedium(remoteMediumFlag)
		if err != nil {
			return fmt.Errorf("%w (use Text, PhoneCall, VideoCall or SocialMedia)", err)
		}
		date, err := parseDate(remoteFlags.date)
		if err != nil {
			return err
		}
		location, err := remoteFlags.myLocation()
		if err != nil {
			return err
		}
		l := network.RemoteLog{
			Medium:        medium,
			MyLocation:    location,
			TheirLocation: theirLocationFlag,
			Topics:        splitList(remoteFlags.topics),
			Note:          remoteFlags.note,
			Date:          date,
		}
		return logWith(cmd, args, func(n *network.Network, id network.PersonID) (*network.Network, network.Interaction, error) {
			return network.LogRemote(n, id, l)
		})
	},
}

// logWith records the same interaction with every named person. Either all
// of them are recorded or none.
func logWith(cmd *cobra.Command, queries []string, log func(*network.Network, network.PersonID) (*network.Network, network.Interaction, error)) error {
	sess, dbConn, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer dbConn.Close()

	people := make([]network.Person, 0, len(queries))
	for _, q := range queries {
		p, err := network.ResolvePerson(sess.Network(), q, network.ScopeActive)
		if err != nil {
			return err
		}
		people = append(people, p)
	}

	logged, err := session.Do(cmd.Context(), sess, "log interaction", func(n *network.Network) (*network.Network, []network.Interaction, error) {
		var out []network.Interaction
		for _, p := range people {
			next, in, err := log(n, p.ID)
			if err != nil {
				return nil, nil, fmt.Errorf("logging interaction with %s: %w", p.Name, err)
			}
			n = next
			out = append(out, in)
		}
		return n, out, nil
	})
	if err != nil {
		return err
	}
	for i, in := range logged {
		fmt.Printf("Logged with %s: ", people[i].Name)
		printInteraction(in)
	}
	return nil
}

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history <person>",
	Short: "Show interactions with someone, most recent first",
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
		history := network.InteractionsWith(n, p.ID)
		if len(history) == 0 {
			fmt.Printf("No interactions with %s yet.\n", p.Name)
			return nil
		}
		if historyLimitFlag > 0 && len(history) > historyLimitFlag {
			history = history[:historyLimitFlag]
		}
		fmt.Printf("Interactions with %s:\n", p.Name)
		for _, in := range history {
			printInteraction(in)
		}
		return nil
	},
}

var rangeCmd = &cobra.Command{
	Use:   "range <from> <to>",
	Short: "Show every interaction between two dates (YYYY-MM-DD, inclusive)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDate(args[0])
		if err != nil {
			return err
		}
		to, err := parseDate(args[1])
		if err != nil {
			return err
		}
		if to.Before(from) {
			return fmt.Errorf("%s is before %s", args[1], args[0])
		}

		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		found := network.InteractionsInRange(sess.Network(), from, to)
		if len(found) == 0 {
			fmt.Println("No interactions in that range.")
			return nil
		}
		for _, pi := range found {
			fmt.Printf("%s: ", pi.Person.Name)
			printInteraction(pi.Interaction)
		}
		return nil
	},
}

var allRemindersFlag bool

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Show who you are due to get in touch with",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		n := sess.Network()
		today := network.Today()
		reminders := network.PeopleNeedingReminder(n, today)
		if allRemindersFlag {
			reminders = network.AllReminders(n, today)
		}
		if len(reminders) == 0 {
			fmt.Println("You're all caught up.")
			return nil
		}
		fmt.Println("Name | Every | Last contact | Status")
		fmt.Println("------------------------------------------------------------")
		for _, rs := range reminders {
			last := "never"
			if rs.Contacted {
				last = sinceText(rs.DaysSince)
			}
			status := rs.Status.String()
			if !rs.Status.Due() {
				status = "on track"
			}
			fmt.Printf("%s | %d days | %s | %s\n", rs.Person.Name, rs.ReminderDays, last, status)
		}
		return nil
	},
}

var staleDaysFlag int

var staleCmd = &cobra.Command{
	Use:   "stale",
	Short: "List people you have not talked to in a while",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if staleDaysFlag < 0 {
			return errors.New("--days must not be negative")
		}
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		stale := network.NotContactedIn(sess.Network(), staleDaysFlag, network.Today())
		if len(stale) == 0 {
			fmt.Printf("Everyone has been contacted in the last %d days.\n", staleDaysFlag)
			return nil
		}
		for _, s := range stale {
			if !s.Contacted {
				fmt.Printf("%s | never contacted\n", s.Person.Name)
				continue
			}
			fmt.Printf("%s | %s\n", s.Person.Name, sinceText(s.DaysSince))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize your network",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, dbConn, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer dbConn.Close()

		s := network.ComputeStats(sess.Network(), network.Today())
		fmt.Println("Network Stats:")
		fmt.Printf("People:               %d (%d active, %d archived)\n", s.TotalPeople, s.ActivePeople, s.ArchivedPeople)
		fmt.Printf("Relationships:        %d\n", s.TotalRelationships)
		fmt.Printf("Interactions:         %d\n", s.TotalInteractions)
		fmt.Printf("Circles:              %d (%d active, %d archived)\n", s.TotalCircles, s.ActiveCircles, s.ArchivedCircles)
		fmt.Printf("Reminders overdue:    %d\n", s.RemindersOverdue)
		fmt.Printf("Custom contact types: %d\n", s.CustomContactTypes)
		fmt.Printf("Never contacted:      %d\n", s.NeverContacted)
		fmt.Printf("No reminder set:      %d\n", s.NoReminderSet)
		if s.LongestGap != nil {
			fmt.Printf("Longest gap:          %s (%s)\n", s.LongestGap.Name, network.FormatDaysSince(s.LongestGap.Days))
		}
		return nil
	},
}

func initLogCmd() {
	inPersonFlags.register(logInPersonCmd, "Where you met")

	remoteFlags.register(logRemoteCmd, "Where you were")
	logRemoteCmd.Flags().StringVar(&remoteMediumFlag, "medium", "", "Text, PhoneCall, VideoCall or SocialMedia (required)")
	logRemoteCmd.Flags().StringVar(&theirLocationFlag, "their-location", "", "Where they were")
	logRemoteCmd.MarkFlagRequired("medium")

	logCmd.AddCommand(logInPersonCmd, logRemoteCmd)
}

func initQueryCmds() {
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 0, "Show at most N interactions")
	remindersCmd.Flags().BoolVar(&allRemindersFlag, "all", false, "Include reminders that are not due yet")
	staleCmd.Flags().IntVar(&staleDaysFlag, "days", 30, "Minimum days since last contact")
}
