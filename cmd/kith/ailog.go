package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unowned-ai/kith/pkg/llm"
	"github.com/unowned-ai/kith/pkg/network"
	"github.com/unowned-ai/kith/pkg/session"
	"github.com/unowned-ai/kith/pkg/store"
)

var (
	aiYesFlag        bool
	aiAddUnknownFlag bool
)

var aiLogCmd = &cobra.Command{
	Use:   "ai-log <description>",
	Short: "Record an interaction described in plain language",
	Long: `Send a plain-language description such as "had coffee with Bob in Berlin,
talked about climbing" to a local model (Ollama by default) and record the
interaction it extracts.

You review the extracted JSON before anything is saved. Edits you make are kept
as corrections and shown to the model next time.

Example:
  kith ai-log "video call with Ada and Bob yesterday about the launch"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		ctx := cmd.Context()

		sess, dbConn, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		n := sess.Network()
		var names []string
		for _, p := range network.ActivePeople(n) {
			if !p.IsSelf {
				names = append(names, p.Name)
			}
		}
		corrections, err := store.RecentCorrections(ctx, dbConn, cfg.AI.Corrections)
		if err != nil {
			return err
		}

		today := network.Today()
		client := llm.NewClient(cfg.AI, logger)
		fmt.Fprintf(os.Stderr, "Asking %s ...\n", cfg.AI.Model)
		parsed, err := client.ParseInteraction(ctx, text, names, corrections, today)
		if err != nil {
			return err
		}

		final := parsed
		if !aiYesFlag {
			final, err = review(bufio.NewReader(cmd.InOrStdin()), parsed)
			if err != nil {
				return err
			}
			if final.JSON() != parsed.JSON() {
				if _, err := store.InsertCorrection(ctx, dbConn, text, parsed.JSON(), final.JSON()); err != nil {
					logger.Warn("failed to save correction", zap.Error(err))
				}
			}
		}

		res, err := final.Resolve(sess.Network(), today)
		if err != nil {
			return err
		}
		if len(res.Unknown) > 0 && aiAddUnknownFlag {
			if err := addUnknown(cmd, sess, res.Unknown); err != nil {
				return err
			}
			if res, err = final.Resolve(sess.Network(), today); err != nil {
				return err
			}
		}
		if res.MediumFallback {
			fmt.Fprintf(os.Stderr, "Unrecognized medium %q, recording as In Person.\n", final.Medium)
		}
		if !res.Complete() {
			return unresolvedError(res)
		}

		for i := range res.Requests {
			if res.Requests[i].MyLocation == "" {
				res.Requests[i].MyLocation = cfg.DefaultLocation
			}
		}
		logged, err := session.Do(ctx, sess, "ai log", func(n *network.Network) (*network.Network, []network.Interaction, error) {
			return llm.Apply(n, res.Requests)
		})
		if err != nil {
			return err
		}
		for i, in := range logged {
			fmt.Printf("Logged with %s: ", res.Requests[i].Person.Name)
			printInteraction(in)
		}
		return nil
	},
}

// review shows the parsed interaction and lets the user accept it, replace
// it with corrected JSON, or cancel.
func review(in *bufio.Reader, parsed llm.Parsed) (llm.Parsed, error) {
	fmt.Println("The model understood:")
	fmt.Println(parsed.JSON())
	for {
		fmt.Print("[a]ccept, [e]dit, [c]ancel: ")
		answer, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return llm.Parsed{}, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "a", "accept", "y", "yes", "":
			return parsed, nil
		case "c", "cancel", "n", "no":
			return llm.Parsed{}, errors.New("cancelled")
		case "e", "edit":
			fmt.Println("Paste the corrected JSON on one line:")
			line, err := in.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return llm.Parsed{}, err
			}
			corrected, perr := llm.ParseResponse(line)
			if perr != nil {
				fmt.Printf("That did not parse: %v\n", perr)
				continue
			}
			return corrected, nil
		}
		if errors.Is(err, io.EOF) {
			return llm.Parsed{}, errors.New("cancelled")
		}
	}
}

func addUnknown(cmd *cobra.Command, sess *session.Session, names []string) error {
	return sess.Apply(cmd.Context(), "add people", func(n *network.Network) (*network.Network, error) {
		for _, name := range names {
			next, p, err := network.AddPerson(n, network.NewPerson{Name: name})
			if err != nil {
				return nil, err
			}
			fmt.Printf("Added %s to your network.\n", p.Name)
			n = next
		}
		return n, nil
	})
}

func unresolvedError(res llm.Resolution) error {
	var msgs []string
	if len(res.Unknown) > 0 {
		msgs = append(msgs, fmt.Sprintf("not in your network: %s (rerun with --add-unknown to add them)", strings.Join(res.Unknown, ", ")))
	}
	for _, amb := range res.Ambiguous {
		msgs = append(msgs, amb.Error())
	}
	return fmt.Errorf("nothing was logged; %s", strings.Join(msgs, "; "))
}

func initAILogCmd() {
	aiLogCmd.Flags().BoolVarP(&aiYesFlag, "yes", "y", false, "Record without reviewing the parsed result")
	aiLogCmd.Flags().BoolVar(&aiAddUnknownFlag, "add-unknown", false, "Add people the model named who are not in your network")
}
