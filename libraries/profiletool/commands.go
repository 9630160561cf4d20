package profiletool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nbd-wtf/go-nostr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"nostrprofiles/engine/actors"
	"nostrprofiles/engine/helpers"
	"nostrprofiles/messaging/relays"
	"nostrprofiles/state/profile"
)

func RootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "profile-tool",
		Short:         "build, inspect and publish nostr profile entries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var nickname string
	var fields []string
	addEntryFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&nickname, "nickname", "n", "", "the nickname other agents will search for")
		cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "a key=value field, repeatable; a repeated key keeps the last value")
	}

	encode := &cobra.Command{
		Use:   "encode",
		Short: "print the canonical encoding and content address of a profile entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := buildEntry(nickname, fields)
			if err != nil {
				return err
			}
			b, err := entry.Encode()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", b, profile.Address(b))
			return nil
		},
	}
	addEntryFlags(encode)
	rootCmd.AddCommand(encode)

	validate := &cobra.Command{
		Use:   "validate [file]",
		Short: "check that an encoded entry would be admitted, reading stdin when no file or - is given; one trailing newline is ignored",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			entry, err := profile.Verify(b)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid\nnickname: %s\nfields: %d\naddress: %s\n", entry.Nickname(), entry.Len(), profile.Address(b))
			return nil
		},
	}
	rootCmd.AddCommand(validate)

	nick := &cobra.Command{
		Use:   "nickname [file]",
		Short: "print the nickname of an encoded entry without decoding its fields; one trailing newline is ignored",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			n, err := profile.Nickname(b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	rootCmd.AddCommand(nick)

	var publish bool
	event := &cobra.Command{
		Use:   "event",
		Short: "sign a profile event with the local wallet and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := buildEntry(nickname, fields)
			if err != nil {
				return err
			}
			loadConfig()
			e, err := helpers.ProfileEvent(entry)
			if err != nil {
				return err
			}
			return printAndPublish(cmd, e, publish)
		},
	}
	addEntryFlags(event)
	event.Flags().BoolVarP(&publish, "publish", "p", false, "also publish the event to the configured relays")
	rootCmd.AddCommand(event)

	var reason string
	del := &cobra.Command{
		Use:   "delete <event id>",
		Short: "sign a deletion event for one of your profile events and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loadConfig()
			e, err := helpers.DeleteEvent(args[0], reason)
			if err != nil {
				return err
			}
			return printAndPublish(cmd, e, publish)
		},
	}
	del.Flags().StringVarP(&reason, "reason", "r", "", "optional reason shown to other clients")
	del.Flags().BoolVarP(&publish, "publish", "p", false, "also publish the event to the configured relays")
	rootCmd.AddCommand(del)

	return rootCmd
}

// buildEntry turns key=value flags into an entry. The entry is not validated here so
// encode can still show what an invalid entry looks like.
func buildEntry(nickname string, fields []string) (profile.Entry, error) {
	pairs := make([][2]string, 0, len(fields))
	for _, f := range fields {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			return profile.Entry{}, fmt.Errorf("field %q is not in key=value form", f)
		}
		pairs = append(pairs, [2]string{k, v})
	}
	return profile.NewFromPairs(nickname, pairs...), nil
}

// readInput drops a single trailing newline, as left by echo or an editor. Any other
// deviation from the canonical bytes still reaches the decoder.
func readInput(cmd *cobra.Command, args []string) (b []byte, err error) {
	if len(args) == 0 || args[0] == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(b, []byte("\n")), nil
}

func loadConfig() {
	if actors.MakeOrGetConfig() != nil {
		return
	}
	conf := viper.New()
	actors.InitConfig(conf)
	actors.SetConfig(conf)
}

func printAndPublish(cmd *cobra.Command, e nostr.Event, publish bool) error {
	b, err := json.MarshalIndent(e, "", " ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	if !publish {
		return nil
	}
	return relays.PublishToRelays(context.Background(), []nostr.Event{e}, actors.MakeOrGetConfig().GetStringSlice("relaysMust"))
}
