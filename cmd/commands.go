package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/codetesla51/stash/expiry"
	"github.com/codetesla51/stash/webstorage"
)

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value stored under KEY as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := a.storage().GetItem(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), value)
		},
	}
}

// parseValue treats valid JSON as JSON and anything else as a plain string.
func parseValue(s string) any {
	var v any
	if json.Unmarshal([]byte(s), &v) == nil {
		return v
	}
	return s
}

func newSetCommand(a *app) *cobra.Command {
	var expire string

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store VALUE under KEY",
		Long: "Store VALUE under KEY. VALUE is parsed as JSON when possible and " +
			"stored as a string otherwise.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []webstorage.SetOption
			if expire != "" {
				opts = append(opts, webstorage.WithExpire(expiry.Parse(expire)))
			}
			return a.storage().SetItem(args[0], parseValue(args[1]), opts...)
		},
	}
	cmd.Flags().StringVarP(&expire, "expire", "e", "", `expiry as "<n>h", "<n>d" or epoch milliseconds`)
	return cmd
}

func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm KEY",
		Aliases: []string{"remove"},
		Short:   "Remove KEY",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.storage().RemoveItem(args[0])
		},
	}
}

func newClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.storage().Clear()
		},
	}
}

func newKeysCommand(a *app) *cobra.Command {
	var filter, exclude []string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List keys, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := a.storage().Keys(webstorage.WithFilter(filter...), webstorage.WithExclude(exclude...))
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&filter, "filter", nil, "only list these keys")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "omit these keys (ignored with --filter)")
	return cmd
}

func newKeyCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "key INDEX",
		Short: "Print the key at INDEX, or null",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			key, ok, err := a.storage().Key(index)
			if err != nil {
				return err
			}
			if !ok {
				return printJSON(cmd.OutOrStdout(), nil)
			}
			return printJSON(cmd.OutOrStdout(), key)
		},
	}
}

func newLenCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "len",
		Short: "Print the number of entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.storage().Length())
			return err
		},
	}
}
