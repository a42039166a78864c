package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Adda-Baaj/dummy-feeds/pkg/dummy"
	"github.com/spf13/cobra"
)

type lookupClient interface {
	dummy.Services
	dummy.Fetcher
}

type rootOptions struct {
	strict  bool
	timeout time.Duration
}

func newRootCmd(newClient func() (lookupClient, error), out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "dummyctl",
		Short:         "Query the placeholder posts and exchange-rate APIs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVar(&opts.strict, "strict", false, "fail with the classified error instead of printing an empty result")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall deadline for the lookup")

	root.AddCommand(
		&cobra.Command{
			Use:   "posts [title-filter]",
			Short: "List posts whose title contains the filter (case-insensitive)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				filter := ""
				if len(args) == 1 {
					filter = args[0]
				}
				client, err := newClient()
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				ctx, cancel := opts.context(cmd.Context())
				defer cancel()

				if !opts.strict {
					return printJSON(out, client.GetDummyPosts(ctx, filter))
				}
				posts, err := client.FetchPosts(ctx, filter)
				if err != nil {
					return fmt.Errorf("fetch posts (%s): %w", dummy.Outcome(err), err)
				}
				return printJSON(out, posts)
			},
		},
		&cobra.Command{
			Use:   "rate <BASE/TARGET>",
			Short: "Show the conversion rate for a currency pair, e.g. USD/EUR",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := newClient()
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				ctx, cancel := opts.context(cmd.Context())
				defer cancel()

				if !opts.strict {
					return printJSON(out, client.GetExchangeRate(ctx, args[0]))
				}
				rate, err := client.FetchRate(ctx, args[0])
				if err != nil {
					return fmt.Errorf("fetch rate (%s): %w", dummy.Outcome(err), err)
				}
				return printJSON(out, rate)
			},
		},
	)
	return root
}

func (o *rootOptions) context(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if o.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, o.timeout)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
