package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/flightdesk"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the navigation table in matching order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pages := flightdesk.BookingPages()
			table := pages.Table()
			policy := pages.Policy()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATTERN\tTITLE\tACCESS")
			for _, e := range table.Entries() {
				access := "public"
				if e.Private {
					access = "private"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Pattern, e.Title, access)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\ndefault: %s\nlogin:   %s\nlanding: %s\n",
				table.Default().Pattern, policy.Login, policy.Landing)
			return nil
		},
	}
}

func matchCmd() *cobra.Command {
	var auth bool

	cmd := &cobra.Command{
		Use:   "match <location>",
		Short: "Resolve a location and show the guard decision",
		Long: `Resolve a location against the navigation table the way a navigation
request would, without rendering anything.

  flightdesk match '#/book/payment/55' --auth`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := flightdesk.BookingPages().Plan(args[0], auth)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "entry:\t%s\n", res.Entry.Pattern)
			fmt.Fprintf(w, "title:\t%s\n", res.Entry.Title)
			fmt.Fprintf(w, "match:\t%s (%s)\n", res.Match.Pattern, res.Match.Kind)
			fmt.Fprintf(w, "defaulted:\t%t\n", res.Defaulted)
			for _, name := range []string{"resource", "id", "verb", "code"} {
				if v, ok := res.Match.Params.Lookup(name); ok {
					fmt.Fprintf(w, "param %s:\t%s\n", name, v)
				}
			}
			fmt.Fprintf(w, "outcome:\t%s\n", res.Decision.Outcome)
			if res.Decision.Redirect() {
				fmt.Fprintf(w, "location:\t%s\n", res.Decision.Location)
			}
			fmt.Fprintf(w, "shell:\t%s\n", res.Decision.Shell)
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&auth, "auth", false, "evaluate as an authenticated visitor")

	return cmd
}
