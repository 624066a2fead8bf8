package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Veraticus/binder/internal/cli"
	"github.com/Veraticus/binder/internal/expansion"
	"github.com/spf13/cobra"
)

func expansionsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "expansions",
		Short: "List expansions for the configured game",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client, err := newClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			all, err := client.Expansions(cmd.Context())
			if err != nil {
				return err
			}

			matches := expansion.Search(expansion.NewTable(all, cfg.GameID), search)
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No expansions found."))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Code"),
				cli.BoldStyle.Render("Name"))
			for _, e := range matches {
				fmt.Fprintf(w, "%d\t%s\t%s\n", e.ID, e.Code, e.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show expansions whose name or code contains this text")

	return cmd
}
