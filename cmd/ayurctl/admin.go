package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/ayurconnect/internal/config"
	"github.com/bryanwahyu/ayurconnect/internal/infra/db"
	"github.com/bryanwahyu/ayurconnect/internal/middleware"
)

// openDB connects with the server's own config file and ENV.
func openDB(cmd *cobra.Command, configPath string) (*db.Conn, error) {
	cfg, err := config.Read(configPath)
	if err != nil {
		return nil, err
	}
	if !cfg.Database.Enabled() {
		return nil, fmt.Errorf("no database configured (set DB_DRIVER)")
	}
	return db.Open(cmd.Context(), cfg.Database.Driver, cfg.DSN())
}

func newMigrateCmd() *cobra.Command {
	var (
		configPath string
		status     bool
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply lead log migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := openDB(cmd, configPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()

			if status {
				list, err := conn.Status(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "VERSION\tSTATE\tAPPLIED\tSOURCE")
				for _, s := range list {
					applied := "-"
					if !s.AppliedAt.IsZero() {
						applied = s.AppliedAt.Format(time.RFC3339)
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
				}
				return nil
			}

			results, err := conn.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(w, "schema is up to date")
				return nil
			}
			for _, r := range results {
				fmt.Fprintf(w, "applied\t%d\t%s\t%s\n", r.Source.Version, r.Source.Path, r.Duration.Round(time.Millisecond))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default CONFIG_PATH or ./config.yaml)")
	cmd.Flags().BoolVar(&status, "status", false, "only show migration status")
	return cmd
}

func newLeadsCmd(opts *rootOptions) *cobra.Command {
	var (
		configPath string
		limit      int
	)
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "List the most recent login and contact leads",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := openDB(cmd, configPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			list, err := conn.Leads().Recent(cmd.Context(), middleware.ValidateLimit(limit))
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), list)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "CREATED\tSOURCE\tNAME\tEMAIL\tPHONE")
			for _, l := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", l.CreatedAt.Local().Format("2006-01-02 15:04"), l.Source, l.Name, l.Email, l.Phone)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default CONFIG_PATH or ./config.yaml)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of leads (max 100)")
	return cmd
}
