package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/udisondev/lightning/internal/build"
	"github.com/udisondev/lightning/internal/db"
)

func (a *app) buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Store builds in and fetch them from the database",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "save <build.yaml>",
			Short: "Store a build file under its name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := a.loadBuild(args[0])
				if err != nil {
					return err
				}
				return a.withRepo(cmd.Context(), func(repo *db.BuildRepository) error {
					written, err := repo.Save(cmd.Context(), b)
					if err != nil {
						return err
					}
					if written {
						fmt.Fprintf(cmd.OutOrStdout(), "saved %q\n", b.Name)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "%q unchanged\n", b.Name)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "load <name> <build.yaml>",
			Short: "Write a stored build to a file",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withRepo(cmd.Context(), func(repo *db.BuildRepository) error {
					def, err := repo.Load(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					b, err := build.FromDef(a.tables, a.parser, def)
					if err != nil {
						return fmt.Errorf("restoring build %q: %w", args[0], err)
					}
					return b.SaveFile(args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List stored builds",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withRepo(cmd.Context(), func(repo *db.BuildRepository) error {
					infos, err := repo.List(cmd.Context())
					if err != nil {
						return err
					}
					for _, bi := range infos {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
							bi.Name, bi.Class, bi.Fingerprint[:12], bi.UpdatedAt.Format("2006-01-02 15:04"))
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a stored build",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withRepo(cmd.Context(), func(repo *db.BuildRepository) error {
					return repo.Delete(cmd.Context(), args[0])
				})
			},
		},
	)
	return cmd
}

// withRepo connects to the configured database, applies migrations and
// hands a repository to fn.
func (a *app) withRepo(ctx context.Context, fn func(*db.BuildRepository) error) error {
	dsn := a.cfg.Database.DSN()
	database, err := db.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, dsn); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Debug("database ready", "host", a.cfg.Database.Host, "dbname", a.cfg.Database.DBName)
	return fn(db.NewBuildRepository(database.Pool()))
}
