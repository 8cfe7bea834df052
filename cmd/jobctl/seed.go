package main

import (
	"context"
	"fmt"
	"time"

	dbpostgres "jobmarket/internal/database/postgres"
	"jobmarket/internal/database/seeder"
	"jobmarket/internal/domain/skills"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample courses and jobs",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	taxonomy := skills.DefaultTaxonomy()
	if path := cfg.Matching.TaxonomyFile; path != "" {
		t, err := skills.LoadTaxonomy(path)
		if err != nil {
			return err
		}
		taxonomy = t
	}

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := (seeder.Runner{Seeders: seeder.Defaults(taxonomy)}).Run(ctx, db); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "seed completed")
	return nil
}
