package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/techagentng/civiceye/db"
	"github.com/techagentng/civiceye/logger"
)

var seedDemo bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the violation and reward catalog",
	Long:  `Creates the catalog rows that do not exist yet. With --demo it also creates the demo citizen and official accounts.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "also create the demo accounts")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	gormDB, err := db.GetDB(conf)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer gormDB.Close()

	if err := db.SeedCatalog(gormDB.DB); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "catalog seeded")

	if seedDemo {
		if err := db.SeedDemoUsers(gormDB.DB); err != nil {
			return fmt.Errorf("seed demo users: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "demo accounts ready (password %q)\n", db.DemoPassword)
	}
	return nil
}
