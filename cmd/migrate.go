package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"pos.GO/config"
)

var (
	migrateDir  string
	migrateDown bool
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply schema migrations (mysql)",
	Run: func(cmd *cobra.Command, args []string) {
		dsn := fmt.Sprintf("mysql://%s", config.MySQLDSN())
		m, err := migrate.New("file://"+migrateDir, dsn)
		if err != nil {
			fmt.Printf("migrate init failed: %v\n", err)
			os.Exit(1)
		}
		defer m.Close()

		if migrateDown {
			err = m.Steps(-1)
		} else {
			err = m.Up()
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No pending migrations.")
			return
		}
		if err != nil {
			fmt.Printf("migrate failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migrations applied.")
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "migrations", "Directory with migration files")
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back the last migration")
	rootCmd.AddCommand(migrateCmd)
}
