package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pos.GO/config"
	catalogService "pos.GO/service/catalog"
)

var (
	importFile     string
	importLocation uint
	importBatch    int
)

var importCmd = &cobra.Command{
	Use:   "items:import",
	Short: "Import items from CSV (sku, name, description, price, cost, quantity, quantity_alert)",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		res, err := catalogService.ImportItems(db, f, catalogService.ImportOptions{
			LocationID: importLocation,
			BatchSize:  importBatch,
		})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		fmt.Printf("Rows: %d  Created: %d  Updated: %d  Skipped: %d  (%s)\n",
			res.TotalRows, res.Created, res.Updated, res.Skipped, res.TotalTime)
		for _, w := range res.Warnings {
			fmt.Println("warning:", w)
		}
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "items.csv", "CSV file to import")
	importCmd.Flags().UintVarP(&importLocation, "location", "l", 1, "Location ID for opening stock")
	importCmd.Flags().IntVarP(&importBatch, "batch", "b", 500, "Batch size")
	rootCmd.AddCommand(importCmd)
}
