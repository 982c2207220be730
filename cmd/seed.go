package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pos.GO/config"
	catalogEntity "pos.GO/model/entity/catalog"
	purchaseEntity "pos.GO/model/entity/purchase"
	returnsEntity "pos.GO/model/entity/returns"
	salesEntity "pos.GO/model/entity/sales"
	stockEntity "pos.GO/model/entity/stock"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create schema and demo data for a fresh install",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}
		if err := Seed(db); err != nil {
			fmt.Printf("Seed failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Seed complete.")
	},
}

// Seed migrates the schema and inserts demo rows. Idempotent.
func Seed(db *gorm.DB) error {
	err := db.AutoMigrate(
		&catalogEntity.User{},
		&catalogEntity.Location{},
		&catalogEntity.Customer{},
		&catalogEntity.Supplier{},
		&catalogEntity.Item{},
		&catalogEntity.Variant{},
		&stockEntity.StockRecord{},
		&salesEntity.Sale{},
		&salesEntity.SaleLine{},
		&purchaseEntity.Purchase{},
		&purchaseEntity.PurchaseLine{},
		&returnsEntity.SaleReturn{},
		&returnsEntity.ReturnLine{},
	)
	if err != nil {
		return err
	}

	admin := catalogEntity.User{Name: "Admin", Email: "admin@example.com", Role: "admin", APIToken: "dev-token"}
	if err := db.Where(catalogEntity.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		return err
	}

	location := catalogEntity.Location{Name: "Main Store"}
	if err := db.Where(catalogEntity.Location{Name: location.Name}).FirstOrCreate(&location).Error; err != nil {
		return err
	}

	customer := catalogEntity.Customer{Name: "Walk-in Customer"}
	if err := db.Where(catalogEntity.Customer{Name: customer.Name}).FirstOrCreate(&customer).Error; err != nil {
		return err
	}

	supplier := catalogEntity.Supplier{Name: "Default Supplier"}
	if err := db.Where(catalogEntity.Supplier{Name: supplier.Name}).FirstOrCreate(&supplier).Error; err != nil {
		return err
	}

	items := []struct {
		name     string
		sku      string
		price    float64
		cost     float64
		quantity int64
		alert    int64
	}{
		{"Espresso Beans 1kg", "BEAN-1KG", 18.50, 11.00, 40, 10},
		{"Ceramic Mug", "MUG-STD", 7.90, 3.20, 120, 20},
		{"Pour-over Kettle", "KETTLE-GN", 42.00, 27.50, 15, 5},
	}
	for _, it := range items {
		item := catalogEntity.Item{Name: it.name, CreatedBy: admin.ID}
		if err := db.Where(catalogEntity.Item{Name: it.name}).FirstOrCreate(&item).Error; err != nil {
			return err
		}
		variant := catalogEntity.Variant{ItemID: item.ID, SKU: it.sku, Price: it.price, Cost: it.cost}
		if err := db.Where(catalogEntity.Variant{SKU: it.sku}).FirstOrCreate(&variant).Error; err != nil {
			return err
		}
		record := stockEntity.StockRecord{
			VariantID:         variant.ID,
			LocationID:        location.ID,
			Quantity:          it.quantity,
			LowStockThreshold: it.alert,
			CreatedBy:         admin.ID,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "variant_id"}, {Name: "location_id"}},
			DoNothing: true,
		}).Create(&record).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
