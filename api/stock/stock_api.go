package stock

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"pos.GO/api"
	"pos.GO/core/auth"
	"pos.GO/core/cache"
	"pos.GO/core/poserr"
	stockRepo "pos.GO/model/repository/stock"
)

func init() {
	api.RegisterModule(RegisterStockRoutes)
}

const cacheTagStock = "stock"

func RegisterStockRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/stock")
	ledger := stockRepo.NewStockRepository(db)

	// POST /api/stock: explicit stocking: set quantity and low-stock
	// threshold for a (variant, location), creating the row if absent.
	g.POST("", func(c echo.Context) error {
		var body struct {
			VariantID  uint  `json:"variantId"`
			LocationID uint  `json:"locationId"`
			Qty        int64 `json:"qty"`
			Threshold  int64 `json:"quantityAlert"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.VariantID == 0 || body.LocationID == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "variantId and locationId are required"})
		}
		rec, err := ledger.Upsert(body.VariantID, body.LocationID, body.Qty, body.Threshold, auth.UserID(c))
		if errors.Is(err, poserr.ErrBadAmount) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		cache.GetInstance().DeleteByTag(cacheTagStock)
		return c.JSON(http.StatusCreated, rec)
	})

	// GET /api/stock?variant=&location=: committed quantity for one key.
	g.GET("", func(c echo.Context) error {
		variantID, err1 := parseID(c.QueryParam("variant"))
		locationID, err2 := parseID(c.QueryParam("location"))
		if err1 != nil || err2 != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "variant and location are required"})
		}

		key := fmt.Sprintf("stock:%d:%d", variantID, locationID)
		if v, ok := cache.GetInstance().Get(key); ok {
			return c.JSON(http.StatusOK, v)
		}

		qty, err := ledger.GetQuantity(variantID, locationID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		payload := echo.Map{"variantId": variantID, "locationId": locationID, "quantity": qty}
		cache.GetInstance().Set(key, payload, 5, []string{cacheTagStock})
		return c.JSON(http.StatusOK, payload)
	})

	// GET /api/stock/low?location=: rows at or below their threshold.
	g.GET("/low", func(c echo.Context) error {
		locationID := uint(0)
		if v := c.QueryParam("location"); v != "" {
			id, err := parseID(v)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location"})
			}
			locationID = id
		}
		recs, err := ledger.LowStock(locationID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, recs)
	})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
