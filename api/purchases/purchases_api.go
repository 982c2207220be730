package purchases

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"pos.GO/api"
	"pos.GO/core/auth"
	"pos.GO/core/poserr"
	purchaseService "pos.GO/service/purchase"
)

func init() {
	api.RegisterModule(RegisterPurchaseRoutes)
}

func RegisterPurchaseRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/purchases")
	svc := purchaseService.NewService(db)

	// GET /api/purchases: all receipts with their lines.
	g.GET("", func(c echo.Context) error {
		list, err := svc.List()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	// POST /api/purchases: record a receipt and credit stock atomically.
	g.POST("", func(c echo.Context) error {
		var input purchaseService.PurchaseInput
		if err := c.Bind(&input); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		p, err := svc.Create(input, auth.UserID(c))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, p)
	})

	// DELETE /api/purchases/:id: reverse the receipt. Fails with an
	// insufficient-stock error when the received units were already sold.
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil || id == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid purchase id"})
		}
		err = svc.Delete(uint(id))
		if errors.Is(err, poserr.ErrNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Purchase not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	})
}
