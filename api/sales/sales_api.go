package sales

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"pos.GO/api"
	"pos.GO/core/auth"
	"pos.GO/core/poserr"
	salesService "pos.GO/service/sales"
)

func init() {
	api.RegisterModule(RegisterSalesRoutes)
}

func RegisterSalesRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/sales")
	svc := salesService.NewService(db)

	// GET /api/sales: all sales, newest first. Billers see only their own.
	g.GET("", func(c echo.Context) error {
		userID := uint(0)
		if role, _ := c.Get("user_role").(string); role == "biller" {
			userID = auth.UserID(c)
		}
		list, err := svc.List(userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	// POST /api/sales: create a sale and decrement stock atomically.
	// Insufficient stock aborts the whole request; the error payload carries
	// the message for display.
	g.POST("", func(c echo.Context) error {
		start := time.Now()
		var input salesService.SaleInput
		if err := c.Bind(&input); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		sale, err := svc.Create(input, auth.UserID(c))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		setDuration(c, start)
		return c.JSON(http.StatusCreated, sale)
	})

	// PUT /api/sales/:id: replace the sale's lines, reversing the old
	// stock effect and applying the new one in one unit of work.
	g.PUT("/:id", func(c echo.Context) error {
		start := time.Now()
		id, err := parseID(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sale id"})
		}
		var input salesService.SaleInput
		if err := c.Bind(&input); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		sale, err := svc.Update(id, input, auth.UserID(c))
		if errors.Is(err, poserr.ErrNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Sale not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		setDuration(c, start)
		return c.JSON(http.StatusOK, sale)
	})

	// DELETE /api/sales/:id: delete the sale and restore stock.
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := parseID(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sale id"})
		}
		err = svc.Delete(id)
		if errors.Is(err, poserr.ErrNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Sale not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func setDuration(c echo.Context, start time.Time) {
	c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
}
