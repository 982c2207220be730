package returns

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"pos.GO/api"
	"pos.GO/core/auth"
	returnsService "pos.GO/service/returns"
)

func init() {
	api.RegisterModule(RegisterReturnRoutes)
}

func RegisterReturnRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/sales/returns")
	svc := returnsService.NewService(db)

	// GET /api/sales/returns: all returns with their lines.
	g.GET("", func(c echo.Context) error {
		list, err := svc.List()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	// POST /api/sales/returns: record a return and credit stock atomically.
	g.POST("", func(c echo.Context) error {
		var input returnsService.ReturnInput
		if err := c.Bind(&input); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		r, err := svc.Create(input, auth.UserID(c))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, r)
	})
}
