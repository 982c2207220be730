package items

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"pos.GO/api"
	"pos.GO/core/auth"
	"pos.GO/core/metrics"
	"pos.GO/core/poserr"
	catalogRepo "pos.GO/model/repository/catalog"
	reservationRepo "pos.GO/model/repository/reservation"
)

func init() {
	api.RegisterModule(RegisterItemRoutes)
}

func RegisterItemRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/items")
	holds := reservationRepo.NewReservationRepository(db)
	catalog := catalogRepo.NewCatalogRepository(db)

	// PUT /api/items/:id/lock: claim or release the checkout hold on an
	// item. The hold only stops a second cashier from starting checkout on
	// the same item; stock is re-verified when the sale commits.
	g.PUT("/:id/lock", func(c echo.Context) error {
		itemID, err := parseID(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid item id"})
		}

		var body struct {
			Hold       bool `json:"hold"`
			LocationID uint `json:"locationId"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}

		holderID := auth.UserID(c)

		if body.Hold {
			err = holds.Acquire(itemID, holderID)
		} else {
			err = holds.Release(itemID, holderID)
		}
		switch {
		case errors.Is(err, poserr.ErrLockConflict):
			metrics.LockConflicts.Inc()
			return c.JSON(http.StatusConflict, echo.Map{"message": "Item is currently locked by another user."})
		case errors.Is(err, poserr.ErrLockForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "You cannot unlock an item locked by another user."})
		case errors.Is(err, poserr.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Item not found."})
		case err != nil:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": err.Error()})
		}

		payload, err := catalog.GetItemWithStock(itemID, body.LocationID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": err.Error()})
		}
		return c.JSON(http.StatusOK, payload)
	})

	// GET /api/items/:id: item with variants and stock at a location.
	g.GET("/:id", func(c echo.Context) error {
		itemID, err := parseID(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid item id"})
		}
		locationID := uint(0)
		if v := c.QueryParam("location"); v != "" {
			if id, err := parseID(v); err == nil {
				locationID = id
			}
		}
		payload, err := catalog.GetItemWithStock(itemID, locationID)
		if errors.Is(err, poserr.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Item not found."})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": err.Error()})
		}
		return c.JSON(http.StatusOK, payload)
	})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
