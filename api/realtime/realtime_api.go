package realtime

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"pos.GO/api"
	"pos.GO/config"
	catalogRepo "pos.GO/model/repository/catalog"
	stockRepo "pos.GO/model/repository/stock"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// Response for the price+stock endpoint
type PriceStockResponse struct {
	SKU      string  `json:"sku"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// Singleton repositories (created once per DB)
var (
	catalogRepoInstance *catalogRepo.CatalogRepository
	stockRepoInstance   *stockRepo.StockRepository
	repoOnce            sync.Once
)

func getRepositories(db *gorm.DB) (*catalogRepo.CatalogRepository, *stockRepo.StockRepository) {
	repoOnce.Do(func() {
		catalogRepoInstance = catalogRepo.NewCatalogRepository(db)
		stockRepoInstance = stockRepo.NewStockRepository(db)
	})
	return catalogRepoInstance, stockRepoInstance
}

const redisTTL = 5 * time.Second

// redisGet reads a cached response when Redis is configured.
func redisGet(key string) (*PriceStockResponse, bool) {
	if config.RedisClient == nil {
		return nil, false
	}
	data, err := config.RedisClient.Get(config.RedisCtx(), key).Bytes()
	if err != nil {
		return nil, false
	}
	var resp PriceStockResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func redisSet(key string, resp *PriceStockResponse) {
	if config.RedisClient == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	config.RedisClient.Set(config.RedisCtx(), key, data, redisTTL)
}

// RegisterRealtimeRoutes sets up the low-latency price/stock lookup used by
// cashier terminals while a cart is being assembled. Reads here are
// point-in-time: the committed quantity may drop before the sale commits,
// which is why the coordinator re-validates at commit time.
func RegisterRealtimeRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/realtime")

	// GET /api/realtime/price-stock?sku=XXX&location=1
	g.GET("/price-stock", func(c echo.Context) error {
		start := time.Now()

		sku := c.QueryParam("sku")
		if sku == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "sku required"})
		}
		locationID := uint(1)
		if v := c.QueryParam("location"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
				locationID = uint(id)
			}
		}

		cacheKey := config.RedisKey("realtime", "price-stock", sku, strconv.FormatUint(uint64(locationID), 10))
		if resp, ok := redisGet(cacheKey); ok {
			setDuration(c, start)
			return c.JSON(http.StatusOK, resp)
		}

		catalogR, stockR := getRepositories(db)

		var price float64
		var priceFound bool
		var qty int64
		var qtyFound bool

		// Parallel fetch using errgroup
		eg := new(errgroup.Group)
		eg.Go(func() error {
			price, priceFound = catalogR.GetPriceBySKU(sku)
			return nil
		})
		eg.Go(func() error {
			qty, qtyFound = stockR.GetQuantityBySKU(sku, locationID)
			return nil
		})
		_ = eg.Wait()

		setDuration(c, start)

		if !priceFound && !qtyFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sku not found"})
		}

		resp := &PriceStockResponse{SKU: sku, Price: price, Quantity: qty}
		redisSet(cacheKey, resp)
		return c.JSON(http.StatusOK, resp)
	})

	// GET /api/realtime/stock?sku=XXX&location=1 - quantity only
	g.GET("/stock", func(c echo.Context) error {
		start := time.Now()

		sku := c.QueryParam("sku")
		if sku == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "sku required"})
		}
		locationID := uint(1)
		if v := c.QueryParam("location"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
				locationID = uint(id)
			}
		}

		_, stockR := getRepositories(db)
		qty, found := stockR.GetQuantityBySKU(sku, locationID)
		setDuration(c, start)
		if !found {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sku not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"sku": sku, "quantity": qty})
	})
}

func setDuration(c echo.Context, start time.Time) {
	c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
}
