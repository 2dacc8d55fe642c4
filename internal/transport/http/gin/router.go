package httpgin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/omysaju/saju-go/internal/domain"
	redisrepo "github.com/omysaju/saju-go/internal/repository/redis"
	"github.com/omysaju/saju-go/internal/service"
	"github.com/omysaju/saju-go/internal/service/orders"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	adminPassword string,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.GET("/live/summary", handleLiveSummary(svcs))
	r.GET("/live/feed", handleLiveFeed(svcs))
	r.GET("/live/reviews/daily", handleDailyReviews(svcs))
	r.GET("/live/countdown", handleCountdown(svcs))

	r.POST("/orders", handleSubmitOrder(svcs, idem))

	// Admin API
	r.POST("/admin/login", handleAdminLogin(adminPassword))

	adm := r.Group("/admin", AdminAuth(adminPassword))
	{
		adm.GET("/orders", handleListOrders(svcs))
		adm.POST("/sync", handleSync(svcs))
		adm.PATCH("/orders/:id/status", handleUpdateStatus(svcs))
		adm.DELETE("/orders/:id", handleDeleteOrder(svcs))
		adm.GET("/stats", handleStats(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Landing page counters
// @Success  200  {object}  live.Summary
// @Router   /live/summary [get]
func handleLiveSummary(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := svcs.Live.Summary(c.Request.Context())
		// ETag + Cache-Control 15s
		writeJSONWithCache(c, http.StatusOK, s, "public, max-age=15", true)
	}
}

// @Summary  Recent activity feed
// @Success  200  {array}  live.FeedEntry
// @Router   /live/feed [get]
func handleLiveFeed(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		feed, err := svcs.Live.Feed(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, feed)
	}
}

// @Summary  Per-day review counts
// @Success  200  {object}  live.DailyReviews
// @Router   /live/reviews/daily [get]
func handleDailyReviews(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := svcs.Live.DailyReviews(c.Request.Context())
		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, d, "public, max-age=60", true)
	}
}

// @Summary  Event countdown state
// @Success  200  {object}  live.CountdownState
// @Router   /live/countdown [get]
func handleCountdown(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := svcs.Live.Countdown(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, state)
	}
}

// @Summary  Submit order (idempotent)
// @Param    req body  SubmitOrderRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} SubmitOrderResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /orders [post]
func handleSubmitOrder(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemOrder(idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		rlKey := "ip:" + c.ClientIP()

		rec, err := svcs.Orders.Submit(c.Request.Context(), req.Companions, rlKey)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		resp := SubmitOrderResponse{Order: rec, Total: rec.Total()}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Admin login
// @Param    req body  LoginRequest true "payload"
// @Success  200 {object} LoginResponse
// @Failure  401 {object} ErrorResponse
// @Router   /admin/login [post]
func handleAdminLogin(adminPassword string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		if !passwordMatches(adminPassword, req.Password) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "wrong password"})
			return
		}

		c.JSON(http.StatusOK, LoginResponse{OK: true})
	}
}

// @Summary  List orders
// @Param    page     query  int  false "page, 1-based"
// @Param    per_page query  int  false "page size"
// @Success  200 {object} ListOrdersResponse
// @Failure  401 {object} ErrorResponse
// @Router   /admin/orders [get]
func handleListOrders(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := parseIntDefault(c.Query("page"), 1)
		perPage := parseIntDefault(c.Query("per_page"), 20)

		recs, total, err := svcs.Orders.List(c.Request.Context(), page, perPage)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, ListOrdersResponse{
			Orders:  recs,
			Total:   total,
			Page:    page,
			PerPage: perPage,
		})
	}
}

// @Summary  Sync with remote sheet
// @Success  200 {object} SyncResponse
// @Failure  401 {object} ErrorResponse
// @Router   /admin/sync [post]
func handleSync(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := svcs.Sync.SyncFromRemote(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, SyncResponse{Orders: recs, Total: len(recs)})
	}
}

// @Summary  Update order status
// @Param    id  path  string  true  "Order ID"
// @Param    req body  UpdateStatusRequest true "payload"
// @Success  204
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /admin/orders/{id}/status [patch]
func handleUpdateStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		err := svcs.Orders.UpdateStatus(
			c.Request.Context(),
			c.Param("id"),
			domain.Status(req.Status),
		)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Delete order
// @Param    id  path  string  true  "Order ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/orders/{id} [delete]
func handleDeleteOrder(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svcs.Orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Revenue dashboard
// @Success  200 {object} stats.Summary
// @Failure  401 {object} ErrorResponse
// @Router   /admin/stats [get]
func handleStats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := svcs.Stats.Get(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, s)
	}
}

// --- Helpers ---

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var invalid orders.InvalidOrderError

	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: invalid.Reason.Error()})
	case errors.Is(err, orders.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
	case errors.Is(err, orders.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "order not found"})
	case errors.Is(err, orders.ErrRateLimited):
		c.Header("Retry-After", "60")
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
