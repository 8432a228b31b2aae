package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit/internal/auth"
	"github.com/nekogravitycat/shareit/internal/booking"
	bookingHttp "github.com/nekogravitycat/shareit/internal/booking/http"
	"github.com/nekogravitycat/shareit/internal/item"
	itemHttp "github.com/nekogravitycat/shareit/internal/item/http"
	"github.com/nekogravitycat/shareit/internal/itemrequest"
	requestHttp "github.com/nekogravitycat/shareit/internal/itemrequest/http"
	"github.com/nekogravitycat/shareit/internal/user"
	userHttp "github.com/nekogravitycat/shareit/internal/user/http"
)

// Config bundles what the server router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	Logger         zerolog.Logger
	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	RequestService itemrequest.Service
}

// NewEngine returns a gin engine with the middleware shared by both tiers.
func NewEngine(tier string, isProduction bool, prodOrigins string, logger zerolog.Logger) *gin.Engine {
	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), Metrics(tier))
	r.Use(cors.New(corsConfig(isProduction, prodOrigins)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// NewRouter initializes the server HTTP router and registers every module.
func NewRouter(cfg Config) *gin.Engine {
	r := NewEngine("server", cfg.IsProduction, cfg.ProdOrigins, cfg.Logger)

	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler)
		bookingHttp.RegisterRoutes(root, bookingHandler)
		requestHttp.RegisterRoutes(root, requestHandler)
	}

	return r
}

func corsConfig(isProduction bool, prodOrigins string) cors.Config {
	config := cors.DefaultConfig()
	var origins []string
	if isProduction {
		for _, o := range strings.Split(prodOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	if len(origins) > 0 {
		config.AllowOrigins = origins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", auth.HeaderUserID, HeaderRequestID}
	config.ExposeHeaders = []string{HeaderRequestID}
	return config
}
