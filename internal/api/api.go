package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/wagedash/internal/api/controller"
	"github.com/ougirez/wagedash/internal/pkg/config"
	"github.com/ougirez/wagedash/internal/pkg/logger"
	"github.com/ougirez/wagedash/internal/service/dashboard"
)

type APIService struct {
	router           *echo.Echo
	dashboardService *dashboard.Service
}

// Serve блокируется до остановки сервера. Штатная остановка через
// Shutdown ошибкой не считается.
func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

// Handler нужен тестам, чтобы гонять запросы без сети.
func (svc *APIService) Handler() http.Handler {
	return svc.router
}

func NewAPIService(cfg config.ServerConfig, dashboardService *dashboard.Service) (*APIService, error) {
	svc := &APIService{router: echo.New(), dashboardService: dashboardService}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.WARN)
	svc.router.JSONSerializer = newSonicSerializer()
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler

	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	svc.router.Use(middleware.Logger())
	svc.router.Use(svc.RequestContextMiddleware)
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderXRequestID},
	}))

	cntrl := controller.NewController(svc.dashboardService)

	svc.router.GET("/", cntrl.Page)
	svc.router.GET("/health", cntrl.Health)

	api := svc.router.Group("/api/v1")
	api.GET("/dashboard", cntrl.GetDashboard)
	api.GET("/facets", cntrl.GetFacets)

	charts := api.Group("/charts")
	charts.GET("/heatmap.png", cntrl.GetHeatmapPNG)
	charts.GET("/trend.png", cntrl.GetTrendPNG)
	charts.GET("/bubble.png", cntrl.GetBubblePNG)
	charts.GET("/industry.png", cntrl.GetIndustryPNG)
	charts.GET("/:name", cntrl.GetChart)

	return svc, nil
}
