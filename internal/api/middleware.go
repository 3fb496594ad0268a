package api

import (
	"github.com/labstack/echo/v4"
	"github.com/ougirez/wagedash/internal/pkg/logger"
)

// RequestContextMiddleware переносит id запроса из заголовка в контекст,
// чтобы он попадал в логи сервисов. Сами запросы пишет middleware.Logger.
func (svc *APIService) RequestContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id := ctx.Response().Header().Get(echo.HeaderXRequestID)
		req := ctx.Request()
		ctx.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
		return next(ctx)
	}
}
