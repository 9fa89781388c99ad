package web

import (
	"runtime/debug"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/observability"
	"github.com/spec-kit/complaint-desk/internal/session"
	"github.com/spec-kit/complaint-desk/pkg/util"
)

// RegisterMiddlewares attaches global middlewares: error handling,
// request logging and session resolution, in that order.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, sessions *session.Manager) {
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(sessions.Middleware())
}

// errorHandlingMiddleware recovers panics and renders failures as an
// HTML error page. Recoverable conditions never reach here; handlers
// turn those into flash messages.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = util.NewInternalPage(nil)
			}
			if err != nil {
				pageErr := util.ToPageError(err)
				metrics.RecordError(c.Path(), c.Method(), strconv.Itoa(pageErr.Status))
				if pageErr.Status >= 500 {
					logger.Error("request failed", zap.Error(pageErr))
				}

				c.Status(pageErr.Status)
				bind := fiber.Map{
					"Title":   pageErr.Title,
					"Message": pageErr.Message,
					"Auth":    session.FromContext(c),
				}
				if renderErr := c.Render("error", bind); renderErr != nil {
					logger.Error("failed to render error page", zap.Error(renderErr))
					_ = c.SendString(pageErr.Message)
				}
				err = nil
			}
		}()
		return c.Next()
	}
}
