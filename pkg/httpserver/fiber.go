package httpserver

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"weather-journal/pkg/observe"
)

const MetricsEndpoint = "/metrics"

func InitFiberServer(appName string, bodyLimit int, metrics *observe.Metrics) *fiber.App {
	if bodyLimit <= 0 {
		bodyLimit = fiber.DefaultBodyLimit
	}

	s := fiber.New(fiber.Config{
		AppName:               appName,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(cors.New())
	s.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
	}))
	s.Use(requestMetrics(metrics))

	s.Get(MetricsEndpoint, adaptor.HTTPHandler(metrics.Handler()))

	return s
}

func requestMetrics(metrics *observe.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		metrics.ObserveRequest(c.Route().Path, c.Method(), status, time.Since(start))

		return err
	}
}
