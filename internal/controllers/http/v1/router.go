package http

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"weather-journal/internal/services/journal"
	"weather-journal/internal/services/weather"
	"weather-journal/pkg/logger"
)

const SwaggerDocPath = "docs/swagger.json"

type routes struct {
	weather *weather.WeatherService
	journal *journal.JournalService
	l       *logger.Logger
}

func NewRouter(
	app *fiber.App,
	weatherService *weather.WeatherService,
	journalService *journal.JournalService,
	l *logger.Logger,
) {
	r := &routes{
		weather: weatherService,
		journal: journalService,
		l:       l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		swaggerData, err := os.ReadFile(SwaggerDocPath)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Failed to read Swagger documentation"})
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(swaggerData)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	// API routes
	app.Get("/getWeather", r.handleGetWeather)
	app.Get("/getAllJournals", r.handleGetAllJournals)
	app.Get("/getJournalByDate", r.handleGetJournalByDate)
	app.Post("/createJournal", r.handleCreateJournal)
	app.Delete("/deleteJournal", r.handleDeleteJournal)
}
