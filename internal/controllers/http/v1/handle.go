package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"weather-journal/internal/models"
)

// ErrorResponse represents an error response
type ErrorResponse = models.ErrorResponse

// GetWeather godoc
// @Summary Get today's weather
// @Description Retrieves today's weather metrics for a location in fahrenheit, mph and inches
// @Tags Weather
// @Produce json
// @Param latitude query number true "Latitude coordinate (-90 to 90)" minimum(-90) maximum(90) example(40.7128)
// @Param longitude query number true "Longitude coordinate (-180 to 180)" minimum(-180) maximum(180) example(-74.006)
// @Param timezone query string false "IANA timezone of the device, defaults to auto" example(America/New_York)
// @Success 200 {object} models.WeatherSnapshot "Weather metrics at top level"
// @Failure 400 {object} ErrorResponse "Bad request - invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /getWeather [get]
//
//	curl -X GET "http://localhost:5000/getWeather?latitude=40.7128&longitude=-74.006&timezone=America/New_York"
func (r *routes) handleGetWeather(c *fiber.Ctx) error {
	lat := c.Query("latitude")
	lon := c.Query("longitude")

	if lat == "" || lon == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Latitude and longitude are required",
		})
	}

	latFloat, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid latitude format",
		})
	}

	if latFloat < -90 || latFloat > 90 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Latitude must be between -90 and 90",
		})
	}

	lonFloat, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid longitude format",
		})
	}

	if lonFloat < -180 || lonFloat > 180 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Longitude must be between -180 and 180",
		})
	}

	req := models.WeatherRequest{
		Coordinates: models.Coordinates{Latitude: latFloat, Longitude: lonFloat},
		Timezone:    c.Query("timezone"),
	}

	snapshot, err := r.weather.FetchSnapshot(c.Context(), req)
	if err != nil {
		r.l.Error(err, map[string]any{
			"lat":      latFloat,
			"lon":      lonFloat,
			"timezone": req.TimezoneOrAuto(),
		})

		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to retrieve weather data",
		})
	}

	return c.JSON(snapshot)
}
