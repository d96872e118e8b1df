package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"weather-journal/internal/models"
	"weather-journal/internal/services/journal"
)

// CreateJournalRequest is the body of POST /createJournal
type CreateJournalRequest = models.JournalEntry

// GetAllJournals godoc
// @Summary List journal entries
// @Description Returns every journal entry sorted by date
// @Tags Journal
// @Produce json
// @Success 200 {array} models.JournalEntry
// @Failure 500 {object} ErrorResponse
// @Router /getAllJournals [get]
func (r *routes) handleGetAllJournals(c *fiber.Ctx) error {
	entries, err := r.journal.List(c.Context())
	if err != nil {
		r.l.Error(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to retrieve journals",
		})
	}

	return c.JSON(entries)
}

// GetJournalByDate godoc
// @Summary Get the journal entries for a date
// @Description Returns every entry written on the date, oldest first
// @Tags Journal
// @Produce json
// @Param date query string true "Entry date" example(2024-01-01)
// @Success 200 {array} models.JournalEntry
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /getJournalByDate [get]
func (r *routes) handleGetJournalByDate(c *fiber.Ctx) error {
	entries, err := r.journal.ByDate(c.Context(), c.Query("date"))
	switch {
	case err == nil:
		return c.JSON(entries)
	case errors.Is(err, journal.ErrDateRequired):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	case errors.Is(err, journal.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	default:
		r.l.Error(err, map[string]any{"date": c.Query("date")})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to retrieve journals",
		})
	}
}

// CreateJournal godoc
// @Summary Create a journal entry
// @Description Stores a mood note with the day's weather
// @Tags Journal
// @Accept json
// @Produce json
// @Param entry body CreateJournalRequest true "Journal entry"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /createJournal [post]
func (r *routes) handleCreateJournal(c *fiber.Ctx) error {
	var req CreateJournalRequest
	if err := c.BodyParser(&req); err != nil {
		r.l.Warning("invalid createJournal body", map[string]any{"err": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid JSON body"})
	}

	err := r.journal.Create(c.Context(), req)
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(models.MessageResponse{Message: "Journal created successfully"})
	case errors.Is(err, journal.ErrIncompleteEntry), errors.Is(err, journal.ErrInvalidDate):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	default:
		r.l.Error(err, map[string]any{"date": req.Date})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to create journal",
		})
	}
}

// DeleteJournal godoc
// @Summary Delete the journal entries for a date
// @Tags Journal
// @Produce json
// @Param date query string true "Entry date" example(2024-01-01)
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /deleteJournal [delete]
func (r *routes) handleDeleteJournal(c *fiber.Ctx) error {
	err := r.journal.Delete(c.Context(), c.Query("date"))
	switch {
	case err == nil:
		return c.JSON(models.MessageResponse{Message: "Journal deleted successfully"})
	case errors.Is(err, journal.ErrDateRequired):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	default:
		r.l.Error(err, map[string]any{"date": c.Query("date")})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to delete journal",
		})
	}
}
