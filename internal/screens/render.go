package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"weather-journal/internal/models"
)

const (
	LoadingText   = "Loading..."
	NoEntriesText = "No Entries"

	headerDateLayout = "Monday, January 2"
	cellWidth        = 32
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	tempStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	cellStyle    = lipgloss.NewStyle().Width(cellWidth).PaddingRight(2).MarginBottom(1)
	rowStyle     = lipgloss.NewStyle().PaddingLeft(1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	noticeStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	rejectStyle  = noticeStyle.BorderForeground(lipgloss.Color("203"))
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func divider() string {
	return dividerStyle.Render(strings.Repeat("─", cellWidth*2))
}

// Temperatures renders "max°F | min°F".
func Temperatures(s models.WeatherSnapshot) string {
	return fmt.Sprintf("%s°F | %s°F", s.Display(models.TemperatureMax), s.Display(models.TemperatureMin))
}

// Grid renders GridLabels two per row.
func Grid(s models.WeatherSnapshot) string {
	var rows []string
	for i := 0; i < len(GridLabels); i += 2 {
		cells := []string{cell(GridLabels[i], s)}
		if i+1 < len(GridLabels) {
			cells = append(cells, cell(GridLabels[i+1], s))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func cell(label MetricLabel, s models.WeatherSnapshot) string {
	return cellStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(label.Title),
		valueStyle.Render(s.Display(label.Metric)),
	))
}

// View renders the home screen. The city is left out when unknown.
func (h *Home) View() string {
	if !h.Ready() {
		if h.Err != "" {
			return lipgloss.JoinVertical(lipgloss.Left, LoadingText, errorStyle.Render(h.Err))
		}
		return LoadingText
	}

	header := h.now().Format(headerDateLayout)
	if h.Location.HasCity() {
		header += " | " + h.Location.City
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(header),
		divider(),
		tempStyle.Render(Temperatures(h.Weather)),
		"",
		Grid(h.Weather),
	)
}

func (s *JournalList) View() string {
	if !s.Loaded {
		if s.Err != "" {
			return lipgloss.JoinVertical(lipgloss.Left, LoadingText, errorStyle.Render(s.Err))
		}
		return LoadingText
	}
	if s.Empty() {
		return titleStyle.Render(NoEntriesText)
	}

	rows := make([]string, 0, len(s.Entries))
	for _, r := range s.Rows() {
		rows = append(rows, rowStyle.Render(r+"  ›"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *JournalDetail) View() string {
	if s.Entry == nil {
		if s.Err != "" {
			return lipgloss.JoinVertical(lipgloss.Left, LoadingText, errorStyle.Render(s.Err))
		}
		return LoadingText
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("My Mood"),
		s.Entry.Text,
		divider(),
		tempStyle.Render(Temperatures(s.Entry.WeatherData)),
		"",
		Grid(s.Entry.WeatherData),
	)
}

func (s *JournalModal) View() string {
	parts := []string{
		titleStyle.Render("My Mood Today"),
		s.Text,
	}
	if s.Visible {
		style := noticeStyle
		if s.Rejected {
			style = rejectStyle
		}
		parts = append(parts, "", style.Render(s.Notification))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
