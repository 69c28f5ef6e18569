package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// FlightCard is one rendered result.
type FlightCard struct {
	Airline   string `json:"airline"`
	Price     int    `json:"price"`
	PriceText string `json:"price_text"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Duration  string `json:"duration"`
	Stops     int    `json:"stops"`
}

// Results is what every renderer (text, HTML, JSON, PDF) draws from.
type Results struct {
	Cards   []FlightCard `json:"cards"`
	Total   int          `json:"total"`
	Shown   int          `json:"shown"`
	Omitted int          `json:"omitted"`
	Summary string       `json:"summary,omitempty"`
	Notice  string       `json:"notice,omitempty"`
	Empty   bool         `json:"empty"`
}

const noResultsNotice = "No flights found for the selected filters."

// Present caps the ranked flights at limit cards.
func Present(ranked []FlightCandidate, limit int, model ModelKind) Results {
	if len(ranked) == 0 {
		return Results{Cards: []FlightCard{}, Empty: true, Notice: noResultsNotice}
	}

	shown := len(ranked)
	if limit > 0 && shown > limit {
		shown = limit
	}

	res := Results{
		Cards:   make([]FlightCard, 0, shown),
		Total:   len(ranked),
		Shown:   shown,
		Omitted: len(ranked) - shown,
		Summary: fmt.Sprintf("Showing %d of %d flights using %s", shown, len(ranked), model.Label()),
	}
	for _, f := range ranked[:shown] {
		res.Cards = append(res.Cards, NewFlightCard(f))
	}
	if res.Omitted > 0 {
		res.Notice = fmt.Sprintf("Showing top %d; %d more not shown. Use filters or adjust criteria to narrow results.",
			shown, res.Omitted)
	}
	return res
}

func NewFlightCard(f FlightCandidate) FlightCard {
	return FlightCard{
		Airline:   f.Airline,
		Price:     f.Price,
		PriceText: FormatPrice(f.Price),
		Departure: f.Departure.String(),
		Arrival:   f.Arrival.String(),
		Duration:  FormatDuration(f.DurationMinutes),
		Stops:     f.Stops,
	}
}

// FormatPrice renders 12345 as "₹12,345".
func FormatPrice(price int) string {
	return "₹" + humanize.Comma(int64(price))
}

// FormatDuration renders minutes as "Xh Ym" using floored division, so -10
// becomes "-1h 50m".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", floorDiv(minutes, 60), floorMod(minutes, 60))
}

// StopsLabel is the human form of a stop count.
func StopsLabel(stops int) string {
	switch stops {
	case 0:
		return "Non-stop"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

// RenderText writes the results as plain-text cards.
func RenderText(w io.Writer, res Results) error {
	var b strings.Builder
	if res.Empty {
		b.WriteString(res.Notice + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(res.Summary + "\n\n")
	for i, c := range res.Cards {
		fmt.Fprintf(&b, "%2d. %s  %s\n", i+1, c.Airline, c.PriceText)
		fmt.Fprintf(&b, "    Departure: %s | Arrival: %s | Duration: %s | Stops: %d\n", c.Departure, c.Arrival, c.Duration, c.Stops)
	}
	if res.Notice != "" {
		b.WriteString("\n" + res.Notice + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
