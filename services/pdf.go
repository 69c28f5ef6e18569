package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// GenerateResultsPDF renders the result cards of a search and returns the raw
// bytes. Nothing is written to disk.
func GenerateResultsPDF(res *SearchResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	// core fonts are cp1252; the rupee sign is not in it
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	rupees := func(s string) string { return tr(strings.ReplaceAll(s, "₹", "Rs. ")) }

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(57, 62, 70)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(120, 10, "Flight Price Prediction", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 173, 181)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, tr("Predicted with "+res.Model.Label), "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 10, "FD")
	pdf.SetXY(23, y+2)
	pdf.MultiCell(164, 4, "Mock schedules with model-predicted fares. Not real airline data and not a booking.", "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	sectionHeader := func(title string) {
		pdf.SetFillColor(57, 62, 70)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, tr(value), "", 1, "L", false, 0, "")
	}

	// ── Trip ─────────────────────────────────────────────────
	q := res.Query
	sectionHeader("Trip")
	row("Route", fmt.Sprintf("%s to %s", q.Source, q.Destination))
	row("Journey date", fmtJourneyDate(q.JourneyDate))
	row("Departure / Arrival", fmt.Sprintf("%s / %s (%s)", q.DepTime, q.ArrTime, FormatDuration(q.DurationMinutes)))
	row("Route segments", fmt.Sprintf("%d", q.RouteSegments))
	row("Additional info", q.InfoCategory)
	row("Price range", rupees(fmt.Sprintf("%s - %s", FormatPrice(res.Filters.PriceRange.Min), FormatPrice(res.Filters.PriceRange.Max))))
	row("Generated", time.Now().UTC().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Results ──────────────────────────────────────────────
	sectionHeader("Flights")
	if res.Results.Empty {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(170, 8, res.Results.Notice, "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(170, 6, tr(res.Results.Summary), "", 1, "L", false, 0, "")
		pdf.Ln(1)

		header := []string{"Airline", "Price", "Departure", "Arrival", "Duration", "Stops"}
		widths := []float64{44, 30, 24, 24, 24, 24}
		pdf.SetFillColor(238, 238, 238)
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 9)
		for i, h := range header {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, c := range res.Results.Cards {
			cells := []string{c.Airline, rupees(c.PriceText), c.Departure, c.Arrival, c.Duration, StopsLabel(c.Stops)}
			for i, v := range cells {
				align := "C"
				if i == 0 {
					align = "L"
				}
				pdf.CellFormat(widths[i], 7, tr(v), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}

		if res.Results.Notice != "" {
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "I", 8)
			pdf.SetTextColor(100, 100, 100)
			pdf.MultiCell(170, 4, tr(res.Results.Notice), "", "L", false)
		}
	}

	// ── Footer ───────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8, "Search "+res.SearchID, "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func fmtJourneyDate(d JourneyDate) string {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Format("02 Jan 2006 (Mon)")
}
