package handlers

import (
	"net/http"

	"farecast/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// DownloadHandler runs a search and returns the cards as a PDF attachment.
func DownloadHandler(c *gin.Context) {
	// the form's Download PDF button gets the page back on errors
	fromForm := c.ContentType() != gin.MIMEJSON

	req, err := bindSearch(c)
	if err != nil {
		if fromForm {
			renderBindError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := services.GetSearcher().Search(c.Request.Context(), req.toInput())
	if err != nil {
		if fromForm {
			renderSearchError(c, req, err)
			return
		}
		writeSearchError(c, err)
		return
	}

	pdfBytes, err := services.GenerateResultsPDF(result)
	if err != nil {
		log.Error().Err(err).Str("search_id", result.SearchID).Msg("PDF generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=flight-predictions.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
