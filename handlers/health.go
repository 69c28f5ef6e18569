package handlers

import (
	"net/http"

	"farecast/services"

	"github.com/gin-gonic/gin"
)

func HealthHandler(c *gin.Context) {
	models := gin.H{}
	// cached state only; /api/models does the load check
	if reg := services.GetModelRegistry(); reg != nil {
		for _, st := range reg.Cached() {
			if st.Loaded {
				models[string(st.Kind)] = "loaded"
			} else {
				models[string(st.Kind)] = "not loaded"
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "farecast",
		"models":  models,
	})
}

func ModelsHandler(c *gin.Context) {
	reg := services.GetModelRegistry()
	if reg == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Models not initialized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": reg.Status()})
}

func CatalogHandler(c *gin.Context) {
	c.JSON(http.StatusOK, services.GetCatalog())
}
