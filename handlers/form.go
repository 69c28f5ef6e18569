package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"farecast/services"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageData feeds index.tmpl.
type PageData struct {
	Catalog services.Catalog
	Form    SearchRequest
	Result  *services.SearchResult
	Error   string
	Kind    string
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"hasInt": func(list []int, v int) bool {
			for _, x := range list {
				if x == v {
					return true
				}
			}
			return false
		},
		"hasStr": func(list []string, v string) bool {
			for _, x := range list {
				if x == v {
					return true
				}
			}
			return false
		},
		"stopsLabel": services.StopsLabel,
		"deref": func(p *int) int {
			if p == nil {
				return 0
			}
			return *p
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))
}

func IndexHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", PageData{
		Catalog: services.GetCatalog(),
		Form:    DefaultSearchRequest(),
	})
}

// FormSearchHandler handles the form post and re-renders the page with
// either the result cards or an inline error.
func FormSearchHandler(c *gin.Context) {
	req, err := bindSearch(c)
	if err != nil {
		renderBindError(c, err)
		return
	}

	result, err := services.GetSearcher().Search(c.Request.Context(), req.toInput())
	if err != nil {
		renderSearchError(c, req, err)
		return
	}

	c.HTML(http.StatusOK, "index.tmpl", PageData{Catalog: services.GetCatalog(), Form: req, Result: result})
}

func renderBindError(c *gin.Context, err error) {
	c.HTML(http.StatusBadRequest, "index.tmpl", PageData{
		Catalog: services.GetCatalog(),
		Form:    DefaultSearchRequest(),
		Error:   "Invalid form: " + err.Error(),
		Kind:    "validation",
	})
}

// renderSearchError shows a failed search inline, keeping what the user typed.
func renderSearchError(c *gin.Context, req SearchRequest, err error) {
	status, kind := searchErrorStatus(err)
	_ = c.Error(err)
	c.HTML(status, "index.tmpl", PageData{
		Catalog: services.GetCatalog(),
		Form:    req,
		Error:   err.Error(),
		Kind:    kind,
	})
}
