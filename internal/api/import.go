package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KDZFoundation/agrooptima/internal/importer"
	"github.com/KDZFoundation/agrooptima/internal/store"
)

// ListTemplates returns the built-in column mapping templates.
// GET /api/import/templates
func (h *Handler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, importer.DefaultTemplates())
}

// ListImportLog returns past import runs, newest first.
// GET /api/import/log
func (h *Handler) ListImportLog(c *gin.Context) {
	log, err := h.store.ListImportLog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if log == nil {
		log = []store.ImportLogEntry{}
	}
	c.JSON(http.StatusOK, log)
}

// Import loads an uploaded registry file through a mapping template.
// POST /api/farmers/:id/import  (multipart: file, template, year)
func (h *Handler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing upload file"})
		return
	}

	tpl, ok := importer.TemplateByID(c.DefaultPostForm("template", "tpl_default_parcels"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown template"})
		return
	}

	year := time.Now().Year()
	if raw := c.PostForm("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read upload"})
		return
	}
	defer file.Close()

	result, err := h.importer.Import(c.Param("id"), fileHeader.Filename, file, tpl, year)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
