package handlers

import (
	"encoding/csv"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Siddique-web/EchoPlay/internal/folder"
)

// ExportHandler dumps the folder collection for backup or migration.
type ExportHandler struct {
	repo *folder.Repository
}

// NewExportHandler returns an export handler over the given repository.
func NewExportHandler(repo *folder.Repository) *ExportHandler {
	return &ExportHandler{repo: repo}
}

// ExportJSON writes the whole collection as a JSON attachment.
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	folders, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folders"})
		return
	}

	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", "attachment;filename=folders_export.json")

	jsonData, err := json.MarshalIndent(folders, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to marshal JSON"})
		return
	}

	c.Data(http.StatusOK, "application/json", jsonData)
}

// ExportCSV writes one row per folder item, with folder metadata repeated.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	folders, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch folders"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=folders_export.csv")

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write([]string{"Folder ID", "Folder Name", "Type", "Folder Created At", "Item ID", "Item Title"}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV header"})
		return
	}

	for _, f := range folders {
		if len(f.Items) == 0 {
			if err := writer.Write([]string{f.ID, f.Name, string(f.Type), f.CreatedAt.String(), "", ""}); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV data"})
				return
			}
			continue
		}
		for _, item := range f.Items {
			base := item.Base()
			if err := writer.Write([]string{f.ID, f.Name, string(f.Type), f.CreatedAt.String(), base.ID, base.Title}); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write CSV data"})
				return
			}
		}
	}

	writer.Flush()
}
