package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pocketbase/pocketbase/core"

	"saleorder/config"
)

// HandleDownload serves a previously generated report as an attachment.
// The name is reduced to its base component so the handler can never reach
// outside the report directory.
// Route: GET /download/{report}
func HandleDownload(cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if _, ok := requireUser(e); !ok {
			return nil
		}

		name := filepath.Base(e.Request.PathValue("report"))
		if name == "" || name == "." {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing report name"})
		}

		full := filepath.Join(cfg.ReportDir, name)
		if _, err := os.Stat(full); err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "report not found"})
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
		http.ServeFile(e.Response, e.Request, full)
		return nil
	}
}
