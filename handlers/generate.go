package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"saleorder/config"
	"saleorder/services"
)

// reportRequest carries the order-form fields for one report.
type reportRequest struct {
	Upload           string
	DealerName       string
	City             string
	OrderDate        string
	FreightCondition string
}

func parseReportRequest(r *http.Request) (reportRequest, error) {
	req := reportRequest{
		Upload:           strings.TrimSpace(r.FormValue("upload")),
		DealerName:       strings.TrimSpace(r.FormValue("dealer_name")),
		City:             strings.TrimSpace(r.FormValue("city")),
		OrderDate:        strings.TrimSpace(r.FormValue("order_date")),
		FreightCondition: strings.TrimSpace(r.FormValue("freight_condition")),
	}
	if req.Upload == "" {
		return req, fmt.Errorf("missing upload reference")
	}
	if req.DealerName == "" {
		return req, fmt.Errorf("missing dealer name")
	}
	return req, nil
}

// HandleGenerateReport runs the full pipeline for an uploaded workbook:
// load and annotate rows, issue the next order id, render the styled
// sale-order workbook, persist it and record it in the order log.
// Route: POST /reports
func HandleGenerateReport(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, ok := requireUser(e)
		if !ok {
			return nil
		}

		req, err := parseReportRequest(e.Request)
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		path := filepath.Join(cfg.UploadDir, filepath.Base(req.Upload))
		data, err := services.LoadWorkbook(path)
		if err != nil {
			log.Printf("generate: %v", err)
			return e.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "report generation failed"})
		}

		now := time.Now()
		orderID, err := services.NextOrderID(app, now)
		if err != nil {
			// The sentinel id still lets the report go out; the user sees
			// the failure in the ORDER ID cell.
			log.Printf("generate: %v", err)
		}

		meta := services.ReportMeta{
			Username:         user,
			DealerName:       req.DealerName,
			City:             req.City,
			OrderDate:        req.OrderDate,
			FreightCondition: req.FreightCondition,
			OrderID:          orderID,
			CompanyName:      cfg.CompanyName,
		}

		name, err := services.WriteReport(app, data, meta, cfg.ReportDir, now)
		if err != nil {
			log.Printf("generate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "report generation failed"})
		}

		return e.JSON(http.StatusOK, map[string]string{
			"order_id":     orderID,
			"report":       name,
			"download_url": "/download/" + name,
		})
	}
}

// HandleGeneratePDF streams a PDF rendition of the sale order without
// consuming a counter value or touching the order log. The caller passes
// the order id it already holds (typically from a prior /reports call).
// Route: POST /reports/pdf
func HandleGeneratePDF(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if _, ok := requireUser(e); !ok {
			return nil
		}

		req, err := parseReportRequest(e.Request)
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		path := filepath.Join(cfg.UploadDir, filepath.Base(req.Upload))
		data, err := services.LoadWorkbook(path)
		if err != nil {
			log.Printf("generate_pdf: %v", err)
			return e.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "report generation failed"})
		}

		meta := services.ReportMeta{
			DealerName:       req.DealerName,
			City:             req.City,
			OrderDate:        req.OrderDate,
			FreightCondition: req.FreightCondition,
			OrderID:          strings.TrimSpace(e.Request.FormValue("order_id")),
			CompanyName:      cfg.CompanyName,
		}

		pdfBytes, err := services.GenerateSaleOrderPDF(data, meta)
		if err != nil {
			log.Printf("generate_pdf: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "report generation failed"})
		}

		filename := strings.TrimSuffix(services.ReportFilename(req.DealerName, time.Now()), ".xlsx") + ".pdf"
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
