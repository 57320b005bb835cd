package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"saleorder/config"
)

var allowedExtensions = map[string]bool{
	".xls":  true,
	".xlsx": true,
}

// HandleUpload accepts a multipart spreadsheet upload, stores it under a
// unique name in the upload directory and returns that name for the
// follow-up generate call. Old uploads and reports are swept on the way in.
// Route: POST /upload
func HandleUpload(app *pocketbase.PocketBase, cfg config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if _, ok := requireUser(e); !ok {
			return nil
		}

		cleanupOldFiles(cfg)

		maxBytes := cfg.MaxUploadMB << 20
		e.Request.Body = http.MaxBytesReader(e.Response, e.Request.Body, maxBytes)
		if err := e.Request.ParseMultipartForm(maxBytes); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "file too large or invalid form data"})
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "no file was selected"})
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedExtensions[ext] {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "only .xls and .xlsx files are accepted"})
		}

		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			log.Printf("upload: create upload dir: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "upload failed"})
		}

		name := fmt.Sprintf("%s_%s", uuid.New().String(), sanitizeFilename(filepath.Base(header.Filename)))
		dst, err := os.Create(filepath.Join(cfg.UploadDir, name))
		if err != nil {
			log.Printf("upload: create file: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "upload failed"})
		}
		defer dst.Close()

		size, err := io.Copy(dst, file)
		if err != nil {
			log.Printf("upload: write file: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "upload failed"})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"upload":   name,
			"filename": header.Filename,
			"size":     size,
		})
	}
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// cleanupOldFiles removes uploads and reports older than the configured
// interval. Failures are logged and otherwise ignored.
func cleanupOldFiles(cfg config.Config) {
	threshold := time.Duration(cfg.CleanupIntervalHours) * time.Hour
	for _, dir := range []string{cfg.UploadDir, cfg.ReportDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if time.Since(info.ModTime()) > threshold {
				if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
					log.Printf("cleanup: %v", err)
				}
			}
		}
	}
}
