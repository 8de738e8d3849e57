package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docrank/internal/domain"
	"docrank/internal/extract"
	"docrank/internal/report"
)

type rankResponse struct {
	*report.Report
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+1<<20)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	persona := r.FormValue("persona")
	job := r.FormValue("job")

	files := r.MultipartForm.File["documents"]
	if len(files) == 0 {
		jsonError(w, "at least one PDF under the documents field is required", http.StatusBadRequest)
		return
	}
	if len(files) > extract.MaxDocuments {
		jsonError(w, fmt.Sprintf("too many documents (%d), maximum is %d", len(files), extract.MaxDocuments), http.StatusBadRequest)
		return
	}

	tmpDir, err := os.MkdirTemp("", "docrank-rank-*")
	if err != nil {
		jsonError(w, "failed to stage uploads", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmpDir)

	var docs []domain.Document
	var warnings []string
	var inputs []string
	used := make(map[string]int)
	for _, fh := range files {
		name := sanitizeFilename(fh.Filename)
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(name)), http.StatusBadRequest)
			return
		}
		name = dedupeName(used, name)
		path := filepath.Join(tmpDir, name)
		if err := saveUpload(fh, path); err != nil {
			jsonError(w, "failed to read upload: "+err.Error(), http.StatusBadRequest)
			return
		}
		doc, err := s.extractor.LoadFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping %s: %v", name, err))
			continue
		}
		docs = append(docs, doc)
		inputs = append(inputs, name)
	}

	res := s.engine.Run(docs, persona, job)
	rep := report.Build(res, inputs, persona, job, started, time.Since(started))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rankResponse{Report: rep, Warnings: warnings}); err != nil {
		s.log.Error("encode rank response", "error", err)
	}
}

func saveUpload(fh *multipart.FileHeader, path string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

// dedupeName suffixes repeated upload names so same-named files neither
// overwrite each other in the staging dir nor collapse into one ranked doc.
func dedupeName(used map[string]int, name string) string {
	n := used[name]
	used[name]++
	if n == 0 {
		return name
	}
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n, ext)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." {
		name = "upload.pdf"
	}
	return name
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start),
			)
		})
	}
}
