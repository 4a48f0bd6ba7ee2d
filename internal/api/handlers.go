package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/doctrans/internal/document"
	"github.com/dgallion1/doctrans/internal/ocr"
	"github.com/dgallion1/doctrans/internal/parser"
	"github.com/dgallion1/doctrans/internal/pipeline"
	"github.com/dgallion1/doctrans/internal/policy"
	"github.com/dgallion1/doctrans/internal/render"
	"github.com/dgallion1/doctrans/internal/translate"
)

// handleTranslate accepts a multipart file upload or a raw "text" form field,
// translates it synchronously and returns the Markdown plus download links
// for every format the policy allows for the source type.
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, with slack for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, fileErr := r.FormFile("file")
	text := strings.TrimSpace(r.FormValue("text"))

	if fileErr != nil && text == "" {
		jsonError(w, "provide either a file or text to translate", http.StatusBadRequest)
		return
	}

	var (
		markdown string
		source   document.Format
		err      error
	)

	if fileErr == nil {
		defer file.Close()

		filename := sanitizeFilename(header.Filename)
		source, err = document.FormatForFile(filename)
		if err != nil {
			jsonError(w, fmt.Sprintf("unsupported file type %q: use .pdf, .docx, .txt, .csv, .xlsx, .png, .jpg, .jpeg", filepath.Ext(filename)), http.StatusBadRequest)
			return
		}

		data, readErr := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
		if readErr != nil {
			jsonError(w, "failed to read file", http.StatusInternalServerError)
			return
		}
		if int64(len(data)) > s.cfg.MaxUploadBytes {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}

		markdown, err = s.processor.Process(r.Context(), data, source)
	} else {
		source = document.FormatTXT
		markdown, err = s.processor.ProcessText(r.Context(), text)
	}

	if err != nil {
		writeProcessError(w, err)
		return
	}

	result := s.results.Create(source, markdown)

	downloads := make(map[string]string)
	for _, f := range policy.AllowedOutputs(source) {
		downloads[string(f)] = fmt.Sprintf("/download/%s/%s", result.ID, f)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":          result.ID,
		"translated_text": markdown,
		"downloads":       downloads,
	})
}

// handleDownload renders the stored translation into the requested format.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	result, ok := s.results.Get(jobID)
	if !ok {
		jsonError(w, "result not found or expired", http.StatusNotFound)
		return
	}

	target, err := document.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		jsonError(w, "unsupported format: use txt, docx, pdf, csv, or xlsx", http.StatusBadRequest)
		return
	}
	if !policy.Allows(result.SourceFormat, target) {
		jsonError(w, fmt.Sprintf("format %s is not available for %s uploads", target, result.SourceFormat), http.StatusBadRequest)
		return
	}

	data, err := render.Render(result.Markdown, target)
	if err != nil {
		s.log.Error("render failed", "job_id", jobID, "format", string(target), "error", err)
		jsonError(w, "failed to generate output file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", target.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", jobID+"."+string(target)))
	w.Write(data)
}

// writeProcessError maps pipeline failures onto the HTTP surface. Nothing is
// downgraded to an empty success.
func writeProcessError(w http.ResponseWriter, err error) {
	var corrupt *parser.CorruptFileError
	var trErr *translate.Error
	var ocrErr *ocr.ServiceError

	switch {
	case errors.Is(err, parser.ErrUnsupportedFormat):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &corrupt):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, pipeline.ErrEmptyDocument):
		jsonError(w, "could not extract text from upload", http.StatusUnprocessableEntity)
	case errors.Is(err, ocr.ErrNotConfigured):
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
	case errors.As(err, &ocrErr):
		jsonError(w, err.Error(), http.StatusBadGateway)
	case errors.As(err, &trErr):
		jsonError(w, err.Error(), http.StatusBadGateway)
	default:
		jsonError(w, "translation failed: "+err.Error(), http.StatusInternalServerError)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
