package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/serchad/internal/adapters/driving/http/response"
	"github.com/custodia-labs/serchad/internal/core/domain"
	"github.com/custodia-labs/serchad/internal/core/services"
)

// maxUploadFiles and maxUploadFileSize enforce the upload limits from the
// external interface table.
const (
	maxUploadFiles    = 10
	maxUploadFileSize = 50 << 20 // 50 MB
)

var acceptedUploadExtensions = map[string]struct{}{
	".pdf": {}, ".docx": {}, ".pptx": {}, ".xlsx": {}, ".xls": {},
	".txt": {}, ".md": {}, ".markdown": {}, ".csv": {},
}

// DocumentsHandler serves the /api/documents* family.
type DocumentsHandler struct {
	ingestor *services.Ingestor
}

// NewDocumentsHandler constructs the documents handler.
func NewDocumentsHandler(ingestor *services.Ingestor) *DocumentsHandler {
	return &DocumentsHandler{ingestor: ingestor}
}

// uploadFileResult is one entry of the upload response's per-file results.
type uploadFileResult struct {
	Filename string `json:"filename"`
	Success  bool   `json:"success"`
	DocID    string `json:"docId,omitempty"`
	Chunks   int    `json:"chunks,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Upload handles POST /api/documents/upload: a multipart form with up to
// maxUploadFiles files under the field "files", each at most
// maxUploadFileSize bytes. Per-file failures are reported in the results
// list and never abort the batch.
func (h *DocumentsHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.Fail(c, http.StatusBadRequest, "no files provided under field \"files\"")
		return
	}
	if len(files) > maxUploadFiles {
		response.Fail(c, http.StatusBadRequest, "too many files: max 10 per request")
		return
	}

	results := make([]uploadFileResult, 0, len(files))
	processed, failed := 0, 0

	for _, fh := range files {
		if fh.Size > maxUploadFileSize {
			results = append(results, uploadFileResult{Filename: fh.Filename, Success: false, Error: "file too large (max 50MB)"})
			failed++
			continue
		}
		if !isAcceptedUpload(fh.Filename, fh.Header.Get("Content-Type")) {
			results = append(results, uploadFileResult{Filename: fh.Filename, Success: false, Error: "unsupported format"})
			failed++
			continue
		}

		f, err := fh.Open()
		if err != nil {
			results = append(results, uploadFileResult{Filename: fh.Filename, Success: false, Error: "could not open uploaded file"})
			failed++
			continue
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			results = append(results, uploadFileResult{Filename: fh.Filename, Success: false, Error: "could not read uploaded file"})
			failed++
			continue
		}

		doc, err := h.ingestor.IngestFile(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), content)
		if err != nil {
			if errors.Is(err, domain.ErrEmbeddingUnavailable) {
				response.Fail(c, http.StatusInternalServerError, "embedding service unavailable")
				return
			}
			results = append(results, uploadFileResult{Filename: fh.Filename, Success: false, Error: err.Error()})
			failed++
			continue
		}

		results = append(results, uploadFileResult{Filename: fh.Filename, Success: true, DocID: doc.ID, Chunks: doc.ChunkCount})
		processed++
	}

	stats, err := h.ingestor.Stats(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to read index stats")
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"processed":       processed,
		"failed":          failed,
		"results":         results,
		"totalDocuments":  stats.DocumentCount,
		"totalChunks":     stats.ChunkCount,
	})
}

// isAcceptedUpload accepts a file by its extension alone, against
// acceptedUploadExtensions. The reported MIME type is not consulted, so a
// file with an accepted extension (including .md) passes whatever MIME type
// it arrives with, and a file with any other extension is rejected.
func isAcceptedUpload(filename, mimeType string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".md" {
		return true
	}
	_, ok := acceptedUploadExtensions[ext]
	return ok
}

// addURLRequest is the body of POST /api/documents/url.
type addURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// AddURL handles POST /api/documents/url.
func (h *DocumentsHandler) AddURL(c *gin.Context) {
	var req addURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: url is required")
		return
	}

	doc, err := h.ingestor.IngestURL(c.Request.Context(), req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrFetchFailed) {
			response.FailWithDetails(c, http.StatusInternalServerError, "fetch failed", err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	stats, err := h.ingestor.Stats(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to read index stats")
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"docId":          doc.ID,
		"chunks":         doc.ChunkCount,
		"totalDocuments": stats.DocumentCount,
		"totalChunks":    stats.ChunkCount,
	})
}

// documentSummary is the wire shape of a single entry in GET /api/documents.
type documentSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	ChunkCount int    `json:"chunkCount"`
	AddedAt    string `json:"addedAt"`
}

// List handles GET /api/documents.
func (h *DocumentsHandler) List(c *gin.Context) {
	docs, err := h.ingestor.ListDocuments(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to list documents")
		return
	}

	summaries := make([]documentSummary, len(docs))
	for i, d := range docs {
		summaries[i] = documentSummary{
			ID: d.ID, Name: d.Name, Type: d.Type, Title: d.Title,
			ChunkCount: d.ChunkCount, AddedAt: d.AddedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	stats, err := h.ingestor.Stats(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to read index stats")
		return
	}

	response.OK(c, http.StatusOK, gin.H{
		"documents":   summaries,
		"totalChunks": stats.ChunkCount,
	})
}

// Delete handles DELETE /api/documents/:id.
func (h *DocumentsHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.ingestor.RemoveDocument(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUnknownDocument) {
			response.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.OK(c, http.StatusOK, gin.H{"success": true})
}

// Clear handles POST /api/documents/clear.
func (h *DocumentsHandler) Clear(c *gin.Context) {
	if err := h.ingestor.Clear(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.OK(c, http.StatusOK, gin.H{"success": true})
}
