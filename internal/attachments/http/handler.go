package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/if-project/agenda-backend/internal/api/http/params"
	"github.com/if-project/agenda-backend/internal/attachments/service"
	"github.com/if-project/agenda-backend/internal/blob"
	"github.com/if-project/agenda-backend/internal/logging"
)

type Handler struct {
	attachmentService *service.AttachmentService
}

func New(attachmentService *service.AttachmentService) *Handler {
	return &Handler{attachmentService: attachmentService}
}

func (h *Handler) Register(rg gin.IRoutes) {
	rg.GET("/blob/getAll", h.List)
	rg.POST("/blob/uploadFile", h.Upload)
	rg.DELETE("/blob/deleteFile", h.Delete)
}

// List passes the blob store listing through
func (h *Handler) List(c *gin.Context) {
	entries, err := h.attachmentService.List(c.Request.Context())
	if err != nil {
		logging.FromContext(c.Request.Context()).Error("list attachments failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Upload accepts a multipart "file" field
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "O campo \"file\" é obrigatório"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	defer f.Close()

	entry, err := h.attachmentService.Upload(c.Request.Context(), &service.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		var (
			tooLarge    *blob.TooLargeError
			unsupported *blob.UnsupportedTypeError
		)
		switch {
		case errors.As(err, &tooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": err.Error()})
		case errors.As(err, &unsupported):
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		default:
			logging.FromContext(c.Request.Context()).Error("upload failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Arquivo enviado com sucesso",
		"url":     entry.URL,
	})
}

// Delete removes a blob by its public URL; any store failure is reported as
// a client error
func (h *Handler) Delete(c *gin.Context) {
	p, ok := params.Require(c, "url")
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), p["url"]); err != nil {
		logging.FromContext(c.Request.Context()).Warn("delete attachment failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Arquivo deletado com sucesso"})
}
