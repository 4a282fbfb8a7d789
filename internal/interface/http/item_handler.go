package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
)

// CreateItem adds a wardrobe item.
func (h *Handler) CreateItem(c *gin.Context) {
	var req wardrobe.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}
	item, err := h.wardrobeSvc.Create(c.Request.Context(), req)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListItems lists items. Tags and colors accept repeated or comma separated values.
func (h *Handler) ListItems(c *gin.Context) {
	var filter wardrobe.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		abortWithBindError(c, err)
		return
	}
	filter.Tags = splitValues(filter.Tags)
	filter.Colors = splitValues(filter.Colors)
	res, err := h.wardrobeSvc.List(c.Request.Context(), filter)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetItem fetches one item.
func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.wardrobeSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes an item and its picture.
func (h *Handler) DeleteItem(c *gin.Context) {
	if err := h.wardrobeSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ItemStats summarizes the wardrobe.
func (h *Handler) ItemStats(c *gin.Context) {
	stats, err := h.wardrobeSvc.Stats(c.Request.Context())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UploadItemImage stores the multipart "image" field as the item's picture.
func (h *Handler) UploadItemImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "image is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read upload", err))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "upload_failed", "failed to read file", err))
		return
	}
	item, err := h.wardrobeSvc.UploadImage(c.Request.Context(), c.Param("id"), wardrobe.UploadImageRequest{
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Content:  data,
	})
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ServeImage streams a stored item picture.
func (h *Handler) ServeImage(c *gin.Context) {
	rc, mime, err := h.wardrobeSvc.OpenImage(c.Request.Context(), c.Param("key"))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	defer rc.Close()
	if mime == "" {
		mime = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, -1, mime, rc, nil)
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
