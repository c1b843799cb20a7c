package v1

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusgigs/campusgigs-api/internal/api/handler/v1/response"
	"github.com/campusgigs/campusgigs-api/internal/storage"
)

type FileHandler struct {
	store *storage.DiskStore
}

func NewFileHandler(store *storage.DiskStore) *FileHandler {
	return &FileHandler{
		store: store,
	}
}

// HandleServeFile godoc
// @Summary      Serve a stored file
// @Description  Public buckets serve directly; private buckets require a valid expires and signature pair from a signed URL.
// @Tags         files
// @Produce      octet-stream
// @Param        bucket    path      string true "bucket name"
// @Param        path      path      string true "object path"
// @Param        expires   query     string false "unix expiry, private buckets only"
// @Param        signature query     string false "HMAC signature, private buckets only"
// @Success      200      {file}     file
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /files/{bucket}/{path} [get]
func (h *FileHandler) HandleServeFile(ctx *gin.Context) {
	bucket := ctx.Param("bucket")
	path := strings.TrimPrefix(ctx.Param("path"), "/")

	err := h.store.VerifyAccess(bucket, path, ctx.Query("expires"), ctx.Query("signature"))
	if err != nil {
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
		return
	}

	fullPath, err := h.store.Open(bucket, path)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, storage.ErrInvalidPath) {
			response.RenderErr(ctx, response.ErrNotFound("file", "path", path))
			return
		}

		err = fmt.Errorf("v1.HandleServeFile -> h.store.Open -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.File(fullPath)
}
