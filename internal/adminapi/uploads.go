package adminapi

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/velourluxe/storefront/internal/webserver"
)

// allowedImageTypes maps accepted sniffed MIME types to the extension the
// stored object gets. The client-supplied filename is never trusted.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func registerUploadRoutes() {
	webserver.AdminPOST("/uploads", uploadMedia)
}

// sniffImageType reads the leading bytes of the upload and returns the
// stored extension, or an error message when the content is not an
// accepted image format. Detection runs before any byte hits disk.
func sniffImageType(r io.ReadSeeker) (ext, errMsg string) {
	head := make([]byte, 512)
	n, err := r.Read(head)
	if err != nil && err != io.EOF {
		return "", "Unable to read upload"
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", "Unable to read upload"
	}
	ctype := http.DetectContentType(head[:n])
	ext, found := allowedImageTypes[ctype]
	if !found {
		return "", fmt.Sprintf("Unsupported file type %s, accepted: JPEG, PNG, GIF, WebP", ctype)
	}
	return ext, ""
}

func uploadMedia(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing file field", nil)
	}

	maxMB := webserver.GetApp(c).Settings().GetInt64("uploads", "MaxUploadMB")
	if maxMB <= 0 {
		maxMB = 8
	}
	if file.Size > maxMB*1024*1024 {
		return fail(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
			fmt.Sprintf("Upload exceeds the %d MB limit", maxMB), nil)
	}

	src, err := file.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read upload", nil)
	}
	defer src.Close()

	ext, errMsg := sniffImageType(src)
	if errMsg != "" {
		return fail(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE", errMsg, nil)
	}

	mediaDir := webserver.GetApp(c).Config().GetMediaDir()
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to prepare media directory", nil)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(mediaDir, name))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store upload", nil)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store upload", nil)
	}

	url := path.Join("/media", name)
	audit(c, "media.upload", fmt.Sprintf("name=%s original=%s size=%d",
		name, strings.TrimSpace(file.Filename), file.Size))
	return ok(c, map[string]interface{}{
		"url":  url,
		"name": name,
		"size": file.Size,
	})
}
