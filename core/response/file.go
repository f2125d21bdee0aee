package response

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmitrymomot/failsafe/core/handler"
)

// FileWithStatus creates a response that streams a file from the filesystem
// with a custom status code. The optional onDone callback fires once the
// stream has ended (fully sent or aborted), which lets callers defer
// decisions that must not happen mid-transfer. Returns 404 if the file
// doesn't exist or is a directory.
func FileWithStatus(path string, status int, onDone func()) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if onDone != nil {
			defer onDone()
		}

		// Prevent directory traversal attacks like ../../etc/passwd
		cleanPath := filepath.Clean(path)

		info, err := os.Stat(cleanPath)
		if err != nil {
			if os.IsNotExist(err) {
				http.NotFound(w, r)
				return nil
			}
			return err
		}

		if info.IsDir() {
			http.NotFound(w, r)
			return nil
		}

		f, err := os.Open(cleanPath)
		if err != nil {
			return err
		}
		defer f.Close()

		contentType := mime.TypeByExtension(filepath.Ext(cleanPath))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))

		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)

		if r.Method == http.MethodHead {
			return nil
		}

		_, err = io.Copy(w, f)
		return err
	}
}
