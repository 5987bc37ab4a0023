package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/adrianliechti/cardsheet/pkg/extractor"
)

const maxUploadMemory = 64 << 20

var errNotMultipart = errors.New("expected multipart form with field \"files\"")

func acceptsEvents(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}

// readFiles returns the uploaded files in form order.
func readFiles(r *http.Request) ([]extractor.File, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, errNotMultipart
	}

	var files []extractor.File

	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()

		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(f)
		f.Close()

		if err != nil {
			return nil, err
		}

		files = append(files, extractor.File{
			Name: header.Filename,

			Content:     data,
			ContentType: header.Header.Get("Content-Type"),
		})
	}

	return files, nil
}
