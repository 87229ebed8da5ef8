package upload

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"bons-travail/internal/lib/response"
)

const maxUploadSize = 10 << 20

type SparePartImporter interface {
	Import(ctx context.Context, r io.Reader) (int, error)
}

// ImportSpareParts upserts the spare parts of an xlsx workbook sent in the
// multipart field "file".
func ImportSpareParts(log *slog.Logger, importer SparePartImporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.spare-parts.upload.ImportSpareParts"

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			http.Error(w, "fichier manquant ou trop volumineux", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "fichier manquant", http.StatusBadRequest)
			return
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		n, err := importer.Import(ctx, file)
		if err != nil {
			if n > 0 {
				log.Warn("spare parts import interrupted", slog.String("op", op), slog.String("file", header.Filename), slog.Int("written", n))
			}
			response.Error(w, log, op, err)
			return
		}

		log.Info("spare parts imported", slog.String("op", op), slog.String("file", header.Filename), slog.Int("count", n))

		render.JSON(w, r, map[string]int{"imported": n})
	}
}
