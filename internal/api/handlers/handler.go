package handlers

import (
	"context"
	"errors"
	"io/fs"

	"github.com/aporte-capital/consultoria-service/internal/configuration"
	"github.com/aporte-capital/consultoria-service/internal/mailer"
	"github.com/aporte-capital/consultoria-service/internal/models"
	"github.com/aporte-capital/consultoria-service/internal/services"
	"github.com/aporte-capital/consultoria-service/internal/storage"
	"github.com/aporte-capital/consultoria-service/internal/templink"
	"github.com/rs/zerolog"
)

// LookupService resolves a raw company identifier into a registry record.
type LookupService interface {
	Lookup(raw string) models.LookupResult
}

// Handler carries the collaborators of every HTTP endpoint.
type Handler struct {
	cfg     *configuration.Config
	lookup  LookupService
	mail    mailer.Sender
	links   *templink.Store
	blobs   storage.Storage
	scanner *services.VirusScanner
	events  *services.EventPublisher
	logger  zerolog.Logger
}

func New(
	cfg *configuration.Config,
	lookup LookupService,
	mail mailer.Sender,
	links *templink.Store,
	blobs storage.Storage,
	scanner *services.VirusScanner,
	events *services.EventPublisher,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		cfg:     cfg,
		lookup:  lookup,
		mail:    mail,
		links:   links,
		blobs:   blobs,
		scanner: scanner,
		events:  events,
		logger:  logger,
	}
}

// deleteStored removes attachment blobs that ended up without a download
// link; files already gone are not an error.
func (h *Handler) deleteStored(files []models.StoredFile) {
	for _, f := range files {
		if err := h.blobs.Delete(context.Background(), f.ObjectName); err != nil && !errors.Is(err, fs.ErrNotExist) {
			h.logger.Warn().Str("object", f.ObjectName).Err(err).Msg("failed to delete stored file")
		}
	}
}
