package templink

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/aporte-capital/consultoria-service/internal/models"
	"github.com/aporte-capital/consultoria-service/internal/storage"
	"github.com/rs/zerolog"
)

// Validation failure reasons.
const (
	ReasonNotFound  = "not_found"
	ReasonInactive  = "inactive"
	ReasonExpired   = "expired"
	ReasonExhausted = "exhausted"
)

// Validation is the outcome of checking a link id. Link is a snapshot; the
// caller never sees the live table entry.
type Validation struct {
	Valid  bool
	Reason string
	Link   models.TempLink
}

// Store is the process-wide temporary download registry. A single mutex
// serializes every table access: Create, the lazy deactivation inside
// Validate, RecordDownload's increment and Sweep's removal pass.
//
// Backing files are deleted outside the lock. A request that already passed
// Validate and opened its file streams unharmed even if the sweep unlinks
// the object meanwhile; a request that loses the race to Validate gets a
// clean not_found. That narrow window is accepted behavior.
type Store struct {
	mu    sync.Mutex
	links map[string]*models.TempLink
	blobs storage.Storage
	log   zerolog.Logger
	now   func() time.Time
}

func NewStore(blobs storage.Storage, logger zerolog.Logger) *Store {
	return &Store{
		links: make(map[string]*models.TempLink),
		blobs: blobs,
		log:   logger,
		now:   time.Now,
	}
}

// Create registers a new link over the given files and returns its id. The id
// is re-rolled in the (negligible) event it collides with a live one, so ids
// are unique among stored links by construction.
func (s *Store) Create(files []models.StoredFile, maxDownloads int, lifetime time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := newLinkID()
	for _, exists := s.links[id]; exists; _, exists = s.links[id] {
		id = newLinkID()
	}

	now := s.now()
	s.links[id] = &models.TempLink{
		ID:           id,
		Files:        append([]models.StoredFile(nil), files...),
		CreatedAt:    now,
		ExpiresAt:    now.Add(lifetime),
		Downloads:    0,
		MaxDownloads: maxDownloads,
		Active:       true,
	}

	s.log.Info().Str("link_id", id).Time("expires_at", now.Add(lifetime)).Int("files", len(files)).Msg("temporary link created")
	return id
}

// Validate checks whether a link is still usable. Detecting expiry or an
// exhausted download budget here permanently deactivates the link; besides
// the sweep, this is the only path that flips Active off.
func (s *Store) Validate(id string) Validation {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.links[id]
	if !ok {
		return Validation{Reason: ReasonNotFound}
	}
	if !link.Active {
		return Validation{Reason: ReasonInactive}
	}
	if s.now().After(link.ExpiresAt) {
		link.Active = false
		return Validation{Reason: ReasonExpired}
	}
	if link.Downloads >= link.MaxDownloads {
		link.Active = false
		return Validation{Reason: ReasonExhausted}
	}

	return Validation{Valid: true, Link: snapshot(link)}
}

// RecordDownload counts one successful retrieval. Unknown ids are a no-op;
// the budget check belongs to the next Validate call or the sweep.
func (s *Store) RecordDownload(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if link, ok := s.links[id]; ok {
		link.Downloads++
		s.log.Info().Str("link_id", id).Int("downloads", link.Downloads).Int("max", link.MaxDownloads).Msg("download recorded")
	}
}

// Sweep removes every expired or deactivated link and deletes its backing
// files, tolerating files that are already gone. Running it twice in a row
// is a no-op the second time. Returns the number of links removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	var doomed []*models.TempLink
	now := s.now()
	for id, link := range s.links {
		if now.After(link.ExpiresAt) || !link.Active {
			doomed = append(doomed, link)
			delete(s.links, id)
		}
	}
	s.mu.Unlock()

	for _, link := range doomed {
		for _, f := range link.Files {
			if err := s.blobs.Delete(context.Background(), f.ObjectName); err != nil && !errors.Is(err, fs.ErrNotExist) {
				s.log.Warn().Str("object", f.ObjectName).Err(err).Msg("failed to delete backing file")
			}
		}
	}

	if len(doomed) > 0 {
		s.log.Info().Int("removed", len(doomed)).Msg("expired temporary links swept")
	}
	return len(doomed)
}

func snapshot(link *models.TempLink) models.TempLink {
	cp := *link
	cp.Files = append([]models.StoredFile(nil), link.Files...)
	return cp
}

// newLinkID returns 8 random bytes as upper-case hex, the shape download
// pages display as the request code.
func newLinkID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}
