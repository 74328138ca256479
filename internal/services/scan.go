package services

import (
	"fmt"
	"io"

	clamd "github.com/dutchcoders/go-clamd"
	"github.com/rs/zerolog"
)

// VirusScanner checks uploaded documents against ClamAV before they are
// accepted. Like the event publisher it is optional: nil means scanning is
// disabled and every file passes.
type VirusScanner struct {
	c   *clamd.Clamd
	log zerolog.Logger
}

func NewVirusScanner(url string, logger zerolog.Logger) *VirusScanner {
	return &VirusScanner{c: clamd.NewClamd(url), log: logger}
}

// Scan streams r through clamd and returns an error when a signature matches
// or the daemon is unreachable. Scanning happens before the file is written
// to storage, so a rejected upload leaves nothing behind.
func (s *VirusScanner) Scan(r io.Reader) error {
	if s == nil {
		return nil
	}

	results, err := s.c.ScanStream(r, make(chan bool))
	if err != nil {
		return fmt.Errorf("clamav scan failed: %w", err)
	}

	for res := range results {
		switch res.Status {
		case clamd.RES_OK:
			continue
		case clamd.RES_FOUND:
			s.log.Warn().Str("signature", res.Description).Msg("infected upload rejected")
			return fmt.Errorf("file rejected by malware scan: %s", res.Description)
		default:
			return fmt.Errorf("clamav scan error: %s", res.Description)
		}
	}
	return nil
}
