package models

import "time"

// StoredFile describes one uploaded attachment reachable through a temporary
// link: the name the client gave it and the object name it lives under in
// blob storage.
type StoredFile struct {
	OriginalName string `json:"original_name"`
	ObjectName   string `json:"object_name"`
	Size         int64  `json:"size"`
}

// TempLink is one entry of the temporary download registry. Files are set
// once at creation and never change; Active flips to false exactly once when
// the link expires or runs out of downloads, and never back.
type TempLink struct {
	ID           string       `json:"id"`
	Files        []StoredFile `json:"files"`
	CreatedAt    time.Time    `json:"created_at"`
	ExpiresAt    time.Time    `json:"expires_at"`
	Downloads    int          `json:"downloads"`
	MaxDownloads int          `json:"max_downloads"`
	Active       bool         `json:"active"`
}
