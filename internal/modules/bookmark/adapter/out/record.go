package out

import (
	"bytes"
	"encoding/json"
	"fmt"

	"formnav/internal/modules/bookmark/domain"
)

type record struct {
	SchemaVersion int               `json:"schema_version"`
	Bookmarks     []domain.Bookmark `json:"bookmarks"`
}

// legacyBookmark is the pre-envelope entry shape, which named the label "name".
type legacyBookmark struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Fragment string `json:"fragment"`
}

func encodeRecord(list domain.List) ([]byte, error) {
	bookmarks := []domain.Bookmark(list)
	if bookmarks == nil {
		bookmarks = []domain.Bookmark{}
	}
	payload, err := json.Marshal(record{SchemaVersion: domain.SchemaVersion, Bookmarks: bookmarks})
	if err != nil {
		return nil, fmt.Errorf("marshal bookmark record: %w", err)
	}
	return payload, nil
}

func decodeRecord(raw []byte) (domain.List, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode bookmark record: empty payload")
	}
	if trimmed[0] == '[' {
		var legacy []legacyBookmark
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return nil, fmt.Errorf("decode legacy bookmark record: %w", err)
		}
		entries := make([]domain.Bookmark, 0, len(legacy))
		for _, entry := range legacy {
			label := entry.Label
			if label == "" {
				label = entry.Name
			}
			entries = append(entries, domain.Bookmark{Label: label, Fragment: entry.Fragment})
		}
		return validEntries(entries), nil
	}
	rec := record{}
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return nil, fmt.Errorf("decode bookmark record: %w", err)
	}
	if rec.SchemaVersion > domain.SchemaVersion {
		return nil, fmt.Errorf("bookmark record schema version %d is newer than supported version %d", rec.SchemaVersion, domain.SchemaVersion)
	}
	return validEntries(rec.Bookmarks), nil
}

// validEntries trims stored entries and drops those that would fail
// validation, so a hand-edited or damaged record cannot put blank bookmarks
// in front of the panel.
func validEntries(entries []domain.Bookmark) domain.List {
	out := make(domain.List, 0, len(entries))
	for _, entry := range entries {
		b, err := domain.New(entry.Label, entry.Fragment)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	return out
}
