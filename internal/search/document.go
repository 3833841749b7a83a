// File: internal/search/document.go
package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"adventure_backend/internal/shared"
)

// ProfileDocument is the indexed form of a profile. NameLower backs the
// case-insensitive prefix search.
type ProfileDocument struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	NameLower string `json:"name_lower"`
	Email     string `json:"email"`
	PhotoURL  string `json:"photo_url"`
}

// ToDocument converts a profile summary into its index document.
func ToDocument(s shared.ProfileSummary) ProfileDocument {
	return ProfileDocument{
		UID:       s.UID,
		Name:      s.Name,
		NameLower: strings.ToLower(s.Name),
		Email:     s.Email,
		PhotoURL:  s.PhotoURL,
	}
}

// Summary converts the document back for API responses.
func (d ProfileDocument) Summary() shared.ProfileSummary {
	return shared.ProfileSummary{UID: d.UID, Name: d.Name, Email: d.Email, PhotoURL: d.PhotoURL}
}

// ProfilesMapping returns the JSON mapping of the profiles index.
func ProfilesMapping() (string, error) {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"uid":        map[string]interface{}{"type": "keyword"},
				"name":       map[string]interface{}{"type": "text"},
				"name_lower": map[string]interface{}{"type": "keyword"},
				"email":      map[string]interface{}{"type": "keyword"},
				"photo_url":  map[string]interface{}{"type": "keyword", "index": false},
			},
		},
	}
	mappingBytes, err := json.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("error marshalling profiles mapping to JSON: %w", err)
	}
	return string(mappingBytes), nil
}
