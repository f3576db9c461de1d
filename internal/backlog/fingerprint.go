package backlog

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// Canonicalize returns a stable JSON representation of the editable content of
// a spec: the combined item order and the risks. Identity, timestamps, and
// the raw input echoes are excluded.
func Canonicalize(s *Spec) ([]byte, error) {
	items := make([]map[string]interface{}, 0, len(s.Stories)+len(s.Tasks))
	for _, item := range s.Combined() {
		items = append(items, map[string]interface{}{
			"id":          item.ID,
			"type":        item.Type,
			"title":       item.Title,
			"description": item.Description,
			"priority":    item.Priority,
			"component":   item.Component,
			"phase":       item.Phase,
		})
	}

	risks := make([]map[string]interface{}, 0, len(s.Risks))
	for _, risk := range s.Risks {
		risks = append(risks, map[string]interface{}{
			"id":   risk.ID,
			"type": risk.Type,
			"text": risk.Text,
		})
	}

	// encoding/json writes map keys in sorted order
	return json.Marshal(map[string]interface{}{
		"items": items,
		"risks": risks,
	})
}

// Fingerprint computes the blake3 hash of the canonicalized spec content.
func Fingerprint(s *Spec) (string, error) {
	canonical, err := Canonicalize(s)
	if err != nil {
		return "", fmt.Errorf("canonicalize spec: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return "", fmt.Errorf("hash spec: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
