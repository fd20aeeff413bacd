package models

import "strings"

// ItemRecord is the raw seller-supplied item data the engine analyzes.
// It is read-only input; the engine never mutates it.
type ItemRecord struct {
	ItemID          string            `json:"item_id,omitempty"`
	Title           string            `json:"title,omitempty"`
	TempTitle       string            `json:"temp_title,omitempty"`
	Description     string            `json:"description,omitempty"`
	TempDescription string            `json:"temp_description,omitempty"`
	Attributes      map[string]string `json:"attributes,omitempty"`
}

// EffectiveTitle resolves the title fallback: title, else temp_title.
func (r *ItemRecord) EffectiveTitle() string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	return strings.TrimSpace(r.TempTitle)
}

// EffectiveDescription resolves the description fallback: description, else temp_description.
func (r *ItemRecord) EffectiveDescription() string {
	if d := strings.TrimSpace(r.Description); d != "" {
		return d
	}
	return strings.TrimSpace(r.TempDescription)
}

// IsEmpty reports whether the record carries no usable text source at all.
func (r *ItemRecord) IsEmpty() bool {
	return r.EffectiveTitle() == "" && r.EffectiveDescription() == "" && len(r.Attributes) == 0
}
