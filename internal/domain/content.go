package domain

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// HomepageContentVersion is the only schema version currently accepted at
// the boundary. Bump it together with the struct below.
const HomepageContentVersion = 1

// HomepageContent is the admin-editable homepage document. It is stored as
// a single settings row and validated before every persist.
type HomepageContent struct {
	Version       int      `json:"version" mapstructure:"version"`
	HeroTitle     string   `json:"hero_title" mapstructure:"hero_title"`
	HeroSubtitle  string   `json:"hero_subtitle" mapstructure:"hero_subtitle"`
	HeroImage     string   `json:"hero_image" mapstructure:"hero_image"`
	PromoBanner   string   `json:"promo_banner" mapstructure:"promo_banner"`
	FeaturedIDs   []string `json:"featured_ids" mapstructure:"featured_ids"`
	ShowNewBanner bool     `json:"show_new_banner" mapstructure:"show_new_banner"`
}

// DecodeHomepageContent validates a loosely-typed payload against the
// versioned schema. Unknown fields are rejected so typos surface to the
// admin instead of silently vanishing.
func DecodeHomepageContent(raw map[string]interface{}) (*HomepageContent, error) {
	var content HomepageContent
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &content,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "homepage content does not match schema")
	}
	if content.Version != HomepageContentVersion {
		return nil, errors.Errorf("unsupported homepage content version %d", content.Version)
	}
	if strings.TrimSpace(content.HeroTitle) == "" {
		return nil, errors.New("hero_title is required")
	}
	return &content, nil
}
