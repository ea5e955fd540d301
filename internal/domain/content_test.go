package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContentPayload() map[string]interface{} {
	return map[string]interface{}{
		"version":         1,
		"hero_title":      "Timeless Luxury, Authenticated",
		"hero_subtitle":   "Pre-loved designer handbags",
		"hero_image":      "/media/hero.jpg",
		"promo_banner":    "",
		"featured_ids":    []string{"1", "2"},
		"show_new_banner": true,
	}
}

func TestDecodeHomepageContent(t *testing.T) {
	content, err := DecodeHomepageContent(validContentPayload())
	require.NoError(t, err)
	assert.Equal(t, HomepageContentVersion, content.Version)
	assert.Equal(t, "Timeless Luxury, Authenticated", content.HeroTitle)
	assert.Equal(t, []string{"1", "2"}, content.FeaturedIDs)
	assert.True(t, content.ShowNewBanner)
}

func TestDecodeHomepageContentRejectsUnknownField(t *testing.T) {
	payload := validContentPayload()
	payload["hero_titel"] = "typo"

	_, err := DecodeHomepageContent(payload)
	assert.Error(t, err)
}

func TestDecodeHomepageContentRejectsWrongVersion(t *testing.T) {
	payload := validContentPayload()
	payload["version"] = 2

	_, err := DecodeHomepageContent(payload)
	assert.Error(t, err)

	delete(payload, "version")
	_, err = DecodeHomepageContent(payload)
	assert.Error(t, err)
}

func TestDecodeHomepageContentRequiresHeroTitle(t *testing.T) {
	payload := validContentPayload()
	payload["hero_title"] = "   "

	_, err := DecodeHomepageContent(payload)
	assert.Error(t, err)
}
