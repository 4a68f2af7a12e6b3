// Package assets builds the external image URLs for avatars and flags.
package assets

import (
	"net/url"
	"strings"
)

const (
	avatarBase = "https://api.dicebear.com/9.x/avataaars/svg"
	flagBase   = "https://hatscripts.github.io/circle-flags/flags/"
)

// AvatarURL returns the avatar image URL for a seed string.
func AvatarURL(seed string) string {
	return avatarBase + "?seed=" + url.QueryEscape(seed)
}

// FlagURL returns the circular flag image URL for an ISO country code.
func FlagURL(countryCode string) string {
	return flagBase + strings.ToLower(countryCode) + ".svg"
}
