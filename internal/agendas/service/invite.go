package service

import (
	"net/url"
	"strings"
)

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformOther   Platform = "other"
)

// DetectPlatform sniffs the user-agent header, case-insensitively.
func DetectPlatform(userAgent string) Platform {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ipod"):
		return PlatformIOS
	case strings.Contains(ua, "android"):
		return PlatformAndroid
	default:
		return PlatformOther
	}
}

// RedirectTargets holds the URL templates an unresolved invite falls back
// to. "{key}" is replaced with the escaped invite key.
type RedirectTargets struct {
	IOSDeepLink   string
	AndroidIntent string
	StoreURL      string
}

func (t RedirectTargets) For(p Platform, key string) string {
	tmpl := t.StoreURL
	switch p {
	case PlatformIOS:
		tmpl = t.IOSDeepLink
	case PlatformAndroid:
		tmpl = t.AndroidIntent
	}
	return strings.ReplaceAll(tmpl, "{key}", url.PathEscape(key))
}
