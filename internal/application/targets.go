package application

import (
	"strings"

	"github.com/turtacn/cdnflush/internal/domain/models"
)

// ResolveURL turns a permalink or path into an absolute URL under the
// settings' site domain. Absolute URLs pass through unchanged. Returns ""
// when no site domain is configured and the input is relative.
func ResolveURL(s *models.Settings, pathOrURL string) string {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return ""
	}
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}

	domain := s.NormalizedSiteDomain()
	if domain == "" {
		return ""
	}
	if strings.HasPrefix(pathOrURL, "/") {
		return strings.TrimSuffix(domain, "/") + pathOrURL
	}
	return domain + pathOrURL
}

// BuildContentTargets computes the URL set to purge when a piece of content
// changes: its permalink plus the list pages and custom paths the refresh
// policy selects.
func BuildContentTargets(s *models.Settings, permalink string) []string {
	var urls []string

	if u := ResolveURL(s, permalink); u != "" {
		urls = append(urls, u)
	}

	domain := s.NormalizedSiteDomain()
	if domain == "" {
		return urls
	}

	if s.RefreshHomePage {
		urls = append(urls, domain)
	}
	if s.RefreshArchivePage {
		urls = append(urls, domain+routeOrDefault(s.ArchiveRoute, "archives"))
	}
	if s.RefreshCategoryPage {
		urls = append(urls, domain+routeOrDefault(s.CategoryRoute, "categories"))
	}
	if s.RefreshTagPage {
		urls = append(urls, domain+routeOrDefault(s.TagRoute, "tags"))
	}

	for _, p := range strings.Split(s.CustomPaths, ",") {
		if u := ResolveURL(s, p); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func routeOrDefault(route, fallback string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		return fallback
	}
	return route
}
