package models

import "strings"

// Settings is the purge configuration snapshot the orchestrator works from.
// A snapshot is immutable for the duration of one refresh call; hot reloads
// replace the snapshot as a whole.
type Settings struct {
	// Enabled is the global purge switch.
	Enabled bool `mapstructure:"enabled"`

	// SiteDomain is the origin site base URL used to resolve relative
	// permalinks and policy paths, e.g. "https://blog.example.com".
	SiteDomain string `mapstructure:"site_domain"`

	// Providers is the ordered provider list.
	Providers []ProviderConfig `mapstructure:"providers"`

	// Page-refresh policy: which well-known pages to purge alongside a
	// changed content URL.
	RefreshHomePage     bool   `mapstructure:"refresh_home_page"`
	RefreshArchivePage  bool   `mapstructure:"refresh_archive_page"`
	RefreshCategoryPage bool   `mapstructure:"refresh_category_page"`
	RefreshTagPage      bool   `mapstructure:"refresh_tag_page"`
	RefreshOnComment    bool   `mapstructure:"refresh_on_comment"`
	CustomPaths         string `mapstructure:"custom_paths"`

	// Route names for the list pages, relative to SiteDomain.
	ArchiveRoute  string `mapstructure:"archive_route"`
	CategoryRoute string `mapstructure:"category_route"`
	TagRoute      string `mapstructure:"tag_route"`
}

// EnabledProviders returns the providers that are both enabled and valid for
// their kind. Order is preserved.
func (s *Settings) EnabledProviders() []ProviderConfig {
	var enabled []ProviderConfig
	for _, p := range s.Providers {
		if p.Enabled && p.IsValid() {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

// NormalizedSiteDomain returns SiteDomain with exactly one trailing slash, or
// "" when unset.
func (s *Settings) NormalizedSiteDomain() string {
	domain := strings.TrimSpace(s.SiteDomain)
	if domain == "" {
		return ""
	}
	return strings.TrimRight(domain, "/") + "/"
}
