package models

import "strings"

// ProviderKind identifies a supported CDN provider API.
type ProviderKind string

const (
	ProviderAliyun         ProviderKind = "aliyun"
	ProviderAliyunESA      ProviderKind = "aliyun_esa"
	ProviderTencent        ProviderKind = "tencent"
	ProviderTencentEdgeOne ProviderKind = "tencent_edgeone"
	ProviderCloudflare     ProviderKind = "cloudflare"
	ProviderCustomPurge    ProviderKind = "custom_purge"
)

// CustomHeader is a single header attached to generic PURGE requests.
type CustomHeader struct {
	Name  string
	Value string
}

// ProviderConfig holds the credentials and options for one configured CDN
// provider account.
type ProviderConfig struct {
	// Name is the operator-facing label for this entry.
	Name string `mapstructure:"name"`

	// Enabled excludes the provider from fan-out when false.
	Enabled bool `mapstructure:"enabled"`

	// Kind selects the provider API implementation.
	Kind ProviderKind `mapstructure:"kind"`

	// AccessKeyID and AccessKeySecret authenticate the Aliyun and Tencent
	// signing schemes.
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`

	// APIToken is the Cloudflare bearer token.
	APIToken string `mapstructure:"api_token"`

	// ZoneID is the zone/site identifier. Cloudflare: Zone ID,
	// Aliyun ESA: Site ID, Tencent EdgeOne: Zone ID.
	ZoneID string `mapstructure:"zone_id"`

	// CustomHeadersText carries newline-delimited "name:value" headers for
	// the generic PURGE adapter.
	CustomHeadersText string `mapstructure:"custom_headers"`

	// SuccessKeyword marks a generic PURGE response as successful when the
	// body contains it.
	SuccessKeyword string `mapstructure:"success_keyword"`
}

// IsValid reports whether the config carries every credential its kind
// requires. Invalid configs are excluded from fan-out, never treated as a
// refresh failure.
func (c *ProviderConfig) IsValid() bool {
	switch c.Kind {
	case ProviderCloudflare:
		return c.APIToken != "" && c.ZoneID != ""
	case ProviderAliyunESA, ProviderTencentEdgeOne:
		return c.AccessKeyID != "" && c.AccessKeySecret != "" && c.ZoneID != ""
	case ProviderAliyun, ProviderTencent:
		return c.AccessKeyID != "" && c.AccessKeySecret != ""
	case ProviderCustomPurge:
		return strings.TrimSpace(c.SuccessKeyword) != ""
	default:
		return false
	}
}

// CustomHeaders parses CustomHeadersText. Malformed lines are skipped.
func (c *ProviderConfig) CustomHeaders() []CustomHeader {
	if strings.TrimSpace(c.CustomHeadersText) == "" {
		return nil
	}

	var headers []CustomHeader
	for _, line := range strings.Split(c.CustomHeadersText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if !ok || name == "" || value == "" {
			continue
		}
		headers = append(headers, CustomHeader{Name: name, Value: value})
	}
	return headers
}

// DisplayName returns the human-readable provider name, preferring the
// operator-assigned label.
func (c *ProviderConfig) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.KindDisplayName()
}

// KindDisplayName returns the vendor label for the provider kind.
func (c *ProviderConfig) KindDisplayName() string {
	switch c.Kind {
	case ProviderAliyun:
		return "Aliyun CDN"
	case ProviderAliyunESA:
		return "Aliyun ESA"
	case ProviderTencent:
		return "Tencent CDN"
	case ProviderTencentEdgeOne:
		return "Tencent EdgeOne"
	case ProviderCloudflare:
		return "Cloudflare"
	case ProviderCustomPurge:
		return "Custom PURGE"
	default:
		return "unknown"
	}
}

// Label returns the audit-log provider label, e.g. "my-cdn (aliyun)".
func (c *ProviderConfig) Label() string {
	return c.DisplayName() + " (" + string(c.Kind) + ")"
}
