package upstream

const (
	DefaultBaseURL    = "https://graph.facebook.com"
	DefaultAPIVersion = "v19.0"
)

type Config struct {
	BaseURL     string `yaml:"base_url"`
	APIVersion  string `yaml:"api_version"`
	PixelID     string `yaml:"pixel_id"`
	AccessToken string `yaml:"access_token"`
}

// Configured reports whether the destination and credential were provided.
func (c Config) Configured() bool {
	return c.PixelID != "" && c.AccessToken != ""
}

// MaskedPixelID is safe to log.
func (c Config) MaskedPixelID() string {
	if len(c.PixelID) <= 4 {
		return c.PixelID + "..."
	}
	return c.PixelID[:4] + "..."
}
