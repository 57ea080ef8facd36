package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultPartyID         = "1"
	defaultListCacheTTL    = 60 * time.Second
	defaultUpstreamTimeout = 30 * time.Second

	defaultWelcomeMessage = "Join us for an unforgettable celebration!"
	defaultRSVPMessage    = "Please let us know if you can make it!"
	defaultGiftMessage    = "Your presence is the greatest gift, but if you'd like to contribute..."
)

type Config struct {
	PartyAPIURL string
	HTTPAddr    string
	MetricsAddr string

	PartyID        string
	PartyName      string
	PartyDate      string
	PartyTime      string
	PartyLocation  string
	PartyTheme     string
	PartyLatitude  string
	PartyLongitude string

	FacebookLiveURL string
	VenmoUsername   string

	WelcomeMessage string
	RSVPMessage    string
	GiftMessage    string

	AdminEmails string

	EnablePhotos    bool
	EnableRSVP      bool
	EnableGames     bool
	EnableGifts     bool
	EnableGuestbook bool
	EnableTimeline  bool

	ListCacheTTL    time.Duration
	UpstreamTimeout time.Duration
}

type LoadOptions struct {
	RequirePartyAPIURL bool
}

func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequirePartyAPIURL: true})
}

// LoadOptional loads the configuration without requiring the upstream API
// URL. Used by commands that only inspect local configuration.
func LoadOptional() (Config, error) {
	return LoadWithOptions(LoadOptions{RequirePartyAPIURL: false})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		PartyAPIURL: strings.TrimRight(strings.TrimSpace(os.Getenv("PARTY_API_URL")), "/"),
		HTTPAddr:    getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		MetricsAddr: os.Getenv("METRICS_ADDR"),

		PartyID:        getenvDefault("PARTY_ID", defaultPartyID),
		PartyName:      getenvDefault("PARTY_NAME", "Sadie's 6th Birthday"),
		PartyDate:      getenvDefault("PARTY_DATE", "Aug 15, 2025"),
		PartyTime:      getenvDefault("PARTY_TIME", "7:00 PM - 11:00 PM"),
		PartyLocation:  os.Getenv("PARTY_LOCATION"),
		PartyTheme:     os.Getenv("PARTY_THEME"),
		PartyLatitude:  os.Getenv("PARTY_LATITUDE"),
		PartyLongitude: os.Getenv("PARTY_LONGITUDE"),

		FacebookLiveURL: os.Getenv("FACEBOOK_LIVE_URL"),
		VenmoUsername:   os.Getenv("VENMO_USERNAME"),

		WelcomeMessage: getenvDefault("WELCOME_MESSAGE", defaultWelcomeMessage),
		RSVPMessage:    getenvDefault("RSVP_MESSAGE", defaultRSVPMessage),
		GiftMessage:    getenvDefault("GIFT_MESSAGE", defaultGiftMessage),

		AdminEmails: os.Getenv("ADMIN_EMAILS"),

		EnablePhotos:    getenvBoolDefault("ENABLE_PHOTOS", true),
		EnableRSVP:      getenvBoolDefault("ENABLE_RSVP", true),
		EnableGames:     getenvBoolDefault("ENABLE_GAMES", true),
		EnableGifts:     getenvBoolDefault("ENABLE_GIFTS", true),
		EnableGuestbook: getenvBoolDefault("ENABLE_GUESTBOOK", true),
		EnableTimeline:  getenvBoolDefault("ENABLE_TIMELINE", true),

		ListCacheTTL:    getenvDurationDefault("LIST_CACHE_TTL", defaultListCacheTTL),
		UpstreamTimeout: getenvDurationDefault("UPSTREAM_TIMEOUT", defaultUpstreamTimeout),
	}

	if opts.RequirePartyAPIURL && cfg.PartyAPIURL == "" {
		return cfg, errors.New("PARTY_API_URL is required")
	}

	return cfg, nil
}

// Validate returns customization warnings for a freshly cloned deployment.
// Warnings are advisory; only a missing party ID is a hard error elsewhere.
func (c Config) Validate() []string {
	var warnings []string
	if strings.TrimSpace(c.PartyID) == "" {
		warnings = append(warnings, "PARTY_ID is required")
	}
	if strings.TrimSpace(c.PartyName) == "" {
		warnings = append(warnings, "PARTY_NAME should be set for your party")
	}
	if strings.TrimSpace(c.PartyLocation) == "" {
		warnings = append(warnings, "consider setting PARTY_LOCATION for your party")
	}
	if strings.TrimSpace(c.AdminEmails) == "" {
		warnings = append(warnings, "ADMIN_EMAILS is empty: nobody has admin rights")
	}
	return warnings
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBoolDefault(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func getenvDurationDefault(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
