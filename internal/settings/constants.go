package settings

// DB config keys and defaults for settings.
const (
	// SiteNameKey is the DB config key for the UI site name.
	SiteNameKey = "SITE_NAME"
	// DefaultSiteName is the fallback UI site name.
	DefaultSiteName = "Bridgeboard"
	// RegistrationOpenKey toggles public sign-up.
	RegistrationOpenKey = "REGISTRATION_OPEN"
	// DefaultRegistrationOpen allows sign-up when the key is unset.
	DefaultRegistrationOpen = true
)
