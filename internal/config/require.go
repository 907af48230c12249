package config

import "log"

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

// MustValid aborts on settings that cannot start the server.
func (c Config) MustValid() {
	MustNonEmptyBytes(c.JWTSecret, "JWT_SECRET")
	switch c.DBDriver {
	case "postgres":
		MustNonEmpty(c.DatabaseURL, "DATABASE_URL")
	case "sqlite":
	default:
		log.Fatalf("unsupported DB_DRIVER %q", c.DBDriver)
	}
}
