package config // package config loads application configuration from environment variables

import (
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Unlike a multi-tenant deployment, every
// value has a workable default so the server boots with an empty
// environment against a local MySQL instance.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	AdminUsername string // username accepted for the admin role
	AdminPassword string // admin password, plain or bcrypt-hashed
	UserPassword  string // shared password accepted for the user role
	JWTSecret     string // secret used to sign access tokens
	AccessTTLMin  int    // access token time-to-live in minutes
}

// Load reads configuration values from environment variables and returns
// a Config.  Missing variables fall back to the defaults below; nothing
// is fatal at load time.
func Load() Config {
	return Config{
		Env:           getenv("APP_ENV", "dev"),
		Port:          getenv("APP_PORT", getenv("PORT", "3000")),
		DBUser:        getenv("DB_USER", "root"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        getenv("DB_HOST", "127.0.0.1"),
		DBPort:        getenv("DB_PORT", "3306"),
		DBName:        getenv("DB_NAME", "redemption"),
		AdminUsername: getenv("ADMIN_USERNAME", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		UserPassword:  getenv("USER_PASSWORD", "1"),
		JWTSecret:     getenv("JWT_SECRET", "dev-only-secret"),
		AccessTTLMin:  atoi(getenv("ACCESS_TOKEN_TTL_MIN", "60")),
	}
}

// getenv returns the value of key or def when the variable is unset or
// empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}
