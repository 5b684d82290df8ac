package config

import (
	"os"
	"strconv"
)

const (
	DefaultTagsDir   = "taxonomy/tags"
	DefaultAddr      = ":8080"
	DefaultAPIURL    = "http://localhost:8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// TagsDir returns the tags directory from TAGMANAGER_TAGS_DIR env var,
// falling back to DefaultTagsDir.
func TagsDir() string {
	return getenv("TAGMANAGER_TAGS_DIR", DefaultTagsDir)
}

// Addr returns the server listen address from TAGMANAGER_ADDR
func Addr() string {
	return getenv("TAGMANAGER_ADDR", DefaultAddr)
}

// APIURL returns the server base URL clients connect to, from TAGMANAGER_API_URL
func APIURL() string {
	return getenv("TAGMANAGER_API_URL", DefaultAPIURL)
}

// IndexPath returns the reference index database path from
// TAGMANAGER_INDEX_PATH. Empty means a per-directory file in the XDG data dir.
func IndexPath() string {
	return os.Getenv("TAGMANAGER_INDEX_PATH")
}

// LogLevel returns the log level from TAGMANAGER_LOG_LEVEL
func LogLevel() string {
	return getenv("TAGMANAGER_LOG_LEVEL", DefaultLogLevel)
}

// LogFormat returns the log format (text or json) from TAGMANAGER_LOG_FORMAT
func LogFormat() string {
	return getenv("TAGMANAGER_LOG_FORMAT", DefaultLogFormat)
}

// Export holds the export destination settings
type Export struct {
	// Dir is the local output directory, used when Bucket is empty
	Dir             string
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

// ExportSettings reads the TAGMANAGER_EXPORT_* env vars
func ExportSettings() Export {
	pathStyle, _ := strconv.ParseBool(os.Getenv("TAGMANAGER_EXPORT_S3_PATH_STYLE"))
	return Export{
		Dir:             getenv("TAGMANAGER_EXPORT_DIR", "."),
		Bucket:          os.Getenv("TAGMANAGER_EXPORT_S3_BUCKET"),
		Prefix:          os.Getenv("TAGMANAGER_EXPORT_S3_PREFIX"),
		Region:          os.Getenv("TAGMANAGER_EXPORT_S3_REGION"),
		Endpoint:        os.Getenv("TAGMANAGER_EXPORT_S3_ENDPOINT"),
		AccessKeyID:     os.Getenv("TAGMANAGER_EXPORT_S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("TAGMANAGER_EXPORT_S3_SECRET_ACCESS_KEY"),
		PathStyle:       pathStyle,
	}
}

func getenv(key, fallback string) string {
	if env := os.Getenv(key); env != "" {
		return env
	}
	return fallback
}
