package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds application configuration values.
type Config struct {
	HTTPPort    string
	DataDir     string
	CatalogPath string
	LedgerPath  string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	return Config{
		HTTPPort:    port,
		DataDir:     dataDir,
		CatalogPath: filepath.Join(dataDir, "catalog.csv"),
		LedgerPath:  filepath.Join(dataDir, "sales_history.csv"),
	}
}
