// Package config provides configuration management for barkeep.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file, with defaults declared as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Store: catalog persistence driver and data directory
//   - Database: connection details for the database-backed store
//   - Storage: S3/MinIO credentials for offsite backups
//   - Log: logging level and format
//   - Pricing: costing defaults (target cost rate)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
