// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Several feeds may be configured; one is selected by name at startup.
package config
