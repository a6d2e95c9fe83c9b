// Package config provides host configuration management from environment
// variables and YAML files.
//
// # Overview
//
// This package loads and validates configuration from environment variables
// with sensible defaults for all settings, and reads the plugins file that
// declares which plugins the host should load.
//
// # Configuration Structure
//
// File settings:
//
//	INKWELL_PLUGINS_FILE="plugins.yaml"
//	INKWELL_BLOGS_FILE="blogs.yaml"
//	INKWELL_WATCH_BLOGS="true"
//
// Registry settings:
//
//	INKWELL_RENDER_CACHE_SIZE="512"
//	INKWELL_RETRY_INITIAL_INTERVAL="500ms"
//	INKWELL_RETRY_MAX_INTERVAL="2m"
//
// Observability settings:
//
//	INKWELL_LOG_LEVEL="info"  # debug, info, warn, error
//	INKWELL_METRICS_ENABLED="true"
//
// # Plugins File
//
// The plugins file lists plugin descriptors:
//
//	plugins:
//	  - id: emoticons-main
//	    name: Emoticons
//	    impl: emoticons
//	    settings:
//	      table: ":)=smile.gif ;)=wink.gif"
//	  - id: greeter
//	    name: Greeter
//	    impl: lua
//	    modules:
//	      script: ./plugins/greeter.lua
//
// Descriptors with missing fields are not a parse error. They are passed
// through to the registry, which skips them one by one with a logged
// reason so the remaining plugins still load.
//
// # Usage Example
//
// Load configuration:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	descriptors, err := config.LoadPlugins(cfg.Files.PluginsFile)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Related Packages
//
//   - pkg/plugins: Consumes the loaded descriptors
//   - pkg/tenant: Parses the blogs file named by BlogsFile
//   - pkg/observability: Uses the log level setting
package config
