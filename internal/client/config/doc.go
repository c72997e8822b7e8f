// Package config loads runtime configuration for the tailorhub terminal
// client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: TAILORHUB_* variables, with a .env file in the working
//     directory as fallback (github.com/joho/godotenv).
//  3. Optional config file selected via -c or -config; JSON, or YAML when the
//     name ends in .yaml/.yml.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-d string   local database path
//	-l string   log level (debug, info, warn, error)
//	-m string   metrics listen address
//	-j string   Jaeger collector endpoint
//
// Environment variables
//
//	TAILORHUB_API_URL, TAILORHUB_TIMEOUT (Go duration), TAILORHUB_DB_PATH,
//	TAILORHUB_LOG_LEVEL, TAILORHUB_LOG_BACKEND, TAILORHUB_METRICS_ADDR,
//	TAILORHUB_JAEGER_ENDPOINT, TAILORHUB_LOCALE
//
// # File schema
//
//	{
//	  "api_base_url": "http://127.0.0.1:5000/api/v1",
//	  "request_timeout": "10s",
//	  "database_path": "tailorhub.db",
//	  "log_level": "info",
//	  "log_backend": "zap",
//	  "metrics_addr": ":9464",
//	  "jaeger_endpoint": "http://localhost:14268/api/traces",
//	  "locale": "en-IN"
//	}
package config
