// Package config loads the toolkit's configuration from environment
// variables, with an optional .env file for local development.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    // handle error
//	}
//
// Or, for configuration the application cannot start without:
//
//	cfg := config.MustLoad()
//
// Every field has a development default; production deployments are expected
// to override at least AUTH_API_BASE_URL and AUTH_ENCRYPTION_KEY.
package config
