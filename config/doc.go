// Package config loads program configuration with Viper.
//
// LoadConfig reads a YAML file, then a .env file, then the process
// environment, each layer overriding the one before. Files are located by
// searching cmd/<service>/, config/, the working directory and
// ~/.config/<service>/ unless given explicitly. Environment keys are
// matched to nested config keys by trying the possible splits of their
// underscores, so HTTP_BASE_URL sets http.base_url.
//
//	var cfg Config
//	err := config.LoadConfig("dispatchctl", &cfg,
//	    config.WithConfigFile(path),
//	    config.WithEnvPrefix("DISPATCH"))
package config
