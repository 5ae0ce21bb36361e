package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Client defaults
	v.SetDefault("client.verb", "download")
	v.SetDefault("client.workdir", ".")
	v.SetDefault("client.timeout_seconds", 600) // stuck client must not hang the batch

	// Reports defaults
	v.SetDefault("reports.delay_seconds", 30) // courtesy pause between vendor invocations

	// Notification defaults
	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.smtp_port", 587)
}
