// Package config loads finfetch configuration using Viper: defaults,
// then a finfetch.toml file (working directory or ~/.config/finfetch/),
// then FINFETCH_* environment variables.
package config

import (
	"strings"
	"time"
)

// Config is the full finfetch configuration.
type Config struct {
	Client  ClientConfig  `mapstructure:"client"`
	Reports ReportsConfig `mapstructure:"reports"`
	Notify  NotifyConfig  `mapstructure:"notify"`
}

// ClientConfig describes how to invoke the external report client.
type ClientConfig struct {
	// Binary is the path to the client executable.
	Binary string `mapstructure:"binary"`
	// Properties is the client properties file passed via -p.
	Properties string `mapstructure:"properties"`
	// Verb is the client command verb.
	Verb string `mapstructure:"verb"`
	// Workdir is where the client runs and drops its artifact.
	Workdir string `mapstructure:"workdir"`
	// TimeoutSeconds bounds a single invocation.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// Timeout returns the per-invocation timeout as a duration.
func (c ClientConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ReportsConfig describes what to fetch and where to put it.
type ReportsConfig struct {
	// Vendors is a single ordered, space-delimited list of vendor
	// identifiers.
	Vendors string `mapstructure:"vendors"`
	// Destination is the directory finished reports are moved into.
	Destination string `mapstructure:"destination"`
	// DelaySeconds is the fixed pause between vendor invocations.
	DelaySeconds int `mapstructure:"delay_seconds"`
}

// VendorList splits the configured vendor string. Order is preserved
// and duplicates are kept: the run processes exactly what was
// configured.
func (c ReportsConfig) VendorList() []string {
	return strings.Fields(c.Vendors)
}

// Delay returns the inter-vendor pause as a duration.
func (c ReportsConfig) Delay() time.Duration {
	return time.Duration(c.DelaySeconds) * time.Second
}

// NotifyConfig configures the auth-failure mail notification.
type NotifyConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	From         string `mapstructure:"from"`
	To           string `mapstructure:"to"`
}
