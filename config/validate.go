package config

import "github.com/halcyard/finfetch/errors"

// Validate checks that the configuration is complete enough to run a
// fetch. Missing vendor configuration is fatal before any vendor is
// processed.
func (c *Config) Validate() error {
	if c.Client.Binary == "" {
		return errors.New("client.binary must be set (path to the report client executable)")
	}
	if c.Client.Properties == "" {
		return errors.New("client.properties must be set (client properties file)")
	}
	if c.Client.TimeoutSeconds <= 0 {
		return errors.Newf("client.timeout_seconds must be > 0, got %d", c.Client.TimeoutSeconds)
	}

	if c.Reports.Vendors == "" {
		return errors.WithHint(
			errors.New("reports.vendors must be set"),
			"space-delimited list of vendor identifiers, e.g. \"V1 V2 V3\"",
		)
	}
	if c.Reports.Destination == "" {
		return errors.New("reports.destination must be set (directory for fetched reports)")
	}
	if c.Reports.DelaySeconds < 0 {
		return errors.Newf("reports.delay_seconds must be >= 0, got %d", c.Reports.DelaySeconds)
	}

	if c.Notify.Enabled {
		if c.Notify.SMTPHost == "" {
			return errors.New("notify.smtp_host cannot be empty when notifications are enabled")
		}
		if c.Notify.From == "" || c.Notify.To == "" {
			return errors.New("notify.from and notify.to cannot be empty when notifications are enabled")
		}
	}

	return nil
}
