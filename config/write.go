package config

import (
	"encoding/json"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Write dumps the effective configuration to w in the given format (yaml,
// json or toml). The dump round-trips: the toml output loads back into the
// same config.
func (c *Config) Write(w io.Writer, format string) error {
	doc := c.document()
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(doc)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(doc)
	case "toml":
		return toml.NewEncoder(w).Encode(doc)
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}

// document renders the config with the allow-list back in its file shape.
func (c *Config) document() map[string]any {
	main := map[string]any{}
	if c.Main.BindSocket != "" {
		main["bind_socket"] = c.Main.BindSocket
	} else {
		main["bind_host"] = c.Main.BindHost
		main["bind_port"] = c.Main.BindPort
	}
	if c.Main.AllowedDomains.IsRestricted() {
		main["allowed_domains"] = c.Main.AllowedDomains.Domains()
	} else {
		main["allowed_domains"] = false
	}

	doc := map[string]any{
		"main": main,
		"hostingde": map[string]any{
			"zone":        c.Provider.Zone,
			"token":       c.Provider.Token,
			"default_ttl": c.Provider.DefaultTTL,
		},
	}

	if c.Log != nil {
		logDoc := map[string]any{
			"level":  c.Log.Level,
			"format": c.Log.Format,
			"output": c.Log.Output,
		}
		if c.Log.Rotation != nil {
			logDoc["rotation"] = map[string]any{
				"max_size":    c.Log.Rotation.MaxSize,
				"max_age":     c.Log.Rotation.MaxAge,
				"max_backups": c.Log.Rotation.MaxBackups,
				"local_time":  c.Log.Rotation.LocalTime,
				"compress":    c.Log.Rotation.Compress,
			}
		}
		doc["log"] = logDoc
	}
	return doc
}
