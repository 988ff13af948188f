package config

import (
	"github.com/spf13/viper"
)

// Settings are the CLI settings read from flags, environment and the config file.
type Settings struct {
	LogLevel    string
	Locale      string
	CachePath   string
	Decls       int
	ParentIndex int
	Format      string
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("loglevel", "info")
	v.SetDefault("locale", "en-US")
	v.SetDefault("cache", "")
	v.SetDefault("decls", 16)
	v.SetDefault("parent", -1)
	v.SetDefault("format", "text")
}

// LoadSettings reads the settings from v.
func LoadSettings(v *viper.Viper) Settings {
	return Settings{
		LogLevel:    v.GetString("loglevel"),
		Locale:      v.GetString("locale"),
		CachePath:   v.GetString("cache"),
		Decls:       v.GetInt("decls"),
		ParentIndex: v.GetInt("parent"),
		Format:      v.GetString("format"),
	}
}
