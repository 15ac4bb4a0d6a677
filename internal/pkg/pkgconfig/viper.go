package pkgconfig

import (
	"errors"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// Option tweaks how NewViper builds the underlying viper instance.
type Option func(v *viper.Viper)

// WithDefaults registers fallback values used when neither the file nor the
// environment provide a key.
func WithDefaults(defaults map[string]any) Option {
	return func(v *viper.Viper) {
		for key, value := range defaults {
			v.SetDefault(key, value)
		}
	}
}

// WithDotEnv loads the given dotenv files into the process environment before
// the environment is bound. Missing files are ignored.
func WithDotEnv(files ...string) Option {
	return func(*viper.Viper) {
		for _, file := range files {
			if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("failed to load dotenv file", "file", file, "error", err)
			}
		}
	}
}

// NewViper loads configuration from the given file path and returns a Viper-backed Config.
//
// The config file type is inferred by Viper from the filename extension. A
// missing file is not an error: values then come from defaults and the
// environment, where "upload_folder" is read from UPLOAD_FOLDER and
// "modules.ingest.enabled" from MODULES_INGEST_ENABLED.
func NewViper(pathFile string, opts ...Option) (*Viper, error) {
	v := viper.New()

	for _, opt := range opts {
		opt(v)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	filename := path.Base(pathFile)
	filePath := path.Dir(pathFile)

	configName := path.Base(filename[:len(filename)-len(path.Ext(filename))])

	v.AddConfigPath(filePath)
	v.SetConfigName(configName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		slog.Warn("config file not found, using defaults and environment", "path", pathFile)
	}

	return &Viper{v: v}, nil
}

// GetInt returns the value for key as int64.
func (vc *Viper) GetInt(key string) int64 {
	return vc.v.GetInt64(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetArray returns the value for key split by commas, trimmed, without empty
// items. YAML sequences are accepted as well.
func (vc *Viper) GetArray(key string) []string {
	var raw []string
	if items, ok := vc.v.Get(key).([]any); ok {
		for _, item := range items {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	} else {
		raw = strings.Split(vc.v.GetString(key), ",")
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	return nil
}
