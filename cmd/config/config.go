package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// ErrUnknownFormat is returned for a config file that is neither toml nor yaml
var ErrUnknownFormat = errors.New("unknown config format")

// LoadFile parse the config from the file of the path, the format follows the extension
func LoadFile(path string, v interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", "":
		return LoadReader(file, v)
	case ".yaml", ".yml":
		return LoadYAMLReader(file, v)
	default:
		return errors.Wrap(ErrUnknownFormat, path)
	}
}

// LoadString parse the config from the toml string
func LoadString(data string, v interface{}) error {
	return LoadReader(bytes.NewReader([]byte(data)), v)
}

// LoadReader parse the toml config from the reader
func LoadReader(r io.Reader, v interface{}) error {
	if _, err := toml.NewDecoder(r).Decode(v); err != nil {
		return errors.Wrap(err, "decode toml")
	}
	return nil
}

// LoadYAMLReader parse the yaml config from the reader
func LoadYAMLReader(r io.Reader, v interface{}) error {
	if err := yaml.NewDecoder(r).Decode(v); err != nil && err != io.EOF {
		return errors.Wrap(err, "decode yaml")
	}
	return nil
}

// LoadEnv loads the dotenv files into the process environment, missing files are skipped.
// Variables already set in the environment are kept.
func LoadEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return errors.Wrap(err, p)
		}
	}
	return nil
}

// Getenv returns the environment value of the key or def when it is empty
func Getenv(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
