// Package config loads the settings of a Story Spoiler test run.
//
// Values are layered: built in defaults, then an optional YAML file, then
// STORY_* environment variables derived from the `story` struct tags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	confGoTag        = "story"
	envStoryConf     = "STORY"
	envStoryConfFile = "STORY_CONFIGURATION"
	envStoryVersion  = "STORY_VERSION"
	defaultStoryConf = "story-spoiler.yml"
	biVCSCommit      = "vcs.revision"

	DefaultBaseURL  = "https://d3s5nxhwblsjbi.cloudfront.net"
	DefaultUsername = "Tester2"
	DefaultPassword = "tester2"
)

// ErrUnsupportedVersion is returned for an unknown configuration version.
var ErrUnsupportedVersion = errors.New("unsupported config version")

type Config struct {
	BaseURL    string      `story:"ROOT_URL" yaml:"baseURL"`       // scheme://host of the service under test
	Username   string      `story:"USERNAME" yaml:"username"`      // login for the authentication endpoint
	Password   string      `story:"PASSWORD" yaml:"password"`      // password for the authentication endpoint
	LogLevel   string      `story:"LOG" yaml:"logging"`            // slog logging level, defaults to "warn"
	LogWriter  io.Writer   `yaml:"-"`                              // writer used for logging, defaults to os.Stderr
	Debug      bool        `story:"DEBUG" yaml:"debug"`            // echo captured HTTP traffic while running
	Tests      ConfigTests `story:"TEST" yaml:"tests"`             // optional groups of cases
	ResultsDir string      `story:"RESULTS_DIR" yaml:"resultsDir"` // directory to write reports
	UserAgent  string      `story:"USER_AGENT" yaml:"userAgent"`   // user agent sent with each request
	Version    string      `story:"VERSION" yaml:"version"`        // config schema version
	Commit     string      `yaml:"commit"`                         // injected git commit hash from runtime
}

type ConfigTests struct {
	Scenario   bool `story:"SCENARIO" yaml:"scenario"`     // the seven ordered cases
	Properties bool `story:"PROPERTIES" yaml:"properties"` // extra cases that create and delete more stories
}

// Load builds the configuration from defaults, the YAML file named by
// STORY_CONFIGURATION (or story-spoiler.yml when present) and the
// environment.
func Load() (Config, error) {
	loadFile := ""
	if filename, ok := os.LookupEnv(envStoryConfFile); ok {
		loadFile = filename
	} else if fi, err := os.Stat(defaultStoryConf); err == nil && !fi.IsDir() {
		loadFile = defaultStoryConf
	}
	return LoadFile(loadFile)
}

// LoadFile is Load with an explicit file name. An empty name skips the file.
func LoadFile(filename string) (Config, error) {
	configFile := []byte{}
	if filename != "" {
		b, err := os.ReadFile(filename)
		if err != nil {
			return Config{}, err
		}
		configFile = b
	}
	// extract the version from the config file or env variable
	configVersion := ""
	if len(configFile) > 0 {
		verStruct := struct {
			Version string `yaml:"version"`
		}{}
		err := yaml.Unmarshal(configFile, &verStruct)
		if err != nil {
			return Config{}, err
		}
		configVersion = verStruct.Version
	}
	if v := os.Getenv(envStoryVersion); v != "" {
		configVersion = v
	}

	c := Config{
		BaseURL:    DefaultBaseURL,
		Username:   DefaultUsername,
		Password:   DefaultPassword,
		LogLevel:   "warn",
		LogWriter:  os.Stderr,
		ResultsDir: "./results",
		UserAgent:  "story-spoiler-api-tests",
	}
	switch configVersion {
	case "", "1":
		c.Tests = ConfigTests{
			Scenario:   true,
			Properties: false,
		}
		c.Version = "1"
	default:
		return Config{}, fmt.Errorf("%w %s", ErrUnsupportedVersion, configVersion)
	}

	if len(configFile) > 0 {
		err := yaml.Unmarshal(configFile, &c)
		if err != nil {
			return c, err
		}
	}

	// for each config option, check if env var is set to override value
	err := confFromEnv(envStoryConf, confGoTag, reflect.ValueOf(&c))
	if err != nil {
		return c, err
	}

	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.BaseURL == "" {
		return c, fmt.Errorf("base URL must not be empty")
	}

	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		for _, setting := range bi.Settings {
			if setting.Key == biVCSCommit {
				c.Commit = setting.Value
				break
			}
		}
	}
	return c, nil
}

func confFromEnv(env, tag string, vp reflect.Value) error {
	vpt := vp.Type()
	if vpt.Kind() != reflect.Pointer {
		return fmt.Errorf("confFromEnv requires a pointer input")
	}
	if vp.IsZero() {
		return nil // nil pointer
	}
	v := reflect.Indirect(vp)
	if v.Kind() == reflect.Pointer {
		// pointer to a pointer, recurse
		return confFromEnv(env, tag, v)
	}
	if v.Kind() == reflect.Struct {
		// expand each field, adding to prefix and recursing on pointer to the entry
		for i := 0; i < v.NumField(); i++ {
			vtf := v.Type().Field(i)
			tagVal := vtf.Tag.Get(tag)
			if tagVal != "" {
				if !v.Field(i).CanAddr() {
					return fmt.Errorf("unable to generate address on %s", v.Field(i).Type().Name())
				}
				tagEnv := fmt.Sprintf("%s_%s", env, tagVal)
				err := confFromEnv(tagEnv, tag, v.Field(i).Addr())
				if err != nil {
					return fmt.Errorf("field failed \"%s\": %w", vtf.Name, err)
				}
			}
		}
		return nil
	}

	val := os.Getenv(env)
	if val == "" {
		// skip undefined env variables
		return nil
	}

	if mt, ok := vp.Interface().(interface{ UnmarshalText(b []byte) error }); ok {
		err := mt.UnmarshalText([]byte(val))
		if err != nil {
			return fmt.Errorf("failed to unmarshal \"%s\": %w", env, err)
		}
		return nil
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(val)
	case reflect.Bool:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("failed to parse bool value from environment %s=%s", env, val)
		}
		v.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind: %s", v.Kind())
	}
	return nil
}

// Report renders the configuration as YAML with credentials censored.
func (c Config) Report() string {
	if c.Username != "" {
		c.Username = "***"
	}
	if c.Password != "" {
		c.Password = "***"
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("failed to marshal config: %v", err)
	}
	return string(b)
}
