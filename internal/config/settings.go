package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Backend names accepted by the backend setting.
const (
	BackendREST        = "rest"
	BackendGoogleTasks = "googletasks"
)

const (
	defaultBaseURL    = "http://127.0.0.1:3000"
	defaultCollection = "tasks"
	defaultTimeout    = 10 * time.Second
	defaultGoogleList = "@default"
	defaultLogLevel   = "info"
	envBackend        = "TASKORG_BACKEND"
	envBaseURL        = "TASKORG_BASE_URL"
	envToken          = "TASKORG_TOKEN"
	envLogLevel       = "TASKORG_LOG_LEVEL"
)

// Settings is the content of config.toml.
type Settings struct {
	Backend string `toml:"backend"`

	// PurgeConcurrency bounds the deletes a bulk clear runs at once.
	// Zero keeps the built-in default.
	PurgeConcurrency int `toml:"purge_concurrency"`

	REST        RESTSettings        `toml:"rest"`
	GoogleTasks GoogleTasksSettings `toml:"googletasks"`
	Logging     LoggingSettings     `toml:"logging"`
}

// RESTSettings configures the JSON REST backend.
type RESTSettings struct {
	BaseURL    string `toml:"base_url"`
	Collection string `toml:"collection"`
	Token      string `toml:"token"`
	Timeout    string `toml:"timeout"`
}

// GoogleTasksSettings configures the Google Tasks backend.
type GoogleTasksSettings struct {
	List string `toml:"list"`
}

// LoggingSettings configures logging.
type LoggingSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultSettings returns the settings used when config.toml is absent.
func DefaultSettings() Settings {
	return Settings{
		Backend: BackendREST,
		REST: RESTSettings{
			BaseURL:    defaultBaseURL,
			Collection: defaultCollection,
			Timeout:    defaultTimeout.String(),
		},
		GoogleTasks: GoogleTasksSettings{List: defaultGoogleList},
		Logging:     LoggingSettings{Level: defaultLogLevel},
	}
}

// LoadSettings reads path over the defaults, then applies environment
// overrides. A missing or empty file is not an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if err := readTOML(path, &s); err != nil {
		return Settings{}, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	s.applyEnv()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the settings for values no backend can use.
func (s Settings) Validate() error {
	switch s.BackendName() {
	case BackendREST, BackendGoogleTasks:
	default:
		return fmt.Errorf("unknown backend: %s", s.Backend)
	}
	if _, err := s.REST.timeout(); err != nil {
		return fmt.Errorf("invalid rest.timeout: %w", err)
	}
	if s.PurgeConcurrency < 0 {
		return fmt.Errorf("invalid purge_concurrency: %d", s.PurgeConcurrency)
	}
	return nil
}

// BackendName returns the normalized backend name.
func (s Settings) BackendName() string {
	name := strings.ToLower(strings.TrimSpace(s.Backend))
	if name == "" {
		return BackendREST
	}
	return name
}

// LogLevel returns the configured log level, defaulting to info.
func (s Settings) LogLevel() string {
	level := strings.TrimSpace(s.Logging.Level)
	if level == "" {
		return defaultLogLevel
	}
	return level
}

// GoogleList returns the Google Tasks list id.
func (s Settings) GoogleList() string {
	list := strings.TrimSpace(s.GoogleTasks.List)
	if list == "" {
		return defaultGoogleList
	}
	return list
}

// CollectionURL returns the URL of the tasks collection.
func (r RESTSettings) CollectionURL() string {
	base := strings.TrimRight(strings.TrimSpace(r.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	collection := strings.Trim(strings.TrimSpace(r.Collection), "/")
	if collection == "" {
		collection = defaultCollection
	}
	return base + "/" + collection
}

// RequestTimeout returns the per-call timeout.
func (r RESTSettings) RequestTimeout() time.Duration {
	d, err := r.timeout()
	if err != nil {
		return defaultTimeout
	}
	return d
}

func (r RESTSettings) timeout() (time.Duration, error) {
	raw := strings.TrimSpace(r.Timeout)
	if raw == "" {
		return defaultTimeout, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.New("must be positive")
	}
	return d, nil
}

func (s *Settings) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(envBackend)); v != "" {
		s.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		s.REST.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envToken)); v != "" {
		s.REST.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		s.Logging.Level = v
	}
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
