package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	apperrors "gemini-transcriber/internal/app/errors"
)

const (
	DefaultModel      = "gemini-2.0-flash"
	DefaultPrompt     = "Hello, how are you doing today?"
	DefaultAudioPath  = "media/filename.mp3"
	DefaultOutputPath = "output/transcript.txt"
)

// Settings is the optional YAML settings file. Command-line flags override it.
type Settings struct {
	Model      string `yaml:"model" validate:"required"`
	Prompt     string `yaml:"prompt"`
	AudioPath  string `yaml:"audio_path" validate:"required"`
	OutputPath string `yaml:"output_path" validate:"required"`
	// MIMEType overrides content sniffing of the audio file.
	MIMEType string `yaml:"mime_type,omitempty" validate:"omitempty,startswith=audio/|startswith=video/"`

	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`

	// RunTimeout bounds a whole run, e.g. "2m". Zero means no deadline.
	RunTimeout time.Duration `yaml:"timeout,omitempty"`

	LedgerPath   string `yaml:"ledger_path,omitempty"`
	MetricsFile  string `yaml:"metrics_file,omitempty"`
	DeleteUpload bool   `yaml:"delete_upload,omitempty"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() *Settings {
	return &Settings{
		Model:      DefaultModel,
		Prompt:     DefaultPrompt,
		AudioPath:  DefaultAudioPath,
		OutputPath: DefaultOutputPath,
	}
}

// Timeout is zero when no deadline is configured.
func (s *Settings) Timeout() time.Duration {
	return s.RunTimeout
}

// LoadSettings reads a YAML settings file. An empty path yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}

	path = os.ExpandEnv(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.KindConfig, "failed to read settings file %s", path)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.KindConfig, "failed to parse settings file %s", path)
	}

	settings.expandEnvironmentVariables()
	settings.applyDefaults()

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks the struct tags.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return apperrors.Wrap(err, apperrors.KindConfig, "invalid configuration")
	}
	return ValidateTimeout(s.Timeout(), "run")
}

func (s *Settings) expandEnvironmentVariables() {
	for _, field := range []*string{&s.Model, &s.AudioPath, &s.OutputPath, &s.LedgerPath, &s.MetricsFile} {
		*field = os.ExpandEnv(*field)
	}
}

func (s *Settings) applyDefaults() {
	s.Model = lo.CoalesceOrEmpty(s.Model, DefaultModel)
	s.Prompt = lo.CoalesceOrEmpty(s.Prompt, DefaultPrompt)
	s.AudioPath = lo.CoalesceOrEmpty(s.AudioPath, DefaultAudioPath)
	s.OutputPath = lo.CoalesceOrEmpty(s.OutputPath, DefaultOutputPath)
}
