package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file kept in the user's home directory.
const FileName = ".ai_commit_config"

// fallbackPath is used when the home directory cannot be determined.
const fallbackPath = "/home/unknown/" + FileName

const (
	KeyModel          = "MODEL"
	KeyOpenAIAPIKey   = "OPENAI_API_KEY"
	KeyOpenAIModel    = "OPENAI_MODEL"
	KeyOpenAIEndpoint = "OPENAI_ENDPOINT"
	KeyOpenAIExtract  = "OPENAI_EXTRACT_MESSAGE"
	KeyOllamaModel    = "OLLAMA_MODEL"
	KeyOllamaHost     = "OLLAMA_HOST"
)

// Keys lists every recognized key in display order.
var Keys = []string{
	KeyModel,
	KeyOpenAIAPIKey,
	KeyOpenAIModel,
	KeyOpenAIEndpoint,
	KeyOpenAIExtract,
	KeyOllamaModel,
	KeyOllamaHost,
}

const (
	DefaultModel          = "mistral"
	DefaultOpenAIModel    = "gpt-4"
	DefaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"
	DefaultOllamaModel    = "mistral"
)

// Backend selects which generator the orchestrator tries first.
type Backend int

const (
	Local Backend = iota
	Remote
)

func (b Backend) String() string {
	if b == Remote {
		return "openai"
	}
	return "ollama"
}

// Config is the parsed settings file. Lines are kept verbatim, in order, so
// that Save rewrites the file without dropping anything it did not touch.
type Config struct {
	Path  string
	lines []string
}

// DefaultPath returns ~/.ai_commit_config, or a fixed path when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return fallbackPath
	}
	return filepath.Join(home, FileName)
}

// Load reads the settings file at path. A missing or unreadable file yields
// an empty Config; loading never fails.
func Load(path string) *Config {
	f, err := os.Open(path)
	if err != nil {
		return &Config{Path: path}
	}
	defer f.Close()

	cfg := Parse(f)
	cfg.Path = path
	return cfg
}

// Parse reads KEY=value lines from r. Lines of any length are kept; a read
// error stops parsing and keeps whatever was read so far.
func Parse(r io.Reader) *Config {
	cfg := &Config{}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			cfg.lines = append(cfg.lines, strings.TrimSuffix(line, "\r"))
		}
		if err != nil {
			return cfg
		}
	}
}

// Get returns the value of the first line starting with "KEY=", trimmed.
func (c *Config) Get(key string) (string, bool) {
	prefix := key + "="
	for _, line := range c.lines {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	return "", false
}

func (c *Config) getOr(key, fallback string) string {
	if v, ok := c.Get(key); ok && v != "" {
		return v
	}
	return fallback
}

// SelectedBackendName returns MODEL, defaulting to "mistral".
func (c *Config) SelectedBackendName() string {
	if v, ok := c.Get(KeyModel); ok {
		return v
	}
	return DefaultModel
}

// Backend maps MODEL to a selector: "openai" is Remote, anything else Local.
func (c *Config) Backend() Backend {
	if c.SelectedBackendName() == "openai" {
		return Remote
	}
	return Local
}

// RemoteAPIKey returns OPENAI_API_KEY when the key is present.
func (c *Config) RemoteAPIKey() (string, bool) {
	return c.Get(KeyOpenAIAPIKey)
}

func (c *Config) OpenAIModel() string {
	return c.getOr(KeyOpenAIModel, DefaultOpenAIModel)
}

func (c *Config) OpenAIEndpoint() string {
	return c.getOr(KeyOpenAIEndpoint, DefaultOpenAIEndpoint)
}

// ExtractMessage reports whether the remote response envelope should be
// decoded instead of returned verbatim.
func (c *Config) ExtractMessage() bool {
	v, _ := c.Get(KeyOpenAIExtract)
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func (c *Config) OllamaModel() string {
	return c.getOr(KeyOllamaModel, DefaultOllamaModel)
}

// OllamaHost returns OLLAMA_HOST from the file, or "" to use the environment.
func (c *Config) OllamaHost() string {
	v, _ := c.Get(KeyOllamaHost)
	return v
}

// OllamaEnv is the environment the ollama subprocess needs so that it talks
// to the same server the check command reports on.
func (c *Config) OllamaEnv() []string {
	if host := c.OllamaHost(); host != "" {
		return []string{KeyOllamaHost + "=" + host}
	}
	return nil
}

// Set replaces the first KEY= line or appends one.
func (c *Config) Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown key %q (supported: %s)", key, strings.Join(Keys, ", "))
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("value for %s must be a single line", key)
	}

	prefix := key + "="
	for i, line := range c.lines {
		if strings.HasPrefix(line, prefix) {
			c.lines[i] = prefix + value
			return nil
		}
	}
	c.lines = append(c.lines, prefix+value)
	return nil
}

// Save writes the file back to Path. The file holds a credential, so it is
// created owner-only.
func (c *Config) Save() error {
	if c.Path == "" {
		return fmt.Errorf("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var b strings.Builder
	for _, line := range c.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if err := os.WriteFile(c.Path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

type effectiveSettings struct {
	Path    string         `yaml:"path"`
	Backend string         `yaml:"backend"`
	Model   string         `yaml:"model"`
	OpenAI  openAISettings `yaml:"openai"`
	Ollama  ollamaSettings `yaml:"ollama"`
}

type openAISettings struct {
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"api_key"`
	ExtractMessage bool   `yaml:"extract_message"`
}

type ollamaSettings struct {
	Model string `yaml:"model"`
	Host  string `yaml:"host,omitempty"`
}

// YAML renders the effective settings, with the API key masked.
func (c *Config) YAML() ([]byte, error) {
	key, ok := c.RemoteAPIKey()
	masked := "(not set)"
	if ok {
		masked = maskSecret(key)
	}

	out, err := yaml.Marshal(effectiveSettings{
		Path:    c.Path,
		Backend: c.Backend().String(),
		Model:   c.SelectedBackendName(),
		OpenAI: openAISettings{
			Endpoint:       c.OpenAIEndpoint(),
			Model:          c.OpenAIModel(),
			APIKey:         masked,
			ExtractMessage: c.ExtractMessage(),
		},
		Ollama: ollamaSettings{
			Model: c.OllamaModel(),
			Host:  c.OllamaHost(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return out, nil
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:3] + strings.Repeat("*", len(s)-7) + s[len(s)-4:]
}
