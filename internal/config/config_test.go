package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "does-not-exist"))

	if got := cfg.SelectedBackendName(); got != "mistral" {
		t.Errorf("SelectedBackendName() = %q, want %q", got, "mistral")
	}
	if cfg.Backend() != Local {
		t.Errorf("Backend() = %v, want Local", cfg.Backend())
	}
	if _, ok := cfg.RemoteAPIKey(); ok {
		t.Error("RemoteAPIKey() reported a key for a missing file")
	}
}

func TestLoad_DirectoryIsNotAnError(t *testing.T) {
	cfg := Load(t.TempDir())
	if cfg.Backend() != Local {
		t.Errorf("Backend() = %v, want Local", cfg.Backend())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantModel   string
		wantBackend Backend
		wantKey     string
		wantKeyOK   bool
	}{
		{
			name:        "empty",
			input:       "",
			wantModel:   "mistral",
			wantBackend: Local,
		},
		{
			name:        "openai with key",
			input:       "MODEL=openai\nOPENAI_API_KEY=sk-test\n",
			wantModel:   "openai",
			wantBackend: Remote,
			wantKey:     "sk-test",
			wantKeyOK:   true,
		},
		{
			name:        "openai without key",
			input:       "MODEL=openai\n",
			wantModel:   "openai",
			wantBackend: Remote,
		},
		{
			name:        "values are trimmed",
			input:       "MODEL=  openai  \r\nOPENAI_API_KEY= sk-x \r\n",
			wantModel:   "openai",
			wantBackend: Remote,
			wantKey:     "sk-x",
			wantKeyOK:   true,
		},
		{
			name:        "other model names select local",
			input:       "MODEL=llama3\n",
			wantModel:   "llama3",
			wantBackend: Local,
		},
		{
			name:        "malformed lines are skipped",
			input:       "garbage\n=oops\n # MODEL=openai\nMODEL\nMODEL=openai\n",
			wantModel:   "openai",
			wantBackend: Remote,
		},
		{
			name:        "first occurrence wins",
			input:       "MODEL=mistral\nMODEL=openai\n",
			wantModel:   "mistral",
			wantBackend: Local,
		},
		{
			name:        "prefix must match the whole key",
			input:       "MODELX=openai\nOPENAI_API_KEY_OLD=sk-old\n",
			wantModel:   "mistral",
			wantBackend: Local,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Parse(strings.NewReader(tt.input))

			if got := cfg.SelectedBackendName(); got != tt.wantModel {
				t.Errorf("SelectedBackendName() = %q, want %q", got, tt.wantModel)
			}
			if got := cfg.Backend(); got != tt.wantBackend {
				t.Errorf("Backend() = %v, want %v", got, tt.wantBackend)
			}
			key, ok := cfg.RemoteAPIKey()
			if ok != tt.wantKeyOK || key != tt.wantKey {
				t.Errorf("RemoteAPIKey() = (%q, %v), want (%q, %v)", key, ok, tt.wantKey, tt.wantKeyOK)
			}
		})
	}
}

func TestParse_LongLineKeepsLaterKeys(t *testing.T) {
	long := "NOTE=" + strings.Repeat("x", 2*1024*1024)
	input := "MODEL=openai\r\n" + long + "\nOPENAI_API_KEY=sk-after\n"

	cfg := Parse(strings.NewReader(input))
	if got := cfg.SelectedBackendName(); got != "openai" {
		t.Errorf("SelectedBackendName() = %q, want openai", got)
	}
	key, ok := cfg.RemoteAPIKey()
	if !ok || key != "sk-after" {
		t.Errorf("RemoteAPIKey() = %q, %v; want sk-after, true", key, ok)
	}
}

func TestOptionalKeysDefaults(t *testing.T) {
	cfg := Parse(strings.NewReader("OLLAMA_MODEL=\n"))

	if got := cfg.OllamaModel(); got != DefaultOllamaModel {
		t.Errorf("OllamaModel() = %q, want %q", got, DefaultOllamaModel)
	}
	if got := cfg.OpenAIModel(); got != DefaultOpenAIModel {
		t.Errorf("OpenAIModel() = %q, want %q", got, DefaultOpenAIModel)
	}
	if got := cfg.OpenAIEndpoint(); got != DefaultOpenAIEndpoint {
		t.Errorf("OpenAIEndpoint() = %q, want %q", got, DefaultOpenAIEndpoint)
	}
	if cfg.ExtractMessage() {
		t.Error("ExtractMessage() should default to false")
	}

	cfg = Parse(strings.NewReader("OPENAI_EXTRACT_MESSAGE=True\nOLLAMA_MODEL=llama3\n"))
	if !cfg.ExtractMessage() {
		t.Error("ExtractMessage() = false for True")
	}
	if got := cfg.OllamaModel(); got != "llama3" {
		t.Errorf("OllamaModel() = %q, want llama3", got)
	}
}

func TestOllamaEnv(t *testing.T) {
	if env := Parse(strings.NewReader("MODEL=mistral\n")).OllamaEnv(); env != nil {
		t.Errorf("OllamaEnv() without a host = %q, want nil", env)
	}

	env := Parse(strings.NewReader("OLLAMA_HOST= http://gpu-box:11434 \n")).OllamaEnv()
	if len(env) != 1 || env[0] != "OLLAMA_HOST=http://gpu-box:11434" {
		t.Errorf("OllamaEnv() = %q", env)
	}
}

func TestSetAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Load(path)

	if err := cfg.Set(KeyModel, "openai"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := cfg.Set(KeyOpenAIAPIKey, "sk-one"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := cfg.Set(KeyOpenAIAPIKey, "sk-two"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if want := "MODEL=openai\nOPENAI_API_KEY=sk-two\n"; string(data) != want {
		t.Errorf("saved file = %q, want %q", string(data), want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	reloaded := Load(path)
	if key, _ := reloaded.RemoteAPIKey(); key != "sk-two" {
		t.Errorf("reloaded key = %q, want sk-two", key)
	}
}

func TestSave_KeepsUnknownLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("# comment\nMODEL=mistral\nCUSTOM=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)
	if err := cfg.Set(KeyModel, "openai"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if want := "# comment\nMODEL=openai\nCUSTOM=1\n"; string(data) != want {
		t.Errorf("saved file = %q, want %q", string(data), want)
	}
}

func TestSet_Rejects(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Set("NOPE", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := cfg.Set(KeyModel, "a\nb"); err == nil {
		t.Error("expected error for multi-line value")
	}
}

func TestYAML_MasksKey(t *testing.T) {
	cfg := Parse(strings.NewReader("MODEL=openai\nOPENAI_API_KEY=sk-abcdefghijkl1234\n"))

	out, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML() error: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "sk-abcdefghijkl1234") {
		t.Errorf("YAML output leaks the API key:\n%s", s)
	}
	if !strings.Contains(s, "backend: openai") {
		t.Errorf("YAML output missing backend:\n%s", s)
	}
	if !strings.Contains(s, "1234") {
		t.Errorf("YAML output should keep the key suffix:\n%s", s)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/tmp/somebody")
	if got := DefaultPath(); got != filepath.Join("/tmp/somebody", FileName) {
		t.Errorf("DefaultPath() = %q", got)
	}

	t.Setenv("HOME", "")
	if got := DefaultPath(); got != fallbackPath {
		t.Errorf("DefaultPath() with no home = %q, want %q", got, fallbackPath)
	}
}
