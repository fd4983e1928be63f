package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aide-ai/aide/internal/fsutil"
)

// Store is the aggregate root for all configuration: one instance of each
// schema section, the model registry, and the extension settings map.
//
// A Store is not safe for concurrent mutation. Callers must serialize Load
// and Save; CheckConnectivity only reads.
type Store struct {
	dir    string
	logger *slog.Logger

	models map[string]ModelConfig
	order  []string // registry display/iteration order

	sandbox  SandboxConfig
	database DatabaseConfig
	memory   MemoryConfig
	logging  LoggingConfig
	security SecurityConfig
	ui       UIConfig
	custom   map[string]Value

	httpClient   *http.Client
	probeTimeout time.Duration
}

// New creates a store rooted at dir with compiled-in defaults and an empty
// model registry. Load populates it from the configuration documents.
func New(dir string) *Store {
	s := &Store{
		dir:          dir,
		logger:       slog.Default(),
		httpClient:   &http.Client{},
		probeTimeout: 10 * time.Second,
	}
	s.applyDefaults()
	return s
}

// WithLogger sets the logger used for warnings during load and probes.
func (s *Store) WithLogger(logger *slog.Logger) *Store {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithHTTPClient sets the client used for connectivity probes.
func (s *Store) WithHTTPClient(client *http.Client) *Store {
	if client != nil {
		s.httpClient = client
	}
	return s
}

// WithProbeTimeout bounds each connectivity probe.
func (s *Store) WithProbeTimeout(d time.Duration) *Store {
	if d > 0 {
		s.probeTimeout = d
	}
	return s
}

// Dir returns the configuration directory.
func (s *Store) Dir() string { return s.dir }

// ResolvePath resolves a configured path. Relative paths are rooted at the
// configuration directory so a fresh install stays self-contained.
func (s *Store) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.dir, path)
}

func (s *Store) applyDefaults() {
	s.models = make(map[string]ModelConfig)
	s.order = nil
	s.sandbox = DefaultSandboxConfig()
	s.database = DefaultDatabaseConfig()
	s.memory = DefaultMemoryConfig()
	s.logging = DefaultLoggingConfig()
	s.security = DefaultSecurityConfig()
	s.ui = DefaultUIConfig()
	s.custom = make(map[string]Value)
}

// Load reads the four configuration documents, synthesizing a default for
// any absent one, and validates the merged result. Loading is idempotent:
// unchanged documents reproduce an equal in-memory state.
func (s *Store) Load() error {
	if err := fsutil.EnsureDir(s.dir); err != nil {
		return ioErr("", fmt.Errorf("creating config directory %s: %w", s.dir, err))
	}

	s.applyDefaults()

	if err := s.loadSettings(); err != nil {
		return err
	}
	if err := s.loadModels(); err != nil {
		return err
	}
	if err := s.loadTools(); err != nil {
		return err
	}
	if err := s.loadSecurityPolicies(); err != nil {
		return err
	}

	if errs := s.validate(); errs.HasErrors() {
		return &Error{Kind: KindInvalid, Err: errs}
	}

	s.logger.Debug("configuration loaded", "dir", s.dir, "models", len(s.models))
	return nil
}

// settingsDocument mirrors the sections of settings.yaml.
type settingsDocument struct {
	Sandbox  SandboxConfig          `mapstructure:"sandbox" yaml:"sandbox"`
	Database DatabaseConfig         `mapstructure:"database" yaml:"database"`
	Memory   MemoryConfig           `mapstructure:"memory" yaml:"memory"`
	Logging  LoggingConfig          `mapstructure:"logging" yaml:"logging"`
	Security SecurityConfig         `mapstructure:"security" yaml:"security"`
	UI       UIConfig               `mapstructure:"ui" yaml:"ui"`
	Custom   map[string]interface{} `mapstructure:"custom" yaml:"custom"`
}

func (s *Store) loadSettings() error {
	path := filepath.Join(s.dir, settingsDoc)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.writeSettings(); err != nil {
			return err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return parseErr(settingsDoc, err)
	}

	doc := settingsDocument{
		Sandbox:  s.sandbox,
		Database: s.database,
		Memory:   s.memory,
		Logging:  s.logging,
		Security: s.security,
		UI:       s.ui,
	}
	strict := func(dc *mapstructure.DecoderConfig) { dc.ErrorUnused = true }
	if err := v.Unmarshal(&doc, strict); err != nil {
		return parseErr(settingsDoc, err)
	}

	s.sandbox = doc.Sandbox
	s.database = doc.Database
	s.memory = doc.Memory
	s.logging = doc.Logging
	s.security = doc.Security
	s.ui = doc.UI
	for key, raw := range doc.Custom {
		s.custom[key] = FromAny(raw)
	}
	return nil
}

func (s *Store) loadModels() error {
	path := filepath.Join(s.dir, modelsDoc)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.models = make(map[string]ModelConfig)
		s.order = nil
		for _, mc := range defaultModels() {
			s.models[mc.Name] = mc
			s.order = append(s.order, mc.Name)
		}
		return s.writeModels()
	}

	data, err := fsutil.ReadFileScoped(path)
	if err != nil {
		return ioErr(modelsDoc, err)
	}

	var root struct {
		Models yaml.Node `yaml:"models"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil {
		return parseErr(modelsDoc, err)
	}

	s.models = make(map[string]ModelConfig)
	s.order = nil
	if root.Models.IsZero() {
		return nil
	}
	if root.Models.Kind != yaml.MappingNode {
		return parseErr(modelsDoc, fmt.Errorf("models must be a mapping"))
	}

	for i := 0; i+1 < len(root.Models.Content); i += 2 {
		name := root.Models.Content[i].Value
		entry := root.Models.Content[i+1]
		if entry.Kind != yaml.MappingNode {
			return parseErr(modelsDoc, fmt.Errorf("model %q must be a mapping", name))
		}
		for j := 0; j+1 < len(entry.Content); j += 2 {
			key := entry.Content[j].Value
			if _, known := modelFields[key]; !known {
				return parseErr(modelsDoc, fmt.Errorf("model %q: unknown field %q", name, key))
			}
		}
		mc := defaultModelEntry(name)
		if err := entry.Decode(&mc); err != nil {
			return parseErr(modelsDoc, fmt.Errorf("model %q: %w", name, err))
		}
		mc.Name = name
		if _, dup := s.models[name]; dup {
			return parseErr(modelsDoc, fmt.Errorf("duplicate model %q", name))
		}
		s.models[name] = mc
		s.order = append(s.order, name)
	}
	return nil
}

func (s *Store) loadTools() error {
	path := filepath.Join(s.dir, toolsDoc)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeDocument(path, []byte(defaultToolsYAML)); err != nil {
			return ioErr(toolsDoc, err)
		}
	}
	data, err := fsutil.ReadFileScoped(path)
	if err != nil {
		return ioErr(toolsDoc, err)
	}

	var sections map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return parseErr(toolsDoc, err)
	}
	for tool, settings := range sections {
		s.custom[tool] = FromAny(map[string]interface{}(settings))
	}
	return nil
}

// securityPolicyDocument mirrors security_policies.yaml. Policy keys must
// name existing SecurityConfig fields; unknown keys fail the load.
type securityPolicyDocument struct {
	Policies        map[string]interface{} `yaml:"policies"`
	SandboxPolicies struct {
		AllowedCommands []string `yaml:"allowed_commands"`
		BlockedCommands []string `yaml:"blocked_commands"`
	} `yaml:"sandbox_policies"`
}

func (s *Store) loadSecurityPolicies() error {
	path := filepath.Join(s.dir, securityDoc)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeDocument(path, []byte(defaultSecurityYAML)); err != nil {
			return ioErr(securityDoc, err)
		}
	}
	data, err := fsutil.ReadFileScoped(path)
	if err != nil {
		return ioErr(securityDoc, err)
	}

	var doc securityPolicyDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return parseErr(securityDoc, err)
	}

	for key, raw := range doc.Policies {
		set, known := securityFields[key]
		if !known {
			return parseErr(securityDoc, fmt.Errorf("policies: unknown security field %q", key))
		}
		if err := set(&s.security, raw); err != nil {
			return parseErr(securityDoc, fmt.Errorf("policies.%s: %w", key, err))
		}
	}
	if doc.SandboxPolicies.AllowedCommands != nil {
		s.sandbox.AllowedCommands = doc.SandboxPolicies.AllowedCommands
	}
	if doc.SandboxPolicies.BlockedCommands != nil {
		s.sandbox.BlockedCommands = doc.SandboxPolicies.BlockedCommands
	}
	return nil
}

// Save serializes the in-memory state back to settings.yaml and models.yaml.
// It is safe to call on a store that was never loaded.
func (s *Store) Save() error {
	if err := fsutil.EnsureDir(s.dir); err != nil {
		return ioErr("", fmt.Errorf("creating config directory %s: %w", s.dir, err))
	}
	if err := s.writeSettings(); err != nil {
		return err
	}
	return s.writeModels()
}

func (s *Store) writeSettings() error {
	custom := make(map[string]interface{}, len(s.custom))
	for key, val := range s.custom {
		custom[key] = val.Any()
	}
	doc := settingsDocument{
		Sandbox:  s.sandbox,
		Database: s.database,
		Memory:   s.memory,
		Logging:  s.logging,
		Security: s.security,
		UI:       s.ui,
		Custom:   custom,
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return &Error{Kind: KindIO, Doc: settingsDoc, Err: err}
	}
	if err := writeDocument(filepath.Join(s.dir, settingsDoc), data); err != nil {
		return ioErr(settingsDoc, err)
	}
	return nil
}

func (s *Store) writeModels() error {
	inner := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range s.order {
		mc := s.models[name]
		var entry yaml.Node
		if err := entry.Encode(mc); err != nil {
			return &Error{Kind: KindIO, Doc: modelsDoc, Err: err}
		}
		inner.Content = append(inner.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			&entry,
		)
	}
	root := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "models"},
			inner,
		},
	}
	data, err := yaml.Marshal(root)
	if err != nil {
		return &Error{Kind: KindIO, Doc: modelsDoc, Err: err}
	}
	if err := writeDocument(filepath.Join(s.dir, modelsDoc), data); err != nil {
		return ioErr(modelsDoc, err)
	}
	return nil
}

// Reset rewrites the required documents with compiled-in defaults and
// resets the in-memory state to match.
func (s *Store) Reset() error {
	s.applyDefaults()
	for _, mc := range defaultModels() {
		s.models[mc.Name] = mc
		s.order = append(s.order, mc.Name)
	}
	return s.Save()
}

// Model returns the named model configuration.
func (s *Store) Model(name string) (ModelConfig, bool) {
	mc, ok := s.models[name]
	return mc, ok
}

// ModelNames returns registry names in stored order.
func (s *Store) ModelNames() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// EnabledModels returns only models with enabled == true.
func (s *Store) EnabledModels() map[string]ModelConfig {
	out := make(map[string]ModelConfig)
	for name, mc := range s.models {
		if mc.Enabled {
			out[name] = mc
		}
	}
	return out
}

// BestModelForTask resolves a task type to a model using the preference
// table, falling back to the first enabled model in registry order. The
// result is deterministic for a given stored state.
func (s *Store) BestModelForTask(taskType string) (ModelConfig, bool) {
	preferred, ok := taskPreferences[taskType]
	if !ok {
		preferred = s.order
	}
	for _, name := range preferred {
		if mc, exists := s.models[name]; exists && mc.Enabled {
			return mc, true
		}
	}
	for _, name := range s.order {
		if mc := s.models[name]; mc.Enabled {
			return mc, true
		}
	}
	return ModelConfig{}, false
}

// UpdateModel applies field updates to a registered model. Updates are
// staged and committed only if every key names a known field.
func (s *Store) UpdateModel(name string, updates map[string]interface{}) error {
	mc, ok := s.models[name]
	if !ok {
		return &Error{Kind: KindNotFound, Message: fmt.Sprintf("model %q", name)}
	}
	for key, raw := range updates {
		set, known := modelFields[key]
		if !known {
			return &Error{Kind: KindInvalidField, Message: fmt.Sprintf("model field %q", key)}
		}
		if err := set(&mc, raw); err != nil {
			return &Error{Kind: KindInvalidField, Message: fmt.Sprintf("model field %q", key), Err: err}
		}
	}
	s.models[name] = mc
	return nil
}

// AddModel registers a model, appending it to the stored order.
func (s *Store) AddModel(mc ModelConfig) error {
	if mc.Name == "" {
		return &Error{Kind: KindInvalidField, Message: "model name must not be empty"}
	}
	if _, exists := s.models[mc.Name]; exists {
		return &Error{Kind: KindInvalidField, Message: fmt.Sprintf("model %q already exists", mc.Name)}
	}
	s.models[mc.Name] = mc
	s.order = append(s.order, mc.Name)
	return nil
}

// Sandbox returns the sandbox section.
func (s *Store) Sandbox() SandboxConfig { return s.sandbox }

// Database returns the database section.
func (s *Store) Database() DatabaseConfig { return s.database }

// Memory returns the memory section.
func (s *Store) Memory() MemoryConfig { return s.memory }

// Logging returns the logging section.
func (s *Store) Logging() LoggingConfig { return s.logging }

// Security returns the security section.
func (s *Store) Security() SecurityConfig { return s.security }

// UI returns the UI section.
func (s *Store) UI() UIConfig { return s.ui }

// Setting returns an extension setting, or def when absent.
func (s *Store) Setting(key string, def Value) Value {
	if v, ok := s.custom[key]; ok {
		return v
	}
	return def
}

// SetSetting stores an extension setting, last write wins.
func (s *Store) SetSetting(key string, v Value) {
	s.custom[key] = v
}

// Export returns the complete configuration as a plain map.
func (s *Store) Export() map[string]interface{} {
	models := make(map[string]interface{}, len(s.models))
	for name, mc := range s.models {
		models[name] = mc
	}
	custom := make(map[string]interface{}, len(s.custom))
	for key, val := range s.custom {
		custom[key] = val.Any()
	}
	return map[string]interface{}{
		"models":   models,
		"sandbox":  s.sandbox,
		"database": s.database,
		"memory":   s.memory,
		"logging":  s.logging,
		"security": s.security,
		"ui":       s.ui,
		"custom":   custom,
	}
}
