package config

// ModelConfig describes one model provider endpoint.
type ModelConfig struct {
	Name         string   `mapstructure:"name" yaml:"-"`
	BaseURL      string   `mapstructure:"base_url" yaml:"base_url"`
	APIKey       string   `mapstructure:"api_key" yaml:"api_key"`
	Model        string   `mapstructure:"model" yaml:"model"`
	Details      string   `mapstructure:"details" yaml:"details"`
	MaxTokens    int      `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature  float64  `mapstructure:"temperature" yaml:"temperature"`
	Timeout      int      `mapstructure:"timeout" yaml:"timeout"`
	Retries      int      `mapstructure:"retries" yaml:"retries"`
	Enabled      bool     `mapstructure:"enabled" yaml:"enabled"`
	CostPerToken float64  `mapstructure:"cost_per_token" yaml:"cost_per_token"`
	Capabilities []string `mapstructure:"capabilities" yaml:"capabilities"`
}

// SandboxConfig configures the isolated execution workspace.
type SandboxConfig struct {
	WorkspaceDir     string         `mapstructure:"workspace_dir" yaml:"workspace_dir"`
	MaxWorkspaces    int            `mapstructure:"max_workspaces" yaml:"max_workspaces"`
	MaxFileSizeMB    int            `mapstructure:"max_file_size_mb" yaml:"max_file_size_mb"`
	MaxExecutionTime int            `mapstructure:"max_execution_time" yaml:"max_execution_time"`
	AllowedCommands  []string       `mapstructure:"allowed_commands" yaml:"allowed_commands"`
	BlockedCommands  []string       `mapstructure:"blocked_commands" yaml:"blocked_commands"`
	ResourceLimits   map[string]int `mapstructure:"resource_limits" yaml:"resource_limits"`
}

// DatabaseConfig configures local persistence.
type DatabaseConfig struct {
	Path                string `mapstructure:"path" yaml:"path"`
	BackupEnabled       bool   `mapstructure:"backup_enabled" yaml:"backup_enabled"`
	BackupIntervalHours int    `mapstructure:"backup_interval_hours" yaml:"backup_interval_hours"`
	MaxBackups          int    `mapstructure:"max_backups" yaml:"max_backups"`
	ConnectionPoolSize  int    `mapstructure:"connection_pool_size" yaml:"connection_pool_size"`
}

// MemoryConfig configures the semantic memory collaborator.
type MemoryConfig struct {
	IndexPath           string  `mapstructure:"index_path" yaml:"index_path"`
	EmbeddingModel      string  `mapstructure:"embedding_model" yaml:"embedding_model"`
	MaxMemoryItems      int     `mapstructure:"max_memory_items" yaml:"max_memory_items"`
	SummaryThreshold    int     `mapstructure:"summary_threshold" yaml:"summary_threshold"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
	CollectionName      string  `mapstructure:"collection_name" yaml:"collection_name"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level         string `mapstructure:"level" yaml:"level"`
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir"`
	MaxFileSizeMB int    `mapstructure:"max_file_size_mb" yaml:"max_file_size_mb"`
	BackupCount   int    `mapstructure:"backup_count" yaml:"backup_count"`
	Format        string `mapstructure:"format" yaml:"format"`
	EnableConsole bool   `mapstructure:"enable_console" yaml:"enable_console"`
	EnableFile    bool   `mapstructure:"enable_file" yaml:"enable_file"`
}

// SecurityConfig holds security toggles.
type SecurityConfig struct {
	APIKeyEncryption       bool `mapstructure:"api_key_encryption" yaml:"api_key_encryption"`
	SandboxIsolation       bool `mapstructure:"sandbox_isolation" yaml:"sandbox_isolation"`
	CommandValidation      bool `mapstructure:"command_validation" yaml:"command_validation"`
	FileAccessRestrictions bool `mapstructure:"file_access_restrictions" yaml:"file_access_restrictions"`
	NetworkRestrictions    bool `mapstructure:"network_restrictions" yaml:"network_restrictions"`
	MaxRequestSizeMB       int  `mapstructure:"max_request_size_mb" yaml:"max_request_size_mb"`
}

// UIConfig holds interaction settings.
type UIConfig struct {
	InteractiveMode        bool `mapstructure:"interactive_mode" yaml:"interactive_mode"`
	ProgressBars           bool `mapstructure:"progress_bars" yaml:"progress_bars"`
	ColoredOutput          bool `mapstructure:"colored_output" yaml:"colored_output"`
	ConfirmDangerousAction bool `mapstructure:"confirm_dangerous_actions" yaml:"confirm_dangerous_actions"`
	AutoSaveSessions       bool `mapstructure:"auto_save_sessions" yaml:"auto_save_sessions"`
	SessionTimeoutMinutes  int  `mapstructure:"session_timeout_minutes" yaml:"session_timeout_minutes"`
}

// DefaultSandboxConfig returns compiled-in sandbox defaults.
func DefaultSandboxConfig() SandboxConfig {
	return SandboxConfig{
		WorkspaceDir:     "./sandbox_workspaces",
		MaxWorkspaces:    10,
		MaxFileSizeMB:    100,
		MaxExecutionTime: 300,
		AllowedCommands:  []string{"python", "pip", "node", "npm", "git", "curl", "wget"},
		BlockedCommands:  []string{"rm", "del", "format", "shutdown", "reboot", "net", "reg"},
		ResourceLimits: map[string]int{
			"memory_mb":   2048,
			"cpu_percent": 80,
			"disk_mb":     1024,
		},
	}
}

// DefaultDatabaseConfig returns compiled-in database defaults.
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Path:                "./data/database.sqlite",
		BackupEnabled:       true,
		BackupIntervalHours: 24,
		MaxBackups:          7,
		ConnectionPoolSize:  5,
	}
}

// DefaultMemoryConfig returns compiled-in memory defaults.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		IndexPath:           "./data/embeddings",
		EmbeddingModel:      "all-MiniLM-L6-v2",
		MaxMemoryItems:      1000,
		SummaryThreshold:    10,
		SimilarityThreshold: 0.7,
		CollectionName:      "aide_memory",
	}
}

// DefaultLoggingConfig returns compiled-in logging defaults.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:         "info",
		LogDir:        "./data/logs",
		MaxFileSizeMB: 10,
		BackupCount:   5,
		Format:        "auto",
		EnableConsole: true,
		EnableFile:    true,
	}
}

// DefaultSecurityConfig returns compiled-in security defaults.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		APIKeyEncryption:       true,
		SandboxIsolation:       true,
		CommandValidation:      true,
		FileAccessRestrictions: true,
		NetworkRestrictions:    true,
		MaxRequestSizeMB:       50,
	}
}

// DefaultUIConfig returns compiled-in UI defaults.
func DefaultUIConfig() UIConfig {
	return UIConfig{
		InteractiveMode:        true,
		ProgressBars:           true,
		ColoredOutput:          true,
		ConfirmDangerousAction: true,
		AutoSaveSessions:       true,
		SessionTimeoutMinutes:  60,
	}
}
