package config

import (
	"path/filepath"

	"github.com/aide-ai/aide/internal/fsutil"
)

// validate checks the merged configuration. Its only side effect is the
// creation of directories for path-bearing fields.
func (s *Store) validate() ValidationErrors {
	var errs ValidationErrors
	add := func(field string, value interface{}, msg string) {
		errs = append(errs, ValidationError{Field: field, Value: value, Message: msg})
	}

	if len(s.models) == 0 {
		add("models", nil, "model registry is empty")
	}
	for _, name := range s.order {
		mc := s.models[name]
		if !mc.Enabled {
			continue
		}
		if mc.APIKey == "" {
			add("models."+name+".api_key", "", "enabled model requires an API key")
		}
		if mc.BaseURL == "" {
			add("models."+name+".base_url", "", "enabled model requires a base URL")
		}
	}

	dirs := map[string]string{
		"sandbox.workspace_dir": s.sandbox.WorkspaceDir,
		"database.path":         filepath.Dir(s.database.Path),
		"memory.index_path":     s.memory.IndexPath,
		"logging.log_dir":       s.logging.LogDir,
	}
	for field, dir := range dirs {
		if dir == "" {
			add(field, dir, "path required")
			continue
		}
		if err := fsutil.EnsureDir(s.ResolvePath(dir)); err != nil {
			add(field, dir, "cannot create directory: "+err.Error())
		}
	}

	if s.sandbox.MaxFileSizeMB <= 0 {
		add("sandbox.max_file_size_mb", s.sandbox.MaxFileSizeMB, "must be positive")
	}
	if s.sandbox.MaxExecutionTime <= 0 {
		add("sandbox.max_execution_time", s.sandbox.MaxExecutionTime, "must be positive")
	}

	return errs
}
