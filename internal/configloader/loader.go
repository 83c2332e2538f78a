// Package configloader resolves the effective wsfmt configuration.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, validation, and .editorconfig migration.
package configloader

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/wsfmt/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// IgnoreEditorConfig skips .editorconfig detection and migration.
	IgnoreEditorConfig bool

	// NonInteractive disables interactive prompts (e.g., in CI).
	NonInteractive bool

	// ApplyFlags is applied to the configuration after every other source.
	// The CLI passes a closure that copies exactly the flags the user set,
	// which is how flag values win over files and environment variables
	// without clobbering them with flag defaults.
	ApplyFlags func(*config.Config)
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// MigrationPerformed is true if an .editorconfig was converted.
	MigrationPerformed bool
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.ApplyFlags)
//  2. Environment variables (WSFMT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.wsfmt.yaml upward search)
//  5. User config ($XDG_CONFIG_HOME/wsfmt/config.yaml)
//  6. System config (/etc/wsfmt/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{
		Paths: &ConfigPaths{},
	}

	// Resolve working directory
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	// Start with defaults
	cfg := config.NewConfig()

	// Discover config paths
	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result.Paths = paths

	// Handle explicit config path
	if opts.ExplicitPath != "" {
		result.Paths.Explicit = opts.ExplicitPath
	}

	// Check for .editorconfig migration
	if !opts.IgnoreEditorConfig {
		migrated, err := handleEditorConfigMigration(paths, result, opts)
		if err != nil {
			return nil, err
		}
		if migrated {
			// Re-discover paths after migration
			paths, err = DiscoverPaths(ctx, workDir)
			if err != nil {
				return nil, fmt.Errorf("discover paths after migration: %w", err)
			}
			result.Paths = paths
		}
	}

	// Load and merge in order (lowest to highest precedence). Each layer is
	// decoded into the accumulated configuration, so a layer overrides only
	// the fields its document names.

	// 1. System config
	if !opts.IgnoreSystemConfig && paths.System != "" {
		if err := applyConfigFile(cfg, paths.System); err != nil {
			return nil, fmt.Errorf("load system config: %w", err)
		}
		result.LoadedFrom = append(result.LoadedFrom, paths.System)
	}

	// 2. User config
	if !opts.IgnoreUserConfig && paths.User != "" {
		if err := applyConfigFile(cfg, paths.User); err != nil {
			return nil, fmt.Errorf("load user config: %w", err)
		}
		result.LoadedFrom = append(result.LoadedFrom, paths.User)
	}

	// 3. Project config
	if !opts.IgnoreProjectConfig && paths.Project != "" {
		if err := applyConfigFile(cfg, paths.Project); err != nil {
			return nil, fmt.Errorf("load project config: %w", err)
		}
		result.LoadedFrom = append(result.LoadedFrom, paths.Project)
	}

	// 4. Explicit config (--config flag)
	if opts.ExplicitPath != "" {
		if err := applyConfigFile(cfg, opts.ExplicitPath); err != nil {
			return nil, fmt.Errorf("load explicit config: %w", err)
		}
		result.LoadedFrom = append(result.LoadedFrom, opts.ExplicitPath)
	}

	// 5. Environment variables
	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	// 6. CLI flags (highest precedence)
	if opts.ApplyFlags != nil {
		opts.ApplyFlags(cfg)
	}

	// Validate final configuration
	validation := Validate(cfg)
	if !validation.Valid() {
		// Return first error
		return nil, &validation.Errors[0]
	}

	// Add validation warnings to result
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// applyConfigFile decodes the YAML file at path into cfg. Fields absent from
// the document keep whatever the lower-precedence layers left there.
func applyConfigFile(cfg *config.Config, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if err := cfg.MergeYAML(content); err != nil {
		return err
	}

	return nil
}

// handleEditorConfigMigration checks for an .editorconfig and offers migration.
func handleEditorConfigMigration(
	paths *ConfigPaths,
	result *LoadResult,
	opts LoadOptions,
) (bool, error) {
	// A wsfmt config wins outright. Unlike a predecessor tool's leftover
	// config, an .editorconfig next to .wsfmt.yaml is normal; it keeps
	// serving editors, so no warning either.
	if paths.Project != "" || paths.EditorConfig == "" {
		return false, nil
	}

	// Nothing to gain from a file with no whitespace-relevant settings.
	if !HasConvertibleSettings(paths.EditorConfig) {
		return false, nil
	}

	// In non-interactive mode, don't prompt
	if opts.NonInteractive || !isInteractive() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("found %s but no .wsfmt.yaml; run 'wsfmt migrate' to convert", paths.EditorConfig))
		return false, nil
	}

	// Prompt user for migration
	shouldMigrate, err := promptMigration(paths.EditorConfig)
	if err != nil {
		return false, err
	}

	if !shouldMigrate {
		return false, nil
	}

	// Perform migration
	migrationResult, err := ConvertEditorConfig(paths.EditorConfig)
	if err != nil {
		return false, fmt.Errorf("convert editorconfig: %w", err)
	}

	// Add migration warnings
	result.Warnings = append(result.Warnings, migrationResult.Warnings...)

	// Write the new config next to the source; that is the project root.
	outputPath := filepath.Join(filepath.Dir(paths.EditorConfig), ".wsfmt.yaml")
	if err := WriteConfig(migrationResult.Config, outputPath, GenerateMigrationHeader(paths.EditorConfig)); err != nil {
		return false, fmt.Errorf("write migrated config: %w", err)
	}

	result.MigrationPerformed = true
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("migrated %s to %s", paths.EditorConfig, outputPath))

	return true, nil
}

// promptMigration asks the user if they want to migrate. The default is no;
// an .editorconfig is not a wsfmt artifact, so converting it is opt-in.
func promptMigration(editorConfigPath string) (bool, error) {
	if _, err := os.Stdout.WriteString("Found " + editorConfigPath + " but no .wsfmt.yaml\n"); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}
	if _, err := os.Stdout.WriteString("Generate .wsfmt.yaml from it? [y/N] "); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// WriteConfig writes a configuration to a YAML file with a header comment.
func WriteConfig(cfg *config.Config, path, header string) error {
	content, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
