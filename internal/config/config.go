package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

// DefaultFile is picked up from the working directory when --config is not
// given.
const DefaultFile = "oacollect.yaml"

type Config struct {
	Spec           string    `koanf:"spec"`
	Output         string    `koanf:"output"`
	Format         string    `koanf:"format"`
	Name           string    `koanf:"name"`
	GroupBy        string    `koanf:"group-by"`
	ValidateOutput bool      `koanf:"validate"`
	Strict         bool      `koanf:"strict"`
	DryRun         bool      `koanf:"dry-run"`
	Log            LogConfig `koanf:"log"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaults() map[string]any {
	return map[string]any{
		"format":     "json",
		"group-by":   "path",
		"validate":   true,
		"log.level":  "info",
		"log.format": "text",
	}
}

// BindGlobalFlags binds flags shared by every command.
func BindGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: "+DefaultFile+")")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.String("log-format", "", "Log format: text, json")
}

// BindImportFlags binds the flags of the import command.
func BindImportFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringP("output", "o", "", "Output file (default: stdout)")
	flags.StringP("format", "f", "", "Output format: json, yaml")
	flags.String("name", "", "Collection name (default: info.title)")
	flags.String("group-by", "", "Folder layout: path, tags")
	flags.Bool("no-validate", false, "Skip validation of the generated collection")
	flags.Bool("strict", false, "Fail when the OpenAPI document does not validate")
	flags.Bool("dry-run", false, "Print the collection instead of writing it")
}

// Load merges defaults, the config file and command-line flags, in that
// order of precedence. args holds the command's positional arguments; the
// first one is the spec path.
func Load(cmd *cobra.Command, args []string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		configFile, _ = cmd.PersistentFlags().GetString("config")
	}
	if configFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			configFile = DefaultFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(args) > 0 {
		flagsMap["spec"] = args[0]
	}
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	getString := func(name string) string {
		if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
			return v
		}
		if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
			return v
		}
		return ""
	}

	flagChanged := func(name string) bool {
		return cmd.Flags().Changed(name) || cmd.PersistentFlags().Changed(name)
	}

	getBool := func(name string) (bool, bool) {
		if !flagChanged(name) {
			return false, false
		}
		if v, err := cmd.Flags().GetBool(name); err == nil {
			return v, true
		}
		v, err := cmd.PersistentFlags().GetBool(name)
		return v, err == nil
	}

	for flag, key := range map[string]string{
		"output":     "output",
		"format":     "format",
		"name":       "name",
		"group-by":   "group-by",
		"log-level":  "log.level",
		"log-format": "log.format",
	} {
		if v := getString(flag); v != "" {
			m[key] = v
		}
	}

	if v, ok := getBool("no-validate"); ok {
		m["validate"] = !v
	}
	if v, ok := getBool("strict"); ok {
		m["strict"] = v
	}
	if v, ok := getBool("dry-run"); ok {
		m["dry-run"] = v
	}

	return m
}

func (c *Config) Validate() error {
	if c.Spec == "" {
		return fmt.Errorf("spec file is required")
	}

	validFormats := map[string]bool{"json": true, "yaml": true}
	if !validFormats[c.Format] {
		return fmt.Errorf("invalid format: %s (valid: json, yaml)", c.Format)
	}

	validGroupings := map[string]bool{"": true, "path": true, "tags": true}
	if !validGroupings[c.GroupBy] {
		return fmt.Errorf("invalid group-by: %s (valid: path, tags)", c.GroupBy)
	}

	validLevels := map[string]bool{
		"": true, "trace": true, "debug": true, "info": true,
		"warn": true, "warning": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (valid: trace, debug, info, warn, error)", c.Log.Level)
	}

	validLogFormats := map[string]bool{"": true, "text": true, "json": true}
	if !validLogFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", c.Log.Format)
	}

	return nil
}

// WritesToStdout reports whether the collection goes to standard output.
func (c *Config) WritesToStdout() bool {
	return c.DryRun || c.Output == "" || c.Output == "-"
}
