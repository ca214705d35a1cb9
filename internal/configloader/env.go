package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/dapic/pkg/config"
)

// EnvPrefix starts the name of every environment variable dapic reads.
const EnvPrefix = "DAPIC_"

// envVar binds one DAPIC_* variable to a configuration field.
type envVar struct {
	suffix string
	field  string
	help   string
	set    func(cfg *config.Config, value string) error
}

func (v envVar) name() string { return EnvPrefix + v.suffix }

// envVars is sorted by suffix so the first bad variable reported is stable.
//
//nolint:gochecknoglobals // read-only table
var envVars = []envVar{
	{"CODE_FORMAT", "code_format", "code display: id, name or combined", func(cfg *config.Config, v string) error {
		cfg.CodeFormat = config.CodeFormat(v)
		return nil
	}},
	{"DOC_FLAVOR", "doc_flavor", "doc comment flavor: commonmark or gfm", func(cfg *config.Config, v string) error {
		cfg.DocFlavor = v
		return nil
	}},
	{"EXTENSIONS", "extensions", "comma-separated source file extensions", func(cfg *config.Config, v string) error {
		cfg.Extensions = splitList(v)
		return nil
	}},
	{"FORMAT", "format", "output format: text, json, sarif or summary", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	{"IGNORE", "ignore", "comma-separated ignore globs", func(cfg *config.Config, v string) error {
		cfg.Ignore = splitList(v)
		return nil
	}},
	{"JOBS", "jobs", "files checked in parallel (0 = auto)", func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer for %sJOBS: %q", EnvPrefix, v)
		}
		cfg.Jobs = n
		return nil
	}},
	{"LOG_LEVEL", "log_level", "log level: debug, info, warn or error", func(cfg *config.Config, v string) error {
		cfg.LogLevel = v
		return nil
	}},
	{"STRICT", "strict", "fail on warnings: true or false", func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sSTRICT: %q (expected true/false/1/0)", EnvPrefix, v)
		}
		cfg.Strict = b
		return nil
	}},
}

// LoadFromEnv overrides cfg with every DAPIC_* variable that is set and
// non-empty.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		value := os.Getenv(v.name())
		if value == "" {
			continue
		}
		if err := v.set(cfg, value); err != nil {
			return err
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank elements.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetEnvVarName returns the variable that sets a configuration key, or "".
func GetEnvVarName(field string) string {
	for _, v := range envVars {
		if v.field == field {
			return v.name()
		}
	}
	return ""
}

// ListEnvVars maps each supported variable to its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, v := range envVars {
		out[v.name()] = v.help
	}
	return out
}
