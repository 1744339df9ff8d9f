package lint

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Severity mirrors gnoverse-tlin's three-valued rule severity (error,
// warning, off) but as a small string type rather than an int enum, since
// it round-trips through YAML without a custom (Un)MarshalYAML.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityOff     Severity = "off"
)

// ConfigRule is one entry in Config.Rules: a rule name mapped to the
// severity it should run at.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}

// Config is the on-disk `.review.yaml` shape: a project name plus the set
// of rules to run and at what severity, mirroring gnoverse-tlin's own
// lint.Config.
type Config struct {
	Name  string                `yaml:"name"`
	Rules map[string]ConfigRule `yaml:"rules"`
}

// LoadConfig reads and decodes a configuration file from path.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultConfig enables every rule in catalog at error severity; it is
// what `elmreview init` writes out and what a caller gets when no
// configuration file is given.
func DefaultConfig(name string, ruleNames []string) Config {
	rules := make(map[string]ConfigRule, len(ruleNames))
	for _, n := range ruleNames {
		rules[n] = ConfigRule{Severity: SeverityError}
	}
	return Config{Name: name, Rules: rules}
}
