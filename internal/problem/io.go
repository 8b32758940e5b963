package problem

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads a problem file from path using viper, the way joescharf-pm's
// config layer reads its YAML config: a fresh viper instance keeps this
// independent of the CLI's own global viper config binding.
func Load(path string) (*ProblemFile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("problem: reading %s: %w", path, err)
	}

	var pf ProblemFile
	if err := v.Unmarshal(&pf); err != nil {
		return nil, fmt.Errorf("problem: decoding %s: %w", path, err)
	}
	return &pf, nil
}

// Save writes a RunReport to path as YAML.
func Save(path string, report RunReport) error {
	out, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("problem: encoding run report: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("problem: writing %s: %w", path, err)
	}
	return nil
}
