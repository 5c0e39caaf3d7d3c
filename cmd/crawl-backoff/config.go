package main

import (
	"fmt"
	"os"

	requestrules "github.com/always-cache/crawl-backoff/pkg/request-rules"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port         int                `yaml:"port"`
	Origin       string             `yaml:"origin"`
	Host         string             `yaml:"host"`
	Health       string             `yaml:"health"`
	ExplicitOnly bool               `yaml:"explicitOnly"`
	Rules        requestrules.Rules `yaml:"rules"`
}

func getConfig(filename string) (Config, error) {
	var config Config
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(configBytes, &config); err != nil {
		return config, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return config, nil
}
