package config

import (
	"gopkg.in/yaml.v3"
	"os"
)

const DefaultConfigurationFile = "boxkeeper.yaml"

type Configuration struct {
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

type StorageConfig struct {
	// sqlite or postgres
	Driver       string `yaml:"driver"`
	Path         string `yaml:"path"`
	SnapshotPath string `yaml:"snapshotPath"`
}

type ServerConfig struct {
	Port          int           `yaml:"port"`
	Concurrency   int           `yaml:"concurrency"`
	RequestConfig RequestConfig `yaml:"requestConfig"`
	LogConfig     LogConfig     `yaml:"logConfig"`
	AuditConfig   AuditConfig   `yaml:"auditConfig"`
}

type RequestConfig struct {
	// megabytes
	SizeLimit int `yaml:"sizeLimit"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Output  string `yaml:"output"`
	LogPath string `yaml:"logPath"`
}

type AuditConfig struct {
	Schedule string `yaml:"schedule"`
}

// Path returns the configuration file to load, BOXKEEPER_CONFIG taking precedence.
func Path() string {
	if p := os.Getenv("BOXKEEPER_CONFIG"); p != "" {
		return p
	}
	return DefaultConfigurationFile
}

func LoadConfiguration(configurationFilePath string) (*Configuration, error) {
	data, err := os.ReadFile(configurationFilePath)
	if err != nil {
		return nil, err
	}
	var config Configuration
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Configuration) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "boxes.db"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.Concurrency == 0 {
		c.Server.Concurrency = 256
	}
	if c.Server.RequestConfig.SizeLimit == 0 {
		c.Server.RequestConfig.SizeLimit = 1
	}
	if c.Server.LogConfig.Level == "" {
		c.Server.LogConfig.Level = "info"
	}
	if c.Server.LogConfig.Format == "" {
		c.Server.LogConfig.Format = "text"
	}
	if c.Server.LogConfig.Output == "" {
		c.Server.LogConfig.Output = "stdout"
	}
	if c.Server.AuditConfig.Schedule == "" {
		c.Server.AuditConfig.Schedule = "@every 5m"
	}
}
