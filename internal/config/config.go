package config

import (
	"os"

	"github.com/go-yaml/yaml"

	"github.com/nakamura196/iiif-manifest-tool-sub001/internal/domain"
)

type Config struct {
	Node   Node   `yaml:"node"`
	Server Server `yaml:"server"`
}

// Node is the publicly visible identity of this service.
type Node struct {
	BaseURL     string `yaml:"baseUrl"`
	TokenSecret string `yaml:"tokenSecret"`
	CookieName  string `yaml:"cookieName"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}
	if config.Node.CookieName == "" {
		config.Node.CookieName = "iiif_session"
	}

	return config, nil
}

// Domain maps the file layout onto the core configuration record.
func (c Config) Domain() domain.Config {
	return domain.Config{
		BaseURL:     c.Node.BaseURL,
		TokenSecret: c.Node.TokenSecret,
		CookieName:  c.Node.CookieName,
	}
}
