package config

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/WangWilly/xBrowse/pkgs/database"
	"github.com/WangWilly/xBrowse/pkgs/loader"
	"gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// Configuration Structures
////////////////////////////////////////////////////////////////////////////////

// LoaderConfig tunes the bulk loader
type LoaderConfig struct {
	BatchSize int `yaml:"batch_size"`
}

// Config represents the main application configuration
type Config struct {
	Mongo       database.MongoConfig    `yaml:"mongo"`
	History     database.DatabaseConfig `yaml:"history"`
	MetricsAddr string                  `yaml:"metrics_addr,omitempty"`
	Loader      LoaderConfig            `yaml:"loader"`
}

// Default returns the configuration used when nothing is configured.
// History is kept in a sqlite file under rootPath.
func Default(rootPath string) *Config {
	return &Config{
		Mongo: database.MongoConfig{
			Host:     database.DefaultMongoHost,
			Port:     database.DefaultMongoPort,
			Database: database.DefaultMongoDatabase,
		},
		History: database.DatabaseConfig{
			Type: database.DATABASE_TYPE_SQLITE,
			Path: filepath.Join(rootPath, "history.db"),
		},
		Loader: LoaderConfig{BatchSize: loader.DefaultBatchSize},
	}
}

////////////////////////////////////////////////////////////////////////////////
// Configuration Management Functions
////////////////////////////////////////////////////////////////////////////////

// ReadConfig reads configuration from the specified path
func ReadConfig(path string) (*Config, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var result Config
	err = yaml.Unmarshal(data, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// WriteConfig writes configuration to the specified path
func WriteConfig(path string, conf *Config) error {
	file, err := os.OpenFile(path, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0666)
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := yaml.Marshal(conf)
	if err != nil {
		return err
	}
	_, err = io.Copy(file, bytes.NewReader(data))
	return err
}

// PromptConfig interactively prompts user for configuration and saves it.
// Empty answers keep the defaults.
func PromptConfig(in io.Reader, out io.Writer, rootPath, saveto string) (*Config, error) {
	conf := Default(rootPath)
	scan := bufio.NewScanner(in)
	ask := func(prompt string) string {
		fmt.Fprint(out, prompt)
		scan.Scan()
		return strings.TrimSpace(scan.Text())
	}

	if host := ask("enter mongodb host: "); host != "" {
		conf.Mongo.Host = host
	}
	if port := ask("enter mongodb port: "); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", port, err)
		}
		conf.Mongo.Port = p
	}

	switch typ := ask("enter history db type (sqlite/postgres): "); typ {
	case "", database.DATABASE_TYPE_SQLITE:
	case database.DATABASE_TYPE_POSTGRES:
		conf.History = database.DatabaseConfig{
			Type:     database.DATABASE_TYPE_POSTGRES,
			Host:     ask("enter postgres host: "),
			Port:     ask("enter postgres port: "),
			User:     ask("enter postgres user: "),
			Password: ask("enter postgres password: "),
			DBName:   ask("enter postgres dbname: "),
		}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", typ)
	}

	conf.MetricsAddr = ask("enter metrics listen address (empty to disable): ")

	return conf, WriteConfig(saveto, conf)
}
