package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/WangWilly/xBrowse/pkgs/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.yaml")

	conf := Default(dir)
	conf.Mongo.Port = 27018
	conf.MetricsAddr = ":9100"
	require.NoError(t, WriteConfig(path, conf))

	got, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, conf, got)
}

func TestPromptConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.yaml")

	conf, err := PromptConfig(strings.NewReader("\n\n\n\n"), &bytes.Buffer{}, dir, path)
	require.NoError(t, err)
	assert.Equal(t, Default(dir), conf)

	saved, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, conf, saved)
}

func TestPromptConfig_Postgres(t *testing.T) {
	dir := t.TempDir()
	input := strings.Join([]string{
		"mongo.local", "27019", "postgres",
		"pg.local", "5432", "user", "secret", "xbrowse",
		":9100",
	}, "\n")

	out := &bytes.Buffer{}
	conf, err := PromptConfig(strings.NewReader(input), out, dir, filepath.Join(dir, "conf.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "mongo.local", conf.Mongo.Host)
	assert.Equal(t, 27019, conf.Mongo.Port)
	assert.Equal(t, database.DatabaseConfig{
		Type:     database.DATABASE_TYPE_POSTGRES,
		Host:     "pg.local",
		Port:     "5432",
		User:     "user",
		Password: "secret",
		DBName:   "xbrowse",
	}, conf.History)
	assert.Equal(t, ":9100", conf.MetricsAddr)
	assert.Contains(t, out.String(), "enter mongodb port: ")
}

func TestPromptConfig_InvalidPort(t *testing.T) {
	dir := t.TempDir()
	_, err := PromptConfig(strings.NewReader("\nabc\n"), &bytes.Buffer{}, dir, filepath.Join(dir, "conf.yaml"))
	assert.Error(t, err)
}
