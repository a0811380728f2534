package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGameConfigApplyDefaults(t *testing.T) {
	var g GameConfig
	g.ApplyDefaults()

	assert.Equal(t, 5, g.MaxHearts)
	assert.Equal(t, 30, g.MinutesPerHeart)
	assert.Equal(t, 20, g.HeartPrice)
	assert.Equal(t, 60, g.HeartRegenIntervalSecond)
	assert.Equal(t, 300, g.RankingIntervalSecond)
}

func TestGameConfigKeepsExplicitValues(t *testing.T) {
	g := GameConfig{MaxHearts: 10, MinutesPerHeart: 15}
	g.ApplyDefaults()

	assert.Equal(t, 10, g.MaxHearts)
	assert.Equal(t, 15, g.MinutesPerHeart)
	assert.Equal(t, 20, g.HeartPrice)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "9090"
  mode: "debug"
jwt:
  secret: "short"
  expire_hours: 24
game:
  max_hearts: 3
`
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644)
	assert.NoError(t, err)

	cfg, err := LoadConfig(dir)
	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 3, cfg.Game.MaxHearts)
	// 未配置的游戏参数回落到默认值
	assert.Equal(t, 30, cfg.Game.MinutesPerHeart)
}

func TestLoadConfigRejectsWeakSecretInRelease(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "8080"
  mode: "release"
jwt:
  secret: "short"
  expire_hours: 24
`
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644)
	assert.NoError(t, err)

	_, err = LoadConfig(dir)
	assert.Error(t, err)
}
