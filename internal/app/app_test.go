package app

import (
	"sync"
	"testing"

	"french_assessment_backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestApplyConfig_CallbacksAndSwap(t *testing.T) {
	a := &App{Config: &config.Config{Server: config.ServerConfig{Port: "8080"}}}

	var seen []string
	a.RegisterConfigCallback(func(cfg *config.Config) {
		seen = append(seen, cfg.Server.Port)
	})

	a.applyConfig(&config.Config{Server: config.ServerConfig{Port: "9090"}})

	assert.Equal(t, []string{"9090"}, seen)
	assert.Equal(t, "9090", a.CurrentConfig().Server.Port)
}

func TestApplyConfig_ConcurrentReaders(t *testing.T) {
	a := &App{Config: &config.Config{}}
	a.RegisterConfigCallback(func(*config.Config) {})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			a.applyConfig(&config.Config{Server: config.ServerConfig{Mode: "release"}})
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, a.CurrentConfig())
		}()
	}
	wg.Wait()

	assert.Equal(t, "release", a.CurrentConfig().Server.Mode)
}
