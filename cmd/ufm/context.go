package main

import (
	"fmt"
	"sync"

	"ufm/internal/catalog"
	"ufm/internal/config"
	"ufm/internal/interchange"
)

// commandContext carries state shared by every subcommand, mainly the
// lazily-loaded configuration.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		requested := ""
		if c.configFlag != nil {
			requested = *c.configFlag
		}
		cfg, path, _, err := config.Load(requested)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) resolvedConfigPath() (string, error) {
	if _, err := c.ensureConfig(); err != nil {
		return "", err
	}
	return c.configPath, nil
}

// withStore opens the catalog database, runs fn, and closes the store
// afterwards. Commands that touch entities all go through here.
func (c *commandContext) withStore(fn func(cfg *config.Config, store *catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()
	return fn(cfg, store)
}

func managersFor(store *catalog.Store) interchange.Managers {
	return interchange.Managers{
		interchange.KindExercise:  store.Exercises(),
		interchange.KindTraining:  store.Trainings(),
		interchange.KindWarmup:    store.Warmups(),
		interchange.KindSituation: store.Situations(),
	}
}
