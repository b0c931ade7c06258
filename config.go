package main

import (
	"os"
	"strconv"
	"sync"
)

type Config struct {
	ServerURL      string `json:"server_url"`
	APIKey         string `json:"api_key"`
	BotName        string `json:"bot_name"`
	PollIntervalMs int    `json:"poll_interval_ms"`
	NodeBudget     int    `json:"node_budget"`
	PracticeAddr   string `json:"practice_addr"`
	PracticeM      int    `json:"practice_m"`
	PracticeN      int    `json:"practice_n"`
	PracticeK      int    `json:"practice_k"`
	LogBoards      bool   `json:"log_boards"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		BotName:        "HeuristicMinimax",
		PollIntervalMs: 1000,

		// projected-node ceiling for the depth controller
		NodeBudget: 800000,

		PracticeAddr: ":8080",
		PracticeM:    15,
		PracticeN:    15,
		PracticeK:    5,
		LogBoards:    true,
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

// applyEnv overlays MNK_* environment variables onto a config. Flags parsed
// in main take precedence over both.
func applyEnv(config Config) Config {
	if v := os.Getenv("MNK_SERVER_URL"); v != "" {
		config.ServerURL = v
	}
	if v := os.Getenv("MNK_API_KEY"); v != "" {
		config.APIKey = v
	}
	if v := os.Getenv("MNK_BOT_NAME"); v != "" {
		config.BotName = v
	}
	if v, ok := envInt("MNK_POLL_INTERVAL_MS"); ok {
		config.PollIntervalMs = v
	}
	if v, ok := envInt("MNK_NODE_BUDGET"); ok {
		config.NodeBudget = v
	}
	if v := os.Getenv("MNK_PRACTICE_ADDR"); v != "" {
		config.PracticeAddr = v
	}
	return config
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
