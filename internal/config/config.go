package config

import (
	"encoding/json"
	"log"
	"os"
)

/*
	{
	"server": {
		"addr": ":8080"
	},
	"redis": {
		"addr": "redis:6379",
		"db": 0
	},
	"session": {
		"ttl_minutes": 60,
		"signing_key": "change-me"
	}
	}
*/

type Config struct {
	Server struct {
		Addr string `json:"addr"`
	} `json:"server"`
	Redis struct {
		Addr string `json:"addr"`
		DB   int    `json:"db"`
	} `json:"redis"`
	Session struct {
		TTLMinutes int    `json:"ttl_minutes"`
		SigningKey string `json:"signing_key"`
	} `json:"session"`
}

// Global config instance
var Cfg Config

// LoadConfig reads the JSON file named by CONFIG_PATH into Cfg. When
// CONFIG_PATH is unset the defaults below apply and no file is read;
// an unreachable or malformed file is fatal.
func LoadConfig() {
	Cfg.Server.Addr = ":8080"
	Cfg.Session.TTLMinutes = 60
	Cfg.Session.SigningKey = "webcheckers-dev-key"

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Println("[config.go] - CONFIG_PATH not set, using defaults")
		return
	}

	file, err := os.Open(configPath)
	if err != nil {
		log.Fatalf("[config.go] - Error opening config file: %v", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&Cfg); err != nil {
		log.Fatalf("[config.go] - Error decoding JSON: %v", err)
	}
}
