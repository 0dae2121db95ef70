package util

import (
	"encoding/json"
	"fmt"
	"os"
)

type Secrets struct {
	ChatGPTApiKey string `json:"chatGptApiKey"`
	JwtSigningKey string `json:"jwtSigningKey"`
	Alpaca        struct {
		ApiKey    string `json:"apiKey"`
		ApiSecret string `json:"apiSecret"`
		Endpoint  string `json:"endpoint"`
	} `json:"alpaca"`
}

// LoadSecrets reads the secrets file named by MARKETMAP_SECRETS_PATH
// (default secrets.json), then lets env vars override individual values so
// deploys don't need the file at all.
func LoadSecrets() (*Secrets, error) {
	secrets := &Secrets{}

	path := os.Getenv("MARKETMAP_SECRETS_PATH")
	if path == "" {
		path = "secrets.json"
	}
	contents, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(contents, secrets); err != nil {
			return nil, fmt.Errorf("failed to parse secrets file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read secrets file %s: %w", path, err)
	}

	if v := os.Getenv("CHATGPT_API_KEY"); v != "" {
		secrets.ChatGPTApiKey = v
	}
	if v := os.Getenv("JWT_SIGNING_KEY"); v != "" {
		secrets.JwtSigningKey = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		secrets.Alpaca.ApiKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		secrets.Alpaca.ApiSecret = v
	}
	if v := os.Getenv("ALPACA_ENDPOINT"); v != "" {
		secrets.Alpaca.Endpoint = v
	}

	return secrets, nil
}
