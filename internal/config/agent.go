package config

import (
	"fmt"
	"os"
	"strconv"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName    = "VERDANT_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL         = "VERDANT_AGENT_BASE_URL"
	EnvAgentToken           = "VERDANT_AGENT_TOKEN"
	EnvAgentDeployment      = "VERDANT_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion      = "VERDANT_AGENT_API_VERSION"
	EnvAgentAuthType        = "VERDANT_AGENT_AUTH_TYPE"
	EnvAgentModelName       = "VERDANT_AGENT_MODEL_NAME"
	EnvAgentTemperature     = "VERDANT_AGENT_TEMPERATURE"
	EnvAgentMaxOutputTokens = "VERDANT_AGENT_MAX_OUTPUT_TOKENS"
)

// Classification wants determinism, so the sampling defaults are tight:
// low temperature and a small completion budget.
const (
	defaultTemperature     = 0.1
	defaultMaxOutputTokens = 200
)

// FinalizeAgent applies the three-phase finalize pattern to a go-agents
// AgentConfig: defaults from go-agents DefaultAgentConfig, environment
// variable overrides, and validation.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	loadAgentDefaults(c)
	loadAgentEnv(c)
	return validateAgent(c)
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults

	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if _, ok := c.Provider.Options["temperature"]; !ok {
		c.Provider.Options["temperature"] = defaultTemperature
	}
	if _, ok := c.Provider.Options["max_output_tokens"]; !ok {
		c.Provider.Options["max_output_tokens"] = defaultMaxOutputTokens
	}
}

func loadAgentEnv(c *gaconfig.AgentConfig) {
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}
	if v := os.Getenv(EnvAgentProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		c.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}

	setOption(EnvAgentToken, "token")
	setOption(EnvAgentDeployment, "deployment")
	setOption(EnvAgentAPIVersion, "api_version")
	setOption(EnvAgentAuthType, "auth_type")

	if v := os.Getenv(EnvAgentTemperature); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			c.Provider.Options["temperature"] = t
		}
	}
	if v := os.Getenv(EnvAgentMaxOutputTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Provider.Options["max_output_tokens"] = n
		}
	}
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider == nil {
		return fmt.Errorf("provider required")
	}
	if c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model == nil {
		return fmt.Errorf("model required")
	}
	return nil
}
