package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// envPattern находит подстановки вида ${VAR} и ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults расширяет переменные окружения с поддержкой дефолтных значений
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		matches := envPattern.FindStringSubmatch(match)
		if len(matches) < 2 {
			return match
		}

		if value := os.Getenv(matches[1]); value != "" {
			return value
		}
		if len(matches) > 2 {
			return matches[2]
		}
		return ""
	})
}

// InitConfig читает конфигурационный файл и возвращает экземпляр конфигурации.
// Использует generic для работы с произвольным типом конфигурации.
func InitConfig[C any](configFile string) (*C, error) {
	v := viper.New()
	ext := strings.TrimLeft(filepath.Ext(configFile), ".")

	v.SetConfigFile(configFile)
	v.SetConfigType(ext)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig: %w", err)
	}

	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if value == "" {
			continue
		}
		expanded := expandEnvWithDefaults(value)

		// После подстановки тип значения определяется заново
		if b, err := strconv.ParseBool(expanded); err == nil && (expanded == "true" || expanded == "false") {
			v.Set(k, b)
		} else if i, err := strconv.Atoi(expanded); err == nil {
			v.Set(k, i)
		} else {
			v.Set(k, expanded)
		}
	}

	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return cfg, nil
}

// Load читает конфигурацию сервера. Если файл отсутствует, используются значения по умолчанию.
func Load(configFile string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(configFile); err == nil {
		cfg, err = InitConfig[Config](configFile)
		if err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("os.Stat: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// LoadClient читает конфигурацию клиента по тем же правилам, что и Load
func LoadClient(configFile string) (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if _, err := os.Stat(configFile); err == nil {
		cfg, err = InitConfig[ClientConfig](configFile)
		if err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("os.Stat: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}
