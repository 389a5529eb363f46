/*
Copyright 2025 AuditDesk Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"

	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_PORT = "4400"

	// Pipeline timeouts, seconds. Upload runs the full multi-stage agent
	// chain synchronously, so it needs a materially longer deadline.
	DEFAULT_PIPELINE_TIMEOUT = 15
	DEFAULT_UPLOAD_TIMEOUT   = 60

	DEFAULT_TOAST_TTL_MS = 3000
)

var ConfigStore atomic.Value

type ServerConfig struct {
	SSL       bool   `json:"ssl" envconfig:"AUDITDESK_SERVER_SSL"`
	Secure    bool   `json:"secure" envconfig:"AUDITDESK_SERVER_SECURE"`
	SecretKey string `json:"secret_key" envconfig:"AUDITDESK_SERVER_SECRET_KEY"`
	Domain    string `json:"domain" envconfig:"AUDITDESK_SERVER_SSL_DOMAIN"`
	Email     string `json:"ssl_email" envconfig:"AUDITDESK_SERVER_SSL_EMAIL"`
	Port      string `json:"port" envconfig:"AUDITDESK_SERVER_PORT"`
}

// PipelineConfig points at the external audit pipeline gateway. The base URL
// is always injected from here; no package holds a URL constant.
type PipelineConfig struct {
	URL              string `json:"url" envconfig:"AUDITDESK_PIPELINE_URL"`
	TimeoutSec       int    `json:"timeout_sec" envconfig:"AUDITDESK_PIPELINE_TIMEOUT_SEC"`
	UploadTimeoutSec int    `json:"upload_timeout_sec" envconfig:"AUDITDESK_PIPELINE_UPLOAD_TIMEOUT_SEC"`
}

// RedisConfig is optional. When the DNS is empty the snapshot warm cache is
// disabled and the dashboard starts cold.
type RedisConfig struct {
	Dns           string `json:"dns" envconfig:"AUDITDESK_REDIS_DNS"`
	SkipTLSVerify bool   `json:"skip_tls_verify" envconfig:"AUDITDESK_REDIS_SKIP_TLS_VERIFY"`
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url" envconfig:"AUDITDESK_SLACK_WEBHOOK_URL"`
}

type Notification struct {
	ToastTTLMs int          `json:"toast_ttl_ms" envconfig:"AUDITDESK_TOAST_TTL_MS"`
	Slack      SlackWebhook `json:"slack"`
}

type RateLimitConfig struct {
	RequestsPerSecond  *float64 `json:"requests_per_second" envconfig:"AUDITDESK_RATE_LIMIT_RPS"`
	Burst              *int     `json:"burst" envconfig:"AUDITDESK_RATE_LIMIT_BURST"`
	CleanupIntervalSec *int     `json:"cleanup_interval_sec" envconfig:"AUDITDESK_RATE_LIMIT_CLEANUP_INTERVAL_SEC"`
}

type Configuration struct {
	ProjectName  string          `json:"project_name" envconfig:"AUDITDESK_PROJECT_NAME"`
	Server       ServerConfig    `json:"server"`
	Pipeline     PipelineConfig  `json:"pipeline"`
	Redis        RedisConfig     `json:"redis"`
	Notification Notification    `json:"notification"`
	RateLimit    RateLimitConfig `json:"rate_limit"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}

	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("auditdesk", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called auditdesk.json with your config")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "AuditDesk"
	}

	if cnf.Pipeline.URL == "" {
		log.Println("Error: Pipeline URL is empty. It's a required field.")
		return errors.New("pipeline URL is required")
	}

	// Trim white spaces from fields
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Server.Port = strings.TrimSpace(cnf.Server.Port)
	cnf.Pipeline.URL = strings.TrimRight(strings.TrimSpace(cnf.Pipeline.URL), "/")
	cnf.Redis.Dns = strings.TrimSpace(cnf.Redis.Dns)

	// Set default value for Port if it's empty
	if cnf.Server.Port == "" {
		cnf.Server.Port = DEFAULT_PORT
		log.Printf("Warning: Port not specified in config. Setting default port: %s", DEFAULT_PORT)
	}

	if cnf.Pipeline.TimeoutSec <= 0 {
		cnf.Pipeline.TimeoutSec = DEFAULT_PIPELINE_TIMEOUT
	}
	if cnf.Pipeline.UploadTimeoutSec <= 0 {
		cnf.Pipeline.UploadTimeoutSec = DEFAULT_UPLOAD_TIMEOUT
	}

	if cnf.Notification.ToastTTLMs <= 0 {
		cnf.Notification.ToastTTLMs = DEFAULT_TOAST_TTL_MS
	}

	// Rate limiting is disabled by default (when both RPS and Burst are nil)
	if cnf.RateLimit.RequestsPerSecond != nil && cnf.RateLimit.Burst == nil {
		defaultBurst := 2 * int(*cnf.RateLimit.RequestsPerSecond)
		cnf.RateLimit.Burst = &defaultBurst
		log.Printf("Warning: Rate limit burst not specified. Setting default value: %d", defaultBurst)
	}
	if cnf.RateLimit.RequestsPerSecond == nil && cnf.RateLimit.Burst != nil {
		defaultRPS := float64(*cnf.RateLimit.Burst) / 2
		cnf.RateLimit.RequestsPerSecond = &defaultRPS
		log.Printf("Warning: Rate limit RPS not specified. Setting default value: %.2f", defaultRPS)
	}

	// Set default cleanup interval if not specified
	if cnf.RateLimit.CleanupIntervalSec == nil {
		defaultCleanup := 10800 // 3 hours in seconds
		cnf.RateLimit.CleanupIntervalSec = &defaultCleanup
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	if mockConfig.Pipeline.TimeoutSec <= 0 {
		mockConfig.Pipeline.TimeoutSec = DEFAULT_PIPELINE_TIMEOUT
	}
	if mockConfig.Pipeline.UploadTimeoutSec <= 0 {
		mockConfig.Pipeline.UploadTimeoutSec = DEFAULT_UPLOAD_TIMEOUT
	}
	if mockConfig.Notification.ToastTTLMs <= 0 {
		mockConfig.Notification.ToastTTLMs = DEFAULT_TOAST_TTL_MS
	}
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
