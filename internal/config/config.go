// Package config loads ibanserver settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vortex-fintech/go-iban/foundation/validator"
)

const (
	EnvHTTPAddr        = "IBAN_HTTP_ADDR"
	EnvMetricsAddr     = "IBAN_METRICS_ADDR"
	EnvEnvironment     = "IBAN_ENV"
	EnvShutdownTimeout = "IBAN_SHUTDOWN_TIMEOUT"
	EnvMaxBodyBytes    = "IBAN_MAX_BODY_BYTES"
)

type Config struct {
	HTTPAddr        string        `json:"http_addr" validate:"required"`
	MetricsAddr     string        `json:"metrics_addr" validate:"required,nefield=HTTPAddr"`
	Env             string        `json:"env" validate:"required,oneof=production development debug"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `json:"max_body_bytes" validate:"gt=0,lte=1048576"`
}

func Default() Config {
	return Config{
		HTTPAddr:        ":8080",
		MetricsAddr:     ":9090",
		Env:             "production",
		ShutdownTimeout: 10 * time.Second,
		MaxBodyBytes:    4096,
	}
}

// FromEnv reads the process environment on top of Default and validates
// the result.
func FromEnv() (Config, error) {
	return Load(os.LookupEnv)
}

// Load is FromEnv with an explicit lookup function.
func Load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []error

	if v, ok := lookupTrimmed(lookup, EnvHTTPAddr); ok {
		cfg.HTTPAddr = v
	}
	if v, ok := lookupTrimmed(lookup, EnvMetricsAddr); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := lookupTrimmed(lookup, EnvEnvironment); ok {
		cfg.Env = strings.ToLower(v)
	}
	if v, ok := lookupTrimmed(lookup, EnvShutdownTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvShutdownTimeout, err))
		}
		cfg.ShutdownTimeout = d
	}
	if v, ok := lookupTrimmed(lookup, EnvMaxBodyBytes); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvMaxBodyBytes, err))
		}
		cfg.MaxBodyBytes = n
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field as "field=reason".
func (c Config) Validate() error {
	fields := validator.Validate(c)
	if fields == nil {
		return nil
	}
	parts := make([]string, 0, len(fields))
	for f, reason := range fields {
		parts = append(parts, f+"="+reason)
	}
	sort.Strings(parts)
	return fmt.Errorf("config: invalid %s", strings.Join(parts, ", "))
}

// unset and blank variables both fall back to the default.
func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
