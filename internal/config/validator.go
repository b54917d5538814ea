package config

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// Validate applies the semantic checks the schema cannot express and
// returns every violation found.
func Validate(cfg *Config) []error {
	var errs []error

	if len(cfg.Requests) == 0 {
		errs = append(errs, fmt.Errorf("at least one request must be defined"))
	}

	for name, env := range cfg.Environments {
		if env.BaseURL == "" {
			errs = append(errs, fmt.Errorf("environment %q: baseUrl is required", name))
		} else if u, err := url.Parse(env.BaseURL); err != nil || !u.IsAbs() {
			errs = append(errs, fmt.Errorf("environment %q: baseUrl %q is not an absolute URL", name, env.BaseURL))
		}
		if env.Timeout != "" {
			if _, err := time.ParseDuration(env.Timeout); err != nil {
				errs = append(errs, fmt.Errorf("environment %q: invalid timeout %q", name, env.Timeout))
			}
		}
	}

	for name, req := range cfg.Requests {
		if !knownMethods[req.Method] {
			errs = append(errs, fmt.Errorf("request %q: unknown method %q", name, req.Method))
		}
		if req.URL == "" {
			errs = append(errs, fmt.Errorf("request %q: url is required", name))
		}
		for exName, expr := range req.Extract {
			if expr == "" {
				errs = append(errs, fmt.Errorf("request %q: extract %q has an empty expression", name, exName))
			}
		}
	}

	return errs
}
