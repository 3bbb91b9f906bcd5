package config

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"
)

const DefaultHTTPTimeout = 10 * time.Second

type HTTPOptions struct {
	MinTLSVersion string        `yaml:"minTLSVersion,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
	UserAgent     string        `yaml:"userAgent,omitempty"`
}

var tlsVersions = map[string]uint16{
	"TLS10": tls.VersionTLS10,
	"TLS11": tls.VersionTLS11,
	"TLS12": tls.VersionTLS12,
	"TLS13": tls.VersionTLS13,
}

// TLSVersion accepts both the short form (TLS12) and the form produced by
// tls.VersionName (TLS 1.2).
func TLSVersion(name string) (uint16, error) {
	if v, ok := tlsVersions[name]; ok {
		return v, nil
	}
	for _, v := range tlsVersions {
		if tls.VersionName(v) == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("config.TLSVersion: unknown TLS version %q", name)
}

// HTTPClient builds the client used to talk to content backends.
func (r *Runtime) HTTPClient() (*http.Client, error) {
	opts := r.Config.HTTPOptions
	if opts == nil {
		opts = &HTTPOptions{}
	}

	minVersion := uint16(tls.VersionTLS12)
	if opts.MinTLSVersion != "" {
		v, err := TLSVersion(opts.MinTLSVersion)
		if err != nil {
			return nil, err
		}
		minVersion = v
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{MinVersion: minVersion}

	return &http.Client{Timeout: timeout, Transport: transport}, nil
}

func (r *Runtime) UserAgent() string {
	if r.Config.HTTPOptions != nil && r.Config.HTTPOptions.UserAgent != "" {
		return r.Config.HTTPOptions.UserAgent
	}
	if r.Version != "" {
		return "newsdesk/" + r.Version
	}
	return "newsdesk"
}
