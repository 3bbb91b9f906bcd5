package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/guyfedwards/newsdesk/internal/config"
)

// configtest prints the effective configuration after includes, the
// environment and defaults have been applied.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <config-file>\n", os.Args[0])
		os.Exit(1)
	}

	configPath := os.Args[1]

	debug := len(os.Args) > 2 && os.Args[2] == "-debug"

	runtime := config.New().WithConfigPath(configPath).WithDotEnv(".env")

	if debug {
		fmt.Fprintf(os.Stderr, "ConfigPath: %s\n", runtime.ConfigPath)
		fmt.Fprintf(os.Stderr, "ConfigDir: %s\n", runtime.ConfigDir)
	}

	if _, err := runtime.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if debug {
		fmt.Fprintf(os.Stderr, "Source: %s\n", runtime.ContentSource())
	}

	output, err := yaml.Marshal(runtime.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling config to YAML: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(string(output))
}
