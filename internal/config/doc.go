// Package config defines the application configuration structure and loading
// logic. Configuration is read from an optional config.yaml and from
// TASKFORGE_-prefixed environment variables, with environment values taking
// precedence, then validated before the application starts.
package config
