// Package config loads confgrab settings.
//
// Settings come from three layers: built-in defaults, an optional YAML file
// (~/.confgrab/config.yaml unless --config names another), and command-line
// flags. Later layers override earlier ones field by field.
package config
