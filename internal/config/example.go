package config

import _ "embed"

// Example is a commented config.json listing every key with its default.
//
//go:embed config.example.json
var Example []byte
