// Package readme embeds the user documentation printed by `switchboard readme`.
package readme

import _ "embed"

//go:embed README.md
var Content string
