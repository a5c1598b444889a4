// Package web holds the HTML templates and static assets compiled into the
// binary.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed static/css/*.css static/js/*.js
var Static embed.FS
