package fieldwork

import "embed"

// EmailFS holds the notification templates, one directory per template with
// an html.tmpl and a plaintext.tmpl.
//
//go:embed templates/emails
var EmailFS embed.FS

// MigrationFS holds the ordered Postgres schema migrations applied by fieldctl.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
