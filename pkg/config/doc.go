// Package config loads tracker credentials and run settings.
//
// Settings are layered, later sources winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file ([LoadFile]), typically ./ticketgraph.toml
//  3. environment variables ([Config.ApplyEnv])
//  4. command-line flags, applied by the CLI
//
// Credentials never come from the file. They are read from JIRA_EMAIL,
// JIRA_API_TOKEN and JIRA_BASE_URL, with the packed JSON variable
// JIRA_DEPENDENCY filling whichever of the three is missing:
//
//	export JIRA_DEPENDENCY='{"email":"me@acme.io","token":"...","base_url":"https://acme.atlassian.net"}'
package config
