// Package commands defines the deckpdf CLI.
//
// Commands
//
//   - export   Capture a running deck into a PDF
//   - inspect  Print page count and page sizes of a PDF
//   - assets   Copy deck assets listed in a JSON manifest
//
// The root command sets up structured logging and a context cancelled on
// SIGINT or SIGTERM, shared by every subcommand.
package commands
