// Package commands defines the eidc CLI for the exoplanet imaging data
// challenge toolkit.
//
// Commands
//
//   - inject    Inject a synthetic companion into an IFS cube
//   - evaluate  Score submission archives against ground truth
//   - mock      Generate a mock submission archive
//   - inspect   List the HDUs of a FITS or MEF file
//
// # Implementation
//
// The root command builds a shared zap logger before any subcommand
// runs, so handlers log through a single configured sink.
package commands
