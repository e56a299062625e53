// Package cli implements the lenslab command line.
//
// Commands:
//
//	lenslab hash <string>...            hash strings into box indices
//	lenslab solve [-i FILE]             Part 1 and Part 2 checksums
//	lenslab bench [-i FILE]             time repeated simulations
//	lenslab history --db PATH           list recorded runs
//	lenslab test <scenarios-dir>        run conformance scenarios
//
// Input is read from --input or, if absent, from stdin. Only the first
// non-empty line is used.
package cli
