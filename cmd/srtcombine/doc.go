// Package main hosts the srtcombine CLI.
//
// The root command combines every subtitle file under a source directory
// into one document, prints a per-file table and can keep the output in sync
// with a watch loop. The parse subcommand dumps the cues of a single file.
package main
