// pipepulse passes stdin to stdout unchanged and periodically reports
// that data is still flowing: touches a file, rewrites it with counters or
// prints them to stderr.
//
// Bytes are moved with splice(2) when both descriptors allow it. Otherwise
// pipepulse falls back to a buffered copy and never returns to zero-copy.
package main

import (
	"github.com/alecthomas/kong"
	"github.com/pipepulse/pipepulse/internal/cli"
)

var version = "dev" // has to be set by ldflags

func main() {
	cli := &cli.CLI{}
	ctx := kong.Parse(cli, kong.Vars{
		"version": version,
	})

	ctx.FatalIfErrorf(ctx.Run(cli, version))
}
