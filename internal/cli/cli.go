package cli

import "github.com/alecthomas/kong"

type CLI struct {
	SimpleRun SimpleRun        `kong:"cmd,default='withargs',help='Run pipepulse configured by flags (default).'"` //nolint: lll
	Run       Run              `kong:"cmd,help='Run pipepulse with a config file.'"`
	Health    Health           `kong:"cmd,help='Check that pipepulse reports in time.'"`
	Version   kong.VersionFlag `kong:"help='Print version.',short='V'"`
}
