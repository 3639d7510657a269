// Command arenacored runs one arena server: the client table/broadcaster
// core (spec §1, §4-§5) behind a WebSocket front door (transport).
// Command-line wiring mirrors the Seednode-partybox reference's
// cobra+pflag+viper shape.
package main

import (
	"log"

	"github.com/spf13/cobra"
)

const releaseVersion = "0.1.0"

func main() {
	log.SetFlags(0)
	cfg := &cliConfig{}
	cobra.CheckErr(newRootCmd(cfg).Execute())
}
