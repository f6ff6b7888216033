package cmd

import (
	"fmt"
	"github.com/ValentinKolb/hlbridge/cmd/serve"
	"github.com/ValentinKolb/hlbridge/cmd/solve"
	"github.com/ValentinKolb/hlbridge/cmd/util"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "hlbridge",
		Short: "placement backend bridge",
		Long: fmt.Sprintf(`hlbridge (v%s)

A TCP backend for macro placement tools. It receives a circuit description,
runs an optimization engine and returns the placed circuit, driven by
control tags sent over a delimiter framed byte stream.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of hlbridge",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("hlbridge v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(solve.SolveCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "serializer"
	RootCmd.PersistentFlags().String(key, "proto", util.WrapString("serializer of the circuit payloads (proto, json, gob)"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
