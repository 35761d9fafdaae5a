package cmd

import (
	"fmt"
	"os"

	"github.com/JoeyZhen/Library-BMS/cmd/client"
	"github.com/JoeyZhen/Library-BMS/cmd/serve"
	"github.com/JoeyZhen/Library-BMS/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "lbms",
		Short: "library book management system",
		Long: fmt.Sprintf(`LBMS (v%s)

A library book management server written in Go. Visitors, a book store
and inventory, borrowing with fines, simulated time and transactional
undo/redo, all driven by a comma-separated text protocol.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of LBMS",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("LBMS v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(client.ClientCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
