package client

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/JoeyZhen/Library-BMS/cmd/util"
	"github.com/JoeyZhen/Library-BMS/rpc/client"
	"github.com/spf13/cobra"
)

var (
	lbmsClient *client.Client

	// ClientCmd represents the interactive client command
	ClientCmd = &cobra.Command{
		Use:   "client [command...]",
		Short: "Connect to a library server",
		Long: `Connect to a library server and send commands.

Commands given as arguments are sent one after another, then the client
exits. Without arguments an interactive prompt is started. The client id
prefix and the ';' terminator are added automatically.`,
		PreRunE: setupClient,
		RunE:    run,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common connection flags
	util.SetupClientFlags(ClientCmd)
}

// setupClient connects to the server and performs the handshake
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	lbmsClient = client.NewClient(*config, t)
	return lbmsClient.Connect()
}

func run(_ *cobra.Command, args []string) error {
	defer lbmsClient.Close()

	// One-shot mode: send the given commands and exit
	if len(args) > 0 {
		for _, arg := range args {
			resp, err := lbmsClient.Do(arg)
			if err != nil {
				return err
			}
			fmt.Println(resp)
		}
		return nil
	}

	// Interactive mode
	fmt.Printf("connected as client %s (exit with ctrl-d or 'exit')\n", lbmsClient.ID())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		resp, err := lbmsClient.Do(line)
		if err != nil {
			return err
		}
		fmt.Println(resp)
	}
	return scanner.Err()
}
