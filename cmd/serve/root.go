package serve

import (
	"fmt"
	"strings"

	cmdUtil "github.com/JoeyZhen/Library-BMS/cmd/util"
	"github.com/JoeyZhen/Library-BMS/rpc/common"
	"github.com/JoeyZhen/Library-BMS/rpc/server"
	"github.com/JoeyZhen/Library-BMS/rpc/transport"
	"github.com/JoeyZhen/Library-BMS/rpc/transport/tcp"
	"github.com/JoeyZhen/Library-BMS/rpc/transport/unix"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the library server",
		Long:    `Start the library server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is LBMS_<flag> (e.g. LBMS_LOAN_LIMIT=5)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(initConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the server will listen (e.g. localhost:8080, /tmp/lbms.sock, ...)"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("The address on which the /metrics HTTP endpoint will listen (e.g. localhost:9100). Metrics are disabled if unset"))

	key = "open-hour"
	ServeCmd.PersistentFlags().Int(key, 8, cmdUtil.WrapString("The hour from which visitors may arrive (inclusive)"))

	key = "close-hour"
	ServeCmd.PersistentFlags().Int(key, 20, cmdUtil.WrapString("The hour at which the library closes. Open visits are ended at this boundary"))

	key = "loan-limit"
	ServeCmd.PersistentFlags().Int(key, 5, cmdUtil.WrapString("The maximum number of concurrently borrowed books per visitor"))

	key = "loan-period"
	ServeCmd.PersistentFlags().Int(key, 7, cmdUtil.WrapString("The number of days after which a borrowed book falls due"))

	key = "late-fee"
	ServeCmd.PersistentFlags().Int(key, 10, cmdUtil.WrapString("The flat fee charged once per overdue book"))

	key = "fine-limit"
	ServeCmd.PersistentFlags().Int(key, 20, cmdUtil.WrapString("The outstanding balance at which borrowing is blocked"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warning, error, critical)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.OpenHour = viper.GetInt("open-hour")
	serveCmdConfig.CloseHour = viper.GetInt("close-hour")
	serveCmdConfig.LoanLimit = viper.GetInt("loan-limit")
	serveCmdConfig.LoanPeriodDays = viper.GetInt("loan-period")
	serveCmdConfig.LateFee = viper.GetInt("late-fee")
	serveCmdConfig.FineLimit = viper.GetInt("fine-limit")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	// validate the opening hours
	if serveCmdConfig.OpenHour < 0 || serveCmdConfig.CloseHour > 24 || serveCmdConfig.OpenHour >= serveCmdConfig.CloseHour {
		return fmt.Errorf("invalid opening hours: %d to %d", serveCmdConfig.OpenHour, serveCmdConfig.CloseHour)
	}

	return nil
}

// run starts the library server
func run(_ *cobra.Command, _ []string) error {

	// Parse the transport
	var t transport.IServerTransport
	switch viper.GetString("transport") {
	case "tcp":
		t = tcp.NewTCPServerTransport()
	case "unix":
		t = unix.NewUnixServerTransport()
	default:
		return fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}

	serv := server.NewServer(
		*serveCmdConfig,
		t,
	)

	return serv.Serve()
}

// initConfig reads in serveCmdConfig file and ENV variables if set.
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("lbms")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}
