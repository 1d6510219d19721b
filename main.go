package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"miniSeq/config"
	"miniSeq/lib/logger"
	"miniSeq/redis/server"
)

var banner = `
           _       _ ____
 _ __ ___ (_)_ __ (_) ___|  ___  __ _
| '_ ' _ \| | '_ \| \___ \ / _ \/ _' |
| | | | | | | | | | |___) |  __/ (_| |
|_| |_| |_|_|_| |_|_|____/ \___|\__, |
                                   |_|
`

func newRootCmd() *cobra.Command {
	var (
		configFile string
		bind       string
		port       int
	)
	cmd := &cobra.Command{
		Use:           "miniSeq",
		Short:         "A redis-protocol server storing linked sequences",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				if err := config.SetupConfig(configFile); err != nil {
					return fmt.Errorf("load config %s: %w", configFile, err)
				}
			}
			// 命令行参数优先于配置文件
			if cmd.Flags().Changed("bind") {
				config.Properties.Bind = bind
			}
			if cmd.Flags().Changed("port") {
				config.Properties.Port = port
			}

			props := config.Properties
			if err := logger.Setup(&logger.Settings{
				Level:      props.LogLevel,
				FileName:   props.LogFile,
				MaxSize:    props.LogMaxSize,
				MaxBackups: props.LogMaxBackups,
				MaxAge:     props.LogMaxAge,
			}); err != nil {
				return err
			}
			defer logger.Sync()

			fmt.Print(banner)
			logger.Info("run id: " + props.RunID)
			return server.Serve(props)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", os.Getenv("CONFIG"), "path of the config file")
	cmd.Flags().StringVar(&bind, "bind", "", "address to listen on")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
