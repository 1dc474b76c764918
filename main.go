package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rm-hull/dmi-tools/cmd"
	"github.com/rm-hull/dmi-tools/internal"
	"github.com/rm-hull/dmi-tools/internal/dmi"
	"github.com/spf13/cobra"
)

func main() {
	var rootPath string
	var port int
	var debug bool
	var filter string

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := internal.LoadConfig()
	host := dmi.NewHost(cfg.ResizeBackend)

	rootCmd := &cobra.Command{
		Use:          "dmi-tools",
		Long:         `Tools for BYOND DMI icon files`,
		SilenceUsage: true,
	}

	stripCmd := &cobra.Command{
		Use:   "strip <path>",
		Short: "Remove zTXt metadata from a PNG in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Strip(os.Stdout, host, args[0])
		},
	}

	createCmd := &cobra.Command{
		Use:   "create <path> <width> <height> <pixels>",
		Short: "Create an RGBA PNG from a #RRGGBB[AA] pixel stream",
		Args:  cobra.ExactArgs(4),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Create(os.Stdout, host, args[0], args[1], args[2], args[3])
		},
	}

	resizeCmd := &cobra.Command{
		Use:   "resize <path> <width> <height> [--filter <name>]",
		Short: "Resize a PNG in place",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Resize(os.Stdout, host, args[0], args[1], args[2], filter)
		},
	}
	resizeCmd.Flags().StringVar(&filter, "filter", "nearest", "Resampling filter: nearest, triangle, catmull, gaussian or lanczos3")

	statesCmd := &cobra.Command{
		Use:   "states <path>",
		Short: "List the icon state names of a DMI as a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.States(os.Stdout, host, args[0])
		},
	}

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--root <path>] [--port <port>] [--debug]",
		Short: "Start HTTP API server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.ApiServer(cfg, rootPath, port, debug)
		},
	}

	apiServerCmd.Flags().StringVar(&rootPath, "root", "./data", "Directory that request paths are resolved under")
	apiServerCmd.Flags().IntVar(&port, "port", cfg.Port, "Port to run HTTP server on")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	rootCmd.AddCommand(stripCmd, createCmd, resizeCmd, statesCmd, apiServerCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
