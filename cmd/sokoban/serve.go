package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Sokoban SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a level picker menu and its
own puzzle state. Results are stored per-server (all users share the same
scoreboard).

Address and host key default to the server section of the config file.
Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses the configured key, generating it if missing

Examples:
  sokoban serve                           # Listen on the configured address
  sokoban serve --ssh :2222               # Listen on port 2222
  sokoban serve --host-key ./my_host_key  # Use specific host key
  sokoban serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	play, cfg, err := loadPlayConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Play = play
	serverCfg.DBPath = resolveDBPath(cfg)

	serverCfg.Address = flagSSHAddr
	if serverCfg.Address == "" {
		serverCfg.Address = net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	}

	serverCfg.HostKeyPath = flagHostKey
	if serverCfg.HostKeyPath == "" {
		serverCfg.HostKeyPath = cfg.Server.HostKeyPath
	}

	switch {
	case flagIdleTimeout > 0:
		serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	case cfg.Server.IdleTimeout > 0:
		serverCfg.IdleTimeout = time.Duration(cfg.Server.IdleTimeout) * time.Second
	}

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	_, port, _ := net.SplitHostPort(serverCfg.Address)
	fmt.Printf("Starting Sokoban SSH server on %s (%d levels)\n", serverCfg.Address, len(play.Levels))
	fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
