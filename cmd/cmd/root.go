// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"os"

	"github.com/ostafen/ftype/internal/config"
	"github.com/ostafen/ftype/internal/env"
	"github.com/ostafen/ftype/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(withDefaultCommand(rootCmd, os.Args[1:]))
	return rootCmd.Execute()
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   env.AppName,
		Short: env.AppName + " - identify file types by their magic numbers",
		Long: `ftype matches the leading bytes of files against a table of magic number signatures,
falling back to generic content sniffing when no signature applies.

Running "ftype <path>..." is the same as "ftype identify <path>...".`,
		Version: env.Version,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path of the configuration file (default: search for "+env.AppName+".yaml)")
	flags.String(config.KeyLogLevel, config.Defaults().LogLevel, "log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(
		DefineIdentifyCommand(),
		DefineFormatsCommand(),
		DefineSummaryCommand(),
		DefineWatchCommand(),
	)
	return rootCmd
}

// withDefaultCommand routes arguments that name no subcommand to identify.
func withDefaultCommand(root *cobra.Command, args []string) []string {
	if len(args) == 0 {
		return args
	}

	switch args[0] {
	case "help", "completion", "-h", "--help", "-v", "--version":
		return args
	}

	if c, _, err := root.Find(args); err == nil && c != root {
		return args
	}
	return append([]string{"identify"}, args...)
}

// loadConfig merges the config file, the environment and the flags of cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path, cmd.Flags())
}

func newLogger(cmd *cobra.Command, cfg config.Config) *logrus.Logger {
	return logger.New(cmd.ErrOrStderr(), logger.ParseLevel(cfg.LogLevel))
}
