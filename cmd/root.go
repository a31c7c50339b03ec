// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kubic-project/caasp-hosts/constants"
	"github.com/kubic-project/caasp-hosts/utils"
)

// appFs is the file system every command works on.
var appFs = afero.NewOsFs() //nolint:gochecknoglobals

// Entrypoint returns the root command with all the subcommands attached.
func Entrypoint() (*cobra.Command, error) {
	o := GetOptions()

	rootCmd := &cobra.Command{
		Use:   "caasp-hosts",
		Short: "keep the hosts file of a cluster node in sync with the cluster membership",
		PersistentPreRunE: func(cobraCmd *cobra.Command, _ []string) error {
			return preRunFn(cobraCmd, o)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().CountVarP(&o.Global.DebugCount, "debug", "d", "enable debug mode")
	rootCmd.PersistentFlags().StringVarP(&o.Global.LogLevel, "log-level", "", o.Global.LogLevel,
		"logging level; one of [trace, debug, info, warning, error, fatal]")
	rootCmd.PersistentFlags().StringVarP(&o.Global.InventoryFile, "inventory", "i", o.Global.InventoryFile,
		"path to the cluster inventory file")
	_ = rootCmd.MarkPersistentFlagFilename("inventory", "*.yaml", "*.yml")
	rootCmd.PersistentFlags().StringVarP(&o.Global.EnvFile, "env-file", "", o.Global.EnvFile,
		"file with environment variables to load, defaults to "+constants.EnvDefaultEnvFile+" when present")
	rootCmd.PersistentFlags().StringVarP(&o.Global.ConfigFile, "config", "", o.Global.ConfigFile,
		"configuration file providing default flag values")

	rootCmd.AddCommand(
		reconcileCmd(o),
		renderCmd(o),
		watchCmd(o),
		versionCmd(),
	)

	return rootCmd, nil
}

// loadEnvFile loads the variables of file without overriding the ones already set.
func loadEnvFile(fs afero.Fs, file string) error {
	if file == "" {
		if !utils.FileExists(fs, constants.EnvDefaultEnvFile) {
			return nil
		}
		file = constants.EnvDefaultEnvFile
	}
	file, err := utils.ExpandHome(file)
	if err != nil {
		return err
	}

	f, err := fs.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	env, err := godotenv.Parse(f)
	if err != nil {
		return err
	}
	for k, val := range env {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return err
		}
	}
	log.Debugf("loaded %d environment variables from %s", len(env), file)
	return nil
}

func preRunFn(cobraCmd *cobra.Command, o *Options) error {
	// the env file may define the CAASP_HOSTS_* variables bound below
	if err := loadEnvFile(appFs, o.Global.EnvFile); err != nil {
		return err
	}

	if err := initViper(cobraCmd.Root(), o.Global.ConfigFile); err != nil {
		return err
	}
	updateOptionsFromViper(cobraCmd, o)

	// setting log level
	switch {
	case o.Global.DebugCount > 0:
		log.SetLevel(log.DebugLevel)
	default:
		l, err := log.ParseLevel(o.Global.LogLevel)
		if err != nil {
			return err
		}

		log.SetLevel(l)
	}

	// setting output to stderr, so that the diff on stdout can be parsed
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.TimeOnly,
	})

	return nil
}
