// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kubic-project/caasp-hosts/constants"
	"github.com/kubic-project/caasp-hosts/utils"
)

var v *viper.Viper //nolint:gochecknoglobals

// initViper initializes viper for environment variable and config file support.
func initViper(cmd *cobra.Command, configFile string) error {
	v = viper.New()

	// Set the environment variable prefix
	v.SetEnvPrefix(constants.EnvPrefix)

	// Replace hyphens, slashes, and dots with underscores in environment variable names
	// This allows keys like "reconcile.hosts-file" to match env var "CAASP_HOSTS_RECONCILE_HOSTS_FILE"
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", "/", "_", ".", "_"))

	// Automatically bind environment variables
	v.AutomaticEnv()

	if configFile != "" {
		file, err := utils.ExpandHome(configFile)
		if err != nil {
			return err
		}
		v.SetFs(appFs)
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	// Bind all flags to viper
	return bindFlags(cmd, v)
}

// bindFlags binds all cobra flags to viper for a command and its subcommands.
// It uses command hierarchy to create namespaced keys for environment variables.
// For example, the --hosts-file flag in "reconcile" becomes:
// CAASP_HOSTS_RECONCILE_HOSTS_FILE
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	return bindFlagsWithPath(cmd, v, "")
}

func isRootCmd(cmd *cobra.Command) bool {
	return !cmd.HasParent()
}

// bindFlagsWithPath recursively binds flags with their command path as prefix.
func bindFlagsWithPath(cmd *cobra.Command, v *viper.Viper, cmdPath string) error {
	// Build the current command path
	currentPath := cmdPath
	isRoot := isRootCmd(cmd)

	if !isRoot {
		if currentPath != "" {
			currentPath = currentPath + "." + cmd.Name()
		} else {
			currentPath = cmd.Name()
		}
	}

	// Bind persistent flags
	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		// root persistent flags are bound without prefix so they work globally
		if isRoot {
			_ = v.BindPFlag(flag.Name, flag)
		}

		if currentPath != "" {
			key := currentPath + "." + flag.Name
			_ = v.BindPFlag(key, flag)
		}
	})

	// Bind local flags with command path prefix
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		// Skip if this flag is a persistent flag (already bound above)
		if cmd.PersistentFlags().Lookup(flag.Name) != nil {
			return
		}

		// Local flags MUST have a command path prefix
		if currentPath != "" {
			key := currentPath + "." + flag.Name
			_ = v.BindPFlag(key, flag)
		}
	})

	// Recursively bind flags for all subcommands
	for _, subCmd := range cmd.Commands() {
		if err := bindFlagsWithPath(subCmd, v, currentPath); err != nil {
			return err
		}
	}

	return nil
}

// updateOptionsFromViper updates the Options struct from viper values
// when environment variables or the config file set them and flags are not explicitly provided.
func updateOptionsFromViper(cmd *cobra.Command, _ *Options) {
	cmdPath := getCommandPath(cmd)

	// Collect all flags that should be checked (avoid duplicates)
	flagMap := make(map[string]*pflag.Flag)

	addFlags := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if _, exists := flagMap[f.Name]; !exists {
				flagMap[f.Name] = f
			}
		})
	}

	addFlags(cmd.Flags())
	addFlags(cmd.PersistentFlags())

	// inherited persistent flags from all parent commands
	parent := cmd.Parent()
	for parent != nil {
		addFlags(parent.PersistentFlags())
		parent = parent.Parent()
	}

	for _, f := range flagMap {
		updateFlagFromViper(f, cmdPath)
	}
}

// getCommandPath builds the command path from root to current command.
// For example: "reconcile"
func getCommandPath(cmd *cobra.Command) string {
	var parts []string
	current := cmd

	for current != nil && !isRootCmd(current) {
		parts = append([]string{current.Name()}, parts...)
		current = current.Parent()
	}

	return strings.Join(parts, ".")
}

// updateFlagFromViper updates a single flag's value from viper if:
// - The flag was not explicitly set on the command line
// - Viper has a value for this flag (from env var or config file).
func updateFlagFromViper(f *pflag.Flag, cmdPath string) {
	if f.Changed {
		return
	}

	var key string
	var hasValue bool

	if cmdPath != "" {
		key = cmdPath + "." + f.Name
		hasValue = v.IsSet(key)

		// root persistent flags are bound without the command path
		if !hasValue {
			for _, k := range v.AllKeys() {
				if k == f.Name {
					key = f.Name
					hasValue = v.IsSet(key)
					break
				}
			}
		}
	} else {
		key = f.Name
		hasValue = v.IsSet(key)
	}

	if !hasValue {
		return
	}

	var val string

	switch f.Value.Type() {
	case "stringArray":
		// items may contain commas, set them one by one
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			if slice := v.GetStringSlice(key); len(slice) > 0 {
				_ = sv.Replace(slice)
			}
		}
		return
	case "stringSlice":
		// For slices, join with comma as that's what cobra expects
		slice := v.GetStringSlice(key)
		if len(slice) > 0 {
			val = strings.Join(slice, ",")
		}
	default:
		// the flag.Value.Set() method handles type conversion for us
		val = v.GetString(key)
	}

	if val != "" {
		_ = f.Value.Set(val)
	}
}
