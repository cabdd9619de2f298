package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/canvas-client/internal/auth"
	"github.com/fivetwenty-io/canvas-client/internal/constants"
)

// NewRootCommand creates the canvas command. Besides its subcommands it
// accepts --action with --course-id and --course-name.
func NewRootCommand(version, commit, date string) *cobra.Command {
	var (
		cfgFile string
		opts    ActionOptions
	)

	rootCmd := &cobra.Command{
		Use:   "canvas",
		Short: "Canvas LMS API CLI",
		Long: `A read-only command-line interface for the Canvas LMS REST API.

It shows the authenticated user, enrolled courses, course search by name or
code, course students and assignments, and finds the base URL that accepts
your token.

The token is read from ` + "$HOME/" + constants.ConfigDirName + "/" + constants.TokenFileName + ` unless --token-file is given.`,
		Example: `  canvas --action user
  canvas --action find-course --course-name 6725
  canvas --action students --course-name "Intro to X"
  canvas assignments --course-id 1234 --output table`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := InitConfig(cfgFile)
			if err != nil {
				return err
			}

			ConfigureLogging(cmd.ErrOrStderr(), viper.GetBool(KeyDebug))

			if used := viper.ConfigFileUsed(); used != "" {
				Logger().Debug("Using config file", map[string]interface{}{"path": used})
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Action == "" {
				return cmd.Help()
			}

			return RunAction(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	SetDefaults()

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/"+constants.ConfigDirName+"/config.yml)")
	flags.String("base-url", constants.DefaultBaseURL, "Canvas base URL")
	flags.String("token-file", "", "file holding the Canvas API token (default is $HOME/"+constants.ConfigDirName+"/"+constants.TokenFileName+")")
	flags.StringP("output", "o", constants.FormatJSON, "output format (json, yaml, table, auto)")
	flags.Bool("debug", false, "log requests and print full error chains")

	bindFlags(flags, map[string]string{
		KeyBaseURL:   "base-url",
		KeyTokenFile: "token-file",
		KeyOutput:    "output",
		KeyDebug:     "debug",
	})

	AddActionFlags(rootCmd, &opts)

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewUserCommand())
	rootCmd.AddCommand(NewCoursesCommand())
	rootCmd.AddCommand(NewFindCourseCommand())
	rootCmd.AddCommand(NewStudentsCommand())
	rootCmd.AddCommand(NewAssignmentsCommand())
	rootCmd.AddCommand(NewDemoCommand())
	rootCmd.AddCommand(NewDiscoverCommand())

	return rootCmd
}

// bindFlags binds config keys to the named flags.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, flagName := range keys {
		_ = viper.BindPFlag(key, flags.Lookup(flagName))
	}
}

// InitConfig reads the config file and CANVAS_* environment variables. A
// missing default config file is not an error; a missing explicit one is.
func InitConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := auth.ConfigDir()
		if err == nil {
			viper.AddConfigPath(configDir)
		}

		viper.SetConfigType("yml")
		viper.SetConfigName(constants.ConfigFileName)
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("reading config file: %w", err)
	}

	return nil
}
