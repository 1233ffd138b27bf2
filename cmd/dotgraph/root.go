package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "dotgraph",
	Short:         "DOT graph formatter, linter and renderer",
	Long:          "dotgraph parses Graphviz DOT files, writes them back in canonical form, checks them for common mistakes and renders them through Graphviz.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if viper.GetBool("verbose") {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringSlice("path", nil, "Directories searched for Graphviz programs before $PATH")
	rootCmd.PersistentFlags().String("programs", "", "TOML file with a [programs] table mapping program names to paths")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("path", rootCmd.PersistentFlags().Lookup("path"))
	_ = viper.BindPFlag("programs", rootCmd.PersistentFlags().Lookup("programs"))
}

func initConfig() {
	viper.SetEnvPrefix("DOTGRAPH")
	viper.AutomaticEnv()
}
