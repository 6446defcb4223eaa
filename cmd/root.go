/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.makar.dev/proxy/cmd/makar"
)

var cfgFile string

// rootCmd is the base cobra command: running it with no subcommand starts
// the proxy itself.
var rootCmd = &cobra.Command{
	Use:   "makar-proxy",
	Short: "A protocol-translating reverse proxy for Minecraft 1.8.8 clients",
	Long: `makar-proxy accepts vanilla Minecraft 1.8.8 client connections,
speaks the client protocol on one side, and forwards authenticated player
events to a single upstream application server over a compact backplane
protocol on the other.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return makar.Run()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.Flags().Bool("debug", false, "enable verbose, human-friendly logging")
	rootCmd.Flags().String("bind", "127.0.0.1:25565", "client-facing listen address")
	rootCmd.Flags().String("backplane", "127.0.0.1:25566", "upstream application server address")

	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
	_ = viper.BindPFlag("bind", rootCmd.Flags().Lookup("bind"))
	_ = viper.BindPFlag("backplane", rootCmd.Flags().Lookup("backplane"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("makar")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "error reading config file:", err)
		}
	}
}
