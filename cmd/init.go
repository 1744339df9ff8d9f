package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// initCmd: elmreview init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .review.yaml enabling every rule",
	Run: func(cmd *cobra.Command, args []string) {
		path := cfgFile
		if path == "" {
			path = ".review.yaml"
		}
		if err := initConfigurationFile(path); err != nil {
			logger.Error("error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(path string) error {
	data, err := yaml.Marshal(defaultConfig())
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(data)
	return err
}
