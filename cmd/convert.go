package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hashgraph-online/conversational-agent-sub001/core/convert"
	"github.com/hashgraph-online/conversational-agent-sub001/core/entity"
)

var convertCmd = &cobra.Command{
	Use:   "convert <entity> <target-format>",
	Short: "Convert one entity reference to a target format",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, ok := entity.ParseFormat(args[1])
		if !ok {
			return fmt.Errorf("unknown format %q", args[1])
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		registry, err := buildRegistry(cfg)
		if err != nil {
			return err
		}

		converted, err := registry.ConvertEntity(cmd.Context(), args[0], target, &convert.Context{
			Network: cfg.NetworkType(),
		})
		if err != nil {
			return err
		}
		fmt.Println(converted)
		return nil
	},
}

var detectCmd = &cobra.Command{
	Use:   "detect <entity>",
	Short: "Detect the format of an entity reference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		registry, err := buildRegistry(cfg)
		if err != nil {
			return err
		}

		format := registry.DetectEntityFormat(cmd.Context(), args[0], &convert.Context{
			Network: cfg.NetworkType(),
		})
		fmt.Println(format)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(detectCmd)
}
