package main

import (
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push <file>...",
	Short: "Publish descriptions to Redis",
	Long:  `Parses each description file and stores it in Redis under its base name, where the redis backend can load it.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		if cmd.Flags().Changed("redis") {
			opts.Config.Redis.Addr, _ = cmd.Flags().GetString("redis")
		}
		return cli.Push(cmd.Context(), cli.PushOptions{Options: opts, Files: args, ID: id})
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)

	pushCmd.Flags().String("id", "", "Publish under this ID instead of the file name (single file only)")
	pushCmd.Flags().String("redis", "", "Redis address (overrides config redis.addr)")
}
