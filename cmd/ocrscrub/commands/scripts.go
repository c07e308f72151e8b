package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okeanos-nlp/ocrscrub/pkg/ocrscrub"
)

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "List the script keys usable with --scripts",
	Run: func(cmd *cobra.Command, args []string) {
		for _, key := range ocrscrub.AvailableScripts() {
			fmt.Println(key)
		}
	},
}

func init() {
	rootCmd.AddCommand(scriptsCmd)
}
