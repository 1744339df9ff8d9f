package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/elmreview/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List every rule in the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		names := make([]string, 0, len(rules.All()))
		for _, r := range rules.All() {
			names = append(names, r.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
	},
}
