package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List staged records",
		Run:   runList,
	}

	cmd.Flags().BoolP("all", "a", false, "Include already-exported records")
	cmd.Flags().IntP("limit", "l", 0, "Max results (0 = no limit)")
	cmd.Flags().Bool("ids-only", false, "Only output record IDs and titles")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	all, _ := cmd.Flags().GetBool("all")
	limit, _ := cmd.Flags().GetInt("limit")
	idsOnly, _ := cmd.Flags().GetBool("ids-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	records, err := s.List(cmd.Context(), store.ListParams{All: all, Limit: limit})
	if err != nil {
		exitErr("list", err)
	}

	if idsOnly {
		for _, r := range records {
			fmt.Printf("%s\t%s\n", r.ID, r.Title)
		}
		return
	}

	b, _ := json.MarshalIndent(records, "", "  ")
	fmt.Println(string(b))
}
