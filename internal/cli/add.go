package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [file]",
		Short: "Stage a memory record",
		Long:  "Stage a raw memory record (tagged JSON) for export. Reads from a file argument or stdin.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runAdd,
	}

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			exitErr("read record file", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
	}

	var rec model.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		exitErr("parse record", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	staged, err := s.Add(cmd.Context(), rec)
	if err != nil {
		exitErr("add", err)
	}

	b, _ := json.Marshal(staged)
	fmt.Println(string(b))
}
