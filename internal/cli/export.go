package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/aggregate"
	"github.com/craigeley/obsidian-ios-memories-companion/internal/compose"
	"github.com/craigeley/obsidian-ios-memories-companion/internal/model"
	"github.com/craigeley/obsidian-ios-memories-companion/internal/store"
	"github.com/craigeley/obsidian-ios-memories-companion/internal/weather"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [id...]",
		Short: "Export staged records as a markdown document",
		Long:  "Export staged records through the aggregation engine into one markdown document. With no IDs, every pending record is exported.",
		Run:   runExport,
	}

	cmd.Flags().StringP("out", "o", ".", "Output directory")
	cmd.Flags().Bool("stdout", false, "Print the document instead of writing a file")
	cmd.Flags().String("note", "", "User note appended under a Notes heading")
	cmd.Flags().Bool("keep", false, "Do not mark records as exported")
	cmd.Flags().String("cond", "", "Weather condition to inject (e.g. Clear)")
	cmd.Flags().Int("temp", 0, "Temperature in °F to inject alongside --cond")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	outDir, _ := cmd.Flags().GetString("out")
	toStdout, _ := cmd.Flags().GetBool("stdout")
	note, _ := cmd.Flags().GetString("note")
	keep, _ := cmd.Flags().GetBool("keep")

	cfg := loadConfig()

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var staged []store.StagedRecord
	if len(args) > 0 {
		for _, id := range args {
			r, err := s.Get(cmd.Context(), id)
			if err != nil {
				exitErr("export", err)
			}
			staged = append(staged, *r)
		}
	} else {
		staged, err = s.List(cmd.Context(), store.ListParams{})
		if err != nil {
			exitErr("export", err)
		}
	}
	if len(staged) == 0 {
		exitErr("export", errors.New("no records to export"))
	}

	var records []model.Record
	var ids []string
	for _, sr := range staged {
		rec, err := sr.Record()
		if err != nil {
			// A corrupt payload costs one record, not the export.
			slog.Warn("skipping undecodable record", "id", sr.ID, "err", err)
			continue
		}
		records = append(records, rec)
		ids = append(ids, sr.ID)
	}
	if len(records) == 0 {
		exitErr("export", errors.New("no decodable records"))
	}

	agg := aggregate.Aggregate(cmd.Context(), records, weatherLookup(cmd), cfg.DefaultTags)
	doc := compose.New(cfg).Document(agg, note)

	date := agg.CreatedAt
	if date.IsZero() {
		date = time.Now()
	}
	name := compose.Filename(cfg.FilenameFormat, date)

	if toStdout {
		fmt.Print(doc)
	} else {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			exitErr("write document", err)
		}
		fmt.Println(path)
	}

	if !keep {
		if err := s.MarkExported(cmd.Context(), ids); err != nil {
			exitErr("mark exported", err)
		}
	}
}

// weatherLookup builds the injected weather collaborator from flags. Live
// lookup is out of scope; the caller either knows the conditions or there
// are none.
func weatherLookup(cmd *cobra.Command) weather.Lookup {
	cond, _ := cmd.Flags().GetString("cond")
	if cond == "" {
		return weather.Nop{}
	}
	temp, _ := cmd.Flags().GetInt("temp")
	return weather.Static{Obs: model.WeatherObservation{Temperature: temp, Condition: cond}}
}
