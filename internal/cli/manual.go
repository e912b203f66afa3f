package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/compose"
	"github.com/craigeley/obsidian-ios-memories-companion/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "manual [note]",
		Short: "Compose a manual journal entry",
		Long:  "Compose a manual entry from a free-text note. The note can be a positional arg or piped via stdin.",
		Run:   runManual,
	}

	cmd.Flags().String("date", "", "Entry date (RFC3339, '2006-01-02 15:04' or '2006-01-02'; default now)")
	cmd.Flags().String("place", "", "Place name")
	cmd.Flags().String("cond", "", "Weather condition (e.g. Clear)")
	cmd.Flags().Int("temp", 0, "Temperature in °F")
	cmd.Flags().StringP("out", "o", ".", "Output directory")
	cmd.Flags().Bool("stdout", false, "Print the document instead of writing a file")

	RootCmd.AddCommand(cmd)
}

func runManual(cmd *cobra.Command, args []string) {
	var note string
	if len(args) > 0 {
		note = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			note = string(b)
		}
	}
	note = strings.TrimSpace(note)
	if note == "" {
		exitErr("manual", errors.New("note is required (positional arg or stdin)"))
	}

	dateStr, _ := cmd.Flags().GetString("date")
	date, err := parseDate(dateStr)
	if err != nil {
		exitErr("parse date", err)
	}

	place, _ := cmd.Flags().GetString("place")

	var obs *model.WeatherObservation
	if cond, _ := cmd.Flags().GetString("cond"); cond != "" {
		temp, _ := cmd.Flags().GetInt("temp")
		obs = &model.WeatherObservation{Temperature: temp, Condition: cond}
	}

	cfg := loadConfig()
	doc := compose.New(cfg).Manual(note, date, obs, place)
	name := compose.Filename(cfg.FilenameFormat, date)

	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		fmt.Print(doc)
		return
	}

	outDir, _ := cmd.Flags().GetString("out")
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		exitErr("write document", err)
	}
	fmt.Println(path)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}
