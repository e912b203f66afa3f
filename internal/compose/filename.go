package compose

import (
	"strconv"
	"time"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/config"
)

// Filename derives the export filename from the configured naming format and
// the entry date. Unknown formats fall back to the readable form.
func Filename(format config.NamingFormat, t time.Time) string {
	switch format {
	case config.NamingCompact:
		return t.Format("200601021504") + ".md"
	case config.NamingDateOnly:
		return t.Format("2006-01-02") + ".md"
	case config.NamingUnix:
		return strconv.FormatInt(t.Unix(), 10) + ".md"
	case config.NamingDescriptive:
		return "Memory - " + t.Format("2006-01-02 15:04") + ".md"
	default:
		return t.Format("2006-01-02 15:04") + ".md"
	}
}
