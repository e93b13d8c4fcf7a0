package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/nexus/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/nexus-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("nexus-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports bookmarks to Netscape bookmark HTML, one folder per
// category in first-seen order.
func ExportHTML(bookmarks []model.Bookmark) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, category := range categories(bookmarks) {
		fmt.Fprintf(&b, "    <DT><H3>%s</H3>\n", html.EscapeString(category))
		b.WriteString("    <DL><p>\n")
		for _, bm := range bookmarks {
			if bm.Category == category {
				writeBookmark(&b, bm, 2)
			}
		}
		b.WriteString("    </DL><p>\n")
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// categories returns distinct categories in first-seen order.
func categories(bookmarks []model.Bookmark) []string {
	var result []string
	seen := map[string]bool{}
	for _, b := range bookmarks {
		if !seen[b.Category] {
			seen[b.Category] = true
			result = append(result, b.Category)
		}
	}
	return result
}

func writeBookmark(b *strings.Builder, bm model.Bookmark, indent int) {
	prefix := strings.Repeat("    ", indent)

	tags := ""
	if len(bm.Tags) > 0 {
		tags = fmt.Sprintf(" TAGS=\"%s\"", html.EscapeString(strings.Join(bm.Tags, ",")))
	}

	fmt.Fprintf(b,
		"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\"%s>%s</A>\n",
		prefix,
		html.EscapeString(bm.URL),
		bm.CreatedAt.Unix(),
		tags,
		html.EscapeString(bm.Title),
	)
	if bm.Description != "" {
		fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(bm.Description))
	}
}
