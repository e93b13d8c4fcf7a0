package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/nexus/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML.
// The innermost enclosing folder becomes the category, the TAGS attribute
// the tags and a following <DD> the description. Bookmarks outside any
// folder get model.DefaultCategory.
func ParseHTMLBookmarks(r io.Reader) ([]model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var bookmarks []model.Bookmark

	var folderStack []string // folder names, innermost last
	pendingFolder := ""      // folder waiting to be pushed on next DL
	last := -1               // bookmark a following DD describes

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition
				pendingFolder = getTextContent(n)
				last = -1
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					last = -1
					return
				}

				category := model.DefaultCategory
				if len(folderStack) > 0 {
					category = folderStack[len(folderStack)-1]
				}

				b := model.NewBookmark(model.NewBookmarkParams{
					URL:      href,
					Title:    getTextContent(n),
					Category: category,
					Tags:     strings.Split(getAttr(n, "tags"), ","),
				})

				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						b.CreatedAt = time.Unix(ts, 0)
					}
				}

				bookmarks = append(bookmarks, b)
				last = len(bookmarks) - 1
				return

			case "dd":
				if last >= 0 {
					bookmarks[last].Description = getOwnText(n)
					last = -1
				}
				// A DD may wrap the following DT elements
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode {
						parse(c)
					}
				}
				return

			case "dl":
				// Definition list marks folder contents
				pushed := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				last = -1
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return bookmarks, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getOwnText returns the direct text children of a node, ignoring nested
// elements.
func getOwnText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
