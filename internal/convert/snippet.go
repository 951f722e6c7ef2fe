package convert

import (
	"fmt"
	"strings"
)

// makeSnippets builds the three embed-code variants for a converted file.
// baseURL is the public prefix under which converted files are served.
func makeSnippets(baseURL, filename, format string, kind MediaKind) Snippets {
	url := strings.TrimSuffix(baseURL, "/") + "/" + filename

	if kind == KindVideo {
		html := fmt.Sprintf("<video controls width=\"640\" height=\"360\">\n"+
			"  <source src=\"%s\" type=\"video/%s\">\n"+
			"  Your browser does not support the video tag.\n"+
			"</video>", url, format)
		react := fmt.Sprintf("<video controls width={640} height={360}>\n"+
			"  <source src=\"%s\" type=\"video/%s\" />\n"+
			"  Your browser does not support the video tag.\n"+
			"</video>", url, format)
		return Snippets{
			HTML:  html,
			React: react,
			// Markdown has no native video syntax, so the HTML element is
			// embedded inline.
			Markdown: html,
		}
	}

	img := fmt.Sprintf(`<img src="%s" alt="Image" loading="lazy" />`, url)
	return Snippets{
		HTML:     img,
		React:    img,
		Markdown: fmt.Sprintf("![Image](%s)", url),
	}
}
