package enrich

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"recipesaver/internal/recipe"
)

// ExtractMetadata builds a draft from standard page metadata. Priority per
// field: Open Graph, then Twitter Card, then plain HTML fallbacks. Standard
// metadata never yields ingredients or steps; those stay empty.
func ExtractMetadata(pageHTML, pageURL string) recipe.Draft {
	draft := recipe.Draft{
		URL:         pageURL,
		Ingredients: []string{},
		Steps:       []string{},
		Tags:        []string{},
	}

	root, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		draft.Title = titleFromURL(pageURL)
		return draft
	}

	var (
		metas        = map[string]string{}
		titleTag     string
		articleImage string
		firstImage   string
	)

	var walk func(n *html.Node, inContent bool)
	walk = func(n *html.Node, inContent bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				key := attr(n, "property")
				if key == "" {
					key = attr(n, "name")
				}
				if content := attr(n, "content"); key != "" && content != "" {
					if _, seen := metas[key]; !seen {
						metas[key] = content
					}
				}
			case "title":
				if titleTag == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					titleTag = strings.TrimSpace(n.FirstChild.Data)
				}
			case "article", "main":
				inContent = true
			case "img":
				if src := attr(n, "src"); src != "" {
					if inContent && articleImage == "" {
						articleImage = src
					}
					if firstImage == "" {
						firstImage = src
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, inContent)
		}
	}
	walk(root, false)

	draft.Title = firstNonEmpty(metas["og:title"], metas["twitter:title"], titleTag)
	if draft.Title == "" {
		draft.Title = titleFromURL(pageURL)
	}
	draft.Description = firstNonEmpty(metas["og:description"], metas["twitter:description"], metas["description"])

	image := firstNonEmpty(metas["og:image"], metas["twitter:image"], articleImage, firstImage)
	if image != "" {
		draft.ImageURL = absoluteURL(image, pageURL)
	}

	return draft
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// absoluteURL resolves a possibly relative image reference against the page
// URL. Unresolvable values pass through untouched.
func absoluteURL(imageURL, baseURL string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return imageURL
	}
	ref, err := url.Parse(imageURL)
	if err != nil {
		return imageURL
	}
	return base.ResolveReference(ref).String()
}

// titleFromURL derives a readable title from the last URL path segment when a
// page offers no usable metadata.
func titleFromURL(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	segment := strings.Trim(parsed.Path, "/")
	if idx := strings.LastIndex(segment, "/"); idx >= 0 {
		segment = segment[idx+1:]
	}
	if dot := strings.LastIndex(segment, "."); dot > 0 {
		segment = segment[:dot]
	}
	segment = strings.NewReplacer("-", " ", "_", " ", "+", " ").Replace(segment)
	segment = strings.Join(strings.Fields(segment), " ")
	if segment == "" {
		return ""
	}
	return cases.Title(language.Und).String(segment)
}
