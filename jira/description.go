package jira

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/ctreminiom/go-atlassian/pkg/infra/models"
	"github.com/tidwall/gjson"
)

// renderedDescription digs the rendered HTML description of one issue
// out of the raw search response. The typed scheme does not surface
// renderedFields, so this goes through the response bytes.
func renderedDescription(response *models.ResponseScheme, issueKey string) string {
	if response == nil {
		return ""
	}
	raw := response.Bytes.Bytes()
	query := fmt.Sprintf(`issues.#(key=="%s").renderedFields.description`, issueKey)
	return gjson.GetBytes(raw, query).String()
}

// DescriptionMarkdown converts a rendered HTML description to markdown,
// falling back to the plain description field when there is no rendered
// version or the conversion fails.
func DescriptionMarkdown(renderedHTML, plain string) string {
	if renderedHTML == "" {
		return strings.TrimSpace(plain)
	}
	md, err := htmltomarkdown.ConvertString(renderedHTML)
	if err != nil {
		return strings.TrimSpace(plain)
	}
	return strings.TrimSpace(md)
}
