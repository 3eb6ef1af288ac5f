package ghsync

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/burakd/teamdocs/internal/app/models"
)

// Section titles in the target README, one per assignment category.
var sectionTitles = map[string]string{
	models.CategoryCoreJava: "Core Java Topics",
	models.CategoryBackend:  "Backend Technologies",
	models.CategoryFrontend: "Frontend Technologies",
}

// categoryOrder fixes the rendering order of the sections.
var categoryOrder = []string{
	models.CategoryCoreJava,
	models.CategoryBackend,
	models.CategoryFrontend,
}

func statusEmoji(status string) string {
	switch status {
	case models.StatusPending:
		return "⏳"
	case models.StatusInProgress:
		return "🔄"
	case models.StatusReview:
		return "👀"
	case models.StatusCompleted:
		return "✅"
	}
	return status
}

// renderTable renders one category's assignments as a markdown table.
func renderTable(assignments []*models.Assignment) string {
	var b strings.Builder
	b.WriteString("| Topic | Assignee | Status | Due Date | Progress |\n")
	b.WriteString("|-------|----------|--------|----------|----------|\n")
	for _, a := range assignments {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d%% |\n",
			a.Topic, a.Assignee, statusEmoji(a.Status), a.DueDate.Format("2006-01-02"), a.Progress)
	}
	return b.String()
}

var nextHeading = regexp.MustCompile(`(?m)^#{2,3} `)

// spliceSection replaces the body under the "### <title>" heading with the
// given table, keeping everything else untouched. A missing section is
// appended at the end of the document.
func spliceSection(content, title, table string) string {
	body := "### " + title + "\n\n" + table + "\n"

	headingPattern := regexp.MustCompile(`(?m)^### ` + regexp.QuoteMeta(title) + `[ \t]*$\n?`)
	loc := headingPattern.FindStringIndex(content)
	if loc == nil {
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		return content + "\n" + body
	}

	rest := content[loc[1]:]
	end := len(content)
	if next := nextHeading.FindStringIndex(rest); next != nil {
		end = loc[1] + next[0]
	}
	return content[:loc[0]] + body + content[end:]
}

// RenderSections splices one table per category into the README content.
// Assignments outside the known categories are skipped.
func RenderSections(content string, assignments []*models.Assignment) string {
	byCategory := make(map[string][]*models.Assignment)
	for _, a := range assignments {
		byCategory[a.Category] = append(byCategory[a.Category], a)
	}

	for _, category := range categoryOrder {
		title := sectionTitles[category]
		content = spliceSection(content, title, renderTable(byCategory[category]))
	}
	return content
}
