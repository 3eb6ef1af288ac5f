package ghsync

import (
	"strings"
	"testing"
	"time"

	"github.com/burakd/teamdocs/internal/app/models"
)

func testAssignment(topic, assignee, category, status string, progress int) *models.Assignment {
	return &models.Assignment{
		Topic:    topic,
		Assignee: assignee,
		Category: category,
		Status:   status,
		Progress: progress,
		DueDate:  time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestStatusEmoji(t *testing.T) {
	cases := map[string]string{
		models.StatusPending:    "⏳",
		models.StatusInProgress: "🔄",
		models.StatusReview:     "👀",
		models.StatusCompleted:  "✅",
		"unknown":               "unknown",
	}
	for status, want := range cases {
		if got := statusEmoji(status); got != want {
			t.Errorf("statusEmoji(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	table := renderTable([]*models.Assignment{
		testAssignment("Generics", "John Smith", models.CategoryCoreJava, models.StatusInProgress, 40),
	})

	want := "| Generics | John Smith | 🔄 | 2026-09-15 | 40% |"
	if !strings.Contains(table, want) {
		t.Errorf("expected row %q in:\n%s", want, table)
	}
	if !strings.HasPrefix(table, "| Topic | Assignee | Status | Due Date | Progress |") {
		t.Errorf("missing header row:\n%s", table)
	}
}

func TestSpliceSectionReplacesExisting(t *testing.T) {
	content := "# Team Docs\n\nIntro text.\n\n" +
		"### Core Java Topics\n\nold table\n\n" +
		"### Backend Technologies\n\nkeep me\n"

	got := spliceSection(content, "Core Java Topics", "new table\n")

	if strings.Contains(got, "old table") {
		t.Errorf("old section body must be replaced:\n%s", got)
	}
	if !strings.Contains(got, "### Core Java Topics\n\nnew table") {
		t.Errorf("new section body missing:\n%s", got)
	}
	if !strings.Contains(got, "Intro text.") {
		t.Errorf("content before the section must survive:\n%s", got)
	}
	if !strings.Contains(got, "### Backend Technologies\n\nkeep me") {
		t.Errorf("following section must survive:\n%s", got)
	}
}

func TestSpliceSectionAppendsMissing(t *testing.T) {
	content := "# Team Docs\n"

	got := spliceSection(content, "Frontend Technologies", "table\n")

	if !strings.Contains(got, "### Frontend Technologies\n\ntable") {
		t.Errorf("missing section must be appended:\n%s", got)
	}
	if !strings.HasPrefix(got, "# Team Docs\n") {
		t.Errorf("existing content must stay first:\n%s", got)
	}
}

func TestSpliceSectionIsIdempotent(t *testing.T) {
	content := "# Docs\n\n### Core Java Topics\n\nstale\n"

	once := spliceSection(content, "Core Java Topics", "fresh\n")
	twice := spliceSection(once, "Core Java Topics", "fresh\n")

	if once != twice {
		t.Errorf("splicing the same table twice must be stable:\nfirst:\n%s\nsecond:\n%s", once, twice)
	}
}

func TestRenderSections(t *testing.T) {
	assignments := []*models.Assignment{
		testAssignment("Generics", "John Smith", models.CategoryCoreJava, models.StatusCompleted, 100),
		testAssignment("Spring Boot", "Jane Doe", models.CategoryBackend, models.StatusPending, 0),
	}

	got := RenderSections("# Team Docs\n", assignments)

	for _, title := range []string{"Core Java Topics", "Backend Technologies", "Frontend Technologies"} {
		if !strings.Contains(got, "### "+title) {
			t.Errorf("expected section %q in output:\n%s", title, got)
		}
	}
	if !strings.Contains(got, "| Generics | John Smith | ✅ |") {
		t.Errorf("core java row missing:\n%s", got)
	}
	if !strings.Contains(got, "| Spring Boot | Jane Doe | ⏳ |") {
		t.Errorf("backend row missing:\n%s", got)
	}

	// Sections appear in the fixed order
	coreIdx := strings.Index(got, "### Core Java Topics")
	backendIdx := strings.Index(got, "### Backend Technologies")
	frontendIdx := strings.Index(got, "### Frontend Technologies")
	if !(coreIdx < backendIdx && backendIdx < frontendIdx) {
		t.Errorf("sections out of order:\n%s", got)
	}
}
