// ABOUTME: Chapter note export, rendering markdown note content to HTML
// ABOUTME: Notes are written as markdown; export produces a standalone page

package goals

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"time"

	"github.com/yuin/goldmark"
)

// ExportChapterNotes renders a chapter's notes as a standalone HTML
// document. Note content is treated as markdown.
func (s *Service) ExportChapterNotes(ctx context.Context, chapterID string) ([]byte, error) {
	chapter, err := s.store.GetChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	notes, err := s.store.ListNotes(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n",
		html.EscapeString(chapter.Title))
	fmt.Fprintf(&buf, "<h1>%s</h1>\n", html.EscapeString(chapter.Title))

	for _, note := range notes {
		fmt.Fprintf(&buf, "<article>\n<time>%s</time>\n",
			note.CreatedAt.Format(time.RFC3339))
		if err := goldmark.Convert([]byte(note.Content), &buf); err != nil {
			return nil, fmt.Errorf("rendering note %s: %w", note.ID, err)
		}
		buf.WriteString("</article>\n")
	}

	buf.WriteString("</body>\n</html>\n")

	s.logger.Debug("exported chapter notes", "chapter", chapter.Title, "notes", len(notes))
	return buf.Bytes(), nil
}
