// ABOUTME: book subcommands: add (with Google Books search), progress, chapter, note
// ABOUTME: Page updates outside the book's page count are rejected

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stridelog/stride/internal/books"
	"github.com/stridelog/stride/internal/format"
)

func newBookCmd() *cobra.Command {
	book := &cobra.Command{Use: "book", Short: "Manage books under a reading goal"}

	var goalID, author string
	var pageCount int
	var search bool

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a book to a reading goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			title := args[0]

			if search {
				client := &books.Client{}
				volumes, err := client.Search(cmd.Context(), title, 5)
				if err != nil {
					return err
				}
				v, err := pickVolume(volumes)
				if err != nil {
					return err
				}
				title = v.Title
				if author == "" {
					author = v.Author()
				}
				if pageCount == 0 {
					pageCount = v.PageCount
				}
			}

			b, err := app.goals.AddBook(cmd.Context(), goalID, title, author, pageCount)
			if err != nil {
				return err
			}

			green := color.New(color.FgGreen)
			green.Printf("Added %q (%d pages)\n", b.Title, b.PageCount)
			fmt.Printf("  id: %s\n", b.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&goalID, "goal", "", "goal id")
	addCmd.Flags().StringVar(&author, "author", "", "book author")
	addCmd.Flags().IntVar(&pageCount, "pages", 0, "total page count")
	addCmd.Flags().BoolVar(&search, "search", false, "look up metadata on Google Books")
	_ = addCmd.MarkFlagRequired("goal")

	progressCmd := &cobra.Command{
		Use:   "progress <book-id> <page>",
		Short: "Update the current page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			page, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("page must be a number: %w", err)
			}

			b, err := app.goals.UpdateBookProgress(cmd.Context(), args[0], page)
			if err != nil {
				return err
			}

			fmt.Printf("%s: %s\n", b.Title, format.Progress(b.CurrentPage, b.PageCount))
			return nil
		},
	}

	var bookID string
	var position int
	chapterCmd := &cobra.Command{
		Use:   "chapter <title>",
		Short: "Add a chapter to a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			c, err := app.goals.AddChapter(cmd.Context(), bookID, args[0], position)
			if err != nil {
				return err
			}
			fmt.Printf("Added chapter %d: %s\n", c.Position, c.Title)
			fmt.Printf("  id: %s\n", c.ID)
			return nil
		},
	}
	chapterCmd.Flags().StringVar(&bookID, "book", "", "book id")
	chapterCmd.Flags().IntVar(&position, "position", 0, "chapter position (default: next)")
	_ = chapterCmd.MarkFlagRequired("book")

	book.AddCommand(addCmd, progressCmd, chapterCmd, newNoteCmd())
	return book
}

func newNoteCmd() *cobra.Command {
	note := &cobra.Command{Use: "note", Short: "Manage chapter notes"}

	var chapterID string
	addCmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Attach a note to a chapter (markdown)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			n, err := app.goals.AddNote(cmd.Context(), chapterID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Noted (%s).\n", n.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&chapterID, "chapter", "", "chapter id")
	_ = addCmd.MarkFlagRequired("chapter")

	var out string
	exportCmd := &cobra.Command{
		Use:   "export <chapter-id>",
		Short: "Export a chapter's notes as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			html, err := app.goals.ExportChapterNotes(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = os.Stdout.Write(html)
				return err
			}
			if err := os.WriteFile(out, html, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	note.AddCommand(addCmd, exportCmd)
	return note
}

// pickVolume asks the user to choose one of the search results.
func pickVolume(volumes []books.Volume) (books.Volume, error) {
	if len(volumes) == 0 {
		return books.Volume{}, fmt.Errorf("no search results")
	}
	if len(volumes) == 1 {
		return volumes[0], nil
	}

	for i, v := range volumes {
		fmt.Printf("%d) %s — %s (%d pages)\n", i+1, v.Title, v.Author(), v.PageCount)
	}
	fmt.Print("Pick one: ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return books.Volume{}, fmt.Errorf("reading selection: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(volumes) {
		return books.Volume{}, fmt.Errorf("invalid selection %q", strings.TrimSpace(line))
	}
	return volumes[n-1], nil
}
