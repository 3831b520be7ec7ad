package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sayitbetter/journalsync/internal/models"
)

// Add collects a new journal entry interactively and saves it locally.
// Syncing is a separate, explicit step.
func (a *App) Add(ctx context.Context) error {
	raw, err := GetMultiline(a.reader, "What happened? (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}
	if raw == "" {
		return fmt.Errorf("entry text is required")
	}

	toneText, err := getSimpleText(a.reader, "Tone [neutral/personal/clinical] (default neutral)", os.Stdout)
	if err != nil {
		return err
	}
	tone, err := parseTone(toneText)
	if err != nil {
		return err
	}

	entry := models.NewEntry(raw, tone)

	summary, err := getSimpleText(a.reader, "One-line summary (optional)", os.Stdout)
	if err != nil {
		return err
	}
	entry.Summary = summary

	themes, err := getSimpleText(a.reader, "Themes, comma separated (optional)", os.Stdout)
	if err != nil {
		return err
	}
	for _, th := range strings.Split(themes, ",") {
		th = strings.TrimSpace(th)
		if th != "" {
			entry.Themes = append(entry.Themes, models.ThemeRef{Theme: th})
		}
	}

	if err := a.repo.Save(ctx, entry); err != nil {
		return err
	}
	fmt.Printf("Saved entry %s\n", entry.ID)
	return nil
}

func parseTone(s string) (models.Tone, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(models.ToneNeutral):
		return models.ToneNeutral, nil
	case string(models.TonePersonal):
		return models.TonePersonal, nil
	case string(models.ToneClinical):
		return models.ToneClinical, nil
	default:
		return "", fmt.Errorf("unknown tone: %s", s)
	}
}

// List prints a short line per active entry, newest first.
func (a *App) List(ctx context.Context) error {
	items, err := a.repo.GetActive(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No entries yet.")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%s  %s  %s\n", item.ID, item.Date, summaryLine(item))
	}
	return nil
}

// summaryLine picks the best one-line representation for list output.
func summaryLine(e models.Entry) string {
	s := e.Summary
	if s == "" {
		s = e.RawInput
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return s
}

// Show fetches and displays a single entry by ID.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id to show", os.Stdout)
	if err != nil {
		return err
	}

	entry, err := a.repo.GetByID(ctx, models.EntryID(id))
	if err != nil {
		return err
	}

	fmt.Printf("ID: %s\nDate: %s\nTone: %s\n", entry.ID, entry.Date, entry.Tone)
	if entry.Deleted {
		fmt.Println("(deleted)")
	}
	fmt.Println(entry.RawInput)
	if entry.Summary != "" {
		fmt.Println("Summary:", entry.Summary)
	}
	for _, th := range entry.Themes {
		if th.Description != "" {
			fmt.Printf("Theme: %s — %s\n", th.Theme, th.Description)
		} else {
			fmt.Println("Theme:", th.Theme)
		}
	}
	if entry.ShareReady != "" {
		fmt.Println("Share-ready:", entry.ShareReady)
	}
	return nil
}

// Delete soft-deletes an entry by its identifier, prompting the user for the
// ID. The tombstone propagates on the next sync.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id to delete", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.repo.SoftDelete(ctx, models.EntryID(id)); err != nil {
		return err
	}
	fmt.Println("Deleted. The removal propagates on the next sync.")
	return nil
}
