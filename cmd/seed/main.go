package main

import (
	"context"
	"os"

	"notegraph-be/internal/bootstrap"
	"notegraph-be/internal/config"
	"notegraph-be/internal/dto"
	"notegraph-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

type seedNote struct {
	Title   string
	Content string
	Type    string
	Tags    []string
	Links   []string
}

// corpus is a small linked set: two clusters joined by a bridge note.
var corpus = []seedNote{
	{Title: "Graph theory", Content: "Graphs model pairwise relations between objects. Breadth-first search finds shortest paths in unweighted graphs.", Tags: []string{"math", "graphs"}, Links: []string{"Breadth-first search"}},
	{Title: "Breadth-first search", Content: "BFS explores a graph level by level from a root node using a queue.", Tags: []string{"algorithms", "graphs"}, Links: []string{"Knowledge graphs"}},
	{Title: "Knowledge graphs", Content: "A knowledge graph links notes so related ideas can be navigated and retrieved together.", Tags: []string{"graphs", "notes"}, Links: []string{"Retrieval-augmented generation"}},
	{Title: "Retrieval-augmented generation", Content: "RAG grounds a language model answer in passages retrieved from a search index.", Tags: []string{"ai", "search"}, Links: []string{"Full-text search"}},
	{Title: "Full-text search", Content: "An inverted index scores documents against query terms; title matches can be boosted.", Tags: []string{"search"}},
	{Title: "Reading list", Content: "- Graph theory\n- Retrieval-augmented generation\n- Full-text search", Type: "outline", Tags: []string{"notes"}, Links: []string{"Graph theory", "Retrieval-augmented generation"}},
}

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	container := bootstrap.NewContainer(db, cfg)
	defer container.Close()

	ctx := context.Background()
	color.Cyan("Seeding %d notes...", len(corpus))

	ids := make(map[string]uuid.UUID, len(corpus))
	for _, n := range corpus {
		res, err := container.NoteService.Create(ctx, &dto.CreateNoteRequest{
			Title:   n.Title,
			Content: n.Content,
			Type:    n.Type,
			Tags:    n.Tags,
		})
		if err != nil {
			color.Red("  failed %q: %v", n.Title, err)
			continue
		}
		ids[n.Title] = res.Id
		if res.SearchIndexed {
			color.Green("  created %q (%s)", n.Title, res.Id)
		} else {
			color.Yellow("  created %q (%s) but search index write failed", n.Title, res.Id)
		}
	}

	color.Cyan("Linking...")
	for _, n := range corpus {
		source, ok := ids[n.Title]
		if !ok {
			continue
		}
		for _, title := range n.Links {
			target, ok := ids[title]
			if !ok {
				continue
			}
			if _, err := container.NoteService.CreateLink(ctx, &dto.CreateLinkRequest{SourceId: source, TargetId: target}); err != nil {
				color.Red("  failed %q -> %q: %v", n.Title, title, err)
				continue
			}
			color.Green("  %q -> %q", n.Title, title)
		}
	}

	color.Cyan("Done.")
}
