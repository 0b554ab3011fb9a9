package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/askit"
	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/index"
	"github.com/poiesic/askit/router"
	"github.com/poiesic/askit/router/llm"
	"github.com/poiesic/askit/storage/badger"
	"github.com/poiesic/askit/textnorm"
)

// buildEngine assembles the engine from command-line flags.
func buildEngine(c *cli.Context) (*askit.Engine, error) {
	facts, err := loadCorpus(c.String("corpus"))
	if err != nil {
		return nil, err
	}

	normalizer, err := textnorm.NewNormalizer()
	if err != nil {
		return nil, err
	}

	corpus, err := index.Build(normalizer, facts)
	if err != nil {
		return nil, fmt.Errorf("failed to build corpus index: %w", err)
	}

	opts := []askit.Option{askit.WithNormalizer(normalizer)}
	if id := c.String("session"); id != "" {
		opts = append(opts, askit.WithSessionID(id))
	}
	if host := c.String("service-host"); host != "" {
		handler, err := llm.NewHandler(router.NewConfig(
			router.WithHost(host),
			router.WithModel(c.String("service-model")),
		))
		if err != nil {
			return nil, fmt.Errorf("failed to create service handler: %w", err)
		}
		opts = append(opts, askit.WithRouter(handler))
	}

	var engine *askit.Engine
	if dbPath := c.String("db"); dbPath != "" {
		store, err := badger.NewStore(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		engine, err = askit.New(corpus, store, opts...)
		if err != nil {
			store.Close()
			return nil, err
		}
	} else {
		engine, err = askit.New(corpus, nil, opts...)
		if err != nil {
			return nil, err
		}
	}
	return engine, nil
}

func askCommand(c *cli.Context) error {
	queryText := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if queryText == "" {
		return fmt.Errorf("usage: askit ask --corpus <file> <query>")
	}

	engine, err := buildEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	resp := engine.ProcessQuery(context.Background(), queryText)
	printResponse(resp)
	return nil
}

func replCommand(c *cli.Context) error {
	engine, err := buildEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	fmt.Printf("askit session %s. Type a question, or :help for commands.\n", engine.Session().ID())

	var last core.Response
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == ":quit" || line == ":q":
			return nil

		case line == ":help":
			fmt.Println("  :save <text>   bookmark a query (defaults to the last one)")
			fmt.Println("  :marks         list bookmarks")
			fmt.Println("  :up <n>        upvote the document behind citation [n]")
			fmt.Println("  :down <n>      downvote the document behind citation [n]")
			fmt.Println("  :quit          exit")

		case strings.HasPrefix(line, ":save"):
			text := strings.TrimSpace(strings.TrimPrefix(line, ":save"))
			if text == "" && len(engine.Session().History()) > 0 {
				recent := engine.Session().Recent(1)
				text = recent[0].Query
			}
			if text == "" {
				fmt.Println("nothing to save")
				break
			}
			engine.SaveQuery(ctx, text)
			fmt.Printf("saved %q\n", text)

		case line == ":marks":
			for _, b := range engine.Bookmarks() {
				fmt.Printf("  %s  (%s)\n", b.Text, b.SavedAt.Format("2006-01-02 15:04"))
			}

		case strings.HasPrefix(line, ":up") || strings.HasPrefix(line, ":down"):
			if err := applyFeedbackLine(ctx, engine, last, line); err != nil {
				fmt.Println(err)
			}

		case line != "":
			last = engine.ProcessQuery(ctx, line)
			printResponse(last)
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

// applyFeedbackLine parses ":up <n>" / ":down <n>" against the citation
// map of the last response.
func applyFeedbackLine(ctx context.Context, engine *askit.Engine, last core.Response, line string) error {
	delta := 1
	rest := strings.TrimPrefix(line, ":up")
	if strings.HasPrefix(line, ":down") {
		delta = -1
		rest = strings.TrimPrefix(line, ":down")
	}

	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return fmt.Errorf("usage: :up <citation number>")
	}
	docID, ok := last.Citations[n]
	if !ok {
		return fmt.Errorf("no citation [%d] in the last answer", n)
	}
	if err := engine.ApplyFeedback(ctx, docID, delta); err != nil {
		return err
	}
	fmt.Printf("feedback recorded for [%d]\n", n)
	return nil
}

func seedCommand(c *cli.Context) error {
	path := c.String("out")
	if err := writeSampleCorpus(path); err != nil {
		return fmt.Errorf("failed to write sample corpus: %w", err)
	}
	fmt.Printf("wrote sample corpus to %s\n", path)
	return nil
}

func printResponse(resp core.Response) {
	fmt.Println(resp.Main)
	for _, s := range resp.Supporting {
		fmt.Printf("  - %s\n", s)
	}

	if len(resp.Citations) > 0 {
		indices := make([]int, 0, len(resp.Citations))
		for idx := range resp.Citations {
			indices = append(indices, idx)
		}
		sort.Ints(indices)
		refs := make([]string, 0, len(indices))
		for _, idx := range indices {
			refs = append(refs, fmt.Sprintf("[%d]=doc %d", idx, resp.Citations[idx]))
		}
		fmt.Printf("citations: %s\n", strings.Join(refs, " "))
	}

	if len(resp.Suggestions) > 0 {
		fmt.Printf("try: %s\n", strings.Join(resp.Suggestions, " | "))
	}
}
