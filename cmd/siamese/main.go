// Command siamese answers logic queries against a knowledge file or a
// rule database, one-shot or interactively.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/cognicore/siamese/pkg/siamese"
	"github.com/cognicore/siamese/pkg/siamese/config"
	"github.com/cognicore/siamese/pkg/siamese/kb"
	"github.com/cognicore/siamese/pkg/siamese/kbstore/sqlite"
	"github.com/cognicore/siamese/pkg/siamese/parse"
	"github.com/cognicore/siamese/pkg/siamese/term"
	"github.com/cognicore/siamese/pkg/siamese/trace"
)

func main() {
	var (
		kbPath   = flag.String("kb", "", "YAML knowledge file")
		dbPath   = flag.String("db", "", "SQLite rule database (alternative to -kb)")
		query    = flag.String("query", "", "One-shot query, e.g. 'sibling(john, ?S)'")
		maxSols  = flag.Int("max", 0, "Maximum solutions to print (0 = all)")
		logLevel = flag.String("log", "error", "Log verbosity: debug, info, warn, error")
	)
	flag.Parse()

	if (*kbPath == "") == (*dbPath == "") {
		log.Fatal("exactly one of -kb or -db required")
	}

	logger, err := trace.New(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	base, err := loadBase(ctx, *kbPath, *dbPath)
	if err != nil {
		log.Fatal(err)
	}

	engine := siamese.New(siamese.Options{KB: base, Logger: logger})

	if *query != "" {
		if err := runQuery(ctx, engine, *query, *maxSols); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Println("siamese interactive query shell")
	fmt.Println("Enter goals like sibling(john, ?S); Ctrl+D to exit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("?- ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runQuery(ctx, engine, line, *maxSols); err != nil {
			fmt.Println("Error:", err)
		}
	}
	fmt.Println("\nGoodbye!")
}

func loadBase(ctx context.Context, kbPath, dbPath string) (*kb.KnowledgeBase, error) {
	if kbPath != "" {
		return config.LoadKnowledge(kbPath)
	}
	store, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open rule database: %w", err)
	}
	defer store.Close()
	return store.LoadKnowledgeBase(ctx)
}

func runQuery(ctx context.Context, engine *siamese.RuleEngine, src string, max int) error {
	goal, err := parse.Goal(src)
	if err != nil {
		return err
	}

	args := make([]any, len(goal.Args))
	for i, a := range goal.Args {
		if v, ok := a.(term.Variable); ok {
			args[i] = "?" + v.Name
		} else {
			args[i] = a
		}
	}

	count := 0
	for sol := range engine.Query(ctx, goal.Functor, args...) {
		count++
		if len(sol) == 0 {
			fmt.Println("yes")
		} else {
			names := make([]string, 0, len(sol))
			for name := range sol {
				names = append(names, name)
			}
			sort.Strings(names)
			parts := make([]string, 0, len(names))
			for _, name := range names {
				parts = append(parts, fmt.Sprintf("%s = %s", name, sol[name]))
			}
			fmt.Println(strings.Join(parts, ", "))
		}
		if max > 0 && count >= max {
			break
		}
	}
	if count == 0 {
		fmt.Println("no")
	}
	return nil
}
