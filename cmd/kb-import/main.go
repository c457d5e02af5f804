// Command kb-import loads a YAML knowledge document into a SQLite rule
// database for later serving by the siamese CLI.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/cognicore/siamese/pkg/siamese/config"
	"github.com/cognicore/siamese/pkg/siamese/kbstore/sqlite"
)

func main() {
	var (
		kbPath     = flag.String("kb", "", "YAML knowledge file (required)")
		dbPath     = flag.String("db", "", "SQLite rule database to write (required)")
		appendMode = flag.Bool("append", false, "Append rules instead of replacing the database contents")
	)
	flag.Parse()

	if *kbPath == "" {
		log.Fatal("-kb required")
	}
	if *dbPath == "" {
		log.Fatal("-db required")
	}

	ctx := context.Background()

	rules, err := config.LoadRules(*kbPath)
	if err != nil {
		log.Fatal(err)
	}

	store, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	if *appendMode {
		for _, r := range rules {
			if err := store.AppendRule(ctx, r); err != nil {
				log.Fatal(err)
			}
		}
	} else {
		if err := store.ReplaceRules(ctx, rules); err != nil {
			log.Fatal(err)
		}
	}

	n, err := store.RuleCount(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("imported %d rules from %s into %s (%d total)", len(rules), *kbPath, *dbPath, n)
}
