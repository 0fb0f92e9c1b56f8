// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/servit"
	"github.com/poiesic/servit/search"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	if err := run(); err != nil {
		slog.Error("searcher failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	db, err := servit.NewDatabase("./services_db")
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}

	query := "ac repair"
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}

	results := searcher.Search(context.Background(), search.SearchRequest{Query: query})

	fmt.Printf("%d hits for %q\n", len(results), query)
	for i, hit := range results {
		fmt.Printf("%2d. %s (%s) in %s score=%.3f\n",
			i+1, hit.Record.Name, hit.Record.Category, hit.Record.Location, hit.Score)
	}
	return nil
}
