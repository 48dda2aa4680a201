package dgpub_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/dgpub"
)

// Example_basic publishes a single note from a temporary source directory.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "dgpub-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	origin := filepath.Join(tmpDir, "origin")
	dist := filepath.Join(tmpDir, "dist")
	if err := os.MkdirAll(origin, 0755); err != nil {
		log.Fatal(err)
	}

	note := "---\ntitle: A\ndg: true\npublished: true\ndg_path: notes/a\n---\nHello"
	if err := os.WriteFile(filepath.Join(origin, "a.md"), []byte(note), 0644); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 1. First pass writes dist/notes/a/index.md
	report, err := dgpub.Run(ctx, dgpub.WithSource(origin), dgpub.WithDist(dist))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(report)

	// 2. Nothing changed, nothing is rewritten
	report, err = dgpub.Run(ctx, dgpub.WithSource(origin), dgpub.WithDist(dist))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(report)

	content, err := os.ReadFile(filepath.Join(dist, "notes", "a", "index.md"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(content))
	// Output:
	// 1 updated files
	// 0 updated files
	// Hello
}
