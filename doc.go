// Package dgpub is the Composition Root of the digital-garden publisher.
//
// It connects the publishing domain (pkg/core) with the filesystem adapters
// (pkg/adapters/fs): notes are read from a flat source directory, their YAML
// front matter decides whether they belong to the garden, and the body of each
// approved note is written to <dist>/<dg_path>/index.md only when it differs
// from what is already published. Running twice on an unchanged tree writes
// nothing the second time.
//
// Usage:
//
//	report, err := dgpub.Run(ctx,
//		dgpub.WithSource("./origin"),
//		dgpub.WithDist("./dist"),
//		dgpub.WithLogger(logger),
//	)
//	fmt.Println(report) // "3 updated files"
package dgpub
