package core

import (
	"errors"
	"testing"
)

func TestParseMetadata_Aliases(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  string
	}{
		{
			name:  "Single String",
			block: "\naliases: My Note\n",
			want:  "My Note",
		},
		{
			name:  "List Takes First Element",
			block: "\naliases:\n  - First\n  - Second\n",
			want:  "First",
		},
		{
			name:  "Flow List",
			block: "\naliases: [Only]\n",
			want:  "Only",
		},
		{
			name:  "Empty List",
			block: "\naliases: []\n",
			want:  "",
		},
		{
			name:  "Absent",
			block: "\ntitle: No aliases here\n",
			want:  "",
		},
		{
			name:  "Null",
			block: "\naliases:\n",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetadata(tt.block)
			if err != nil {
				t.Fatalf("ParseMetadata() error = %v", err)
			}
			if got.Aliases != tt.want {
				t.Errorf("Aliases = %q, want %q", got.Aliases, tt.want)
			}
		})
	}
}

func TestParseMetadata_Fields(t *testing.T) {
	t.Run("Scalars Are Accepted As Strings", func(t *testing.T) {
		got, err := ParseMetadata("\nid: 202301011200\ntitle: 2023\ntags: [1, go]\ndg_path: 42\n")
		if err != nil {
			t.Fatalf("ParseMetadata() error = %v", err)
		}
		if got.ID != "202301011200" || got.Title != "2023" {
			t.Errorf("ID = %q, Title = %q", got.ID, got.Title)
		}
		if len(got.Tags) != 2 || got.Tags[0] != "1" {
			t.Errorf("Tags = %v", got.Tags)
		}
		if got.DGPath == nil || *got.DGPath != "42" {
			t.Errorf("DGPath = %v", got.DGPath)
		}
	})

	t.Run("Wrong Shape Is Still Rejected", func(t *testing.T) {
		for _, block := range []string{"\ndg: [x]\n", "\ntitle: {a: b}\n", "\ntags: go\n"} {
			if _, err := ParseMetadata(block); !errors.Is(err, ErrMetadataParse) {
				t.Errorf("ParseMetadata(%q) error = %v, want ErrMetadataParse", block, err)
			}
		}
	})


	block := `
id: "202301011200"
aliases:
  - Garden Entry
  - Other
title: Hello
tags: [go, garden]
createdAt: "2023-01-01 12:00"
updatedAt: "2023-02-01 08:30"
dg: true
published: true
dg_path: notes/hello
`
	got, err := ParseMetadata(block)
	if err != nil {
		t.Fatalf("ParseMetadata() error = %v", err)
	}

	if got.ID != "202301011200" {
		t.Errorf("ID = %q", got.ID)
	}
	if got.Aliases != "Garden Entry" {
		t.Errorf("Aliases = %q", got.Aliases)
	}
	if got.Title != "Hello" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "garden" {
		t.Errorf("Tags = %v", got.Tags)
	}
	if got.CreatedAt != "2023-01-01 12:00" || got.UpdatedAt != "2023-02-01 08:30" {
		t.Errorf("dates = %q / %q", got.CreatedAt, got.UpdatedAt)
	}
	if !got.DG || !got.Published {
		t.Errorf("flags = dg:%v published:%v", got.DG, got.Published)
	}
	if got.DGPath == nil || *got.DGPath != "notes/hello" {
		t.Errorf("DGPath = %v", got.DGPath)
	}
	if !got.Eligible() {
		t.Error("expected note to be eligible")
	}
}

func TestParseMetadata_Defaults(t *testing.T) {
	got, err := ParseMetadata("")
	if err != nil {
		t.Fatalf("ParseMetadata() error = %v", err)
	}
	if got.DG || got.Published {
		t.Errorf("absent flags must be false, got dg:%v published:%v", got.DG, got.Published)
	}
	if got.DGPath != nil {
		t.Errorf("absent dg_path must be nil, got %q", *got.DGPath)
	}
	if got.Eligible() {
		t.Error("empty metadata must not be eligible")
	}
}

func TestParseMetadata_EmptyDGPathIsPresent(t *testing.T) {
	got, err := ParseMetadata("\ndg_path: \"\"\n")
	if err != nil {
		t.Fatalf("ParseMetadata() error = %v", err)
	}
	if got.DGPath == nil {
		t.Fatal("an empty dg_path is still present")
	}
}

func TestParseMetadata_BothShapesFail(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{"Aliases As Map", "\naliases:\n  key: value\n"},
		{"Bad Bool", "\ndg: maybe\n"},
		{"Invalid YAML", "\nkey: : value\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMetadata(tt.block)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrMetadataParse) {
				t.Errorf("error = %v, want ErrMetadataParse", err)
			}
		})
	}
}
