package cli

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/satbench/bipartgen/pkg/pipeline"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root Use = %q, want %q", root.Use, appName)
	}

	want := map[string]bool{
		"generate":   false,
		"batch":      false,
		"render":     false,
		"verify":     false,
		"cache":      false,
		"completion": false,
	}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestGenerateSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	gen := c.generateCommand()

	want := map[string]bool{"pigeon": false, "chess": false, "random": false}
	for _, sub := range gen.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("generate subcommand %q not registered", name)
		}
	}
}

func TestPipelineOptions(t *testing.T) {
	o := generateOpts{
		maxSize:  6,
		policy:   "prob",
		prob:     0.25,
		avoid:    true,
		seed:     7,
		encoding: "sinz",
		ordering: "bucket",
		refresh:  true,
	}
	got := o.pipelineOptions()

	if got.MaxMatchingSize != 6 || got.Policy != "prob" || got.BlockProb != 0.25 {
		t.Errorf("blocking options not carried over: %+v", got)
	}
	if !got.AvoidOverlap || !got.Refresh {
		t.Errorf("flags not carried over: %+v", got)
	}
	if got.Encoding != "sinz" || got.Ordering != "bucket" || got.Seed != 7 {
		t.Errorf("encoding options not carried over: %+v", got)
	}
	if got.Family != "" {
		t.Errorf("Family should be left to the subcommand, got %q", got.Family)
	}
}

func TestSuiteInstanceMerge(t *testing.T) {
	def := suiteInstance{
		Family:          pipeline.FamilyPigeonhole,
		MaxMatchingSize: 5,
		Policy:          "prob",
		BlockProb:       0.3,
		Encoding:        "linear",
		Seed:            13,
		AvoidOverlap:    true,
	}

	// An empty instance takes every default.
	got := suiteInstance{Holes: 4}.options(def)
	if got.Family != pipeline.FamilyPigeonhole || got.Holes != 4 {
		t.Errorf("family/holes = %q/%d", got.Family, got.Holes)
	}
	if got.MaxMatchingSize != 5 || got.Policy != "prob" || got.BlockProb != 0.3 {
		t.Errorf("defaults not applied: %+v", got)
	}
	if got.Encoding != "linear" || got.Seed != 13 || !got.AvoidOverlap {
		t.Errorf("defaults not applied: %+v", got)
	}

	// Explicit fields win over defaults.
	got = suiteInstance{
		Family:    pipeline.FamilyChessboard,
		BoardSize: 6,
		Variant:   "torus",
		Encoding:  "direct",
		Seed:      99,
	}.options(def)
	if got.Family != pipeline.FamilyChessboard || got.BoardSize != 6 {
		t.Errorf("instance fields overridden: %+v", got)
	}
	if got.Encoding != "direct" || got.Seed != 99 || got.Variant != "torus" {
		t.Errorf("instance fields overridden: %+v", got)
	}
	// Unset fields still fall back.
	if got.Policy != "prob" || got.MaxMatchingSize != 5 {
		t.Errorf("fallback lost: %+v", got)
	}
}

func TestSuiteInstanceName(t *testing.T) {
	if got := (suiteInstance{Name: "php-8"}).name(3); got != "php-8" {
		t.Errorf("name() = %q, want php-8", got)
	}
	if got := (suiteInstance{}).name(3); got != "instance-003" {
		t.Errorf("name() = %q, want instance-003", got)
	}
}

func TestPositiveInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"5", 5, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"four", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := positiveInt(tt.in, "size")
		if (err != nil) != tt.wantErr {
			t.Errorf("positiveInt(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("positiveInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
