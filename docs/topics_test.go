package docs

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// This test ensures that the embedded documentation is in sync with the
	// files on disk: every .md file is served as a topic, and every topic
	// loads.

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}
	var onDisk []string
	for _, file := range files {
		onDisk = append(onDisk, strings.TrimSuffix(filepath.Base(file), ".md"))
	}

	topics, err := GetAllTopics()
	if err != nil {
		t.Fatalf("failed to list topics: %v", err)
	}
	for _, want := range onDisk {
		found := false
		for _, topic := range topics {
			if topic == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("file %s.md is not served as a topic", want)
		}
	}

	for _, topic := range topics {
		t.Run("load_"+topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatalf("failed to get topic %q: %v", topic, err)
			}
			if !hasHeading(content) {
				t.Errorf("topic %q has no heading", topic)
			}
		})
	}
}

func TestGetTopicUnknown(t *testing.T) {
	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Fatal("expected an error for an unknown topic")
	}
}

func TestGetTopicAll(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatalf("failed to get all topics: %v", err)
	}
	single, err := GetTopic("readme")
	if err != nil {
		t.Fatalf("failed to get readme topic: %v", err)
	}
	if !strings.Contains(all, single) {
		t.Error("'*' does not include the readme topic")
	}
}

// hasHeading reports whether the markdown source contains at least one
// heading node.
func hasHeading(source string) bool {
	content := []byte(source)
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	found := false
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*ast.Heading); ok {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}
