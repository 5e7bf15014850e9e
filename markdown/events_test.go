package markdown

import (
	"errors"
	"testing"

	"shiva/document"
)

func TestTokenize_InvalidUTF8(t *testing.T) {
	_, err := Tokenize([]byte{0xff, 0xfe, 0xfd})
	if !errors.Is(err, document.ErrInvalidEncoding) {
		t.Fatalf("Tokenize() error = %v, want ErrInvalidEncoding", err)
	}
}

func TestTokenize_Headers(t *testing.T) {
	events, err := Tokenize([]byte("# Header 1\n\n## Header 2\n\n### Header 3"))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	expected := []Event{
		{Kind: KindStart, Tag: TagHeading, Level: 1},
		{Kind: KindText, Text: "Header 1"},
		{Kind: KindEnd, Tag: TagHeading, Level: 1},
		{Kind: KindStart, Tag: TagHeading, Level: 2},
		{Kind: KindText, Text: "Header 2"},
		{Kind: KindEnd, Tag: TagHeading, Level: 2},
		{Kind: KindStart, Tag: TagHeading, Level: 3},
		{Kind: KindText, Text: "Header 3"},
		{Kind: KindEnd, Tag: TagHeading, Level: 3},
	}

	if len(events) != len(expected) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(expected), events)
	}
	for i, ev := range events {
		if ev != expected[i] {
			t.Errorf("event[%d] = %+v, want %+v", i, ev, expected[i])
		}
	}
}

func TestTokenize_SoftBreakMerging(t *testing.T) {
	events, err := Tokenize([]byte("line one\nline two"))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	expected := []Event{
		{Kind: KindStart, Tag: TagParagraph},
		{Kind: KindText, Text: "line one line two"},
		{Kind: KindEnd, Tag: TagParagraph},
	}
	if len(events) != len(expected) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(expected), events)
	}
	for i, ev := range events {
		if ev != expected[i] {
			t.Errorf("event[%d] = %+v, want %+v", i, ev, expected[i])
		}
	}
}

func TestTokenize_TableCellsStaySeparate(t *testing.T) {
	src := "| A | B |\n| --- | --- |\n| c | d |\n"
	events, err := Tokenize([]byte(src))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	var texts []string
	for _, ev := range events {
		if ev.Kind == KindText {
			texts = append(texts, ev.Text)
		}
	}
	want := []string{"A", "B", "c", "d"}
	if len(texts) != len(want) {
		t.Fatalf("got %d text runs %v, want %v", len(texts), texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("text[%d] = %q, want %q", i, texts[i], want[i])
		}
	}

	// head scope must open before the first cell and close before data rows
	var sawHeadStart, sawHeadEnd bool
	for _, ev := range events {
		if ev.Tag == TagTableHead {
			if ev.Kind == KindStart {
				sawHeadStart = true
			} else {
				sawHeadEnd = true
			}
		}
	}
	if !sawHeadStart || !sawHeadEnd {
		t.Errorf("table head scope missing: start=%v end=%v", sawHeadStart, sawHeadEnd)
	}
}

func TestTokenize_ListShape(t *testing.T) {
	events, err := Tokenize([]byte("- one\n- two\n"))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	var listStarts, itemStarts, paraStarts int
	for _, ev := range events {
		if ev.Kind != KindStart {
			continue
		}
		switch ev.Tag {
		case TagList:
			listStarts++
			if ev.Numbered {
				t.Error("bullet list reported as numbered")
			}
		case TagItem:
			itemStarts++
		case TagParagraph:
			paraStarts++
		}
	}
	if listStarts != 1 {
		t.Errorf("list starts = %d, want 1", listStarts)
	}
	if itemStarts != 2 {
		t.Errorf("item starts = %d, want 2", itemStarts)
	}
	// paragraph wrappers inside list items are transparent
	if paraStarts != 0 {
		t.Errorf("paragraph starts = %d, want 0", paraStarts)
	}
}

func TestTokenize_OrderedList(t *testing.T) {
	events, err := Tokenize([]byte("1. one\n2. two\n"))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	for _, ev := range events {
		if ev.Kind == KindStart && ev.Tag == TagList && !ev.Numbered {
			t.Error("ordered list reported as unnumbered")
		}
	}
}

func TestTokenize_LinkCarriesDestination(t *testing.T) {
	events, err := Tokenize([]byte("[Example](https://example.com/ \"tip\")"))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	var found bool
	for _, ev := range events {
		if ev.Kind == KindStart && ev.Tag == TagLink {
			found = true
			if ev.URL != "https://example.com/" {
				t.Errorf("link URL = %q, want %q", ev.URL, "https://example.com/")
			}
			if ev.Title != "tip" {
				t.Errorf("link title = %q, want %q", ev.Title, "tip")
			}
		}
	}
	if !found {
		t.Error("no link start event emitted")
	}
}

func TestTokenize_EmphasisIsOpaqueButTextFlows(t *testing.T) {
	events, err := Tokenize([]byte("plain **bold** tail"))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	var other int
	var texts []string
	for _, ev := range events {
		if ev.Tag == TagOther {
			other++
			if ev.Kind == KindStart && ev.Name == "" {
				t.Error("unrecognized scope lost its node kind name")
			}
		}
		if ev.Kind == KindText {
			texts = append(texts, ev.Text)
		}
	}
	if other == 0 {
		t.Error("emphasis did not surface as an unrecognized scope")
	}
	joined := ""
	for _, s := range texts {
		joined += s
	}
	if joined != "plain bold tail" {
		t.Errorf("flattened text = %q, want %q", joined, "plain bold tail")
	}
}
