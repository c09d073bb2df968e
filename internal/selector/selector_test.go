package selector

import (
	"context"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw      string
		ok       bool
		expected Selector
	}{
		{"#element1", true, Selector{Raw: "#element1", Kind: ByID, Name: "element1"}},
		{".className", true, Selector{Raw: ".className", Kind: ByClass, Name: "className"}},
		{"h1", true, Selector{Raw: "h1", Kind: ByTag, Name: "h1"}},
		{"custom-element", true, Selector{Raw: "custom-element", Kind: ByTag, Name: "custom-element"}},
		{"  .price ", true, Selector{Raw: ".price", Kind: ByClass, Name: "price"}},
		{"#", true, Selector{Raw: "#", Kind: ByID, Name: ""}},
		{"", false, Selector{}},
		{"   ", false, Selector{}},
		{"123-bad!", false, Selector{}},
		{"div > p", false, Selector{}},
		{"a[href]", false, Selector{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s, ok := Parse(tt.raw)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v; want %v", tt.raw, ok, tt.ok)
			}
			if s != tt.expected {
				t.Fatalf("Parse(%q) = %#v; want %#v", tt.raw, s, tt.expected)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	got := ParseList("#content, .price,h1,,123-bad!,h1,")
	expected := []string{"#content", ".price", "h1"}
	raws := []string{}
	for _, s := range got {
		raws = append(raws, s.Raw)
	}
	if diff := cmp.Diff(expected, raws); diff != "" {
		t.Fatalf("unexpected selectors (-want +got):\n%s", diff)
	}

	if empty := ParseList(""); len(empty) != 0 {
		t.Fatalf("expected no selectors, got %v", empty)
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		selectors string
		expected  map[string][]string
	}{
		{
			name:      "id selector",
			body:      `<div id="content">Hello</div>`,
			selectors: "#content",
			expected:  map[string][]string{"#content": {"Hello"}},
		},
		{
			name:      "id selector without match is empty, not absent",
			body:      `<div id="content">Hello</div>`,
			selectors: "#x",
			expected:  map[string][]string{"#x": {}},
		},
		{
			name: "class selector matches whole tokens only",
			body: `<span class="price featured">10 EUR</span>
				<span class="old-price">12 EUR</span>
				<span class="pricey">13 EUR</span>`,
			selectors: ".price",
			expected:  map[string][]string{".price": {"10 EUR"}},
		},
		{
			name:      "class tokens split on any html whitespace",
			body:      "<p class=\"a\tprice\nb\">x</p>",
			selectors: ".price",
			expected:  map[string][]string{".price": {"x"}},
		},
		{
			name:      "tag selector keeps document order and nested text",
			body:      `<ul><li>a</li><li>b<ul><li>c</li></ul></li></ul>`,
			selectors: "li",
			expected:  map[string][]string{"li": {"a", "bc", "c"}},
		},
		{
			name:      "tag selector is case insensitive",
			body:      `<h1>  Titolo principale </h1>`,
			selectors: "H1",
			expected:  map[string][]string{"H1": {"Titolo principale"}},
		},
		{
			name:      "invalid tag tokens are omitted",
			body:      `<p>x</p>`,
			selectors: "p,123-bad!",
			expected:  map[string][]string{"p": {"x"}},
		},
		{
			name:      "malformed html",
			body:      `<div id="x"><p>one<p>two</div><span class=a>three`,
			selectors: "p,.a,#x",
			expected: map[string][]string{
				"p":  {"one", "two"},
				".a": {"three"},
				"#x": {"onetwo"},
			},
		},
		{
			name:      "empty id matches elements with an empty id attribute",
			body:      `<p id="">x</p><p>y</p><p id="z">z</p>`,
			selectors: "#",
			expected:  map[string][]string{"#": {"x"}},
		},
		{
			name:      "empty class matches nothing",
			body:      `<p class="">x</p><p class="a">y</p>`,
			selectors: ".",
			expected:  map[string][]string{".": {}},
		},
		{
			name:      "empty body",
			body:      ``,
			selectors: "div,#a",
			expected:  map[string][]string{"div": {}, "#a": {}},
		},
		{
			name:      "non ascii text",
			body:      `<div class="t">Творча майстерня</div>`,
			selectors: ".t",
			expected:  map[string][]string{".t": {"Творча майстерня"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := Extract(context.Background(), tt.body, ParseList(tt.selectors))
			if diff := cmp.Diff(tt.expected, values.Map()); diff != "" {
				t.Fatalf("unexpected values (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractKeepsSelectorOrder(t *testing.T) {
	selectors := ParseList("h1,#content,.price")
	values := Extract(context.Background(), `<div id="content">Hello</div>`, selectors)
	if diff := cmp.Diff([]string{"h1", "#content", ".price"}, values.Keys()); diff != "" {
		t.Fatalf("unexpected key order (-want +got):\n%s", diff)
	}
}

func TestMatchTagCase(t *testing.T) {
	tests := []struct {
		selector string
		body     string
		expected bool
	}{
		{"h1", `<h1>x</h1>`, true},
		{"H1", `<h1>x</h1>`, true},
		{"h1", `<H1>x</H1>`, true},
		{"H1", `<h2>x</h2>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.selector+" "+tt.body, func(t *testing.T) {
			s, ok := Parse(tt.selector)
			if !ok {
				t.Fatalf("expected %q to parse", tt.selector)
			}
			doc, err := html.Parse(strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("got unexpected error: %v", err)
			}
			got := len(cascadia.QueryAll(doc, s)) > 0
			if got != tt.expected {
				t.Fatalf("expected match %t for %q against %s, got %t", tt.expected, tt.selector, tt.body, got)
			}
		})
	}
}
