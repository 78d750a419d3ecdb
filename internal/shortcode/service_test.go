package shortcode

import (
	"context"
	"strings"
	"testing"
)

func TestServiceProcessImageShortcode(t *testing.T) {
	service, err := NewDefaultService()
	if err != nil {
		t.Fatalf("NewDefaultService returned error: %v", err)
	}

	content := `Before {{% image src="/images/chart.png" alt="benchmark chart" %}} after`
	output, err := service.Process(context.Background(), content)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if !strings.Contains(output, `<img src="/images/chart.png"`) {
		t.Errorf("expected img tag in output: %s", output)
	}
	if !strings.Contains(output, "Before ") || !strings.Contains(output, " after") {
		t.Errorf("surrounding text lost: %s", output)
	}
	if strings.Contains(output, "shortcode:0") {
		t.Errorf("placeholder not substituted: %s", output)
	}
}

func TestServiceProcessGithubPositional(t *testing.T) {
	service, err := NewDefaultService()
	if err != nil {
		t.Fatalf("NewDefaultService returned error: %v", err)
	}

	output, err := service.Process(context.Background(), `{{% github goliatone/go-corpus %}}`)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if !strings.Contains(output, `href="https://github.com/goliatone/go-corpus"`) {
		t.Errorf("expected repo link in output: %s", output)
	}
}

func TestServiceProcessMultipleShortcodes(t *testing.T) {
	service, err := NewDefaultService()
	if err != nil {
		t.Fatalf("NewDefaultService returned error: %v", err)
	}

	content := `{{% image src="/a.png" %}}

Some prose.

{{% github goliatone/hashid %}}`
	output, err := service.Process(context.Background(), content)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if !strings.Contains(output, "/a.png") {
		t.Errorf("first shortcode missing: %s", output)
	}
	if !strings.Contains(output, "goliatone/hashid") {
		t.Errorf("second shortcode missing: %s", output)
	}
	if !strings.Contains(output, "Some prose.") {
		t.Errorf("prose between shortcodes lost: %s", output)
	}
}

func TestServiceProcessUnknownShortcodeFails(t *testing.T) {
	service, err := NewDefaultService()
	if err != nil {
		t.Fatalf("NewDefaultService returned error: %v", err)
	}

	if _, err := service.Process(context.Background(), `{{% mystery %}}`); err == nil {
		t.Fatal("expected error for unregistered shortcode")
	}
}

func TestServiceProcessEmptyContent(t *testing.T) {
	service, err := NewDefaultService()
	if err != nil {
		t.Fatalf("NewDefaultService returned error: %v", err)
	}

	output, err := service.Process(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if output != "   " {
		t.Errorf("expected content untouched, got %q", output)
	}
}

func TestNoOpServicePassthrough(t *testing.T) {
	service := NewNoOpService()

	content := `{{% image src="/a.png" %}}`
	output, err := service.Process(context.Background(), content)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if output != content {
		t.Errorf("no-op service modified content: %q", output)
	}
}
