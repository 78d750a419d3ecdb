package validation

import (
	"errors"
	"testing"
)

func TestValidateFrontMatterAcceptsTypicalMetadata(t *testing.T) {
	payload := map[string]any{
		"title":      "Structuring Go Applications",
		"categories": []any{"golang", "architecture"},
		"date":       "2015-10-26T08:40:11+02:00",
		"modified":   "2016-01-10T10:00:00+02:00",
		"authors":    []any{"goliatone"},
		"excerpt":    "Notes on layering Go services.",
		"image":      "/images/structure.png",
		"url":        "structuring-go-applications",
	}

	if err := ValidateFrontMatter(payload); err != nil {
		t.Fatalf("ValidateFrontMatter returned error: %v", err)
	}
}

func TestValidateFrontMatterAllowsScalarCategory(t *testing.T) {
	payload := map[string]any{
		"title":    "Quick Note",
		"category": "golang",
		"author":   "goliatone",
	}

	if err := ValidateFrontMatter(payload); err != nil {
		t.Fatalf("ValidateFrontMatter returned error: %v", err)
	}
}

func TestValidateFrontMatterRequiresTitle(t *testing.T) {
	err := ValidateFrontMatter(map[string]any{"categories": []any{"golang"}})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}

	issues := Issues(err)
	if len(issues) == 0 {
		t.Fatal("expected at least one issue")
	}
}

func TestValidateFrontMatterAllowsCustomKeys(t *testing.T) {
	payload := map[string]any{
		"title":     "Custom Things",
		"tangents":  []any{"one", "two"},
		"wordcount": float64(1200),
	}

	if err := ValidateFrontMatter(payload); err != nil {
		t.Fatalf("ValidateFrontMatter returned error: %v", err)
	}
}

func TestValidatePayloadReportsLocations(t *testing.T) {
	err := ValidateFrontMatter(map[string]any{
		"title": "Bad Draft Flag",
		"draft": "yes",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var payloadErr *PayloadValidationError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected PayloadValidationError, got %T", err)
	}
	found := false
	for _, issue := range payloadErr.Issues {
		if issue.Location == "/draft" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected issue at /draft, got %v", payloadErr.Issues)
	}
}

func TestValidateSchemaRejectsMalformed(t *testing.T) {
	err := ValidateSchema(map[string]any{
		"type": 12,
	})
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestValidateEmptySchemaIsNoOp(t *testing.T) {
	if err := ValidateSchema(nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := ValidatePayload(nil, map[string]any{"anything": true}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
