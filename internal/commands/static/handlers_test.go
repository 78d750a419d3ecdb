package staticcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-corpus/internal/generator"
	goerrors "github.com/goliatone/go-errors"
)

type stubGenerator struct {
	buildCalls []generator.BuildOptions
	cleanCalls int

	buildResult *generator.BuildResult
	buildErr    error
	cleanErr    error
}

func (s *stubGenerator) Build(_ context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	s.buildCalls = append(s.buildCalls, opts)
	if s.buildErr != nil {
		return nil, s.buildErr
	}
	return s.buildResult, nil
}

func (s *stubGenerator) Clean(context.Context) error {
	s.cleanCalls++
	return s.cleanErr
}

func enabledGates() FeatureGates {
	return FeatureGates{GeneratorEnabled: func() bool { return true }}
}

func TestBuildSiteHandlerExecutesBuild(t *testing.T) {
	service := &stubGenerator{
		buildResult: &generator.BuildResult{PagesBuilt: 3},
	}
	var envelope ResultEnvelope
	handler := NewBuildSiteHandler(service, nil, enabledGates())

	err := handler.Execute(context.Background(), BuildSiteCommand{
		Slugs:  []string{"first-post", "First-Post", " "},
		DryRun: true,
		ResultCallback: func(e ResultEnvelope) {
			envelope = e
		},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(service.buildCalls) != 1 {
		t.Fatalf("expected 1 build call, got %d", len(service.buildCalls))
	}
	opts := service.buildCalls[0]
	if len(opts.Slugs) != 1 || opts.Slugs[0] != "first-post" {
		t.Errorf("expected deduplicated slugs, got %v", opts.Slugs)
	}
	if !opts.DryRun {
		t.Error("expected dry run forwarded")
	}
	if envelope.Result == nil || envelope.Result.PagesBuilt != 3 {
		t.Errorf("expected result delivered to callback, got %+v", envelope.Result)
	}
	if envelope.Metadata["operation"] != "build" {
		t.Errorf("unexpected callback metadata %v", envelope.Metadata)
	}
}

func TestBuildSiteHandlerBlankSlugsRunFullBuild(t *testing.T) {
	service := &stubGenerator{
		buildResult: &generator.BuildResult{},
	}
	handler := NewBuildSiteHandler(service, nil, enabledGates())

	err := handler.Execute(context.Background(), BuildSiteCommand{Slugs: []string{"", " "}})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(service.buildCalls) != 1 {
		t.Fatalf("expected 1 build call, got %d", len(service.buildCalls))
	}
	// Blank entries are discarded; an empty filter means an unrestricted build.
	if len(service.buildCalls[0].Slugs) != 0 {
		t.Errorf("expected no slug filter, got %v", service.buildCalls[0].Slugs)
	}
}

func TestBuildSiteHandlerGeneratorDisabled(t *testing.T) {
	service := &stubGenerator{}
	handler := NewBuildSiteHandler(service, nil, FeatureGates{})

	err := handler.Execute(context.Background(), BuildSiteCommand{})
	if !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

func TestDiffSiteHandlerForcesDryRun(t *testing.T) {
	service := &stubGenerator{
		buildResult: &generator.BuildResult{DryRun: true},
	}
	handler := NewDiffSiteHandler(service, nil, enabledGates())

	if err := handler.Execute(context.Background(), DiffSiteCommand{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(service.buildCalls) != 1 {
		t.Fatalf("expected 1 build call, got %d", len(service.buildCalls))
	}
	if !service.buildCalls[0].DryRun {
		t.Error("expected diff to run as dry run")
	}
}

func TestCleanSiteHandlerDelegates(t *testing.T) {
	service := &stubGenerator{}
	handler := NewCleanSiteHandler(service, nil, enabledGates())

	if err := handler.Execute(context.Background(), CleanSiteCommand{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if service.cleanCalls != 1 {
		t.Fatalf("expected 1 clean call, got %d", service.cleanCalls)
	}
}

func TestCleanSiteHandlerPropagatesError(t *testing.T) {
	service := &stubGenerator{cleanErr: errors.New("locked")}
	handler := NewCleanSiteHandler(service, nil, enabledGates())

	err := handler.Execute(context.Background(), CleanSiteCommand{})
	if err == nil {
		t.Fatal("expected error from clean")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
