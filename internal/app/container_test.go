package app

import (
	"context"
	"testing"
)

func buildTestContainer(t *testing.T) *Container {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USE_LLM_QUESTIONS", "")
	t.Setenv("FOXBRIEF_CONFIG", "")

	container, err := BuildContainer(context.Background(), false)
	if err != nil {
		t.Fatalf("BuildContainer() error = %v", err)
	}
	return container
}

func TestBuildContainerDefaultStrategies(t *testing.T) {
	container := buildTestContainer(t)

	if got := len(container.selector.Strategies); got != 1 {
		t.Fatalf("got %d strategies, want only the template fallback", got)
	}
	if name := container.selector.Strategies[0].Name(); name != "template" {
		t.Errorf("default strategy = %q, want template", name)
	}
}

func TestEnableLLMQuestions(t *testing.T) {
	container := buildTestContainer(t)

	container.EnableLLMQuestions()
	names := make([]string, 0, len(container.selector.Strategies))
	for _, s := range container.selector.Strategies {
		names = append(names, s.Name())
	}
	want := []string{"workspace", "openai", "template"}
	if len(names) != len(want) {
		t.Fatalf("strategies = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("strategies = %v, want %v", names, want)
		}
	}

	// A second call must not duplicate the chain.
	container.EnableLLMQuestions()
	if got := len(container.selector.Strategies); got != 3 {
		t.Errorf("got %d strategies after repeated enable, want 3", got)
	}
}

func TestEnableLLMQuestionsViaConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USE_LLM_QUESTIONS", "true")
	t.Setenv("FOXBRIEF_CONFIG", "")

	container, err := BuildContainer(context.Background(), false)
	if err != nil {
		t.Fatalf("BuildContainer() error = %v", err)
	}
	if got := len(container.selector.Strategies); got != 3 {
		t.Fatalf("got %d strategies with USE_LLM_QUESTIONS=true, want 3", got)
	}
}
