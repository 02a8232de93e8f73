package memory

import (
	"context"
	"testing"
	"time"

	"websafe-game-service/internal/domain"
)

func TestCatalogRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		CatalogLoader: NewStaticCatalogLoader(sampleCatalog()),
	}
	repo := NewCatalogRepository(loader, time.Minute)

	if _, err := repo.GetCatalog(context.Background()); err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetCatalog(context.Background()); err != nil {
		t.Fatalf("get catalog 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestStaticLoaderEmptyCatalog(t *testing.T) {
	loader := NewStaticCatalogLoader(nil)
	if _, err := loader.LoadCatalog(context.Background()); err != domain.ErrCatalogUnavailable {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

type countingLoader struct {
	CatalogLoader
	calls int
}

func (l *countingLoader) LoadCatalog(ctx context.Context) ([]domain.Scenario, error) {
	l.calls++
	return l.CatalogLoader.LoadCatalog(ctx)
}

func sampleCatalog() []domain.Scenario {
	two := 2.0
	return []domain.Scenario{
		{
			ID:              "mc-1",
			Difficulty:      domain.DifficultyBeginner,
			InteractionType: domain.InteractionMultipleChoice,
			Options:         []string{"a", "b", "c"},
			CorrectAnswer:   domain.AnswerKey{Number: &two},
		},
	}
}
