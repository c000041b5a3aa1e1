package service

import (
	"context"
	"errors"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
)

// MockBoardRepository is a mock implementation of repository.BoardRepository
type MockBoardRepository struct {
	FindAllFunc  func(ctx context.Context) (domain.BoardDocument, error)
	FindByIDFunc func(ctx context.Context, id int) (*domain.Post, error)
	InsertFunc   func(ctx context.Context, build func(doc domain.BoardDocument) (*domain.Post, error)) (*domain.Post, error)
	UpdateFunc   func(ctx context.Context, id int, mutate func(doc domain.BoardDocument, post *domain.Post) error) (*domain.Post, error)
	MutateFunc   func(ctx context.Context, fn func(doc domain.BoardDocument) error) error
	RemoveFunc   func(ctx context.Context, id int) error
}

func (m *MockBoardRepository) FindAll(ctx context.Context) (domain.BoardDocument, error) {
	return m.FindAllFunc(ctx)
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id int) (*domain.Post, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *MockBoardRepository) Insert(ctx context.Context, build func(doc domain.BoardDocument) (*domain.Post, error)) (*domain.Post, error) {
	return m.InsertFunc(ctx, build)
}

func (m *MockBoardRepository) Update(ctx context.Context, id int, mutate func(doc domain.BoardDocument, post *domain.Post) error) (*domain.Post, error) {
	return m.UpdateFunc(ctx, id, mutate)
}

func (m *MockBoardRepository) Mutate(ctx context.Context, fn func(doc domain.BoardDocument) error) error {
	return m.MutateFunc(ctx, fn)
}

func (m *MockBoardRepository) Remove(ctx context.Context, id int) error {
	return m.RemoveFunc(ctx, id)
}

// MockAssetFetcher is a mock implementation of AssetFetcher
type MockAssetFetcher struct {
	FetchFunc  func(ctx context.Context, kind, rawURL string) (string, error)
	ExistsFunc func(ctx context.Context, kind, fileName string) bool
}

func (m *MockAssetFetcher) Fetch(ctx context.Context, kind, rawURL string) (string, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, kind, rawURL)
	}
	return "", errors.New("fetch 미구현")
}

func (m *MockAssetFetcher) Exists(ctx context.Context, kind, fileName string) bool {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, kind, fileName)
	}
	return true
}
