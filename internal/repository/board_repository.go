package repository

import (
	"context"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/storage"
)

// BoardRepository provides typed access to the board store. Every method is
// an independent read-modify-write cycle against the locked file store;
// nothing is cached between calls.
type BoardRepository interface {
	// FindAll returns a fresh snapshot of the whole document
	FindAll(ctx context.Context) (domain.BoardDocument, error)
	// FindByID returns the post or a NOT_FOUND AppError
	FindByID(ctx context.Context, id int) (*domain.Post, error)
	// Insert reloads the document, lets build assign ids from the fresh
	// snapshot and append the new post, then persists
	Insert(ctx context.Context, build func(doc domain.BoardDocument) (*domain.Post, error)) (*domain.Post, error)
	// Update reloads the document, applies mutate to the addressed post
	// and persists. NOT_FOUND when the id is absent.
	Update(ctx context.Context, id int, mutate func(doc domain.BoardDocument, post *domain.Post) error) (*domain.Post, error)
	// Mutate reloads the document, applies fn to it wholesale (comment
	// operations search across posts) and persists
	Mutate(ctx context.Context, fn func(doc domain.BoardDocument) error) error
	// Remove deletes the record physically
	Remove(ctx context.Context, id int) error
}

type boardRepositoryImpl struct {
	store *storage.Store
	path  string
}

// NewBoardRepository creates a BoardRepository backed by the JSON document
// at path
func NewBoardRepository(store *storage.Store, path string) BoardRepository {
	return &boardRepositoryImpl{store: store, path: path}
}

func (r *boardRepositoryImpl) load(ctx context.Context) (domain.BoardDocument, error) {
	doc := domain.BoardDocument{}
	if err := r.store.Read(ctx, r.path, &doc); err != nil {
		return nil, response.NewAppError(response.ErrCodeStorage, "게시판 데이터를 읽지 못했습니다.", err.Error())
	}
	return doc, nil
}

func (r *boardRepositoryImpl) persist(ctx context.Context, doc domain.BoardDocument) error {
	if err := r.store.Write(ctx, r.path, doc); err != nil {
		return response.NewAppError(response.ErrCodeStorage, "게시판 데이터를 저장하지 못했습니다.", err.Error())
	}
	return nil
}

func (r *boardRepositoryImpl) FindAll(ctx context.Context) (domain.BoardDocument, error) {
	return r.load(ctx)
}

func (r *boardRepositoryImpl) FindByID(ctx context.Context, id int) (*domain.Post, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	post, ok := doc.Get(id)
	if !ok {
		return nil, response.NewAppError(response.ErrCodeNotFound, "게시글을 찾을 수 없습니다.", "")
	}
	return post, nil
}

func (r *boardRepositoryImpl) Insert(ctx context.Context, build func(doc domain.BoardDocument) (*domain.Post, error)) (*domain.Post, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	post, err := build(doc)
	if err != nil {
		return nil, err
	}
	doc.Put(post)
	if err := r.persist(ctx, doc); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *boardRepositoryImpl) Update(ctx context.Context, id int, mutate func(doc domain.BoardDocument, post *domain.Post) error) (*domain.Post, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	post, ok := doc.Get(id)
	if !ok {
		return nil, response.NewAppError(response.ErrCodeNotFound, "게시글을 찾을 수 없습니다.", "")
	}
	if err := mutate(doc, post); err != nil {
		return nil, err
	}
	doc.Put(post)
	if err := r.persist(ctx, doc); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *boardRepositoryImpl) Mutate(ctx context.Context, fn func(doc domain.BoardDocument) error) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return r.persist(ctx, doc)
}

func (r *boardRepositoryImpl) Remove(ctx context.Context, id int) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := doc.Get(id); !ok {
		return response.NewAppError(response.ErrCodeNotFound, "게시글을 찾을 수 없습니다.", "")
	}
	doc.Delete(id)
	return r.persist(ctx, doc)
}
