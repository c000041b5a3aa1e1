package repository

import (
	"context"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/response"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/storage"
)

// PolicyRepository provides typed access to the policy store, a JSON array
// document. Same read-modify-write discipline as the board repository.
type PolicyRepository interface {
	FindAll(ctx context.Context) (domain.PolicyDocument, error)
	FindByID(ctx context.Context, id int) (*domain.Policy, error)
	Insert(ctx context.Context, build func(doc domain.PolicyDocument) (*domain.Policy, error)) (*domain.Policy, error)
	Update(ctx context.Context, id int, mutate func(policy *domain.Policy) error) (*domain.Policy, error)
	Remove(ctx context.Context, id int) error
}

type policyRepositoryImpl struct {
	store *storage.Store
	path  string
}

// NewPolicyRepository creates a PolicyRepository backed by the JSON document
// at path
func NewPolicyRepository(store *storage.Store, path string) PolicyRepository {
	return &policyRepositoryImpl{store: store, path: path}
}

func (r *policyRepositoryImpl) load(ctx context.Context) (domain.PolicyDocument, error) {
	doc := domain.PolicyDocument{}
	if err := r.store.Read(ctx, r.path, &doc); err != nil {
		return nil, response.NewAppError(response.ErrCodeStorage, "정책 데이터를 읽지 못했습니다.", err.Error())
	}
	return doc, nil
}

func (r *policyRepositoryImpl) persist(ctx context.Context, doc domain.PolicyDocument) error {
	if err := r.store.Write(ctx, r.path, doc); err != nil {
		return response.NewAppError(response.ErrCodeStorage, "정책 데이터를 저장하지 못했습니다.", err.Error())
	}
	return nil
}

func (r *policyRepositoryImpl) FindAll(ctx context.Context) (domain.PolicyDocument, error) {
	return r.load(ctx)
}

func (r *policyRepositoryImpl) FindByID(ctx context.Context, id int) (*domain.Policy, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	policy := doc.Find(id)
	if policy == nil {
		return nil, response.NewAppError(response.ErrCodeNotFound, "정책을 찾을 수 없습니다.", "")
	}
	return policy, nil
}

func (r *policyRepositoryImpl) Insert(ctx context.Context, build func(doc domain.PolicyDocument) (*domain.Policy, error)) (*domain.Policy, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	policy, err := build(doc)
	if err != nil {
		return nil, err
	}
	// New policies go to the front, original list order
	doc = append(domain.PolicyDocument{policy}, doc...)
	if err := r.persist(ctx, doc); err != nil {
		return nil, err
	}
	return policy, nil
}

func (r *policyRepositoryImpl) Update(ctx context.Context, id int, mutate func(policy *domain.Policy) error) (*domain.Policy, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	policy := doc.Find(id)
	if policy == nil {
		return nil, response.NewAppError(response.ErrCodeNotFound, "정책을 찾을 수 없습니다.", "")
	}
	if err := mutate(policy); err != nil {
		return nil, err
	}
	if err := r.persist(ctx, doc); err != nil {
		return nil, err
	}
	return policy, nil
}

func (r *policyRepositoryImpl) Remove(ctx context.Context, id int) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, p := range doc {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return response.NewAppError(response.ErrCodeNotFound, "정책을 찾을 수 없습니다.", "")
	}
	doc = append(doc[:idx], doc[idx+1:]...)
	return r.persist(ctx, doc)
}
