package handler

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/domain"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/dto"
)

// MockBoardService is a mock implementation of service.BoardService
type MockBoardService struct {
	ListFunc               func(ctx context.Context, filters *dto.PostFilters, admin bool) (*dto.PostListResult, error)
	GetFunc                func(ctx context.Context, id int) (*domain.Post, error)
	GetAdminFunc           func(ctx context.Context, id int) (*domain.Post, error)
	CreateFunc             func(ctx context.Context, req *dto.CreatePostRequest, uploaded []dto.AttachmentInput) (*domain.Post, error)
	UpdateFunc             func(ctx context.Context, id int, req *dto.UpdatePostRequest, uploaded []dto.AttachmentInput) (*domain.Post, error)
	DeleteFunc             func(ctx context.Context, id int, permanent bool) error
	SetPublicFunc          func(ctx context.Context, id int, public bool) (*domain.Post, error)
	SetDeletedFunc         func(ctx context.Context, id int, deleted bool) (*domain.Post, error)
	LikeFunc               func(ctx context.Context, id int) (int, error)
	UnlikeFunc             func(ctx context.Context, id int) (int, error)
	AddCommentFunc         func(ctx context.Context, req *dto.CreateCommentRequest) (*domain.Comment, error)
	UpdateCommentFunc      func(ctx context.Context, commentID int, req *dto.UpdateCommentRequest) (*domain.Comment, error)
	DeleteCommentFunc      func(ctx context.Context, commentID int, permanent bool) error
	SetCommentDeletedFunc  func(ctx context.Context, commentID int, deleted bool) (*domain.Comment, error)
	UnreadProgramCountFunc func(ctx context.Context) (int, error)
}

func (m *MockBoardService) List(ctx context.Context, filters *dto.PostFilters, admin bool) (*dto.PostListResult, error) {
	return m.ListFunc(ctx, filters, admin)
}

func (m *MockBoardService) Get(ctx context.Context, id int) (*domain.Post, error) {
	return m.GetFunc(ctx, id)
}

func (m *MockBoardService) GetAdmin(ctx context.Context, id int) (*domain.Post, error) {
	return m.GetAdminFunc(ctx, id)
}

func (m *MockBoardService) Create(ctx context.Context, req *dto.CreatePostRequest, uploaded []dto.AttachmentInput) (*domain.Post, error) {
	return m.CreateFunc(ctx, req, uploaded)
}

func (m *MockBoardService) Update(ctx context.Context, id int, req *dto.UpdatePostRequest, uploaded []dto.AttachmentInput) (*domain.Post, error) {
	return m.UpdateFunc(ctx, id, req, uploaded)
}

func (m *MockBoardService) Delete(ctx context.Context, id int, permanent bool) error {
	return m.DeleteFunc(ctx, id, permanent)
}

func (m *MockBoardService) SetPublic(ctx context.Context, id int, public bool) (*domain.Post, error) {
	return m.SetPublicFunc(ctx, id, public)
}

func (m *MockBoardService) SetDeleted(ctx context.Context, id int, deleted bool) (*domain.Post, error) {
	return m.SetDeletedFunc(ctx, id, deleted)
}

func (m *MockBoardService) Like(ctx context.Context, id int) (int, error) {
	return m.LikeFunc(ctx, id)
}

func (m *MockBoardService) Unlike(ctx context.Context, id int) (int, error) {
	return m.UnlikeFunc(ctx, id)
}

func (m *MockBoardService) AddComment(ctx context.Context, req *dto.CreateCommentRequest) (*domain.Comment, error) {
	return m.AddCommentFunc(ctx, req)
}

func (m *MockBoardService) UpdateComment(ctx context.Context, commentID int, req *dto.UpdateCommentRequest) (*domain.Comment, error) {
	return m.UpdateCommentFunc(ctx, commentID, req)
}

func (m *MockBoardService) DeleteComment(ctx context.Context, commentID int, permanent bool) error {
	return m.DeleteCommentFunc(ctx, commentID, permanent)
}

func (m *MockBoardService) SetCommentDeleted(ctx context.Context, commentID int, deleted bool) (*domain.Comment, error) {
	return m.SetCommentDeletedFunc(ctx, commentID, deleted)
}

func (m *MockBoardService) UnreadProgramCount(ctx context.Context) (int, error) {
	return m.UnreadProgramCountFunc(ctx)
}

// MockPolicyService is a mock implementation of service.PolicyService
type MockPolicyService struct {
	ListFunc          func(ctx context.Context, filters *dto.PolicyFilters) (*dto.PolicyListResult, error)
	GetFunc           func(ctx context.Context, id int) (*domain.Policy, error)
	CreateFunc        func(ctx context.Context, req *dto.CreatePolicyRequest) (*domain.Policy, error)
	UpdateFunc        func(ctx context.Context, id int, req *dto.UpdatePolicyRequest) (*domain.Policy, error)
	DeleteFunc        func(ctx context.Context, id int) error
	SetVisibleFunc    func(ctx context.Context, id int, visible bool) (*domain.Policy, error)
	LikeFunc          func(ctx context.Context, id int) (int, error)
	UnlikeFunc        func(ctx context.Context, id int) (int, error)
	AddCommentFunc    func(ctx context.Context, policyID int, req *dto.CreatePolicyCommentRequest) (*domain.PolicyComment, error)
	UpdateCommentFunc func(ctx context.Context, policyID, commentID int, content string) (*domain.PolicyComment, error)
	DeleteCommentFunc func(ctx context.Context, policyID, commentID int) error
}

func (m *MockPolicyService) List(ctx context.Context, filters *dto.PolicyFilters) (*dto.PolicyListResult, error) {
	return m.ListFunc(ctx, filters)
}

func (m *MockPolicyService) Get(ctx context.Context, id int) (*domain.Policy, error) {
	return m.GetFunc(ctx, id)
}

func (m *MockPolicyService) Create(ctx context.Context, req *dto.CreatePolicyRequest) (*domain.Policy, error) {
	return m.CreateFunc(ctx, req)
}

func (m *MockPolicyService) Update(ctx context.Context, id int, req *dto.UpdatePolicyRequest) (*domain.Policy, error) {
	return m.UpdateFunc(ctx, id, req)
}

func (m *MockPolicyService) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockPolicyService) SetVisible(ctx context.Context, id int, visible bool) (*domain.Policy, error) {
	return m.SetVisibleFunc(ctx, id, visible)
}

func (m *MockPolicyService) Like(ctx context.Context, id int) (int, error) {
	return m.LikeFunc(ctx, id)
}

func (m *MockPolicyService) Unlike(ctx context.Context, id int) (int, error) {
	return m.UnlikeFunc(ctx, id)
}

func (m *MockPolicyService) AddComment(ctx context.Context, policyID int, req *dto.CreatePolicyCommentRequest) (*domain.PolicyComment, error) {
	return m.AddCommentFunc(ctx, policyID, req)
}

func (m *MockPolicyService) UpdateComment(ctx context.Context, policyID, commentID int, content string) (*domain.PolicyComment, error) {
	return m.UpdateCommentFunc(ctx, policyID, commentID, content)
}

func (m *MockPolicyService) DeleteComment(ctx context.Context, policyID, commentID int) error {
	return m.DeleteCommentFunc(ctx, policyID, commentID)
}

// MockFileService is a mock implementation of service.FileService
type MockFileService struct {
	UploadFunc         func(ctx context.Context, fh *multipart.FileHeader, kind string) (*dto.UploadedFile, error)
	UploadMultipleFunc func(ctx context.Context, fhs []*multipart.FileHeader, kind string) ([]*dto.UploadedFile, error)
	DownloadFunc       func(ctx context.Context, fileName string) (io.ReadCloser, *dto.UploadedFile, error)
	DeleteFunc         func(ctx context.Context, fileName string) error
	FetchFunc          func(ctx context.Context, kind, rawURL string) (string, error)
	ExistsFunc         func(ctx context.Context, kind, fileName string) bool
}

func (m *MockFileService) Upload(ctx context.Context, fh *multipart.FileHeader, kind string) (*dto.UploadedFile, error) {
	return m.UploadFunc(ctx, fh, kind)
}

func (m *MockFileService) UploadMultiple(ctx context.Context, fhs []*multipart.FileHeader, kind string) ([]*dto.UploadedFile, error) {
	return m.UploadMultipleFunc(ctx, fhs, kind)
}

func (m *MockFileService) Download(ctx context.Context, fileName string) (io.ReadCloser, *dto.UploadedFile, error) {
	return m.DownloadFunc(ctx, fileName)
}

func (m *MockFileService) Delete(ctx context.Context, fileName string) error {
	return m.DeleteFunc(ctx, fileName)
}

func (m *MockFileService) Fetch(ctx context.Context, kind, rawURL string) (string, error) {
	return m.FetchFunc(ctx, kind, rawURL)
}

func (m *MockFileService) Exists(ctx context.Context, kind, fileName string) bool {
	return m.ExistsFunc(ctx, kind, fileName)
}
