package document

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/opsdesk/backend/internal/domain/document"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// MockDocumentRepository is a mock implementation of document.DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]document.Document, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]document.Document, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindUnfiled(ctx context.Context, filter shared.Filter) ([]document.Document, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.Document), args.Error(1)
}

func (m *MockDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of document.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*document.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]document.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *document.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockDocumentStorage is a mock implementation of ObjectStorage
type MockDocumentStorage struct {
	mock.Mock
}

func (m *MockDocumentStorage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	args := m.Called(ctx, key, contentType, body, size)
	return args.Error(0)
}

func (m *MockDocumentStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockDocumentStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newDocumentTestService() (*DocumentService, *MockDocumentRepository, *MockCategoryRepository, *MockDocumentStorage) {
	docs := new(MockDocumentRepository)
	categories := new(MockCategoryRepository)
	storage := new(MockDocumentStorage)
	return NewDocumentService(docs, categories, storage), docs, categories, storage
}

func createTestDocument(t *testing.T, title, fileName string) *document.Document {
	t.Helper()
	doc, err := document.NewDocument(title, fileName, "application/pdf", 2048, "documents/"+uuid.NewString()+"/"+fileName)
	assert.NoError(t, err)
	doc.ClearDomainEvents()
	return doc
}

func TestDocumentService_UploadDocument_Success(t *testing.T) {
	service, docs, _, storage := newDocumentTestService()

	var storedKey string
	storage.On("Put", mock.Anything, mock.AnythingOfType("string"), "application/pdf", mock.Anything, int64(9)).
		Run(func(args mock.Arguments) {
			storedKey = args.String(1)
		}).Return(nil)

	var saved *document.Document
	docs.On("Save", mock.Anything, mock.AnythingOfType("*document.Document")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*document.Document)
	}).Return(nil)

	uploadedBy := uuid.New()
	resp, err := service.UploadDocument(context.Background(),
		&UploadDocumentRequest{Title: "Office lease", Description: "Signed copy"},
		"lease.pdf", "application/pdf", 9, strings.NewReader("pdf bytes"), &uploadedBy)

	assert.NoError(t, err)
	assert.Equal(t, "Office lease", resp.Title)
	assert.Equal(t, "Signed copy", resp.Description)
	assert.Equal(t, "lease.pdf", resp.FileName)
	assert.Equal(t, &uploadedBy, resp.UploadedBy)
	assert.True(t, strings.HasPrefix(storedKey, "documents/"))
	assert.True(t, strings.HasSuffix(storedKey, "/lease.pdf"))
	assert.Equal(t, storedKey, saved.StorageKey)
}

func TestDocumentService_UploadDocument_TitleFallsBackToFileName(t *testing.T) {
	service, docs, _, storage := newDocumentTestService()

	storage.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	docs.On("Save", mock.Anything, mock.AnythingOfType("*document.Document")).Return(nil)

	resp, err := service.UploadDocument(context.Background(),
		&UploadDocumentRequest{},
		"w9-2025.pdf", "application/pdf", 4, strings.NewReader("pdf!"), nil)

	assert.NoError(t, err)
	assert.Equal(t, "w9-2025.pdf", resp.Title)
}

func TestDocumentService_UploadDocument_RejectsType(t *testing.T) {
	service, docs, _, storage := newDocumentTestService()

	_, err := service.UploadDocument(context.Background(),
		&UploadDocumentRequest{Title: "Installer"},
		"setup.exe", "application/x-msdownload", 10, strings.NewReader("MZ binary"), nil)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", domainErr.Code)
	storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	docs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDocumentService_UploadDocument_SaveFailureDropsBytes(t *testing.T) {
	service, docs, _, storage := newDocumentTestService()

	var storedKey string
	storage.On("Put", mock.Anything, mock.AnythingOfType("string"), mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			storedKey = args.String(1)
		}).Return(nil)
	docs.On("Save", mock.Anything, mock.Anything).Return(assert.AnError)
	storage.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	_, err := service.UploadDocument(context.Background(),
		&UploadDocumentRequest{Title: "Office lease"},
		"lease.pdf", "application/pdf", 9, strings.NewReader("pdf bytes"), nil)

	assert.Error(t, err)
	storage.AssertCalled(t, "Delete", mock.Anything, storedKey)
}

func TestDocumentService_UploadDocument_UnknownCategory(t *testing.T) {
	service, _, categories, storage := newDocumentTestService()

	categoryID := uuid.New()
	categories.On("FindByID", mock.Anything, categoryID).Return(nil, shared.ErrNotFound)

	_, err := service.UploadDocument(context.Background(),
		&UploadDocumentRequest{Title: "Office lease", CategoryID: &categoryID},
		"lease.pdf", "application/pdf", 9, strings.NewReader("pdf bytes"), nil)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_UpdateDocument_Unfile(t *testing.T) {
	service, docs, _, _ := newDocumentTestService()

	doc := createTestDocument(t, "Office lease", "lease.pdf")
	categoryID := uuid.New()
	doc.SetCategory(&categoryID)

	docs.On("FindByID", mock.Anything, doc.ID).Return(doc, nil)
	docs.On("Save", mock.Anything, doc).Return(nil)

	resp, err := service.UpdateDocument(context.Background(), doc.ID, &UpdateDocumentRequest{Unfile: true})

	assert.NoError(t, err)
	assert.Nil(t, resp.CategoryID)
}

func TestDocumentService_UpdateDocument_MovesCategory(t *testing.T) {
	service, docs, categories, _ := newDocumentTestService()

	doc := createTestDocument(t, "Office lease", "lease.pdf")
	newCategoryID := uuid.New()
	category, err := document.NewCategory("Contracts", "")
	assert.NoError(t, err)

	docs.On("FindByID", mock.Anything, doc.ID).Return(doc, nil)
	categories.On("FindByID", mock.Anything, newCategoryID).Return(category, nil)
	docs.On("Save", mock.Anything, doc).Return(nil)

	resp, err := service.UpdateDocument(context.Background(), doc.ID, &UpdateDocumentRequest{CategoryID: &newCategoryID})

	assert.NoError(t, err)
	assert.Equal(t, &newCategoryID, resp.CategoryID)
}

func TestDocumentService_DownloadDocument(t *testing.T) {
	service, docs, _, storage := newDocumentTestService()

	doc := createTestDocument(t, "Office lease", "lease.pdf")

	docs.On("FindByID", mock.Anything, doc.ID).Return(doc, nil)
	storage.On("Get", mock.Anything, doc.StorageKey).Return(io.NopCloser(strings.NewReader("pdf bytes")), nil)

	download, err := service.DownloadDocument(context.Background(), doc.ID)

	assert.NoError(t, err)
	assert.Equal(t, "lease.pdf", download.FileName)
	assert.Equal(t, "application/pdf", download.ContentType)

	content, err := io.ReadAll(download.Body)
	assert.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(content))
	assert.NoError(t, download.Body.Close())
}

func TestDocumentService_ListDocuments_UnfiledUsesDedicatedQuery(t *testing.T) {
	service, docs, _, _ := newDocumentTestService()

	doc := createTestDocument(t, "Office lease", "lease.pdf")
	unfiled := true

	docs.On("FindUnfiled", mock.Anything, mock.Anything).Return([]document.Document{*doc}, nil)
	docs.On("Count", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["unfiled"] == true
	})).Return(int64(1), nil)

	results, total, err := service.ListDocuments(context.Background(), &DocumentListFilter{Unfiled: &unfiled})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, results, 1)
	docs.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestCategoryService_CreateCategory_Duplicate(t *testing.T) {
	categories := new(MockCategoryRepository)
	service := NewCategoryService(categories)

	categories.On("ExistsByName", mock.Anything, "Contracts").Return(true, nil)

	_, err := service.CreateCategory(context.Background(), &CreateCategoryRequest{Name: "Contracts"})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestCategoryService_UpdateCategory_Rename(t *testing.T) {
	categories := new(MockCategoryRepository)
	service := NewCategoryService(categories)

	category, err := document.NewCategory("Contracts", "Signed agreements")
	assert.NoError(t, err)

	categories.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	categories.On("ExistsByName", mock.Anything, "Legal").Return(false, nil)
	categories.On("Save", mock.Anything, category).Return(nil)

	newName := "Legal"
	resp, err := service.UpdateCategory(context.Background(), category.ID, &UpdateCategoryRequest{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "Legal", resp.Name)
	assert.Equal(t, "Signed agreements", resp.Description)
}
