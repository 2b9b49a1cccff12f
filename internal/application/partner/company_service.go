package partner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/opsdesk/backend/internal/domain/partner"
	"github.com/opsdesk/backend/internal/domain/shared"
)

// allowedLogoTypes lists the content types accepted for the company logo
var allowedLogoTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// LogoStorage is the slice of blob storage the company service needs for
// the logo printed on order documents
type LogoStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// LogoDownload carries the company logo and its content stream
type LogoDownload struct {
	FileName    string
	ContentType string
	Body        io.ReadCloser
}

// CompanyService manages the single company record printed on purchase orders
type CompanyService struct {
	companyRepo partner.CompanyRepository
	storage     LogoStorage
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo partner.CompanyRepository, storage LogoStorage) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		storage:     storage,
	}
}

// Get retrieves the company record
func (s *CompanyService) Get(ctx context.Context) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindFirst(ctx)
	if err != nil {
		return nil, err
	}

	response := ToCompanyResponse(company)
	return &response, nil
}

// Update updates the company record, creating it on first write
func (s *CompanyService) Update(ctx context.Context, req *UpdateCompanyRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindFirst(ctx)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		company, err = partner.NewCompany(req.Name)
		if err != nil {
			return nil, err
		}
	}

	if err := company.Update(req.Name, req.Phone, req.Fax, req.Email, req.Website); err != nil {
		return nil, err
	}
	if req.Address != nil {
		addr, err := req.Address.toDomain()
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ADDRESS", err.Error())
		}
		company.SetAddress(addr)
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	company.ClearDomainEvents()

	response := ToCompanyResponse(company)
	return &response, nil
}

// UploadLogo stores a new company logo and records its storage key
func (s *CompanyService) UploadLogo(ctx context.Context, fileName, contentType string, data []byte) (*CompanyResponse, error) {
	if !allowedLogoTypes[contentType] {
		return nil, shared.NewDomainError("UNSUPPORTED_FILE_TYPE", fmt.Sprintf("Logo type %s is not supported", contentType))
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError("EMPTY_FILE", "Logo file is empty")
	}

	company, err := s.companyRepo.FindFirst(ctx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("company/logo%s", strings.ToLower(path.Ext(fileName)))
	if err := s.storage.Put(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, fmt.Errorf("failed to store company logo: %w", err)
	}

	company.SetLogo(key)
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	company.ClearDomainEvents()

	response := ToCompanyResponse(company)
	return &response, nil
}

// DownloadLogo streams the company logo from storage
func (s *CompanyService) DownloadLogo(ctx context.Context) (*LogoDownload, error) {
	company, err := s.companyRepo.FindFirst(ctx)
	if err != nil {
		return nil, err
	}
	if company.LogoStorageKey == "" {
		return nil, shared.NewDomainError("NO_LOGO", "Company has no logo")
	}

	body, err := s.storage.Get(ctx, company.LogoStorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read company logo: %w", err)
	}

	return &LogoDownload{
		FileName:    path.Base(company.LogoStorageKey),
		ContentType: logoContentType(company.LogoStorageKey),
		Body:        body,
	}, nil
}

// logoContentType derives the content type from the stored logo's extension
func logoContentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "image/jpeg"
	}
}
