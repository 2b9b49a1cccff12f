package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsdesk/backend/internal/application/partner"
	"github.com/opsdesk/backend/internal/interfaces/http/dto"
)

// Logo uploads are small images; anything bigger is rejected up front.
const maxLogoSize = 5 << 20

// CompanyHandler handles the company profile API endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *partner.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *partner.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// Get godoc
// @ID           getCompany
// @Summary      Get the company profile
// @Description  Retrieve the company record printed on purchase orders
// @Tags         partners
// @Produce      json
// @Success      200 {object} APIResponse[partner.CompanyResponse]
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/company [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companyService.Get(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, company)
}

// Update godoc
// @ID           updateCompany
// @Summary      Update the company profile
// @Description  Update company name, address and contact details
// @Tags         partners
// @Accept       json
// @Produce      json
// @Param        request body partner.UpdateCompanyRequest true "Company update request"
// @Success      200 {object} APIResponse[partner.CompanyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/company [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	var req partner.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), &req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, company)
}

// UploadLogo godoc
// @ID           uploadCompanyLogo
// @Summary      Upload the company logo
// @Description  Store a new logo image used on rendered purchase orders
// @Tags         partners
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Logo image (PNG, JPEG, GIF or WebP)"
// @Success      200 {object} APIResponse[partner.CompanyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      413 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/company/logo [post]
func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxLogoSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeValidation, "logo exceeds maximum size of 5MB")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.InternalError(c, "failed to read uploaded file")
		return
	}

	company, err := h.companyService.UploadLogo(
		c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), data,
	)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, company)
}

// DownloadLogo godoc
// @ID           downloadCompanyLogo
// @Summary      Download the company logo
// @Description  Stream the stored logo image
// @Tags         partners
// @Produce      image/png
// @Success      200 {file} binary
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /partners/company/logo [get]
func (h *CompanyHandler) DownloadLogo(c *gin.Context) {
	download, err := h.companyService.DownloadLogo(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	defer download.Body.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": `inline; filename="` + download.FileName + `"`,
	}
	c.DataFromReader(http.StatusOK, -1, download.ContentType, download.Body, extraHeaders)
}
