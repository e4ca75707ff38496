package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	request "laundry_desk/internal/adapter/http/dto/request"
	response "laundry_desk/internal/adapter/http/dto/response"
	"laundry_desk/internal/usecase"
	"laundry_desk/pkg"
)

const (
	serviceImageField = "image"
	uploadFileField   = "file"
)

var errFileTooLarge = pkg.NewDomainErrorSimple("FILE_TOO_LARGE", "The uploaded file is too large", http.StatusRequestEntityTooLarge)

// CatalogHandler serves the service catalog and image uploads.
type CatalogHandler struct {
	usecase        usecase.ICatalogUseCase
	currency       string
	maxUploadBytes int64
}

func NewCatalogHandler(uc usecase.ICatalogUseCase, currency string, maxUploadBytes int64) *CatalogHandler {
	return &CatalogHandler{usecase: uc, currency: currency, maxUploadBytes: maxUploadBytes}
}

// CreateService godoc
// @Summary      Create a catalog service
// @Tags         services
// @Accept       json,mpfd
// @Produce      json
// @Param        service  body      request.CreateServiceRequest  true   "Service"
// @Param        image    formData  file                          false  "Image"
// @Success      201      {object}  response.ServiceResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      500      {object}  pkg.HTTPError
// @Router       /services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	h.limitBody(c)
	var payload request.CreateServiceRequest
	if err := c.ShouldBind(&payload); err != nil {
		h.respondBind(c, err)
		return
	}

	img, closeImg, err := h.formFile(c, serviceImageField)
	if err != nil {
		h.respondBind(c, err)
		return
	}
	defer closeImg()

	svc, err := h.usecase.Create(c.Request.Context(), payload.ToCommand(img))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromService(svc, h.currency))
}

// ListServices godoc
// @Summary      List the catalog sorted by name
// @Tags         services
// @Produce      json
// @Success      200  {array}  response.ServiceResponse
// @Router       /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	list, err := h.usecase.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromServices(list, h.currency))
}

// GetService godoc
// @Summary      Get a catalog service
// @Tags         services
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  response.ServiceResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /services/{id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	svc, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromService(svc, h.currency))
}

// UpdateService godoc
// @Summary      Update a catalog service
// @Tags         services
// @Accept       json,mpfd
// @Produce      json
// @Param        id       path      string                        true   "Service ID"
// @Param        service  body      request.UpdateServiceRequest  true   "Fields to change"
// @Param        image    formData  file                          false  "Replacement image"
// @Success      200      {object}  response.ServiceResponse
// @Failure      404      {object}  pkg.HTTPError
// @Router       /services/{id} [patch]
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	h.limitBody(c)
	var payload request.UpdateServiceRequest
	if err := c.ShouldBind(&payload); err != nil {
		h.respondBind(c, err)
		return
	}

	img, closeImg, err := h.formFile(c, serviceImageField)
	if err != nil {
		h.respondBind(c, err)
		return
	}
	defer closeImg()

	if payload.IsEmpty() && img == nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	svc, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToCommand(img))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromService(svc, h.currency))
}

// DeleteService godoc
// @Summary      Delete a catalog service and its image
// @Tags         services
// @Param        id   path  string  true  "Service ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Router       /services/{id} [delete]
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage godoc
// @Summary      Store a line-item photo
// @Tags         uploads
// @Accept       mpfd
// @Produce      json
// @Param        file  formData  file  true  "Image"
// @Success      201   {object}  response.UploadResponse
// @Failure      400   {object}  pkg.HTTPError
// @Router       /uploads [post]
func (h *CatalogHandler) UploadImage(c *gin.Context) {
	h.limitBody(c)
	img, closeImg, err := h.formFile(c, uploadFileField)
	if err != nil {
		h.respondBind(c, err)
		return
	}
	defer closeImg()
	if img == nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	url, err := h.usecase.UploadImage(c.Request.Context(), *img)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.UploadResponse{URL: url})
}

func (h *CatalogHandler) limitBody(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
}

func (h *CatalogHandler) respondBind(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(errFileTooLarge.HTTPStatus, errFileTooLarge.ToHTTPError())
		return
	}
	respondBindError(c, err)
}

// formFile opens an optional multipart file. It returns nil for JSON
// requests and for forms without the field.
func (h *CatalogHandler) formFile(c *gin.Context, field string) (*usecase.BlobUpload, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, noop, nil
	}
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	f, err := header.Open()
	if err != nil {
		return nil, noop, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(path.Ext(header.Filename))); byExt != "" {
			contentType = byExt
		}
	}
	return &usecase.BlobUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
