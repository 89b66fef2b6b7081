package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/application/services"
	"file-manager-api/internal/domain/user"
	"file-manager-api/internal/interface/api/rest/dto/file"
	"file-manager-api/internal/interface/api/rest/validator"
)

type FilesController struct {
	logger      *zap.Logger
	fileService ports.FileService
	authService ports.AuthService
}

func NewFilesController(
	r *gin.Engine,
	logger *zap.Logger,
	fileService ports.FileService,
	authService ports.AuthService,
) *FilesController {
	fc := &FilesController{
		logger:      logger,
		fileService: fileService,
		authService: authService,
	}

	r.POST(RouteFiles, fc.CreateFileHandler)
	r.GET(RouteFiles, fc.ListFilesHandler)
	r.GET(RouteFile, fc.GetFileHandler)
	r.PUT(RouteFilePublish, fc.PublishHandler)
	r.PUT(RouteFileUnpublish, fc.UnpublishHandler)
	r.GET(RouteFileData, fc.DataHandler)

	return fc
}

func (fc *FilesController) CreateFileHandler(c *gin.Context) {
	owner, ok := fc.requireToken(c)
	if !ok {
		return
	}

	var req file.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	kind, data, err := validator.ValidateCreate(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parent, err := file.ToParentRef(req.ParentID)
	if err != nil {
		// an unparseable reference cannot name an existing folder
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parent not found"})
		return
	}

	n, err := fc.fileService.CreateNode(c.Request.Context(), ports.CreateNodeInput{
		Owner:    owner,
		Name:     req.Name,
		Kind:     kind,
		Parent:   parent,
		IsPublic: req.IsPublic,
		Data:     data,
	})
	if err != nil {
		fc.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, file.ToResponseFile(*n))
}

func (fc *FilesController) GetFileHandler(c *gin.Context) {
	owner, ok := fc.requireToken(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	n, err := fc.fileService.GetNode(c.Request.Context(), owner, id)
	if err != nil {
		fc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*n))
}

func (fc *FilesController) ListFilesHandler(c *gin.Context) {
	owner, ok := fc.requireToken(c)
	if !ok {
		return
	}

	parent, err := file.ToParentRef(c.Query("parentId"))
	if err != nil {
		// nothing lives under an unparseable parent
		c.JSON(http.StatusOK, file.Files{})
		return
	}
	page := validator.ValidatePage(c.Query("page"))

	ns, err := fc.fileService.ListChildren(c.Request.Context(), owner, parent, page)
	if err != nil {
		fc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFiles(ns))
}

func (fc *FilesController) PublishHandler(c *gin.Context)   { fc.setVisibility(c, true) }
func (fc *FilesController) UnpublishHandler(c *gin.Context) { fc.setVisibility(c, false) }

func (fc *FilesController) setVisibility(c *gin.Context, isPublic bool) {
	owner, ok := fc.requireToken(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	n, err := fc.fileService.SetVisibility(c.Request.Context(), owner, id, isPublic)
	if err != nil {
		fc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, file.ToResponseFile(*n))
}

func (fc *FilesController) DataHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	width, err := validator.ValidateSize(c.Query("size"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Token is optional here: a bad or absent token only matters for
	// private nodes, where it surfaces as Not found downstream.
	var requester *user.UUID
	if token := c.GetHeader(HeaderToken); token != "" {
		if owner, err := fc.authService.Validate(c.Request.Context(), token); err == nil {
			requester = &owner
		}
	}

	data, contentType, err := fc.fileService.ReadContent(c.Request.Context(), id, requester, width)
	if err != nil {
		fc.respondError(c, err)
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

// requireToken resolves X-Token or answers 401.
func (fc *FilesController) requireToken(c *gin.Context) (user.UUID, bool) {
	owner, err := fc.authService.Validate(c.Request.Context(), c.GetHeader(HeaderToken))
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			fc.logger.Error("Validate() error", zap.Error(err))
		}
		return uuid.Nil, false
	}

	return owner, true
}

func (fc *FilesController) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrParentNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parent not found"})
	case errors.Is(err, services.ErrParentNotFolder):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parent is not a folder"})
	case errors.Is(err, services.ErrFolderHasNoContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A folder doesn't have content"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrStorage):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot save file"})
		fc.logger.Error("content storage error", zap.Error(err))
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		fc.logger.Error("file service error", zap.Error(err))
	}
}
