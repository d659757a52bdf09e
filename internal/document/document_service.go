package document

import (
	"context"
	"slices"
	"strings"

	documenterrors "go-hr-portal/internal/document/errors"
	"go-hr-portal/internal/shared/apperror"
	"go-hr-portal/internal/shared/dberr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, companyID, uploaderID string, req CreateDocumentRequest) (DocumentResponse, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string) ([]DocumentResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, uploaderID string, req CreateDocumentRequest) (DocumentResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidEmployeeID
	}
	uploaderUUID, err := uuid.Parse(uploaderID)
	if err != nil {
		return DocumentResponse{}, apperror.InvalidField("uploaded_by")
	}
	category := strings.ToUpper(strings.TrimSpace(req.Category))
	if !slices.Contains(Categories, category) {
		return DocumentResponse{}, documenterrors.ErrInvalidCategory
	}

	ok, err := s.repo.EmployeeExists(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("document employee lookup failed", zap.Error(err))
		return DocumentResponse{}, mapRepositoryError(err)
	}
	if !ok {
		return DocumentResponse{}, documenterrors.ErrEmployeeNotInCompany
	}

	d := &Document{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Title:      strings.TrimSpace(req.Title),
		Category:   category,
		FileURL:    strings.TrimSpace(req.FileURL),
		UploadedBy: uploaderUUID,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("create document failed", zap.Error(err))
		return DocumentResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("document created",
		zap.String("document_id", d.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*d), nil
}

func (s *service) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]DocumentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, documenterrors.ErrInvalidEmployeeID
	}

	docs, err := s.repo.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		s.logger.Error("list documents failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		resp[i] = mapToResponse(d)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return documenterrors.ErrDocumentNotFound
	}

	n, err := s.repo.Delete(ctx, companyID, id)
	if err != nil {
		s.logger.Error("delete document failed", zap.String("document_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if n == 0 {
		return documenterrors.ErrDocumentNotFound
	}

	s.logger.Info("document deleted", zap.String("document_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if dberr.IsStorageUnavailable(err) {
		return apperror.Wrap(err, apperror.CodeServiceUnavailable, apperror.ErrServiceUnavailable.Message, apperror.ErrServiceUnavailable.HTTPStatus)
	}
	return err
}

func mapToResponse(d Document) DocumentResponse {
	return DocumentResponse{
		ID:         d.ID.String(),
		EmployeeID: d.EmployeeID.String(),
		Title:      d.Title,
		Category:   d.Category,
		FileURL:    d.FileURL,
		UploadedBy: d.UploadedBy.String(),
		CreatedAt:  d.CreatedAt,
	}
}
