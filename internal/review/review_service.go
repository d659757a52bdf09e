package review

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	reviewerrors "go-hr-portal/internal/review/errors"
	"go-hr-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:generate mockgen -source=review_service.go -destination=mock/review_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateReviewRequest) (ReviewResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ReviewResponse, error)
	GetAll(ctx context.Context, companyID string, filter ReviewFilter) ([]ReviewResponse, error)
	UpdateStatus(ctx context.Context, companyID, id string, req UpdateReviewStatusRequest) (ReviewResponse, error)
	AddManagerNote(ctx context.Context, companyID, authorID, id string, req AddManagerNoteRequest) (ReviewResponse, error)
	AddGoal(ctx context.Context, companyID, id string, req AddGoalRequest) (ReviewResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("review.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("review.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateReviewRequest) (ReviewResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidEmployeeID
	}
	reviewerUUID, err := uuid.Parse(req.ReviewerID)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidReviewerID
	}
	if employeeUUID == reviewerUUID {
		s.logger.Warn("create review self review rejected", zap.String("employee_id", req.EmployeeID))
		return ReviewResponse{}, reviewerrors.ErrSelfReview
	}

	n, err := s.repo.CountEmployees(ctx, companyID, req.EmployeeID, req.ReviewerID)
	if err != nil {
		s.logger.Error("create review participant lookup failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, mapRepositoryError(err)
	}
	if n != 2 {
		return ReviewResponse{}, reviewerrors.ErrParticipantNotInCompany
	}

	rv := &Review{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		ReviewerID:    reviewerUUID,
		ReviewCycleID: strings.TrimSpace(req.ReviewCycleID),
		Status:        StatusNotStarted,
		Summary:       req.Summary,
		ManagerReview: datatypes.NewJSONSlice([]ManagerNote{}),
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		s.logger.Error("create review persist failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("review created",
		zap.String("request_id", rid),
		zap.String("review_id", rv.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("reviewer_id", req.ReviewerID),
	)
	return mapToResponse(*rv), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ReviewResponse, error) {
	rv, err := s.load(ctx, s.repo, companyID, id)
	if err != nil {
		return ReviewResponse{}, err
	}
	return mapToResponse(*rv), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter ReviewFilter) ([]ReviewResponse, error) {
	if filter.Status != "" {
		filter.Status = strings.ToUpper(filter.Status)
	}

	reviews, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("get all reviews failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]ReviewResponse, len(reviews))
	for i, rv := range reviews {
		resp[i] = mapToResponse(rv)
	}
	return resp, nil
}

// UpdateStatus moves a review exactly one step along
// NOT_STARTED, IN_PROGRESS, SUBMITTED, COMPLETED.
func (s *service) UpdateStatus(ctx context.Context, companyID, id string, req UpdateReviewStatusRequest) (ReviewResponse, error) {
	target := strings.ToUpper(strings.TrimSpace(req.Status))
	switch target {
	case StatusNotStarted, StatusInProgress, StatusSubmitted, StatusCompleted:
	default:
		return ReviewResponse{}, reviewerrors.ErrInvalidStatus
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ReviewResponse{}, mapRepositoryError(tx.Error)
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	rv, err := s.load(ctx, repo, companyID, id)
	if err != nil {
		return ReviewResponse{}, err
	}

	if nextStatus[rv.Status] != target {
		s.logger.Warn("review transition rejected",
			zap.String("review_id", id),
			zap.String("from", rv.Status),
			zap.String("to", target),
		)
		return ReviewResponse{}, reviewerrors.ErrInvalidTransition
	}

	rv.Status = target
	if req.Summary != nil {
		rv.Summary = req.Summary
	}
	if err := repo.Update(ctx, rv); err != nil {
		s.logger.Error("update review status failed", zap.String("review_id", id), zap.Error(err))
		return ReviewResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return ReviewResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("review status updated", zap.String("review_id", id), zap.String("status", target))
	return mapToResponse(*rv), nil
}

func (s *service) AddManagerNote(ctx context.Context, companyID, authorID, id string, req AddManagerNoteRequest) (ReviewResponse, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ReviewResponse{}, mapRepositoryError(tx.Error)
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	rv, err := s.load(ctx, repo, companyID, id)
	if err != nil {
		return ReviewResponse{}, err
	}
	if rv.Status == StatusCompleted {
		return ReviewResponse{}, reviewerrors.ErrReviewCompleted
	}

	rv.ManagerReview = append(rv.ManagerReview, ManagerNote{
		AuthorID:  authorID,
		Note:      strings.TrimSpace(req.Note),
		CreatedAt: s.now(),
	})
	if err := repo.Update(ctx, rv); err != nil {
		s.logger.Error("add manager note failed", zap.String("review_id", id), zap.Error(err))
		return ReviewResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return ReviewResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("manager note added", zap.String("review_id", id), zap.Int("notes", len(rv.ManagerReview)))
	return mapToResponse(*rv), nil
}

func (s *service) AddGoal(ctx context.Context, companyID, id string, req AddGoalRequest) (ReviewResponse, error) {
	if req.Progress < 0 || req.Progress > 100 {
		return ReviewResponse{}, reviewerrors.ErrInvalidProgress
	}
	status := GoalOpen
	if req.Status != "" {
		status = strings.ToUpper(strings.TrimSpace(req.Status))
		if !slices.Contains(GoalStatuses, status) {
			return ReviewResponse{}, reviewerrors.ErrInvalidGoalStatus
		}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ReviewResponse{}, mapRepositoryError(tx.Error)
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	rv, err := s.load(ctx, repo, companyID, id)
	if err != nil {
		return ReviewResponse{}, err
	}
	if rv.Status == StatusCompleted {
		return ReviewResponse{}, reviewerrors.ErrReviewCompleted
	}

	g := Goal{
		ID:          uuid.New(),
		ReviewID:    rv.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Progress:    req.Progress,
		Status:      status,
	}
	if err := repo.CreateGoal(ctx, &g); err != nil {
		s.logger.Error("add goal failed", zap.String("review_id", id), zap.Error(err))
		return ReviewResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return ReviewResponse{}, mapRepositoryError(err)
	}

	rv.Goals = append(rv.Goals, g)
	s.logger.Info("goal added", zap.String("review_id", id), zap.String("goal_id", g.ID.String()))
	return mapToResponse(*rv), nil
}

func (s *service) load(ctx context.Context, repo Repository, companyID, id string) (*Review, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, reviewerrors.ErrReviewNotFound
	}
	rv, err := repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("load review failed", zap.String("review_id", id), zap.Error(err))
		}
		return nil, mapRepositoryError(err)
	}
	return rv, nil
}

func mapToResponse(rv Review) ReviewResponse {
	resp := ReviewResponse{
		ID:            rv.ID.String(),
		CompanyID:     rv.CompanyID.String(),
		EmployeeID:    rv.EmployeeID.String(),
		ReviewerID:    rv.ReviewerID.String(),
		ReviewCycleID: rv.ReviewCycleID,
		Status:        rv.Status,
		Summary:       rv.Summary,
		ManagerReview: make([]ManagerNoteResponse, len(rv.ManagerReview)),
		Goals:         make([]GoalResponse, len(rv.Goals)),
	}
	for i, n := range rv.ManagerReview {
		resp.ManagerReview[i] = ManagerNoteResponse{AuthorID: n.AuthorID, Note: n.Note, CreatedAt: n.CreatedAt}
	}
	for i, g := range rv.Goals {
		resp.Goals[i] = GoalResponse{
			ID:          g.ID.String(),
			Title:       g.Title,
			Description: g.Description,
			Progress:    g.Progress,
			Status:      g.Status,
		}
	}
	return resp
}
