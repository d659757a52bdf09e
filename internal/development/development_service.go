package development

import (
	"context"
	"regexp"
	"strings"
	"time"

	developmenterrors "go-hr-portal/internal/development/errors"
	"go-hr-portal/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var badgeCodePattern = regexp.MustCompile(`^[A-Z0-9_]{2,50}$`)

type Service interface {
	Enroll(ctx context.Context, companyID string, req EnrollRequest) (EnrollmentResponse, error)
	CompleteEnrollment(ctx context.Context, companyID, enrollmentID string) (EnrollmentResponse, error)
	AwardBadge(ctx context.Context, companyID, awarderID string, req AwardBadgeRequest) (BadgeResponse, error)
	ListForEmployee(ctx context.Context, companyID, employeeID string) (ProgressResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("development.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("development.service")
	}
	return &service{repo: repo, logger: l, now: time.Now}
}

func (s *service) requireEmployee(ctx context.Context, companyID, employeeID string) (uuid.UUID, uuid.UUID, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, developmenterrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, developmenterrors.ErrInvalidEmployeeID
	}

	ok, err := s.repo.EmployeeExists(ctx, companyID, employeeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, mapRepositoryError(err)
	}
	if !ok {
		return uuid.Nil, uuid.Nil, developmenterrors.ErrEmployeeNotInCompany
	}
	return companyUUID, employeeUUID, nil
}

func (s *service) Enroll(ctx context.Context, companyID string, req EnrollRequest) (EnrollmentResponse, error) {
	course := strings.TrimSpace(req.CourseName)
	if course == "" {
		return EnrollmentResponse{}, apperror.RequiredField("course_name")
	}
	companyUUID, employeeUUID, err := s.requireEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		return EnrollmentResponse{}, err
	}

	e := &Enrollment{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		CourseName: course,
		Status:     EnrollmentEnrolled,
		EnrolledAt: s.now().UTC(),
	}
	if err := s.repo.CreateEnrollment(ctx, e); err != nil {
		s.logger.Error("create enrollment failed", zap.Error(err))
		return EnrollmentResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("employee enrolled",
		zap.String("enrollment_id", e.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return toEnrollmentResponse(*e), nil
}

func (s *service) CompleteEnrollment(ctx context.Context, companyID, enrollmentID string) (EnrollmentResponse, error) {
	if _, err := uuid.Parse(enrollmentID); err != nil {
		return EnrollmentResponse{}, developmenterrors.ErrEnrollmentNotFound
	}

	e, err := s.repo.FindEnrollment(ctx, companyID, enrollmentID)
	if err != nil {
		return EnrollmentResponse{}, mapRepositoryError(err)
	}
	if e.Status != EnrollmentEnrolled {
		return EnrollmentResponse{}, developmenterrors.ErrEnrollmentClosed
	}

	completedAt := s.now().UTC()
	e.Status = EnrollmentCompleted
	e.CompletedAt = &completedAt

	n, err := s.repo.CompleteEnrollment(ctx, e)
	if err != nil {
		s.logger.Error("complete enrollment failed", zap.String("enrollment_id", enrollmentID), zap.Error(err))
		return EnrollmentResponse{}, mapRepositoryError(err)
	}
	if n == 0 {
		return EnrollmentResponse{}, developmenterrors.ErrEnrollmentClosed
	}

	s.logger.Info("enrollment completed", zap.String("enrollment_id", enrollmentID))
	return toEnrollmentResponse(*e), nil
}

func (s *service) AwardBadge(ctx context.Context, companyID, awarderID string, req AwardBadgeRequest) (BadgeResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.BadgeCode))
	if !badgeCodePattern.MatchString(code) {
		return BadgeResponse{}, developmenterrors.ErrInvalidBadgeCode
	}
	awarderUUID, err := uuid.Parse(awarderID)
	if err != nil {
		return BadgeResponse{}, apperror.InvalidField("awarded_by")
	}
	companyUUID, employeeUUID, err := s.requireEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		return BadgeResponse{}, err
	}

	b := &UserBadge{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		BadgeCode:  code,
		AwardedBy:  awarderUUID,
		AwardedAt:  s.now().UTC(),
	}
	if err := s.repo.CreateBadge(ctx, b); err != nil {
		mapped := mapRepositoryError(err)
		if mapped != developmenterrors.ErrBadgeAlreadyAwarded {
			s.logger.Error("award badge failed", zap.Error(err))
		}
		return BadgeResponse{}, mapped
	}

	s.logger.Info("badge awarded",
		zap.String("employee_id", req.EmployeeID),
		zap.String("badge_code", code),
	)
	return toBadgeResponse(*b), nil
}

func (s *service) ListForEmployee(ctx context.Context, companyID, employeeID string) (ProgressResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return ProgressResponse{}, developmenterrors.ErrInvalidEmployeeID
	}

	var (
		enrollments []Enrollment
		badges      []UserBadge
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		enrollments, err = s.repo.FindEnrollments(gctx, companyID, employeeID)
		return err
	})
	g.Go(func() error {
		var err error
		badges, err = s.repo.FindBadges(gctx, companyID, employeeID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("list development failed", zap.String("employee_id", employeeID), zap.Error(err))
		return ProgressResponse{}, mapRepositoryError(err)
	}

	resp := ProgressResponse{
		EmployeeID:  employeeID,
		Enrollments: make([]EnrollmentResponse, len(enrollments)),
		Badges:      make([]BadgeResponse, len(badges)),
	}
	for i, e := range enrollments {
		resp.Enrollments[i] = toEnrollmentResponse(e)
	}
	for i, b := range badges {
		resp.Badges[i] = toBadgeResponse(b)
	}
	return resp, nil
}

func toEnrollmentResponse(e Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:          e.ID.String(),
		EmployeeID:  e.EmployeeID.String(),
		CourseName:  e.CourseName,
		Status:      e.Status,
		EnrolledAt:  e.EnrolledAt,
		CompletedAt: e.CompletedAt,
	}
}

func toBadgeResponse(b UserBadge) BadgeResponse {
	return BadgeResponse{
		ID:         b.ID.String(),
		EmployeeID: b.EmployeeID.String(),
		BadgeCode:  b.BadgeCode,
		AwardedBy:  b.AwardedBy.String(),
		AwardedAt:  b.AwardedAt,
	}
}
