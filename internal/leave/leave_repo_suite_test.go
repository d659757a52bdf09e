package leave_test

import (
	"context"

	"go-hr-portal/internal/leave"
	leaveerrors "go-hr-portal/internal/leave/errors"
	"go-hr-portal/internal/shared/testutil"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Leave requests on sqlite", func() {
	var (
		db         *gorm.DB
		repo       leave.Repository
		svc        leave.Service
		ctx        context.Context
		companyID  string
		employeeID string
		actorID    string
	)

	create := func(start, end string) (leave.LeaveResponse, error) {
		return svc.Create(ctx, companyID, actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "ANNUAL",
			StartDate:  start,
			EndDate:    end,
			Reason:     "rest",
		})
	}

	BeforeEach(func() {
		var err error
		db, err = testutil.NewSQLiteDB(&leave.Leave{})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Exec(`CREATE TABLE employees (
			id TEXT PRIMARY KEY, company_id TEXT NOT NULL, full_name TEXT NOT NULL, email TEXT NOT NULL)`).Error).To(Succeed())

		ctx = context.Background()
		companyID = uuid.NewString()
		employeeID = uuid.NewString()
		actorID = uuid.NewString()
		Expect(db.Exec(`INSERT INTO employees (id, company_id, full_name, email) VALUES (?, ?, 'Jane Doe', 'jane@acme.test')`,
			employeeID, companyID).Error).To(Succeed())

		repo = leave.NewRepository(db)
		svc = leave.NewService(db, repo, nil)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("rejects a range touching a pending request and accepts the adjacent one", func() {
		_, err := create("2026-01-10", "2026-01-12")
		Expect(err).NotTo(HaveOccurred())

		_, err = create("2026-01-12", "2026-01-14")
		Expect(err).To(MatchError(leaveerrors.ErrLeaveOverlap))

		resp, err := create("2026-01-13", "2026-01-15")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.TotalDays).To(Equal(3))
	})

	It("ignores rejected requests when checking overlap", func() {
		first, err := create("2026-02-02", "2026-02-04")
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.UpdateStatus(ctx, companyID, actorID, first.ID, leave.UpdateLeaveStatusRequest{Status: leave.StatusRejected})
		Expect(err).NotTo(HaveOccurred())

		_, err = create("2026-02-03", "2026-02-05")
		Expect(err).NotTo(HaveOccurred())
	})

	It("approves once and then refuses to decide or delete again", func() {
		created, err := create("2026-03-02", "2026-03-03")
		Expect(err).NotTo(HaveOccurred())

		approved, err := svc.UpdateStatus(ctx, companyID, actorID, created.ID, leave.UpdateLeaveStatusRequest{Status: leave.StatusApproved})
		Expect(err).NotTo(HaveOccurred())
		Expect(approved.ApprovedAt).NotTo(BeNil())
		Expect(*approved.ApprovedBy).To(Equal(actorID))

		stored, err := repo.FindByIDAndCompany(ctx, companyID, created.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.Status).To(Equal(leave.StatusApproved))
		Expect(stored.ApprovedAt).NotTo(BeNil())

		_, err = svc.UpdateStatus(ctx, companyID, actorID, created.ID, leave.UpdateLeaveStatusRequest{Status: leave.StatusRejected})
		Expect(err).To(MatchError(leaveerrors.ErrLeaveNotPending))

		Expect(svc.Delete(ctx, companyID, created.ID)).To(MatchError(leaveerrors.ErrApprovedLeaveImmutable))
	})

	It("deletes a pending request", func() {
		created, err := create("2026-04-06", "2026-04-07")
		Expect(err).NotTo(HaveOccurred())

		Expect(svc.Delete(ctx, companyID, created.ID)).To(Succeed())

		_, err = svc.GetByID(ctx, companyID, created.ID)
		Expect(err).To(MatchError(leaveerrors.ErrLeaveNotFound))
	})

	It("does not leak requests across companies", func() {
		created, err := create("2026-05-04", "2026-05-05")
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.GetByID(ctx, uuid.NewString(), created.ID)
		Expect(err).To(MatchError(leaveerrors.ErrLeaveNotFound))

		list, err := repo.FindAll(ctx, companyID, leave.LeaveFilter{Status: leave.StatusPending})
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
	})

	It("refuses an employee of another company", func() {
		_, err := svc.Create(ctx, uuid.NewString(), actorID, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			LeaveType:  "SICK",
			StartDate:  "2026-06-01",
			EndDate:    "2026-06-02",
			Reason:     "flu",
		})
		Expect(err).To(MatchError(leaveerrors.ErrEmployeeNotInCompany))
	})
})
