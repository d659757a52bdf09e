package attendance_test

import (
	"bytes"
	"context"
	"testing"

	"go-hr-portal/internal/attendance"
	attendanceerrors "go-hr-portal/internal/attendance/errors"
	"go-hr-portal/internal/shared/apperror"
	"go-hr-portal/internal/shared/testutil"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func TestAttendanceSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Suite")
}

func strPtr(s string) *string { return &s }

var _ = Describe("Attendance records on sqlite", func() {
	var (
		db        *gorm.DB
		svc       attendance.Service
		ctx       context.Context
		companyID string
		alice     string
		bob       string
	)

	BeforeEach(func() {
		var err error
		db, err = testutil.NewSQLiteDB(&attendance.Attendance{})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Migrator().HasTable("employees")).To(BeTrue())

		ctx = context.Background()
		companyID = uuid.NewString()
		alice = uuid.NewString()
		bob = uuid.NewString()
		Expect(db.Exec(`INSERT INTO employees (id, company_id, full_name, department) VALUES (?, ?, 'Alice', 'Engineering'), (?, ?, 'Bob', 'Sales')`,
			alice, companyID, bob, companyID).Error).To(Succeed())

		svc = attendance.NewService(db, attendance.NewRepository(db))
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	record := func(employeeID, date, in, out string) (attendance.AttendanceResponse, error) {
		return svc.ClockEvent(ctx, companyID, attendance.ClockEventRequest{
			EmployeeID: employeeID,
			Date:       date,
			CheckIn:    strPtr(in),
			CheckOut:   strPtr(out),
		})
	}

	It("computes hours and refuses a second record for the same day", func() {
		resp, err := record(alice, "2026-01-05", "08:00", "17:30")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.WorkingHours).To(Equal(9.5))
		Expect(resp.OvertimeHours).To(Equal(1.5))
		Expect(resp.Status).To(Equal(attendance.StatusPresent))
		Expect(resp.EmployeeName).To(Equal("Alice"))

		_, err = record(alice, "2026-01-05", "09:00", "17:00")
		Expect(err).To(MatchError(attendanceerrors.ErrAttendanceExists))

		_, err = record(bob, "2026-01-05", "09:00", "17:00")
		Expect(err).NotTo(HaveOccurred())
	})

	It("accepts an explicit status and rejects an unknown one", func() {
		resp, err := svc.ClockEvent(ctx, companyID, attendance.ClockEventRequest{
			EmployeeID: alice,
			Date:       "2026-01-06",
			Status:     "absent",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.Status).To(Equal(attendance.StatusAbsent))
		Expect(resp.WorkingHours).To(BeZero())

		_, err = svc.ClockEvent(ctx, companyID, attendance.ClockEventRequest{
			EmployeeID: alice,
			Date:       "2026-01-07",
			Status:     "SICK",
		})
		Expect(err).To(MatchError(attendanceerrors.ErrInvalidStatus))
	})

	It("refuses employees of another company", func() {
		_, err := svc.ClockEvent(ctx, uuid.NewString(), attendance.ClockEventRequest{EmployeeID: alice, Date: "2026-01-05"})
		Expect(err).To(MatchError(attendanceerrors.ErrEmployeeNotInCompany))
	})

	It("recomputes hours on correction and keeps the date", func() {
		created, err := record(alice, "2026-01-05", "09:00", "17:00")
		Expect(err).NotTo(HaveOccurred())
		Expect(created.OvertimeHours).To(BeZero())

		updated, err := svc.UpdateTimes(ctx, companyID, created.ID, attendance.UpdateTimesRequest{CheckOut: strPtr("19:15")})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.AttendanceDate).To(Equal("2026-01-05"))
		Expect(updated.WorkingHours).To(Equal(10.25))
		Expect(updated.OvertimeHours).To(Equal(2.25))

		_, err = svc.UpdateTimes(ctx, companyID, uuid.NewString(), attendance.UpdateTimesRequest{})
		Expect(err).To(MatchError(attendanceerrors.ErrAttendanceNotFound))
	})

	It("filters by date, employee and department, newest first", func() {
		_, err := record(alice, "2026-01-05", "09:00", "17:00")
		Expect(err).NotTo(HaveOccurred())
		_, err = record(alice, "2026-01-06", "09:00", "17:00")
		Expect(err).NotTo(HaveOccurred())
		_, err = record(bob, "2026-01-06", "09:00", "17:00")
		Expect(err).NotTo(HaveOccurred())

		all, err := svc.Query(ctx, companyID, attendance.AttendanceFilter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(all.Degraded).To(BeFalse())
		Expect(all.Items).To(HaveLen(3))
		Expect(all.Items[0].AttendanceDate).To(Equal("2026-01-06"))

		byDate, err := svc.Query(ctx, companyID, attendance.AttendanceFilter{Date: "2026-01-05"})
		Expect(err).NotTo(HaveOccurred())
		Expect(byDate.Items).To(HaveLen(1))

		byDept, err := svc.Query(ctx, companyID, attendance.AttendanceFilter{Department: "Sales"})
		Expect(err).NotTo(HaveOccurred())
		Expect(byDept.Items).To(HaveLen(1))
		Expect(byDept.Items[0].EmployeeName).To(Equal("Bob"))

		byEmployee, err := svc.Query(ctx, companyID, attendance.AttendanceFilter{EmployeeID: alice})
		Expect(err).NotTo(HaveOccurred())
		Expect(byEmployee.Items).To(HaveLen(2))
	})

	It("degrades reads when the table is gone but keeps failing writes", func() {
		Expect(db.Exec(`DROP TABLE attendances`).Error).To(Succeed())

		result, err := svc.Query(ctx, companyID, attendance.AttendanceFilter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Degraded).To(BeTrue())
		Expect(result.Items).To(BeEmpty())

		_, err = record(alice, "2026-01-05", "09:00", "17:00")
		Expect(apperror.HasCode(err, apperror.CodeServiceUnavailable)).To(BeTrue())

		_, err = svc.ExportXLSX(ctx, companyID, attendance.AttendanceFilter{})
		Expect(err).To(MatchError(apperror.ErrServiceUnavailable))
	})

	It("exports the filtered rows to a workbook", func() {
		_, err := record(alice, "2026-01-05", "08:00", "17:30")
		Expect(err).NotTo(HaveOccurred())
		_, err = record(bob, "2026-01-05", "09:00", "17:00")
		Expect(err).NotTo(HaveOccurred())

		buf, err := svc.ExportXLSX(ctx, companyID, attendance.AttendanceFilter{Department: "Engineering"})
		Expect(err).NotTo(HaveOccurred())

		f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		rows, err := f.GetRows("Attendance")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0][0]).To(Equal("Date"))
		Expect(rows[1][1]).To(Equal("Alice"))
		Expect(rows[1][6]).To(Equal("9.5"))
	})
})
