package document_test

import (
	"context"
	"errors"
	"testing"

	"go-hr-portal/internal/document"
	documenterrors "go-hr-portal/internal/document/errors"
	"go-hr-portal/internal/shared/apperror"
	"go-hr-portal/internal/shared/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDocumentDB(t *testing.T) (*gorm.DB, string, string) {
	t.Helper()
	db, err := testutil.NewSQLiteDB(&document.Document{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	require.NoError(t, db.Exec(`CREATE TABLE employees (id TEXT PRIMARY KEY, company_id TEXT NOT NULL)`).Error)
	companyID, employeeID := uuid.NewString(), uuid.NewString()
	require.NoError(t, db.Exec(`INSERT INTO employees (id, company_id) VALUES (?, ?)`, employeeID, companyID).Error)
	return db, companyID, employeeID
}

func TestDocumentService(t *testing.T) {
	ctx := context.Background()
	uploader := uuid.NewString()

	t.Run("create list delete", func(t *testing.T) {
		db, companyID, employeeID := setupDocumentDB(t)
		svc := document.NewService(document.NewRepository(db))

		created, err := svc.Create(ctx, companyID, uploader, document.CreateDocumentRequest{
			EmployeeID: employeeID,
			Title:      "Employment contract",
			Category:   "contract",
			FileURL:    "https://files.example.com/contract.pdf",
		})
		require.NoError(t, err)
		assert.Equal(t, "CONTRACT", created.Category)
		assert.Equal(t, uploader, created.UploadedBy)

		docs, err := svc.ListByEmployee(ctx, companyID, employeeID)
		require.NoError(t, err)
		assert.Len(t, docs, 1)

		require.NoError(t, svc.Delete(ctx, companyID, created.ID))
		assert.ErrorIs(t, svc.Delete(ctx, companyID, created.ID), documenterrors.ErrDocumentNotFound)
	})

	t.Run("rejects unknown category and foreign employee", func(t *testing.T) {
		db, companyID, employeeID := setupDocumentDB(t)
		svc := document.NewService(document.NewRepository(db))

		_, err := svc.Create(ctx, companyID, uploader, document.CreateDocumentRequest{
			EmployeeID: employeeID, Title: "x", Category: "MEME", FileURL: "https://x.test/a",
		})
		assert.ErrorIs(t, err, documenterrors.ErrInvalidCategory)

		_, err = svc.Create(ctx, uuid.NewString(), uploader, document.CreateDocumentRequest{
			EmployeeID: employeeID, Title: "x", Category: "OTHER", FileURL: "https://x.test/a",
		})
		assert.ErrorIs(t, err, documenterrors.ErrEmployeeNotInCompany)
	})

	t.Run("storage down is unavailable", func(t *testing.T) {
		db, companyID, employeeID := setupDocumentDB(t)
		require.NoError(t, db.Exec(`DROP TABLE documents`).Error)
		svc := document.NewService(document.NewRepository(db))

		_, err := svc.ListByEmployee(ctx, companyID, employeeID)
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeServiceUnavailable))
		assert.False(t, errors.Is(err, documenterrors.ErrDocumentNotFound))
	})
}
