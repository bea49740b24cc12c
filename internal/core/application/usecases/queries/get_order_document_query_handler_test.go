package queries_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/documentrepo"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/document"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDocumentDownload(t *testing.T) (*gorm.DB, *orderrepo.GormOrderRepository, *documentrepo.GormDocumentRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.ActionDTO{}, &orderrepo.ContactDTO{},
		&documentrepo.DocumentDTO{},
	))

	return db,
		orderrepo.NewGormOrderRepository(db, nopTracker{}),
		documentrepo.NewGormDocumentRepository(db, nopTracker{})
}

func seedOrderWithDocument(
	t *testing.T,
	orderRepo *orderrepo.GormOrderRepository,
	documentRepo *documentrepo.GormDocumentRepository,
	senderRoleID kernel.UUID,
	content []byte,
) (*order.Order, *document.Document) {
	t.Helper()

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	doc, err := document.NewDocument(kernel.NewUUID(), document.KindJSON, "waybill.json", content, base)
	require.NoError(t, err)
	require.NoError(t, documentRepo.Add(context.Background(), doc))

	roleID := senderRoleID
	aggregate, err := order.NewOrder(kernel.NewUUID(), doc.ID(), &roleID, base)
	require.NoError(t, err)
	require.NoError(t, orderRepo.Add(context.Background(), aggregate))

	return aggregate, doc
}

func TestGetOrderDocumentQueryHandler_Download(t *testing.T) {
	db, orderRepo, documentRepo := setupDocumentDownload(t)
	handler := queries.NewGetOrderDocumentQueryHandler(db)

	senderRoleID := kernel.NewUUID()
	content := []byte(`{"cargo":"steel coils","weight":2400}`)
	aggregate, doc := seedOrderWithDocument(t, orderRepo, documentRepo, senderRoleID, content)

	query, err := queries.NewGetOrderDocumentQuery(aggregate.ID(), senderScope(senderRoleID))
	require.NoError(t, err)

	response, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)
	assert.True(t, response.DocumentID.IsEqual(doc.ID()))
	assert.Equal(t, document.KindJSON, response.Kind)
	assert.Equal(t, "waybill.json", response.Name)
	assert.Equal(t, content, response.Content)
	assert.Equal(t, doc.SHA256(), response.SHA256)
	assert.Equal(t, doc.SHA512(), response.SHA512)
}

func TestGetOrderDocumentQueryHandler_OutOfScopeReportsNotFound(t *testing.T) {
	db, orderRepo, documentRepo := setupDocumentDownload(t)
	handler := queries.NewGetOrderDocumentQueryHandler(db)

	aggregate, _ := seedOrderWithDocument(t, orderRepo, documentRepo, kernel.NewUUID(), []byte(`{"cargo":"pipes"}`))

	query, err := queries.NewGetOrderDocumentQuery(aggregate.ID(), senderScope(kernel.NewUUID()))
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), query)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetOrderDocumentQueryHandler_PreauthorizedBypassesScope(t *testing.T) {
	db, orderRepo, documentRepo := setupDocumentDownload(t)
	handler := queries.NewGetOrderDocumentQueryHandler(db)

	aggregate, doc := seedOrderWithDocument(t, orderRepo, documentRepo, kernel.NewUUID(), []byte(`{"cargo":"lumber"}`))

	query, err := queries.NewPreauthorizedGetOrderDocumentQuery(aggregate.ID())
	require.NoError(t, err)

	response, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)
	assert.True(t, response.DocumentID.IsEqual(doc.ID()))
}

func TestGetOrderDocumentQueryHandler_EmptyScopeReportsNotFound(t *testing.T) {
	db, orderRepo, documentRepo := setupDocumentDownload(t)
	handler := queries.NewGetOrderDocumentQueryHandler(db)

	aggregate, _ := seedOrderWithDocument(t, orderRepo, documentRepo, kernel.NewUUID(), []byte(`{"cargo":"glass"}`))

	query, err := queries.NewGetOrderDocumentQuery(aggregate.ID(), services.OrderAccessScope{})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), query)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetOrderDocumentQueryHandler_MissingOrder(t *testing.T) {
	db, _, _ := setupDocumentDownload(t)
	handler := queries.NewGetOrderDocumentQueryHandler(db)

	query, err := queries.NewGetOrderDocumentQuery(kernel.NewUUID(), senderScope(kernel.NewUUID()))
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), query)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
