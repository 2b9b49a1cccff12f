package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/ticket"
	"github.com/opsdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTicketRepository implements ticket.Repository using GORM
type GormTicketRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormTicketRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds a ticket by its ID with notes, tasks and attachments
func (r *GormTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := r.db.WithContext(ctx).
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a ticket by its human-facing number
func (r *GormTicketRepository) FindByNumber(ctx context.Context, number int) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := r.db.WithContext(ctx).
		Preload("Notes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&model, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalMessageID finds the ticket created from a mailbox message.
// Returns (nil, nil) when no ticket has claimed the message yet.
func (r *GormTicketRepository) FindByExternalMessageID(ctx context.Context, externalMessageID string) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := r.db.WithContext(ctx).
		First(&model, "external_message_id = ?", externalMessageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all tickets matching the filter
func (r *GormTicketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ticket.Ticket, error) {
	var ticketModels []models.TicketModel

	query := r.db.WithContext(ctx).Model(&models.TicketModel{})
	query = r.applyFilter(query, filter)

	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, err
	}
	tickets := make([]ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		tickets[i] = *model.ToDomain()
	}
	return tickets, nil
}

// FindByStatus finds tickets in a status
func (r *GormTicketRepository) FindByStatus(ctx context.Context, status ticket.TicketStatus, filter shared.Filter) ([]ticket.Ticket, error) {
	var ticketModels []models.TicketModel

	query := r.db.WithContext(ctx).Model(&models.TicketModel{}).
		Where("status = ?", status)
	query = r.applyFilter(query, filter)

	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, err
	}
	tickets := make([]ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		tickets[i] = *model.ToDomain()
	}
	return tickets, nil
}

// FindByAssignee finds tickets assigned to a user
func (r *GormTicketRepository) FindByAssignee(ctx context.Context, assigneeID uuid.UUID, filter shared.Filter) ([]ticket.Ticket, error) {
	var ticketModels []models.TicketModel

	query := r.db.WithContext(ctx).Model(&models.TicketModel{}).
		Where("assignee_id = ?", assigneeID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, err
	}
	tickets := make([]ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		tickets[i] = *model.ToDomain()
	}
	return tickets, nil
}

// FindByProject finds tickets on a project ordered by their manual position
func (r *GormTicketRepository) FindByProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]ticket.Ticket, error) {
	var ticketModels []models.TicketModel

	query := r.db.WithContext(ctx).Model(&models.TicketModel{}).
		Where("project_id = ?", projectID)
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("project_position ASC")

	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, err
	}
	tickets := make([]ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		tickets[i] = *model.ToDomain()
	}
	return tickets, nil
}

// FindSnoozedDue finds snoozed tickets whose wake time has passed
func (r *GormTicketRepository) FindSnoozedDue(ctx context.Context, now time.Time) ([]ticket.Ticket, error) {
	var ticketModels []models.TicketModel

	if err := r.db.WithContext(ctx).Model(&models.TicketModel{}).
		Where("snoozed_until IS NOT NULL AND snoozed_until <= ?", now).
		Order("snoozed_until ASC").
		Find(&ticketModels).Error; err != nil {
		return nil, err
	}
	tickets := make([]ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		tickets[i] = *model.ToDomain()
	}
	return tickets, nil
}

// MaxNumber returns the highest ticket number ever assigned, or 0 when none exist.
// Soft-deleted tickets keep their numbers, so they stay in the max.
func (r *GormTicketRepository) MaxNumber(ctx context.Context) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).Model(&models.TicketModel{}).
		Unscoped().
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// MaxProjectPosition returns the highest manual position on a project, or 0 when empty
func (r *GormTicketRepository) MaxProjectPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).Model(&models.TicketModel{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(project_position), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// Save creates or updates a ticket
func (r *GormTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Convert to persistence model
		model := models.TicketModelFromDomain(t)

		// Save the ticket without auto-saving associations
		if err := tx.Omit("Notes", "Tasks", "Attachments").Save(model).Error; err != nil {
			return err
		}

		if t.ID != uuid.Nil {
			if err := r.saveChildren(tx, t); err != nil {
				return err
			}
		}

		return nil
	})
	return translateTicketSaveError(err)
}

// translateTicketSaveError maps unique-index violations to domain errors the
// caller can retry or reject on
func translateTicketSaveError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err, "idx_ticket_number", "tickets.number") {
		return shared.NewDomainError("TICKET_NUMBER_TAKEN", "Ticket number is already in use")
	}
	if isUniqueViolation(err, "idx_ticket_external_message_id", "tickets.external_message_id") {
		return shared.NewDomainError("DUPLICATE_MESSAGE", "A ticket for this mailbox message already exists")
	}
	return err
}

// SaveWithEvents saves a new ticket and writes its domain events to the outbox
// in the same transaction. Creation has no prior version to check, so this is
// the outbox counterpart of Save rather than SaveWithLock.
func (r *GormTicketRepository) SaveWithEvents(ctx context.Context, t *ticket.Ticket, events []shared.DomainEvent) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.TicketModelFromDomain(t)

		if err := tx.Omit("Notes", "Tasks", "Attachments").Save(model).Error; err != nil {
			return err
		}

		if t.ID != uuid.Nil {
			if err := r.saveChildren(tx, t); err != nil {
				return err
			}
		}

		if r.outboxSaver != nil && len(events) > 0 {
			if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
				return fmt.Errorf("failed to save events to outbox: %w", err)
			}
		}

		return nil
	})
	return translateTicketSaveError(err)
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormTicketRepository) SaveWithLock(ctx context.Context, t *ticket.Ticket) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.updateWithVersionCheck(tx, t); err != nil {
			return err
		}
		return r.saveChildren(tx, t)
	})
	return translateTicketSaveError(err)
}

// SaveWithLockAndEvents saves with optimistic locking and persists domain events atomically
// This implements the transactional outbox pattern - events are saved to the outbox table
// in the same transaction as the aggregate, ensuring guaranteed event delivery
func (r *GormTicketRepository) SaveWithLockAndEvents(ctx context.Context, t *ticket.Ticket, events []shared.DomainEvent) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.updateWithVersionCheck(tx, t); err != nil {
			return err
		}
		if err := r.saveChildren(tx, t); err != nil {
			return err
		}

		// Save events to outbox within the same transaction
		if r.outboxSaver != nil && len(events) > 0 {
			if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
				return fmt.Errorf("failed to save events to outbox: %w", err)
			}
		}

		return nil
	})
	return translateTicketSaveError(err)
}

// updateWithVersionCheck updates the ticket row guarded by its version column
func (r *GormTicketRepository) updateWithVersionCheck(tx *gorm.DB, t *ticket.Ticket) error {
	var currentVersion int
	versionQuery := tx.Model(&models.TicketModel{}).
		Where("id = ?", t.ID).
		Select("version").
		Scan(&currentVersion)
	if versionQuery.Error != nil {
		return versionQuery.Error
	}
	// Scan reports zero rows through RowsAffected, not ErrRecordNotFound
	if versionQuery.RowsAffected == 0 {
		return shared.ErrNotFound
	}

	if currentVersion != t.Version {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The ticket has been modified by another user")
	}

	t.Version++
	t.UpdatedAt = time.Now()

	// Unset message IDs are stored as NULL so the unique index skips them
	var externalMessageID *string
	if t.ExternalMessageID != "" {
		externalMessageID = &t.ExternalMessageID
	}

	result := tx.Model(&models.TicketModel{}).
		Where("id = ? AND version = ?", t.ID, currentVersion).
		Updates(map[string]interface{}{
			"subject":              t.Subject,
			"body":                 t.Body,
			"status":               t.Status,
			"priority":             t.Priority,
			"source":               t.Source,
			"requester_contact_id": t.RequesterContactID,
			"assignee_id":          t.AssigneeID,
			"project_id":           t.ProjectID,
			"project_position":     t.ProjectPosition,
			"external_message_id":  externalMessageID,
			"snoozed_until":        t.SnoozedUntil,
			"closed_at":            t.ClosedAt,
			"version":              t.Version,
			"updated_at":           t.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The ticket has been modified by another user")
	}

	return nil
}

// saveChildren reconciles notes, tasks and attachments with the aggregate state
func (r *GormTicketRepository) saveChildren(tx *gorm.DB, t *ticket.Ticket) error {
	// Notes
	noteIDs := make([]uuid.UUID, len(t.Notes))
	for i, note := range t.Notes {
		noteIDs[i] = note.ID
	}
	if len(noteIDs) > 0 {
		if err := tx.Where("ticket_id = ? AND id NOT IN ?", t.ID, noteIDs).
			Delete(&models.TicketNoteModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("ticket_id = ?", t.ID).
			Delete(&models.TicketNoteModel{}).Error; err != nil {
			return err
		}
	}
	for i := range t.Notes {
		t.Notes[i].TicketID = t.ID
		noteModel := models.TicketNoteModelFromDomain(&t.Notes[i])
		if err := tx.Save(noteModel).Error; err != nil {
			return err
		}
	}

	// Tasks
	taskIDs := make([]uuid.UUID, len(t.Tasks))
	for i, task := range t.Tasks {
		taskIDs[i] = task.ID
	}
	if len(taskIDs) > 0 {
		if err := tx.Where("ticket_id = ? AND id NOT IN ?", t.ID, taskIDs).
			Delete(&models.TicketTaskModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("ticket_id = ?", t.ID).
			Delete(&models.TicketTaskModel{}).Error; err != nil {
			return err
		}
	}
	for i := range t.Tasks {
		t.Tasks[i].TicketID = t.ID
		taskModel := models.TicketTaskModelFromDomain(&t.Tasks[i])
		if err := tx.Save(taskModel).Error; err != nil {
			return err
		}
	}

	// Attachments
	attachmentIDs := make([]uuid.UUID, len(t.Attachments))
	for i, attachment := range t.Attachments {
		attachmentIDs[i] = attachment.ID
	}
	if len(attachmentIDs) > 0 {
		if err := tx.Where("ticket_id = ? AND id NOT IN ?", t.ID, attachmentIDs).
			Delete(&models.TicketAttachmentModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("ticket_id = ?", t.ID).
			Delete(&models.TicketAttachmentModel{}).Error; err != nil {
			return err
		}
	}
	for i := range t.Attachments {
		t.Attachments[i].TicketID = t.ID
		attachmentModel := models.TicketAttachmentModelFromDomain(&t.Attachments[i])
		if err := tx.Save(attachmentModel).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete deletes a ticket (soft delete)
func (r *GormTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TicketModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts tickets with optional filters
func (r *GormTicketRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TicketModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts open work grouped by status
func (r *GormTicketRepository) CountByStatus(ctx context.Context) (map[ticket.TicketStatus]int64, error) {
	var rows []struct {
		Status ticket.TicketStatus
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.TicketModel{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[ticket.TicketStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// applyFilter applies filter options to the query
func (r *GormTicketRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with whitelist validation to prevent SQL injection
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, TicketSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			// Default ordering if invalid field
			query = query.Order("created_at DESC")
		}
	} else {
		// Default ordering
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTicketRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("subject ILIKE ? OR body ILIKE ?",
			searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "priority":
			query = query.Where("priority = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		case "assignee_id":
			query = query.Where("assignee_id = ?", value)
		case "unassigned":
			if b, ok := value.(bool); ok && b {
				query = query.Where("assignee_id IS NULL")
			}
		case "project_id":
			query = query.Where("project_id = ?", value)
		case "requester_contact_id":
			query = query.Where("requester_contact_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormTicketRepository implements ticket.Repository
var _ ticket.Repository = (*GormTicketRepository)(nil)
