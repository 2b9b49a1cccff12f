package ticket

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/ticket"
	"github.com/opsdesk/backend/internal/infrastructure/sanitize"
)

// ticketNumberAttempts bounds retries when concurrent creates race for the
// same ticket number
const ticketNumberAttempts = 10

// allowedAttachmentTypes is the whitelist for manual uploads through the API
// Inbound mail and intake attachments are filtered by their callers, which
// honor the runtime mail_attachment_types setting
var allowedAttachmentTypes = map[string]bool{
	// Images
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	// Documents
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	// Text
	"text/plain": true,
	"text/csv":   true,
	// Archives
	"application/zip": true,
}

// ObjectStorage stores attachment bytes outside the database
// Implemented by the infrastructure storage layer
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// AttachmentDownload couples attachment metadata with its content stream
// The caller must close Body
type AttachmentDownload struct {
	Attachment AttachmentResponse
	Body       io.ReadCloser
}

// TicketService handles helpdesk ticket operations
type TicketService struct {
	ticketRepo     ticket.Repository
	sanitizer      *sanitize.Sanitizer
	storage        ObjectStorage
	logger         *zap.Logger
	eventPublisher shared.EventPublisher
}

// NewTicketService creates a new TicketService
func NewTicketService(ticketRepo ticket.Repository, sanitizer *sanitize.Sanitizer, storage ObjectStorage, logger *zap.Logger) *TicketService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		ticketRepo: ticketRepo,
		sanitizer:  sanitizer,
		storage:    storage,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *TicketService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new ticket from the API
func (s *TicketService) Create(ctx context.Context, req CreateTicketRequest, createdBy *uuid.UUID) (*TicketResponse, error) {
	source := ticket.TicketSourceManual
	if req.Source != "" {
		source = ticket.TicketSource(req.Source)
	}
	body := s.sanitizer.Sanitize(req.Body)

	t, err := s.createWithNumberRetry(ctx, func(number int) (*ticket.Ticket, error) {
		t, err := ticket.NewTicket(number, req.Subject, body, source)
		if err != nil {
			return nil, err
		}
		if req.Priority != "" {
			if err := t.SetPriority(ticket.TicketPriority(req.Priority)); err != nil {
				return nil, err
			}
		}
		if req.RequesterContactID != nil {
			t.SetRequester(req.RequesterContactID)
		}
		if req.AssigneeID != nil {
			if err := t.Assign(req.AssigneeID); err != nil {
				return nil, err
			}
		}
		if req.ProjectID != nil {
			maxPos, err := s.ticketRepo.MaxProjectPosition(ctx, *req.ProjectID)
			if err != nil {
				return nil, err
			}
			t.MoveToProject(req.ProjectID, maxPos+1)
		}
		if createdBy != nil {
			t.SetCreatedBy(*createdBy)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// CreateFromMail creates a ticket from a mailbox message
// The external message ID makes the creation idempotent: a second attempt for
// the same message fails with a DUPLICATE_MESSAGE error
func (s *TicketService) CreateFromMail(ctx context.Context, req CreateMailTicketRequest) (*TicketResponse, error) {
	if strings.TrimSpace(req.ExternalMessageID) == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE_ID", "External message ID cannot be empty")
	}

	subject := mailSubject(req.Subject)
	body := s.sanitizer.Sanitize(req.BodyHTML)

	t, err := s.createWithNumberRetry(ctx, func(number int) (*ticket.Ticket, error) {
		t, err := ticket.NewTicket(number, subject, body, ticket.TicketSourceEmail)
		if err != nil {
			return nil, err
		}
		if err := t.SetExternalMessageID(req.ExternalMessageID); err != nil {
			return nil, err
		}
		if req.RequesterContactID != nil {
			t.SetRequester(req.RequesterContactID)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	// Attachments are stored after the ticket row exists so a number retry
	// never re-uploads bytes. A storage failure leaves a valid ticket behind
	// and the poller records the error against its entry.
	if len(req.Attachments) > 0 {
		if err := s.attachInbound(ctx, t, req.Attachments); err != nil {
			return nil, err
		}
		if err := s.ticketRepo.SaveWithLock(ctx, t); err != nil {
			return nil, err
		}
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// CreateFromIntake opens a ticket for a scanner drop folder submission.
// The body arrives pre-escaped plain text, never raw scanner output, so it
// runs through the same sanitizer as mail bodies.
func (s *TicketService) CreateFromIntake(ctx context.Context, req CreateIntakeTicketRequest) (*TicketResponse, error) {
	if strings.TrimSpace(req.ExternalMessageID) == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE_ID", "External message ID cannot be empty")
	}

	subject := mailSubject(req.Subject)
	body := s.sanitizer.Sanitize(req.BodyHTML)

	t, err := s.createWithNumberRetry(ctx, func(number int) (*ticket.Ticket, error) {
		t, err := ticket.NewTicket(number, subject, body, ticket.TicketSourceIntake)
		if err != nil {
			return nil, err
		}
		if err := t.SetExternalMessageID(req.ExternalMessageID); err != nil {
			return nil, err
		}
		if req.RequesterContactID != nil {
			t.SetRequester(req.RequesterContactID)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	if len(req.Attachments) > 0 {
		if err := s.attachInbound(ctx, t, req.Attachments); err != nil {
			return nil, err
		}
		if err := s.ticketRepo.SaveWithLock(ctx, t); err != nil {
			return nil, err
		}
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// CreateRecurring creates a ticket occurrence for a scheduled ticket
func (s *TicketService) CreateRecurring(ctx context.Context, req CreateRecurringTicketRequest) (*TicketResponse, error) {
	body := s.sanitizer.Sanitize(req.BodyHTML)

	t, err := s.createWithNumberRetry(ctx, func(number int) (*ticket.Ticket, error) {
		t, err := ticket.NewTicket(number, req.Subject, body, ticket.TicketSourceRecurring)
		if err != nil {
			return nil, err
		}
		if req.Priority != "" {
			if err := t.SetPriority(ticket.TicketPriority(req.Priority)); err != nil {
				return nil, err
			}
		}
		if req.AssigneeID != nil {
			if err := t.Assign(req.AssigneeID); err != nil {
				return nil, err
			}
		}
		if req.ProjectID != nil {
			maxPos, err := s.ticketRepo.MaxProjectPosition(ctx, *req.ProjectID)
			if err != nil {
				return nil, err
			}
			t.MoveToProject(req.ProjectID, maxPos+1)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// createWithNumberRetry allocates the next ticket number, builds the ticket,
// and saves it with its creation events. When a concurrent create takes the
// number first, the unique index rejects the insert and the loop allocates a
// fresh number.
func (s *TicketService) createWithNumberRetry(ctx context.Context, build func(number int) (*ticket.Ticket, error)) (*ticket.Ticket, error) {
	for attempt := 0; attempt < ticketNumberAttempts; attempt++ {
		maxNumber, err := s.ticketRepo.MaxNumber(ctx)
		if err != nil {
			return nil, err
		}

		t, err := build(maxNumber + 1)
		if err != nil {
			return nil, err
		}

		events := t.GetDomainEvents()
		if err := s.ticketRepo.SaveWithEvents(ctx, t, events); err != nil {
			if isTicketNumberConflict(err) {
				continue
			}
			return nil, err
		}
		t.ClearDomainEvents()

		return t, nil
	}

	return nil, shared.NewDomainError("NUMBER_CONTENTION", "Could not allocate a ticket number, please retry")
}

// Get retrieves a ticket by ID
func (s *TicketService) Get(ctx context.Context, ticketID uuid.UUID) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// GetByNumber retrieves a ticket by its human-facing number
func (s *TicketService) GetByNumber(ctx context.Context, number int) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// List retrieves tickets with filtering and pagination
func (s *TicketService) List(ctx context.Context, filter TicketListFilter) ([]TicketListItemResponse, int64, error) {
	// Set defaults
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	// Build domain filter
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if len(filter.Statuses) > 0 {
		domainFilter.Filters["statuses"] = filter.Statuses
	}
	if filter.Priority != "" {
		domainFilter.Filters["priority"] = filter.Priority
	}
	if filter.Source != "" {
		domainFilter.Filters["source"] = filter.Source
	}
	if filter.AssigneeID != nil {
		domainFilter.Filters["assignee_id"] = *filter.AssigneeID
	}
	if filter.Unassigned {
		domainFilter.Filters["unassigned"] = true
	}
	if filter.ProjectID != nil {
		domainFilter.Filters["project_id"] = *filter.ProjectID
	}
	if filter.RequesterContactID != nil {
		domainFilter.Filters["requester_contact_id"] = *filter.RequesterContactID
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	tickets, err := s.ticketRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.ticketRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTicketListItemResponses(tickets), total, nil
}

// Update updates a ticket's subject, body, and priority
func (s *TicketService) Update(ctx context.Context, ticketID uuid.UUID, req UpdateTicketRequest) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if req.Subject != nil || req.Body != nil {
		subject := t.Subject
		body := t.Body
		if req.Subject != nil {
			subject = *req.Subject
		}
		if req.Body != nil {
			body = s.sanitizer.Sanitize(*req.Body)
		}
		if err := t.Update(subject, body); err != nil {
			return nil, err
		}
	}

	if req.Priority != nil {
		if err := t.SetPriority(ticket.TicketPriority(*req.Priority)); err != nil {
			return nil, err
		}
	}

	if err := s.ticketRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// Delete soft deletes a ticket
func (s *TicketService) Delete(ctx context.Context, ticketID uuid.UUID) error {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}

	if err := s.ticketRepo.Delete(ctx, t.ID); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, ticket.NewTicketDeletedEvent(t)); err != nil {
			// Log error but don't fail the operation
		}
	}

	return nil
}

// Assign hands the ticket to a user, or unassigns it when the assignee is nil
func (s *TicketService) Assign(ctx context.Context, ticketID uuid.UUID, req AssignTicketRequest) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if err := t.Assign(req.AssigneeID); err != nil {
		return nil, err
	}

	if err := s.saveWithEvents(ctx, t); err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// SetRequester links the ticket to an external contact, or clears the link
func (s *TicketService) SetRequester(ctx context.Context, ticketID uuid.UUID, req SetRequesterRequest) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	t.SetRequester(req.RequesterContactID)

	if err := s.ticketRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// ChangeStatus moves the ticket between working states
func (s *TicketService) ChangeStatus(ctx context.Context, ticketID uuid.UUID, req ChangeTicketStatusRequest) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if err := t.ChangeStatus(ticket.TicketStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.saveWithEvents(ctx, t); err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// Close closes a ticket
// Fails while the ticket still has open checklist tasks
func (s *TicketService) Close(ctx context.Context, ticketID uuid.UUID) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if err := t.Close(); err != nil {
		return nil, err
	}

	if err := s.saveWithEvents(ctx, t); err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// Reopen puts a closed ticket back in progress
func (s *TicketService) Reopen(ctx context.Context, ticketID uuid.UUID) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if err := t.Reopen(); err != nil {
		return nil, err
	}

	if err := s.saveWithEvents(ctx, t); err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// Snooze parks the ticket until the given time
func (s *TicketService) Snooze(ctx context.Context, ticketID uuid.UUID, req SnoozeTicketRequest) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if err := t.Snooze(req.Until); err != nil {
		return nil, err
	}

	if err := s.saveWithEvents(ctx, t); err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// Wake clears the snooze and puts the ticket back in progress
// Called manually from the API and by the snooze wakeup job
func (s *TicketService) Wake(ctx context.Context, ticketID uuid.UUID) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if err := t.Wake(); err != nil {
		return nil, err
	}

	if err := s.saveWithEvents(ctx, t); err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// ListSnoozeExpired lists snoozed tickets whose wake time has passed
func (s *TicketService) ListSnoozeExpired(ctx context.Context, now time.Time) ([]TicketListItemResponse, error) {
	tickets, err := s.ticketRepo.FindSnoozedDue(ctx, now)
	if err != nil {
		return nil, err
	}
	return ToTicketListItemResponses(tickets), nil
}

// MoveToProject files the ticket under a project at the end of its list,
// or removes it from its project when the project is nil
func (s *TicketService) MoveToProject(ctx context.Context, ticketID uuid.UUID, req MoveTicketToProjectRequest) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if req.ProjectID != nil {
		maxPos, err := s.ticketRepo.MaxProjectPosition(ctx, *req.ProjectID)
		if err != nil {
			return nil, err
		}
		t.MoveToProject(req.ProjectID, maxPos+1)
	} else {
		t.MoveToProject(nil, 0)
	}

	if err := s.ticketRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// AddNote appends a note to the ticket timeline
func (s *TicketService) AddNote(ctx context.Context, ticketID uuid.UUID, authorID *uuid.UUID, req AddNoteRequest) (*NoteResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	note, err := t.AddNote(authorID, s.sanitizer.Sanitize(req.Body), req.Private)
	if err != nil {
		return nil, err
	}

	if err := s.saveWithEvents(ctx, t); err != nil {
		return nil, err
	}

	response := ToNoteResponse(note)
	return &response, nil
}

// ListNotes returns the ticket timeline
// Private notes are only included when includePrivate is set
func (s *TicketService) ListNotes(ctx context.Context, ticketID uuid.UUID, includePrivate bool) ([]NoteResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if includePrivate {
		return ToNoteResponses(t.Notes), nil
	}
	return ToNoteResponses(t.PublicNotes()), nil
}

// AppendReplyFromMail records an inbound mail reply as a public note,
// reopening the ticket when it was closed
func (s *TicketService) AppendReplyFromMail(ctx context.Context, ticketID uuid.UUID, bodyHTML string, attachments []InboundAttachment) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	if _, err := t.AppendReply(s.sanitizer.Sanitize(bodyHTML)); err != nil {
		return nil, err
	}

	if err := s.attachInbound(ctx, t, attachments); err != nil {
		return nil, err
	}

	if err := s.saveWithEvents(ctx, t); err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// AddTask appends a checklist task to the ticket
func (s *TicketService) AddTask(ctx context.Context, ticketID uuid.UUID, req AddTaskRequest) (*TaskResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	task, err := t.AddTask(req.Label)
	if err != nil {
		return nil, err
	}

	if err := s.ticketRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}

	response := ToTaskResponse(task)
	return &response, nil
}

// UpdateTask relabels a task and sets its done flag
func (s *TicketService) UpdateTask(ctx context.Context, ticketID, taskID uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	task := t.GetTask(taskID)
	if task == nil {
		return nil, shared.NewDomainError("TASK_NOT_FOUND", "Ticket task not found")
	}

	label := task.Label
	done := task.Done
	if req.Label != nil {
		label = *req.Label
	}
	if req.Done != nil {
		done = *req.Done
	}

	if err := t.UpdateTask(taskID, label, done); err != nil {
		return nil, err
	}

	if err := s.ticketRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}

	response := ToTaskResponse(t.GetTask(taskID))
	return &response, nil
}

// RemoveTask deletes a checklist task
func (s *TicketService) RemoveTask(ctx context.Context, ticketID, taskID uuid.UUID) error {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}

	if err := t.RemoveTask(taskID); err != nil {
		return err
	}

	return s.ticketRepo.SaveWithLock(ctx, t)
}

// AddAttachment stores an uploaded file and records it against the ticket
func (s *TicketService) AddAttachment(ctx context.Context, ticketID uuid.UUID, fileName, contentType string, sizeBytes int64, body io.Reader) (*AttachmentResponse, error) {
	if !allowedAttachmentTypes[contentType] {
		return nil, shared.NewDomainError("UNSUPPORTED_FILE_TYPE", fmt.Sprintf("Content type %s is not allowed", contentType))
	}

	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	name := uniqueAttachmentName(t, fileName)
	key := attachmentStorageKey(t.ID, name)

	attachment, err := t.AddAttachment(name, contentType, sizeBytes, key)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Put(ctx, key, contentType, body, sizeBytes); err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	if err := s.ticketRepo.SaveWithLock(ctx, t); err != nil {
		// The record was not saved, drop the stored bytes
		_ = s.storage.Delete(ctx, key)
		return nil, err
	}

	response := ToAttachmentResponse(attachment)
	return &response, nil
}

// DownloadAttachment opens an attachment's content stream
func (s *TicketService) DownloadAttachment(ctx context.Context, ticketID, attachmentID uuid.UUID) (*AttachmentDownload, error) {
	t, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	attachment := t.GetAttachment(attachmentID)
	if attachment == nil {
		return nil, shared.NewDomainError("ATTACHMENT_NOT_FOUND", "Ticket attachment not found")
	}

	body, err := s.storage.Get(ctx, attachment.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment: %w", err)
	}

	return &AttachmentDownload{
		Attachment: ToAttachmentResponse(attachment),
		Body:       body,
	}, nil
}

// StatusSummary returns ticket counts grouped by status
func (s *TicketService) StatusSummary(ctx context.Context) (*TicketStatusSummary, error) {
	counts, err := s.ticketRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	summary := &TicketStatusSummary{
		Open:       counts[ticket.TicketStatusOpen],
		InProgress: counts[ticket.TicketStatusInProgress],
		OnHold:     counts[ticket.TicketStatusOnHold],
		Closed:     counts[ticket.TicketStatusClosed],
	}
	summary.Total = summary.Open + summary.InProgress + summary.OnHold + summary.Closed

	return summary, nil
}

// saveWithEvents persists the ticket with optimistic locking and writes its
// pending domain events to the outbox in the same transaction
func (s *TicketService) saveWithEvents(ctx context.Context, t *ticket.Ticket) error {
	events := t.GetDomainEvents()
	if err := s.ticketRepo.SaveWithLockAndEvents(ctx, t, events); err != nil {
		return err
	}
	t.ClearDomainEvents()
	return nil
}

// attachInbound stores mail attachments and records them on the ticket
// Content type filtering already happened at the caller against the runtime
// allowlist, so only empty or invalid payloads are skipped here, with a log
// line naming the file
func (s *TicketService) attachInbound(ctx context.Context, t *ticket.Ticket, attachments []InboundAttachment) error {
	for _, in := range attachments {
		if len(in.Data) == 0 {
			s.logger.Warn("Skipping empty mail attachment",
				zap.Int("ticket_number", t.Number),
				zap.String("file_name", in.FileName))
			continue
		}

		name := uniqueAttachmentName(t, in.FileName)
		key := attachmentStorageKey(t.ID, name)

		if _, err := t.AddAttachment(name, in.ContentType, int64(len(in.Data)), key); err != nil {
			s.logger.Warn("Skipping mail attachment rejected by validation",
				zap.Int("ticket_number", t.Number),
				zap.String("file_name", in.FileName),
				zap.Int("size_bytes", len(in.Data)),
				zap.Error(err))
			continue
		}

		size := int64(len(in.Data))
		if err := s.storage.Put(ctx, key, in.ContentType, bytes.NewReader(in.Data), size); err != nil {
			return fmt.Errorf("failed to store attachment %s: %w", name, err)
		}
	}
	return nil
}

// uniqueAttachmentName suffixes the file name with _1.._n when the ticket
// already has an attachment with the same name
func uniqueAttachmentName(t *ticket.Ticket, fileName string) string {
	taken := make(map[string]struct{}, len(t.Attachments))
	for _, a := range t.Attachments {
		taken[a.FileName] = struct{}{}
	}
	if _, ok := taken[fileName]; !ok {
		return fileName
	}

	ext := path.Ext(fileName)
	stem := strings.TrimSuffix(fileName, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

// attachmentStorageKey builds the object key for a ticket attachment
func attachmentStorageKey(ticketID uuid.UUID, fileName string) string {
	return fmt.Sprintf("tickets/%s/%s", ticketID, fileName)
}

// mailSubject normalizes an inbound subject so ticket validation accepts it
func mailSubject(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "(no subject)"
	}
	if len(subject) > 500 {
		cut := 500
		for cut > 0 && !utf8.RuneStart(subject[cut]) {
			cut--
		}
		subject = strings.TrimSpace(subject[:cut])
	}
	return subject
}

// isTicketNumberConflict reports whether the save failed because another
// writer took the allocated ticket number
func isTicketNumberConflict(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "TICKET_NUMBER_TAKEN"
}
