package mailroom

import (
	"context"
	"time"

	"github.com/google/uuid"

	ticketapp "github.com/opsdesk/backend/internal/application/ticket"
	"github.com/opsdesk/backend/internal/domain/partner"
)

// MailMessage is one unread message pulled from the shared mailbox
type MailMessage struct {
	ID             string // Provider message ID
	Sender         string // Address only, lowercased by the client
	SenderName     string
	Subject        string
	BodyHTML       string
	ReceivedAt     time.Time
	HasAttachments bool
}

// MailAttachment is a file attached to a mailbox message
type MailAttachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// MailboxClient reads the shared support mailbox
type MailboxClient interface {
	// FetchUnread returns up to limit unread messages, newest first
	FetchUnread(ctx context.Context, limit int) ([]MailMessage, error)

	// FetchAttachments returns the file attachments of a message
	FetchAttachments(ctx context.Context, messageID string) ([]MailAttachment, error)

	// MarkRead flags the message as read in the mailbox
	MarkRead(ctx context.Context, messageID string) error
}

// PollLock coordinates mailbox polls across processes through the
// settings table
type PollLock interface {
	// Acquire takes the poll lock. A held lock older than staleAfter is
	// treated as abandoned and stolen. Returns false when another run
	// holds a fresh lock.
	Acquire(ctx context.Context, staleAfter time.Duration) (bool, error)

	// Release frees the lock and records when the poll ran
	Release(ctx context.Context) error

	// ClearStale force-clears a lock older than the cutoff and reports
	// whether one was cleared
	ClearStale(ctx context.Context, olderThan time.Duration) (bool, error)
}

// DropSubmission is one subdirectory a scanner left in the drop folder
type DropSubmission struct {
	Name  string
	Files []string
}

// DropFolder reads scanner uploads waiting to be ingested
type DropFolder interface {
	// ListSubmissions returns the submissions currently in the folder
	ListSubmissions(ctx context.Context) ([]DropSubmission, error)

	// ReadFile returns the contents of one file inside a submission
	ReadFile(ctx context.Context, submission, name string) ([]byte, error)

	// RemoveSubmission deletes a submission and everything in it
	RemoveSubmission(ctx context.Context, submission string) error
}

// TicketIntake opens and extends tickets from mailbox messages and
// scanner submissions. Satisfied by the ticket application service.
type TicketIntake interface {
	CreateFromMail(ctx context.Context, req ticketapp.CreateMailTicketRequest) (*ticketapp.TicketResponse, error)
	CreateFromIntake(ctx context.Context, req ticketapp.CreateIntakeTicketRequest) (*ticketapp.TicketResponse, error)
	AppendReplyFromMail(ctx context.Context, ticketID uuid.UUID, bodyHTML string, attachments []ticketapp.InboundAttachment) (*ticketapp.TicketResponse, error)
	AddNote(ctx context.Context, ticketID uuid.UUID, authorID *uuid.UUID, req ticketapp.AddNoteRequest) (*ticketapp.NoteResponse, error)
}

// ContactDirectory resolves sender addresses to contacts.
// Satisfied by the partner contact service.
type ContactDirectory interface {
	UpsertByEmail(ctx context.Context, email, name string) (*partner.Contact, error)
}
