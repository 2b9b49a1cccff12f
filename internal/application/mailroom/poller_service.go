package mailroom

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	ticketapp "github.com/opsdesk/backend/internal/application/ticket"
	"github.com/opsdesk/backend/internal/domain/mailroom"
	"github.com/opsdesk/backend/internal/domain/setting"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/ticket"
)

// pollPageSize is how many unread messages one run pulls from the mailbox
const pollPageSize = 25

// defaultPollInterval applies when the interval setting is unset or unparsable
const defaultPollInterval = 60 * time.Second

// minStaleAfter is the floor for treating a held poll lock as abandoned
const minStaleAfter = 180 * time.Second

// watchdogCutoff is how old a lock must be before the watchdog force-clears it
const watchdogCutoff = 15 * time.Minute

// ticketReferencePattern finds "Ticket #<n>" references in reply subjects
var ticketReferencePattern = regexp.MustCompile(`(?i)ticket\s*#(\d+)`)

// defaultInboundTypes are the attachment content types kept from inbound
// mail when the mail_attachment_types setting is unset
var defaultInboundTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"application/pdf",
}

// PollerService sweeps the shared mailbox and turns messages into tickets
type PollerService struct {
	runRepo     mailroom.PollRunRepository
	filterRepo  mailroom.FilterRepository
	ticketRepo  ticket.Repository
	settingRepo setting.Repository
	lock        PollLock
	mailbox     MailboxClient
	tickets     TicketIntake
	contacts    ContactDirectory
}

// NewPollerService creates a new poller service
func NewPollerService(
	runRepo mailroom.PollRunRepository,
	filterRepo mailroom.FilterRepository,
	ticketRepo ticket.Repository,
	settingRepo setting.Repository,
	lock PollLock,
	mailbox MailboxClient,
	tickets TicketIntake,
	contacts ContactDirectory,
) *PollerService {
	return &PollerService{
		runRepo:     runRepo,
		filterRepo:  filterRepo,
		ticketRepo:  ticketRepo,
		settingRepo: settingRepo,
		lock:        lock,
		mailbox:     mailbox,
		tickets:     tickets,
		contacts:    contacts,
	}
}

// PollInterval returns the configured poll interval
func (s *PollerService) PollInterval(ctx context.Context) time.Duration {
	raw, err := s.settingRepo.GetValue(ctx, setting.KeyMailPollInterval, "")
	if err != nil || raw == "" {
		return defaultPollInterval
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || seconds < 1 {
		return defaultPollInterval
	}
	return time.Duration(seconds) * time.Second
}

// Poll sweeps the mailbox once. It refuses to run when polling is disabled
// or another run holds the lock, processes each unread message in isolation,
// and records the whole sweep as one PollRun with per-message entries.
func (s *PollerService) Poll(ctx context.Context) (*PollRunResponse, error) {
	if s.mailbox == nil {
		return nil, shared.NewDomainError("POLL_DISABLED", "No mailbox client is configured")
	}

	enabled, err := s.settingRepo.GetValue(ctx, setting.KeyMailPollEnabled, "1")
	if err != nil {
		return nil, err
	}
	if enabled != "1" && !strings.EqualFold(enabled, "true") {
		return nil, shared.NewDomainError("POLL_DISABLED", "Mailbox polling is disabled")
	}

	interval := s.PollInterval(ctx)
	staleAfter := 5 * interval
	if staleAfter < minStaleAfter {
		staleAfter = minStaleAfter
	}

	acquired, err := s.lock.Acquire(ctx, staleAfter)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, shared.NewDomainError("POLL_IN_PROGRESS", "A mailbox poll is already running")
	}
	defer func() {
		_ = s.lock.Release(ctx)
	}()

	run := mailroom.NewPollRun()
	if err := s.runRepo.Save(ctx, run); err != nil {
		return nil, err
	}

	messages, err := s.mailbox.FetchUnread(ctx, pollPageSize)
	if err != nil {
		_ = run.Fail(err.Error())
		_ = s.runRepo.Save(ctx, run)
		return ToPollRunResponse(run), fmt.Errorf("mailbox fetch failed: %w", err)
	}

	denyFilters, err := s.filterRepo.FindActiveDenyFilters(ctx)
	if err != nil {
		_ = run.Fail(err.Error())
		_ = s.runRepo.Save(ctx, run)
		return ToPollRunResponse(run), err
	}
	allowedDomains, err := s.filterRepo.FindActiveAllowedDomains(ctx)
	if err != nil {
		_ = run.Fail(err.Error())
		_ = s.runRepo.Save(ctx, run)
		return ToPollRunResponse(run), err
	}

	mailboxAddress, err := s.settingRepo.GetValue(ctx, setting.KeyMailboxAddress, "")
	if err != nil {
		mailboxAddress = ""
	}
	inboundTypes := s.inboundTypes(ctx)

	for _, msg := range messages {
		entry := s.processMessage(ctx, run.ID, msg, denyFilters, allowedDomains, mailboxAddress, inboundTypes)
		run.RecordMessage(entry.Action)
		if err := s.runRepo.SaveEntry(ctx, entry); err != nil {
			continue
		}
		// Errored messages stay unread so the next run retries them; a
		// retried create dedups on the external message ID
		if entry.Action != mailroom.PollActionError {
			_ = s.mailbox.MarkRead(ctx, msg.ID)
		}
	}

	if err := run.Complete(); err != nil {
		return nil, err
	}
	if err := s.runRepo.Save(ctx, run); err != nil {
		return nil, err
	}

	return ToPollRunResponse(run), nil
}

// processMessage runs one mailbox message through the intake pipeline:
// deny filters, reply detection, the domain allow list, dedup, and finally
// ticket creation. It always returns an entry describing the outcome.
func (s *PollerService) processMessage(
	ctx context.Context,
	runID uuid.UUID,
	msg MailMessage,
	denyFilters []mailroom.DenyFilter,
	allowedDomains []mailroom.AllowedDomain,
	mailboxAddress string,
	inboundTypes map[string]bool,
) *mailroom.PollEntry {
	entry := mailroom.NewPollEntry(runID, msg.ID, msg.Sender, msg.Subject, mailroom.PollActionSkipped)

	// Mail the desk itself sent bounces straight back out of the pipeline
	if mailboxAddress != "" && strings.EqualFold(strings.TrimSpace(msg.Sender), mailboxAddress) {
		entry.SetDetail("Sender is the shared mailbox")
		return entry
	}

	for i := range denyFilters {
		if denyFilters[i].Matches(msg.Sender, msg.Subject) {
			entry.Action = mailroom.PollActionFilteredDeny
			entry.SetDetail(denyFilters[i].Pattern)
			return entry
		}
	}

	if number, ok := ticketNumberFromSubject(msg.Subject); ok {
		t, err := s.ticketRepo.FindByNumber(ctx, number)
		if err == nil {
			return s.appendReply(ctx, entry, t, msg, inboundTypes)
		}
		if !errors.Is(err, shared.ErrNotFound) {
			entry.Action = mailroom.PollActionError
			entry.SetDetail(err.Error())
			return entry
		}
		// Unknown number, treat the message as fresh mail
	}

	if len(allowedDomains) > 0 && !domainAllowed(allowedDomains, msg.Sender) {
		entry.Action = mailroom.PollActionFilteredDomain
		entry.SetDetail(senderDomain(msg.Sender))
		return entry
	}

	existing, err := s.ticketRepo.FindByExternalMessageID(ctx, msg.ID)
	if err == nil {
		entry.Action = mailroom.PollActionDuplicate
		entry.LinkTicket(existing.ID)
		entry.SetDetail(existing.Reference())
		return entry
	}
	if !errors.Is(err, shared.ErrNotFound) {
		entry.Action = mailroom.PollActionError
		entry.SetDetail(err.Error())
		return entry
	}

	return s.createTicket(ctx, entry, msg, inboundTypes)
}

// appendReply records an inbound reply against the referenced ticket
func (s *PollerService) appendReply(ctx context.Context, entry *mailroom.PollEntry, t *ticket.Ticket, msg MailMessage, inboundTypes map[string]bool) *mailroom.PollEntry {
	attachments, err := s.fetchInbound(ctx, msg, inboundTypes)
	if err != nil {
		entry.Action = mailroom.PollActionError
		entry.SetDetail(err.Error())
		return entry
	}

	if _, err := s.tickets.AppendReplyFromMail(ctx, t.ID, msg.BodyHTML, attachments); err != nil {
		entry.Action = mailroom.PollActionError
		entry.SetDetail(err.Error())
		return entry
	}

	entry.Action = mailroom.PollActionAppendNote
	entry.LinkTicket(t.ID)
	return entry
}

// createTicket opens a new EMAIL ticket for the message
func (s *PollerService) createTicket(ctx context.Context, entry *mailroom.PollEntry, msg MailMessage, inboundTypes map[string]bool) *mailroom.PollEntry {
	contact, err := s.contacts.UpsertByEmail(ctx, msg.Sender, msg.SenderName)
	if err != nil {
		entry.Action = mailroom.PollActionError
		entry.SetDetail(err.Error())
		return entry
	}

	attachments, err := s.fetchInbound(ctx, msg, inboundTypes)
	if err != nil {
		entry.Action = mailroom.PollActionError
		entry.SetDetail(err.Error())
		return entry
	}

	created, err := s.tickets.CreateFromMail(ctx, ticketapp.CreateMailTicketRequest{
		Subject:            msg.Subject,
		BodyHTML:           msg.BodyHTML,
		ExternalMessageID:  msg.ID,
		RequesterContactID: &contact.ID,
		Attachments:        attachments,
	})
	if err != nil {
		entry.Action = mailroom.PollActionError
		entry.SetDetail(err.Error())
		return entry
	}

	entry.Action = mailroom.PollActionNewTicket
	entry.LinkTicket(created.ID)
	return entry
}

// fetchInbound downloads a message's attachments and keeps the allowlisted ones
func (s *PollerService) fetchInbound(ctx context.Context, msg MailMessage, inboundTypes map[string]bool) ([]ticketapp.InboundAttachment, error) {
	if !msg.HasAttachments {
		return nil, nil
	}

	fetched, err := s.mailbox.FetchAttachments(ctx, msg.ID)
	if err != nil {
		return nil, fmt.Errorf("attachment fetch failed: %w", err)
	}

	var attachments []ticketapp.InboundAttachment
	for _, a := range fetched {
		if !inboundTypes[strings.ToLower(a.ContentType)] || len(a.Data) == 0 {
			continue
		}
		attachments = append(attachments, ticketapp.InboundAttachment{
			FileName:    a.FileName,
			ContentType: a.ContentType,
			Data:        a.Data,
		})
	}
	return attachments, nil
}

// inboundTypes reads the attachment allowlist setting as a comma-separated
// list of content types
func (s *PollerService) inboundTypes(ctx context.Context) map[string]bool {
	types := make(map[string]bool)

	raw, err := s.settingRepo.GetValue(ctx, setting.KeyMailAttachmentTypes, "")
	if err != nil || strings.TrimSpace(raw) == "" {
		for _, t := range defaultInboundTypes {
			types[t] = true
		}
		return types
	}

	for _, t := range strings.Split(raw, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			types[t] = true
		}
	}
	return types
}

// ListRuns returns recent poll runs, newest first
func (s *PollerService) ListRuns(ctx context.Context, filter *PollRunListFilter) ([]*PollRunResponse, int64, error) {
	repoFilter := shared.Filter{
		Page:     1,
		PageSize: 20,
		Filters:  make(map[string]interface{}),
	}
	if filter != nil {
		if filter.Page > 0 {
			repoFilter.Page = filter.Page
		}
		if filter.PageSize > 0 {
			repoFilter.PageSize = filter.PageSize
		}
		if filter.Status != "" {
			repoFilter.Filters["status"] = filter.Status
		}
	}

	runs, err := s.runRepo.FindRecent(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.runRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return ToPollRunResponses(runs), total, nil
}

// GetRunEntries returns the per-message entries of one run, oldest first
func (s *PollerService) GetRunEntries(ctx context.Context, runID uuid.UUID) ([]*PollEntryResponse, error) {
	run, err := s.runRepo.FindByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	return ToPollEntryResponses(run.Entries), nil
}

// PurgeOldRuns deletes runs older than the retention window
func (s *PollerService) PurgeOldRuns(ctx context.Context, now time.Time) (int64, error) {
	return s.runRepo.DeleteOlderThan(ctx, now.Add(-mailroom.PollRunRetention))
}

// ClearStaleLock force-clears a poll lock older than the watchdog cutoff
func (s *PollerService) ClearStaleLock(ctx context.Context) (bool, error) {
	return s.lock.ClearStale(ctx, watchdogCutoff)
}

// ticketNumberFromSubject extracts the referenced ticket number from a
// reply subject such as "RE: Ticket #1042 printer jam"
func ticketNumberFromSubject(subject string) (int, bool) {
	match := ticketReferencePattern.FindStringSubmatch(subject)
	if match == nil {
		return 0, false
	}
	number, err := strconv.Atoi(match[1])
	if err != nil || number < 1 {
		return 0, false
	}
	return number, true
}

// domainAllowed reports whether the sender's domain is on the allow list
func domainAllowed(allowedDomains []mailroom.AllowedDomain, sender string) bool {
	for i := range allowedDomains {
		if allowedDomains[i].Matches(sender) {
			return true
		}
	}
	return false
}

// senderDomain extracts the lowercased domain part of an address
func senderDomain(sender string) string {
	sender = strings.ToLower(strings.TrimSpace(sender))
	at := strings.LastIndex(sender, "@")
	if at < 0 || at == len(sender)-1 {
		return ""
	}
	return sender[at+1:]
}
