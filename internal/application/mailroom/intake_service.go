package mailroom

import (
	"context"
	"errors"
	"fmt"
	"html"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	ticketapp "github.com/opsdesk/backend/internal/application/ticket"
	"github.com/opsdesk/backend/internal/domain/asset"
	"github.com/opsdesk/backend/internal/domain/mailroom"
	"github.com/opsdesk/backend/internal/domain/shared"
	"github.com/opsdesk/backend/internal/domain/ticket"
)

// noteFileName is the manifest the scanner writes into each submission
const noteFileName = "note.txt"

// scannedExtensions are the submission file types kept as attachments
var scannedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".pdf":  true,
}

// IntakeService ingests scanner drop folder submissions as tickets
type IntakeService struct {
	runRepo    mailroom.PollRunRepository
	ticketRepo ticket.Repository
	assetRepo  asset.AssetRepository
	folder     DropFolder
	tickets    TicketIntake
	contacts   ContactDirectory
}

// NewIntakeService creates a new intake service
func NewIntakeService(
	runRepo mailroom.PollRunRepository,
	ticketRepo ticket.Repository,
	assetRepo asset.AssetRepository,
	folder DropFolder,
	tickets TicketIntake,
	contacts ContactDirectory,
) *IntakeService {
	return &IntakeService{
		runRepo:    runRepo,
		ticketRepo: ticketRepo,
		assetRepo:  assetRepo,
		folder:     folder,
		tickets:    tickets,
		contacts:   contacts,
	}
}

// Scan sweeps the drop folder once, processing each submission in
// isolation, and records the sweep as one PollRun with per-submission
// entries. An empty folder records nothing.
func (s *IntakeService) Scan(ctx context.Context) (*PollRunResponse, error) {
	submissions, err := s.folder.ListSubmissions(ctx)
	if err != nil {
		return nil, err
	}
	if len(submissions) == 0 {
		return nil, nil
	}

	run := mailroom.NewPollRun()
	if err := s.runRepo.Save(ctx, run); err != nil {
		return nil, err
	}

	for _, sub := range submissions {
		entry := s.processSubmission(ctx, run.ID, sub)
		run.RecordMessage(entry.Action)
		if err := s.runRepo.SaveEntry(ctx, entry); err != nil {
			continue
		}
		// The folder only disappears once its ticket is committed. A crash
		// before this point replays the submission next scan and dedups on
		// the folder name.
		switch entry.Action {
		case mailroom.PollActionNewTicket, mailroom.PollActionDuplicate:
			_ = s.folder.RemoveSubmission(ctx, sub.Name)
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

// processSubmission turns one drop folder subdirectory into a ticket:
// dedup on the folder name, the note.txt manifest, contact upsert, scanned
// file attachments, and a best-effort asset link note. It always returns
// an entry describing the outcome.
func (s *IntakeService) processSubmission(ctx context.Context, runID uuid.UUID, sub DropSubmission) *mailroom.PollEntry {
	externalID := intakeExternalID(sub.Name)
	entry := mailroom.NewPollEntry(runID, externalID, "", sub.Name, mailroom.PollActionSkipped)

	// A submission without its manifest stays in place, the scanner may
	// still be writing it
	noteName, ok := findNoteFile(sub.Files)
	if !ok {
		entry.SetDetail("No note.txt")
		return entry
	}

	existing, err := s.ticketRepo.FindByExternalMessageID(ctx, externalID)
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

	noteData, err := s.folder.ReadFile(ctx, sub.Name, noteName)
	if err != nil {
		entry.Action = mailroom.PollActionError
		entry.SetDetail(err.Error())
		return entry
	}
	note := parseIntakeNote(sub.Name, string(noteData))
	entry.Sender = note.RequesterEmail
	entry.Subject = note.Subject

	var requesterID *uuid.UUID
	if note.RequesterEmail != "" {
		contact, err := s.contacts.UpsertByEmail(ctx, note.RequesterEmail, "")
		if err != nil {
			entry.Action = mailroom.PollActionError
			entry.SetDetail(err.Error())
			return entry
		}
		requesterID = &contact.ID
	}

	attachments, err := s.readScannedFiles(ctx, sub, noteName)
	if err != nil {
		entry.Action = mailroom.PollActionError
		entry.SetDetail(err.Error())
		return entry
	}

	created, err := s.tickets.CreateFromIntake(ctx, ticketapp.CreateIntakeTicketRequest{
		Subject:            note.Subject,
		BodyHTML:           note.BodyHTML,
		ExternalMessageID:  externalID,
		RequesterContactID: requesterID,
		Attachments:        attachments,
	})
	if err != nil {
		entry.Action = mailroom.PollActionError
		entry.SetDetail(err.Error())
		return entry
	}

	entry.Action = mailroom.PollActionNewTicket
	entry.LinkTicket(created.ID)

	s.linkAsset(ctx, created.ID, note.SerialTag)

	return entry
}

// readScannedFiles pulls the submission's scanned documents, skipping the
// manifest and anything that is not a scanner output type
func (s *IntakeService) readScannedFiles(ctx context.Context, sub DropSubmission, noteName string) ([]ticketapp.InboundAttachment, error) {
	var attachments []ticketapp.InboundAttachment
	for _, name := range sub.Files {
		if strings.EqualFold(name, noteName) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if !scannedExtensions[ext] {
			continue
		}
		data, err := s.folder.ReadFile(ctx, sub.Name, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s failed: %w", name, err)
		}
		if len(data) == 0 {
			continue
		}
		contentType := mime.TypeByExtension(ext)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		attachments = append(attachments, ticketapp.InboundAttachment{
			FileName:    name,
			ContentType: contentType,
			Data:        data,
		})
	}
	return attachments, nil
}

// linkAsset records the matched asset on the new ticket as a private note.
// The serial line is keyed in by hand at the scanner, so no match is not
// an error, and the note is skipped when the lookup fails.
func (s *IntakeService) linkAsset(ctx context.Context, ticketID uuid.UUID, serial string) {
	if serial == "" {
		return
	}

	a, err := s.assetRepo.FindBySerial(ctx, serial)
	if errors.Is(err, shared.ErrNotFound) {
		a, err = s.assetRepo.FindByTag(ctx, serial)
	}
	if err != nil {
		return
	}

	_, _ = s.tickets.AddNote(ctx, ticketID, nil, ticketapp.AddNoteRequest{
		Body:    fmt.Sprintf("Linked asset %s (%s)", a.Tag, a.Name),
		Private: true,
	})
}

// intakeNote is the parsed note.txt manifest
type intakeNote struct {
	RequesterEmail string
	SerialTag      string
	Subject        string
	BodyHTML       string
}

// parseIntakeNote reads the manifest layout: line one the requester email,
// line two the asset serial, line three onward the subject and details
func parseIntakeNote(folder, text string) intakeNote {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	var note intakeNote
	if len(lines) > 0 {
		note.RequesterEmail = strings.ToLower(lines[0])
	}
	if len(lines) > 1 {
		note.SerialTag = lines[1]
	}

	note.Subject = fmt.Sprintf("Scanner submission (%s)", folder)
	if len(lines) > 2 && lines[2] != "" {
		note.Subject = lines[2]
	}
	if len(note.Subject) > 500 {
		note.Subject = note.Subject[:500]
	}

	rest := ""
	if len(lines) > 2 {
		rest = strings.TrimSpace(strings.Join(lines[2:], "\n"))
	}
	if rest == "" {
		note.BodyHTML = "(no details)"
	} else {
		note.BodyHTML = strings.ReplaceAll(html.EscapeString(rest), "\n", "<br>")
	}

	return note
}

// findNoteFile locates the manifest in a submission, case-insensitively
func findNoteFile(files []string) (string, bool) {
	for _, name := range files {
		if strings.EqualFold(name, noteFileName) {
			return name, true
		}
	}
	return "", false
}

// intakeExternalID is the dedup key for a submission folder
func intakeExternalID(folder string) string {
	return "intake://" + folder
}
