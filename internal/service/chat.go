package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campusgigs/campusgigs-api/internal/domain"
	"github.com/campusgigs/campusgigs-api/internal/realtime"
	"github.com/campusgigs/campusgigs-api/internal/repository"
	"github.com/campusgigs/campusgigs-api/internal/storage"
)

// Attachments keep the signed URL valid for 7 days.
const attachmentURLTTL = 7 * 24 * time.Hour

var (
	ErrChatNotFound             = repository.ErrChatNotFound
	ErrNotChatParticipant       = errors.New("user is not a participant of this chat")
	ErrEmptyMessage             = errors.New("message needs text or an attachment")
	ErrAttachmentTooLarge       = storage.ErrFileTooLarge
	ErrAttachmentTypeNotAllowed = errors.New("attachment type is not allowed")
)

// allowedAttachmentTypes limits chat uploads to images, PDFs, common office
// and text documents, and archives.
var allowedAttachmentTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,

	"application/pdf":    true,
	"text/plain":         true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint": true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,

	"application/zip":              true,
	"application/x-zip-compressed": true,
	"application/x-rar-compressed": true,
	"application/x-7z-compressed":  true,
}

type ChatRepository interface {
	Create(ctx context.Context, chat domain.Chat) (domain.Chat, error)
	FindByID(ctx context.Context, id uint) (domain.Chat, error)
	FindByOrderID(ctx context.Context, orderID uint) (domain.Chat, error)
	FindSummariesByUserID(ctx context.Context, userID uint) ([]domain.ChatSummary, error)
	CreateMessage(ctx context.Context, message domain.Message) (domain.Message, error)
	FindMessages(ctx context.Context, chatID uint) ([]domain.Message, error)
	FindMessageByID(ctx context.Context, id uint) (domain.Message, error)
	MarkMessagesRead(ctx context.Context, chatID, readerID uint) (int64, error)
}

type ChatOrderRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Order, error)
}

type ChatProfileRepository interface {
	FindSendersByIDs(ctx context.Context, userIDs []uint) (map[uint]domain.Sender, error)
}

type ChatFileStore interface {
	Upload(ctx context.Context, bucket, path string, r io.Reader) error
	SignedURL(bucket, path string, ttl time.Duration) string
	MaxUploadSize() int64
}

type ChatEvents interface {
	MessageCreated(ctx context.Context, message domain.Message) error
}

type ChatService struct {
	repo        ChatRepository
	orderRepo   ChatOrderRepository
	profileRepo ChatProfileRepository
	store       ChatFileStore
	hub         *realtime.Hub
	events      ChatEvents
}

func NewChatService(
	repo ChatRepository,
	orderRepo ChatOrderRepository,
	profileRepo ChatProfileRepository,
	store ChatFileStore,
	hub *realtime.Hub,
	events ChatEvents,
) *ChatService {
	return &ChatService{
		repo:        repo,
		orderRepo:   orderRepo,
		profileRepo: profileRepo,
		store:       store,
		hub:         hub,
		events:      events,
	}
}

// GetOrCreateChat resolves the unique chat of an order, creating it on first
// access. When two callers race on first access, the unique constraint on
// order_id lets exactly one insert win and the loser re-reads the winner's
// row, so both converge on the same chat.
func (s *ChatService) GetOrCreateChat(ctx context.Context, orderID, userID uint) (domain.Chat, error) {
	chat, err := s.repo.FindByOrderID(ctx, orderID)
	if err == nil {
		if !chat.IsParticipant(userID) {
			return domain.Chat{}, ErrNotChatParticipant
		}

		return chat, nil
	}
	if !errors.Is(err, repository.ErrChatNotFound) {
		return domain.Chat{}, fmt.Errorf("s.repo.FindByOrderID -> %w", err)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domain.Chat{}, ErrOrderNotFound
		}

		return domain.Chat{}, fmt.Errorf("s.orderRepo.FindByID -> %w", err)
	}

	if !order.IsParticipant(userID) {
		return domain.Chat{}, ErrNotChatParticipant
	}

	created, err := s.repo.Create(ctx, domain.Chat{
		OrderID:  order.ID,
		BuyerID:  order.BuyerID,
		SellerID: order.SellerID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrChatExists) {
			// Lost the race; the other participant created it first.
			existing, findErr := s.repo.FindByOrderID(ctx, orderID)
			if findErr != nil {
				return domain.Chat{}, fmt.Errorf("s.repo.FindByOrderID (retry) -> %w", findErr)
			}

			return existing, nil
		}

		return domain.Chat{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// GetMessages returns the chat's messages in ascending creation order, each
// decorated with the sender's display profile. A chat with no messages yields
// an empty slice, not an error.
func (s *ChatService) GetMessages(ctx context.Context, chatID, userID uint) ([]domain.Message, error) {
	if _, err := s.participantChat(ctx, chatID, userID); err != nil {
		return nil, err
	}

	messages, err := s.repo.FindMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindMessages -> %w", err)
	}

	if err = s.decorateSenders(ctx, messages); err != nil {
		return nil, err
	}

	return messages, nil
}

type Attachment struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

type SendMessageInput struct {
	ChatID     uint
	SenderID   uint
	Content    string
	Attachment *Attachment
}

// SendMessage persists one message. An attachment is uploaded first and the
// message row references its signed URL; if the upload fails nothing is
// persisted. Whitespace-only text without an attachment is rejected, and
// trimmed-empty text is stored as absent rather than as an empty string.
func (s *ChatService) SendMessage(ctx context.Context, input SendMessageInput) (domain.Message, error) {
	chat, err := s.participantChat(ctx, input.ChatID, input.SenderID)
	if err != nil {
		return domain.Message{}, err
	}

	content := strings.TrimSpace(input.Content)
	if content == "" && input.Attachment == nil {
		return domain.Message{}, ErrEmptyMessage
	}

	message := domain.Message{
		ChatID:   chat.ID,
		SenderID: input.SenderID,
	}
	if content != "" {
		message.Content = &content
	}

	if input.Attachment != nil {
		fileURL, err := s.uploadAttachment(ctx, chat.OrderID, input.Attachment)
		if err != nil {
			return domain.Message{}, err
		}
		message.FileURL = &fileURL
	}

	created, err := s.repo.CreateMessage(ctx, message)
	if err != nil {
		return domain.Message{}, fmt.Errorf("s.repo.CreateMessage -> %w", err)
	}

	if err = s.decorateSenders(ctx, []domain.Message{created}); err != nil {
		return domain.Message{}, err
	}

	s.hub.Publish(ctx, realtime.Event{
		Type:    realtime.EventMessageCreated,
		ChatID:  chat.ID,
		Message: created,
	})

	if err = s.events.MessageCreated(ctx, created); err != nil {
		zap.L().Warn("failed to publish message.created event",
			zap.Uint("message_id", created.ID),
			zap.Error(err),
		)
	}

	return created, nil
}

func (s *ChatService) uploadAttachment(ctx context.Context, orderID uint, attachment *Attachment) (string, error) {
	if attachment.Size > s.store.MaxUploadSize() {
		return "", ErrAttachmentTooLarge
	}
	if !allowedAttachmentTypes[attachment.ContentType] {
		return "", ErrAttachmentTypeNotAllowed
	}

	filename := sanitizeFilename(attachment.Filename)
	filePath := fmt.Sprintf("%d/%d-%s", orderID, time.Now().UnixMilli(), filename)

	if err := s.store.Upload(ctx, storage.BucketChatFiles, filePath, attachment.Reader); err != nil {
		return "", fmt.Errorf("s.store.Upload -> %w", err)
	}

	return s.store.SignedURL(storage.BucketChatFiles, filePath, attachmentURLTTL), nil
}

// MarkMessagesRead flips every unread message not authored by the caller to
// read. Calling it again with nothing left unread is a no-op.
func (s *ChatService) MarkMessagesRead(ctx context.Context, chatID, userID uint) (int64, error) {
	if _, err := s.participantChat(ctx, chatID, userID); err != nil {
		return 0, err
	}

	updated, err := s.repo.MarkMessagesRead(ctx, chatID, userID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.MarkMessagesRead -> %w", err)
	}

	return updated, nil
}

// ListChats returns the caller's chats, newest first, decorated with both
// participants' display profiles and the order's gig summary.
func (s *ChatService) ListChats(ctx context.Context, userID uint) ([]domain.ChatSummary, error) {
	summaries, err := s.repo.FindSummariesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindSummariesByUserID -> %w", err)
	}

	ids := make([]uint, 0, len(summaries)*2)
	seen := make(map[uint]bool)
	for _, summary := range summaries {
		for _, id := range []uint{summary.BuyerID, summary.SellerID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	senders, err := s.profileRepo.FindSendersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("s.profileRepo.FindSendersByIDs -> %w", err)
	}

	for i := range summaries {
		summaries[i].Buyer = senderOrUnknown(senders, summaries[i].BuyerID)
		summaries[i].Seller = senderOrUnknown(senders, summaries[i].SellerID)
	}

	return summaries, nil
}

// Subscribe opens a realtime subscription on the chat for a participant.
// The caller owns the handle and must Cancel it when the view goes away.
func (s *ChatService) Subscribe(ctx context.Context, chatID, userID uint) (*realtime.Subscription, error) {
	if _, err := s.participantChat(ctx, chatID, userID); err != nil {
		return nil, err
	}

	return s.hub.Subscribe(chatID), nil
}

func (s *ChatService) participantChat(ctx context.Context, chatID, userID uint) (domain.Chat, error) {
	chat, err := s.repo.FindByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			return domain.Chat{}, ErrChatNotFound
		}

		return domain.Chat{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !chat.IsParticipant(userID) {
		return domain.Chat{}, ErrNotChatParticipant
	}

	return chat, nil
}

// decorateSenders joins display profiles onto messages in memory, after one
// batched lookup over the distinct sender ids. Senders whose profile row is
// missing render as "Unknown".
func (s *ChatService) decorateSenders(ctx context.Context, messages []domain.Message) error {
	if len(messages) == 0 {
		return nil
	}

	senderIDs := distinctIDs(messages, func(m domain.Message) uint { return m.SenderID })

	senders, err := s.profileRepo.FindSendersByIDs(ctx, senderIDs)
	if err != nil {
		return fmt.Errorf("s.profileRepo.FindSendersByIDs -> %w", err)
	}

	for i := range messages {
		messages[i].Sender = senderOrUnknown(senders, messages[i].SenderID)
	}

	return nil
}

func senderOrUnknown(senders map[uint]domain.Sender, id uint) domain.Sender {
	if sender, ok := senders[id]; ok {
		return sender
	}

	return domain.UnknownSender
}

// sanitizeFilename strips any path components and whitespace so the name is
// safe inside a storage path.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == "/" || name == "" {
		name = "file"
	}

	return name
}
