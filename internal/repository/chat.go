package repository

import (
	"context"
	"fmt"

	"github.com/campusgigs/campusgigs-api/internal/domain"
	"github.com/campusgigs/campusgigs-api/internal/repository/dao"
)

var (
	ErrChatNotFound    = dao.ErrChatNotFound
	ErrChatExists      = dao.ErrChatExists
	ErrMessageNotFound = dao.ErrMessageNotFound
)

type ChatDAO interface {
	Insert(ctx context.Context, chat dao.Chat) (dao.Chat, error)
	FindByID(ctx context.Context, id uint) (dao.Chat, error)
	FindByOrderID(ctx context.Context, orderID uint) (dao.Chat, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Chat, error)
	InsertMessage(ctx context.Context, message dao.Message) (dao.Message, error)
	FindMessages(ctx context.Context, chatID uint) ([]dao.Message, error)
	FindMessageByID(ctx context.Context, id uint) (dao.Message, error)
	MarkMessagesRead(ctx context.Context, chatID, readerID uint) (int64, error)
}

type ChatRepository struct {
	dao ChatDAO
}

func NewChatRepository(dao ChatDAO) *ChatRepository {
	return &ChatRepository{
		dao: dao,
	}
}

func (r *ChatRepository) Create(ctx context.Context, chat domain.Chat) (domain.Chat, error) {
	created, err := r.dao.Insert(ctx, dao.Chat{
		OrderID:  chat.OrderID,
		BuyerID:  chat.BuyerID,
		SellerID: chat.SellerID,
	})
	if err != nil {
		return domain.Chat{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ChatRepository) FindByID(ctx context.Context, id uint) (domain.Chat, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Chat{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ChatRepository) FindByOrderID(ctx context.Context, orderID uint) (domain.Chat, error) {
	found, err := r.dao.FindByOrderID(ctx, orderID)
	if err != nil {
		return domain.Chat{}, fmt.Errorf("r.dao.FindByOrderID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// FindSummariesByUserID returns the user's chats decorated with their order
// status and gig summary; participant profiles are joined in by the service.
func (r *ChatRepository) FindSummariesByUserID(ctx context.Context, userID uint) ([]domain.ChatSummary, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	summaries := make([]domain.ChatSummary, len(found))
	for i, chat := range found {
		summaries[i] = domain.ChatSummary{
			Chat:        r.daoToDomain(chat),
			OrderStatus: domain.OrderStatus(chat.Order.Status),
			GigTitle:    chat.Order.Gig.Title,
			GigImageURL: chat.Order.Gig.ImageURL,
		}
	}

	return summaries, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, message domain.Message) (domain.Message, error) {
	created, err := r.dao.InsertMessage(ctx, dao.Message{
		ChatID:   message.ChatID,
		SenderID: message.SenderID,
		Content:  message.Content,
		FileURL:  message.FileURL,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("r.dao.InsertMessage -> %w", err)
	}

	return r.messageDaoToDomain(created), nil
}

func (r *ChatRepository) FindMessages(ctx context.Context, chatID uint) ([]domain.Message, error) {
	found, err := r.dao.FindMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindMessages -> %w", err)
	}

	messages := make([]domain.Message, len(found))
	for i, m := range found {
		messages[i] = r.messageDaoToDomain(m)
	}

	return messages, nil
}

func (r *ChatRepository) FindMessageByID(ctx context.Context, id uint) (domain.Message, error) {
	found, err := r.dao.FindMessageByID(ctx, id)
	if err != nil {
		return domain.Message{}, fmt.Errorf("r.dao.FindMessageByID -> %w", err)
	}

	return r.messageDaoToDomain(found), nil
}

func (r *ChatRepository) MarkMessagesRead(ctx context.Context, chatID, readerID uint) (int64, error) {
	updated, err := r.dao.MarkMessagesRead(ctx, chatID, readerID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MarkMessagesRead -> %w", err)
	}

	return updated, nil
}

func (r *ChatRepository) daoToDomain(c dao.Chat) domain.Chat {
	return domain.Chat{
		ID:        c.ID,
		OrderID:   c.OrderID,
		BuyerID:   c.BuyerID,
		SellerID:  c.SellerID,
		CreatedAt: c.CreatedAt,
	}
}

func (r *ChatRepository) messageDaoToDomain(m dao.Message) domain.Message {
	return domain.Message{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		FileURL:   m.FileURL,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}
