package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrChatNotFound    = errors.New("chat not found")
	ErrChatExists      = errors.New("chat already exists for order")
	ErrMessageNotFound = errors.New("message not found")
)

// Chat holds exactly one row per order; the unique index on order_id is what
// makes concurrent get-or-create converge.
type Chat struct {
	ID       uint `gorm:"primaryKey"`
	OrderID  uint `gorm:"uniqueIndex;not null"`
	BuyerID  uint `gorm:"index;not null"`
	SellerID uint `gorm:"index;not null"`

	Order Order `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `gorm:"not null"`
}

type Message struct {
	ID       uint `gorm:"primaryKey"`
	ChatID   uint `gorm:"index;not null"`
	SenderID uint `gorm:"not null"`

	Content *string
	FileURL *string
	IsRead  bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
}

type ChatDAO struct {
	db *gorm.DB
}

func NewChatDAO(db *gorm.DB) *ChatDAO {
	return &ChatDAO{
		db: db,
	}
}

func (d *ChatDAO) Insert(ctx context.Context, chat Chat) (Chat, error) {
	result := d.db.WithContext(ctx).Create(&chat)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return Chat{}, ErrChatExists
		}

		return Chat{}, result.Error
	}

	return chat, nil
}

func (d *ChatDAO) FindByID(ctx context.Context, id uint) (Chat, error) {
	var chat Chat

	result := d.db.WithContext(ctx).First(&chat, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Chat{}, ErrChatNotFound
		}

		return Chat{}, result.Error
	}

	return chat, nil
}

func (d *ChatDAO) FindByOrderID(ctx context.Context, orderID uint) (Chat, error) {
	var chat Chat

	result := d.db.WithContext(ctx).First(&chat, "order_id = ?", orderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Chat{}, ErrChatNotFound
		}

		return Chat{}, result.Error
	}

	return chat, nil
}

// FindByUserID lists the chats where the user is either participant, newest
// first, with the order and its gig preloaded for the inbox view.
func (d *ChatDAO) FindByUserID(ctx context.Context, userID uint) ([]Chat, error) {
	var chats []Chat

	result := d.db.WithContext(ctx).
		Preload("Order").
		Preload("Order.Gig").
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&chats)
	if result.Error != nil {
		return nil, result.Error
	}

	return chats, nil
}

func (d *ChatDAO) InsertMessage(ctx context.Context, message Message) (Message, error) {
	result := d.db.WithContext(ctx).Create(&message)
	if result.Error != nil {
		return Message{}, result.Error
	}

	return message, nil
}

// FindMessages returns all messages of a chat in ascending creation order.
// The id tiebreak keeps same-timestamp messages stable.
func (d *ChatDAO) FindMessages(ctx context.Context, chatID uint) ([]Message, error) {
	var messages []Message

	result := d.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}

	return messages, nil
}

func (d *ChatDAO) FindMessageByID(ctx context.Context, id uint) (Message, error) {
	var message Message

	result := d.db.WithContext(ctx).First(&message, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Message{}, ErrMessageNotFound
		}

		return Message{}, result.Error
	}

	return message, nil
}

// MarkMessagesRead flips is_read on every unread message in the chat that the
// reader did not author. The filter makes repeated calls no-ops.
func (d *ChatDAO) MarkMessagesRead(ctx context.Context, chatID, readerID uint) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&Message{}).
		Where("chat_id = ? AND sender_id <> ? AND is_read = ?", chatID, readerID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
