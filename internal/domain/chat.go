package domain

import "time"

// Chat is the single conversation thread bound to one order. Its two
// participants are fixed at creation time and it is never deleted.
type Chat struct {
	ID        uint      `json:"id"`
	OrderID   uint      `json:"order_id"`
	BuyerID   uint      `json:"buyer_id"`
	SellerID  uint      `json:"seller_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Chat) IsParticipant(userID uint) bool {
	return c.BuyerID == userID || c.SellerID == userID
}

// Message is immutable once created except for IsRead, which only ever flips
// false to true.
type Message struct {
	ID        uint      `json:"id"`
	ChatID    uint      `json:"chat_id"`
	SenderID  uint      `json:"sender_id"`
	Content   *string   `json:"content"`
	FileURL   *string   `json:"file_url"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`

	Sender Sender `json:"sender"`
}

// ChatSummary is a chat decorated for the inbox view.
type ChatSummary struct {
	Chat
	Buyer       Sender      `json:"buyer"`
	Seller      Sender      `json:"seller"`
	OrderStatus OrderStatus `json:"order_status"`
	GigTitle    string      `json:"gig_title"`
	GigImageURL *string     `json:"gig_image_url"`
}
