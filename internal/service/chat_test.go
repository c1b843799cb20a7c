package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgigs/campusgigs-api/internal/domain"
	"github.com/campusgigs/campusgigs-api/internal/realtime"
	"github.com/campusgigs/campusgigs-api/internal/repository"
)

type fakeChatRepo struct {
	CreateFn                func(ctx context.Context, chat domain.Chat) (domain.Chat, error)
	FindByIDFn              func(ctx context.Context, id uint) (domain.Chat, error)
	FindByOrderIDFn         func(ctx context.Context, orderID uint) (domain.Chat, error)
	FindSummariesByUserIDFn func(ctx context.Context, userID uint) ([]domain.ChatSummary, error)
	CreateMessageFn         func(ctx context.Context, message domain.Message) (domain.Message, error)
	FindMessagesFn          func(ctx context.Context, chatID uint) ([]domain.Message, error)
	FindMessageByIDFn       func(ctx context.Context, id uint) (domain.Message, error)
	MarkMessagesReadFn      func(ctx context.Context, chatID, readerID uint) (int64, error)
}

func (f *fakeChatRepo) Create(ctx context.Context, chat domain.Chat) (domain.Chat, error) {
	return f.CreateFn(ctx, chat)
}

func (f *fakeChatRepo) FindByID(ctx context.Context, id uint) (domain.Chat, error) {
	return f.FindByIDFn(ctx, id)
}

func (f *fakeChatRepo) FindByOrderID(ctx context.Context, orderID uint) (domain.Chat, error) {
	return f.FindByOrderIDFn(ctx, orderID)
}

func (f *fakeChatRepo) FindSummariesByUserID(ctx context.Context, userID uint) ([]domain.ChatSummary, error) {
	return f.FindSummariesByUserIDFn(ctx, userID)
}

func (f *fakeChatRepo) CreateMessage(ctx context.Context, message domain.Message) (domain.Message, error) {
	return f.CreateMessageFn(ctx, message)
}

func (f *fakeChatRepo) FindMessages(ctx context.Context, chatID uint) ([]domain.Message, error) {
	return f.FindMessagesFn(ctx, chatID)
}

func (f *fakeChatRepo) FindMessageByID(ctx context.Context, id uint) (domain.Message, error) {
	return f.FindMessageByIDFn(ctx, id)
}

func (f *fakeChatRepo) MarkMessagesRead(ctx context.Context, chatID, readerID uint) (int64, error) {
	return f.MarkMessagesReadFn(ctx, chatID, readerID)
}

type fakeOrderRepo struct {
	FindByIDFn func(ctx context.Context, id uint) (domain.Order, error)
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	return f.FindByIDFn(ctx, id)
}

type fakeProfileRepo struct {
	FindSendersByIDsFn func(ctx context.Context, userIDs []uint) (map[uint]domain.Sender, error)
}

func (f *fakeProfileRepo) FindSendersByIDs(ctx context.Context, userIDs []uint) (map[uint]domain.Sender, error) {
	return f.FindSendersByIDsFn(ctx, userIDs)
}

type fakeFileStore struct {
	UploadFn  func(ctx context.Context, bucket, path string, r io.Reader) error
	uploads   []string
	maxUpload int64
}

func (f *fakeFileStore) Upload(ctx context.Context, bucket, path string, r io.Reader) error {
	f.uploads = append(f.uploads, bucket+"/"+path)
	if f.UploadFn != nil {
		return f.UploadFn(ctx, bucket, path, r)
	}

	return nil
}

func (f *fakeFileStore) SignedURL(bucket, path string, ttl time.Duration) string {
	return "https://files.test/" + bucket + "/" + path + "?signed=1"
}

func (f *fakeFileStore) MaxUploadSize() int64 {
	if f.maxUpload == 0 {
		return 10 << 20
	}

	return f.maxUpload
}

type fakeEvents struct {
	created []domain.Message
	err     error
}

func (f *fakeEvents) MessageCreated(ctx context.Context, message domain.Message) error {
	f.created = append(f.created, message)
	return f.err
}

func knownSenders(ids ...uint) func(ctx context.Context, userIDs []uint) (map[uint]domain.Sender, error) {
	return func(ctx context.Context, userIDs []uint) (map[uint]domain.Sender, error) {
		senders := make(map[uint]domain.Sender)
		for _, id := range ids {
			senders[id] = domain.Sender{ID: id, Username: "user"}
		}

		return senders, nil
	}
}

func newTestHub(t *testing.T) *realtime.Hub {
	t.Helper()

	hub := realtime.NewHub(nil)
	go hub.Run()

	return hub
}

func TestChatService_GetOrCreateChat(t *testing.T) {
	ctx := context.Background()
	existing := domain.Chat{ID: 7, OrderID: 3, BuyerID: 1, SellerID: 2}

	t.Run("returns the existing chat", func(t *testing.T) {
		repo := &fakeChatRepo{
			FindByOrderIDFn: func(ctx context.Context, orderID uint) (domain.Chat, error) {
				return existing, nil
			},
		}
		svc := NewChatService(repo, &fakeOrderRepo{}, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		chat, err := svc.GetOrCreateChat(ctx, 3, 1)

		require.NoError(t, err)
		assert.Equal(t, existing, chat)
	})

	t.Run("rejects a non-participant on an existing chat", func(t *testing.T) {
		repo := &fakeChatRepo{
			FindByOrderIDFn: func(ctx context.Context, orderID uint) (domain.Chat, error) {
				return existing, nil
			},
		}
		svc := NewChatService(repo, &fakeOrderRepo{}, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		_, err := svc.GetOrCreateChat(ctx, 3, 99)

		assert.ErrorIs(t, err, ErrNotChatParticipant)
	})

	t.Run("creates the chat on first access with the order's participants", func(t *testing.T) {
		repo := &fakeChatRepo{
			FindByOrderIDFn: func(ctx context.Context, orderID uint) (domain.Chat, error) {
				return domain.Chat{}, repository.ErrChatNotFound
			},
			CreateFn: func(ctx context.Context, chat domain.Chat) (domain.Chat, error) {
				chat.ID = 8
				return chat, nil
			},
		}
		orderRepo := &fakeOrderRepo{
			FindByIDFn: func(ctx context.Context, id uint) (domain.Order, error) {
				return domain.Order{ID: 3, BuyerID: 1, SellerID: 2}, nil
			},
		}
		svc := NewChatService(repo, orderRepo, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		chat, err := svc.GetOrCreateChat(ctx, 3, 2)

		require.NoError(t, err)
		assert.Equal(t, uint(8), chat.ID)
		assert.Equal(t, uint(3), chat.OrderID)
		assert.Equal(t, uint(1), chat.BuyerID)
		assert.Equal(t, uint(2), chat.SellerID)
	})

	t.Run("rejects a non-participant of the order", func(t *testing.T) {
		repo := &fakeChatRepo{
			FindByOrderIDFn: func(ctx context.Context, orderID uint) (domain.Chat, error) {
				return domain.Chat{}, repository.ErrChatNotFound
			},
		}
		orderRepo := &fakeOrderRepo{
			FindByIDFn: func(ctx context.Context, id uint) (domain.Order, error) {
				return domain.Order{ID: 3, BuyerID: 1, SellerID: 2}, nil
			},
		}
		svc := NewChatService(repo, orderRepo, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		_, err := svc.GetOrCreateChat(ctx, 3, 99)

		assert.ErrorIs(t, err, ErrNotChatParticipant)
	})

	t.Run("missing order surfaces as not found", func(t *testing.T) {
		repo := &fakeChatRepo{
			FindByOrderIDFn: func(ctx context.Context, orderID uint) (domain.Chat, error) {
				return domain.Chat{}, repository.ErrChatNotFound
			},
		}
		orderRepo := &fakeOrderRepo{
			FindByIDFn: func(ctx context.Context, id uint) (domain.Order, error) {
				return domain.Order{}, repository.ErrOrderNotFound
			},
		}
		svc := NewChatService(repo, orderRepo, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		_, err := svc.GetOrCreateChat(ctx, 3, 1)

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("losing the creation race re-reads the winner's chat", func(t *testing.T) {
		reads := 0
		repo := &fakeChatRepo{
			FindByOrderIDFn: func(ctx context.Context, orderID uint) (domain.Chat, error) {
				reads++
				if reads == 1 {
					return domain.Chat{}, repository.ErrChatNotFound
				}

				return existing, nil
			},
			CreateFn: func(ctx context.Context, chat domain.Chat) (domain.Chat, error) {
				return domain.Chat{}, repository.ErrChatExists
			},
		}
		orderRepo := &fakeOrderRepo{
			FindByIDFn: func(ctx context.Context, id uint) (domain.Order, error) {
				return domain.Order{ID: 3, BuyerID: 1, SellerID: 2}, nil
			},
		}
		svc := NewChatService(repo, orderRepo, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		chat, err := svc.GetOrCreateChat(ctx, 3, 1)

		require.NoError(t, err)
		assert.Equal(t, existing, chat)
		assert.Equal(t, 2, reads)
	})
}

func TestChatService_GetMessages(t *testing.T) {
	ctx := context.Background()
	chat := domain.Chat{ID: 7, OrderID: 3, BuyerID: 1, SellerID: 2}

	findChat := func(ctx context.Context, id uint) (domain.Chat, error) {
		return chat, nil
	}

	t.Run("keeps ascending order and decorates senders", func(t *testing.T) {
		first := "hi"
		second := "hello"
		repo := &fakeChatRepo{
			FindByIDFn: findChat,
			FindMessagesFn: func(ctx context.Context, chatID uint) ([]domain.Message, error) {
				return []domain.Message{
					{ID: 10, ChatID: 7, SenderID: 1, Content: &first},
					{ID: 11, ChatID: 7, SenderID: 2, Content: &second},
				}, nil
			},
		}
		profileRepo := &fakeProfileRepo{FindSendersByIDsFn: knownSenders(1, 2)}
		svc := NewChatService(repo, &fakeOrderRepo{}, profileRepo, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		messages, err := svc.GetMessages(ctx, 7, 1)

		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, uint(10), messages[0].ID)
		assert.Equal(t, uint(11), messages[1].ID)
		assert.Equal(t, "user", messages[0].Sender.Username)
	})

	t.Run("senders without a profile render as Unknown", func(t *testing.T) {
		repo := &fakeChatRepo{
			FindByIDFn: findChat,
			FindMessagesFn: func(ctx context.Context, chatID uint) ([]domain.Message, error) {
				return []domain.Message{{ID: 10, ChatID: 7, SenderID: 1}}, nil
			},
		}
		profileRepo := &fakeProfileRepo{FindSendersByIDsFn: knownSenders()}
		svc := NewChatService(repo, &fakeOrderRepo{}, profileRepo, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		messages, err := svc.GetMessages(ctx, 7, 1)

		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "Unknown", messages[0].Sender.Username)
	})

	t.Run("empty chat yields an empty slice", func(t *testing.T) {
		repo := &fakeChatRepo{
			FindByIDFn: findChat,
			FindMessagesFn: func(ctx context.Context, chatID uint) ([]domain.Message, error) {
				return []domain.Message{}, nil
			},
		}
		svc := NewChatService(repo, &fakeOrderRepo{}, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		messages, err := svc.GetMessages(ctx, 7, 2)

		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("rejects a non-participant", func(t *testing.T) {
		repo := &fakeChatRepo{FindByIDFn: findChat}
		svc := NewChatService(repo, &fakeOrderRepo{}, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		_, err := svc.GetMessages(ctx, 7, 99)

		assert.ErrorIs(t, err, ErrNotChatParticipant)
	})
}

func TestChatService_SendMessage(t *testing.T) {
	ctx := context.Background()
	chat := domain.Chat{ID: 7, OrderID: 3, BuyerID: 1, SellerID: 2}

	findChat := func(ctx context.Context, id uint) (domain.Chat, error) {
		return chat, nil
	}

	passthroughCreate := func(ctx context.Context, message domain.Message) (domain.Message, error) {
		message.ID = 42
		message.CreatedAt = time.Now()
		return message, nil
	}

	t.Run("stores trimmed text", func(t *testing.T) {
		repo := &fakeChatRepo{FindByIDFn: findChat, CreateMessageFn: passthroughCreate}
		profileRepo := &fakeProfileRepo{FindSendersByIDsFn: knownSenders(1)}
		svc := NewChatService(repo, &fakeOrderRepo{}, profileRepo, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		message, err := svc.SendMessage(ctx, SendMessageInput{ChatID: 7, SenderID: 1, Content: "  hello there  "})

		require.NoError(t, err)
		require.NotNil(t, message.Content)
		assert.Equal(t, "hello there", *message.Content)
		assert.Nil(t, message.FileURL)
	})

	t.Run("whitespace-only text without attachment is rejected", func(t *testing.T) {
		repo := &fakeChatRepo{
			FindByIDFn: findChat,
			CreateMessageFn: func(ctx context.Context, message domain.Message) (domain.Message, error) {
				t.Fatal("nothing should be persisted")
				return domain.Message{}, nil
			},
		}
		svc := NewChatService(repo, &fakeOrderRepo{}, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		_, err := svc.SendMessage(ctx, SendMessageInput{ChatID: 7, SenderID: 1, Content: "   \n\t  "})

		assert.ErrorIs(t, err, ErrEmptyMessage)
	})

	t.Run("attachment-only message is allowed and content stays absent", func(t *testing.T) {
		repo := &fakeChatRepo{FindByIDFn: findChat, CreateMessageFn: passthroughCreate}
		profileRepo := &fakeProfileRepo{FindSendersByIDsFn: knownSenders(1)}
		store := &fakeFileStore{}
		svc := NewChatService(repo, &fakeOrderRepo{}, profileRepo, store, newTestHub(t), &fakeEvents{})

		message, err := svc.SendMessage(ctx, SendMessageInput{
			ChatID:   7,
			SenderID: 1,
			Content:  "   ",
			Attachment: &Attachment{
				Filename:    "notes.pdf",
				Size:        1024,
				ContentType: "application/pdf",
				Reader:      bytes.NewReader([]byte("pdf")),
			},
		})

		require.NoError(t, err)
		assert.Nil(t, message.Content)
		require.NotNil(t, message.FileURL)
		assert.Contains(t, *message.FileURL, "signed=1")
	})

	t.Run("attachment path is scoped to the order and keeps the filename", func(t *testing.T) {
		repo := &fakeChatRepo{FindByIDFn: findChat, CreateMessageFn: passthroughCreate}
		profileRepo := &fakeProfileRepo{FindSendersByIDsFn: knownSenders(1)}
		store := &fakeFileStore{}
		svc := NewChatService(repo, &fakeOrderRepo{}, profileRepo, store, newTestHub(t), &fakeEvents{})

		_, err := svc.SendMessage(ctx, SendMessageInput{
			ChatID:   7,
			SenderID: 1,
			Attachment: &Attachment{
				Filename:    "../../../etc/my report.png",
				Size:        10,
				ContentType: "image/png",
				Reader:      bytes.NewReader([]byte("png")),
			},
		})

		require.NoError(t, err)
		require.Len(t, store.uploads, 1)
		assert.True(t, strings.HasPrefix(store.uploads[0], "chat-files/3/"), store.uploads[0])
		assert.True(t, strings.HasSuffix(store.uploads[0], "-my_report.png"), store.uploads[0])
		assert.NotContains(t, store.uploads[0], "..")
	})

	t.Run("oversized attachment is rejected before upload", func(t *testing.T) {
		repo := &fakeChatRepo{FindByIDFn: findChat}
		store := &fakeFileStore{maxUpload: 100}
		svc := NewChatService(repo, &fakeOrderRepo{}, &fakeProfileRepo{}, store, newTestHub(t), &fakeEvents{})

		_, err := svc.SendMessage(ctx, SendMessageInput{
			ChatID:   7,
			SenderID: 1,
			Attachment: &Attachment{
				Filename:    "big.png",
				Size:        101,
				ContentType: "image/png",
				Reader:      bytes.NewReader([]byte("png")),
			},
		})

		assert.ErrorIs(t, err, ErrAttachmentTooLarge)
		assert.Empty(t, store.uploads)
	})

	t.Run("disallowed content type is rejected", func(t *testing.T) {
		repo := &fakeChatRepo{FindByIDFn: findChat}
		svc := NewChatService(repo, &fakeOrderRepo{}, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		_, err := svc.SendMessage(ctx, SendMessageInput{
			ChatID:   7,
			SenderID: 1,
			Attachment: &Attachment{
				Filename:    "app.exe",
				Size:        10,
				ContentType: "application/x-msdownload",
				Reader:      bytes.NewReader([]byte("exe")),
			},
		})

		assert.ErrorIs(t, err, ErrAttachmentTypeNotAllowed)
	})

	t.Run("failed upload aborts the insert", func(t *testing.T) {
		inserted := false
		repo := &fakeChatRepo{
			FindByIDFn: findChat,
			CreateMessageFn: func(ctx context.Context, message domain.Message) (domain.Message, error) {
				inserted = true
				return message, nil
			},
		}
		store := &fakeFileStore{
			UploadFn: func(ctx context.Context, bucket, path string, r io.Reader) error {
				return errors.New("disk full")
			},
		}
		svc := NewChatService(repo, &fakeOrderRepo{}, &fakeProfileRepo{}, store, newTestHub(t), &fakeEvents{})

		_, err := svc.SendMessage(ctx, SendMessageInput{
			ChatID:   7,
			SenderID: 1,
			Content:  "with file",
			Attachment: &Attachment{
				Filename:    "a.png",
				Size:        10,
				ContentType: "image/png",
				Reader:      bytes.NewReader([]byte("png")),
			},
		})

		require.Error(t, err)
		assert.False(t, inserted)
	})

	t.Run("delivers the created message to subscribers and notifies", func(t *testing.T) {
		repo := &fakeChatRepo{FindByIDFn: findChat, CreateMessageFn: passthroughCreate}
		profileRepo := &fakeProfileRepo{FindSendersByIDsFn: knownSenders(1)}
		events := &fakeEvents{}
		hub := newTestHub(t)
		svc := NewChatService(repo, &fakeOrderRepo{}, profileRepo, &fakeFileStore{}, hub, events)

		sub := hub.Subscribe(7)
		defer sub.Cancel()

		message, err := svc.SendMessage(ctx, SendMessageInput{ChatID: 7, SenderID: 1, Content: "ping"})
		require.NoError(t, err)

		select {
		case event := <-sub.Events():
			assert.Equal(t, realtime.EventMessageCreated, event.Type)
			assert.Equal(t, message.ID, event.Message.ID)
			assert.Equal(t, "user", event.Message.Sender.Username)
		case <-time.After(time.Second):
			t.Fatal("no event delivered")
		}

		require.Len(t, events.created, 1)
		assert.Equal(t, message.ID, events.created[0].ID)
	})

	t.Run("rejects a non-participant sender", func(t *testing.T) {
		repo := &fakeChatRepo{FindByIDFn: findChat}
		svc := NewChatService(repo, &fakeOrderRepo{}, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		_, err := svc.SendMessage(ctx, SendMessageInput{ChatID: 7, SenderID: 99, Content: "hi"})

		assert.ErrorIs(t, err, ErrNotChatParticipant)
	})
}

func TestChatService_MarkMessagesRead(t *testing.T) {
	ctx := context.Background()
	chat := domain.Chat{ID: 7, OrderID: 3, BuyerID: 1, SellerID: 2}

	t.Run("reports how many messages flipped", func(t *testing.T) {
		calls := 0
		repo := &fakeChatRepo{
			FindByIDFn: func(ctx context.Context, id uint) (domain.Chat, error) {
				return chat, nil
			},
			MarkMessagesReadFn: func(ctx context.Context, chatID, readerID uint) (int64, error) {
				calls++
				if calls == 1 {
					return 3, nil
				}

				// Nothing left unread on the second pass.
				return 0, nil
			},
		}
		svc := NewChatService(repo, &fakeOrderRepo{}, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		marked, err := svc.MarkMessagesRead(ctx, 7, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(3), marked)

		marked, err = svc.MarkMessagesRead(ctx, 7, 1)
		require.NoError(t, err)
		assert.Zero(t, marked)
	})

	t.Run("rejects a non-participant", func(t *testing.T) {
		repo := &fakeChatRepo{
			FindByIDFn: func(ctx context.Context, id uint) (domain.Chat, error) {
				return chat, nil
			},
		}
		svc := NewChatService(repo, &fakeOrderRepo{}, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		_, err := svc.MarkMessagesRead(ctx, 7, 99)

		assert.ErrorIs(t, err, ErrNotChatParticipant)
	})

	t.Run("missing chat surfaces as not found", func(t *testing.T) {
		repo := &fakeChatRepo{
			FindByIDFn: func(ctx context.Context, id uint) (domain.Chat, error) {
				return domain.Chat{}, repository.ErrChatNotFound
			},
		}
		svc := NewChatService(repo, &fakeOrderRepo{}, &fakeProfileRepo{}, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

		_, err := svc.MarkMessagesRead(ctx, 7, 1)

		assert.ErrorIs(t, err, ErrChatNotFound)
	})
}

func TestChatService_ListChats(t *testing.T) {
	ctx := context.Background()

	repo := &fakeChatRepo{
		FindSummariesByUserIDFn: func(ctx context.Context, userID uint) ([]domain.ChatSummary, error) {
			return []domain.ChatSummary{
				{
					Chat:        domain.Chat{ID: 7, OrderID: 3, BuyerID: 1, SellerID: 2},
					OrderStatus: domain.OrderPaid,
					GigTitle:    "Logo design",
				},
			}, nil
		},
	}
	profileRepo := &fakeProfileRepo{FindSendersByIDsFn: knownSenders(1)}
	svc := NewChatService(repo, &fakeOrderRepo{}, profileRepo, &fakeFileStore{}, newTestHub(t), &fakeEvents{})

	summaries, err := svc.ListChats(ctx, 1)

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "user", summaries[0].Buyer.Username)
	assert.Equal(t, "Unknown", summaries[0].Seller.Username)
	assert.Equal(t, "Logo design", summaries[0].GigTitle)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "report.pdf", "report.pdf"},
		{"spaces become underscores", "my report.pdf", "my_report.pdf"},
		{"unix path stripped", "../../etc/passwd", "passwd"},
		{"windows path stripped", `C:\Users\me\cv.docx`, "cv.docx"},
		{"empty falls back", "", "file"},
		{"dot falls back", ".", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFilename(tt.in))
		})
	}
}
