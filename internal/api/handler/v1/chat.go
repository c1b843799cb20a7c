package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/campusgigs/campusgigs-api/internal/api/handler/v1/response"
	"github.com/campusgigs/campusgigs-api/internal/domain"
	"github.com/campusgigs/campusgigs-api/internal/realtime"
	"github.com/campusgigs/campusgigs-api/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type ChatService interface {
	GetOrCreateChat(ctx context.Context, orderID, userID uint) (domain.Chat, error)
	GetMessages(ctx context.Context, chatID, userID uint) ([]domain.Message, error)
	SendMessage(ctx context.Context, input service.SendMessageInput) (domain.Message, error)
	MarkMessagesRead(ctx context.Context, chatID, userID uint) (int64, error)
	ListChats(ctx context.Context, userID uint) ([]domain.ChatSummary, error)
	Subscribe(ctx context.Context, chatID, userID uint) (*realtime.Subscription, error)
}

type ChatHandler struct {
	svc  ChatService
	uSvc UserService
}

func NewChatHandler(svc ChatService, uSvc UserService) *ChatHandler {
	return &ChatHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetOrCreateChat godoc
// @Summary      Get the chat of an order, creating it on first access
// @Tags         chats
// @Produce      json
// @Param        orderID   path      int true "Order ID"
// @Success      200      {object}   domain.Chat
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID}/chat [get]
// @Security     BearerAuth
func (h *ChatHandler) HandleGetOrCreateChat(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	orderID, err := strconv.ParseUint(ctx.Param("orderID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid order id")))
		return
	}

	chat, err := h.svc.GetOrCreateChat(ctx.Request.Context(), uint(orderID), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order", "orderID", orderID))
			return
		}
		if errors.Is(err, service.ErrNotChatParticipant) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetOrCreateChat -> h.svc.GetOrCreateChat -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, chat)
}

// HandleListChats godoc
// @Summary      List the caller's chats, newest first
// @Tags         chats
// @Produce      json
// @Success      200      {array}    domain.ChatSummary
// @Failure      500      {object}   response.Err
// @Router       /chats [get]
// @Security     BearerAuth
func (h *ChatHandler) HandleListChats(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	chats, err := h.svc.ListChats(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListChats -> h.svc.ListChats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, chats)
}

// HandleGetMessages godoc
// @Summary      Get a chat's messages in ascending creation order
// @Tags         chats
// @Produce      json
// @Param        chatID   path      int true "Chat ID"
// @Success      200      {array}    domain.Message
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /chats/{chatID}/messages [get]
// @Security     BearerAuth
func (h *ChatHandler) HandleGetMessages(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	chatID, err := strconv.ParseUint(ctx.Param("chatID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid chat id")))
		return
	}

	messages, err := h.svc.GetMessages(ctx.Request.Context(), uint(chatID), user.ID)
	if err != nil {
		if respErr = chatAccessErr(err, chatID); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		err = fmt.Errorf("v1.HandleGetMessages -> h.svc.GetMessages -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, messages)
}

// HandleSendMessage godoc
// @Summary      Send a message, optionally with a file attachment
// @Tags         chats
// @Accept       multipart/form-data
// @Produce      json
// @Param        chatID   path      int true "Chat ID"
// @Param        content  formData   string false "message text"
// @Param        file     formData   file false "attachment, 10MB max"
// @Success      201      {object}   domain.Message
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /chats/{chatID}/messages [post]
// @Security     BearerAuth
func (h *ChatHandler) HandleSendMessage(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	chatID, err := strconv.ParseUint(ctx.Param("chatID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid chat id")))
		return
	}

	input := service.SendMessageInput{
		ChatID:   uint(chatID),
		SenderID: user.ID,
		Content:  ctx.PostForm("content"),
	}

	if fileHeader, err := ctx.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		defer file.Close()

		input.Attachment = &service.Attachment{
			Filename:    fileHeader.Filename,
			Size:        fileHeader.Size,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Reader:      file,
		}
	}

	message, err := h.svc.SendMessage(ctx.Request.Context(), input)
	if err != nil {
		if respErr = chatAccessErr(err, chatID); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}
		if errors.Is(err, service.ErrEmptyMessage) ||
			errors.Is(err, service.ErrAttachmentTooLarge) ||
			errors.Is(err, service.ErrAttachmentTypeNotAllowed) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleSendMessage -> h.svc.SendMessage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, message)
}

// HandleMarkRead godoc
// @Summary      Mark the other participant's messages as read
// @Tags         chats
// @Produce      json
// @Param        chatID   path      int true "Chat ID"
// @Success      200      {object}   response.MarkReadResponse
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /chats/{chatID}/read [post]
// @Security     BearerAuth
func (h *ChatHandler) HandleMarkRead(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	chatID, err := strconv.ParseUint(ctx.Param("chatID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid chat id")))
		return
	}

	marked, err := h.svc.MarkMessagesRead(ctx.Request.Context(), uint(chatID), user.ID)
	if err != nil {
		if respErr = chatAccessErr(err, chatID); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		err = fmt.Errorf("v1.HandleMarkRead -> h.svc.MarkMessagesRead -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MarkReadResponse{MarkedRead: marked})
}

// HandleChatWebSocket godoc
// @Summary      Establish a WebSocket connection streaming a chat's new messages
// @Description  Streams message.created events for the chat as they happen. Pass the JWT via the token query parameter.
// @Tags         chats
// @Produce      json
// @Param        chatID   path      int true "Chat ID"
// @Param        token    query     string false "JWT, for clients that cannot set headers"
// @Success      101      {string}   string "Switching Protocols to WebSocket"
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /chats/{chatID}/ws [get]
// @Security     BearerAuth
func (h *ChatHandler) HandleChatWebSocket(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	chatID, err := strconv.ParseUint(ctx.Param("chatID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid chat id")))
		return
	}

	sub, err := h.svc.Subscribe(ctx.Request.Context(), uint(chatID), user.ID)
	if err != nil {
		if respErr = chatAccessErr(err, chatID); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		err = fmt.Errorf("v1.HandleChatWebSocket -> h.svc.Subscribe -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		sub.Cancel()
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	go writePump(conn, sub)
	go readPump(conn, sub)
}

// writePump streams subscription events to the socket as JSON text frames.
func writePump(conn *websocket.Conn, sub *realtime.Subscription) {
	defer conn.Close()

	for event := range sub.Events() {
		if err := conn.WriteJSON(event); err != nil {
			sub.Cancel()
			return
		}
	}

	conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards inbound frames; its job is noticing the disconnect so the
// subscription gets canceled.
func readPump(conn *websocket.Conn, sub *realtime.Subscription) {
	defer func() {
		sub.Cancel()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

// chatAccessErr maps the shared chat lookup failures every chat operation can
// hit; it returns nil for anything else.
func chatAccessErr(err error, chatID uint64) *response.Err {
	if errors.Is(err, service.ErrChatNotFound) {
		return response.ErrNotFound("chat", "chatID", chatID)
	}
	if errors.Is(err, service.ErrNotChatParticipant) {
		return response.ErrPermissionDenied(err)
	}

	return nil
}
