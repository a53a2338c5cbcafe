package chat

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eduspark/backend/internal/format"
	model "github.com/eduspark/backend/internal/model/chat"
	"github.com/eduspark/backend/internal/service/ai"
	chatService "github.com/eduspark/backend/internal/service/chat"
	"github.com/eduspark/backend/pkg/utils"
)

const sessionCookieName = "session_id"

// Handler 聊天服务的HTTP处理器
type Handler struct {
	store     *chatService.Store
	generator ai.Generator
}

// New 创建聊天处理器
func New(store *chatService.Store, generator ai.Generator) *Handler {
	return &Handler{
		store:     store,
		generator: generator,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/history", h.handleHistory)
	r.Post("/reset", h.handleReset)
}

// handleChat 处理一轮对话：解析会话、调用模型、记录并返回双份文本
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message *string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Message == nil {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}
	// Empty and whitespace-only messages pass through verbatim.
	message := *payload.Message

	sessionID, isNew := h.store.Resolve(r.Context(), h.cookieSessionID(r))
	if isNew {
		log.Printf("[chat] new session %s", sessionID)
	}

	reply, err := h.generator.Generate(r.Context(), message)
	if err != nil {
		// Soft degradation: the exchange still completes and records.
		log.Printf("[chat] provider failed for session %s: %v", sessionID, err)
		reply = fmt.Sprintf("[Local Test Mode] You said: %s (provider failed: %v)", message, err)
	}

	rendered := format.Format(reply)

	// Both turns land under one lock so no reader sees a half-recorded
	// exchange.
	err = h.store.AppendExchange(r.Context(), sessionID,
		model.Turn{Sender: model.SenderUser, Text: message},
		model.Turn{Sender: model.SenderBot, Text: rendered.Plain},
	)
	if err != nil {
		// Session vanished between resolve and append (concurrent reset).
		utils.RespondError(w, http.StatusInternalServerError, "failed to record exchange")
		return
	}

	http.SetCookie(w, sessionCookie(sessionID))
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"response":   rendered.Plain,
		"html":       rendered.HTML,
		"session_id": sessionID,
	})
}

// handleHistory 返回当前会话的完整记录
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	history := h.store.History(r.Context(), h.cookieSessionID(r))
	utils.RespondJSON(w, http.StatusOK, map[string]any{"history": history})
}

// handleReset 清空当前会话并失效 cookie
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.store.Reset(r.Context(), h.cookieSessionID(r))
	http.SetCookie(w, expiredSessionCookie())
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Chat reset successfully"})
}

// cookieSessionID 读取客户端携带的会话标识，缺失时返回空串
func (h *Handler) cookieSessionID(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func sessionCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

func expiredSessionCookie() *http.Cookie {
	c := sessionCookie("")
	c.MaxAge = -1
	return c
}
