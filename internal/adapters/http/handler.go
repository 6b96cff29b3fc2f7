package httpadapter

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polyarguminds/polyargu/internal/app/discussion"
	"github.com/polyarguminds/polyargu/internal/domain"
)

type Server struct {
	svc       *discussion.Service
	extractor domain.TextExtractor
}

// NewRouter wires the discussion API. Paths mirror the public contract:
// session lifecycle and turn triggering under /api/discussion.
func NewRouter(svc *discussion.Service, extractor domain.TextExtractor) *gin.Engine {
	s := &Server{svc: svc, extractor: extractor}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), corsMiddleware())

	r.GET("/api/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api/discussion")
	api.POST("/start", s.startSession)
	api.POST("/start-with-file", s.startSessionWithFile)
	api.POST("/send", s.sendUserMessage)
	api.GET("/sessions", s.listSessions)
	api.GET("/session/:sessionId", s.getSession)
	api.DELETE("/session/:sessionId", s.deleteSession)
	api.POST("/:sessionId/next-turn", s.nextTurn)
	api.POST("/:sessionId/extend", s.extendSession)
	api.POST("/:sessionId/end", s.endSession)
	api.GET("/:sessionId/history", s.getHistory)
	api.GET("/:sessionId/file", s.downloadFile)

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type startSessionRequest struct {
	Topic      string `json:"topic" binding:"required"`
	Mode       string `json:"mode" binding:"required"`
	TotalTurns int    `json:"totalTurns"`
}

type sendMessageRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

type sessionResponse struct {
	ID        string     `json:"id"`
	Topic     string     `json:"topic"`
	Mode      string     `json:"mode"`
	Status    string     `json:"status"`
	MaxTurns  int        `json:"maxTurns"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	FileName  string     `json:"fileName,omitempty"`
	FileType  string     `json:"fileType,omitempty"`
}

type messageResponse struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId"`
	SenderName string    `json:"senderName"`
	Content    string    `json:"content"`
	IsAI       bool      `json:"isAi"`
	Timestamp  time.Time `json:"timestamp"`
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:        string(s.ID),
		Topic:     s.Topic,
		Mode:      string(s.Mode),
		Status:    string(s.Status),
		MaxTurns:  s.MaxTurns,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		CreatedAt: s.CreatedAt,
		FileName:  s.FileName,
		FileType:  s.FileType,
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:         string(m.ID),
		SessionID:  string(m.SessionID),
		SenderName: m.SenderName,
		Content:    m.Content,
		IsAI:       m.IsAI,
		Timestamp:  m.Timestamp,
	}
}

// ─────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────

func (s *Server) startSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	mode, ok := parseMode(req.Mode)
	if !ok {
		badRequest(c, "mode must be DEBATE or COLLABORATION")
		return
	}

	session, err := s.svc.StartSession(c.Request.Context(), discussion.StartSessionInput{
		Topic:  req.Topic,
		Mode:   mode,
		Rounds: req.TotalTurns,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (s *Server) startSessionWithFile(c *gin.Context) {
	topic := c.PostForm("topic")
	if topic == "" {
		badRequest(c, "topic is required")
		return
	}

	mode, ok := parseMode(c.PostForm("mode"))
	if !ok {
		badRequest(c, "mode must be DEBATE or COLLABORATION")
		return
	}

	rounds := 10
	if v := c.PostForm("totalTurns"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "totalTurns must be an integer")
			return
		}
		rounds = n
	}

	input := discussion.StartSessionInput{
		Topic:  topic,
		Mode:   mode,
		Rounds: rounds,
	}

	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader != nil {
		f, err := fileHeader.Open()
		if err != nil {
			badRequest(c, "unable to read uploaded file")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			badRequest(c, "unable to read uploaded file")
			return
		}

		extracted := s.extractor.ExtractText(fileHeader.Filename, data)
		input.Topic = fmt.Sprintf("%s\n\n[Context from File (%s)]:\n%s", topic, fileHeader.Filename, extracted)
		input.Attachment = &discussion.Attachment{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	session, err := s.svc.StartSession(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (s *Server) sendUserMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		badRequest(c, "content is required")
		return
	}

	msg, err := s.svc.RecordUserMessage(c.Request.Context(), domain.SessionID(req.SessionID), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponse(msg))
}

func (s *Server) nextTurn(c *gin.Context) {
	msg, err := s.svc.Advance(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if msg == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, toMessageResponse(msg))
}

func (s *Server) extendSession(c *gin.Context) {
	extraRounds, err := strconv.Atoi(c.Query("extraRounds"))
	if err != nil {
		badRequest(c, "extraRounds must be an integer")
		return
	}

	session, err := s.svc.Extend(c.Request.Context(), sessionID(c), extraRounds)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (s *Server) endSession(c *gin.Context) {
	msg, err := s.svc.EndEarly(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponse(msg))
}

func (s *Server) getSession(c *gin.Context) {
	session, err := s.svc.GetSession(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

func (s *Server) listSessions(c *gin.Context) {
	sessions, err := s.svc.ListSessions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, toSessionResponse(sess))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getHistory(c *gin.Context) {
	msgs, err := s.svc.GetHistory(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) downloadFile(c *gin.Context) {
	session, err := s.svc.GetSession(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(session.FileData) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "session has no attachment"})
		return
	}

	contentType := session.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", session.FileName))
	c.Data(http.StatusOK, contentType, session.FileData)
}

func (s *Server) deleteSession(c *gin.Context) {
	if err := s.svc.DeleteSession(c.Request.Context(), sessionID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func sessionID(c *gin.Context) domain.SessionID {
	return domain.SessionID(c.Param("sessionId"))
}

func parseMode(s string) (domain.SessionMode, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBATE":
		return domain.ModeDebate, true
	case "COLLABORATION":
		return domain.ModeCollaboration, true
	default:
		return "", false
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
