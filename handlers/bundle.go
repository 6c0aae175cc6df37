package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates all route handlers for registration.
type HandlerBundle struct {
	// Chat endpoints.
	HandleChatHandler gin.HandlerFunc
	GetTracesHandler  gin.HandlerFunc

	// Calendar endpoints.
	ListEventsHandler gin.HandlerFunc
}
