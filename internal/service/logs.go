package service

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pettzin/ProjetoAstracode/internal/logbook"
)

// logRequest is the body accepted by the client-side logging endpoint.
type logRequest struct {
	Action string          `json:"action"`
	UserId string          `json:"userId"`
	Data   json.RawMessage `json:"data"`
}

// recordLog appends a client-reported action to the action log. The browser
// front-end uses this to record UI-side events next to the server-side ones.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/log --request "POST" --include --header "Content-Type: application/json" --data '{"action": "createGroup", "userId": "system", "data": {"groupName": "amigos"}}'
func recordLog(c *gin.Context) {
	if actions == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "logbook not configured"})
		return
	}
	var req logRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if req.Action == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "action is required"})
		return
	}
	if err := actions.Record(req.Action, req.UserId, req.Data); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "could not record log"})
		return
	}
	c.IndentedJSON(http.StatusCreated, gin.H{"message": "log recorded"})
}

// readLogs responds with the last lines of the action log. The 'limit' URL
// parameter caps the number of returned lines and defaults to 100.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/logs?limit=20"
func readLogs(c *gin.Context) {
	if actions == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "logbook not configured"})
		return
	}
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid limit parameter"})
			return
		}
		limit = parsed
	}
	lines, err := actions.Tail(limit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "could not read logs"})
		return
	}
	if lines == nil {
		lines = []string{}
	}
	c.IndentedJSON(http.StatusOK, lines)
}

// downloadLogs serves the raw log file as an attachment.
//
// Example REST API call:
//
//	> curl -O -J "http://localhost:8080/logs/download"
func downloadLogs(c *gin.Context) {
	if actions == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "logbook not configured"})
		return
	}
	c.FileAttachment(actions.Path(), logbook.FileName)
}
