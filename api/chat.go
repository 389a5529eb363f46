/*
Copyright 2025 AuditDesk Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/auditdesk/auditdesk"
	model2 "github.com/auditdesk/auditdesk/api/model"
)

func (a Api) GetChat(c *gin.Context) {
	session := a.desk.Chat()
	c.JSON(http.StatusOK, gin.H{
		"state":    session.State(),
		"messages": session.Messages(),
	})
}

// PostChat runs one conversation turn. While a prior turn is in flight the
// session rejects new questions, which surfaces as 409 here.
func (a Api) PostChat(c *gin.Context) {
	var req model2.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := req.ValidateChatRequest(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	reply, err := a.desk.Chat().Send(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, auditdesk.ErrSessionBusy) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply, "state": a.desk.Chat().State()})
}

// GetNotification returns the currently visible toast, or 204 once it has
// expired or been replaced.
func (a Api) GetNotification(c *gin.Context) {
	current := a.desk.Notifier().Current()
	if current == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, current)
}
