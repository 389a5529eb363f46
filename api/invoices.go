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
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	model2 "github.com/auditdesk/auditdesk/api/model"
	"github.com/auditdesk/auditdesk/gateway"
	"github.com/auditdesk/auditdesk/internal/apierror"
)

// GetDashboard refreshes the snapshot and returns both queues plus metrics.
// A failed refresh is served from the last good snapshot; the dashboard never
// goes blank because one poll missed.
func (a Api) GetDashboard(c *gin.Context) {
	if err := a.desk.Repository().Refresh(c.Request.Context()); err != nil {
		logrus.WithError(err).Warn("dashboard refresh failed, serving last snapshot")
	}

	view := a.desk.Dashboard(c.Query("q"))
	c.JSON(http.StatusOK, view)
}

func (a Api) GetInvoice(c *gin.Context) {
	id, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}

	detail, ok := a.desk.InvoiceDetail(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("invoice %s not found", id)})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (a Api) SubmitAction(c *gin.Context) {
	id, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}

	var req model2.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := req.ValidateActionRequest(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := a.desk.SubmitAction(c.Request.Context(), id, req.Action, req.Notes); err != nil {
		a.desk.Notifier().Alert(fmt.Sprintf("Action failed for %s", id))
		apiErr := apierror.NewAPIError(apierror.ErrUpstream, "submitting the decision failed", err.Error())
		c.JSON(apierror.MapErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	verb := "Approved"
	if req.Action == gateway.ActionReject {
		verb = "Rejected"
	}
	a.desk.Notifier().Success(fmt.Sprintf("Invoice %s %s", id, verb))

	c.JSON(http.StatusOK, gin.H{"status": "success", "invoice_id": id, "action": req.Action})
}

func (a Api) RerunValidation(c *gin.Context) {
	id, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}

	var req model2.RerunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := req.ValidateRerunRequest(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	result, err := a.desk.RerunValidation(c.Request.Context(), id, req.UpdatedData)
	if err != nil {
		apiErr := apierror.NewAPIError(apierror.ErrUpstream, "rerunning validation failed", err.Error())
		c.JSON(apierror.MapErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	c.JSON(http.StatusOK, result)
}
