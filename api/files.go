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

	model2 "github.com/auditdesk/auditdesk/api/model"
	"github.com/auditdesk/auditdesk/internal/apierror"
)

// UploadInvoice pushes one file through the processing pipeline. The call is
// synchronous and runs on the extended upload deadline.
func (a Api) UploadInvoice(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required. pass it as multipart field 'file'"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer func() {
		_ = file.Close()
	}()

	result, err := a.desk.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		a.desk.Notifier().Alert("Upload failed: " + fileHeader.Filename)
		apiErr := apierror.NewAPIError(apierror.ErrUpstream, "processing the upload failed", err.Error())
		c.JSON(apierror.MapErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	a.desk.Notifier().Success("Processed " + fileHeader.Filename)
	c.JSON(http.StatusOK, result)
}

func (a Api) GetIncomingFiles(c *gin.Context) {
	files, err := a.desk.Gateway().IncomingFiles(c.Request.Context())
	if err != nil {
		apiErr := apierror.NewAPIError(apierror.ErrUpstream, "listing incoming files failed", err.Error())
		c.JSON(apierror.MapErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	c.JSON(http.StatusOK, files)
}

func (a Api) ProcessExisting(c *gin.Context) {
	var req model2.ProcessExistingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	if err := req.ValidateProcessExistingRequest(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	result, err := a.desk.ProcessExisting(c.Request.Context(), req.Filename)
	if err != nil {
		a.desk.Notifier().Alert("Processing failed: " + req.Filename)
		apiErr := apierror.NewAPIError(apierror.ErrUpstream, "processing the file failed", err.Error())
		c.JSON(apierror.MapErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	a.desk.Notifier().Success("Processed " + req.Filename)
	c.JSON(http.StatusOK, result)
}

// DownloadReport proxies a generated report artifact from the pipeline,
// preserving its content type.
func (a Api) DownloadReport(c *gin.Context) {
	filename, passed := c.Params.Get("filename")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename is required. pass it in the route /:filename"})
		return
	}

	body, contentType, err := a.desk.Gateway().Download(c.Request.Context(), filename)
	if err != nil {
		apiErr := apierror.NewAPIError(apierror.ErrUpstream, "downloading the report failed", err.Error())
		c.JSON(apierror.MapErrorToHTTPStatus(apiErr), apiErr)
		return
	}
	defer func() {
		_ = body.Close()
	}()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}
