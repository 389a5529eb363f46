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

// Package gateway is the typed HTTP client for the external audit pipeline.
// It owns every round trip to the pipeline; nothing else in the codebase
// issues requests against the pipeline's base URL.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/auditdesk/auditdesk/config"
	"github.com/auditdesk/auditdesk/internal/request"
	"github.com/auditdesk/auditdesk/model"
)

const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
)

// ProcessResult is the loosely shaped record the pipeline returns from its
// processing endpoints. Its fields vary between pipeline versions, so it is
// kept as a raw map and only inspected where a key is actually needed.
type ProcessResult map[string]interface{}

// Client talks to the pipeline gateway. The base URL is injected via the
// constructor; uploads get their own client with the extended deadline.
type Client struct {
	baseURL      string
	client       *http.Client
	uploadClient *http.Client
}

// NewClient builds a pipeline client from configuration.
func NewClient(cfg *config.Configuration) *Client {
	return &Client{
		baseURL:      cfg.Pipeline.URL,
		client:       &http.Client{Timeout: time.Duration(cfg.Pipeline.TimeoutSec) * time.Second},
		uploadClient: &http.Client{Timeout: time.Duration(cfg.Pipeline.UploadTimeoutSec) * time.Second},
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// checkStatus turns a non-2xx response into an error. Transport and decode
// failures are wrapped by the callers; this covers the remaining taxonomy leg.
func checkStatus(resp *http.Response, op string) error {
	if resp == nil {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("%s: pipeline returned status %d", op, resp.StatusCode)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path, op string, payload, response interface{}) error {
	reqID := uuid.New().String()
	start := time.Now()

	body, err := request.ToJsonReq(payload)
	if err != nil {
		return errors.Wrapf(err, "%s: encoding request", op)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), body)
	if err != nil {
		return errors.Wrapf(err, "%s: building request", op)
	}

	resp, err := request.Call(c.client, req, response)
	logrus.WithFields(logrus.Fields{
		"req_id":     reqID,
		"path":       path,
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Debug("pipeline call")
	if err != nil {
		if statusErr := checkStatus(resp, op); statusErr != nil {
			return statusErr
		}
		return errors.Wrap(err, op)
	}
	return checkStatus(resp, op)
}

func (c *Client) getJSON(ctx context.Context, path, op string, response interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return errors.Wrapf(err, "%s: building request", op)
	}

	resp, err := request.Call(c.client, req, response)
	if err != nil {
		if statusErr := checkStatus(resp, op); statusErr != nil {
			return statusErr
		}
		return errors.Wrap(err, op)
	}
	return checkStatus(resp, op)
}

// ListReports fetches the full processed-invoice snapshot.
func (c *Client) ListReports(ctx context.Context) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := c.getJSON(ctx, "/reports", "list reports", &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// Upload sends one invoice file through the full processing pipeline. The
// pipeline runs OCR, translation and validation synchronously, so this call
// uses the extended upload deadline rather than the default one.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (ProcessResult, error) {
	body, contentType, err := request.ToMultipartReq("file", filename, content)
	if err != nil {
		return nil, errors.Wrap(err, "upload: encoding multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/upload"), body)
	if err != nil {
		return nil, errors.Wrap(err, "upload: building request")
	}
	req.Header.Set("Content-Type", contentType)

	var result ProcessResult
	resp, err := request.Call(c.uploadClient, req, &result)
	if err != nil {
		if statusErr := checkStatus(resp, "upload"); statusErr != nil {
			return nil, statusErr
		}
		return nil, errors.Wrap(err, "upload")
	}
	if err := checkStatus(resp, "upload"); err != nil {
		return nil, err
	}
	return result, nil
}

// Chat asks the retrieval-augmented assistant one question. The history slice
// carries the prior turns already serialized; the new question travels
// separately and must not be part of it.
func (c *Client) Chat(ctx context.Context, question string, history []string) (*model.ChatResponse, error) {
	if history == nil {
		history = []string{}
	}
	payload := map[string]interface{}{
		"question": question,
		"history":  history,
	}
	var response model.ChatResponse
	if err := c.postJSON(ctx, "/chat", "chat", payload, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SubmitAction records an operator decision on one invoice.
func (c *Client) SubmitAction(ctx context.Context, invoiceID, action, notes string) (ProcessResult, error) {
	payload := map[string]string{
		"invoice_id": invoiceID,
		"action":     action,
		"notes":      notes,
	}
	var ack ProcessResult
	if err := c.postJSON(ctx, "/action", "submit action", payload, &ack); err != nil {
		return nil, err
	}
	return ack, nil
}

// RerunValidation resubmits corrected extracted data for re-validation. The
// corrected record lands in the snapshot on the next refresh.
func (c *Client) RerunValidation(ctx context.Context, invoiceID string, updatedData map[string]interface{}) (ProcessResult, error) {
	payload := map[string]interface{}{
		"invoice_id":   invoiceID,
		"updated_data": updatedData,
	}
	var result ProcessResult
	if err := c.postJSON(ctx, "/rerun", "rerun validation", payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Download streams a generated report artifact. The caller owns the returned
// body and must close it.
func (c *Client) Download(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/download/"+filename), nil)
	if err != nil {
		return nil, "", errors.Wrap(err, "download: building request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", errors.Wrap(err, "download")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, "", errors.Errorf("download: pipeline returned status %d", resp.StatusCode)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// IncomingFiles lists files waiting in the pipeline's intake directory.
func (c *Client) IncomingFiles(ctx context.Context) ([]string, error) {
	var files []string
	if err := c.getJSON(ctx, "/incoming-files", "incoming files", &files); err != nil {
		return nil, err
	}
	return files, nil
}

// ProcessExisting triggers processing of a file already present in the
// intake directory.
func (c *Client) ProcessExisting(ctx context.Context, filename string) (ProcessResult, error) {
	payload := map[string]string{"filename": filename}
	var result ProcessResult
	if err := c.postJSON(ctx, "/process-existing", "process existing", payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DownloadURL builds the browser-facing locator for a report artifact.
func (c *Client) DownloadURL(filename string) string {
	return fmt.Sprintf("%s/download/%s", c.baseURL, filename)
}
