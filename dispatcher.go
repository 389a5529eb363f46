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

package auditdesk

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/auditdesk/auditdesk/gateway"
)

// ErrUnknownAction rejects decisions outside the two canonical ones.
var ErrUnknownAction = errors.New("action must be APPROVE or REJECT")

// SubmitAction records an operator decision on one invoice and then
// refreshes the repository so the UI reflects backend-confirmed state. No
// optimistic local update happens; between the action landing and the refresh
// completing the snapshot is briefly stale, by design. The decision error
// propagates to the caller, who converts it into a notification.
func (d *AuditDesk) SubmitAction(ctx context.Context, invoiceID, action, notes string) error {
	if action != gateway.ActionApprove && action != gateway.ActionReject {
		return ErrUnknownAction
	}

	_, err := d.gateway.SubmitAction(ctx, invoiceID, action, notes)
	if err != nil {
		return errors.Wrapf(err, "submitting %s for %s", action, invoiceID)
	}

	d.refreshAfterAction(ctx, invoiceID)
	return nil
}

// RerunValidation resubmits corrected extracted data for one invoice and
// refreshes, letting the corrected record replace the old one.
func (d *AuditDesk) RerunValidation(ctx context.Context, invoiceID string, updatedData map[string]interface{}) (gateway.ProcessResult, error) {
	result, err := d.gateway.RerunValidation(ctx, invoiceID, updatedData)
	if err != nil {
		return nil, errors.Wrapf(err, "rerunning validation for %s", invoiceID)
	}

	d.refreshAfterAction(ctx, invoiceID)
	return result, nil
}

// Upload pushes a new invoice file through the pipeline and refreshes so the
// freshly processed record shows up.
func (d *AuditDesk) Upload(ctx context.Context, filename string, content io.Reader) (gateway.ProcessResult, error) {
	result, err := d.gateway.Upload(ctx, filename, content)
	if err != nil {
		return nil, errors.Wrapf(err, "uploading %s", filename)
	}

	d.refreshAfterAction(ctx, filename)
	return result, nil
}

// ProcessExisting triggers processing of a file already in the pipeline's
// intake directory and refreshes.
func (d *AuditDesk) ProcessExisting(ctx context.Context, filename string) (gateway.ProcessResult, error) {
	result, err := d.gateway.ProcessExisting(ctx, filename)
	if err != nil {
		return nil, errors.Wrapf(err, "processing %s", filename)
	}

	d.refreshAfterAction(ctx, filename)
	return result, nil
}

// refreshAfterAction reloads the snapshot after a successful mutation. A
// failed refresh is logged, not surfaced: the action itself succeeded and the
// next refresh will reconcile the view.
func (d *AuditDesk) refreshAfterAction(ctx context.Context, subject string) {
	if err := d.repository.Refresh(ctx); err != nil {
		logrus.WithError(err).WithField("subject", subject).Warn("post-action refresh failed")
	}
}
