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
package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/auditdesk/auditdesk/gateway"
)

// ActionRequest is the operator decision body. Notes are free text and may
// be empty, including on rejections.
type ActionRequest struct {
	Action string `json:"action"`
	Notes  string `json:"notes"`
}

func (a *ActionRequest) ValidateActionRequest() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Action, validation.Required, validation.In(gateway.ActionApprove, gateway.ActionReject)),
	)
}

type RerunRequest struct {
	UpdatedData map[string]interface{} `json:"updated_data"`
}

func (r *RerunRequest) ValidateRerunRequest() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UpdatedData, validation.Required),
	)
}

type ChatRequest struct {
	Question string `json:"question"`
}

func (c *ChatRequest) ValidateChatRequest() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Question, validation.Required),
	)
}

type ProcessExistingRequest struct {
	Filename string `json:"filename"`
}

func (p *ProcessExistingRequest) ValidateProcessExistingRequest() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Filename, validation.Required),
	)
}
