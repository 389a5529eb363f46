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

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the assistant conversation. The log is
// append-only; messages are never mutated or reordered after creation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SafetyScore carries the pipeline's reflection verdict for one answer.
type SafetyScore struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
}

// ChatResponse is the raw /chat payload before the safety gate runs.
type ChatResponse struct {
	Answer string       `json:"answer"`
	IsSafe bool         `json:"is_safe"`
	Score  *SafetyScore `json:"score,omitempty"`
}
