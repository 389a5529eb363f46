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
	NotificationSuccess = "success"
	NotificationAlert   = "alert"
)

// Notification is the single ephemeral toast shown to the operator. At most
// one instance is live at a time; the emitter clears it after its lifetime.
type Notification struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}
