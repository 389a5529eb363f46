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
	"fmt"
	"math"

	"github.com/auditdesk/auditdesk/model"
)

const defaultViolationReason = "Unknown Policy Violation"

// Gate transforms a raw assistant response into the text shown to the
// operator. Safe answers carry a confidence annotation; unsafe ones are
// replaced with the refusal template. The transform is total and
// deterministic: it never errors, whatever the pipeline sent.
func Gate(resp *model.ChatResponse) string {
	if resp == nil {
		return fmt.Sprintf("I cannot answer this safely.\nReason: %s", defaultViolationReason)
	}

	if resp.IsSafe {
		score := 0.0
		if resp.Score != nil {
			score = resp.Score.Score
		}
		confidence := int(math.Round(score * 100))
		return fmt.Sprintf("%s\n\n(Verified | Confidence: %d%%)", resp.Answer, confidence)
	}

	reason := defaultViolationReason
	if resp.Score != nil && resp.Score.Reason != "" {
		reason = resp.Score.Reason
	}
	return fmt.Sprintf("I cannot answer this safely.\nReason: %s", reason)
}
