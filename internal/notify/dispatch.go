// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package notify

// Dispatch is the payload carried by a notification delivery job: which
// definition to render, for whom, against what context.
type Dispatch struct {
	Key       string   `json:"key"`
	Recipient string   `json:"recipient"`
	Context   *Context `json:"context"`
}
