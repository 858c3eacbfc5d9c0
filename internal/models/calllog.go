package models

import "time"

// CallLogEntry records one external call or orchestration failure. Entries
// mirror the billing system's module call log: a request summary, the raw
// response, and metadata. Secrets are redacted before an entry is built.
type CallLogEntry struct {
	ID        string                 `dynamodbav:"Id"`
	Action    string                 `dynamodbav:"Action"`
	Request   map[string]interface{} `dynamodbav:"Request"`
	Response  string                 `dynamodbav:"Response"`
	Metadata  map[string]interface{} `dynamodbav:"Metadata"`
	CreatedAt time.Time              `dynamodbav:"CreatedAt"`
}
