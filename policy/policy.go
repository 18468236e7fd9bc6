// Package policy models S3 bucket policy documents and decodes
// base64-encoded policy payloads as returned by provider APIs.
package policy

import (
	"encoding/base64"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is an IAM-style policy document.
type Document struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Statement is a single policy statement. Principal, Action, and Resource
// accept either a string or a list of strings, matching the provider's JSON
// grammar, so they are left loosely typed.
type Statement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action"`
	Resource  any    `json:"Resource"`
}

// policyVersion is the fixed IAM policy language version.
const policyVersion = "2012-10-17"

// PublicRead returns a fresh public-read policy document granting s3:* on
// every object in the bucket. A new value is built on every call so callers
// can mutate the result freely.
func PublicRead(bucket string) *Document {
	return &Document{
		Version: policyVersion,
		Statement: []Statement{
			{
				Sid:       "PublicReadGetObject",
				Effect:    "Allow",
				Principal: "*",
				Action:    "s3:*",
				Resource:  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
}

// JSON serializes the document to the provider's JSON grammar.
func (d *Document) JSON() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshal policy document: %w", err)
	}
	return string(data), nil
}

// Decode decodes a base64-encoded JSON policy payload, returning the policy
// re-serialized with indentation for human inspection. Decode and parse
// errors propagate unchanged; no partial result is returned on failure.
func Decode(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", err
	}

	pretty, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(pretty), nil
}
