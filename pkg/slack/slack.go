package slack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"dnstwister/config"
	"dnstwister/pkg/model"
)

// AttachmentField
type AttachmentField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// Attachment
type Attachment struct {
	Color    string            `json:"color"`
	Text     string            `json:"text,omitempty"`
	ImageURL string            `json:"image_url,omitempty"`
	Fields   []AttachmentField `json:"fields"`
}

// Payload represents a message to send to Slack
type Payload struct {
	Text        string       `json:"text,omitempty"`
	Username    string       `json:"username,omitempty"`
	IconURL     string       `json:"icon_url,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// NewPayload generates a new Slack Payload
func NewPayload(config *config.Configuration, r *model.Result) Payload {
	var attachment Attachment
	var fields []AttachmentField
	var field AttachmentField

	field.Title = "Domain"
	field.Value = r.Domain
	field.Short = true
	fields = append(fields, field)

	if r.IDN != "" {
		field.Title = "IDN"
		field.Value = r.IDN
		field.Short = true
		fields = append(fields, field)
	}

	field.Title = "Fuzzer"
	field.Value = r.Fuzzer
	field.Short = true
	fields = append(fields, field)

	field.Title = "Original"
	field.Value = r.Original
	field.Short = true
	fields = append(fields, field)

	if r.Skeleton != "" && r.Skeleton != r.IDN {
		field.Title = "Skeleton"
		field.Value = r.Skeleton
		field.Short = true
		fields = append(fields, field)
	}

	field.Title = "Addresses"
	field.Short = false
	field.Value = strings.Join(r.Addresses, ", ")
	fields = append(fields, field)

	field.Title = "Parked score"
	field.Short = true
	field.Value = fmt.Sprintf("%.2f", r.ParkedScore)
	fields = append(fields, field)

	attachment.Fields = fields
	attachment.Color = "#ff5400"
	if r.Screenshot != "" {
		attachment.ImageURL = r.Screenshot
	}

	domain := r.Domain
	if r.IDN != "" {
		domain += " (" + r.IDN + ")"
	}

	return Payload{
		Text:        "The domain " + domain + ", a look-alike of " + r.Original + ", is registered",
		Username:    config.SlackUsername,
		IconURL:     config.SlackIconURL,
		Attachments: []Attachment{attachment},
	}
}

// Post posts to Slack a Payload
func (s Payload) Post(config *config.Configuration) error {
	body, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "can't marshal slack payload")
	}
	req, err := http.NewRequest(http.MethodPost, config.SlackWebhookURL, bytes.NewBuffer(body))
	if err != nil {
		return errors.Wrap(err, "can't build slack request")
	}
	req.Header.Add("Content-Type", "application/json")
	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "slack post error")
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("slack post error: %s", res.Status)
	}
	return nil
}
