package esignbase

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
)

// ExpirationDateLayout is the textual format of expiration_date on the wire.
const ExpirationDateLayout = "2006-01-02T15:04:05-0700"

// CreateDocumentRequest describes a document to create from a template.
type CreateDocumentRequest struct {
	TemplateID   string
	DocumentName string
	Recipients   []Recipient
	// UserDefinedMetadata is sent verbatim when non-empty. eSignBase accepts
	// string and integer values.
	UserDefinedMetadata map[string]any
	// ExpirationDate is sent in ExpirationDateLayout, keeping its own offset.
	ExpirationDate *time.Time
}

// Validate checks that the template, name and every recipient field are present.
func (r CreateDocumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TemplateID, validation.Required),
		validation.Field(&r.DocumentName, validation.Required),
		validation.Field(&r.Recipients, validation.Required.Error("at least one recipient is required")),
	)
}

type createDocumentBody struct {
	Name                string         `json:"name"`
	TemplateID          string         `json:"template_id"`
	Recipients          []Recipient    `json:"recipients"`
	UserDefinedMetadata map[string]any `json:"user_defined_metadata,omitempty"`
	ExpirationDate      string         `json:"expiration_date,omitempty"`
}

func (r CreateDocumentRequest) body() createDocumentBody {
	b := createDocumentBody{
		Name:                r.DocumentName,
		TemplateID:          r.TemplateID,
		Recipients:          r.Recipients,
		UserDefinedMetadata: r.UserDefinedMetadata,
	}
	if r.ExpirationDate != nil {
		b.ExpirationDate = r.ExpirationDate.Format(ExpirationDateLayout)
	}
	return b
}

// GetDocuments lists documents, newest first, one page at a time.
func (c *OAuth2Client) GetDocuments(ctx context.Context, limit, offset int) (any, error) {
	return c.request(ctx, apiRequest{
		op:     "get documents",
		method: http.MethodGet,
		path:   "api/documents",
		query: url.Values{
			"limit":  {strconv.Itoa(limit)},
			"offset": {strconv.Itoa(offset)},
		},
		validate: func() error {
			if err := validation.Validate(limit, validation.Min(0)); err != nil {
				return errors.Wrap(err, "limit")
			}
			return errors.Wrap(validation.Validate(offset, validation.Min(0)), "offset")
		},
	})
}

// GetDocument fetches one document and its signing status.
func (c *OAuth2Client) GetDocument(ctx context.Context, documentID string) (any, error) {
	return c.request(ctx, apiRequest{
		op:       "get document",
		method:   http.MethodGet,
		path:     documentPath(documentID),
		validate: requireID("document id", documentID),
	})
}

// CreateDocument creates a document from a template and sends it to the recipients.
func (c *OAuth2Client) CreateDocument(ctx context.Context, req CreateDocumentRequest) (any, error) {
	return c.request(ctx, apiRequest{
		op:       "create document",
		method:   http.MethodPost,
		path:     "api/document",
		body:     req.body(),
		validate: req.Validate,
	})
}

// DeleteDocument deletes a document.
func (c *OAuth2Client) DeleteDocument(ctx context.Context, documentID string) error {
	_, err := c.request(ctx, apiRequest{
		op:       "delete document",
		method:   http.MethodDelete,
		path:     documentPath(documentID),
		validate: requireID("document id", documentID),
	})
	return err
}

// DownloadDocument streams the document's PDF. The caller must close the
// returned reader.
func (c *OAuth2Client) DownloadDocument(ctx context.Context, documentID string) (io.ReadCloser, error) {
	resp, err := c.send(ctx, apiRequest{
		op:       "download document",
		method:   http.MethodGet,
		path:     "api/document/download/" + url.PathEscape(documentID),
		accept:   "application/pdf, application/octet-stream",
		validate: requireID("document id", documentID),
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func documentPath(documentID string) string {
	return "api/document/" + url.PathEscape(documentID)
}
