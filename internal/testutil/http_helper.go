// Package testutil provides utility functions for testing HTTP handlers.
package testutil

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"

	"github.com/gin-gonic/gin"

	"CampusHire-backend/internal/auth"
)

// MakeJSONRequest sends a JSON request with the given session token attached
// as the session cookie. Pass an empty token for anonymous requests.
func MakeJSONRequest(body gin.H, sessionToken string, r *gin.Engine, endpoint string, method string) (*httptest.ResponseRecorder, map[string]interface{}) {
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequest(method, endpoint, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: sessionToken})
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	resp := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)

	return rec, resp
}

// FilePart describes a file attached to a multipart request.
type FilePart struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     []byte
}

// MakeMultipartRequest sends a multipart form request with optional text
// fields and file parts, with the session token attached as a cookie.
func MakeMultipartRequest(fields map[string]string, files []FilePart, sessionToken string, r *gin.Engine, endpoint string, method string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		_ = writer.WriteField(name, value)
	}

	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+file.FieldName+`"; filename="`+file.FileName+`"`)
		header.Set("Content-Type", file.ContentType)

		part, _ := writer.CreatePart(header)
		_, _ = part.Write(file.Content)
	}
	_ = writer.Close()

	req, _ := http.NewRequest(method, endpoint, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: sessionToken})
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	resp := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)

	return rec, resp
}

// StringPtr is a helper function to get a pointer to a string
func StringPtr(s string) *string {
	return &s
}
