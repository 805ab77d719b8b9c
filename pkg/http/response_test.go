package http

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
)

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func TestReadResponseBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "small document", body: "channel:\n  title: Feed\n"},
		{name: "empty body", body: ""},
		{name: "oversized body", body: strings.Repeat("x", maxDocumentSize+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := &trackingBody{Reader: bytes.NewBufferString(tt.body)}
			resp := &http.Response{Body: body}

			got, err := ReadResponseBody(resp)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadResponseBody() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != tt.body {
				t.Errorf("ReadResponseBody() = %q, want %q", got, tt.body)
			}
			if !body.closed {
				t.Error("response body was not closed")
			}
		})
	}
}

func TestEnsureStatusOK(t *testing.T) {
	tests := []struct {
		code    int
		wantErr bool
	}{
		{http.StatusOK, false},
		{http.StatusNotFound, true},
		{http.StatusInternalServerError, true},
		{http.StatusNoContent, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.code, Status: http.StatusText(tt.code)}
			if err := EnsureStatusOK(resp); (err != nil) != tt.wantErr {
				t.Errorf("EnsureStatusOK(%d) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
		})
	}
}
