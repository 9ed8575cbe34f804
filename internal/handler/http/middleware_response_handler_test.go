// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter_RecordsStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusTeapot)
	n, err := w.Write([]byte("short and stout"))

	assert.NoError(t, err)
	assert.Equal(t, 15, n)
	assert.Equal(t, http.StatusTeapot, w.status)
	assert.Equal(t, 15, w.size)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestResponseWriter_ImplicitOKOnWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.Write([]byte("body"))

	assert.Equal(t, http.StatusOK, w.status)
}

func TestResponseWriter_IgnoresSecondWriteHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusNotFound, w.status)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResponseWriter_AccumulatesSizeAcrossWrites(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.Write([]byte("first"))
	w.Write([]byte("second"))

	assert.Equal(t, len("first")+len("second"), w.size)
}
