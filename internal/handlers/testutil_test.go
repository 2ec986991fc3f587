package handlers

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

func doRequest(router *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, body)
	router.ServeHTTP(w, req)
	return w
}

func doRequestBody(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	return doRequest(router, method, path, bytes.NewReader(body))
}
