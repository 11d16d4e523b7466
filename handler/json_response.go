package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// JSONResponse is the envelope of every JSON answer.
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON answers 200 with v as data. An error value is rendered like JSONError.
func JSON(v any) Response {
	if err, ok := v.(error); ok {
		return JSONError(err)
	}
	return jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
}

// JSONError answers with the status of err when it is an HTTPError and 500
// otherwise.
func JSONError(err error) Response {
	resp := jsonResponse{
		status: http.StatusInternalServerError,
		body:   JSONResponse{Error: &ErrorDetail{Code: "internal_error", Message: err.Error()}},
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		resp.status = httpErr.Code
		resp.body.Error = &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	}
	return resp
}
