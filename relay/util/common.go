package util

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/pixelforge/pixelforge/common/config"
	"github.com/pixelforge/pixelforge/common/logger"
	relaymodel "github.com/pixelforge/pixelforge/relay/model"
)

// GeneralErrorResponse covers the error bodies of the providers we talk to.
// Replicate answers with RFC 7807 problem details (title/detail), OpenAI with
// {"error": {...}}.
type GeneralErrorResponse struct {
	Error    relaymodel.Error `json:"error"`
	Detail   string           `json:"detail"`
	Title    string           `json:"title"`
	Message  string           `json:"message"`
	Msg      string           `json:"msg"`
	Err      string           `json:"err"`
	ErrorMsg string           `json:"error_msg"`
}

func (e GeneralErrorResponse) ToMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}
	if e.Detail != "" {
		return e.Detail
	}
	if e.Title != "" {
		return e.Title
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != "" {
		return e.Err
	}
	if e.ErrorMsg != "" {
		return e.ErrorMsg
	}
	return ""
}

// RelayErrorHandler turns a non-2xx provider response into an error. The
// response body is always closed.
func RelayErrorHandler(resp *http.Response) (ErrorWithStatusCode *relaymodel.ErrorWithStatusCode) {
	ErrorWithStatusCode = &relaymodel.ErrorWithStatusCode{
		StatusCode: resp.StatusCode,
		Error: relaymodel.Error{
			Message: "",
			Type:    relaymodel.ErrorTypeUpstream,
			Code:    "bad_response_status_code",
			Param:   strconv.Itoa(resp.StatusCode),
		},
	}
	defer CloseResponseBodyGracefully(resp)

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return
	}
	if config.DebugEnabled {
		logger.SysLog(fmt.Sprintf("error happened, status code: %d, response: \n%s", resp.StatusCode, string(responseBody)))
	}

	var errResponse GeneralErrorResponse
	if err = json.Unmarshal(responseBody, &errResponse); err == nil {
		ErrorWithStatusCode.Error.Message = errResponse.ToMessage()
		if errResponse.Error.Type != "" {
			ErrorWithStatusCode.Error.Type = errResponse.Error.Type
		}
	} else if len(responseBody) > 0 {
		ErrorWithStatusCode.Error.Message = string(responseBody)
	}
	if ErrorWithStatusCode.Error.Message == "" {
		switch resp.StatusCode {
		case http.StatusGatewayTimeout:
			ErrorWithStatusCode.Error.Message = "gateway timeout (504): upstream did not answer in time"
		case http.StatusBadGateway:
			ErrorWithStatusCode.Error.Message = "bad gateway (502): upstream returned an invalid response"
		case http.StatusServiceUnavailable:
			ErrorWithStatusCode.Error.Message = "service unavailable (503): upstream cannot handle the request right now"
		case http.StatusTooManyRequests:
			ErrorWithStatusCode.Error.Message = "too many requests (429): upstream rate limit reached"
		case http.StatusUnauthorized:
			ErrorWithStatusCode.Error.Message = "unauthorized (401): API key is invalid or expired"
		case http.StatusForbidden:
			ErrorWithStatusCode.Error.Message = "forbidden (403): no access to this resource or model"
		case http.StatusNotFound:
			ErrorWithStatusCode.Error.Message = "not found (404): endpoint or model does not exist"
		default:
			ErrorWithStatusCode.Error.Message = fmt.Sprintf("upstream error (status code: %d)", resp.StatusCode)
		}
	}
	return
}

func CloseResponseBodyGracefully(httpResponse *http.Response) {
	if httpResponse == nil || httpResponse.Body == nil {
		return
	}
	err := httpResponse.Body.Close()
	if err != nil {
		logger.SysError("failed to close response body: " + err.Error())
	}
}
