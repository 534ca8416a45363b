package flightapi

import (
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// translate maps a non-2xx response to an *Error. The API reports failures
// as {"detail": ...} where detail is either a string or, for 422, a list of
// {"loc": [...], "msg": "..."} objects.
func translate(endpoint string, status int, body []byte) *Error {
	e := &Error{Endpoint: endpoint, Status: status}
	detail := gjson.GetBytes(body, "detail")

	switch {
	case status == http.StatusUnauthorized:
		e.kind = ErrSessionExpired
		e.Message = msgSessionExpired
	case status == http.StatusUnprocessableEntity:
		e.kind = ErrValidation
		e.Message = detailMessage(detail)
		if detail.IsArray() {
			e.Message = validationMessage(detail)
		}
	case status == http.StatusNotFound:
		e.kind = ErrNotFound
		e.Message = detailMessage(detail)
	default:
		e.kind = ErrRequest
		e.Message = detailMessage(detail)
	}

	return e
}

// translateLogin maps a rejected login. Only 401 differs from translate.
func translateLogin(status int, body []byte) *Error {
	if status != http.StatusUnauthorized {
		return translate("auth.token", status, body)
	}
	msg := msgInvalidCredentials
	if d := gjson.GetBytes(body, "detail"); d.Type == gjson.String && d.String() != "" {
		msg = d.String()
	}
	return &Error{kind: ErrInvalidCredentials, Message: msg, Endpoint: "auth.token", Status: status}
}

func detailMessage(detail gjson.Result) string {
	if detail.Type == gjson.String && detail.String() != "" {
		return detail.String()
	}
	return msgRequestFailed
}

// validationMessage renders "Error de validación: field: msg, field: msg"
// using the last element of each loc as the field name.
func validationMessage(detail gjson.Result) string {
	items := detail.Array()
	parts := make([]string, 0, len(items))
	for _, item := range items {
		field := defaultValidationLoc
		if loc := item.Get("loc").Array(); len(loc) > 0 {
			field = loc[len(loc)-1].String()
		}
		parts = append(parts, field+": "+item.Get("msg").String())
	}
	return msgValidationPrefix + strings.Join(parts, ", ")
}
