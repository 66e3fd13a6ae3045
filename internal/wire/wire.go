// Package wire holds the JSON bodies exchanged between the auth server and
// its clients.
//
//	GET  /health -> 200 {"ok":true}
//	POST /login  <- {"id":"a@b.com","pw":"..."}
//	             -> 200 {"ok":true,"uid":1,"name":"Alice"}
//	             -> 400|401|500 {"ok":false,"msg":"..."}
package wire

import (
	"encoding/json"
	"unicode/utf8"
)

// LoginRequest is the credential submission body.
type LoginRequest struct {
	ID string `json:"id"`
	PW string `json:"pw"`
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// LoginResponse covers both outcomes of POST /login. UID and Name are only
// set on success; Msg only on failure.
type LoginResponse struct {
	OK   bool   `json:"ok"`
	UID  int64  `json:"uid,omitempty"`
	Name string `json:"name,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// Failure messages carried in LoginResponse.Msg.
const (
	MsgBadRequest         = "bad_request"
	MsgInvalidCredentials = "invalid credentials"
	MsgStoreUnavailable   = "store unavailable"
	MsgInternal           = "internal error"
)

// EncodeLoginRequest renders a LoginRequest body with pw taken straight from
// a byte slice, so the secret is never held in an immutable string. The
// returned buffer holds the secret too; callers wipe it after sending.
// Invalid UTF-8 in pw is replaced by U+FFFD, as encoding/json does.
func EncodeLoginRequest(id string, pw []byte) ([]byte, error) {
	idJSON, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(idJSON)+len(pw)+24)
	buf = append(buf, `{"id":`...)
	buf = append(buf, idJSON...)
	buf = append(buf, `,"pw":`...)
	buf = appendJSONString(buf, pw)
	buf = append(buf, '}')
	return buf, nil
}

const hexDigits = "0123456789abcdef"

func appendJSONString(dst, s []byte) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				dst = append(dst, '\\', c)
			case c == '\n':
				dst = append(dst, '\\', 'n')
			case c == '\r':
				dst = append(dst, '\\', 'r')
			case c == '\t':
				dst = append(dst, '\\', 't')
			case c < 0x20:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
			default:
				dst = append(dst, c)
			}
			i++
			continue
		}

		r, size := utf8.DecodeRune(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, "\ufffd"...)
		} else {
			dst = append(dst, s[i:i+size]...)
		}
		i += size
	}
	return append(dst, '"')
}
