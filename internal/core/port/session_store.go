package port

import (
	"net/http"
	"time"
)

// SessionStore reads and writes the signed session token on the request and
// response. The cookie jar is the single source of session truth; Delete is
// the explicit release path used by logout.
type SessionStore interface {
	Read(r *http.Request) (token string, ok bool)
	Write(w http.ResponseWriter, token string, expiresAt time.Time)
	Delete(w http.ResponseWriter)
}
